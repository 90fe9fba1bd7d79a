package factors

import (
	"errors"
	"fmt"
	"math"

	"github.com/pthm-cable/crewhealth/equipment"
)

var (
	// ErrComposed is returned by Gather once the channels have been composed.
	ErrComposed = errors.New("multiplier channels already composed")
	// ErrNotComposed is returned by Multiplier before Compose is called.
	ErrNotComposed = errors.New("multiplier channels not composed")
)

// channel accumulates equipment multipliers for one factor (or "All").
type channel struct {
	bonusSum float64 // Σ (1 - m) × min(cap, affected) over capacity-bounded equipment
	free     float64 // Product of capacity-independent multipliers
	min      float64
	max      float64
}

func (c *channel) reset() {
	c.bonusSum = 0
	c.free = 1
	c.min = 1
	c.max = 1
}

// Channels holds per-update multiplier accumulators. All equipment must be
// gathered before Compose; multipliers can only be read after it.
type Channels struct {
	channels map[string]*channel
	crew     float64
	composed bool
}

// NewChannels creates accumulators for "All" and every factor in the catalog.
func NewChannels(c *Catalog) *Channels {
	ch := &Channels{channels: make(map[string]*channel, c.Len()+1)}
	ch.channels[equipment.AllChannel] = &channel{}
	for _, name := range c.Names() {
		ch.channels[name] = &channel{}
	}
	ch.Reset()
	return ch
}

// Reset reseeds every channel for a new update.
func (ch *Channels) Reset() {
	for _, c := range ch.channels {
		c.reset()
	}
	ch.crew = 1
	ch.composed = false
}

// Gather records one piece of equipment's multiplier m on the named channel.
// capacity > 0 marks a shared, per-head diminishing bonus; capacity 0 marks
// a free multiplier. A multiplier of exactly 1 is ignored.
func (ch *Channels) Gather(name string, m float64, capacity, affected int) error {
	if ch.composed {
		return ErrComposed
	}
	c, ok := ch.channels[name]
	if !ok {
		return fmt.Errorf("unknown multiplier channel %q", name)
	}
	if m == 1 {
		return nil
	}

	if capacity > 0 {
		c.bonusSum += (1 - m) * float64(min(capacity, affected))
	} else {
		c.free *= m
	}

	if m > 1 {
		c.max = math.Max(c.max, m)
	} else {
		c.min = math.Min(c.min, m)
	}
	return nil
}

// Compose freezes the accumulators. crewCount is the number of kerbals the
// shared bonuses are spread across; values below 1 are treated as 1.
func (ch *Channels) Compose(crewCount int) {
	ch.crew = math.Max(float64(crewCount), 1)
	ch.composed = true
}

// Multiplier returns the effective multiplier of the named channel.
// Unknown channels are neutral.
func (ch *Channels) Multiplier(name string) (float64, error) {
	if !ch.composed {
		return 1, ErrNotComposed
	}
	c, ok := ch.channels[name]
	if !ok {
		return 1, nil
	}
	shared := clamp(1-c.bonusSum/ch.crew, c.min, c.max)
	return shared * c.free, nil
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
