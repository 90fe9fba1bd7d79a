// Package telemetry provides crew health statistics, milestone bookmarks,
// per-kerbal lifetime tracking and step timing.
package telemetry

import (
	"github.com/pthm-cable/crewhealth/health"
)

// Collector accumulates events within time windows and produces WindowStats.
type Collector struct {
	windowDurationSec   float64
	windowDurationTicks int32
	tickSeconds         float64
	dayLength           float64

	// Current window tracking
	windowStartTick int32

	// Event counters for current window
	deaths            int
	exhaustionStarts  int
	recoveries        int
	lowHealthWarnings int
	accidents         int
}

// NewCollector creates a new stats collector.
// windowDurationSec: how long each stats window lasts in simulation seconds
// tickSeconds: seconds per tick; dayLength: seconds per host day
func NewCollector(windowDurationSec, tickSeconds, dayLength float64) *Collector {
	ticksPerWindow := int32(windowDurationSec / tickSeconds)
	if ticksPerWindow < 1 {
		ticksPerWindow = 1
	}
	return &Collector{
		windowDurationSec:   windowDurationSec,
		windowDurationTicks: ticksPerWindow,
		tickSeconds:         tickSeconds,
		dayLength:           dayLength,
	}
}

// RecordEffect counts a condition transition.
func (c *Collector) RecordEffect(e health.Effect) {
	switch e.Kind {
	case health.EffectDie:
		c.deaths++
	case health.EffectExhaust:
		c.exhaustionStarts++
	case health.EffectRecover:
		c.recoveries++
	case health.EffectLowHealth:
		c.lowHealthWarnings++
	}
}

// RecordAccident counts a random accident.
func (c *Collector) RecordAccident() {
	c.accidents++
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int32) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// Sample is the state of the roster at the end of a window.
type Sample struct {
	Alive, Exhausted, Frozen, Dead int

	HPRatios  []float64 // Living kerbals
	Doses     []float64
	Exposures []float64
	Changes   []float64
}

// SampleList reads a Sample from every status in l.
func SampleList(l *health.List) Sample {
	var s Sample
	l.Each(func(st *health.Status) {
		if st.IsDead() {
			s.Dead++
			return
		}
		s.Alive++
		if st.HasCondition(health.Exhausted) {
			s.Exhausted++
		}
		if st.Frozen() {
			s.Frozen++
		}
		s.HPRatios = append(s.HPRatios, st.HPRatio())
		s.Doses = append(s.Doses, st.Dose())
		s.Exposures = append(s.Exposures, st.Exposure)
		s.Changes = append(s.Changes, st.LastChangeTotal)
	})
	return s
}

// Flush produces a WindowStats and resets counters for the next window.
func (c *Collector) Flush(currentTick int32, sample Sample) WindowStats {
	hp := Summarize(sample.HPRatios)
	dose := Summarize(sample.Doses)
	exposure := Summarize(sample.Exposures)
	change := Summarize(sample.Changes)

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		SimDays:         float64(currentTick) * c.tickSeconds / c.dayLength,

		Alive:     sample.Alive,
		Exhausted: sample.Exhausted,
		Frozen:    sample.Frozen,
		Dead:      sample.Dead,

		Deaths:            c.deaths,
		ExhaustionStarts:  c.exhaustionStarts,
		Recoveries:        c.recoveries,
		LowHealthWarnings: c.lowHealthWarnings,
		Accidents:         c.accidents,

		HPRatioMean: hp.Mean,
		HPRatioStd:  hp.Std,
		HPRatioP10:  hp.P10,
		HPRatioP50:  hp.P50,
		HPRatioP90:  hp.P90,

		DoseMean:     dose.Mean,
		DoseMax:      dose.Max,
		ExposureMean: exposure.Mean,
		ChangeMean:   change.Mean,
	}

	// Reset for next window
	c.windowStartTick = currentTick
	c.deaths = 0
	c.exhaustionStarts = 0
	c.recoveries = 0
	c.lowHealthWarnings = 0
	c.accidents = 0

	return stats
}

// WindowDurationTicks returns the number of ticks per window.
func (c *Collector) WindowDurationTicks() int32 {
	return c.windowDurationTicks
}
