// Package events rolls random health events against kerbals each update.
package events

import (
	"log/slog"
	"math"
	"math/rand"

	"github.com/pthm-cable/crewhealth/config"
	"github.com/pthm-cable/crewhealth/health"
)

// Outcome is what happened when an event fired.
type Outcome struct {
	Event    string
	Kerbal   string
	HPLost   float64
	Severity health.Severity
	Text     string
}

// Event is a random occurrence that can befall a kerbal.
type Event interface {
	Name() string
	// Condition reports whether the event can happen to s at all.
	Condition(s *health.Status) bool
	ChancePerDay() float64
	Run(s *health.Status) Outcome
}

// Probability converts a daily chance into the chance over interval seconds.
func Probability(chancePerDay, interval, dayLength float64) float64 {
	if chancePerDay <= 0 || interval <= 0 {
		return 0
	}
	if chancePerDay >= 1 {
		return 1
	}
	return 1 - math.Pow(1-chancePerDay, interval/dayLength)
}

// Manager draws every registered event for each kerbal it is given.
type Manager struct {
	cfg      *config.Config
	events   []Event
	rng      *rand.Rand
	notifier health.Notifier
	log      *slog.Logger
}

// NewManager creates a manager. rng must not be shared with other goroutines.
func NewManager(cfg *config.Config, rng *rand.Rand, notifier health.Notifier, logger *slog.Logger, events ...Event) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{cfg: cfg, events: events, rng: rng, notifier: notifier, log: logger}
}

// Update rolls each event for s over interval seconds.
func (m *Manager) Update(s *health.Status, interval float64) []Outcome {
	if !m.cfg.Events.Enabled {
		return nil
	}
	var out []Outcome
	for _, ev := range m.events {
		if !ev.Condition(s) {
			continue
		}
		p := Probability(ev.ChancePerDay(), interval, m.cfg.Time.DayLength)
		if m.rng.Float64() >= p {
			continue
		}
		o := ev.Run(s)
		m.log.Info("health event", "event", o.Event, "kerbal", o.Kerbal, "hp_lost", o.HPLost)
		if m.notifier != nil {
			m.notifier.Notify(health.NewMessage(o.Kerbal, o.Severity, o.Event, o.Text))
		}
		out = append(out, o)
	}
	return out
}

// UpdateAll rolls events for every status in l.
func (m *Manager) UpdateAll(l *health.List, interval float64) []Outcome {
	var out []Outcome
	l.Each(func(s *health.Status) {
		out = append(out, m.Update(s, interval)...)
	})
	return out
}
