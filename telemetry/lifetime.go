package telemetry

import (
	"sort"

	"github.com/pthm-cable/crewhealth/health"
)

// LifetimeStats tracks per-kerbal statistics over a run.
type LifetimeStats struct {
	Name          string  `csv:"name"`
	FirstSeenTick int32   `csv:"first_seen"`
	DiedTick      int32   `csv:"died"` // -1 while alive
	MinHPRatio    float64 `csv:"min_hp_ratio"`
	PeakDose      float64 `csv:"peak_dose"`
	DaysExhausted float64 `csv:"days_exhausted"`
	Exhaustions   int     `csv:"exhaustions"`
	Accidents     int     `csv:"accidents"`
}

// LifetimeTracker manages per-kerbal lifetime statistics.
type LifetimeTracker struct {
	dayLength float64
	stats     map[string]*LifetimeStats
}

// NewLifetimeTracker creates a new lifetime tracker.
func NewLifetimeTracker(dayLength float64) *LifetimeTracker {
	return &LifetimeTracker{
		dayLength: dayLength,
		stats:     make(map[string]*LifetimeStats),
	}
}

// Observe folds the current state of s into its record, registering it on
// first sight. interval is the time in seconds since the previous observation.
func (lt *LifetimeTracker) Observe(s *health.Status, tick int32, interval float64) {
	ls := lt.stats[s.Name()]
	if ls == nil {
		ls = &LifetimeStats{
			Name:          s.Name(),
			FirstSeenTick: tick,
			DiedTick:      -1,
			MinHPRatio:    s.HPRatio(),
		}
		lt.stats[s.Name()] = ls
	}
	if ls.DiedTick >= 0 {
		return
	}
	if s.IsDead() {
		ls.DiedTick = tick
		ls.MinHPRatio = 0
		return
	}

	if r := s.HPRatio(); r < ls.MinHPRatio {
		ls.MinHPRatio = r
	}
	if d := s.Dose(); d > ls.PeakDose {
		ls.PeakDose = d
	}
	if s.HasCondition(health.Exhausted) && lt.dayLength > 0 {
		ls.DaysExhausted += interval / lt.dayLength
	}
}

// RecordEffect counts exhaustion episodes.
func (lt *LifetimeTracker) RecordEffect(e health.Effect) {
	if e.Kind != health.EffectExhaust {
		return
	}
	if ls := lt.stats[e.Kerbal]; ls != nil {
		ls.Exhaustions++
	}
}

// RecordAccident counts an accident for kerbal.
func (lt *LifetimeTracker) RecordAccident(kerbal string) {
	if ls := lt.stats[kerbal]; ls != nil {
		ls.Accidents++
	}
}

// Get returns the lifetime stats for a kerbal, or nil if not found.
func (lt *LifetimeTracker) Get(name string) *LifetimeStats {
	return lt.stats[name]
}

// All returns a copy of every record ordered by name.
func (lt *LifetimeTracker) All() []LifetimeStats {
	out := make([]LifetimeStats, 0, len(lt.stats))
	for _, ls := range lt.stats {
		out = append(out, *ls)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Count returns the number of tracked kerbals.
func (lt *LifetimeTracker) Count() int {
	return len(lt.stats)
}
