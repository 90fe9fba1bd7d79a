// Package health tracks each kerbal's HP, radiation dose and conditions,
// and updates them from factors, equipment and the environment.
package health

import (
	"math"

	"github.com/pthm-cable/crewhealth/config"
	"github.com/pthm-cable/crewhealth/radiation"
)

// Status is the health record of one kerbal. The backing crew record is
// owned by the host and resolved by name whenever it is needed.
type Status struct {
	cfg *config.Config

	name          string
	level         int // Last level seen on the crew record
	hp            float64
	maxHPModifier float64
	dose          float64 // Lifetime BED, never decreases

	Radiation      float64 // Ambient BED/day
	PartsRadiation float64 // BED/day emitted by equipment
	Exposure       float64 // Fraction absorbed after shielding
	Shielding      float64

	LastChange       float64 // HP/day from factors and equipment
	LastChangeTotal  float64 // LastChange plus recuperation and decay
	LastRecuperation float64 // % of missing HP per day
	LastDecay        float64 // % of current HP per day
	CachedChange     float64 // Sum of cachable factors at the last active update

	// Factors holds the last multiplied change of each factor, by name.
	Factors map[string]float64

	OnEVA bool

	trait      string // Original trait while demoted
	conditions []Condition
}

// NewStatus returns a healthy status for a kerbal of the given level.
func NewStatus(cfg *config.Config, name string, level int) *Status {
	s := &Status{
		cfg:      cfg,
		name:     name,
		level:    level,
		Exposure: 1,
		Factors:  make(map[string]float64),
	}
	s.hp = s.MaxHP()
	return s
}

// Name returns the kerbal's name, the key to its crew record.
func (s *Status) Name() string { return s.name }

// Level returns the experience level MaxHP is computed from.
func (s *Status) Level() int { return s.level }

// HP returns current health points.
func (s *Status) HP() float64 { return s.hp }

// Dose returns the lifetime absorbed dose in BED.
func (s *Status) Dose() float64 { return s.dose }

// MaxHPModifier returns the additive MaxHP bonus.
func (s *Status) MaxHPModifier() float64 { return s.maxHPModifier }

// Trait returns the trait remembered while the kerbal is demoted.
func (s *Status) Trait() string { return s.trait }

// RadiationHPModifier is the MaxHP multiplier left by the lifetime dose.
func (s *Status) RadiationHPModifier() float64 {
	if !s.cfg.Radiation.Enabled {
		return 1
	}
	return radiation.HPModifier(s.dose, s.cfg.Radiation.Effect)
}

// MaxHP is the level-scaled capacity reduced by radiation. It may be
// negative after an extreme dose.
func (s *Status) MaxHP() float64 {
	h := s.cfg.Health
	return (h.BaseMaxHP + h.HPPerLevel*float64(s.level) + s.maxHPModifier) * s.RadiationHPModifier()
}

// HPRatio returns HP as a fraction of MaxHP, or 0 when MaxHP is not positive.
func (s *Status) HPRatio() float64 {
	m := s.MaxHP()
	if m <= 0 {
		return 0
	}
	return s.hp / m
}

// SetHP stores v clamped into [0, MaxHP].
func (s *Status) SetHP(v float64) {
	s.hp = math.Min(math.Max(v, 0), math.Max(s.MaxHP(), 0))
}

// SetLevel updates the level and re-clamps HP.
func (s *Status) SetLevel(level int) {
	s.level = level
	s.SetHP(s.hp)
}

// SetMaxHPModifier updates the MaxHP bonus and re-clamps HP.
func (s *Status) SetMaxHPModifier(v float64) {
	s.maxHPModifier = v
	s.SetHP(s.hp)
}

// AddDose accumulates absorbed dose and re-clamps HP. Negative amounts are ignored.
func (s *Status) AddDose(bed float64) {
	if bed <= 0 {
		return
	}
	s.dose += bed
	s.SetHP(s.hp)
}

// Frozen reports whether the kerbal is in stasis.
func (s *Status) Frozen() bool { return s.HasCondition(Frozen) }

// IsDead reports whether the kerbal has died.
func (s *Status) IsDead() bool { return s.HasCondition(Dead) }
