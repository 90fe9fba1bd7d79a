package events

import (
	"fmt"

	"github.com/pthm-cable/crewhealth/config"
	"github.com/pthm-cable/crewhealth/health"
)

// Accident costs a kerbal a fraction of its current HP.
type Accident struct {
	Chance float64 // Per day
	Damage float64 // Fraction of current HP
}

// NewAccident reads chance and damage from cfg.
func NewAccident(cfg *config.Config) Accident {
	return Accident{Chance: cfg.Events.AccidentChance, Damage: cfg.Events.AccidentDamage}
}

func (Accident) Name() string { return "Accident" }

// Condition excludes dead and frozen kerbals.
func (Accident) Condition(s *health.Status) bool {
	return !s.IsDead() && !s.Frozen()
}

func (a Accident) ChancePerDay() float64 { return a.Chance }

func (a Accident) Run(s *health.Status) Outcome {
	before := s.HP()
	s.SetHP(before * (1 - a.Damage))
	lost := before - s.HP()
	return Outcome{
		Event:    a.Name(),
		Kerbal:   s.Name(),
		HPLost:   lost,
		Severity: health.SeverityWarning,
		Text:     fmt.Sprintf("%s has had an accident and lost %.1f HP.", s.Name(), lost),
	}
}
