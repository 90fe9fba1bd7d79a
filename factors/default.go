package factors

import (
	"fmt"

	"github.com/pthm-cable/crewhealth/config"
)

// Standard factor names. Each is also a multiplier channel.
const (
	Assigned     = "Assigned"
	Crowded      = "Crowded"
	Lonely       = "Lonely"
	Microgravity = "Microgravity"
	EVA          = "EVA"
	Connected    = "Connected"
	Home         = "Home"
	KSC          = "KSC"
)

// Default builds the standard catalog with magnitudes from cfg.
func Default(cfg *config.Config) *Catalog {
	f := cfg.Factors
	c, err := NewCatalog(
		New(Assigned, true, func(s Subject) float64 {
			if !s.Assigned {
				return 0
			}
			return f.Assigned
		}),
		New(Crowded, true, func(s Subject) float64 {
			if !s.Assigned || s.Capacity <= 0 {
				return 0
			}
			return f.Crowded * float64(s.Crew) / float64(s.Capacity)
		}),
		New(Lonely, true, func(s Subject) float64 {
			if !s.Assigned || s.Crew > 1 || s.Loner {
				return 0
			}
			return f.Lonely
		}),
		New(Microgravity, false, func(s Subject) float64 {
			if s.OnEVA || (s.Assigned && s.Situation.InSpace()) {
				return f.Microgravity
			}
			return 0
		}),
		New(EVA, false, func(s Subject) float64 {
			if !s.OnEVA {
				return 0
			}
			return f.EVA
		}),
		New(Connected, false, func(s Subject) float64 {
			if !s.Assigned || !s.Connected {
				return 0
			}
			return f.Connected
		}),
		New(Home, false, func(s Subject) float64 {
			if !s.Assigned || !s.AtHome {
				return 0
			}
			return f.Home
		}),
		New(KSC, true, func(s Subject) float64 {
			if s.Assigned {
				return 0
			}
			return f.KSC
		}),
	)
	if err != nil {
		// Names are constants above; a failure here is a programming error.
		panic(fmt.Sprintf("factors: default catalog: %v", err))
	}
	return c
}
