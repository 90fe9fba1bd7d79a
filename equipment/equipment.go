// Package equipment describes health-affecting part modules and the
// contributions they make to the crew members they affect.
package equipment

// Contribution is what a single piece of equipment offers an affected kerbal.
type Contribution struct {
	HPChangePerDay float64 // Additive HP/day delta
	Recuperation   float64 // % of missing HP restored per day
	Decay          float64 // % of current HP lost per day
	MultiplyFactor string  // Multiplier channel ("All" or a factor name)
	Multiplier     float64 // 1 means no effect
	CrewCap        int     // Crew served at full strength; 0 = unlimited ("free")
	Shielding      float64
	Radioactivity  float64 // BED/day emitted
	PartCrewOnly   bool    // Only affects crew seated in the same part
	Active         bool
}

// Contributor is anything a part carries that can affect crew health.
type Contributor interface {
	Contribution() Contribution
}

// Module is a configurable health module, the standard Contributor.
type Module struct {
	Title          string  `yaml:"title"`
	HPChangePerDay float64 `yaml:"hp_change_per_day"`
	Recuperation   float64 `yaml:"recuperation"`
	Decay          float64 `yaml:"decay"`
	MultiplyFactor string  `yaml:"multiply_factor"`
	Multiplier     float64 `yaml:"multiplier"`
	CrewCap        int     `yaml:"crew_cap"`
	Shielding      float64 `yaml:"shielding"`
	Radioactivity  float64 `yaml:"radioactivity"`
	PartCrewOnly   bool    `yaml:"part_crew_only"`
	Disabled       bool    `yaml:"disabled"`
}

// Contribution implements Contributor. A zero multiplier is read as 1 so that
// modules configured without one stay neutral.
func (m Module) Contribution() Contribution {
	mult := m.Multiplier
	if mult == 0 {
		mult = 1
	}
	channel := m.MultiplyFactor
	if channel == "" {
		channel = AllChannel
	}
	return Contribution{
		HPChangePerDay: m.HPChangePerDay,
		Recuperation:   m.Recuperation,
		Decay:          m.Decay,
		MultiplyFactor: channel,
		Multiplier:     mult,
		CrewCap:        m.CrewCap,
		Shielding:      m.Shielding,
		Radioactivity:  m.Radioactivity,
		PartCrewOnly:   m.PartCrewOnly,
		Active:         !m.Disabled,
	}
}

// AllChannel is the multiplier channel applied to every factor.
const AllChannel = "All"

// Part is a vessel part: its seated crew and the equipment it carries.
type Part struct {
	Name    string
	Crew    []string
	Modules []Contributor
}

// Seats reports whether the named kerbal is seated in this part.
func (p Part) Seats(name string) bool {
	for _, c := range p.Crew {
		if c == name {
			return true
		}
	}
	return false
}

// Effect is a Contribution resolved for a particular kerbal.
type Effect struct {
	Contribution
	Affected int // Crew sharing the equipment
}

// Share is the fraction of a capacity-bounded benefit each affected kerbal receives.
func (e Effect) Share() float64 {
	if e.CrewCap <= 0 || e.Affected <= e.CrewCap {
		return 1
	}
	return float64(e.CrewCap) / float64(e.Affected)
}

// Affecting returns the active contributions that reach the named kerbal,
// in part order. vesselCrew is the number of kerbals aboard the vessel.
func Affecting(parts []Part, name string, vesselCrew int) []Effect {
	var out []Effect
	for _, p := range parts {
		seated := p.Seats(name)
		for _, m := range p.Modules {
			c := m.Contribution()
			if !c.Active {
				continue
			}
			affected := vesselCrew
			if c.PartCrewOnly {
				if !seated {
					continue
				}
				affected = len(p.Crew)
			}
			out = append(out, Effect{Contribution: c, Affected: affected})
		}
	}
	return out
}

// ResourceAmount is a quantity of a stored resource aboard a vessel.
type ResourceAmount struct {
	Resource string  `yaml:"resource"`
	Amount   float64 `yaml:"amount"`
	Capacity float64 `yaml:"capacity"`
}

// ResourceShielding sums the shielding provided by stored resources.
// Resources missing from the table provide none.
func ResourceShielding(table map[string]float64, amounts []ResourceAmount) float64 {
	var total float64
	for _, a := range amounts {
		total += a.Amount * table[a.Resource]
	}
	return total
}
