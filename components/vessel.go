package components

import (
	"github.com/pthm-cable/crewhealth/equipment"
	"github.com/pthm-cable/crewhealth/factors"
	"github.com/pthm-cable/crewhealth/radiation"
)

// Vessel holds where a vessel is and how it is simulated.
type Vessel struct {
	Name      string
	Loaded    bool
	Location  radiation.Location
	Situation factors.Situation
	AtHome    bool // Landed or splashed on the home body
	Connected bool // Has a link to mission control
}

// PartSpec is a part as the host stores it: seats and configured modules.
type PartSpec struct {
	Name    string             `yaml:"name"`
	Seats   int                `yaml:"seats"`
	Modules []equipment.Module `yaml:"modules"`
}

// Hull holds a vessel's parts and stored resources.
type Hull struct {
	Parts     []PartSpec
	Resources []equipment.ResourceAmount
}

// Capacity is the total number of seats.
func (h *Hull) Capacity() int {
	n := 0
	for _, p := range h.Parts {
		n += p.Seats
	}
	return n
}

// HasPart reports whether the hull has a part with the given name.
func (h *Hull) HasPart(name string) bool {
	for _, p := range h.Parts {
		if p.Name == name {
			return true
		}
	}
	return false
}

// EquipmentParts resolves the hull into equipment parts. seats maps each
// part name to the kerbals seated in it.
func (h *Hull) EquipmentParts(seats map[string][]string) []equipment.Part {
	out := make([]equipment.Part, 0, len(h.Parts))
	for _, p := range h.Parts {
		mods := make([]equipment.Contributor, len(p.Modules))
		for i, m := range p.Modules {
			mods[i] = m
		}
		out = append(out, equipment.Part{Name: p.Name, Crew: seats[p.Name], Modules: mods})
	}
	return out
}
