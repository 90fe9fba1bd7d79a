package game

import (
	"fmt"
	"sort"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/crewhealth/components"
	"github.com/pthm-cable/crewhealth/factors"
	"github.com/pthm-cable/crewhealth/health"
	"github.com/pthm-cable/crewhealth/radiation"
)

// crewRecord is a handle on a crew entity. The entity is looked up by name on
// every call, so a handle outliving its kerbal reads as zero values.
type crewRecord struct {
	g    *Game
	name string
}

func (r crewRecord) crew() *components.Crew {
	e, ok := r.g.crewIndex[r.name]
	if !ok {
		return nil
	}
	return r.g.crewMap.Get(e)
}

func (r crewRecord) Name() string { return r.name }

func (r crewRecord) Level() int {
	if c := r.crew(); c != nil {
		return c.Level
	}
	return 0
}

func (r crewRecord) Trait() string {
	if c := r.crew(); c != nil {
		return c.Trait
	}
	return ""
}

func (r crewRecord) SetTrait(trait string) {
	if c := r.crew(); c != nil {
		c.Trait = trait
	}
}

func (r crewRecord) Type() health.CrewType {
	if c := r.crew(); c != nil {
		return c.Type
	}
	return health.TypeUnowned
}

func (r crewRecord) SetType(t health.CrewType) {
	if c := r.crew(); c != nil {
		c.Type = t
	}
}

func (r crewRecord) RosterStatus() health.RosterStatus {
	if c := r.crew(); c != nil {
		return c.Roster
	}
	return health.RosterMissing
}

func (r crewRecord) SetRosterStatus(s health.RosterStatus) {
	if c := r.crew(); c != nil {
		c.Roster = s
	}
}

func (r crewRecord) Seated() bool {
	if c := r.crew(); c != nil {
		return c.Seated()
	}
	return false
}

func (r crewRecord) Unseat() {
	if c := r.crew(); c != nil {
		c.Part = ""
		c.EVA = false
	}
}

// Crew implements health.Host.
func (g *Game) Crew(name string) (health.CrewRecord, bool) {
	if _, ok := g.crewIndex[name]; !ok {
		return nil, false
	}
	return crewRecord{g: g, name: name}, true
}

// Surroundings implements health.Host.
func (g *Game) Surroundings(name string) (health.Surroundings, bool) {
	e, ok := g.crewIndex[name]
	if !ok {
		return health.Surroundings{}, false
	}
	assign := g.assignMap.Get(e)
	if !assign.Aboard {
		return health.Surroundings{}, false
	}

	v := g.vesselMap.Get(assign.Vessel)
	hull := g.hullMap.Get(assign.Vessel)
	crew, seats := g.aboard(assign.Vessel)

	return health.Surroundings{
		Vessel:    v.Name,
		Loaded:    v.Loaded,
		Capacity:  hull.Capacity(),
		Crew:      crew,
		Parts:     hull.EquipmentParts(seats),
		Resources: hull.Resources,
		Location:  v.Location,
		Situation: v.Situation,
		AtHome:    v.AtHome,
		Connected: v.Connected,
	}, true
}

// aboard returns the living crew of a vessel, sorted by name, and the
// kerbals seated in each part.
func (g *Game) aboard(vessel ecs.Entity) ([]string, map[string][]string) {
	var crew []string
	seats := make(map[string][]string)

	query := g.crewFilter.Query()
	for query.Next() {
		c, assign := query.Get()
		if !assign.Aboard || assign.Vessel != vessel || c.Roster == health.RosterDead {
			continue
		}
		crew = append(crew, c.Name)
		if c.Part != "" {
			seats[c.Part] = append(seats[c.Part], c.Name)
		}
	}

	sort.Strings(crew)
	for _, names := range seats {
		sort.Strings(names)
	}
	return crew, seats
}

// RefreshCrew implements health.Host.
func (g *Game) RefreshCrew() {
	g.refreshes++
	g.log.Debug("crew roster refreshed", "count", g.refreshes)
}

// Board assigns a kerbal to a vessel, seated in part.
func (g *Game) Board(name, vessel, part string) error {
	ce, ok := g.crewIndex[name]
	if !ok {
		return fmt.Errorf("unknown kerbal %q", name)
	}
	ve, ok := g.vesselIndex[vessel]
	if !ok {
		return fmt.Errorf("unknown vessel %q", vessel)
	}
	c := g.crewMap.Get(ce)
	if c.Roster == health.RosterDead {
		return fmt.Errorf("kerbal %q is dead", name)
	}

	hull := g.hullMap.Get(ve)
	spec, ok := findPart(hull, part)
	if !ok {
		return fmt.Errorf("vessel %q has no part %q", vessel, part)
	}
	_, seats := g.aboard(ve)
	if len(seats[part]) >= spec.Seats {
		return fmt.Errorf("part %q of vessel %q is full", part, vessel)
	}

	c.Part = part
	c.EVA = false
	c.Roster = health.RosterAssigned
	*g.assignMap.Get(ce) = components.Assignment{Vessel: ve, Aboard: true}

	g.log.Info("kerbal boarded", "kerbal", name, "vessel", vessel, "part", part)
	return nil
}

// Recover returns a kerbal to the space center.
func (g *Game) Recover(name string) error {
	ce, ok := g.crewIndex[name]
	if !ok {
		return fmt.Errorf("unknown kerbal %q", name)
	}
	c := g.crewMap.Get(ce)
	c.Part = ""
	c.EVA = false
	if c.Roster != health.RosterDead {
		c.Roster = health.RosterAvailable
	}
	*g.assignMap.Get(ce) = components.Assignment{}

	g.log.Info("kerbal recovered", "kerbal", name)
	return nil
}

// GoEVA unseats a kerbal while keeping it with its vessel.
func (g *Game) GoEVA(name string) error {
	ce, ok := g.crewIndex[name]
	if !ok {
		return fmt.Errorf("unknown kerbal %q", name)
	}
	if !g.assignMap.Get(ce).Aboard {
		return fmt.Errorf("kerbal %q is not aboard a vessel", name)
	}
	c := g.crewMap.Get(ce)
	c.Part = ""
	c.EVA = true
	if s, ok := g.statuses.Find(name); ok {
		s.OnEVA = true
	}
	return nil
}

// MoveVessel relocates a vessel.
func (g *Game) MoveVessel(vessel string, loc radiation.Location, sit factors.Situation) error {
	ve, ok := g.vesselIndex[vessel]
	if !ok {
		return fmt.Errorf("unknown vessel %q", vessel)
	}
	if _, ok := g.system.Body(loc.Body); !ok {
		return fmt.Errorf("unknown body %q", loc.Body)
	}
	v := g.vesselMap.Get(ve)
	v.Location = loc
	v.Situation = sit
	v.AtHome = g.atHome(*v)
	return nil
}

// SetLoaded switches a vessel between active and background simulation.
func (g *Game) SetLoaded(vessel string, loaded bool) error {
	ve, ok := g.vesselIndex[vessel]
	if !ok {
		return fmt.Errorf("unknown vessel %q", vessel)
	}
	g.vesselMap.Get(ve).Loaded = loaded
	return nil
}

// Vessel returns a copy of the named vessel.
func (g *Game) Vessel(name string) (components.Vessel, bool) {
	ve, ok := g.vesselIndex[name]
	if !ok {
		return components.Vessel{}, false
	}
	return *g.vesselMap.Get(ve), true
}

// Hull returns the named vessel's hull for modification.
func (g *Game) Hull(name string) (*components.Hull, bool) {
	ve, ok := g.vesselIndex[name]
	if !ok {
		return nil, false
	}
	return g.hullMap.Get(ve), true
}

// CrewState returns a copy of the named roster entry.
func (g *Game) CrewState(name string) (components.Crew, bool) {
	ce, ok := g.crewIndex[name]
	if !ok {
		return components.Crew{}, false
	}
	return *g.crewMap.Get(ce), true
}

// Refreshes counts RefreshCrew calls.
func (g *Game) Refreshes() int { return g.refreshes }

func findPart(h *components.Hull, name string) (components.PartSpec, bool) {
	for _, p := range h.Parts {
		if p.Name == name {
			return p, true
		}
	}
	return components.PartSpec{}, false
}
