package health

import (
	"testing"

	"github.com/pthm-cable/crewhealth/config"
	"github.com/pthm-cable/crewhealth/factors"
	"github.com/pthm-cable/crewhealth/radiation"
)

type fakeRecord struct {
	name   string
	level  int
	trait  string
	typ    CrewType
	roster RosterStatus
	seated bool
}

func (r *fakeRecord) Name() string                   { return r.name }
func (r *fakeRecord) Level() int                     { return r.level }
func (r *fakeRecord) Trait() string                  { return r.trait }
func (r *fakeRecord) SetTrait(t string)              { r.trait = t }
func (r *fakeRecord) Type() CrewType                 { return r.typ }
func (r *fakeRecord) SetType(t CrewType)             { r.typ = t }
func (r *fakeRecord) RosterStatus() RosterStatus     { return r.roster }
func (r *fakeRecord) SetRosterStatus(s RosterStatus) { r.roster = s }
func (r *fakeRecord) Seated() bool                   { return r.seated }
func (r *fakeRecord) Unseat()                        { r.seated = false }

type fakeHost struct {
	crew      map[string]*fakeRecord
	vessels   map[string]Surroundings
	refreshes int
}

func newFakeHost() *fakeHost {
	return &fakeHost{crew: map[string]*fakeRecord{}, vessels: map[string]Surroundings{}}
}

func (h *fakeHost) Crew(name string) (CrewRecord, bool) {
	r, ok := h.crew[name]
	if !ok {
		return nil, false
	}
	return r, true
}

func (h *fakeHost) Surroundings(name string) (Surroundings, bool) {
	s, ok := h.vessels[name]
	return s, ok
}

func (h *fakeHost) RefreshCrew() { h.refreshes++ }

func (h *fakeHost) addPilot(name string) *fakeRecord {
	r := &fakeRecord{name: name, trait: "Pilot", typ: TypeCrew, roster: RosterAvailable}
	h.crew[name] = r
	return r
}

// board seats the named kerbals together in a loaded vessel in high orbit.
func (h *fakeHost) board(capacity int, names ...string) {
	for _, n := range names {
		h.vessels[n] = Surroundings{
			Vessel:    "Station",
			Loaded:    true,
			Capacity:  capacity,
			Crew:      names,
			Location:  radiation.Location{Body: "Kerbin", Altitude: 300_000},
			Situation: factors.SituationOrbiting,
		}
		if r, ok := h.crew[n]; ok {
			r.seated = true
			r.roster = RosterAssigned
		}
	}
}

type inbox struct {
	messages []Message
}

func (b *inbox) Notify(m Message) { b.messages = append(b.messages, m) }

func (b *inbox) count(sev Severity) int {
	n := 0
	for _, m := range b.messages {
		if m.Severity == sev {
			n++
		}
	}
	return n
}

func testSystem(t *testing.T) *radiation.System {
	t.Helper()
	sys, err := radiation.NewSystem("Kerbin", []radiation.Body{
		{Name: "Sun", Radius: 261_600_000},
		{Name: "Kerbin", Parent: "Sun", Radius: 600_000, OrbitRadius: 13_599_840_256,
			AtmosphereDepth: 70_000, TroposphereAltitude: 18_000, SpaceHighAltitude: 250_000},
	})
	if err != nil {
		t.Fatal(err)
	}
	return sys
}

// noRadiation returns defaults with radiation off, so HP math is exact.
func noRadiation() *config.Config {
	cfg := config.Default()
	cfg.Radiation.Enabled = false
	return cfg
}

func newTestEngine(t *testing.T, cfg *config.Config) (*Engine, *fakeHost, *inbox) {
	t.Helper()
	host := newFakeHost()
	box := &inbox{}
	e := NewEngine(cfg, factors.Default(cfg), testSystem(t), host, box, nil)
	return e, host, box
}

func hasEffect(effects []Effect, k EffectKind) bool {
	for _, e := range effects {
		if e.Kind == k {
			return true
		}
	}
	return false
}
