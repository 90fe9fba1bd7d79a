package health

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/pthm-cable/crewhealth/equipment"
	"github.com/pthm-cable/crewhealth/factors"
	"github.com/pthm-cable/crewhealth/radiation"
)

// CrewType is the working role of a crew record.
type CrewType uint8

const (
	TypeCrew CrewType = iota
	TypeTourist
	TypeApplicant
	TypeUnowned
)

var crewTypeNames = [...]string{"crew", "tourist", "applicant", "unowned"}

func (t CrewType) String() string {
	if int(t) < len(crewTypeNames) {
		return crewTypeNames[t]
	}
	return fmt.Sprintf("crewtype(%d)", t)
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *CrewType) UnmarshalText(text []byte) error {
	i, err := parseEnum(crewTypeNames[:], string(text))
	if err != nil {
		return fmt.Errorf("unknown crew type %q", text)
	}
	*t = CrewType(i)
	return nil
}

// RosterStatus is where a crew record sits in the roster.
type RosterStatus uint8

const (
	RosterAvailable RosterStatus = iota
	RosterAssigned
	RosterDead
	RosterMissing
)

var rosterNames = [...]string{"available", "assigned", "dead", "missing"}

func (r RosterStatus) String() string {
	if int(r) < len(rosterNames) {
		return rosterNames[r]
	}
	return fmt.Sprintf("roster(%d)", r)
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *RosterStatus) UnmarshalText(text []byte) error {
	i, err := parseEnum(rosterNames[:], string(text))
	if err != nil {
		return fmt.Errorf("unknown roster status %q", text)
	}
	*r = RosterStatus(i)
	return nil
}

func parseEnum(names []string, s string) (int, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, n := range names {
		if n == s {
			return i, nil
		}
	}
	return 0, fmt.Errorf("no match for %q", s)
}

// TouristTrait is the trait a demoted crew record carries.
const TouristTrait = "Tourist"

// CrewRecord is the host-owned roster entry behind a Status. Records are
// looked up by name on every use and never retained.
type CrewRecord interface {
	Name() string
	Level() int
	Trait() string
	SetTrait(trait string)
	Type() CrewType
	SetType(t CrewType)
	RosterStatus() RosterStatus
	SetRosterStatus(r RosterStatus)
	Seated() bool
	Unseat()
}

// Surroundings describes the vessel a kerbal is aboard.
type Surroundings struct {
	Vessel    string
	Loaded    bool // Actively simulated
	Capacity  int
	Crew      []string
	Parts     []equipment.Part
	Resources []equipment.ResourceAmount
	Location  radiation.Location
	Situation factors.Situation
	AtHome    bool
	Connected bool
}

// Host owns the crew roster and vessels.
type Host interface {
	Crew(name string) (CrewRecord, bool)
	// Surroundings returns false when the kerbal is not aboard a vessel.
	Surroundings(name string) (Surroundings, bool)
	// RefreshCrew is called after any role or roster mutation.
	RefreshCrew()
}

// Severity ranks notifications.
type Severity uint8

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityAlert
)

func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityAlert:
		return "alert"
	}
	return fmt.Sprintf("severity(%d)", s)
}

// Message is a user-visible notification.
type Message struct {
	ID       uuid.UUID
	Kerbal   string
	Severity Severity
	Title    string
	Text     string
}

// NewMessage stamps a notification with a fresh ID.
func NewMessage(kerbal string, sev Severity, title, text string) Message {
	return Message{ID: uuid.New(), Kerbal: kerbal, Severity: sev, Title: title, Text: text}
}

// Notifier receives fire-and-forget notifications.
type Notifier interface {
	Notify(m Message)
}

// NotifierFunc adapts a function into a Notifier.
type NotifierFunc func(Message)

func (f NotifierFunc) Notify(m Message) { f(m) }
