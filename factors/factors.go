// Package factors defines health factors, the catalog that holds them, and
// the multiplier channels through which equipment scales them.
package factors

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pthm-cable/crewhealth/equipment"
)

// Situation is where a vessel currently is.
type Situation uint8

const (
	SituationPrelaunch Situation = iota
	SituationLanded
	SituationSplashed
	SituationFlying
	SituationSubOrbital
	SituationOrbiting
	SituationEscaping
)

var situationNames = [...]string{
	SituationPrelaunch:  "prelaunch",
	SituationLanded:     "landed",
	SituationSplashed:   "splashed",
	SituationFlying:     "flying",
	SituationSubOrbital: "sub_orbital",
	SituationOrbiting:   "orbiting",
	SituationEscaping:   "escaping",
}

func (s Situation) String() string {
	if int(s) < len(situationNames) {
		return situationNames[s]
	}
	return fmt.Sprintf("situation(%d)", s)
}

// InSpace reports whether the situation is free fall.
func (s Situation) InSpace() bool {
	return s == SituationSubOrbital || s == SituationOrbiting || s == SituationEscaping
}

// ParseSituation parses a situation name as produced by String.
func ParseSituation(name string) (Situation, error) {
	lowered := strings.ToLower(strings.TrimSpace(name))
	for i, n := range situationNames {
		if n == lowered {
			return Situation(i), nil
		}
	}
	return 0, fmt.Errorf("unknown situation %q", name)
}

// UnmarshalText implements encoding.TextUnmarshaler for config and scenario files.
func (s *Situation) UnmarshalText(text []byte) error {
	parsed, err := ParseSituation(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (s Situation) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Subject is the read-only view of a crew member that factors evaluate.
type Subject struct {
	Name      string
	Trait     string
	Level     int
	Assigned  bool // Aboard a vessel
	OnEVA     bool
	Crew      int // Kerbals aboard the vessel
	Capacity  int // Crew capacity of the vessel
	Situation Situation
	AtHome    bool // Inside the home body's atmosphere
	Connected bool // Has a link home
	Loner     bool // Trait is immune to loneliness
}

// Factor contributes an HP/day delta for a crew member, before multipliers.
// Cachable factors are assumed unchanged between active recomputations.
type Factor interface {
	Name() string
	Cachable() bool
	ChangePerDay(s Subject) float64
}

type funcFactor struct {
	name     string
	cachable bool
	fn       func(Subject) float64
}

func (f funcFactor) Name() string                   { return f.name }
func (f funcFactor) Cachable() bool                 { return f.cachable }
func (f funcFactor) ChangePerDay(s Subject) float64 { return f.fn(s) }

// New adapts a plain function into a Factor.
func New(name string, cachable bool, fn func(Subject) float64) Factor {
	return funcFactor{name: name, cachable: cachable, fn: fn}
}

// Catalog is an ordered, immutable set of factors with unique names.
type Catalog struct {
	factors []Factor
	index   map[string]int
}

// NewCatalog builds a catalog. Names must be non-empty, unique, and must not
// collide with the "All" multiplier channel.
func NewCatalog(fs ...Factor) (*Catalog, error) {
	c := &Catalog{
		factors: make([]Factor, 0, len(fs)),
		index:   make(map[string]int, len(fs)),
	}
	var errs []error
	for _, f := range fs {
		name := f.Name()
		switch {
		case name == "":
			errs = append(errs, errors.New("factor name must not be empty"))
		case name == equipment.AllChannel:
			errs = append(errs, fmt.Errorf("factor name %q is reserved", name))
		default:
			if _, dup := c.index[name]; dup {
				errs = append(errs, fmt.Errorf("duplicate factor %q", name))
				continue
			}
			c.index[name] = len(c.factors)
			c.factors = append(c.factors, f)
		}
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("building factor catalog: %w", errors.Join(errs...))
	}
	return c, nil
}

// Len returns the number of factors.
func (c *Catalog) Len() int {
	return len(c.factors)
}

// Find returns the factor with the given name.
func (c *Catalog) Find(name string) (Factor, bool) {
	i, ok := c.index[name]
	if !ok {
		return nil, false
	}
	return c.factors[i], true
}

// Names returns factor names in catalog order.
func (c *Catalog) Names() []string {
	names := make([]string, len(c.factors))
	for i, f := range c.factors {
		names[i] = f.Name()
	}
	return names
}

// Evaluate sums the multiplied contributions of every factor whose Cachable
// flag equals cachable. Each contribution is also written to out, keyed by
// factor name, when out is non-nil. ch must already be composed.
func (c *Catalog) Evaluate(s Subject, ch *Channels, cachable bool, out map[string]float64) (float64, error) {
	all, err := ch.Multiplier(equipment.AllChannel)
	if err != nil {
		return 0, err
	}
	var sum float64
	for _, f := range c.factors {
		if f.Cachable() != cachable {
			continue
		}
		m, err := ch.Multiplier(f.Name())
		if err != nil {
			return 0, err
		}
		change := f.ChangePerDay(s) * m * all
		if out != nil {
			out[f.Name()] = change
		}
		sum += change
	}
	return sum, nil
}
