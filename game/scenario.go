package game

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/crewhealth/components"
	"github.com/pthm-cable/crewhealth/equipment"
	"github.com/pthm-cable/crewhealth/factors"
	"github.com/pthm-cable/crewhealth/health"
	"github.com/pthm-cable/crewhealth/radiation"
)

//go:embed scenario.yaml
var defaultScenario []byte

// Scenario describes the bodies, vessels and crew a game starts with.
type Scenario struct {
	Home    string           `yaml:"home"`
	Bodies  []radiation.Body `yaml:"bodies"`
	Vessels []VesselSpec     `yaml:"vessels"`
	Crew    []CrewSpec       `yaml:"crew"`
}

// VesselSpec is a vessel entry in a scenario file.
type VesselSpec struct {
	Name      string                     `yaml:"name"`
	Body      string                     `yaml:"body"`
	Altitude  float64                    `yaml:"altitude"`
	Situation factors.Situation          `yaml:"situation"`
	Loaded    bool                       `yaml:"loaded"`
	Connected bool                       `yaml:"connected"`
	Parts     []components.PartSpec      `yaml:"parts"`
	Resources []equipment.ResourceAmount `yaml:"resources"`
}

// CrewSpec is a roster entry in a scenario file. An empty Vessel leaves the
// kerbal available at the space center.
type CrewSpec struct {
	Name   string          `yaml:"name"`
	Level  int             `yaml:"level"`
	Trait  string          `yaml:"trait"`
	Type   health.CrewType `yaml:"type"`
	Vessel string          `yaml:"vessel"`
	Part   string          `yaml:"part"`
	EVA    bool            `yaml:"eva"`
}

// DefaultScenario returns the embedded scenario.
func DefaultScenario() (*Scenario, error) {
	return parseScenario(defaultScenario)
}

// LoadScenario reads a scenario file, or the embedded default if path is empty.
func LoadScenario(path string) (*Scenario, error) {
	if path == "" {
		return DefaultScenario()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario file: %w", err)
	}
	return parseScenario(data)
}

func parseScenario(data []byte) (*Scenario, error) {
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing scenario: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks names are unique and every reference resolves.
func (s *Scenario) Validate() error {
	var errs []error

	vessels := make(map[string]VesselSpec, len(s.Vessels))
	for _, v := range s.Vessels {
		if _, dup := vessels[v.Name]; dup {
			errs = append(errs, fmt.Errorf("duplicate vessel %q", v.Name))
		}
		vessels[v.Name] = v
	}

	seated := make(map[string]int)
	names := make(map[string]struct{}, len(s.Crew))
	for _, c := range s.Crew {
		if c.Name == "" {
			errs = append(errs, errors.New("crew entry without a name"))
			continue
		}
		if _, dup := names[c.Name]; dup {
			errs = append(errs, fmt.Errorf("duplicate kerbal %q", c.Name))
		}
		names[c.Name] = struct{}{}

		if c.Vessel == "" {
			if c.Part != "" || c.EVA {
				errs = append(errs, fmt.Errorf("kerbal %q has a part or EVA but no vessel", c.Name))
			}
			continue
		}
		v, ok := vessels[c.Vessel]
		if !ok {
			errs = append(errs, fmt.Errorf("kerbal %q: unknown vessel %q", c.Name, c.Vessel))
			continue
		}
		if c.Part == "" {
			continue
		}
		hull := components.Hull{Parts: v.Parts}
		if !hull.HasPart(c.Part) {
			errs = append(errs, fmt.Errorf("kerbal %q: vessel %q has no part %q", c.Name, c.Vessel, c.Part))
			continue
		}
		seated[c.Vessel+"/"+c.Part]++
	}

	for _, v := range s.Vessels {
		for _, p := range v.Parts {
			if n := seated[v.Name+"/"+p.Name]; n > p.Seats {
				errs = append(errs, fmt.Errorf("vessel %q part %q: %d kerbals in %d seats", v.Name, p.Name, n, p.Seats))
			}
		}
	}

	return errors.Join(errs...)
}
