// Package radiation models cosmic radiation, shielding attenuation and the
// lifetime dose that degrades a kerbal's maximum HP.
//
// Rates are banana equivalent doses (BED, 1e-7 Sv) per day.
package radiation

import (
	"errors"
	"fmt"
	"math"

	"github.com/pthm-cable/crewhealth/config"
)

// BEDPerSievert converts sieverts to banana equivalent doses.
const BEDPerSievert = 1e7

// Exposure returns the fraction of radiation that gets through shielding on
// a vessel with the given crew capacity. Capacity below 1 is treated as 1.
func Exposure(shielding, shieldingEffect float64, capacity int) float64 {
	c := math.Max(float64(capacity), 1)
	return math.Exp2(-shielding * shieldingEffect / math.Pow(c, 2.0/3.0))
}

// DoseIncrement converts a per-day rate into the dose absorbed over seconds.
func DoseIncrement(rate, dayLength, seconds float64) float64 {
	return rate / dayLength * seconds
}

// HPModifier returns the MaxHP multiplier left after absorbing dose.
// It goes negative for very large doses.
func HPModifier(dose, effect float64) float64 {
	return 1 - dose/BEDPerSievert*effect
}

// Body is a celestial body. The star has no parent.
type Body struct {
	Name                string  `yaml:"name"`
	Parent              string  `yaml:"parent"`
	Radius              float64 `yaml:"radius"`
	OrbitRadius         float64 `yaml:"orbit_radius"`         // Semi-major axis around Parent
	AtmosphereDepth     float64 `yaml:"atmosphere_depth"`     // 0 for airless bodies
	TroposphereAltitude float64 `yaml:"troposphere_altitude"` // Upper bound of the dense layer
	SpaceHighAltitude   float64 `yaml:"space_high_altitude"`  // Boundary between low and high space
}

// Location is a point relative to a body's surface.
type Location struct {
	Body     string  `yaml:"body"`
	Altitude float64 `yaml:"altitude"`
}

// System is a set of bodies around exactly one star, with one home body.
type System struct {
	Home   string
	star   string
	bodies map[string]Body
}

// NewSystem validates the body graph. Every parent must exist, exactly one
// body may be parentless and home must name a body.
func NewSystem(home string, bodies []Body) (*System, error) {
	s := &System{Home: home, bodies: make(map[string]Body, len(bodies))}
	var errs []error
	for _, b := range bodies {
		if b.Name == "" {
			errs = append(errs, errors.New("body name must not be empty"))
			continue
		}
		if _, dup := s.bodies[b.Name]; dup {
			errs = append(errs, fmt.Errorf("duplicate body %q", b.Name))
			continue
		}
		s.bodies[b.Name] = b
		if b.Parent == "" {
			if s.star != "" {
				errs = append(errs, fmt.Errorf("bodies %q and %q both lack a parent", s.star, b.Name))
				continue
			}
			s.star = b.Name
		}
	}
	if s.star == "" && len(errs) == 0 {
		errs = append(errs, errors.New("system has no star"))
	}
	for _, b := range s.bodies {
		if b.Parent != "" {
			if _, ok := s.bodies[b.Parent]; !ok {
				errs = append(errs, fmt.Errorf("body %q orbits unknown parent %q", b.Name, b.Parent))
			}
		}
	}
	if _, ok := s.bodies[home]; !ok {
		errs = append(errs, fmt.Errorf("home body %q not found", home))
	}
	if len(errs) == 0 {
		for name := range s.bodies {
			if err := s.checkChain(name); err != nil {
				errs = append(errs, err)
			}
		}
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("building body system: %w", errors.Join(errs...))
	}
	return s, nil
}

func (s *System) checkChain(name string) error {
	seen := map[string]bool{}
	for b := s.bodies[name]; b.Parent != ""; b = s.bodies[b.Parent] {
		if seen[b.Name] {
			return fmt.Errorf("body %q has a cyclic parent chain", name)
		}
		seen[b.Name] = true
	}
	return nil
}

// Star returns the name of the system's star.
func (s *System) Star() string { return s.star }

// Body looks up a body by name.
func (s *System) Body(name string) (Body, bool) {
	b, ok := s.bodies[name]
	return b, ok
}

// HomeSurface is where kerbals recuperating at base sit.
func (s *System) HomeSurface() Location {
	return Location{Body: s.Home}
}

// DistanceToStar approximates the distance from a point to the star. Bodies
// inside a planetary system use the orbit of the planet they belong to.
func (s *System) DistanceToStar(body string, altitude float64) (float64, error) {
	b, ok := s.bodies[body]
	if !ok {
		return 0, fmt.Errorf("unknown body %q", body)
	}
	if b.Name == s.star {
		return b.Radius + altitude, nil
	}
	for b.Parent != s.star {
		b = s.bodies[b.Parent]
	}
	return b.OrbitRadius, nil
}

// CosmicRate returns the ambient radiation at loc in BED per host day.
func CosmicRate(cfg *config.RadiationConfig, sys *System, loc Location, dayLength float64) (float64, error) {
	b, ok := sys.Body(loc.Body)
	if !ok {
		return 0, fmt.Errorf("unknown body %q", loc.Body)
	}
	distance, err := sys.DistanceToStar(loc.Body, loc.Altitude)
	if err != nil {
		return 0, err
	}
	homeOrbit, err := sys.DistanceToStar(sys.Home, 0)
	if err != nil {
		return 0, err
	}

	var solar float64
	if distance > 0 {
		solar = cfg.Solar * math.Pow(homeOrbit/distance, 2)
	}
	rate := solar + cfg.Galactic

	switch {
	case b.Name == sys.Star():
		rate *= cfg.DeepSpace
	case loc.Altitude > b.SpaceHighAltitude:
		rate *= cfg.InSpaceHigh
	default:
		rate *= cfg.InSpaceLow
	}

	switch {
	case loc.Altitude < b.TroposphereAltitude:
		rate *= cfg.Troposphere
	case loc.Altitude < b.AtmosphereDepth:
		rate *= cfg.Stratosphere
	}

	if loc.Altitude < b.Radius*cfg.BodyShieldingAltitude {
		rate *= 0.5
	}

	return rate * dayLength / cfg.ReferenceDayLength, nil
}
