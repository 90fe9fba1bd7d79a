// Package config provides configuration loading and access for the health simulation.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// EnvPrefix is prepended to every environment override, e.g. CREWHEALTH_HEALTH_DEATH_ENABLED.
const EnvPrefix = "CREWHEALTH_"

// Config holds all simulation configuration parameters.
type Config struct {
	Time      TimeConfig      `yaml:"time" envPrefix:"TIME_"`
	Health    HealthConfig    `yaml:"health" envPrefix:"HEALTH_"`
	Factors   FactorsConfig   `yaml:"factors" envPrefix:"FACTORS_"`
	Radiation RadiationConfig `yaml:"radiation" envPrefix:"RADIATION_"`
	Events    EventsConfig    `yaml:"events" envPrefix:"EVENTS_"`
	Telemetry TelemetryConfig `yaml:"telemetry" envPrefix:"TELEMETRY_"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// TimeConfig holds the host calendar and the headless tick length.
type TimeConfig struct {
	DayLength   float64 `yaml:"day_length" env:"DAY_LENGTH"`     // Seconds per host day
	TickSeconds float64 `yaml:"tick_seconds" env:"TICK_SECONDS"` // Seconds simulated per headless step
}

// HealthConfig holds HP capacity and condition thresholds.
type HealthConfig struct {
	BaseMaxHP       float64 `yaml:"base_max_hp" env:"BASE_MAX_HP"`
	HPPerLevel      float64 `yaml:"hp_per_level" env:"HP_PER_LEVEL"`
	ExhaustionStart float64 `yaml:"exhaustion_start" env:"EXHAUSTION_START"` // Fraction of MaxHP below which a kerbal becomes exhausted
	ExhaustionEnd   float64 `yaml:"exhaustion_end" env:"EXHAUSTION_END"`     // Fraction of MaxHP at which exhaustion ends
	DeathEnabled    bool    `yaml:"death_enabled" env:"DEATH_ENABLED"`
	LowHealthAlert  float64 `yaml:"low_health_alert" env:"LOW_HEALTH_ALERT"` // Fraction of MaxHP that triggers a warning
}

// FactorsConfig holds the HP/day magnitude of each standard health factor.
type FactorsConfig struct {
	Assigned     float64  `yaml:"assigned" env:"ASSIGNED"`
	Crowded      float64  `yaml:"crowded" env:"CROWDED"` // Scaled by crew / capacity
	Lonely       float64  `yaml:"lonely" env:"LONELY"`
	Microgravity float64  `yaml:"microgravity" env:"MICROGRAVITY"`
	EVA          float64  `yaml:"eva" env:"EVA"`
	Connected    float64  `yaml:"connected" env:"CONNECTED"`
	Home         float64  `yaml:"home" env:"HOME"`
	KSC          float64  `yaml:"ksc" env:"KSC"`
	LonerTraits  []string `yaml:"loner_traits" env:"LONER_TRAITS"`
}

// RadiationConfig holds cosmic radiation and shielding coefficients.
// Rates are in banana equivalent doses (1 BED = 1e-7 Sv) per reference day.
type RadiationConfig struct {
	Enabled               bool               `yaml:"enabled" env:"ENABLED"`
	Effect                float64            `yaml:"effect" env:"EFFECT"`                     // MaxHP fraction lost per Sv
	ShieldingEffect       float64            `yaml:"shielding_effect" env:"SHIELDING_EFFECT"` // Halving units per shielding unit
	Solar                 float64            `yaml:"solar" env:"SOLAR"`                       // Solar rate at the home body's orbit
	Galactic              float64            `yaml:"galactic" env:"GALACTIC"`
	DeepSpace             float64            `yaml:"deep_space" env:"DEEP_SPACE"`
	InSpaceHigh           float64            `yaml:"in_space_high" env:"IN_SPACE_HIGH"`
	InSpaceLow            float64            `yaml:"in_space_low" env:"IN_SPACE_LOW"`
	Stratosphere          float64            `yaml:"stratosphere" env:"STRATOSPHERE"`
	Troposphere           float64            `yaml:"troposphere" env:"TROPOSPHERE"`
	BodyShieldingAltitude float64            `yaml:"body_shielding_altitude" env:"BODY_SHIELDING_ALTITUDE"` // Fraction of body radius
	ReferenceDayLength    float64            `yaml:"reference_day_length" env:"REFERENCE_DAY_LENGTH"`
	ResourceShielding     map[string]float64 `yaml:"resource_shielding"` // Shielding per unit of resource
}

// EventsConfig holds random health event parameters.
type EventsConfig struct {
	Enabled        bool    `yaml:"enabled" env:"ENABLED"`
	AccidentChance float64 `yaml:"accident_chance" env:"ACCIDENT_CHANCE"` // Probability per day
	AccidentDamage float64 `yaml:"accident_damage" env:"ACCIDENT_DAMAGE"` // Fraction of current HP lost
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindowDays     float64 `yaml:"stats_window_days" env:"STATS_WINDOW_DAYS"`
	BookmarkHistorySize int     `yaml:"bookmark_history_size" env:"BOOKMARK_HISTORY_SIZE"`
	PerfCollectorWindow int     `yaml:"perf_collector_window" env:"PERF_COLLECTOR_WINDOW"`
	DoseMilestone       float64 `yaml:"dose_milestone" env:"DOSE_MILESTONE"` // BED
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	TicksPerDay     float64 // Time.DayLength / Time.TickSeconds
	StatsWindowSecs float64 // Telemetry.StatsWindowDays in seconds
	LonerTraits     map[string]struct{}
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Default returns the embedded defaults with derived values computed.
// Environment overrides are not applied.
func Default() *Config {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		panic(fmt.Sprintf("config: embedded defaults are invalid: %v", err))
	}
	cfg.computeDerived()
	return cfg
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used. Environment variables
// prefixed with EnvPrefix override both.
func Load(path string) (*Config, error) {
	// Start with embedded defaults
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, fmt.Errorf("parsing environment overrides: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cfg.computeDerived()

	return cfg, nil
}

// Validate reports values the engine cannot work with.
func (c *Config) Validate() error {
	var errs []error
	if c.Time.DayLength <= 0 {
		errs = append(errs, fmt.Errorf("time.day_length must be positive, got %v", c.Time.DayLength))
	}
	if c.Time.TickSeconds <= 0 {
		errs = append(errs, fmt.Errorf("time.tick_seconds must be positive, got %v", c.Time.TickSeconds))
	}
	if c.Health.BaseMaxHP <= 0 {
		errs = append(errs, fmt.Errorf("health.base_max_hp must be positive, got %v", c.Health.BaseMaxHP))
	}
	if c.Health.ExhaustionStart < 0 || c.Health.ExhaustionStart > 1 {
		errs = append(errs, fmt.Errorf("health.exhaustion_start must be in [0, 1], got %v", c.Health.ExhaustionStart))
	}
	if c.Radiation.ReferenceDayLength <= 0 {
		errs = append(errs, fmt.Errorf("radiation.reference_day_length must be positive, got %v", c.Radiation.ReferenceDayLength))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.TicksPerDay = c.Time.DayLength / c.Time.TickSeconds
	c.Derived.StatsWindowSecs = c.Telemetry.StatsWindowDays * c.Time.DayLength

	// Exhaustion must end at or above the level where it starts, otherwise
	// a kerbal would flip between states every update.
	if c.Health.ExhaustionEnd < c.Health.ExhaustionStart {
		c.Health.ExhaustionEnd = c.Health.ExhaustionStart
	}

	if c.Radiation.ResourceShielding == nil {
		c.Radiation.ResourceShielding = map[string]float64{}
	}

	c.Derived.LonerTraits = make(map[string]struct{}, len(c.Factors.LonerTraits))
	for _, t := range c.Factors.LonerTraits {
		c.Derived.LonerTraits[t] = struct{}{}
	}
}

// IsLoner reports whether a trait is immune to loneliness.
func (c *Config) IsLoner(trait string) bool {
	_, ok := c.Derived.LonerTraits[trait]
	return ok
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
