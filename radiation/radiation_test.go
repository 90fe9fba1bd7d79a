package radiation

import (
	"math"
	"testing"

	"github.com/pthm-cable/crewhealth/config"
)

func testSystem(t *testing.T) *System {
	t.Helper()
	sys, err := NewSystem("Kerbin", []Body{
		{Name: "Sun", Radius: 261_600_000},
		{Name: "Kerbin", Parent: "Sun", Radius: 600_000, OrbitRadius: 13_599_840_256,
			AtmosphereDepth: 70_000, TroposphereAltitude: 18_000, SpaceHighAltitude: 250_000},
		{Name: "Mun", Parent: "Kerbin", Radius: 200_000, OrbitRadius: 12_000_000, SpaceHighAltitude: 60_000},
		{Name: "Duna", Parent: "Sun", Radius: 320_000, OrbitRadius: 2 * 13_599_840_256,
			AtmosphereDepth: 50_000, TroposphereAltitude: 12_000, SpaceHighAltitude: 140_000},
	})
	if err != nil {
		t.Fatal(err)
	}
	return sys
}

func TestExposure(t *testing.T) {
	if got := Exposure(0, 1, 8); got != 1 {
		t.Errorf("Exposure with no shielding = %v, want exactly 1", got)
	}
	if got := Exposure(1, 1, 1); math.Abs(got-0.5) > 1e-12 {
		t.Errorf("Exposure(1, 1, 1) = %v, want 0.5", got)
	}
	if a, b := Exposure(2, 1, 0), Exposure(2, 1, 1); a != b {
		t.Errorf("capacity 0 should behave as 1: %v vs %v", a, b)
	}

	for _, capacity := range []int{1, 3, 8, 27} {
		prev := Exposure(0.5, 1, capacity)
		for s := 1.0; s <= 64; s *= 2 {
			e := Exposure(s, 1, capacity)
			if e >= prev {
				t.Errorf("capacity %d: Exposure(%v) = %v, not below Exposure(%v) = %v", capacity, s, e, s/2, prev)
			}
			prev = e
		}
	}

	// Larger vessels need more shielding for the same protection
	if Exposure(4, 1, 27) <= Exposure(4, 1, 1) {
		t.Error("same shielding should protect a larger vessel less")
	}
}

func TestHPModifier(t *testing.T) {
	tests := []struct {
		dose, effect, want float64
	}{
		{0, 0.1, 1},
		{1e7, 0.1, 0.9},
		{1e8, 0.1, 0},
		{2e8, 0.1, -1},
	}
	for _, tt := range tests {
		if got := HPModifier(tt.dose, tt.effect); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("HPModifier(%v, %v) = %v, want %v", tt.dose, tt.effect, got, tt.want)
		}
	}
}

func TestDoseIncrement(t *testing.T) {
	if got := DoseIncrement(21600, 21600, 600); got != 600 {
		t.Errorf("DoseIncrement = %v, want 600", got)
	}
}

func TestNewSystemValidation(t *testing.T) {
	tests := []struct {
		name   string
		home   string
		bodies []Body
	}{
		{"no star", "A", []Body{{Name: "A", Parent: "B"}, {Name: "B", Parent: "A"}}},
		{"two stars", "A", []Body{{Name: "A"}, {Name: "B"}}},
		{"unknown parent", "A", []Body{{Name: "S"}, {Name: "A", Parent: "X"}}},
		{"missing home", "Z", []Body{{Name: "S"}, {Name: "A", Parent: "S"}}},
		{"cycle", "A", []Body{{Name: "S"}, {Name: "A", Parent: "B"}, {Name: "B", Parent: "A"}}},
		{"duplicate", "S", []Body{{Name: "S"}, {Name: "S"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewSystem(tt.home, tt.bodies); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestDistanceToStar(t *testing.T) {
	sys := testSystem(t)
	tests := []struct {
		body     string
		altitude float64
		want     float64
	}{
		{"Sun", 1000, 261_601_000},
		{"Kerbin", 100_000, 13_599_840_256},
		{"Mun", 5_000, 13_599_840_256},
	}
	for _, tt := range tests {
		got, err := sys.DistanceToStar(tt.body, tt.altitude)
		if err != nil {
			t.Fatal(err)
		}
		if got != tt.want {
			t.Errorf("DistanceToStar(%s) = %v, want %v", tt.body, got, tt.want)
		}
	}
	if _, err := sys.DistanceToStar("Eeloo", 0); err == nil {
		t.Error("expected error for unknown body")
	}
}

func TestCosmicRate(t *testing.T) {
	cfg := config.Default().Radiation
	sys := testSystem(t)
	day := cfg.ReferenceDayLength
	base := cfg.Solar + cfg.Galactic

	tests := []struct {
		name string
		loc  Location
		want float64
	}{
		{"high orbit", Location{"Kerbin", 300_000}, base * cfg.InSpaceHigh},
		{"low orbit", Location{"Kerbin", 100_000}, base * cfg.InSpaceLow},
		{"stratosphere", Location{"Kerbin", 40_000}, base * cfg.InSpaceLow * cfg.Stratosphere * 0.5},
		{"surface", Location{"Kerbin", 0}, base * cfg.InSpaceLow * cfg.Troposphere * 0.5},
		{"moon high", Location{"Mun", 100_000}, base * cfg.InSpaceHigh},
		{"moon proximity", Location{"Mun", 10_000}, base * cfg.InSpaceLow * 0.5},
		{"outer planet", Location{"Duna", 200_000}, (cfg.Solar/4 + cfg.Galactic) * cfg.InSpaceHigh},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CosmicRate(&cfg, sys, tt.loc, day)
			if err != nil {
				t.Fatal(err)
			}
			if math.Abs(got-tt.want) > 1e-9*tt.want {
				t.Errorf("CosmicRate = %v, want %v", got, tt.want)
			}
		})
	}

	// Near the star the location multiplier is deep space
	near, err := CosmicRate(&cfg, sys, Location{"Sun", 13_599_840_256 - 261_600_000}, day)
	if err != nil {
		t.Fatal(err)
	}
	if want := base * cfg.DeepSpace; math.Abs(near-want) > 1e-6*want {
		t.Errorf("deep space rate = %v, want %v", near, want)
	}
}

func TestCosmicRateScalesWithDayLength(t *testing.T) {
	cfg := config.Default().Radiation
	sys := testSystem(t)
	loc := Location{"Kerbin", 300_000}

	short, _ := CosmicRate(&cfg, sys, loc, cfg.ReferenceDayLength)
	long, _ := CosmicRate(&cfg, sys, loc, 4*cfg.ReferenceDayLength)
	if math.Abs(long-4*short) > 1e-9*long {
		t.Errorf("rate per day should scale with day length: %v vs 4 × %v", long, short)
	}

	// Per-second absorption is independent of the calendar
	a := DoseIncrement(short, cfg.ReferenceDayLength, 600)
	b := DoseIncrement(long, 4*cfg.ReferenceDayLength, 600)
	if math.Abs(a-b) > 1e-9*a {
		t.Errorf("dose over 600s differs: %v vs %v", a, b)
	}
}
