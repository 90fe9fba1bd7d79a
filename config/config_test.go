package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Time.DayLength != 21600 {
		t.Errorf("day_length = %v, want 21600", cfg.Time.DayLength)
	}
	if cfg.Health.BaseMaxHP != 100 {
		t.Errorf("base_max_hp = %v, want 100", cfg.Health.BaseMaxHP)
	}
	if !cfg.Health.DeathEnabled {
		t.Error("death should be enabled by default")
	}
	if got := cfg.Derived.TicksPerDay; got != 36 {
		t.Errorf("TicksPerDay = %v, want 36", got)
	}
	if cfg.Radiation.ResourceShielding["RadiationShielding"] != 1 {
		t.Errorf("RadiationShielding = %v, want 1", cfg.Radiation.ResourceShielding["RadiationShielding"])
	}
}

func TestLoadOverlay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := []byte("health:\n  base_max_hp: 150\nfactors:\n  loner_traits: [Scientist]\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Health.BaseMaxHP != 150 {
		t.Errorf("base_max_hp = %v, want 150", cfg.Health.BaseMaxHP)
	}
	// Untouched fields keep their defaults
	if cfg.Health.HPPerLevel != 10 {
		t.Errorf("hp_per_level = %v, want 10", cfg.Health.HPPerLevel)
	}
	if !cfg.IsLoner("Scientist") {
		t.Error("Scientist should be a loner trait")
	}
	if cfg.IsLoner("Pilot") {
		t.Error("Pilot should not be a loner trait")
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("CREWHEALTH_HEALTH_DEATH_ENABLED", "false")
	t.Setenv("CREWHEALTH_TIME_DAY_LENGTH", "86400")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Health.DeathEnabled {
		t.Error("env override should disable death")
	}
	if cfg.Time.DayLength != 86400 {
		t.Errorf("day_length = %v, want 86400", cfg.Time.DayLength)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(path, []byte("time:\n  day_length: 0\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Fatal("expected error for zero day length")
	}
}

func TestExhaustionEndNotBelowStart(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := []byte("health:\n  exhaustion_start: 0.4\n  exhaustion_end: 0.1\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Health.ExhaustionEnd != 0.4 {
		t.Errorf("exhaustion_end = %v, want 0.4", cfg.Health.ExhaustionEnd)
	}
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Health.LowHealthAlert = 0.42

	path := filepath.Join(t.TempDir(), "out.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Health.LowHealthAlert != 0.42 {
		t.Errorf("low_health_alert = %v, want 0.42", loaded.Health.LowHealthAlert)
	}
}
