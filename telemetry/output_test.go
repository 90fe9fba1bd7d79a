package telemetry

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/pthm-cable/crewhealth/config"
	"github.com/pthm-cable/crewhealth/health"
)

func TestOutputManagerDisabled(t *testing.T) {
	om, err := NewOutputManager("", uuid.New())
	if err != nil || om != nil {
		t.Fatalf("NewOutputManager(\"\") = %v, %v", om, err)
	}
	// Nil manager is a no-op
	if err := om.WriteTelemetry(WindowStats{}); err != nil {
		t.Error(err)
	}
	if err := om.Close(); err != nil {
		t.Error(err)
	}
}

func TestOutputManagerWrites(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "run")
	id := uuid.New()
	om, err := NewOutputManager(dir, id)
	if err != nil {
		t.Fatal(err)
	}

	cfg := config.Default()
	if err := om.WriteConfig(cfg); err != nil {
		t.Fatal(err)
	}
	for i := int32(1); i <= 2; i++ {
		if err := om.WriteTelemetry(WindowStats{WindowEndTick: i * 36, Alive: 3}); err != nil {
			t.Fatal(err)
		}
	}
	if err := om.WriteBookmark(Bookmark{Type: BookmarkFirstDeath, Tick: 36, Description: "x"}); err != nil {
		t.Fatal(err)
	}

	lt := NewLifetimeTracker(cfg.Time.DayLength)
	lt.Observe(health.NewStatus(cfg, "Jeb", 0), 0, 0)
	if err := om.WriteLifetimes(lt); err != nil {
		t.Fatal(err)
	}
	if err := om.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "telemetry.csv"))
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 3 {
		t.Fatalf("telemetry.csv has %d lines, want header + 2:\n%s", len(lines), data)
	}
	if !strings.HasPrefix(lines[0], "run_id,window_end,") {
		t.Errorf("header = %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], id.String()+",36,") {
		t.Errorf("row = %q", lines[1])
	}

	for _, name := range []string{"config.yaml", "perf.csv", "bookmarks.csv", "kerbals.csv"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("%s: %v", name, err)
		}
	}
	kerbals, _ := os.ReadFile(filepath.Join(dir, "kerbals.csv"))
	if !strings.Contains(string(kerbals), "Jeb") {
		t.Errorf("kerbals.csv = %q", kerbals)
	}
}
