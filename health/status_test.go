package health

import (
	"math"
	"testing"

	"github.com/pthm-cable/crewhealth/config"
)

func TestNewStatusStartsAtFullHealth(t *testing.T) {
	cfg := config.Default()
	s := NewStatus(cfg, "Jeb", 3)
	want := cfg.Health.BaseMaxHP + 3*cfg.Health.HPPerLevel
	if s.MaxHP() != want || s.HP() != want {
		t.Errorf("MaxHP = %v, HP = %v, want both %v", s.MaxHP(), s.HP(), want)
	}
	if s.Exposure != 1 {
		t.Errorf("Exposure = %v, want 1", s.Exposure)
	}
}

func TestSetHPClamps(t *testing.T) {
	s := NewStatus(config.Default(), "Jeb", 0)
	maxHP := s.MaxHP()

	tests := []struct {
		requested float64
		want      float64
	}{
		{-5, 0},
		{0, 0},
		{42.5, 42.5},
		{maxHP, maxHP},
		{maxHP + 1, maxHP},
		{math.Inf(1), maxHP},
	}
	for _, tt := range tests {
		s.SetHP(tt.requested)
		if s.HP() != tt.want {
			t.Errorf("SetHP(%v): HP = %v, want %v", tt.requested, s.HP(), tt.want)
		}
	}
}

func TestMutatorsReclamp(t *testing.T) {
	cfg := config.Default()
	s := NewStatus(cfg, "Jeb", 5)

	s.SetLevel(0)
	if s.HP() != s.MaxHP() {
		t.Errorf("after SetLevel: HP = %v, MaxHP = %v", s.HP(), s.MaxHP())
	}

	s.SetMaxHPModifier(-30)
	if s.HP() != s.MaxHP() {
		t.Errorf("after SetMaxHPModifier: HP = %v, MaxHP = %v", s.HP(), s.MaxHP())
	}

	s.AddDose(5e7)
	if s.HP() != s.MaxHP() {
		t.Errorf("after AddDose: HP = %v, MaxHP = %v", s.HP(), s.MaxHP())
	}

	// Past 100% penalty MaxHP goes negative and HP rests at 0
	s.AddDose(1e9)
	if s.MaxHP() >= 0 {
		t.Errorf("MaxHP = %v, want negative", s.MaxHP())
	}
	if s.HP() != 0 {
		t.Errorf("HP = %v, want 0", s.HP())
	}
}

func TestAddDoseIgnoresNegative(t *testing.T) {
	s := NewStatus(config.Default(), "Jeb", 0)
	s.AddDose(100)
	s.AddDose(-50)
	if s.Dose() != 100 {
		t.Errorf("Dose = %v, want 100", s.Dose())
	}
}

func TestMaxHPMonotonic(t *testing.T) {
	cfg := config.Default()

	prev := math.Inf(-1)
	for level := 0; level <= 5; level++ {
		s := NewStatus(cfg, "Jeb", level)
		s.AddDose(1e6)
		if s.MaxHP() < prev {
			t.Errorf("level %d: MaxHP %v below level %d", level, s.MaxHP(), level-1)
		}
		prev = s.MaxHP()
	}

	prev = math.Inf(1)
	s := NewStatus(cfg, "Jeb", 2)
	for i := 0; i < 6; i++ {
		if s.MaxHP() > prev {
			t.Errorf("dose %v: MaxHP %v rose above %v", s.Dose(), s.MaxHP(), prev)
		}
		prev = s.MaxHP()
		s.AddDose(3e6)
	}
}

func TestRadiationDisabledIgnoresDose(t *testing.T) {
	cfg := config.Default()
	cfg.Radiation.Enabled = false
	s := NewStatus(cfg, "Jeb", 0)
	s.AddDose(5e7)
	if s.MaxHP() != cfg.Health.BaseMaxHP {
		t.Errorf("MaxHP = %v, want %v", s.MaxHP(), cfg.Health.BaseMaxHP)
	}
}

func TestConditions(t *testing.T) {
	s := NewStatus(config.Default(), "Jeb", 0)

	s.AddCondition(NewCondition(Sick), false)
	s.AddCondition(Condition{Name: Sick, Title: "Very sick", Visible: true}, false)
	if c, _ := s.GetCondition(Sick); c.Title != Sick {
		t.Errorf("non-additive re-add replaced the condition: %+v", c)
	}
	if len(s.Conditions()) != 1 {
		t.Fatalf("Conditions() = %v, want 1 entry", s.Conditions())
	}

	s.AddCondition(Condition{Name: "Tag"}, true)
	s.AddCondition(Condition{Name: "Tag"}, true)
	s.AddCondition(Condition{Name: Infected, Title: "Infected (flu)", Visible: true}, false)
	if got := s.ConditionString(); got != "Sick, Infected (flu)" {
		t.Errorf("ConditionString() = %q", got)
	}

	s.RemoveCondition("Tag", false)
	if !s.HasCondition("Tag") {
		t.Error("removing one duplicate removed both")
	}
	s.AddCondition(Condition{Name: "Tag"}, true)
	s.RemoveCondition("Tag", true)
	if s.HasCondition("Tag") {
		t.Error("RemoveCondition(all) left a duplicate")
	}

	got := s.Conditions()
	if len(got) != 2 || got[0].Name != Sick || got[1].Name != Infected {
		t.Errorf("Conditions() = %+v", got)
	}

	got[0].Name = "mutated"
	if !s.HasCondition(Sick) {
		t.Error("Conditions() should return a copy")
	}
}
