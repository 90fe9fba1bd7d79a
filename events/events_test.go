package events

import (
	"math"
	"math/rand"
	"testing"

	"github.com/pthm-cable/crewhealth/config"
	"github.com/pthm-cable/crewhealth/health"
)

func TestProbability(t *testing.T) {
	tests := []struct {
		name                     string
		chance, interval, dayLen float64
		want                     float64
	}{
		{"full day", 0.1, 100, 100, 0.1},
		{"zero chance", 0, 100, 100, 0},
		{"zero interval", 0.5, 0, 100, 0},
		{"certain", 1, 1, 100, 1},
		{"two days", 0.5, 200, 100, 0.75},
		{"half day", 0.75, 50, 100, 0.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Probability(tt.chance, tt.interval, tt.dayLen)
			if math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("Probability = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestProbabilityComposes(t *testing.T) {
	// Two half-days must match one full day
	p := 0.3
	half := Probability(p, 50, 100)
	if got := 1 - (1-half)*(1-half); math.Abs(got-p) > 1e-12 {
		t.Errorf("two half-days = %v, want %v", got, p)
	}
}

func TestAccident(t *testing.T) {
	cfg := config.Default()
	a := Accident{Chance: 1, Damage: 0.2}
	s := health.NewStatus(cfg, "Jeb", 0)
	s.SetHP(50)

	o := a.Run(s)
	if s.HP() != 40 || o.HPLost != 10 || o.Kerbal != "Jeb" {
		t.Errorf("HP = %v outcome = %+v", s.HP(), o)
	}

	s.AddCondition(health.NewCondition(health.Frozen), false)
	if a.Condition(s) {
		t.Error("frozen kerbal should be exempt")
	}
	s.RemoveCondition(health.Frozen, true)
	s.AddCondition(health.NewCondition(health.Dead), false)
	if a.Condition(s) {
		t.Error("dead kerbal should be exempt")
	}
}

func TestManager(t *testing.T) {
	cfg := config.Default()
	var got []health.Message
	notifier := health.NotifierFunc(func(m health.Message) { got = append(got, m) })

	m := NewManager(cfg, rand.New(rand.NewSource(1)), notifier, nil, Accident{Chance: 1, Damage: 0.5})
	l := health.NewList()
	jeb := health.NewStatus(cfg, "Jeb", 0)
	frozen := health.NewStatus(cfg, "Val", 0)
	frozen.AddCondition(health.NewCondition(health.Frozen), false)
	l.Add(jeb)
	l.Add(frozen)

	outcomes := m.UpdateAll(l, cfg.Time.TickSeconds)
	if len(outcomes) != 1 || outcomes[0].Kerbal != "Jeb" {
		t.Fatalf("outcomes = %+v", outcomes)
	}
	if jeb.HP() != 50 || frozen.HP() != 100 {
		t.Errorf("HP: jeb %v, val %v", jeb.HP(), frozen.HP())
	}
	if len(got) != 1 || got[0].Severity != health.SeverityWarning {
		t.Errorf("messages = %+v", got)
	}

	cfg.Events.Enabled = false
	if out := m.Update(jeb, cfg.Time.TickSeconds); out != nil {
		t.Errorf("disabled events fired: %+v", out)
	}
}

func TestManagerRate(t *testing.T) {
	cfg := config.Default()
	m := NewManager(cfg, rand.New(rand.NewSource(7)), nil, nil, Accident{Chance: 0.5, Damage: 0})
	s := health.NewStatus(cfg, "Jeb", 0)

	const days = 4000
	fired := 0
	for i := 0; i < days; i++ {
		fired += len(m.Update(s, cfg.Time.DayLength))
	}
	if rate := float64(fired) / days; math.Abs(rate-0.5) > 0.05 {
		t.Errorf("observed daily rate %v, want about 0.5", rate)
	}
}
