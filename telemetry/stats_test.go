package telemetry

import (
	"math"
	"testing"

	"github.com/pthm-cable/crewhealth/config"
	"github.com/pthm-cable/crewhealth/health"
)

func TestSummarize(t *testing.T) {
	tests := []struct {
		name          string
		values        []float64
		mean, std     float64
		p10, p50, p90 float64
		max           float64
	}{
		{"empty", nil, 0, 0, 0, 0, 0, 0},
		{"single", []float64{5}, 5, 0, 5, 5, 5, 5},
		{"ascending", []float64{1, 2, 3, 4, 5}, 3, math.Sqrt(2.5), 1, 3, 5, 5},
		{"unsorted", []float64{5, 3, 1, 4, 2}, 3, math.Sqrt(2.5), 1, 3, 5, 5},
		{"constant", []float64{0.7, 0.7, 0.7}, 0.7, 0, 0.7, 0.7, 0.7, 0.7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Summarize(tt.values)
			for _, c := range []struct {
				field     string
				got, want float64
			}{
				{"mean", d.Mean, tt.mean},
				{"std", d.Std, tt.std},
				{"p10", d.P10, tt.p10},
				{"p50", d.P50, tt.p50},
				{"p90", d.P90, tt.p90},
				{"max", d.Max, tt.max},
			} {
				if math.Abs(c.got-c.want) > 1e-9 {
					t.Errorf("%s = %v, want %v", c.field, c.got, c.want)
				}
			}
		})
	}
}

func TestSummarizeLeavesInput(t *testing.T) {
	values := []float64{3, 1, 2}
	Summarize(values)
	if values[0] != 3 || values[1] != 1 || values[2] != 2 {
		t.Errorf("input reordered: %v", values)
	}
}

func TestCollectorFlush(t *testing.T) {
	cfg := config.Default()
	c := NewCollector(cfg.Time.DayLength, cfg.Time.TickSeconds, cfg.Time.DayLength)

	l := health.NewList()
	jeb := health.NewStatus(cfg, "Jeb", 0)
	jeb.SetHP(jeb.MaxHP() / 2)
	bill := health.NewStatus(cfg, "Bill", 0)
	bill.AddCondition(health.NewCondition(health.Exhausted), false)
	bob := health.NewStatus(cfg, "Bob", 0)
	bob.AddCondition(health.NewCondition(health.Dead), false)
	for _, s := range []*health.Status{jeb, bill, bob} {
		l.Add(s)
	}

	c.RecordEffect(health.Effect{Kind: health.EffectExhaust, Kerbal: "Bill"})
	c.RecordEffect(health.Effect{Kind: health.EffectDie, Kerbal: "Bob"})
	c.RecordEffect(health.Effect{Kind: health.EffectLowHealth, Kerbal: "Bob"})
	c.RecordAccident()

	ticks := c.WindowDurationTicks()
	if c.ShouldFlush(ticks - 1) {
		t.Error("flushed before window end")
	}
	if !c.ShouldFlush(ticks) {
		t.Fatal("window should be complete")
	}

	stats := c.Flush(ticks, SampleList(l))
	if stats.Alive != 2 || stats.Dead != 1 || stats.Exhausted != 1 {
		t.Errorf("roster = %d alive, %d dead, %d exhausted", stats.Alive, stats.Dead, stats.Exhausted)
	}
	if stats.Deaths != 1 || stats.ExhaustionStarts != 1 || stats.LowHealthWarnings != 1 || stats.Accidents != 1 {
		t.Errorf("counters = %+v", stats)
	}
	if math.Abs(stats.HPRatioMean-0.75) > 1e-9 {
		t.Errorf("HPRatioMean = %v, want 0.75", stats.HPRatioMean)
	}
	if math.Abs(stats.SimDays-1) > 1e-9 {
		t.Errorf("SimDays = %v, want 1", stats.SimDays)
	}

	next := c.Flush(2*ticks, SampleList(l))
	if next.Deaths != 0 || next.Accidents != 0 || next.WindowStartTick != ticks {
		t.Errorf("counters not reset: %+v", next)
	}
}
