package telemetry

import (
	"log/slog"
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"
)

// Phase is one stage of a simulation step.
type Phase int

const (
	PhaseHealth Phase = iota
	PhaseEvents
	PhaseTelemetry
	numPhases
)

func (p Phase) String() string {
	switch p {
	case PhaseHealth:
		return "health"
	case PhaseEvents:
		return "events"
	case PhaseTelemetry:
		return "telemetry"
	}
	return "unknown"
}

type stepTiming struct {
	total   time.Duration
	phases  [numPhases]time.Duration
	kerbals int
}

// StepTimer records how long recent steps took and how many statuses each
// one updated. Only the last window steps are kept.
type StepTimer struct {
	ring  []stepTiming
	next  int
	count int

	cur        stepTiming
	began      time.Time
	phaseBegan time.Time
	phase      Phase
	inPhase    bool
}

// NewStepTimer keeps the last window steps; window < 1 uses 60.
func NewStepTimer(window int) *StepTimer {
	if window < 1 {
		window = 60
	}
	return &StepTimer{ring: make([]stepTiming, window)}
}

// BeginStep starts timing a step that updates kerbals statuses.
func (t *StepTimer) BeginStep(kerbals int) {
	t.cur = stepTiming{kerbals: kerbals}
	t.began = time.Now()
	t.inPhase = false
}

// Enter closes the running phase, if any, and starts p.
func (t *StepTimer) Enter(p Phase) {
	now := time.Now()
	t.closePhase(now)
	t.phase = p
	t.phaseBegan = now
	t.inPhase = true
}

func (t *StepTimer) closePhase(now time.Time) {
	if t.inPhase {
		t.cur.phases[t.phase] += now.Sub(t.phaseBegan)
		t.inPhase = false
	}
}

// EndStep stores the step in the window.
func (t *StepTimer) EndStep() {
	now := time.Now()
	t.closePhase(now)
	t.cur.total = now.Sub(t.began)

	t.ring[t.next] = t.cur
	t.next = (t.next + 1) % len(t.ring)
	t.count = min(t.count+1, len(t.ring))
}

// StepStats summarizes the steps in the window.
type StepStats struct {
	Steps int

	MeanStep time.Duration
	P95Step  time.Duration
	MaxStep  time.Duration

	// Health phase time per kerbal status updated
	PerKerbal time.Duration

	// Share of step time, percent
	PhaseShare [numPhases]float64

	StepsPerSec   float64
	UpdatesPerSec float64 // Kerbal status updates
}

// Stats summarizes the current window. An empty window yields zeros.
func (t *StepTimer) Stats() StepStats {
	if t.count == 0 {
		return StepStats{}
	}

	totals := make([]float64, t.count)
	var phaseSum [numPhases]time.Duration
	var kerbals int
	for i, s := range t.ring[:t.count] {
		totals[i] = float64(s.total)
		for p, d := range s.phases {
			phaseSum[p] += d
		}
		kerbals += s.kerbals
	}
	sort.Float64s(totals)

	st := StepStats{
		Steps:    t.count,
		MeanStep: time.Duration(stat.Mean(totals, nil)),
		P95Step:  time.Duration(stat.Quantile(0.95, stat.Empirical, totals, nil)),
		MaxStep:  time.Duration(totals[len(totals)-1]),
	}

	var elapsed float64
	for _, v := range totals {
		elapsed += v
	}
	if elapsed > 0 {
		secs := elapsed / float64(time.Second)
		st.StepsPerSec = float64(t.count) / secs
		st.UpdatesPerSec = float64(kerbals) / secs
		for p := range phaseSum {
			st.PhaseShare[p] = float64(phaseSum[p]) / elapsed * 100
		}
	}
	if kerbals > 0 {
		st.PerKerbal = phaseSum[PhaseHealth] / time.Duration(kerbals)
	}
	return st
}

// LogStats logs s at info level.
func (s StepStats) LogStats(log *slog.Logger) {
	log.Info("perf", "step_timing", s)
}

// LogValue implements slog.LogValuer.
func (s StepStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int("steps", s.Steps),
		slog.Duration("mean_step", s.MeanStep),
		slog.Duration("p95_step", s.P95Step),
		slog.Duration("per_kerbal", s.PerKerbal),
		slog.Float64("updates_per_sec", s.UpdatesPerSec),
	}
	for p := Phase(0); p < numPhases; p++ {
		attrs = append(attrs, slog.Float64(p.String()+"_pct", s.PhaseShare[p]))
	}
	return slog.GroupValue(attrs...)
}

// PerfRow is one line of perf.csv.
type PerfRow struct {
	RunID         string  `csv:"run_id"`
	WindowEnd     int32   `csv:"window_end"`
	Steps         int     `csv:"steps"`
	MeanStepUS    int64   `csv:"mean_step_us"`
	P95StepUS     int64   `csv:"p95_step_us"`
	MaxStepUS     int64   `csv:"max_step_us"`
	PerKerbalNS   int64   `csv:"per_kerbal_ns"`
	StepsPerSec   float64 `csv:"steps_per_sec"`
	UpdatesPerSec float64 `csv:"updates_per_sec"`
	HealthPct     float64 `csv:"health_pct"`
	EventsPct     float64 `csv:"events_pct"`
	TelemetryPct  float64 `csv:"telemetry_pct"`
}

// Row flattens s for perf.csv.
func (s StepStats) Row(windowEnd int32) PerfRow {
	return PerfRow{
		WindowEnd:     windowEnd,
		Steps:         s.Steps,
		MeanStepUS:    s.MeanStep.Microseconds(),
		P95StepUS:     s.P95Step.Microseconds(),
		MaxStepUS:     s.MaxStep.Microseconds(),
		PerKerbalNS:   s.PerKerbal.Nanoseconds(),
		StepsPerSec:   s.StepsPerSec,
		UpdatesPerSec: s.UpdatesPerSec,
		HealthPct:     s.PhaseShare[PhaseHealth],
		EventsPct:     s.PhaseShare[PhaseEvents],
		TelemetryPct:  s.PhaseShare[PhaseTelemetry],
	}
}
