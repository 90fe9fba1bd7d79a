package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated crew health statistics for a time window.
type WindowStats struct {
	RunID           string  `csv:"run_id"`
	WindowStartTick int32   `csv:"-"`
	WindowEndTick   int32   `csv:"window_end"`
	SimDays         float64 `csv:"sim_days"`

	// Roster at window end
	Alive     int `csv:"alive"`
	Exhausted int `csv:"exhausted"`
	Frozen    int `csv:"frozen"`
	Dead      int `csv:"dead"`

	// Events during window
	Deaths            int `csv:"deaths"`
	ExhaustionStarts  int `csv:"exhaustion_starts"`
	Recoveries        int `csv:"recoveries"`
	LowHealthWarnings int `csv:"low_health_warnings"`
	Accidents         int `csv:"accidents"`

	// HP as a fraction of MaxHP, living kerbals only
	HPRatioMean float64 `csv:"hp_ratio_mean"`
	HPRatioStd  float64 `csv:"hp_ratio_std"`
	HPRatioP10  float64 `csv:"hp_ratio_p10"`
	HPRatioP50  float64 `csv:"hp_ratio_p50"`
	HPRatioP90  float64 `csv:"hp_ratio_p90"`

	// Radiation
	DoseMean     float64 `csv:"dose_mean"`
	DoseMax      float64 `csv:"dose_max"`
	ExposureMean float64 `csv:"exposure_mean"`

	// Mean total HP/day change
	ChangeMean float64 `csv:"change_mean"`
}

// Distribution summarizes a sample.
type Distribution struct {
	Mean, Std     float64
	P10, P50, P90 float64
	Max           float64
}

// Summarize computes mean, standard deviation, deciles and max of values.
// The input is not modified. An empty sample yields zeros.
func Summarize(values []float64) Distribution {
	n := len(values)
	if n == 0 {
		return Distribution{}
	}

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	var d Distribution
	if n > 1 {
		d.Mean, d.Std = stat.MeanStdDev(sorted, nil)
	} else {
		d.Mean = sorted[0]
	}
	d.P10 = stat.Quantile(0.10, stat.Empirical, sorted, nil)
	d.P50 = stat.Quantile(0.50, stat.Empirical, sorted, nil)
	d.P90 = stat.Quantile(0.90, stat.Empirical, sorted, nil)
	d.Max = sorted[n-1]
	return d
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", int(s.WindowStartTick)),
		slog.Int("window_end", int(s.WindowEndTick)),
		slog.Float64("sim_days", s.SimDays),
		slog.Int("alive", s.Alive),
		slog.Int("exhausted", s.Exhausted),
		slog.Int("frozen", s.Frozen),
		slog.Int("dead", s.Dead),
		slog.Int("deaths", s.Deaths),
		slog.Int("exhaustion_starts", s.ExhaustionStarts),
		slog.Int("recoveries", s.Recoveries),
		slog.Int("low_health_warnings", s.LowHealthWarnings),
		slog.Int("accidents", s.Accidents),
		slog.Float64("hp_ratio_mean", s.HPRatioMean),
		slog.Float64("hp_ratio_p10", s.HPRatioP10),
		slog.Float64("hp_ratio_p50", s.HPRatioP50),
		slog.Float64("hp_ratio_p90", s.HPRatioP90),
		slog.Float64("dose_mean", s.DoseMean),
		slog.Float64("dose_max", s.DoseMax),
		slog.Float64("exposure_mean", s.ExposureMean),
	)
}

// LogStats logs the window stats to log.
func (s WindowStats) LogStats(log *slog.Logger) {
	log.Info("stats",
		"window_end", s.WindowEndTick,
		"sim_days", s.SimDays,
		"alive", s.Alive,
		"exhausted", s.Exhausted,
		"frozen", s.Frozen,
		"dead", s.Dead,
		"deaths", s.Deaths,
		"exhaustion_starts", s.ExhaustionStarts,
		"recoveries", s.Recoveries,
		"accidents", s.Accidents,
		"hp_ratio_mean", s.HPRatioMean,
		"hp_ratio_p10", s.HPRatioP10,
		"dose_max", s.DoseMax,
		"change_mean", s.ChangeMean,
	)
}
