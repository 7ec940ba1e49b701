package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	WindowStartTick int32   `csv:"-"`
	WindowEndTick   int32   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`

	// Scene state at window end
	Bodies   int `csv:"bodies"`
	Sleeping int `csv:"sleeping"`
	Hovered  int `csv:"hovered"`
	Escaped  int `csv:"escaped"` // bodies found outside the walls

	// Events during window
	Clicks    int `csv:"clicks"`
	Drifts    int `csv:"drifts"`
	Contacts  int `csv:"contacts"`
	WallSwaps int `csv:"wall_swaps"`

	// Kinetic energy distribution (sampled at window end)
	KineticMean float64 `csv:"kinetic_mean"`
	KineticP50  float64 `csv:"kinetic_p50"`
	KineticP90  float64 `csv:"kinetic_p90"`
	MaxSpeed    float64 `csv:"max_speed"`
}

// Distribution returns the mean, median and 90th percentile of values.
// Percentiles use the empirical quantile. Returns zeros for no values.
func Distribution(values []float64) (mean, p50, p90 float64) {
	if len(values) == 0 {
		return 0, 0, 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	mean = stat.Mean(sorted, nil)
	p50 = stat.Quantile(0.5, stat.Empirical, sorted, nil)
	p90 = stat.Quantile(0.9, stat.Empirical, sorted, nil)
	return mean, p50, p90
}

// MaxOf returns the largest value, or 0 for no values.
func MaxOf(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return floats.Max(values)
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", int(s.WindowStartTick)),
		slog.Int("window_end", int(s.WindowEndTick)),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Int("bodies", s.Bodies),
		slog.Int("sleeping", s.Sleeping),
		slog.Int("hovered", s.Hovered),
		slog.Int("escaped", s.Escaped),
		slog.Int("clicks", s.Clicks),
		slog.Int("drifts", s.Drifts),
		slog.Int("contacts", s.Contacts),
		slog.Int("wall_swaps", s.WallSwaps),
		slog.Float64("kinetic_mean", s.KineticMean),
		slog.Float64("kinetic_p50", s.KineticP50),
		slog.Float64("kinetic_p90", s.KineticP90),
		slog.Float64("max_speed", s.MaxSpeed),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats", "window", s)
}
