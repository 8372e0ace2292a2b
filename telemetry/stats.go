package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated field statistics for a window of ticks.
type WindowStats struct {
	WindowStartTick int32 `csv:"-"`
	WindowEndTick   int32 `csv:"window_end"`
	Ticks           int   `csv:"ticks"`

	// Sampled at window end
	Particles       int     `csv:"particles"`
	InfluenceRadius float64 `csv:"influence_radius"`

	// Averages over the window
	ConnectionsPerTick    float64 `csv:"connections_per_tick"`
	MeanOpacity           float64 `csv:"mean_opacity"`
	CandidatesPerParticle float64 `csv:"candidates_per_particle"` // grid neighbour entries examined
	PointerPresentFrac    float64 `csv:"pointer_present_frac"`
	Regenerations         int     `csv:"regenerations"`

	// Connection length distribution of the last tick in the window
	LengthMean float64 `csv:"length_mean"`
	LengthStd  float64 `csv:"length_std"`
	LengthP10  float64 `csv:"length_p10"`
	LengthP50  float64 `csv:"length_p50"`
	LengthP90  float64 `csv:"length_p90"`
}

// LengthStats computes mean, standard deviation and percentiles of
// connection lengths. values is sorted in place.
func LengthStats(values []float64) (mean, std, p10, p50, p90 float64) {
	if len(values) == 0 {
		return 0, 0, 0, 0, 0
	}
	sort.Float64s(values)

	if len(values) == 1 {
		mean = values[0]
	} else {
		mean, std = stat.MeanStdDev(values, nil)
	}
	p10 = stat.Quantile(0.10, stat.Empirical, values, nil)
	p50 = stat.Quantile(0.50, stat.Empirical, values, nil)
	p90 = stat.Quantile(0.90, stat.Empirical, values, nil)
	return mean, std, p10, p50, p90
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_end", int(s.WindowEndTick)),
		slog.Int("particles", s.Particles),
		slog.Float64("influence_radius", s.InfluenceRadius),
		slog.Float64("connections_per_tick", s.ConnectionsPerTick),
		slog.Float64("mean_opacity", s.MeanOpacity),
		slog.Float64("candidates_per_particle", s.CandidatesPerParticle),
		slog.Float64("pointer_present_frac", s.PointerPresentFrac),
		slog.Int("regenerations", s.Regenerations),
		slog.Float64("length_p50", s.LengthP50),
	)
}
