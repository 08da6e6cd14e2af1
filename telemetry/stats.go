package telemetry

import (
	"log/slog"
	"slices"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	RunID      string  `csv:"run_id"`
	Frame      int64   `csv:"frame"`
	ElapsedSec float64 `csv:"elapsed_sec"`
	Frames     int     `csv:"frames"`
	FPS        float64 `csv:"fps"`

	// Per-frame means over the window
	ParticlesMean float64 `csv:"particles_mean"`
	LinksMean     float64 `csv:"links_mean"`
	LinksMax      float64 `csv:"links_max"`

	// Frame task wall time in milliseconds
	FrameMSMean float64 `csv:"frame_ms_mean"`
	FrameMSStd  float64 `csv:"frame_ms_std"`
	FrameMSP50  float64 `csv:"frame_ms_p50"`
	FrameMSP90  float64 `csv:"frame_ms_p90"`

	// Events during window
	Respawns int `csv:"respawns"`
	Rebuilds int `csv:"rebuilds"`
	Resizes  int `csv:"resizes"`
}

// MeanStd returns the mean and sample standard deviation of values.
// Empty input yields zeros; a single value has zero deviation.
func MeanStd(values []float64) (mean, std float64) {
	switch len(values) {
	case 0:
		return 0, 0
	case 1:
		return values[0], 0
	}
	return stat.MeanStdDev(values, nil)
}

// Quantiles returns the empirical median and 90th percentile of values.
func Quantiles(values []float64) (p50, p90 float64) {
	if len(values) == 0 {
		return 0, 0
	}
	sorted := slices.Clone(values)
	slices.Sort(sorted)
	return stat.Quantile(0.5, stat.Empirical, sorted, nil),
		stat.Quantile(0.9, stat.Empirical, sorted, nil)
}

// Max returns the largest value, or 0 for empty input.
func Max(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return floats.Max(values)
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int64("frame", s.Frame),
		slog.Float64("elapsed_sec", s.ElapsedSec),
		slog.Int("frames", s.Frames),
		slog.Float64("fps", s.FPS),
		slog.Float64("particles_mean", s.ParticlesMean),
		slog.Float64("links_mean", s.LinksMean),
		slog.Float64("links_max", s.LinksMax),
		slog.Float64("frame_ms_mean", s.FrameMSMean),
		slog.Float64("frame_ms_std", s.FrameMSStd),
		slog.Float64("frame_ms_p50", s.FrameMSP50),
		slog.Float64("frame_ms_p90", s.FrameMSP90),
		slog.Int("respawns", s.Respawns),
		slog.Int("rebuilds", s.Rebuilds),
		slog.Int("resizes", s.Resizes),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats", "run_id", s.RunID, "window", s)
}

// RebuildRecord describes one population rebuild for rebuilds.csv.
type RebuildRecord struct {
	RunID        string  `csv:"run_id"`
	Frame        int64   `csv:"frame"`
	ElapsedSec   float64 `csv:"elapsed_sec"`
	Reason       string  `csv:"reason"`
	Width        int     `csv:"width"`
	Height       int     `csv:"height"`
	Particles    int     `csv:"particles"`
	PreviousArea float64 `csv:"previous_area"`
	Area         float64 `csv:"area"`
	Drift        float64 `csv:"drift"`
}

// Rebuild reasons.
const (
	RebuildInitial = "initial"
	RebuildDensity = "density"
)

// LogValue implements slog.LogValuer.
func (r RebuildRecord) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("reason", r.Reason),
		slog.Int("width", r.Width),
		slog.Int("height", r.Height),
		slog.Int("particles", r.Particles),
		slog.Float64("previous_area", r.PreviousArea),
		slog.Float64("area", r.Area),
		slog.Float64("drift", r.Drift),
	)
}
