package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a window of steps.
type WindowStats struct {
	WindowStartStep int64   `csv:"-"`
	WindowEndStep   int64   `csv:"window_end"`
	SimDays         float64 `csv:"sim_days"`

	// World state at window end
	BodyCount int     `csv:"bodies"`
	TotalMass float64 `csv:"total_mass"`

	// Events during window
	Placements int `csv:"placements"`
	Collisions int `csv:"collisions"`
	Resets     int `csv:"resets"`

	// Conservation checks
	Kinetic     float64 `csv:"kinetic"`
	Potential   float64 `csv:"potential"`
	TotalEnergy float64 `csv:"total_energy"`
	EnergyDrift float64 `csv:"energy_drift"` // relative to the baseline energy
	MomentumX   float64 `csv:"momentum_x"`
	MomentumY   float64 `csv:"momentum_y"`
	ComX        float64 `csv:"com_x_au"`
	ComY        float64 `csv:"com_y_au"`

	// Speed distribution (m/s)
	SpeedMean float64 `csv:"speed_mean"`
	SpeedStd  float64 `csv:"speed_std"`
	SpeedP10  float64 `csv:"speed_p10"`
	SpeedP50  float64 `csv:"speed_p50"`
	SpeedP90  float64 `csv:"speed_p90"`
	SpeedMax  float64 `csv:"speed_max"`
}

// Percentile calculates the p-th percentile of a sorted slice.
// p should be in [0, 1]. Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	// Linear interpolation
	idx := p * float64(n-1)
	lo := int(idx)
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}

	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// SpeedStats summarises a speed sample.
type SpeedStats struct {
	Mean, Std     float64
	P10, P50, P90 float64
	Max           float64
}

// ComputeSpeedStats calculates mean, population std and percentiles.
func ComputeSpeedStats(values []float64) SpeedStats {
	n := len(values)
	if n == 0 {
		return SpeedStats{}
	}

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	mean, std := stat.PopMeanStdDev(sorted, nil)
	return SpeedStats{
		Mean: mean,
		Std:  std,
		P10:  Percentile(sorted, 0.10),
		P50:  Percentile(sorted, 0.50),
		P90:  Percentile(sorted, 0.90),
		Max:  sorted[n-1],
	}
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int64("window_start", s.WindowStartStep),
		slog.Int64("window_end", s.WindowEndStep),
		slog.Float64("sim_days", s.SimDays),
		slog.Int("bodies", s.BodyCount),
		slog.Int("placements", s.Placements),
		slog.Int("collisions", s.Collisions),
		slog.Int("resets", s.Resets),
		slog.Float64("total_energy", s.TotalEnergy),
		slog.Float64("energy_drift", s.EnergyDrift),
		slog.Float64("momentum_x", s.MomentumX),
		slog.Float64("momentum_y", s.MomentumY),
		slog.Float64("speed_mean", s.SpeedMean),
		slog.Float64("speed_max", s.SpeedMax),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndStep,
		"sim_days", s.SimDays,
		"bodies", s.BodyCount,
		"total_mass", s.TotalMass,
		"placements", s.Placements,
		"collisions", s.Collisions,
		"resets", s.Resets,
		"kinetic", s.Kinetic,
		"potential", s.Potential,
		"total_energy", s.TotalEnergy,
		"energy_drift", s.EnergyDrift,
		"momentum_x", s.MomentumX,
		"momentum_y", s.MomentumY,
		"com_x_au", s.ComX,
		"com_y_au", s.ComY,
		"speed_mean", s.SpeedMean,
		"speed_std", s.SpeedStd,
		"speed_p50", s.SpeedP50,
		"speed_max", s.SpeedMax,
	)
}
