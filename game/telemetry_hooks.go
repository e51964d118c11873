package game

import (
	"log/slog"

	"github.com/pthm-cable/orbits/telemetry"
)

// flushTelemetry closes the stats window when it is due.
func (g *Game) flushTelemetry() {
	if !g.collector.ShouldFlush(g.step) {
		return
	}

	stats := g.collector.Flush(g.step, g.gravity.Bodies(), g.cfg.Physics.G)
	perfStats := g.perf.Stats()

	// Log stats if enabled (console output)
	if g.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	// Write to CSV if output manager is enabled
	if g.output != nil {
		if err := g.output.WriteTelemetry(stats); err != nil {
			slog.Error("failed to write telemetry", "error", err)
		}
		if err := g.output.WritePerf(perfStats, stats.WindowEndStep); err != nil {
			slog.Error("failed to write perf", "error", err)
		}
	}
}

// recordTrajectory writes every body's state when trajectory output is due.
func (g *Game) recordTrajectory() {
	every := int64(g.cfg.Telemetry.TrajectoryEvery)
	if g.output == nil || every <= 0 || g.step%every != 0 {
		return
	}

	g.trajRows = g.trajRows[:0]
	simDays := g.SimDays()
	query := g.bodyFilter.Query()
	for query.Next() {
		pos, vel, body, _, _ := query.Get()
		g.trajRows = append(g.trajRows, telemetry.TrajectoryRow{
			Step:    g.step,
			SimDays: simDays,
			Entity:  g.ids[query.Entity()],
			X:       pos.X,
			Y:       pos.Y,
			VX:      vel.X,
			VY:      vel.Y,
			Mass:    body.Mass,
			Radius:  body.Radius,
		})
	}

	if err := g.output.WriteTrajectory(g.trajRows); err != nil {
		slog.Error("failed to write trajectory", "error", err)
	}
}
