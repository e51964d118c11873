package game

import (
	"log/slog"

	"github.com/pthm-cable/orbits/telemetry"
)

// emit records a lifecycle event in the stats window and the event log.
func (g *Game) emit(e telemetry.Event) {
	g.collector.Record(e)

	if e.Type != telemetry.EventCollision {
		// Collisions are logged with more detail by halt.
		slog.Info(e.Name,
			"step", e.Step,
			"sim_days", e.SimDays,
			"entity", e.EntityID,
			"value", e.Value,
			"flag", e.Flag,
			"bodies", len(g.ids),
		)
	}

	if err := g.output.WriteEvent(e); err != nil {
		slog.Error("failed to write event", "error", err)
	}
}

func newPlacedEvent(g *Game, id uint32, mass float64) telemetry.Event {
	return telemetry.NewPlacedEvent(g.step, g.SimDays(), id, mass)
}

func newCollisionEvent(g *Game, a, b uint32, distance float64) telemetry.Event {
	return telemetry.NewCollisionEvent(g.step, g.SimDays(), a, b, distance)
}

func newResetEvent(g *Game, removed int) telemetry.Event {
	return telemetry.NewResetEvent(g.step, g.SimDays(), removed)
}

func newCollisionsToggledEvent(g *Game, halt bool) telemetry.Event {
	return telemetry.NewCollisionsToggledEvent(g.step, g.SimDays(), halt)
}

func newPauseEvent(g *Game, paused bool) telemetry.Event {
	return telemetry.NewPauseEvent(g.step, g.SimDays(), paused)
}
