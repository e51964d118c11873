package game

import (
	"log/slog"
	"time"

	"github.com/pthm-cable/orbits/systems"
	"github.com/pthm-cable/orbits/telemetry"
)

// BeginFrame starts frame timing. Call before applying input.
func (g *Game) BeginFrame() {
	g.perf.StartTick()
	g.perf.StartPhase(telemetry.PhaseInput)
}

// Update advances the simulation by one frame: steps_per_frame physics
// steps unless paused or frozen by a collision.
func (g *Game) Update() {
	for i := 0; i < g.cfg.Physics.StepsPerFrame && g.Running(); i++ {
		g.Step()
	}
	g.perf.StartPhase(telemetry.PhaseRender)
}

// EndFrame finishes frame timing. Call after drawing.
func (g *Game) EndFrame() {
	g.perf.EndTick()
	g.perf.RecordFrame()
	g.rate.Sample(time.Now(), g.SimDays())
}

// Step runs exactly one physics step: forces and integration for every
// body, trail update, then the collision check.
func (g *Game) Step() {
	g.perf.StartPhase(telemetry.PhaseGravity)
	g.gravity.Update()
	g.step++

	g.perf.StartPhase(telemetry.PhaseTrail)
	g.trails.Update()

	if g.collisionsHalt && !g.halted {
		g.perf.StartPhase(telemetry.PhaseCollision)
		if col, ok := g.collision.Check(); ok {
			g.halt(col)
		}
	}

	g.perf.StartPhase(telemetry.PhaseTelemetry)
	g.recordTrajectory()
	g.flushTelemetry()
	g.perf.EndPhase()
}

// halt freezes the simulation on a collision. There is no collision
// response; bodies stay where they are until reset or collisions are
// toggled off.
func (g *Game) halt(col systems.Collision) {
	g.halted = true
	g.haltedBy = col

	a, b := g.ids[col.A], g.ids[col.B]
	slog.Info("collision_halt",
		"step", g.step,
		"sim_days", g.SimDays(),
		"a", a,
		"b", b,
		"distance", col.Distance,
		"reach", col.Reach,
	)
	g.emit(newCollisionEvent(g, a, b, col.Distance))

	if g.onHalt != nil {
		g.onHalt(col)
	}
}

// RunSteps steps the simulation without frame timing until maxSteps steps
// have been taken since the last reset or it halts. maxSteps <= 0 runs
// until a collision halts it. Returns the number of steps taken.
func (g *Game) RunSteps(maxSteps int64) int64 {
	start := g.step
	for g.Running() && (maxSteps <= 0 || g.step < maxSteps) {
		g.Step()
	}
	return g.step - start
}
