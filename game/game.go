// Package game holds the simulation state and the per-frame update. It has
// no graphics dependency; frontends translate input into Actions, call
// Update, then draw from the accessors.
package game

import (
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/orbits/camera"
	"github.com/pthm-cable/orbits/components"
	"github.com/pthm-cable/orbits/config"
	"github.com/pthm-cable/orbits/physics"
	"github.com/pthm-cable/orbits/systems"
	"github.com/pthm-cable/orbits/telemetry"
)

// Options configures optional collaborators of a Game.
type Options struct {
	Seed     int64
	LogStats bool

	// Output receives CSV telemetry when non-nil.
	Output *telemetry.OutputManager

	// OnHalt is called once when a collision freezes the simulation.
	OnHalt func(systems.Collision)
}

// Game holds the complete simulation state.
type Game struct {
	cfg   *config.Config
	world *ecs.World
	rng   *rand.Rand

	bodyMapper *ecs.Map5[
		components.Position,
		components.Velocity,
		components.Body,
		components.Appearance,
		components.Trail,
	]
	bodyFilter *ecs.Filter5[
		components.Position,
		components.Velocity,
		components.Body,
		components.Appearance,
		components.Trail,
	]

	gravity   *systems.GravitySystem
	collision *systems.CollisionSystem
	trails    *systems.TrailSystem

	camera *camera.Camera

	// State
	step           int64
	paused         bool
	collisionsHalt bool
	halted         bool
	haltedBy       systems.Collision
	nextID         uint32
	ids            map[ecs.Entity]uint32

	// Telemetry
	collector *telemetry.Collector
	perf      *telemetry.PerfCollector
	rate      *telemetry.RateMeter
	output    *telemetry.OutputManager
	logStats  bool
	onHalt    func(systems.Collision)
	trajRows  []telemetry.TrajectoryRow
}

// New creates a game from cfg and spawns the configured initial bodies.
func New(cfg *config.Config, opts Options) *Game {
	world := ecs.NewWorld()

	g := &Game{
		cfg:   cfg,
		world: world,
		rng:   rand.New(rand.NewSource(opts.Seed)),
		bodyMapper: ecs.NewMap5[
			components.Position,
			components.Velocity,
			components.Body,
			components.Appearance,
			components.Trail,
		](world),
		bodyFilter: ecs.NewFilter5[
			components.Position,
			components.Velocity,
			components.Body,
			components.Appearance,
			components.Trail,
		](world),
		collisionsHalt: cfg.Collision.Halt,
		nextID:         1,
		ids:            make(map[ecs.Entity]uint32),
		collector:      telemetry.NewCollector(cfg.Telemetry.StatsWindowSteps, cfg.Derived.SimDaysStep),
		perf:           telemetry.NewPerfCollector(cfg.Telemetry.PerfWindow),
		rate:           telemetry.NewRateMeter(cfg.Telemetry.PerfWindow),
		output:         opts.Output,
		logStats:       opts.LogStats,
		onHalt:         opts.OnHalt,
	}

	params := physics.Params{G: cfg.Physics.G, DT: cfg.Physics.DT}
	g.gravity = systems.NewGravitySystem(world, newSolver(cfg), params)
	g.collision = systems.NewCollisionSystem(world)
	g.trails = systems.NewTrailSystem(world, cfg.Trail.MaxPoints)

	g.camera = camera.New(
		float64(cfg.Screen.Width), float64(cfg.Screen.Height),
		cfg.Derived.Scale, cfg.Camera.ZoomFactor,
		cfg.Camera.MinScaleFactor, cfg.Camera.MaxScaleFactor,
	)

	g.spawnInitialBodies()
	return g
}

func newSolver(cfg *config.Config) physics.Solver {
	if cfg.Physics.Solver == config.SolverBarnesHut {
		return &physics.BarnesHutSolver{Theta: cfg.Physics.Theta}
	}
	return physics.DirectSolver{}
}

// Config returns the configuration the game was built with.
func (g *Game) Config() *config.Config { return g.cfg }

// Camera returns the view transform. Frontends may pan and zoom it directly.
func (g *Game) Camera() *camera.Camera { return g.camera }

// Paused reports whether integration is suspended by the user.
func (g *Game) Paused() bool { return g.paused }

// Halted reports whether a collision froze the simulation.
func (g *Game) Halted() bool { return g.halted }

// HaltedBy returns the collision that froze the simulation.
func (g *Game) HaltedBy() (systems.Collision, bool) { return g.haltedBy, g.halted }

// CollisionsHalt reports whether a collision freezes the simulation.
func (g *Game) CollisionsHalt() bool { return g.collisionsHalt }

// StepCount returns the number of physics steps taken since the last reset.
func (g *Game) StepCount() int64 { return g.step }

// SimDays returns the simulated time since the last reset, in days.
func (g *Game) SimDays() float64 { return float64(g.step) * g.cfg.Derived.SimDaysStep }

// SimRate returns measured simulated days per wall-clock second.
func (g *Game) SimRate() float64 { return g.rate.DaysPerSecond() }

// Perf returns the frame performance collector.
func (g *Game) Perf() *telemetry.PerfCollector { return g.perf }

// BodyCount returns the number of live bodies.
func (g *Game) BodyCount() int { return len(g.ids) }

// Running reports whether Update would advance the simulation.
func (g *Game) Running() bool { return !g.paused && !g.halted }

// SimTime returns the simulated time since the last reset, in seconds.
func (g *Game) SimTime() float64 { return float64(g.step) * g.cfg.Physics.DT }
