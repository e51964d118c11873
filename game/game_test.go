package game

import (
	"errors"
	"math"
	"path/filepath"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/orbits/config"
	"github.com/pthm-cable/orbits/systems"
	"github.com/pthm-cable/orbits/telemetry"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("loading defaults: %v", err)
	}
	return cfg
}

// emptyGame returns a game with no initial bodies.
func emptyGame(t *testing.T) *Game {
	t.Helper()
	cfg := testConfig(t)
	cfg.Bodies = nil
	cfg.Derived.BodyColors = nil
	return New(cfg, Options{Seed: 1})
}

func TestNewSpawnsInitialBodies(t *testing.T) {
	g := New(testConfig(t), Options{Seed: 1})

	bodies := g.Bodies()
	if len(bodies) != 2 {
		t.Fatalf("expected 2 initial bodies, got %d", len(bodies))
	}

	blue := bodies[0]
	if blue.Mass != 6e30 || blue.Vel.X != 29.8e3 {
		t.Errorf("unexpected first body %+v", blue)
	}
	if math.Abs(blue.Pos.Y-11*config.AU) > 1 {
		t.Errorf("first body y = %g, want 11 AU", blue.Pos.Y)
	}
	if blue.Color.B != 255 || blue.Color.R != 0 {
		t.Errorf("first body should be blue, got %v", blue.Color)
	}
	if len(blue.Trail) != 1 {
		t.Errorf("trail should start at the spawn position, got %d points", len(blue.Trail))
	}
	if g.StepCount() != 0 || g.Paused() || g.Halted() {
		t.Error("new game should be running from step 0")
	}
}

func TestUpdateAdvancesAndGrowsTrails(t *testing.T) {
	cfg := testConfig(t)
	cfg.Physics.StepsPerFrame = 3
	g := New(cfg, Options{Seed: 1})

	before := g.Bodies()[0].Pos
	g.BeginFrame()
	g.Update()
	g.EndFrame()

	if g.StepCount() != 3 {
		t.Errorf("StepCount = %d, want 3", g.StepCount())
	}
	if g.SimDays() != 3 {
		t.Errorf("SimDays = %g, want 3", g.SimDays())
	}
	b := g.Bodies()[0]
	if b.Pos == before {
		t.Error("body did not move")
	}
	if len(b.Trail) != 4 {
		t.Errorf("trail has %d points, want 4", len(b.Trail))
	}
}

func TestPauseAndStepOnce(t *testing.T) {
	g := New(testConfig(t), Options{Seed: 1})

	g.Apply(ActionTogglePause)
	if !g.Paused() {
		t.Fatal("expected paused")
	}
	g.Update()
	if g.StepCount() != 0 {
		t.Errorf("paused game stepped to %d", g.StepCount())
	}

	g.Apply(ActionStepOnce)
	if g.StepCount() != 1 {
		t.Errorf("step once: StepCount = %d, want 1", g.StepCount())
	}

	g.Apply(ActionTogglePause)
	g.Apply(ActionStepOnce)
	if g.StepCount() != 1 {
		t.Error("step once should do nothing while running")
	}
	g.Update()
	if g.StepCount() != 2 {
		t.Errorf("resumed game should step, got %d", g.StepCount())
	}
}

func TestResetClearsState(t *testing.T) {
	g := New(testConfig(t), Options{Seed: 1})
	for i := 0; i < 10; i++ {
		g.Update()
	}
	g.Apply(ActionPanLeft)
	g.Apply(ActionPanUp)
	g.Apply(ActionZoomIn)

	g.Apply(ActionReset)

	if g.BodyCount() != 0 || len(g.Bodies()) != 0 {
		t.Errorf("expected empty world after reset, got %d bodies", g.BodyCount())
	}
	cam := g.Camera()
	if cam.OffsetX != 0 || cam.OffsetY != 0 {
		t.Errorf("camera offset = (%g, %g), want (0, 0)", cam.OffsetX, cam.OffsetY)
	}
	if cam.Scale != cam.InitialScale {
		t.Errorf("camera scale = %g, want %g", cam.Scale, cam.InitialScale)
	}
	if g.StepCount() != 0 || g.SimDays() != 0 {
		t.Error("step counter should be cleared")
	}

	// The empty world keeps running without panicking.
	g.Update()
	if g.BodyCount() != 0 {
		t.Error("reset must not respawn bodies")
	}
}

func TestPanActions(t *testing.T) {
	g := emptyGame(t)
	pan := g.Config().Camera.PanSpeed

	tests := []struct {
		action Action
		dx, dy float64
	}{
		{ActionPanUp, 0, pan},
		{ActionPanDown, 0, -pan},
		{ActionPanLeft, pan, 0},
		{ActionPanRight, -pan, 0},
	}
	for _, tt := range tests {
		t.Run(tt.action.String(), func(t *testing.T) {
			cam := g.Camera()
			cam.Reset()
			g.Apply(tt.action)
			if cam.OffsetX != tt.dx || cam.OffsetY != tt.dy {
				t.Errorf("offset = (%g, %g), want (%g, %g)", cam.OffsetX, cam.OffsetY, tt.dx, tt.dy)
			}
		})
	}
}

func TestZoomActions(t *testing.T) {
	g := emptyGame(t)
	cam := g.Camera()

	g.Apply(ActionZoomIn)
	if math.Abs(cam.Scale/cam.InitialScale-g.Config().Camera.ZoomFactor) > 1e-12 {
		t.Errorf("zoom in: scale ratio %g", cam.Scale/cam.InitialScale)
	}
	g.Apply(ActionZoomOut)
	if math.Abs(cam.Scale-cam.InitialScale)/cam.InitialScale > 1e-12 {
		t.Errorf("zoom out should undo zoom in, scale %g", cam.Scale)
	}
}

// overlappingGame places two bodies that already touch.
func overlappingGame(t *testing.T, opts Options) *Game {
	t.Helper()
	cfg := testConfig(t)
	cfg.Bodies = nil
	cfg.Derived.BodyColors = nil
	g := New(cfg, opts)

	for _, x := range []float64{0, 1e9} {
		if _, err := g.PlaceBody(PlacementSpec{
			Pos:    r2.Vec{X: x},
			Mass:   1e24,
			Radius: 6e8,
			Color:  [3]int{255, 255, 255},
		}); err != nil {
			t.Fatal(err)
		}
	}
	return g
}

func TestCollisionHaltsSimulation(t *testing.T) {
	var halts []systems.Collision
	g := overlappingGame(t, Options{Seed: 1, OnHalt: func(c systems.Collision) { halts = append(halts, c) }})

	g.Update()
	if !g.Halted() {
		t.Fatal("expected the collision to halt the simulation")
	}
	if len(halts) != 1 {
		t.Fatalf("OnHalt called %d times, want 1", len(halts))
	}
	col, ok := g.HaltedBy()
	if !ok || col.Distance > col.Reach {
		t.Errorf("unexpected collision %+v", col)
	}

	steps := g.StepCount()
	positions := g.Bodies()
	for i := 0; i < 5; i++ {
		g.Update()
	}
	if g.StepCount() != steps {
		t.Error("halted simulation kept stepping")
	}
	for i, b := range g.Bodies() {
		if b.Pos != positions[i].Pos {
			t.Errorf("body %d moved while halted", i)
		}
	}

	// Ignoring collisions releases the freeze.
	g.Apply(ActionToggleCollisions)
	if g.Halted() || g.CollisionsHalt() {
		t.Fatal("toggling collisions off should resume the simulation")
	}
	g.Update()
	if g.StepCount() != steps+1 {
		t.Errorf("StepCount = %d, want %d", g.StepCount(), steps+1)
	}
	if len(halts) != 1 {
		t.Error("no further halts expected while collisions are ignored")
	}
}

func TestResetClearsHalt(t *testing.T) {
	g := overlappingGame(t, Options{Seed: 1})
	g.Update()
	if !g.Halted() {
		t.Fatal("expected halt")
	}
	g.Reset()
	if g.Halted() {
		t.Error("reset should clear the halted flag")
	}
	if !g.CollisionsHalt() {
		t.Error("reset should keep the collision setting")
	}
}

func TestPlacementValidation(t *testing.T) {
	tests := []struct {
		name string
		spec PlacementSpec
		want error
	}{
		{"zero mass", PlacementSpec{Mass: 0, Radius: 1}, ErrInvalidMass},
		{"negative mass", PlacementSpec{Mass: -5, Radius: 1}, ErrInvalidMass},
		{"NaN mass", PlacementSpec{Mass: math.NaN(), Radius: 1}, ErrInvalidMass},
		{"zero radius", PlacementSpec{Mass: 1, Radius: 0}, ErrInvalidRadius},
		{"red too high", PlacementSpec{Mass: 1, Radius: 1, Color: [3]int{256, 0, 0}}, ErrInvalidColor},
		{"blue negative", PlacementSpec{Mass: 1, Radius: 1, Color: [3]int{0, 0, -1}}, ErrInvalidColor},
		{"infinite mass", PlacementSpec{Mass: math.Inf(1), Radius: 1}, ErrInvalidMass},
		{"infinite speed", PlacementSpec{Mass: 1, Radius: 1, Speed: math.Inf(1)}, ErrNotFinite},
		{"negative infinite speed", PlacementSpec{Mass: 1, Radius: 1, Speed: math.Inf(-1)}, ErrNotFinite},
		{"NaN speed", PlacementSpec{Mass: 1, Radius: 1, Speed: math.NaN()}, ErrNotFinite},
		{"NaN angle", PlacementSpec{Mass: 1, Radius: 1, AngleDeg: math.NaN()}, ErrNotFinite},
		{"infinite angle", PlacementSpec{Mass: 1, Radius: 1, AngleDeg: math.Inf(1)}, ErrNotFinite},
		{"infinite position", PlacementSpec{Pos: r2.Vec{X: math.Inf(1)}, Mass: 1, Radius: 1}, ErrNotFinite},
		{"NaN position", PlacementSpec{Pos: r2.Vec{Y: math.NaN()}, Mass: 1, Radius: 1}, ErrNotFinite},
		{"valid bounds", PlacementSpec{Mass: 1, Radius: 1, Color: [3]int{0, 255, 128}}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := emptyGame(t)
			_, err := g.PlaceBody(tt.spec)
			if tt.want == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if g.BodyCount() != 1 {
					t.Error("valid body was not placed")
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want %v", err, tt.want)
			}
			if g.BodyCount() != 0 {
				t.Error("invalid body was placed")
			}
		})
	}
}

func TestRejectedPlacementKeepsBodiesFinite(t *testing.T) {
	g := New(testConfig(t), Options{Seed: 1})
	before := g.BodyCount()

	for _, speed := range []float64{math.Inf(1), math.NaN()} {
		if _, err := g.PlaceBody(PlacementSpec{Mass: 2e30, Radius: 7e7, Speed: speed, Color: [3]int{255, 0, 0}}); !errors.Is(err, ErrNotFinite) {
			t.Fatalf("speed %g: error = %v, want ErrNotFinite", speed, err)
		}
	}
	if g.BodyCount() != before {
		t.Fatalf("BodyCount = %d, want %d", g.BodyCount(), before)
	}

	for i := 0; i < 3; i++ {
		g.Step()
	}
	for i, b := range g.Bodies() {
		if math.IsNaN(b.Pos.X) || math.IsNaN(b.Pos.Y) || math.IsInf(b.Pos.X, 0) || math.IsInf(b.Pos.Y, 0) {
			t.Errorf("body %d position %v is not finite", i, b.Pos)
		}
	}
}

func TestPlacementVelocity(t *testing.T) {
	tests := []struct {
		name  string
		speed float64
		angle float64
		want  r2.Vec
	}{
		{"along x", 10, 0, r2.Vec{X: 10}},
		{"along y", 10, 90, r2.Vec{Y: 10}},
		{"negative speed flipped", -10, 0, r2.Vec{X: 10}},
		{"backwards", 4, 180, r2.Vec{X: -4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := PlacementSpec{Mass: 1, Radius: 1, Speed: tt.speed, AngleDeg: tt.angle}
			if err := spec.Validate(); err != nil {
				t.Fatal(err)
			}
			v := spec.Velocity()
			if r2.Norm(r2.Sub(v, tt.want)) > 1e-9 {
				t.Errorf("velocity = %v, want %v", v, tt.want)
			}
		})
	}
}

func TestPlaceDefaultAt(t *testing.T) {
	g := emptyGame(t)
	g.Camera().Pan(100, 0)

	id, err := g.PlaceDefaultAt(500, 400)
	if err != nil {
		t.Fatal(err)
	}
	bodies := g.Bodies()
	if len(bodies) != 1 || bodies[0].ID != id {
		t.Fatalf("unexpected bodies %+v", bodies)
	}
	b := bodies[0]
	cfg := g.Config()
	if b.Mass != cfg.Placement.Mass || b.Radius != cfg.Placement.Radius {
		t.Errorf("mass/radius = %g/%g, want defaults", b.Mass, b.Radius)
	}
	if b.Vel != (r2.Vec{}) {
		t.Errorf("default body should be at rest, got %v", b.Vel)
	}
	// (500-100)/50 = 8 AU, 400/50 = 8 AU.
	if math.Abs(b.Pos.X/config.AU-8) > 1e-9 || math.Abs(b.Pos.Y/config.AU-8) > 1e-9 {
		t.Errorf("position = (%g, %g) AU, want (8, 8)", b.Pos.X/config.AU, b.Pos.Y/config.AU)
	}
	if b.Color.A != 255 {
		t.Error("colour should be opaque")
	}
}

func TestAutoOrbit(t *testing.T) {
	cfg := testConfig(t)
	cfg.AutoOrbit = true
	g := New(cfg, Options{Seed: 1})

	// The heaviest initial body is at (8, 11) AU.
	sx, sy := g.Camera().WorldToScreen(r2.Vec{X: 9 * config.AU, Y: 11 * config.AU})
	id, err := g.PlaceDefaultAt(sx, sy)
	if err != nil {
		t.Fatal(err)
	}
	for _, b := range g.Bodies() {
		if b.ID != id {
			continue
		}
		// Relative velocity is perpendicular to the +X radius.
		rel := r2.Sub(b.Vel, r2.Vec{X: 29.8e3})
		if math.Abs(rel.X) > 1e-6 || rel.Y <= 0 {
			t.Errorf("unexpected orbital velocity %v", rel)
		}
		return
	}
	t.Fatal("placed body not found")
}

func TestDeterministicRuns(t *testing.T) {
	run := func() []BodyView {
		g := New(testConfig(t), Options{Seed: 7})
		g.PlaceDefaultAt(100, 100)
		for i := 0; i < 300 && g.Running(); i++ {
			g.Update()
		}
		return g.Bodies()
	}

	a, b := run(), run()
	if len(a) != len(b) {
		t.Fatalf("body counts differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i].Pos != b[i].Pos || a[i].Vel != b[i].Vel || a[i].Color != b[i].Color {
			t.Errorf("body %d differs between runs", i)
		}
	}
}

func TestBodyAtAndInspect(t *testing.T) {
	g := New(testConfig(t), Options{Seed: 1})

	// Yellow body sits at (8, 8) AU = pixel (400, 400).
	b, ok := g.BodyAt(401, 399, 4)
	if !ok || b.Mass != 2e30 {
		t.Fatalf("BodyAt = %+v, %v", b, ok)
	}
	if _, ok := g.BodyAt(10, 10, 4); ok {
		t.Error("expected no body in an empty corner")
	}

	rows, ok := g.Inspect(b.ID)
	if !ok || len(rows) == 0 {
		t.Fatal("expected inspector rows")
	}
	if rows[0].Label != "Mass" {
		t.Errorf("first row = %+v", rows[0])
	}
	if _, ok := g.Inspect(9999); ok {
		t.Error("unknown id should not inspect")
	}
}

func TestOutputRecordsRun(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	om, err := telemetry.NewOutputManager(dir)
	if err != nil {
		t.Fatal(err)
	}
	cfg := testConfig(t)
	cfg.Telemetry.StatsWindowSteps = 5
	g := New(cfg, Options{Seed: 1, Output: om})

	for i := 0; i < 10; i++ {
		g.Update()
	}
	g.Reset()
	if err := om.Close(); err != nil {
		t.Fatal(err)
	}

	var rows []telemetry.TrajectoryRow
	readCSV(t, filepath.Join(dir, "trajectory.csv"), &rows)
	if len(rows) != 20 {
		t.Errorf("trajectory rows = %d, want 20", len(rows))
	}
	var stats []telemetry.WindowStats
	readCSV(t, filepath.Join(dir, "telemetry.csv"), &stats)
	if len(stats) != 2 {
		t.Errorf("telemetry rows = %d, want 2", len(stats))
	}
	var events []telemetry.Event
	readCSV(t, filepath.Join(dir, "events.csv"), &events)
	if len(events) != 1 || events[0].Name != "reset" || events[0].Value != 2 {
		t.Errorf("events = %+v", events)
	}
}

func TestActionNames(t *testing.T) {
	if ActionReset.String() != "reset" || Action(250).String() != "unknown" {
		t.Error("unexpected action names")
	}
}

func TestRunSteps(t *testing.T) {
	g := New(testConfig(t), Options{Seed: 1})
	if n := g.RunSteps(50); n != 50 || g.StepCount() != 50 {
		t.Errorf("RunSteps(50) = %d, StepCount %d", n, g.StepCount())
	}
	if n := g.RunSteps(50); n != 0 {
		t.Errorf("second RunSteps(50) = %d, want 0", n)
	}

	h := overlappingGame(t, Options{Seed: 1})
	if n := h.RunSteps(0); n != 1 || !h.Halted() {
		t.Errorf("RunSteps(0) = %d, halted %v; want 1 step then halt", n, h.Halted())
	}
}
