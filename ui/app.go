package ui

import (
	"errors"
	"io"
	"log/slog"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/orbits/config"
	"github.com/pthm-cable/orbits/game"
	"github.com/pthm-cable/orbits/prompt"
	"github.com/pthm-cable/orbits/renderer"
	"github.com/pthm-cable/orbits/systems"
)

// clickSlack widens the hit area when selecting small bodies.
const clickSlack = 4

// AppOptions configures the graphical frontend.
type AppOptions struct {
	// MaxSteps closes the window after this many steps (0 = unlimited).
	MaxSteps int64

	// Prompt mode reads body parameters from PromptIn and echoes
	// questions to PromptOut.
	PromptIn  io.Reader
	PromptOut io.Writer
}

// App runs the raylib window: input, update and drawing for one Game.
// The window must already be open.
type App struct {
	game *game.Game
	cfg  *config.Config
	opts AppOptions

	hud        *HUD
	controls   *ControlsPanel
	placement  *PlacementPanel
	inspector  *Inspector
	perf       *PerfPanel
	overlays   *OverlayRegistry
	background *renderer.BackgroundRenderer
	bodies     *renderer.BodyRenderer

	selected     uint32
	hasSelection bool
	actions      []game.Action
	// pending holds the button pressed while drawing the previous frame.
	pending game.Action
}

// NewApp creates the frontend for g.
func NewApp(g *game.Game, opts AppOptions) *App {
	cfg := g.Config()
	return &App{
		game:       g,
		cfg:        cfg,
		opts:       opts,
		hud:        NewHUD(),
		controls:   NewControlsPanel(0, 10, 300),
		placement:  NewPlacementPanel(cfg.Placement, 10, 125),
		inspector:  NewInspector(0, 46, 240),
		perf:       NewPerfPanel(systems.NewSystemRegistry(), 10, 0),
		overlays:   NewOverlayRegistry(),
		background: renderer.NewBackgroundRenderer(cfg.Derived.Background),
		bodies:     renderer.NewBodyRenderer(cfg.Render.TrailAlpha),
	}
}

// Run processes frames until the window is closed or MaxSteps is reached.
// rl.SetTargetFPS paces the loop.
func (a *App) Run() {
	for !rl.WindowShouldClose() {
		a.Frame()

		if a.opts.MaxSteps > 0 && a.game.StepCount() >= a.opts.MaxSteps {
			slog.Info("max steps reached", "step", a.game.StepCount())
			return
		}
	}
}

// Frame handles input, advances the simulation and draws one frame.
func (a *App) Frame() {
	g := a.game
	g.BeginFrame()

	if rl.IsWindowResized() {
		g.Camera().Resize(float64(rl.GetScreenWidth()), float64(rl.GetScreenHeight()))
	}
	a.layout()

	a.actions = a.actions[:0]
	if a.pending != game.ActionNone {
		a.actions = append(a.actions, a.pending)
		a.pending = game.ActionNone
	}
	a.actions = KeyActions(a.actions)
	for _, act := range a.actions {
		g.Apply(act)
	}
	a.overlays.HandleKeys()
	a.handleMouse()

	g.Update()
	a.draw()
	g.EndFrame()
}

func (a *App) layout() {
	w := int32(rl.GetScreenWidth())
	h := int32(rl.GetScreenHeight())
	a.controls.SetPosition(w-310, 10)
	a.inspector.SetPosition(w-250, 46)
	a.perf.SetPosition(10, h-a.perf.Height()-35)
}

func (a *App) overUI(p rl.Vector2) bool {
	if a.controls.Contains(p) {
		return true
	}
	return a.cfg.Placement.Mode == config.PlacementPanel && a.placement.Contains(p)
}

func (a *App) handleMouse() {
	g := a.game
	mouse := rl.GetMousePosition()
	mx, my := float64(mouse.X), float64(mouse.Y)

	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		g.Camera().ZoomAt(math.Pow(a.cfg.Camera.WheelFactor, float64(wheel)), mx, my)
	}

	if rl.IsMouseButtonPressed(rl.MouseButtonRight) {
		if b, ok := g.BodyAt(mx, my, clickSlack); ok {
			a.selected, a.hasSelection = b.ID, true
		} else {
			a.hasSelection = false
		}
	}

	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) && !a.overUI(mouse) {
		a.place(mx, my)
	}
}

// place adds a body at the cursor according to the placement mode.
func (a *App) place(sx, sy float64) {
	g := a.game
	pos := g.Camera().ScreenToWorld(sx, sy)

	var err error
	switch a.cfg.Placement.Mode {
	case config.PlacementPanel:
		_, err = g.PlaceBody(a.placement.Spec(pos))
	case config.PlacementPrompt:
		slog.Info("waiting for body parameters", "x_au", pos.X/config.AU, "y_au", pos.Y/config.AU)
		spec, perr := prompt.ReadPlacement(a.opts.PromptIn, a.opts.PromptOut, pos)
		if perr != nil {
			if errors.Is(perr, io.EOF) {
				slog.Warn("prompt input closed, falling back to default placement")
				a.cfg.Placement.Mode = config.PlacementDefault
			} else {
				slog.Warn("prompt failed", "error", perr)
			}
			return
		}
		_, err = g.PlaceBody(spec)
	default:
		_, err = g.PlaceDefaultAt(sx, sy)
	}
	if err != nil {
		slog.Warn("placement rejected", "error", err)
	}
}

func (a *App) draw() {
	g := a.game
	cam := g.Camera()
	w := int32(rl.GetScreenWidth())
	h := int32(rl.GetScreenHeight())

	rl.BeginDrawing()
	a.background.Clear()

	if a.overlays.IsEnabled(OverlayGrid) {
		a.background.DrawGrid(cam)
	}
	if a.overlays.IsEnabled(OverlayTrails) {
		g.EachBody(func(b game.BodyView) {
			a.bodies.DrawTrail(cam, b)
		})
	}

	var selected game.BodyView
	found := false
	showVectors := a.overlays.IsEnabled(OverlayVectors)
	g.EachBody(func(b game.BodyView) {
		radius := g.DrawRadius(b.Radius)
		a.bodies.DrawBody(cam, b, radius)
		if showVectors {
			a.bodies.DrawVelocity(cam, b, radius)
		}
		if a.hasSelection && b.ID == a.selected {
			a.bodies.DrawSelection(cam, b, radius)
			selected, found = b, true
		}
	})

	a.hud.Draw(HUDData{
		Title:          a.cfg.Screen.Title,
		Bodies:         g.BodyCount(),
		Step:           g.StepCount(),
		SimDays:        g.SimDays(),
		DaysPerSecond:  g.SimRate(),
		FPS:            rl.GetFPS(),
		Zoom:           cam.Scale / cam.InitialScale,
		Paused:         g.Paused(),
		CollisionsHalt: g.CollisionsHalt(),
		Halted:         g.Halted(),
		PlacementMode:  a.cfg.Placement.Mode,
	})
	if g.Halted() {
		a.hud.DrawCollisionBanner(w, h)
	}

	a.pending = a.controls.Buttons(g.Paused(), g.CollisionsHalt())
	if a.cfg.Placement.Mode == config.PlacementPanel {
		a.placement.Draw()
	}

	if a.hasSelection {
		if rows, ok := g.Inspect(a.selected); ok && found {
			a.inspector.Draw(InspectorData{ID: a.selected, Color: selected.Color, Fields: rows})
		} else {
			a.hasSelection = false
		}
	}

	if a.overlays.IsEnabled(OverlayPerf) {
		a.perf.Draw(g.Perf().Stats())
	}
	if a.overlays.IsEnabled(OverlayHelp) {
		a.controls.DrawHelp(a.overlays, w, h)
	} else {
		a.hud.DrawControls(w, h, "H: help | Space: pause | R: reset | C: collisions | click: place body")
	}

	rl.EndDrawing()
}
