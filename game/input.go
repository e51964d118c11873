package game

// Action is a frontend-independent control.
type Action uint8

const (
	ActionNone Action = iota
	ActionPanUp
	ActionPanDown
	ActionPanLeft
	ActionPanRight
	ActionZoomIn
	ActionZoomOut
	ActionTogglePause
	ActionReset
	ActionToggleCollisions
	ActionStepOnce
)

var actionNames = [...]string{
	ActionNone:             "none",
	ActionPanUp:            "pan_up",
	ActionPanDown:          "pan_down",
	ActionPanLeft:          "pan_left",
	ActionPanRight:         "pan_right",
	ActionZoomIn:           "zoom_in",
	ActionZoomOut:          "zoom_out",
	ActionTogglePause:      "toggle_pause",
	ActionReset:            "reset",
	ActionToggleCollisions: "toggle_collisions",
	ActionStepOnce:         "step_once",
}

func (a Action) String() string {
	if int(a) < len(actionNames) {
		return actionNames[a]
	}
	return "unknown"
}

// Apply performs one control action. Pan actions move the view by the
// configured pan speed and are meant to be applied every frame a key is held.
func (g *Game) Apply(a Action) {
	pan := g.cfg.Camera.PanSpeed

	switch a {
	case ActionPanUp:
		g.camera.Pan(0, pan)
	case ActionPanDown:
		g.camera.Pan(0, -pan)
	case ActionPanLeft:
		g.camera.Pan(pan, 0)
	case ActionPanRight:
		g.camera.Pan(-pan, 0)
	case ActionZoomIn:
		g.camera.ZoomIn()
	case ActionZoomOut:
		g.camera.ZoomOut()
	case ActionTogglePause:
		g.TogglePause()
	case ActionReset:
		g.Reset()
	case ActionToggleCollisions:
		g.ToggleCollisions()
	case ActionStepOnce:
		if g.paused && !g.halted {
			g.Step()
		}
	}
}

// TogglePause suspends or resumes integration.
func (g *Game) TogglePause() {
	g.paused = !g.paused
	g.emit(newPauseEvent(g, g.paused))
}

// ToggleCollisions switches whether collisions freeze the simulation.
// Turning it off releases a frozen simulation.
func (g *Game) ToggleCollisions() {
	g.collisionsHalt = !g.collisionsHalt
	if !g.collisionsHalt {
		g.halted = false
	}
	g.emit(newCollisionsToggledEvent(g, g.collisionsHalt))
}
