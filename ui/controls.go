package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/orbits/game"
)

// keyBindings is the legend shown in the help panel.
var keyBindings = [][2]string{
	{"Arrows", "Pan"},
	{"= / -", "Zoom in / out"},
	{"Wheel", "Zoom at cursor"},
	{"Space", "Pause"},
	{"N", "Step once (paused)"},
	{"R", "Reset"},
	{"C", "Toggle collisions"},
	{"Left click", "Place body"},
	{"Right click", "Inspect body"},
}

// ControlsPanel renders the Pause / Reset / Collisions buttons and the help
// legend.
type ControlsPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewControlsPanel creates a new controls panel.
func NewControlsPanel(x, y, width int32) *ControlsPanel {
	return &ControlsPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// SetPosition updates the panel position.
func (c *ControlsPanel) SetPosition(x, y int32) {
	c.x = x
	c.y = y
}

func (c *ControlsPanel) buttonBounds(i int) rl.Rectangle {
	w := float32(c.width-20) / 3
	return rl.Rectangle{X: float32(c.x) + float32(i)*(w+10), Y: float32(c.y), Width: w, Height: 26}
}

// Contains reports whether p is over the buttons.
func (c *ControlsPanel) Contains(p rl.Vector2) bool {
	return rl.CheckCollisionPointRec(p, rl.Rectangle{X: float32(c.x), Y: float32(c.y), Width: float32(c.width), Height: 26})
}

// Buttons draws the control buttons and returns the action of the one
// clicked this frame, if any.
func (c *ControlsPanel) Buttons(paused, collisionsHalt bool) game.Action {
	action := game.ActionNone
	if gui.Button(c.buttonBounds(0), toggleText(paused, "Resume", "Pause")) {
		action = game.ActionTogglePause
	}
	if gui.Button(c.buttonBounds(1), "Reset") {
		action = game.ActionReset
	}
	if gui.Button(c.buttonBounds(2), toggleText(collisionsHalt, "Collide: halt", "Collide: off")) {
		action = game.ActionToggleCollisions
	}
	return action
}

// DrawHelp renders the key legend and overlay toggles.
func (c *ControlsPanel) DrawHelp(overlays *OverlayRegistry, screenW, screenH int32) {
	r := c.renderer
	padding := r.Theme.Padding
	lineHeight := r.Theme.LineHeight

	categories := overlays.Categories()
	lines := len(keyBindings) + 1
	for _, cat := range categories {
		lines += len(overlays.ByCategory(cat)) + 1
	}
	width := int32(280)
	height := int32(lines)*lineHeight + padding*2 + lineHeight + 8
	x, y := AnchorBottomRight.Place(width, height, screenW, screenH, 40)

	r.DrawPanel(x, y, width, height)
	x += padding
	y = r.DrawTitle(x, y+padding, "Help")

	y = r.DrawSectionHeader(x, y, "Keys")
	for _, kb := range keyBindings {
		y = r.DrawLabelValue(x, y, kb[0], kb[1])
	}

	for _, category := range categories {
		y = r.DrawSectionHeader(x, y, categoryLabel(category))
		for _, desc := range overlays.ByCategory(category) {
			c.drawToggle(x, y, desc, overlays.IsEnabled(desc.ID), width-padding*2)
			y += lineHeight
		}
	}
}

// drawToggle draws a single overlay toggle line.
func (c *ControlsPanel) drawToggle(x, y int32, desc OverlayDescriptor, enabled bool, width int32) {
	r := c.renderer

	statusColor := rl.Color{R: 80, G: 80, B: 80, A: 255}
	if enabled {
		statusColor = rl.Color{R: 100, G: 200, B: 100, A: 255}
	}
	rl.DrawRectangle(x, y+2, 8, 8, statusColor)

	nameColor := r.Theme.LabelColor
	if enabled {
		nameColor = rl.White
	}
	rl.DrawText(desc.Name, x+14, y, r.Theme.FontSize, nameColor)

	if desc.KeyLabel != "" {
		keyText := fmt.Sprintf("[%s]", desc.KeyLabel)
		keyWidth := rl.MeasureText(keyText, r.Theme.FontSize)
		rl.DrawText(keyText, x+width-keyWidth, y, r.Theme.FontSize, rl.Color{R: 150, G: 150, B: 150, A: 255})
	}
}

func categoryLabel(cat string) string {
	switch cat {
	case "view":
		return "View"
	case "debug":
		return "Debug"
	default:
		return cat
	}
}

func toggleText(on bool, onText, offText string) string {
	if on {
		return onText
	}
	return offText
}
