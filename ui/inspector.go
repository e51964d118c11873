package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/orbits/components"
	"github.com/pthm-cable/orbits/game"
)

// InspectorData holds the selected body and its formatted fields.
type InspectorData struct {
	ID     uint32
	Color  rl.Color
	Fields []game.FieldValue
}

// Inspector renders the body inspection panel.
type Inspector struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewInspector creates a new inspector panel.
func NewInspector(x, y, width int32) *Inspector {
	return &Inspector{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// SetPosition updates the inspector position.
func (ins *Inspector) SetPosition(x, y int32) {
	ins.x = x
	ins.y = y
}

// Draw renders the inspector panel for the given data.
func (ins *Inspector) Draw(data InspectorData) {
	r := ins.renderer
	padding := r.Theme.Padding

	groups := components.BodyGroups()
	height := padding*2 + r.Theme.LineHeight*int32(len(data.Fields)+len(groups)+2) + 8
	x, y := ins.x, ins.y

	r.DrawPanel(x, y, ins.width, height)
	x += padding
	y = r.DrawTitle(x, y+padding, fmt.Sprintf("Body #%d", data.ID))
	y = r.DrawColorSwatch(x, y, "Color", data.Color)

	for _, group := range groups {
		y = r.DrawSectionHeader(x, y, groupTitle(group))
		for _, f := range data.Fields {
			if f.Group != group {
				continue
			}
			y = r.DrawLabelValue(x, y, f.Label, f.Text)
		}
	}
}

func groupTitle(group string) string {
	switch group {
	case "body":
		return "Body"
	case "motion":
		return "Motion"
	default:
		return group
	}
}
