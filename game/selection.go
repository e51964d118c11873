package game

import (
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/orbits/components"
	"github.com/pthm-cable/orbits/config"
)

// BodyView is a read-only view of one body for drawing. Trail aliases the
// live trajectory and must not be modified or retained across Update.
type BodyView struct {
	ID     uint32
	Pos    r2.Vec
	Vel    r2.Vec
	Mass   float64
	Radius float64
	Color  color.RGBA
	Trail  []r2.Vec
}

// EachBody calls fn for every body in storage order.
func (g *Game) EachBody(fn func(BodyView)) {
	query := g.bodyFilter.Query()
	for query.Next() {
		pos, vel, body, app, trail := query.Get()
		fn(BodyView{
			ID:     g.ids[query.Entity()],
			Pos:    pos.Vec,
			Vel:    vel.Vec,
			Mass:   body.Mass,
			Radius: body.Radius,
			Color:  app.Color,
			Trail:  trail.Points,
		})
	}
}

// Bodies returns views of every body.
func (g *Game) Bodies() []BodyView {
	out := make([]BodyView, 0, len(g.ids))
	g.EachBody(func(b BodyView) { out = append(out, b) })
	return out
}

// DrawRadius returns the on-screen radius for a body, exaggerated for
// visibility and never below the configured minimum.
func (g *Game) DrawRadius(radius float64) float64 {
	r := g.camera.LengthToScreen(radius) * g.cfg.Render.RadiusExaggeration
	return math.Max(r, g.cfg.Render.MinRadiusPx)
}

// BodyAt returns the body drawn under screen position (sx, sy), preferring
// the nearest center. slack widens the hit area in pixels.
func (g *Game) BodyAt(sx, sy, slack float64) (BodyView, bool) {
	var best BodyView
	bestDist := math.Inf(1)
	found := false

	g.EachBody(func(b BodyView) {
		bx, by := g.camera.WorldToScreen(b.Pos)
		d := math.Hypot(bx-sx, by-sy)
		if d <= g.DrawRadius(b.Radius)+slack && d < bestDist {
			best, bestDist, found = b, d, true
		}
	})
	return best, found
}

// FieldValue is a formatted inspector row.
type FieldValue struct {
	Group string
	Label string
	Text  string
}

// Inspect returns the inspector rows for body id, or false if it is gone.
func (g *Game) Inspect(id uint32) ([]FieldValue, bool) {
	query := g.bodyFilter.Query()
	for query.Next() {
		if g.ids[query.Entity()] != id {
			continue
		}
		pos, vel, body, _, trail := query.Get()

		var rows []FieldValue
		for _, fd := range components.BodyFieldDescriptors() {
			v := components.GetBodyValue(pos, vel, body, trail, config.AU, fd.ID)
			rows = append(rows, FieldValue{
				Group: fd.Group,
				Label: fd.Label,
				Text:  fmt.Sprintf(fd.Format, v) + " " + fd.Unit,
			})
		}
		query.Close()
		return rows, true
	}
	return nil, false
}
