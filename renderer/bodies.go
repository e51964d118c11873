// Package renderer draws the simulation world: background, trails and
// bodies, all through the camera transform.
package renderer

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/orbits/camera"
	"github.com/pthm-cable/orbits/game"
)

// velocityPixelsPerKms is the length of a velocity marker per km/s.
const velocityPixelsPerKms = 1.0

// BodyRenderer draws bodies and their trails.
type BodyRenderer struct {
	trailAlpha uint8
	points     []rl.Vector2
}

// NewBodyRenderer creates a body renderer. trailAlpha is the opacity of
// trajectory lines.
func NewBodyRenderer(trailAlpha uint8) *BodyRenderer {
	return &BodyRenderer{trailAlpha: trailAlpha}
}

// DrawTrail draws a body's trajectory as a line strip.
func (r *BodyRenderer) DrawTrail(cam *camera.Camera, b game.BodyView) {
	if len(b.Trail) < 2 {
		return
	}
	r.points = r.points[:0]
	for _, p := range b.Trail {
		sx, sy := cam.WorldToScreen(p)
		r.points = append(r.points, rl.Vector2{X: float32(sx), Y: float32(sy)})
	}
	col := b.Color
	col.A = r.trailAlpha
	rl.DrawLineStrip(r.points, col)
}

// DrawBody draws a body as a filled circle of radiusPx pixels.
func (r *BodyRenderer) DrawBody(cam *camera.Camera, b game.BodyView, radiusPx float64) {
	if !cam.IsVisible(b.Pos, radiusPx) {
		return
	}
	sx, sy := cam.WorldToScreen(b.Pos)
	rl.DrawCircleV(rl.Vector2{X: float32(sx), Y: float32(sy)}, float32(radiusPx), b.Color)
}

// DrawVelocity draws a short line along the body's velocity.
func (r *BodyRenderer) DrawVelocity(cam *camera.Camera, b game.BodyView, radiusPx float64) {
	speed := r2.Norm(b.Vel)
	if speed == 0 {
		return
	}
	sx, sy := cam.WorldToScreen(b.Pos)
	length := radiusPx + speed/1000*velocityPixelsPerKms
	dir := r2.Scale(1/speed, b.Vel)
	rl.DrawLineV(
		rl.Vector2{X: float32(sx), Y: float32(sy)},
		rl.Vector2{X: float32(sx + dir.X*length), Y: float32(sy + dir.Y*length)},
		rl.White,
	)
}

// DrawSelection outlines the selected body.
func (r *BodyRenderer) DrawSelection(cam *camera.Camera, b game.BodyView, radiusPx float64) {
	sx, sy := cam.WorldToScreen(b.Pos)
	rl.DrawCircleLinesV(rl.Vector2{X: float32(sx), Y: float32(sy)}, float32(math.Max(radiusPx+4, 6)), rl.Yellow)
}
