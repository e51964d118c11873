package renderer

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/orbits/camera"
	"github.com/pthm-cable/orbits/config"
)

// maxGridLines caps the lines drawn per axis when zoomed far out.
const maxGridLines = 200

// BackgroundRenderer clears the frame and optionally draws an AU grid.
type BackgroundRenderer struct {
	color     rl.Color
	gridColor rl.Color
}

// NewBackgroundRenderer creates a background with the given clear colour.
func NewBackgroundRenderer(bg rl.Color) *BackgroundRenderer {
	return &BackgroundRenderer{
		color:     bg,
		gridColor: rl.Color{R: 40, G: 45, B: 60, A: 255},
	}
}

// Clear fills the frame with the background colour.
func (b *BackgroundRenderer) Clear() {
	rl.ClearBackground(b.color)
}

// DrawGrid draws a line every AU across the visible area.
func (b *BackgroundRenderer) DrawGrid(cam *camera.Camera) {
	view := cam.VisibleWorldBounds()
	x0 := math.Floor(view.Min.X / config.AU)
	x1 := math.Ceil(view.Max.X / config.AU)
	y0 := math.Floor(view.Min.Y / config.AU)
	y1 := math.Ceil(view.Max.Y / config.AU)
	if x1-x0 > maxGridLines || y1-y0 > maxGridLines {
		return
	}

	h := int32(cam.ViewportH)
	w := int32(cam.ViewportW)
	for i := x0; i <= x1; i++ {
		sx, _ := cam.WorldToScreen(r2.Vec{X: i * config.AU})
		rl.DrawLine(int32(sx), 0, int32(sx), h, b.gridColor)
	}
	for j := y0; j <= y1; j++ {
		_, sy := cam.WorldToScreen(r2.Vec{Y: j * config.AU})
		rl.DrawLine(0, int32(sy), w, int32(sy), b.gridColor)
	}
}
