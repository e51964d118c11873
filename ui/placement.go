package ui

import (
	"fmt"
	"math"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/orbits/config"
	"github.com/pthm-cable/orbits/game"
)

// PlacementPanel holds slider values for the next placed body. Mass and
// radius are chosen on a log10 scale.
type PlacementPanel struct {
	renderer *Renderer
	bounds   rl.Rectangle

	MassExp   float32 // log10 kg
	RadiusExp float32 // log10 m
	SpeedKms  float32
	AngleDeg  float32
	Hue       float32
}

// NewPlacementPanel creates a panel seeded from the placement defaults.
func NewPlacementPanel(cfg config.PlacementConfig, x, y int32) *PlacementPanel {
	return &PlacementPanel{
		renderer:  NewRenderer(),
		bounds:    rl.Rectangle{X: float32(x), Y: float32(y), Width: 260, Height: 250},
		MassExp:   float32(math.Log10(cfg.Mass)),
		RadiusExp: float32(math.Log10(cfg.Radius)),
		SpeedKms:  float32(cfg.Speed / 1000),
		AngleDeg:  float32(cfg.Angle),
		Hue:       200,
	}
}

// Contains reports whether p is over the panel.
func (p *PlacementPanel) Contains(pt rl.Vector2) bool {
	return rl.CheckCollisionPointRec(pt, p.bounds)
}

// Color returns the colour chosen by the hue slider.
func (p *PlacementPanel) Color() colorful.Color {
	return colorful.Hcl(float64(p.Hue), 0.7, 0.7).Clamped()
}

// Spec returns the placement for a body at pos.
func (p *PlacementPanel) Spec(pos r2.Vec) game.PlacementSpec {
	r, g, b := p.Color().RGB255()
	return game.PlacementSpec{
		Pos:      pos,
		Mass:     math.Pow(10, float64(p.MassExp)),
		Radius:   math.Pow(10, float64(p.RadiusExp)),
		Speed:    float64(p.SpeedKms) * 1000,
		AngleDeg: float64(p.AngleDeg),
		Color:    [3]int{int(r), int(g), int(b)},
	}
}

// Draw renders the sliders and applies any changes.
func (p *PlacementPanel) Draw() {
	r := p.renderer
	x := p.bounds.X + float32(r.Theme.Padding)
	y := p.bounds.Y + float32(r.Theme.Padding)
	w := p.bounds.Width - float32(r.Theme.Padding)*2 - 70

	r.DrawPanel(int32(p.bounds.X), int32(p.bounds.Y), int32(p.bounds.Width), int32(p.bounds.Height))
	y = float32(r.DrawTitle(int32(x), int32(y), "Next body"))

	slider := func(label, value string, v, min, max float32) float32 {
		rl.DrawText(label, int32(x), int32(y), r.Theme.FontSize, r.Theme.LabelColor)
		y += 14
		nv := gui.SliderBar(rl.Rectangle{X: x, Y: y, Width: w, Height: 16}, "", "", v, min, max)
		rl.DrawText(value, int32(x+w+8), int32(y+2), r.Theme.FontSize, r.Theme.ValueColor)
		y += 24
		return nv
	}

	p.MassExp = slider("Mass", fmt.Sprintf("%.1e kg", math.Pow(10, float64(p.MassExp))), p.MassExp, 20, 32)
	p.RadiusExp = slider("Radius", fmt.Sprintf("%.1e m", math.Pow(10, float64(p.RadiusExp))), p.RadiusExp, 5, 9)
	p.SpeedKms = slider("Speed", fmt.Sprintf("%.1f km/s", p.SpeedKms), p.SpeedKms, 0, 100)
	p.AngleDeg = slider("Angle", fmt.Sprintf("%.0f deg", p.AngleDeg), p.AngleDeg, 0, 360)
	p.Hue = slider("Hue", "", p.Hue, 0, 360)

	cr, cg, cb := p.Color().RGB255()
	r.DrawColorSwatch(int32(x), int32(y), "Color", rl.Color{R: cr, G: cg, B: cb, A: 255})
}
