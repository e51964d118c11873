// Package camera maps simulation space (meters) to display space (pixels).
package camera

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Camera controls the viewport into the simulation.
// A world point p is drawn at p*Scale + Offset.
type Camera struct {
	// Offset is the pixel translation applied after scaling.
	OffsetX, OffsetY float64

	// Scale in pixels per meter.
	Scale float64

	// InitialScale is restored by Reset.
	InitialScale float64

	// ZoomFactor is the per-step multiplier used by ZoomIn/ZoomOut.
	ZoomFactor float64

	// Scale constraints
	MinScale, MaxScale float64

	// Viewport dimensions (screen size)
	ViewportW, ViewportH float64
}

// New creates a camera with zero offset at the given scale. Zoom is bounded
// to [scale*minFactor, scale*maxFactor].
func New(viewportW, viewportH, scale, zoomFactor, minFactor, maxFactor float64) *Camera {
	return &Camera{
		Scale:        scale,
		InitialScale: scale,
		ZoomFactor:   zoomFactor,
		MinScale:     scale * minFactor,
		MaxScale:     scale * maxFactor,
		ViewportW:    viewportW,
		ViewportH:    viewportH,
	}
}

// WorldToScreen converts a simulation position to screen coordinates.
func (c *Camera) WorldToScreen(p r2.Vec) (sx, sy float64) {
	return p.X*c.Scale + c.OffsetX, p.Y*c.Scale + c.OffsetY
}

// ScreenToWorld converts screen coordinates to a simulation position.
func (c *Camera) ScreenToWorld(sx, sy float64) r2.Vec {
	return r2.Vec{
		X: (sx - c.OffsetX) / c.Scale,
		Y: (sy - c.OffsetY) / c.Scale,
	}
}

// LengthToScreen converts a simulation length to pixels.
func (c *Camera) LengthToScreen(m float64) float64 {
	return m * c.Scale
}

// IsVisible returns true if a circle at p with the given pixel radius
// could be visible on screen (conservative check for culling).
func (c *Camera) IsVisible(p r2.Vec, radiusPx float64) bool {
	sx, sy := c.WorldToScreen(p)
	return sx >= -radiusPx && sx <= c.ViewportW+radiusPx &&
		sy >= -radiusPx && sy <= c.ViewportH+radiusPx
}

// Resize updates viewport dimensions, keeping the world point at the
// viewport center in place.
func (c *Camera) Resize(viewportW, viewportH float64) {
	if viewportW == c.ViewportW && viewportH == c.ViewportH {
		return
	}
	c.OffsetX += (viewportW - c.ViewportW) / 2
	c.OffsetY += (viewportH - c.ViewportH) / 2
	c.ViewportW = viewportW
	c.ViewportH = viewportH
}

// Pan moves the drawn scene by the given delta in screen pixels.
func (c *Camera) Pan(dx, dy float64) {
	c.OffsetX += dx
	c.OffsetY += dy
}

// ZoomAt multiplies the scale by factor, keeping the world point under the
// screen position (sx, sy) fixed.
func (c *Camera) ZoomAt(factor, sx, sy float64) {
	if factor <= 0 || math.IsNaN(factor) || math.IsInf(factor, 0) {
		return
	}
	anchor := c.ScreenToWorld(sx, sy)
	c.Scale = clamp(c.Scale*factor, c.MinScale, c.MaxScale)
	c.OffsetX = sx - anchor.X*c.Scale
	c.OffsetY = sy - anchor.Y*c.Scale
}

// ZoomIn magnifies by ZoomFactor about the viewport center.
func (c *Camera) ZoomIn() {
	c.ZoomAt(c.ZoomFactor, c.ViewportW/2, c.ViewportH/2)
}

// ZoomOut shrinks by ZoomFactor about the viewport center.
func (c *Camera) ZoomOut() {
	c.ZoomAt(1/c.ZoomFactor, c.ViewportW/2, c.ViewportH/2)
}

// Reset returns the camera to zero offset and the initial scale.
func (c *Camera) Reset() {
	c.OffsetX = 0
	c.OffsetY = 0
	c.Scale = c.InitialScale
}

// VisibleWorldBounds returns the simulation-space rectangle on screen.
func (c *Camera) VisibleWorldBounds() r2.Box {
	return r2.Box{
		Min: c.ScreenToWorld(0, 0),
		Max: c.ScreenToWorld(c.ViewportW, c.ViewportH),
	}
}

// clamp restricts a value to a range. Zero bounds are treated as unset.
func clamp(x, min, max float64) float64 {
	if min > 0 && x < min {
		return min
	}
	if max > 0 && x > max {
		return max
	}
	return x
}
