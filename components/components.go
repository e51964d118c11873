// Package components defines ECS components for the simulation.
package components

import (
	"image/color"

	"gonum.org/v1/gonum/spatial/r2"
)

// Position is a body's location in simulation space (meters).
type Position struct {
	r2.Vec
}

// Velocity is a body's velocity (m/s).
type Velocity struct {
	r2.Vec
}

// Body holds the physical properties that do not change while it moves.
type Body struct {
	Mass   float64 // kg
	Radius float64 // m
}

// Appearance holds the display colour.
type Appearance struct {
	Color color.RGBA
}

// Trail is the trajectory a body has traced so far, oldest first.
type Trail struct {
	Points []r2.Vec
}

// Append records p, dropping the oldest points beyond maxPoints.
// maxPoints == 0 keeps every point.
func (t *Trail) Append(p r2.Vec, maxPoints int) {
	t.Points = append(t.Points, p)
	if maxPoints > 0 && len(t.Points) > maxPoints {
		n := copy(t.Points, t.Points[len(t.Points)-maxPoints:])
		t.Points = t.Points[:n]
	}
}
