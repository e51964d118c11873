package game

import (
	"errors"
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Validation errors for user-supplied bodies.
var (
	ErrInvalidMass   = errors.New("mass must be positive")
	ErrInvalidRadius = errors.New("radius must be positive")
	ErrInvalidColor  = errors.New("color components must be in [0, 255]")
	ErrNotFinite     = errors.New("value must be a finite number")
)

// PlacementSpec describes a body to add. Pos is in meters, Speed in m/s and
// AngleDeg is the direction of travel in degrees from +X.
type PlacementSpec struct {
	Pos      r2.Vec
	Mass     float64
	Radius   float64
	Speed    float64
	AngleDeg float64
	Color    [3]int
}

// Validate checks the spec, returning a wrapped sentinel error. A negative
// speed is flipped to positive rather than rejected.
func (s *PlacementSpec) Validate() error {
	if !(s.Mass > 0) || math.IsInf(s.Mass, 0) {
		return fmt.Errorf("mass %g: %w", s.Mass, ErrInvalidMass)
	}
	if !(s.Radius > 0) || math.IsInf(s.Radius, 0) {
		return fmt.Errorf("radius %g: %w", s.Radius, ErrInvalidRadius)
	}
	for i, c := range s.Color {
		if c < 0 || c > 255 {
			return fmt.Errorf("component %d = %d: %w", i, c, ErrInvalidColor)
		}
	}
	if !finite(s.Pos.X) || !finite(s.Pos.Y) {
		return fmt.Errorf("position (%g, %g): %w", s.Pos.X, s.Pos.Y, ErrNotFinite)
	}
	if !finite(s.Speed) {
		return fmt.Errorf("speed %g: %w", s.Speed, ErrNotFinite)
	}
	if !finite(s.AngleDeg) {
		return fmt.Errorf("angle %g: %w", s.AngleDeg, ErrNotFinite)
	}
	if s.Speed < 0 {
		s.Speed = -s.Speed
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Velocity returns Speed along AngleDeg.
func (s PlacementSpec) Velocity() r2.Vec {
	theta := s.AngleDeg * math.Pi / 180
	return r2.Vec{X: s.Speed * math.Cos(theta), Y: s.Speed * math.Sin(theta)}
}

// RGBA returns the opaque display colour.
func (s PlacementSpec) RGBA() color.RGBA {
	return color.RGBA{R: uint8(s.Color[0]), G: uint8(s.Color[1]), B: uint8(s.Color[2]), A: 255}
}
