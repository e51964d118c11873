// Package physics implements Newtonian point-mass gravity for the simulation:
// pairwise force accumulation, semi-implicit Euler integration and the
// collision predicate. Everything here is a pure function over a slice of
// bodies so it can be driven by the ECS systems, the headless runner and tests.
package physics

import "gonum.org/v1/gonum/spatial/r2"

// Default physical constants (SI units).
const (
	G  = 6.67408e-11 // N m^2 / kg^2
	AU = 1.49597e11  // m
	// Day is the default simulated time advanced by one step.
	Day = 24 * 3600.0
)

// Body is a point mass with a radius. Pos is in meters, Vel in m/s.
type Body struct {
	Mass   float64
	Radius float64
	Pos    r2.Vec
	Vel    r2.Vec
}

// Params holds the constants a step needs.
type Params struct {
	G  float64 // gravitational constant
	DT float64 // simulated seconds per step, independent of frame rate
}

// DefaultParams returns G and a one-day step.
func DefaultParams() Params {
	return Params{G: G, DT: Day}
}
