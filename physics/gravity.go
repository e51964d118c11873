package physics

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Solver computes the net gravitational force on every body.
// Implementations write into dst (grown as needed) and return it.
type Solver interface {
	Forces(dst []r2.Vec, bodies []Body, g float64) []r2.Vec
}

// PairForce returns the force exerted on a by b: G*m1*m2/r^2 along the unit
// vector from a to b. Coincident bodies contribute nothing.
func PairForce(a, b Body, g float64) r2.Vec {
	d := r2.Sub(b.Pos, a.Pos)
	dist2 := r2.Norm2(d)
	if dist2 == 0 {
		return r2.Vec{}
	}
	f := g * a.Mass * b.Mass / dist2
	return r2.Scale(f/math.Sqrt(dist2), d)
}

// DirectSolver sums every pair exactly. O(n^2) per step.
type DirectSolver struct{}

// Forces accumulates the pairwise forces for all bodies from the same
// position snapshot.
func (DirectSolver) Forces(dst []r2.Vec, bodies []Body, g float64) []r2.Vec {
	dst = resize(dst, len(bodies))
	for i := range bodies {
		var f r2.Vec
		for j := range bodies {
			if i == j {
				continue
			}
			f = r2.Add(f, PairForce(bodies[i], bodies[j], g))
		}
		dst[i] = f
	}
	return dst
}

// resize returns dst with length n, reusing its backing array when possible.
func resize(dst []r2.Vec, n int) []r2.Vec {
	if cap(dst) < n {
		return make([]r2.Vec, n)
	}
	dst = dst[:n]
	for i := range dst {
		dst[i] = r2.Vec{}
	}
	return dst
}
