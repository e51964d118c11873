package physics

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// KineticEnergy returns the sum of m*v^2/2.
func KineticEnergy(bodies []Body) float64 {
	var e float64
	for _, b := range bodies {
		e += 0.5 * b.Mass * r2.Norm2(b.Vel)
	}
	return e
}

// PotentialEnergy returns the gravitational potential energy of the system,
// -G*m1*m2/r summed over distinct pairs. Coincident pairs are skipped.
func PotentialEnergy(bodies []Body, g float64) float64 {
	var e float64
	for i := 0; i < len(bodies); i++ {
		for j := i + 1; j < len(bodies); j++ {
			r := r2.Norm(r2.Sub(bodies[j].Pos, bodies[i].Pos))
			if r == 0 {
				continue
			}
			e -= g * bodies[i].Mass * bodies[j].Mass / r
		}
	}
	return e
}

// TotalMomentum returns the sum of m*v.
func TotalMomentum(bodies []Body) r2.Vec {
	var p r2.Vec
	for _, b := range bodies {
		p = r2.Add(p, r2.Scale(b.Mass, b.Vel))
	}
	return p
}

// CenterOfMass returns the mass-weighted mean position and the total mass.
// With no mass the center is the origin.
func CenterOfMass(bodies []Body) (r2.Vec, float64) {
	var c r2.Vec
	var m float64
	for _, b := range bodies {
		c = r2.Add(c, r2.Scale(b.Mass, b.Pos))
		m += b.Mass
	}
	if m == 0 {
		return r2.Vec{}, 0
	}
	return r2.Scale(1/m, c), m
}

// CircularOrbitVelocity returns the velocity that puts orbiter on a circular
// orbit around central, perpendicular to the line between them.
func CircularOrbitVelocity(central, orbiter Body, g float64) r2.Vec {
	d := r2.Sub(orbiter.Pos, central.Pos)
	r := r2.Norm(d)
	if r == 0 || central.Mass <= 0 {
		return r2.Vec{}
	}
	v := math.Sqrt(g * central.Mass / r)
	return r2.Add(central.Vel, r2.Vec{X: -d.Y / r * v, Y: d.X / r * v})
}
