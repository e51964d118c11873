package physics

import "gonum.org/v1/gonum/spatial/r2"

// Integrate advances every body by dt using semi-implicit Euler:
// velocity first from the force, then position from the new velocity.
// Bodies without positive mass are not accelerated.
func Integrate(bodies []Body, forces []r2.Vec, dt float64) {
	for i := range bodies {
		b := &bodies[i]
		if b.Mass > 0 && i < len(forces) {
			acc := r2.Scale(1/b.Mass, forces[i])
			b.Vel = r2.Add(b.Vel, r2.Scale(dt, acc))
		}
		b.Pos = r2.Add(b.Pos, r2.Scale(dt, b.Vel))
	}
}

// Step computes forces from the current positions and integrates one step.
// scratch is reused for the force buffer and returned.
func Step(bodies []Body, solver Solver, p Params, scratch []r2.Vec) []r2.Vec {
	scratch = solver.Forces(scratch, bodies, p.G)
	Integrate(bodies, scratch, p.DT)
	return scratch
}
