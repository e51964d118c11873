// Package systems contains ECS systems for the simulation.
package systems

import (
	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/orbits/components"
	"github.com/pthm-cable/orbits/physics"
)

// GravitySystem advances every body by one fixed step.
type GravitySystem struct {
	filter *ecs.Filter3[components.Position, components.Velocity, components.Body]
	solver physics.Solver
	params physics.Params

	bodies []physics.Body
	forces []r2.Vec
}

// NewGravitySystem creates a gravity system using the given solver.
func NewGravitySystem(w *ecs.World, solver physics.Solver, params physics.Params) *GravitySystem {
	return &GravitySystem{
		filter: ecs.NewFilter3[components.Position, components.Velocity, components.Body](w),
		solver: solver,
		params: params,
	}
}

// Params returns the physical constants in use.
func (s *GravitySystem) Params() physics.Params {
	return s.params
}

// Update computes all forces from the current positions, then integrates.
// The world must not change structurally between the two queries, so the
// second pass sees entities in the same order as the snapshot.
func (s *GravitySystem) Update() {
	s.bodies = snapshot(s.filter, s.bodies[:0])
	if len(s.bodies) == 0 {
		return
	}

	s.forces = physics.Step(s.bodies, s.solver, s.params, s.forces)

	i := 0
	query := s.filter.Query()
	for query.Next() {
		pos, vel, _ := query.Get()
		pos.Vec = s.bodies[i].Pos
		vel.Vec = s.bodies[i].Vel
		i++
	}
}

// Bodies returns the snapshot taken by the last Update, post-step.
func (s *GravitySystem) Bodies() []physics.Body {
	return s.bodies
}

func snapshot(f *ecs.Filter3[components.Position, components.Velocity, components.Body], dst []physics.Body) []physics.Body {
	query := f.Query()
	for query.Next() {
		pos, vel, body := query.Get()
		dst = append(dst, physics.Body{
			Mass:   body.Mass,
			Radius: body.Radius,
			Pos:    pos.Vec,
			Vel:    vel.Vec,
		})
	}
	return dst
}
