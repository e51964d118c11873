package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/orbits/components"
	"github.com/pthm-cable/orbits/physics"
)

// CollisionSystem detects overlapping bodies. It only reports; there is no
// collision response.
type CollisionSystem struct {
	filter *ecs.Filter3[components.Position, components.Velocity, components.Body]

	grid     *SpatialHash
	bodies   []physics.Body
	entities []ecs.Entity
}

// NewCollisionSystem creates a collision system.
func NewCollisionSystem(w *ecs.World) *CollisionSystem {
	return &CollisionSystem{
		filter: ecs.NewFilter3[components.Position, components.Velocity, components.Body](w),
		grid:   NewSpatialHash(),
	}
}

// Collision identifies the first overlapping pair found in a check.
type Collision struct {
	A, B ecs.Entity
	// Distance between centers and the sum of radii, in meters.
	Distance float64
	Reach    float64
}

// Check returns the first colliding pair in query order.
func (s *CollisionSystem) Check() (Collision, bool) {
	s.bodies = s.bodies[:0]
	s.entities = s.entities[:0]

	query := s.filter.Query()
	for query.Next() {
		pos, vel, body := query.Get()
		s.bodies = append(s.bodies, physics.Body{
			Mass:   body.Mass,
			Radius: body.Radius,
			Pos:    pos.Vec,
			Vel:    vel.Vec,
		})
		s.entities = append(s.entities, query.Entity())
	}

	i, j, ok := s.grid.FirstCollision(s.bodies)
	if !ok {
		return Collision{}, false
	}
	a, b := s.bodies[i], s.bodies[j]
	return Collision{
		A:        s.entities[i],
		B:        s.entities[j],
		Distance: physics.Distance(a, b),
		Reach:    a.Radius + b.Radius,
	}, true
}
