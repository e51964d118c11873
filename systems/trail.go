package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/orbits/components"
)

// TrailSystem records each body's position after a step.
type TrailSystem struct {
	filter    *ecs.Filter2[components.Position, components.Trail]
	maxPoints int
}

// NewTrailSystem creates a trail system. maxPoints == 0 keeps full
// trajectories.
func NewTrailSystem(w *ecs.World, maxPoints int) *TrailSystem {
	return &TrailSystem{
		filter:    ecs.NewFilter2[components.Position, components.Trail](w),
		maxPoints: maxPoints,
	}
}

// Update appends the current position to every trail.
func (s *TrailSystem) Update() {
	query := s.filter.Query()
	for query.Next() {
		pos, trail := query.Get()
		trail.Append(pos.Vec, s.maxPoints)
	}
}
