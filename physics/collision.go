package physics

import "gonum.org/v1/gonum/spatial/r2"

// Collided reports whether two bodies touch or overlap: the distance between
// centers is at most the sum of their radii.
func Collided(a, b Body) bool {
	r := a.Radius + b.Radius
	return r2.Norm2(r2.Sub(a.Pos, b.Pos)) <= r*r
}

// FirstCollision returns the first colliding pair in index order.
func FirstCollision(bodies []Body) (i, j int, ok bool) {
	for i = 0; i < len(bodies); i++ {
		for j = i + 1; j < len(bodies); j++ {
			if Collided(bodies[i], bodies[j]) {
				return i, j, true
			}
		}
	}
	return -1, -1, false
}

// Distance returns the distance between the centers of a and b.
func Distance(a, b Body) float64 {
	return r2.Norm(r2.Sub(a.Pos, b.Pos))
}
