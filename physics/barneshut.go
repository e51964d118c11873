package physics

import (
	"math"

	"gonum.org/v1/gonum/spatial/barneshut"
	"gonum.org/v1/gonum/spatial/r2"
)

// maxDepth bounds quadtree subdivision. Bodies that still share a cell at
// this depth are kept together in one leaf and summed exactly.
const maxDepth = 48

// BarnesHutSolver approximates the forces with a quadtree. Theta is the
// opening angle; Theta <= 0 opens every cell, giving the exact sum.
type BarnesHutSolver struct {
	Theta float64

	nodes []quad
}

// quad is a quadtree cell. Leaves hold body indices; interior cells hold the
// indices of their children in the node arena (0 means absent, root is 0).
type quad struct {
	bounds r2.Box
	center r2.Vec
	mass   float64
	kids   [4]int32
	bodies []int32
	leaf   bool
}

// Forces computes approximate forces for all bodies.
func (s *BarnesHutSolver) Forces(dst []r2.Vec, bodies []Body, g float64) []r2.Vec {
	dst = resize(dst, len(bodies))
	if len(bodies) == 0 {
		return dst
	}
	if s.Theta <= 0 {
		return DirectSolver{}.Forces(dst, bodies, g)
	}

	s.build(bodies)
	for i := range bodies {
		dst[i] = r2.Scale(g, s.forceOn(0, int32(i), bodies))
	}
	return dst
}

func (s *BarnesHutSolver) build(bodies []Body) {
	box := r2.Box{Min: bodies[0].Pos, Max: bodies[0].Pos}
	for _, b := range bodies[1:] {
		box.Min.X = math.Min(box.Min.X, b.Pos.X)
		box.Min.Y = math.Min(box.Min.Y, b.Pos.Y)
		box.Max.X = math.Max(box.Max.X, b.Pos.X)
		box.Max.Y = math.Max(box.Max.Y, b.Pos.Y)
	}
	// Square the root so cells stay square.
	side := math.Max(box.Max.X-box.Min.X, box.Max.Y-box.Min.Y)
	box.Max = r2.Vec{X: box.Min.X + side, Y: box.Min.Y + side}

	for i := range s.nodes {
		s.nodes[i].bodies = s.nodes[i].bodies[:0]
	}
	s.nodes = s.nodes[:0]
	s.nodes = append(s.nodes, quad{bounds: box, leaf: true})
	for i := range bodies {
		s.insert(0, int32(i), bodies, 0)
	}
	s.summarize(0, bodies)
}

func (s *BarnesHutSolver) newNode(bounds r2.Box) int32 {
	if len(s.nodes) < cap(s.nodes) {
		s.nodes = s.nodes[:len(s.nodes)+1]
		n := &s.nodes[len(s.nodes)-1]
		*n = quad{bounds: bounds, leaf: true, bodies: n.bodies[:0]}
	} else {
		s.nodes = append(s.nodes, quad{bounds: bounds, leaf: true})
	}
	return int32(len(s.nodes) - 1)
}

func (s *BarnesHutSolver) insert(n, body int32, bodies []Body, depth int) {
	if s.nodes[n].leaf {
		if len(s.nodes[n].bodies) == 0 || depth >= maxDepth {
			s.nodes[n].bodies = append(s.nodes[n].bodies, body)
			return
		}
		// Split: push the resident bodies down one level.
		resident := append([]int32(nil), s.nodes[n].bodies...)
		s.nodes[n].bodies = s.nodes[n].bodies[:0]
		s.nodes[n].leaf = false
		for _, r := range resident {
			s.pushDown(n, r, bodies, depth)
		}
	}
	s.pushDown(n, body, bodies, depth)
}

func (s *BarnesHutSolver) pushDown(n, body int32, bodies []Body, depth int) {
	dir := quadrant(s.nodes[n].bounds, bodies[body].Pos)
	if s.nodes[n].kids[dir] == 0 {
		child := s.newNode(split(s.nodes[n].bounds, dir))
		s.nodes[n].kids[dir] = child
	}
	s.insert(s.nodes[n].kids[dir], body, bodies, depth+1)
}

func (s *BarnesHutSolver) summarize(n int32, bodies []Body) (r2.Vec, float64) {
	var weighted r2.Vec
	var mass float64
	if s.nodes[n].leaf {
		for _, i := range s.nodes[n].bodies {
			weighted = r2.Add(weighted, r2.Scale(bodies[i].Mass, bodies[i].Pos))
			mass += bodies[i].Mass
		}
	} else {
		for _, k := range s.nodes[n].kids {
			if k == 0 {
				continue
			}
			c, m := s.summarize(k, bodies)
			weighted = r2.Add(weighted, r2.Scale(m, c))
			mass += m
		}
	}
	center := r2.Scale(0.5, r2.Add(s.nodes[n].bounds.Min, s.nodes[n].bounds.Max))
	if mass > 0 {
		center = r2.Scale(1/mass, weighted)
	}
	s.nodes[n].center = center
	s.nodes[n].mass = mass
	return center, mass
}

func (s *BarnesHutSolver) forceOn(n, body int32, bodies []Body) r2.Vec {
	q := &s.nodes[n]
	b := bodies[body]
	if q.leaf {
		var f r2.Vec
		for _, i := range q.bodies {
			if i == body {
				continue
			}
			f = r2.Add(f, barneshut.Gravity2(nil, nil, b.Mass, bodies[i].Mass, r2.Sub(bodies[i].Pos, b.Pos)))
		}
		return f
	}

	size := q.bounds.Max.X - q.bounds.Min.X
	d := r2.Norm(r2.Sub(q.center, b.Pos))
	if d > 0 && size/d < s.Theta && !contains(q.bounds, b.Pos) {
		return barneshut.Gravity2(nil, nil, b.Mass, q.mass, r2.Sub(q.center, b.Pos))
	}

	var f r2.Vec
	for _, k := range q.kids {
		if k == 0 {
			continue
		}
		f = r2.Add(f, s.forceOn(k, body, bodies))
	}
	return f
}

func contains(b r2.Box, p r2.Vec) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X && p.Y >= b.Min.Y && p.Y <= b.Max.Y
}

func quadrant(b r2.Box, p r2.Vec) int {
	mid := r2.Scale(0.5, r2.Add(b.Min, b.Max))
	i := 0
	if p.X >= mid.X {
		i |= 1
	}
	if p.Y >= mid.Y {
		i |= 2
	}
	return i
}

func split(b r2.Box, dir int) r2.Box {
	mid := r2.Scale(0.5, r2.Add(b.Min, b.Max))
	out := b
	if dir&1 != 0 {
		out.Min.X = mid.X
	} else {
		out.Max.X = mid.X
	}
	if dir&2 != 0 {
		out.Min.Y = mid.Y
	} else {
		out.Max.Y = mid.Y
	}
	return out
}
