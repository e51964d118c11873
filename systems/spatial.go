package systems

import (
	"math"

	"github.com/pthm-cable/orbits/physics"
)

// bruteForceBelow is the body count under which pairs are tested directly.
const bruteForceBelow = 32

// cellKey addresses a cell of the unbounded grid.
type cellKey struct {
	col, row int64
}

// SpatialHash buckets bodies into square cells so contact tests only look
// at neighboring cells. The cell size is the largest diameter, so any
// touching pair lies in the same or an adjacent cell.
type SpatialHash struct {
	cellSize float64
	cells    map[cellKey][]int32
	keys     []cellKey
}

// NewSpatialHash creates an empty spatial hash.
func NewSpatialHash() *SpatialHash {
	return &SpatialHash{cells: make(map[cellKey][]int32)}
}

// Clear removes all bodies from the grid.
func (h *SpatialHash) Clear() {
	clear(h.cells)
	h.keys = h.keys[:0]
}

// Build inserts bodies by index. It returns false if the positions cannot
// be bucketed (no positive radius or coordinates too large for the grid).
func (h *SpatialHash) Build(bodies []physics.Body) bool {
	h.Clear()

	var maxRadius float64
	for _, b := range bodies {
		maxRadius = math.Max(maxRadius, b.Radius)
	}
	h.cellSize = 2 * maxRadius
	if !(h.cellSize > 0) || math.IsInf(h.cellSize, 0) {
		return false
	}

	for i, b := range bodies {
		k, ok := h.key(b)
		if !ok {
			return false
		}
		h.cells[k] = append(h.cells[k], int32(i))
		h.keys = append(h.keys, k)
	}
	return true
}

// key returns the cell of b.
func (h *SpatialHash) key(b physics.Body) (cellKey, bool) {
	col := math.Floor(b.Pos.X / h.cellSize)
	row := math.Floor(b.Pos.Y / h.cellSize)
	const limit = 1 << 62
	if math.Abs(col) >= limit || math.Abs(row) >= limit || math.IsNaN(col) || math.IsNaN(row) {
		return cellKey{}, false
	}
	return cellKey{col: int64(col), row: int64(row)}, true
}

// FirstCollision returns the same pair as physics.FirstCollision: the
// colliding pair with the lowest i, then the lowest j.
func (h *SpatialHash) FirstCollision(bodies []physics.Body) (i, j int, ok bool) {
	if len(bodies) < bruteForceBelow || !h.Build(bodies) {
		return physics.FirstCollision(bodies)
	}

	for i = range bodies {
		k := h.keys[i]
		best := -1
		for dc := int64(-1); dc <= 1; dc++ {
			for dr := int64(-1); dr <= 1; dr++ {
				for _, other := range h.cells[cellKey{col: k.col + dc, row: k.row + dr}] {
					o := int(other)
					if o <= i || (best >= 0 && o >= best) {
						continue
					}
					if physics.Collided(bodies[i], bodies[o]) {
						best = o
					}
				}
			}
		}
		if best >= 0 {
			return i, best, true
		}
	}
	return -1, -1, false
}
