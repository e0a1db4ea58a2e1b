// Package sphere partitions the unit sphere into roughly equal-area cells
// and records which cells touch each other.
package sphere

import (
	"github.com/pkg/errors"
)

const (
	// MaxNeighbors is the number of neighbour slots stored per cell.
	MaxNeighbors = 8
	// NoNeighbor marks an empty neighbour slot.
	NoNeighbor = -1
)

// Topology is an immutable set of cells with their positions and neighbour
// lists. It is safe to share between goroutines.
type Topology struct {
	nside     int
	positions []Vec3
	neighbors [][MaxNeighbors]int32
}

// Build tessellates the sphere into 12*nside*nside cells.
func Build(nside int) (*Topology, error) {
	if nside <= 0 {
		return nil, errors.Errorf("sphere: resolution must be positive, got %d", nside)
	}
	n := 12 * nside * nside
	t := &Topology{
		nside:     nside,
		positions: make([]Vec3, n),
		neighbors: make([][MaxNeighbors]int32, n),
	}
	for i := 0; i < n; i++ {
		t.positions[i] = center(nside, i)
		neighbours(nside, i, &t.neighbors[i])
	}
	return t, nil
}

// MustBuild is like Build but panics on an invalid resolution.
func MustBuild(nside int) *Topology {
	t, err := Build(nside)
	if err != nil {
		panic(err)
	}
	return t
}

// New assembles a topology from explicit positions and neighbour lists.
// Each list must hold between 1 and MaxNeighbors entries, each a valid
// index or NoNeighbor. Lists do not need to be symmetric.
func New(positions []Vec3, neighbors [][]int) (*Topology, error) {
	if len(positions) == 0 {
		return nil, errors.New("sphere: topology has no cells")
	}
	if len(positions) != len(neighbors) {
		return nil, errors.Errorf("sphere: %d positions but %d neighbour lists", len(positions), len(neighbors))
	}
	n := len(positions)
	t := &Topology{
		positions: append([]Vec3(nil), positions...),
		neighbors: make([][MaxNeighbors]int32, n),
	}
	for i, list := range neighbors {
		if len(list) == 0 || len(list) > MaxNeighbors {
			return nil, errors.Errorf("sphere: cell %d has %d neighbours, want 1..%d", i, len(list), MaxNeighbors)
		}
		row := &t.neighbors[i]
		for m := range row {
			row[m] = NoNeighbor
		}
		for m, idx := range list {
			if idx != NoNeighbor && (idx < 0 || idx >= n) {
				return nil, errors.Errorf("sphere: cell %d lists neighbour %d outside [0,%d)", i, idx, n)
			}
			row[m] = int32(idx)
		}
	}
	return t, nil
}

// Len returns the number of cells.
func (t *Topology) Len() int { return len(t.positions) }

// Resolution returns the nside the topology was built with, or 0 for a
// topology assembled with New.
func (t *Topology) Resolution() int { return t.nside }

// Position returns the unit vector through the centre of cell i.
func (t *Topology) Position(i int) Vec3 { return t.positions[i] }

// Positions exposes all cell positions. Callers must not modify the slice.
func (t *Topology) Positions() []Vec3 { return t.positions }

// Neighbors returns the neighbour slots of cell i. Empty slots hold
// NoNeighbor. Callers must not modify the slice.
func (t *Topology) Neighbors(i int) []int32 { return t.neighbors[i][:] }

// Degree returns the number of occupied neighbour slots of cell i.
func (t *Topology) Degree(i int) int {
	d := 0
	for _, nb := range t.neighbors[i] {
		if nb != NoNeighbor {
			d++
		}
	}
	return d
}

// Locate returns the cell whose area contains direction v. For topologies
// assembled with New it falls back to the cell with the nearest centre.
func (t *Topology) Locate(v Vec3) int {
	if t.nside > 0 {
		return locate(t.nside, v)
	}
	v = v.Normalize()
	best, bestDot := 0, -2.0
	for i, p := range t.positions {
		if d := p.Dot(v); d > bestDot {
			best, bestDot = i, d
		}
	}
	return best
}
