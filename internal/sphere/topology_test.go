package sphere

import (
	"math"
	"math/rand/v2"
	"slices"
	"testing"

	qt "github.com/frankban/quicktest"
)

func TestBuildCellCount(t *testing.T) {
	c := qt.New(t)
	for nside := 1; nside <= 8; nside++ {
		topo, err := Build(nside)
		c.Assert(err, qt.IsNil)
		c.Assert(topo.Len(), qt.Equals, 12*nside*nside)
		c.Assert(topo.Resolution(), qt.Equals, nside)
	}
}

func TestBuildRejectsNonPositiveResolution(t *testing.T) {
	c := qt.New(t)
	for _, nside := range []int{0, -1, -32} {
		topo, err := Build(nside)
		c.Assert(err, qt.ErrorMatches, `sphere: resolution must be positive, got -?\d+`)
		c.Assert(topo, qt.IsNil)
	}
	c.Assert(func() { MustBuild(0) }, qt.PanicMatches, `sphere: resolution must be positive, got 0`)
}

func TestPositionsAreDistinctUnitVectors(t *testing.T) {
	c := qt.New(t)
	for _, nside := range []int{1, 2, 3, 4} {
		topo := MustBuild(nside)
		pos := topo.Positions()
		for i, p := range pos {
			c.Assert(math.Abs(p.Len()-1) < 1e-9, qt.IsTrue, qt.Commentf("nside %d cell %d has length %v", nside, i, p.Len()))
			for j := i + 1; j < len(pos); j++ {
				if p.Angle(pos[j]) < 1e-6 {
					c.Fatalf("nside %d: cells %d and %d share a position", nside, i, j)
				}
			}
		}
	}
}

func TestPositionsBalancedAcrossEquator(t *testing.T) {
	c := qt.New(t)
	topo := MustBuild(6)
	sum := 0.0
	for _, p := range topo.Positions() {
		sum += p.Z
	}
	c.Assert(math.Abs(sum) < 1e-9, qt.IsTrue, qt.Commentf("sum of z = %v", sum))
}

func TestNeighborBounds(t *testing.T) {
	c := qt.New(t)
	for nside := 1; nside <= 8; nside++ {
		topo := MustBuild(nside)
		n := topo.Len()
		for i := 0; i < n; i++ {
			d := topo.Degree(i)
			if d < 1 || d > MaxNeighbors {
				c.Fatalf("nside %d cell %d has degree %d", nside, i, d)
			}
			seen := map[int32]bool{}
			for _, nb := range topo.Neighbors(i) {
				if nb == NoNeighbor {
					continue
				}
				if nb < 0 || int(nb) >= n {
					c.Fatalf("nside %d cell %d lists out-of-range neighbour %d", nside, i, nb)
				}
				if int(nb) == i {
					c.Fatalf("nside %d cell %d lists itself", nside, i)
				}
				if seen[nb] {
					c.Fatalf("nside %d cell %d lists neighbour %d twice", nside, i, nb)
				}
				seen[nb] = true
			}
		}
	}
}

func TestFaceCornersHaveSevenNeighbors(t *testing.T) {
	c := qt.New(t)
	for nside := 2; nside <= 6; nside++ {
		topo := MustBuild(nside)
		counts := map[int]int{}
		for i := 0; i < topo.Len(); i++ {
			counts[topo.Degree(i)]++
		}
		c.Assert(counts, qt.DeepEquals, map[int]int{7: 24, 8: topo.Len() - 24}, qt.Commentf("nside %d", nside))
	}

	topo := MustBuild(1)
	for i := 0; i < topo.Len(); i++ {
		c.Assert(topo.Degree(i), qt.Equals, 6)
	}
}

func TestNeighborsAreGeometricallyAdjacent(t *testing.T) {
	c := qt.New(t)
	for nside := 1; nside <= 8; nside++ {
		topo := MustBuild(nside)
		cellSize := math.Sqrt(4 * math.Pi / float64(topo.Len()))
		for i := 0; i < topo.Len(); i++ {
			for _, nb := range topo.Neighbors(i) {
				if nb == NoNeighbor {
					continue
				}
				if a := topo.Position(i).Angle(topo.Position(int(nb))); a > 2.5*cellSize {
					c.Fatalf("nside %d: neighbour %d of cell %d is %.3f rad away (cell size %.3f)", nside, nb, i, a, cellSize)
				}
			}
		}
	}
}

func TestBuildDeterministic(t *testing.T) {
	c := qt.New(t)
	a := MustBuild(5)
	b := MustBuild(5)
	c.Assert(slices.Equal(a.Positions(), b.Positions()), qt.IsTrue)
	for i := 0; i < a.Len(); i++ {
		c.Assert(a.Neighbors(i), qt.DeepEquals, b.Neighbors(i))
	}
}

func TestLocateRoundTripsCellCentres(t *testing.T) {
	c := qt.New(t)
	for nside := 1; nside <= 8; nside++ {
		topo := MustBuild(nside)
		for i, p := range topo.Positions() {
			if got := topo.Locate(p); got != i {
				c.Fatalf("nside %d: Locate(centre of %d) = %d", nside, i, got)
			}
		}
	}
}

func TestLocateFindsNearbyCell(t *testing.T) {
	c := qt.New(t)
	rng := rand.New(rand.NewPCG(7, 0))
	for _, nside := range []int{1, 3, 8} {
		topo := MustBuild(nside)
		cellSize := math.Sqrt(4 * math.Pi / float64(topo.Len()))
		for k := 0; k < 2000; k++ {
			v := Vec3{rng.NormFloat64(), rng.NormFloat64(), rng.NormFloat64()}.Normalize()
			idx := topo.Locate(v)
			c.Assert(idx >= 0 && idx < topo.Len(), qt.IsTrue)
			if a := v.Angle(topo.Position(idx)); a > 1.5*cellSize {
				c.Fatalf("nside %d: Locate(%v) = %d, %.3f rad from its centre", nside, v, idx, a)
			}
		}
	}
}

func TestNewValidatesNeighborLists(t *testing.T) {
	c := qt.New(t)
	pos := []Vec3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}

	_, err := New(pos, [][]int{{1}, {2}})
	c.Assert(err, qt.ErrorMatches, `sphere: 3 positions but 2 neighbour lists`)

	_, err = New(pos, [][]int{{1}, {}, {0}})
	c.Assert(err, qt.ErrorMatches, `sphere: cell 1 has 0 neighbours, want 1..8`)

	_, err = New(pos, [][]int{{1}, {3}, {0}})
	c.Assert(err, qt.ErrorMatches, `sphere: cell 1 lists neighbour 3 outside \[0,3\)`)

	_, err = New(nil, nil)
	c.Assert(err, qt.ErrorMatches, `sphere: topology has no cells`)

	// One-way adjacency is allowed.
	topo, err := New(pos, [][]int{{1}, {2, NoNeighbor}, {0, 1}})
	c.Assert(err, qt.IsNil)
	c.Assert(topo.Len(), qt.Equals, 3)
	c.Assert(topo.Resolution(), qt.Equals, 0)
	c.Assert(topo.Degree(1), qt.Equals, 1)
	c.Assert(topo.Neighbors(2)[:3], qt.DeepEquals, []int32{0, 1, NoNeighbor})
	c.Assert(topo.Locate(Vec3{0, 0.2, 1}), qt.Equals, 2)
}
