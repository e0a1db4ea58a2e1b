package render

import (
	"math"

	"sphere-ca/internal/core"
	"sphere-ca/internal/sphere"
)

// MapProjection is a precomputed equirectangular lookup from a W×H
// latitude/longitude raster to cell indices. Row 0 is the north pole and
// column 0 is longitude -π.
type MapProjection struct {
	W, H  int
	index []int32
}

// NewMapProjection samples the centre of every raster pixel.
func NewMapProjection(topo *sphere.Topology, w, h int) *MapProjection {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	m := &MapProjection{W: w, H: h, index: make([]int32, w*h)}
	for y := 0; y < h; y++ {
		lat := math.Pi/2 - (float64(y)+0.5)/float64(h)*math.Pi
		for x := 0; x < w; x++ {
			lon := (float64(x)+0.5)/float64(w)*2*math.Pi - math.Pi
			m.index[y*w+x] = int32(topo.Locate(sphere.FromLatLon(lat, lon)))
		}
	}
	return m
}

// Cell returns the cell index shown at raster position (x, y).
func (m *MapProjection) Cell(x, y int) int { return int(m.index[y*m.W+x]) }

// Rasterize copies per-cell values into grid, which must be W×H.
func (m *MapProjection) Rasterize(cells []uint8, grid *core.ByteGrid) {
	out := grid.Cells()
	for i, idx := range m.index {
		out[i] = 0
		if int(idx) < len(cells) {
			out[i] = cells[idx]
		}
	}
}
