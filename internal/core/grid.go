package core

// ByteGrid stores a 2D grid of byte-sized values in row-major order.
type ByteGrid struct {
	W, H int
	data []uint8
}

// NewByteGrid allocates a grid with the given dimensions.
func NewByteGrid(w, h int) *ByteGrid {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	return &ByteGrid{W: w, H: h, data: make([]uint8, w*h)}
}

// Cells exposes the backing slice so callers can read/write values directly.
func (g *ByteGrid) Cells() []uint8 { return g.data }

// Index returns the linear slice index for coordinates (x, y).
func (g *ByteGrid) Index(x, y int) int { return y*g.W + x }

// At returns the value at (x, y) after wrapping x horizontally. Rows outside
// the grid read as zero.
func (g *ByteGrid) At(x, y int) uint8 {
	if y < 0 || y >= g.H {
		return 0
	}
	x = g.WrapX(x)
	return g.data[g.Index(x, y)]
}

// WrapX wraps x around the grid width, as longitude wraps around a sphere.
func (g *ByteGrid) WrapX(x int) int {
	return (x%g.W + g.W) % g.W
}
