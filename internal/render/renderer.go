//go:build ebiten

package render

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"sphere-ca/internal/core"
	"sphere-ca/internal/sphere"
)

// SpherePainter draws cells as dots over an opaque backing sphere.
type SpherePainter struct {
	cam     *Camera
	palette []color.RGBA
}

// NewSpherePainter returns a painter viewing through cam. A nil palette
// draws binary cells.
func NewSpherePainter(cam *Camera, palette []color.RGBA) *SpherePainter {
	return &SpherePainter{cam: cam, palette: palette}
}

// Draw paints the sphere centred in a w×h region of dst.
func (p *SpherePainter) Draw(dst *ebiten.Image, topo *sphere.Topology, cells []uint8, w, h int) {
	cx, cy := float32(w)/2, float32(h)/2
	vector.DrawFilledCircle(dst, cx, cy, float32(p.cam.DiscRadius(w, h)), BackgroundColor, true)

	r := float32(p.cam.CellRadius(topo.Len(), w, h))
	for i, pos := range topo.Positions() {
		if i >= len(cells) {
			break
		}
		x, y, ok := p.cam.Project(pos, w, h)
		if !ok {
			continue
		}
		vector.DrawFilledCircle(dst, float32(x), float32(y), r, CellColor(cells[i], p.palette), false)
	}
}

// MapPainter uploads an equirectangular raster of the cells into a single
// image.
type MapPainter struct {
	proj *MapProjection
	grid *core.ByteGrid
	img  *ebiten.Image
	buf  []byte
}

// NewMapPainter allocates a painter for the projection's raster size.
func NewMapPainter(proj *MapProjection) *MapPainter {
	return &MapPainter{
		proj: proj,
		grid: core.NewByteGrid(proj.W, proj.H),
		img:  ebiten.NewImage(proj.W, proj.H),
		buf:  make([]byte, 4*proj.W*proj.H),
	}
}

// Blit rasterizes cells and draws the map at (x, y) with the given scale.
func (mp *MapPainter) Blit(dst *ebiten.Image, cells []uint8, palette []color.RGBA, x, y float64, scale int) {
	mp.proj.Rasterize(cells, mp.grid)
	FillCells(mp.buf, mp.grid.Cells(), palette)
	mp.img.WritePixels(mp.buf)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(scale), float64(scale))
	op.GeoM.Translate(x, y)
	dst.DrawImage(mp.img, op)
}

// Size returns the dimensions of the underlying image.
func (mp *MapPainter) Size() (int, int) { return mp.proj.W, mp.proj.H }
