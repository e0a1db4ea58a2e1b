//go:build ebiten

package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"sphere-ca/internal/core"
	"sphere-ca/internal/render"
	"sphere-ca/internal/sphere"
)

const (
	mapWidth  = 256
	mapHeight = 128
	mapMargin = 8
)

// Overlay draws an equirectangular map of the whole sphere in the lower
// left corner. It is toggled with M.
type Overlay struct {
	sim     core.SphereSim
	palette []color.RGBA
	show    bool

	topo    *sphere.Topology
	painter *render.MapPainter
}

// NewOverlay constructs a hidden overlay for sim.
func NewOverlay(sim core.SphereSim, palette []color.RGBA) *Overlay {
	return &Overlay{sim: sim, palette: palette}
}

// Visible reports whether the map is shown.
func (o *Overlay) Visible() bool { return o.show }

// Update handles the toggle key.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		o.show = !o.show
	}
}

// Draw renders the map onto the provided screen when visible.
func (o *Overlay) Draw(screen *ebiten.Image) {
	if !o.show {
		return
	}
	// The projection is rebuilt only when the resolution changes.
	if topo := o.sim.Topology(); topo != o.topo || o.painter == nil {
		o.topo = topo
		o.painter = render.NewMapPainter(render.NewMapProjection(topo, mapWidth, mapHeight))
	}
	y := screen.Bounds().Dy() - mapHeight - mapMargin
	vector.StrokeRect(screen, mapMargin-1, float32(y-1), mapWidth+2, mapHeight+2, 1, color.RGBA{R: 90, G: 90, B: 100, A: 255}, false)
	o.painter.Blit(screen, o.sim.Cells(), o.palette, mapMargin, float64(y), 1)
}
