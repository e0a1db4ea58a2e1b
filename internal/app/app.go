//go:build ebiten

package app

import (
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/juju/loggo"

	"sphere-ca/internal/core"
	"sphere-ca/internal/render"
	"sphere-ca/internal/ui"
)

var logger = loggo.GetLogger("sphere-ca.app")

const maxGPS = 60

// Game adapts a sphere simulation to the ebiten.Game interface.
type Game struct {
	sim     core.SphereSim
	cam     *render.Camera
	painter *render.SpherePainter
	hud     *ui.HUD
	overlay *ui.Overlay
	gens    *core.FixedStep

	width, height int

	paused   bool
	tickOnce bool
	seed     int64
	gps      float64

	dragging     bool
	lastX, lastY int
}

// New constructs a Game for the provided simulation.
func New(sim core.SphereSim, cfg *Config) *Game {
	palette := paletteFor(sim)
	cam := render.NewCamera()
	cam.RandomSpin(core.NewRNG(time.Now().UnixNano()).Source())
	return &Game{
		sim:     sim,
		cam:     cam,
		painter: render.NewSpherePainter(cam, palette),
		hud:     ui.NewHUD(sim, cfg.HUD),
		overlay: ui.NewOverlay(sim, palette),
		gens:    core.NewFixedStep(cfg.GPS),
		width:   cfg.Width,
		height:  cfg.Height,
		seed:    cfg.Seed,
		gps:     cfg.GPS,
	}
}

func paletteFor(sim core.Sim) []color.RGBA {
	if ms, ok := sim.(interface{ States() int }); ok && ms.States() > 2 {
		return render.BrainPalette
	}
	return nil
}

// Reset reinitializes the simulation state with the provided seed.
func (g *Game) Reset(seed int64) {
	g.seed = seed
	g.sim.Reset(seed)
	g.gens.Reset()
	g.tickOnce = false
	logger.Infof("reset %s with seed %d", g.sim.Name(), seed)
}

func (g *Game) defaultRules() {
	if r, ok := g.sim.(core.RuleResetter); ok {
		r.DefaultRules()
	}
}

// setGPS changes the generation rate, keeping it within [1, maxGPS].
func (g *Game) setGPS(gps float64) {
	g.gps = max(1, min(maxGPS, gps))
	g.gens.SetRate(g.gps)
	logger.Debugf("generation interval %v", g.gens.Interval())
}

func (g *Game) sphereWidth() int { return g.width - g.hud.Width() }

// Update handles per-frame logic and advances the simulation.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.tickOnce = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.Reset(g.seed)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.Reset(time.Now().UnixNano())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyD) {
		g.defaultRules()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEqual) {
		g.setGPS(g.gps + 1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyMinus) {
		g.setGPS(g.gps - 1)
	}

	g.overlay.Update()
	switch g.hud.Update(g.sphereWidth()) {
	case ui.ActionReset:
		g.Reset(g.seed)
	case ui.ActionDefaultRules:
		g.defaultRules()
	}

	g.handleCamera()

	if g.tickOnce || (!g.paused && g.gens.ShouldStep()) {
		g.sim.Step()
		g.tickOnce = false
	}
	return nil
}

func (g *Game) handleCamera() {
	if _, wy := ebiten.Wheel(); wy != 0 {
		g.cam.Zoom(wy)
	}

	mx, my := ebiten.CursorPosition()
	switch {
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft):
		g.dragging = mx < g.sphereWidth()
	case inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft):
		g.dragging = false
	case g.dragging:
		g.cam.Drag(float64(mx-g.lastX), float64(my-g.lastY))
	}
	g.lastX, g.lastY = mx, my

	g.cam.Spin(time.Second / time.Duration(ebiten.TPS()))
}

// Draw renders the current simulation state.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(render.BackgroundColor)
	g.painter.Draw(screen, g.sim.Topology(), g.sim.Cells(), g.sphereWidth(), g.height)
	g.overlay.Draw(screen)
	g.hud.Draw(screen, g.sphereWidth(), g.height)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.width, g.height
}
