// Package view is a terminal front end for a sphere world.
package view

import (
	"fmt"
	"sync"

	"github.com/juju/loggo"
	"github.com/logrusorgru/aurora"

	"sphere-ca/internal/core"
	"sphere-ca/internal/life"
	"sphere-ca/internal/render"
	"sphere-ca/internal/sims/spherelife"
	"sphere-ca/internal/sphere"
)

var logger = loggo.GetLogger("sphere-ca.view")

// Controller serialises every access to a World between the UI goroutine
// and the run ticker.
type Controller struct {
	mu       sync.Mutex
	w        *spherelife.World
	selected int
	pan      int
	au       aurora.Aurora

	topo *sphere.Topology
	proj *render.MapProjection
	grid *core.ByteGrid
}

// NewController wraps w. Colour controls ANSI output in the rendered text.
func NewController(w *spherelife.World, colour bool) *Controller {
	return &Controller{w: w, au: aurora.NewAurora(colour)}
}

// Step advances one generation.
func (c *Controller) Step() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.w.Tick()
}

// Randomize draws a new population.
func (c *Controller) Randomize() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.w.ResetPopulation()
}

// DefaultRules restores the standard thresholds.
func (c *Controller) DefaultRules() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.w.DefaultRules()
}

// Selected returns the threshold adjusted by Adjust.
func (c *Controller) Selected() life.Threshold {
	c.mu.Lock()
	defer c.mu.Unlock()
	return life.Thresholds[c.selected]
}

// Select moves the threshold selection by delta, wrapping around.
func (c *Controller) Select(delta int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := len(life.Thresholds)
	c.selected = ((c.selected+delta)%n + n) % n
}

// Adjust changes the selected threshold by delta within the HUD bounds.
func (c *Controller) Adjust(delta int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := life.Thresholds[c.selected]
	c.w.SetIntParameter(t.Key(), c.w.Rules().Get(t)+delta)
}

// Resolution changes nside by delta, keeping it at least 1.
func (c *Controller) Resolution(delta int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.w.SetIntParameter("nside", c.w.Topology().Resolution()+delta)
}

// Pan scrolls the map by delta columns.
func (c *Controller) Pan(delta int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pan += delta
}

// MapRows renders the world as a w×h text map.
func (c *Controller) MapRows(w, h int) []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if w <= 0 || h <= 0 {
		return nil
	}
	topo := c.w.Topology()
	if c.proj == nil || c.proj.W != w || c.proj.H != h || c.topo != topo {
		c.topo = topo
		c.proj = render.NewMapProjection(topo, w, h)
		c.grid = core.NewByteGrid(w, h)
	}
	c.proj.Rasterize(c.w.Cells(), c.grid)
	return render.TextRows(c.grid, c.pan, c.au.Green("█").String(), "░")
}

// StatusLines describes the population.
func (c *Controller) StatusLines() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	st := c.w.Stats()
	lines := []string{
		c.prop("Resolution", "%d (%d cells)", c.w.Topology().Resolution(), c.w.Len()),
		c.prop("Generation", "%d", c.w.Generation()),
		c.prop("Live Cells", "%.1f%%", 100*c.w.AliveFraction()),
		c.prop("Average", "%.1f%%", 100*st.MovingAverage()),
		c.prop("Speed", "%.1f gen/s", st.Rate()),
	}
	if st.Stagnant() {
		lines = append(lines, " "+c.au.Red("stagnant").String())
	}
	return lines
}

// RuleLines lists the thresholds with the selection marked.
func (c *Controller) RuleLines() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	rules := c.w.Rules()
	lines := make([]string, len(life.Thresholds))
	for i, t := range life.Thresholds {
		marker := "  "
		if i == c.selected {
			marker = c.au.Cyan("> ").String()
		}
		lines[i] = marker + c.prop(t.String(), "%d", rules.Get(t))
	}
	return lines
}

func (c *Controller) prop(name, format string, values ...any) string {
	return fmt.Sprintf(" %s: "+format, append([]any{c.au.Green(name)}, values...)...)
}
