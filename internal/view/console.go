package view

import (
	"bytes"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/jroimartin/gocui"
	"github.com/logrusorgru/aurora"
	"github.com/pkg/errors"
)

type keyBinding struct {
	key     any
	name    string
	descr   string
	handler func() error
}

// Console is a gocui screen showing a text map, the status and the rules.
type Console struct {
	ctrl     *Controller
	g        *gocui.Gui
	keys     []keyBinding
	interval time.Duration

	runMu   sync.Mutex
	stop    chan struct{}
	running bool
}

// NewConsole opens the terminal UI. interval is the delay between
// generations while running.
func NewConsole(ctrl *Controller, interval time.Duration) (*Console, error) {
	g, err := gocui.NewGui(gocui.OutputNormal)
	if err != nil {
		return nil, errors.Wrap(err, "view: cannot open terminal")
	}
	c := &Console{ctrl: ctrl, g: g, interval: interval}
	c.keys = []keyBinding{
		{gocui.KeyCtrlC, "^C", "Exit", c.cmdQuit},
		{'n', "N", "Next step", c.refreshAfter(ctrl.Step)},
		{'r', "R", "Run/Stop", c.cmdToggleRun},
		{'w', "W", "Randomize", c.refreshAfter(ctrl.Randomize)},
		{'d', "D", "Default rules", c.refreshAfter(ctrl.DefaultRules)},
		{gocui.KeyArrowUp, "↑", "Select rule", c.refreshAfter(func() { ctrl.Select(-1) })},
		{gocui.KeyArrowDown, "↓", "Select rule", c.refreshAfter(func() { ctrl.Select(1) })},
		{gocui.KeyArrowLeft, "←", "Decrease", c.refreshAfter(func() { ctrl.Adjust(-1) })},
		{gocui.KeyArrowRight, "→", "Increase", c.refreshAfter(func() { ctrl.Adjust(1) })},
		{'[', "[", "Coarser", c.refreshAfter(func() { ctrl.Resolution(-1) })},
		{']', "]", "Finer", c.refreshAfter(func() { ctrl.Resolution(1) })},
		{'h', "H", "Pan west", c.refreshAfter(func() { ctrl.Pan(-4) })},
		{'l', "L", "Pan east", c.refreshAfter(func() { ctrl.Pan(4) })},
	}
	g.SetManagerFunc(c.layout)
	for _, kb := range c.keys {
		h := kb.handler
		if err := g.SetKeybinding("", kb.key, gocui.ModNone, func(*gocui.Gui, *gocui.View) error { return h() }); err != nil {
			g.Close()
			return nil, errors.Wrapf(err, "view: cannot bind %s", kb.name)
		}
	}
	return c, nil
}

// Start runs the UI loop until the user quits.
func (c *Console) Start() error {
	defer c.g.Close()
	defer c.setRunning(false)
	if err := c.g.MainLoop(); err != nil && err != gocui.ErrQuit {
		return errors.Wrap(err, "view: main loop")
	}
	return nil
}

func (c *Console) refreshAfter(f func()) func() error {
	return func() error {
		f()
		c.refresh()
		return nil
	}
}

func (c *Console) cmdQuit() error { return gocui.ErrQuit }

func (c *Console) cmdToggleRun() error {
	c.runMu.Lock()
	running := c.running
	c.runMu.Unlock()
	c.setRunning(!running)
	c.refresh()
	return nil
}

func (c *Console) setRunning(on bool) {
	c.runMu.Lock()
	defer c.runMu.Unlock()
	if on == c.running {
		return
	}
	c.running = on
	if !on {
		close(c.stop)
		logger.Debugf("run stopped")
		return
	}
	c.stop = make(chan struct{})
	go c.run(c.stop)
	logger.Debugf("run started, %v per generation", c.interval)
}

func (c *Console) run(stop <-chan struct{}) {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			c.ctrl.Step()
			c.refresh()
		}
	}
}

func (c *Console) refresh() {
	c.g.Update(func(g *gocui.Gui) error {
		c.render(g)
		return nil
	})
}

func (c *Console) render(g *gocui.Gui) {
	if v, err := g.View("map"); err == nil {
		v.Clear()
		w, h := v.Size()
		fmt.Fprint(v, strings.Join(c.ctrl.MapRows(w, h), "\n"))
	}
	if v, err := g.View("status"); err == nil {
		v.Clear()
		for _, l := range c.ctrl.StatusLines() {
			fmt.Fprintln(v, l)
		}
		c.runMu.Lock()
		running := c.running
		c.runMu.Unlock()
		mode := aurora.Colorize("waiting", aurora.BlueFg)
		if running {
			mode = aurora.Colorize("running", aurora.CyanFg)
		}
		fmt.Fprintf(v, " %s: %s\n", aurora.Green("Mode"), mode)
	}
	if v, err := g.View("rules"); err == nil {
		v.Clear()
		for _, l := range c.ctrl.RuleLines() {
			fmt.Fprintln(v, l)
		}
	}
}

func (c *Console) layout(g *gocui.Gui) error {
	maxX, maxY := g.Size()
	const leftColumnWidth = 36
	if maxY < 16 || maxX < leftColumnWidth+20 {
		return nil
	}
	mid := 2 + (maxY-4)/2

	views := []struct {
		name           string
		title          string
		x0, y0, x1, y1 int
	}{
		{"status", "Status", 0, 0, leftColumnWidth, mid},
		{"rules", "Rules", 0, mid + 1, leftColumnWidth, maxY - 4},
		{"map", "Sphere", leftColumnWidth + 1, 0, maxX - 1, maxY - 4},
	}
	for _, vs := range views {
		v, err := g.SetView(vs.name, vs.x0, vs.y0, vs.x1, vs.y1)
		if err != nil {
			if err != gocui.ErrUnknownView {
				return err
			}
			v.Title = vs.title
			v.Frame = true
		}
	}

	if v, err := g.SetView("help", -1, maxY-4, maxX, maxY-1); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		v.Frame = false
		v.Wrap = true
		var b bytes.Buffer
		b.WriteString("KEYS: ")
		for i, k := range c.keys {
			if i != 0 {
				b.WriteString(", ")
			}
			b.WriteString(aurora.Green(k.name).String())
			b.WriteString(" ")
			b.WriteString(k.descr)
		}
		fmt.Fprintln(v, b.String())
	}
	c.render(g)
	return nil
}
