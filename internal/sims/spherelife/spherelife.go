// Package spherelife owns a Game of Life population on the sphere and
// exposes it to the GUI, console and headless front ends.
package spherelife

import (
	"github.com/juju/loggo"
	"github.com/pkg/errors"

	"sphere-ca/internal/core"
	"sphere-ca/internal/life"
	"sphere-ca/internal/sphere"
)

var logger = loggo.GetLogger("sphere-ca.spherelife")

// World stores the topology, the double-buffered population and the rules.
// It is not safe for concurrent use; front ends serialise access.
type World struct {
	cfg Config

	topo  *sphere.Topology
	cur   life.State
	nxt   life.State
	rules life.RuleSet

	generation int

	rng   *core.RNG
	stats *Stats
}

// New returns a World at the given resolution using defaults.
func New(nside int) (*World, error) {
	cfg := DefaultConfig()
	cfg.Nside = nside
	return NewWithConfig(cfg)
}

// NewWithConfig builds the topology and seeds an initial population.
func NewWithConfig(cfg Config) (*World, error) {
	topo, err := sphere.Build(cfg.Nside)
	if err != nil {
		return nil, errors.Wrap(err, "spherelife: cannot build world")
	}
	w := &World{
		cfg:   cfg,
		rules: cfg.Rules,
		rng:   core.NewRNG(cfg.Seed),
		stats: NewStats(cfg.StatsWindow),
	}
	w.setTopology(topo)
	w.ResetPopulation()
	return w, nil
}

// MustNew is like NewWithConfig but panics on error.
func MustNew(cfg Config) *World {
	w, err := NewWithConfig(cfg)
	if err != nil {
		panic(err)
	}
	return w
}

func (w *World) setTopology(topo *sphere.Topology) {
	w.topo = topo
	w.cur = life.NewState(topo.Len())
	w.nxt = life.NewState(topo.Len())
}

// Name returns the simulation identifier.
func (w *World) Name() string { return "spherelife" }

// Len returns the number of cells.
func (w *World) Len() int { return w.topo.Len() }

// Topology exposes the current tessellation.
func (w *World) Topology() *sphere.Topology { return w.topo }

// Cells exposes the current population as 0/1 values.
func (w *World) Cells() []uint8 { return w.cur }

// Generation returns the number of ticks since the last reset.
func (w *World) Generation() int { return w.generation }

// AliveFraction returns the share of alive cells.
func (w *World) AliveFraction() float64 { return life.AliveFraction(w.cur) }

// Rules returns a copy of the active rules.
func (w *World) Rules() life.RuleSet { return w.rules }

// Stats exposes the derived population figures.
func (w *World) Stats() *Stats { return w.stats }

// Config returns the configuration with the live resolution and rules.
func (w *World) Config() Config {
	c := w.cfg
	c.Rules = w.rules
	return c
}

// Reset reseeds the random source and draws a new population. A zero seed
// reuses the configured one.
func (w *World) Reset(seed int64) {
	if seed == 0 {
		seed = w.cfg.Seed
	}
	w.cfg.Seed = seed
	w.rng.Reseed(seed)
	w.ResetPopulation()
}

// ResetPopulation draws a fresh random population from the running random
// source and restarts the generation counter.
func (w *World) ResetPopulation() {
	core.FillBinary(w.rng.Source(), w.cur)
	w.generation = 0
	w.stats.Reset()
	logger.Debugf("population reset: %d cells, %.1f%% alive", len(w.cur), 100*w.AliveFraction())
}

// SetResolution rebuilds the tessellation and draws a new population.
func (w *World) SetResolution(nside int) error {
	topo, err := sphere.Build(nside)
	if err != nil {
		return errors.Wrapf(err, "spherelife: cannot change resolution to %d", nside)
	}
	w.cfg.Nside = nside
	w.setTopology(topo)
	w.ResetPopulation()
	logger.Infof("resolution set to %d (%d cells)", nside, topo.Len())
	return nil
}

// SetRuleThreshold updates one rule threshold. The value is used as given;
// the reproduction window may become empty.
func (w *World) SetRuleThreshold(t life.Threshold, v int) bool {
	if !w.rules.Set(t, v) {
		return false
	}
	logger.Debugf("rules now %s", w.rules)
	return true
}

// DefaultRules restores the standard thresholds.
func (w *World) DefaultRules() {
	w.rules = life.DefaultRules()
	logger.Debugf("rules restored to %s", w.rules)
}

// Tick advances the population by one generation.
func (w *World) Tick() {
	if w.cfg.Workers > 1 || w.cfg.Workers == 0 {
		life.StepParallel(w.topo, w.cur, w.nxt, w.rules, w.cfg.Workers)
	} else {
		life.StepInto(w.topo, w.cur, w.nxt, w.rules)
	}
	w.cur, w.nxt = w.nxt, w.cur
	w.generation++
	w.stats.Observe(w.cur)
}

// Step implements core.Sim.
func (w *World) Step() { w.Tick() }

func init() {
	core.Register("spherelife", func(cfg map[string]string) core.Sim {
		return MustNew(FromMap(cfg))
	})
}
