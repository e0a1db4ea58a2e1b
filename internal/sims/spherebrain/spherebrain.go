// Package spherebrain runs Brian's Brain on the sphere tessellation.
package spherebrain

import (
	"strconv"

	"github.com/pkg/errors"

	"sphere-ca/internal/core"
	"sphere-ca/internal/sphere"
)

const (
	stateDead  = 0
	stateOn    = 1
	stateDying = 2
)

// Brain implements Brian's Brain over a sphere topology.
type Brain struct {
	topo  *sphere.Topology
	birth int
	seed  int64
	cur   []uint8
	nxt   []uint8
}

// New creates a Brain at the given resolution.
func New(nside int) (*Brain, error) {
	topo, err := sphere.Build(nside)
	if err != nil {
		return nil, errors.Wrap(err, "spherebrain")
	}
	b := &Brain{birth: 2, seed: 1}
	b.setTopology(topo)
	return b, nil
}

func (b *Brain) setTopology(topo *sphere.Topology) {
	b.topo = topo
	b.cur = make([]uint8, topo.Len())
	b.nxt = make([]uint8, topo.Len())
}

// Name identifies the simulation.
func (b *Brain) Name() string { return "spherebrain" }

// Len returns the number of cells.
func (b *Brain) Len() int { return len(b.cur) }

// Topology exposes the tessellation.
func (b *Brain) Topology() *sphere.Topology { return b.topo }

// States reports the number of distinct cell values.
func (b *Brain) States() int { return 3 }

// Cells exposes the current state buffer.
func (b *Brain) Cells() []uint8 { return b.cur }

// Reset randomizes cells into dead or firing states.
func (b *Brain) Reset(seed int64) {
	if seed == 0 {
		seed = b.seed
	}
	b.seed = seed
	core.FillBernoulli(core.NewRNG(seed).Source(), b.cur, 1.0/8)
}

// Step advances the automaton by one tick.
func (b *Brain) Step() {
	for i, s := range b.cur {
		switch s {
		case stateOn:
			b.nxt[i] = stateDying
		case stateDying:
			b.nxt[i] = stateDead
		default:
			firing := 0
			for _, nb := range b.topo.Neighbors(i) {
				if nb >= 0 && int(nb) < len(b.cur) && b.cur[nb] == stateOn {
					firing++
				}
			}
			b.nxt[i] = stateDead
			if firing == b.birth {
				b.nxt[i] = stateOn
			}
		}
	}
	b.cur, b.nxt = b.nxt, b.cur
}

// ParameterControls lists the HUD-adjustable values.
func (b *Brain) ParameterControls() []core.ParameterControl {
	return []core.ParameterControl{
		{Key: "birth", Label: "Birth count", Step: 1, Min: 1, Max: sphere.MaxNeighbors, HasMin: true, HasMax: true},
		{Key: "nside", Label: "Resolution", Step: 1, Min: 1, Max: 128, HasMin: true, HasMax: true},
	}
}

// SetIntParameter applies a HUD adjustment.
func (b *Brain) SetIntParameter(key string, value int) bool {
	for _, ctrl := range b.ParameterControls() {
		if ctrl.Key != key {
			continue
		}
		value = ctrl.Clamp(value)
		switch key {
		case "birth":
			b.birth = value
		case "nside":
			if value == b.topo.Resolution() {
				return true
			}
			b.setTopology(sphere.MustBuild(value))
			b.Reset(b.seed)
		}
		return true
	}
	return false
}

// Parameters reports the birth threshold and resolution for display.
func (b *Brain) Parameters() core.ParameterSnapshot {
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{{
		Name: "Brain",
		Params: []core.Parameter{
			core.IntParam("nside", "Resolution", b.topo.Resolution()),
			core.IntParam("birth", "Birth count", b.birth),
			core.Int64Param("seed", "Seed", b.seed),
		},
	}}}
}

func init() {
	core.Register("spherebrain", func(cfg map[string]string) core.Sim {
		nside := 32
		if v, err := strconv.Atoi(cfg["nside"]); err == nil && v > 0 {
			nside = v
		}
		b, err := New(nside)
		if err != nil {
			panic(err)
		}
		if v, err := strconv.Atoi(cfg["birth"]); err == nil {
			b.SetIntParameter("birth", v)
		}
		if v, err := strconv.ParseInt(cfg["seed"], 10, 64); err == nil {
			b.seed = v
		}
		return b
	})
}
