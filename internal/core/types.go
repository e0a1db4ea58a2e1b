package core

import (
	"sort"

	"sphere-ca/internal/sphere"
)

// Sim defines the minimal contract a spherical automaton must implement.
// Cells holds one value per topology cell.
type Sim interface {
	Name() string
	Len() int
	Reset(seed int64)
	Step()
	Cells() []uint8
}

// SphereSim is a Sim whose cells live on a sphere tessellation.
type SphereSim interface {
	Sim
	Topology() *sphere.Topology
}

// GenerationCounter is implemented by sims that count completed steps.
type GenerationCounter interface {
	Generation() int
}

// Factory constructs a Sim using an optional configuration map.
type Factory func(cfg map[string]string) Sim

var sims = map[string]Factory{}

// Register adds a simulation factory under the provided name.
func Register(name string, f Factory) {
	if name == "" || f == nil {
		return
	}
	sims[name] = f
}

// Sims exposes the registry of available simulation factories.
func Sims() map[string]Factory {
	return sims
}

// SimNames returns the registered names in sorted order.
func SimNames() []string {
	names := make([]string, 0, len(sims))
	for name := range sims {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
