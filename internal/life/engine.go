// Package life advances a generalised Game of Life over an arbitrary cell
// topology. Every function here is pure with respect to its inputs: the
// topology and rules are never modified and the current state is only read.
package life

import (
	"math/rand/v2"

	"sphere-ca/internal/core"
	"sphere-ca/internal/sphere"
)

// State holds one 0/1 value per cell.
type State []uint8

// NewState returns an all-dead state for n cells.
func NewState(n int) State { return make(State, n) }

// Alive reports whether cell i is alive.
func (s State) Alive(i int) bool { return s[i] != 0 }

// Clone returns an independent copy of s.
func (s State) Clone() State { return append(State(nil), s...) }

// Randomize returns a fresh state where every cell is alive with
// probability one half.
func Randomize(topo *sphere.Topology, rng *rand.Rand) State {
	s := NewState(topo.Len())
	core.FillBinary(rng, s)
	return s
}

// AliveNeighbors counts the alive cells listed as neighbours of cell i.
// Empty and out-of-range slots are skipped.
func AliveNeighbors(topo *sphere.Topology, s State, i int) int {
	n := 0
	for _, nb := range topo.Neighbors(i) {
		if nb < 0 || int(nb) >= len(s) {
			continue
		}
		if s[nb] != 0 {
			n++
		}
	}
	return n
}

// Step computes the next generation into a newly allocated state.
func Step(topo *sphere.Topology, cur State, rules RuleSet) State {
	next := NewState(len(cur))
	StepInto(topo, cur, next, rules)
	return next
}

// StepInto writes the generation following cur into next. The two slices
// must not alias and must both hold one value per cell.
func StepInto(topo *sphere.Topology, cur, next State, rules RuleSet) {
	stepRange(topo, cur, next, rules, 0, len(cur))
}

func stepRange(topo *sphere.Topology, cur, next State, rules RuleSet, from, to int) {
	for i := from; i < to; i++ {
		next[i] = 0
		if rules.Next(cur[i] != 0, AliveNeighbors(topo, cur, i)) {
			next[i] = 1
		}
	}
}

// CountAlive returns the number of alive cells.
func CountAlive(s State) int {
	n := 0
	for _, v := range s {
		if v != 0 {
			n++
		}
	}
	return n
}

// AliveFraction returns the share of alive cells in [0, 1]. An empty state
// reports 0.
func AliveFraction(s State) float64 {
	if len(s) == 0 {
		return 0
	}
	return float64(CountAlive(s)) / float64(len(s))
}
