package spherelife

import (
	"slices"
	"testing"
	"time"

	"sphere-ca/internal/core"
	"sphere-ca/internal/life"
)

func newWorld(t *testing.T, nside int) *World {
	t.Helper()
	w, err := New(nside)
	if err != nil {
		t.Fatalf("New(%d): %v", nside, err)
	}
	return w
}

func TestNewRejectsNonPositiveResolution(t *testing.T) {
	if _, err := New(0); err == nil {
		t.Fatalf("expected error for nside 0")
	}
	defer func() {
		if recover() == nil {
			t.Fatalf("MustNew did not panic")
		}
	}()
	cfg := DefaultConfig()
	cfg.Nside = -2
	MustNew(cfg)
}

func TestResetDeterministic(t *testing.T) {
	a := newWorld(t, 8)
	b := newWorld(t, 8)
	if !slices.Equal(a.Cells(), b.Cells()) {
		t.Fatalf("same seed produced different populations")
	}
	for range 10 {
		a.Tick()
		b.Tick()
	}
	if !slices.Equal(a.Cells(), b.Cells()) {
		t.Fatalf("same seed diverged after ten generations")
	}

	a.Reset(99)
	b.Reset(99)
	if !slices.Equal(a.Cells(), b.Cells()) {
		t.Fatalf("Reset(99) produced different populations")
	}
	if a.Generation() != 0 {
		t.Fatalf("generation after reset = %d", a.Generation())
	}
}

func TestTickMatchesEngine(t *testing.T) {
	w := newWorld(t, 4)
	before := life.State(w.Cells()).Clone()
	want := life.Step(w.Topology(), before, w.Rules())
	w.Tick()
	if !slices.Equal(life.State(w.Cells()), want) {
		t.Fatalf("Tick disagrees with life.Step")
	}
	if w.Generation() != 1 {
		t.Fatalf("generation = %d, want 1", w.Generation())
	}
}

func TestParallelWorkersMatchSerial(t *testing.T) {
	serialCfg := DefaultConfig()
	serialCfg.Workers = 1
	parallelCfg := serialCfg
	parallelCfg.Workers = 4

	a := MustNew(serialCfg)
	b := MustNew(parallelCfg)
	for range 5 {
		a.Tick()
		b.Tick()
	}
	if !slices.Equal(a.Cells(), b.Cells()) {
		t.Fatalf("parallel ticks diverged from serial ticks")
	}
}

func TestSetResolutionRebuilds(t *testing.T) {
	w := newWorld(t, 4)
	w.Tick()
	if err := w.SetResolution(6); err != nil {
		t.Fatalf("SetResolution: %v", err)
	}
	if w.Len() != 12*36 || len(w.Cells()) != w.Len() {
		t.Fatalf("len = %d, cells = %d", w.Len(), len(w.Cells()))
	}
	if w.Generation() != 0 {
		t.Fatalf("generation = %d after resolution change", w.Generation())
	}
	if err := w.SetResolution(0); err == nil {
		t.Fatalf("SetResolution(0) succeeded")
	}
	if w.Topology().Resolution() != 6 {
		t.Fatalf("failed resolution change replaced the topology")
	}
}

func TestRuleThresholds(t *testing.T) {
	w := newWorld(t, 2)
	if !w.SetRuleThreshold(life.ReproductionMin, 6) {
		t.Fatalf("SetRuleThreshold rejected a valid selector")
	}
	if got := w.Rules().ReproductionMin; got != 6 {
		t.Fatalf("reproduction_min = %d", got)
	}
	w.DefaultRules()
	if w.Rules() != life.DefaultRules() {
		t.Fatalf("DefaultRules left %s", w.Rules())
	}
}

func TestEmptyReproductionWindowOnlyShrinks(t *testing.T) {
	w := newWorld(t, 8)
	w.SetRuleThreshold(life.ReproductionMin, 5)
	w.SetRuleThreshold(life.ReproductionMax, 4)
	for range 10 {
		before := life.State(w.Cells()).Clone()
		w.Tick()
		for i, v := range w.Cells() {
			if v == 1 && before[i] == 0 {
				t.Fatalf("cell %d was born at generation %d", i, w.Generation())
			}
		}
	}
}

func TestSetIntParameter(t *testing.T) {
	w := newWorld(t, 2)
	if !w.SetIntParameter("loneliness", 42) {
		t.Fatalf("loneliness rejected")
	}
	if got := w.Rules().Loneliness; got != MaxThreshold {
		t.Fatalf("loneliness = %d, want clamp to %d", got, MaxThreshold)
	}
	if !w.SetIntParameter("overpopulation", -3) {
		t.Fatalf("overpopulation rejected")
	}
	if got := w.Rules().Overpopulation; got != MinThreshold {
		t.Fatalf("overpopulation = %d, want clamp to %d", got, MinThreshold)
	}
	if !w.SetIntParameter("nside", 3) || w.Len() != 108 {
		t.Fatalf("nside change not applied, len = %d", w.Len())
	}
	if w.SetIntParameter("birth", 3) {
		t.Fatalf("unknown key accepted")
	}

	snap := w.Parameters()
	p, ok := snap.Lookup("loneliness")
	if !ok || p.Value != "8" {
		t.Fatalf("snapshot loneliness = %+v, %v", p, ok)
	}
	if p, ok := snap.Lookup("cells"); !ok || p.Value != "108" {
		t.Fatalf("snapshot cells = %+v, %v", p, ok)
	}
}

func TestFromMap(t *testing.T) {
	c := FromMap(map[string]string{
		"nside":            "16",
		"seed":             "7",
		"workers":          "0",
		"loneliness":       "1",
		"reproduction_max": "4",
		"overpopulation":   "bogus",
		"stats_window":     "-1",
	})
	if c.Nside != 16 || c.Seed != 7 || c.Workers != 0 {
		t.Fatalf("unexpected config %+v", c)
	}
	want := life.RuleSet{Loneliness: 1, Overpopulation: 3, ReproductionMin: 3, ReproductionMax: 4}
	if c.Rules != want {
		t.Fatalf("rules = %s, want %s", c.Rules, want)
	}
	if c.StatsWindow != DefaultConfig().StatsWindow {
		t.Fatalf("stats window = %d", c.StatsWindow)
	}
	if FromMap(map[string]string{"nside": "0"}).Nside != DefaultConfig().Nside {
		t.Fatalf("nside 0 was accepted")
	}
}

func TestFromMapAcceptsAnyThreshold(t *testing.T) {
	c := FromMap(map[string]string{
		"loneliness":       "-2",
		"overpopulation":   "-1",
		"reproduction_min": "-3",
		"reproduction_max": "-1",
	})
	want := life.RuleSet{Loneliness: -2, Overpopulation: -1, ReproductionMin: -3, ReproductionMax: -1}
	if c.Rules != want {
		t.Fatalf("rules = %s, want %s", c.Rules, want)
	}
	w, err := NewWithConfig(c)
	if err != nil {
		t.Fatalf("NewWithConfig: %v", err)
	}
	w.Tick()
	if w.AliveFraction() != 0 {
		t.Fatalf("negative thresholds left %.2f alive", w.AliveFraction())
	}
}

func TestRegistered(t *testing.T) {
	f, ok := core.Sims()["spherelife"]
	if !ok {
		t.Fatalf("spherelife not registered")
	}
	sim := f(map[string]string{"nside": "2"})
	ss, ok := sim.(core.SphereSim)
	if !ok {
		t.Fatalf("%T does not implement core.SphereSim", sim)
	}
	if ss.Len() != 48 || ss.Topology().Len() != 48 {
		t.Fatalf("len = %d", ss.Len())
	}
	if _, ok := sim.(core.RuleResetter); !ok {
		t.Fatalf("%T does not implement core.RuleResetter", sim)
	}
}

func TestStatsStagnationAndAverage(t *testing.T) {
	s := NewStats(2)
	clock := time.Unix(0, 0)
	s.now = func() time.Time { return clock }

	a := life.State{1, 0, 0, 0}
	b := life.State{1, 1, 0, 0}
	c := life.State{1, 1, 1, 0}

	s.Observe(a)
	clock = clock.Add(500 * time.Millisecond)
	s.Observe(b)
	if s.Stagnant() {
		t.Fatalf("two distinct states reported stagnant")
	}
	if got := s.MovingAverage(); got != 0.375 {
		t.Fatalf("average = %v, want 0.375", got)
	}
	if got := s.Rate(); got != 2 {
		t.Fatalf("rate = %v, want 2", got)
	}

	clock = clock.Add(500 * time.Millisecond)
	s.Observe(c)
	if got := s.MovingAverage(); got != 0.625 {
		t.Fatalf("windowed average = %v, want 0.625", got)
	}
	s.Observe(a)
	if !s.Stagnant() {
		t.Fatalf("period-three cycle not detected")
	}

	s.Reset()
	if s.Stagnant() || s.MovingAverage() != 0 || s.Rate() != 0 {
		t.Fatalf("Reset left observations behind")
	}
}

func TestExtinctWorldIsStagnant(t *testing.T) {
	w := newWorld(t, 2)
	for _, th := range life.Thresholds {
		w.SetRuleThreshold(th, 9)
	}
	w.Tick()
	w.Tick()
	if w.AliveFraction() != 0 {
		t.Fatalf("alive fraction = %v", w.AliveFraction())
	}
	if !w.Stats().Stagnant() {
		t.Fatalf("empty world not reported stagnant")
	}
}
