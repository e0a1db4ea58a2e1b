package runner

import (
	"bytes"
	"context"
	"strings"
	"testing"

	qt "github.com/frankban/quicktest"

	"sphere-ca/internal/life"
	"sphere-ca/internal/sims/spherelife"
)

func smallWorld(c *qt.C, nside int) *spherelife.World {
	w, err := spherelife.New(nside)
	c.Assert(err, qt.IsNil)
	return w
}

func TestRunReportsProgress(t *testing.T) {
	c := qt.New(t)
	w := smallWorld(c, 8)
	var out bytes.Buffer
	sum, err := Run(context.Background(), w, Options{Generations: 6, ReportEvery: 2}, &out)
	c.Assert(err, qt.IsNil)
	c.Assert(sum.Generations <= 6, qt.IsTrue)
	c.Assert(sum.FinalFraction, qt.Equals, w.AliveFraction())
	c.Assert(sum.PeakFraction >= sum.FinalFraction, qt.IsTrue)

	text := out.String()
	c.Assert(text, qt.Contains, "sphere life: nside 8, 768 cells, rules L2/O3/R3-3")
	c.Assert(text, qt.Contains, "done:")
	// Colour is off, so no escape sequences.
	c.Assert(strings.Contains(text, "\x1b["), qt.IsFalse)
}

func TestRunRestartsExtinctWorld(t *testing.T) {
	c := qt.New(t)
	w := smallWorld(c, 2)
	for _, th := range life.Thresholds {
		w.SetRuleThreshold(th, 9)
	}
	var out bytes.Buffer
	sum, err := Run(context.Background(), w, Options{Generations: 20, AutoRestart: true, MaxRestarts: 3}, &out)
	c.Assert(err, qt.IsNil)
	c.Assert(sum.Restarts, qt.Equals, 3)
	c.Assert(sum.Extinct, qt.IsTrue)
	c.Assert(sum.Generations, qt.Equals, 4)
	c.Assert(strings.Count(out.String(), "restarting"), qt.Equals, 3)
}

func TestRunStopsWhenExtinctWithoutRestart(t *testing.T) {
	c := qt.New(t)
	w := smallWorld(c, 2)
	for _, th := range life.Thresholds {
		w.SetRuleThreshold(th, 9)
	}
	sum, err := Run(context.Background(), w, Options{Generations: 50}, &bytes.Buffer{})
	c.Assert(err, qt.IsNil)
	c.Assert(sum.Generations, qt.Equals, 1)
	c.Assert(sum.Extinct, qt.IsTrue)
	c.Assert(sum.FinalFraction, qt.Equals, 0.0)
}

func TestRunHonoursContext(t *testing.T) {
	c := qt.New(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Run(ctx, smallWorld(c, 2), Options{Generations: 10}, &bytes.Buffer{})
	c.Assert(err, qt.ErrorMatches, `runner: interrupted: context canceled`)

	_, err = Run(context.Background(), smallWorld(c, 2), Options{Generations: -1}, &bytes.Buffer{})
	c.Assert(err, qt.ErrorMatches, `runner: negative generation count -1`)
}

func TestWriteMap(t *testing.T) {
	c := qt.New(t)
	w := smallWorld(c, 4)
	var out bytes.Buffer
	WriteMap(&out, w, 40, 10)
	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	c.Assert(lines, qt.HasLen, 10)
	for _, l := range lines {
		c.Assert(l, qt.HasLen, 40)
		c.Assert(strings.Trim(l, "#."), qt.Equals, "")
	}
}

func TestRuleGrid(t *testing.T) {
	c := qt.New(t)
	c.Assert(RuleGrid(1, 2), qt.HasLen, 9)
	c.Assert(RuleGrid(1, 4), qt.HasLen, 100)
	for _, r := range RuleGrid(2, 5) {
		c.Assert(r.Loneliness <= r.Overpopulation && r.ReproductionMin <= r.ReproductionMax, qt.IsTrue)
	}
}

func TestSweepSortsByScore(t *testing.T) {
	c := qt.New(t)
	base := spherelife.DefaultConfig()
	base.Nside = 4
	sets := RuleGrid(2, 3)
	results, err := Sweep(context.Background(), base, sets, 10, 3)
	c.Assert(err, qt.IsNil)
	c.Assert(results, qt.HasLen, len(sets))
	for i := 1; i < len(results); i++ {
		c.Assert(results[i-1].Score() <= results[i].Score(), qt.IsTrue)
	}

	again, err := Sweep(context.Background(), base, sets, 10, 1)
	c.Assert(err, qt.IsNil)
	c.Assert(again, qt.DeepEquals, results)

	var out bytes.Buffer
	WriteSweep(&out, results, 3, false)
	c.Assert(out.String(), qt.Contains, "best rules (9 rule sets)")

	base.Nside = 0
	_, err = Sweep(context.Background(), base, sets, 10, 2)
	c.Assert(err, qt.ErrorMatches, `spherelife: cannot build world: sphere: resolution must be positive, got 0`)
}
