package runner

import (
	"context"
	"fmt"
	"io"
	"math"
	"sort"
	"sync"

	"github.com/logrusorgru/aurora"

	"sphere-ca/internal/life"
	"sphere-ca/internal/render"
	"sphere-ca/internal/sims/spherelife"
)

// SweepResult records how one rule set behaved.
type SweepResult struct {
	Rules         life.RuleSet
	Generations   int
	FinalFraction float64
	MeanFraction  float64
	// HaltedAt is the generation at which the population died out or
	// stagnated, or 0 if it kept changing.
	HaltedAt int
}

// Score is the distance of the mean alive fraction from the healthy
// optimum. Lower is better.
func (r SweepResult) Score() float64 {
	return math.Abs(r.MeanFraction - render.OptimalAlive)
}

// RuleGrid lists every rule set with thresholds in [lo, hi] whose survival
// and reproduction windows are non-empty.
func RuleGrid(lo, hi int) []life.RuleSet {
	var sets []life.RuleSet
	for l := lo; l <= hi; l++ {
		for o := l; o <= hi; o++ {
			for rmin := lo; rmin <= hi; rmin++ {
				for rmax := rmin; rmax <= hi; rmax++ {
					sets = append(sets, life.RuleSet{
						Loneliness:      l,
						Overpopulation:  o,
						ReproductionMin: rmin,
						ReproductionMax: rmax,
					})
				}
			}
		}
	}
	return sets
}

// Sweep runs every rule set from the same initial population on a pool of
// workers and returns the results best first.
func Sweep(ctx context.Context, base spherelife.Config, sets []life.RuleSet, generations, workers int) ([]SweepResult, error) {
	if workers <= 0 {
		workers = 1
	}
	base.Workers = 1
	// Fail fast on a bad configuration before starting workers.
	if _, err := spherelife.NewWithConfig(base); err != nil {
		return nil, err
	}

	jobs := make(chan life.RuleSet)
	results := make(chan SweepResult)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for rules := range jobs {
				results <- runScenario(base, rules, generations)
			}
		}()
	}
	go func() {
		wg.Wait()
		close(results)
	}()
	go func() {
		defer close(jobs)
		for _, rules := range sets {
			select {
			case jobs <- rules:
			case <-ctx.Done():
				return
			}
		}
	}()

	all := make([]SweepResult, 0, len(sets))
	for res := range results {
		all = append(all, res)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	sort.SliceStable(all, func(i, j int) bool {
		if all[i].Score() != all[j].Score() {
			return all[i].Score() < all[j].Score()
		}
		return all[i].Rules.String() < all[j].Rules.String()
	})
	return all, nil
}

func runScenario(base spherelife.Config, rules life.RuleSet, generations int) SweepResult {
	cfg := base
	cfg.Rules = rules
	w := spherelife.MustNew(cfg)
	res := SweepResult{Rules: rules}
	total := 0.0
	for res.Generations < generations {
		w.Tick()
		res.Generations++
		f := w.AliveFraction()
		total += f
		if f == 0 || w.Stats().Stagnant() {
			res.HaltedAt = w.Generation()
			break
		}
	}
	res.FinalFraction = w.AliveFraction()
	if res.Generations > 0 {
		res.MeanFraction = total / float64(res.Generations)
	}
	return res
}

// WriteSweep prints the top results.
func WriteSweep(out io.Writer, results []SweepResult, top int, color bool) {
	au := aurora.NewAurora(color)
	fmt.Fprintf(out, "%s (%d rule sets)\n", au.Bold("best rules"), len(results))
	for i := 0; i < len(results) && i < top; i++ {
		r := results[i]
		halted := "running"
		if r.HaltedAt > 0 {
			halted = fmt.Sprintf("halted at %d", r.HaltedAt)
		}
		fmt.Fprintf(out, "%2d) %-14s mean %s final %5.1f%%  %s\n",
			i+1, au.Cyan(r.Rules.String()), colourFraction(au, r.MeanFraction), 100*r.FinalFraction, halted)
	}
}
