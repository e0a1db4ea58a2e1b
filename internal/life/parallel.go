package life

import (
	"runtime"

	"golang.org/x/sync/errgroup"

	"sphere-ca/internal/sphere"
)

// minCellsPerWorker keeps goroutine overhead below the per-cell work for
// small topologies.
const minCellsPerWorker = 1024

// StepParallel is StepInto split across up to workers goroutines. Each
// worker reads only cur and writes a disjoint range of next. A
// non-positive worker count uses runtime.NumCPU.
func StepParallel(topo *sphere.Topology, cur, next State, rules RuleSet, workers int) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	n := len(cur)
	if maxWorkers := (n + minCellsPerWorker - 1) / minCellsPerWorker; workers > maxWorkers {
		workers = maxWorkers
	}
	if workers <= 1 {
		StepInto(topo, cur, next, rules)
		return
	}

	var (
		eg             errgroup.Group
		cellsPerWorker = (n + workers - 1) / workers
	)
	for w := range workers {
		var (
			from = w * cellsPerWorker
			to   = min(from+cellsPerWorker, n)
		)
		if from >= n {
			break
		}
		eg.Go(func() error {
			stepRange(topo, cur, next, rules, from, to)
			return nil
		})
	}
	// Workers never fail.
	_ = eg.Wait()
}
