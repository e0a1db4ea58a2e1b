// Package runner drives a sphere world without a window, printing progress
// and an optional text map.
package runner

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/juju/loggo"
	"github.com/logrusorgru/aurora"
	"github.com/pkg/errors"

	"sphere-ca/internal/core"
	"sphere-ca/internal/render"
	"sphere-ca/internal/sims/spherelife"
)

var logger = loggo.GetLogger("sphere-ca.runner")

// Options controls a headless run.
type Options struct {
	Generations int
	// ReportEvery prints a status line every so many generations; 0 only
	// prints the final summary.
	ReportEvery int
	// AutoRestart draws a new population when the current one dies out or
	// stagnates, at most MaxRestarts times. Without it such a run stops
	// early.
	AutoRestart bool
	MaxRestarts int
	// MapWidth and MapHeight size the final text map; zero disables it.
	MapWidth  int
	MapHeight int
	Color     bool
}

// Summary describes a finished run.
type Summary struct {
	Generations   int
	Restarts      int
	FinalFraction float64
	PeakFraction  float64
	Extinct       bool
	Stagnant      bool
	Elapsed       time.Duration
}

// Rate returns generations per second over the whole run.
func (s Summary) Rate() float64 {
	if s.Elapsed <= 0 {
		return 0
	}
	return float64(s.Generations) / s.Elapsed.Seconds()
}

// Run advances w for opts.Generations generations or until ctx is done.
func Run(ctx context.Context, w *spherelife.World, opts Options, out io.Writer) (Summary, error) {
	if opts.Generations < 0 {
		return Summary{}, errors.Errorf("runner: negative generation count %d", opts.Generations)
	}
	au := aurora.NewAurora(opts.Color)
	start := time.Now()
	sum := Summary{PeakFraction: w.AliveFraction()}

	fmt.Fprintf(out, "%s %s, %d cells, rules %s\n",
		au.Bold("sphere life:"), describeResolution(w), w.Len(), au.Cyan(w.Rules().String()))

	for sum.Generations < opts.Generations {
		if err := ctx.Err(); err != nil {
			sum.Elapsed = time.Since(start)
			return sum, errors.Wrap(err, "runner: interrupted")
		}
		w.Tick()
		sum.Generations++
		f := w.AliveFraction()
		sum.PeakFraction = max(sum.PeakFraction, f)

		if opts.ReportEvery > 0 && sum.Generations%opts.ReportEvery == 0 {
			fmt.Fprintf(out, "gen %6d  alive %s  avg %5.1f%%  %6.1f gen/s\n",
				w.Generation(), colourFraction(au, f), 100*w.Stats().MovingAverage(), w.Stats().Rate())
		}

		extinct := f == 0
		stagnant := w.Stats().Stagnant()
		if !extinct && !stagnant {
			continue
		}
		if opts.AutoRestart && sum.Restarts < opts.MaxRestarts {
			sum.Restarts++
			logger.Infof("restart %d after generation %d (extinct=%v)", sum.Restarts, w.Generation(), extinct)
			fmt.Fprintf(out, "%s at generation %d, restarting\n", au.Yellow(haltReason(extinct)), w.Generation())
			w.ResetPopulation()
			continue
		}
		sum.Extinct, sum.Stagnant = extinct, stagnant
		fmt.Fprintf(out, "%s at generation %d\n", au.Red(haltReason(extinct)), w.Generation())
		break
	}

	sum.FinalFraction = w.AliveFraction()
	sum.Elapsed = time.Since(start)
	fmt.Fprintf(out, "%s %d generations, %d restarts, final alive %s, peak %.1f%%\n",
		au.Bold("done:"), sum.Generations, sum.Restarts, colourFraction(au, sum.FinalFraction), 100*sum.PeakFraction)

	if opts.MapWidth > 0 && opts.MapHeight > 0 {
		WriteMap(out, w, opts.MapWidth, opts.MapHeight)
	}
	return sum, nil
}

// WriteMap prints an equirectangular text map of the world, north up.
func WriteMap(out io.Writer, sim core.SphereSim, width, height int) {
	proj := render.NewMapProjection(sim.Topology(), width, height)
	grid := core.NewByteGrid(proj.W, proj.H)
	proj.Rasterize(sim.Cells(), grid)
	fmt.Fprintln(out, strings.Join(render.TextRows(grid, 0, "#", "."), "\n"))
}

func describeResolution(w *spherelife.World) string {
	return fmt.Sprintf("nside %d", w.Topology().Resolution())
}

func haltReason(extinct bool) string {
	if extinct {
		return "extinct"
	}
	return "stagnant"
}

// colourFraction shows a percentage coloured by its distance from the
// healthy alive fraction.
func colourFraction(au aurora.Aurora, f float64) aurora.Value {
	s := fmt.Sprintf("%5.1f%%", 100*f)
	c := render.HealthColor(f)
	switch {
	case c.G >= 170:
		return au.Green(s)
	case c.G >= 85:
		return au.Yellow(s)
	default:
		return au.Red(s)
	}
}
