package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"strings"

	"github.com/integrii/flaggy"
	"github.com/juju/loggo"

	"sphere-ca/internal/app"
	"sphere-ca/internal/runner"
	"sphere-ca/internal/sims/spherelife"
)

func main() {
	cfg := app.NewConfig()
	opts := runner.Options{
		Generations: 500,
		ReportEvery: 50,
		MaxRestarts: 5,
		MapWidth:    96,
		MapHeight:   24,
		Color:       true,
	}
	var (
		configFile string
		noColor    bool
		sweepLo    = 1
		sweepHi    = 4
		sweepTop   = 10
		sweepGens  = 200
		sweepJobs  = runtime.NumCPU()
	)

	flaggy.SetName("spherelife-run")
	flaggy.SetDescription("Run Game of Life on a sphere without a window")
	flaggy.DefaultParser.ShowHelpOnUnexpected = true
	bindGlobal(flaggy.DefaultParser, cfg, &configFile, &noColor)

	run := flaggy.NewSubcommand("run")
	run.Description = "Advance one world and report progress"
	run.Int(&opts.Generations, "g", "generations", "Generations to run")
	run.Int(&opts.ReportEvery, "r", "report", "Print status every so many generations")
	run.Bool(&opts.AutoRestart, "a", "auto-restart", "Draw a new population on extinction or stagnation")
	run.Int(&opts.MaxRestarts, "", "max-restarts", "Restart limit for -auto-restart")
	run.Int(&opts.MapWidth, "", "map-width", "Final map width (0 disables the map)")
	run.Int(&opts.MapHeight, "", "map-height", "Final map height")
	flaggy.AttachSubcommand(run, 1)

	sweep := flaggy.NewSubcommand("sweep")
	sweep.Description = "Try every rule set in a threshold range"
	sweep.Int(&sweepLo, "", "min", "Lowest threshold")
	sweep.Int(&sweepHi, "", "max", "Highest threshold")
	sweep.Int(&sweepGens, "g", "generations", "Generations per rule set")
	sweep.Int(&sweepJobs, "j", "jobs", "Rule sets evaluated in parallel")
	sweep.Int(&sweepTop, "t", "top", "Results to print")
	flaggy.AttachSubcommand(sweep, 1)

	// The file is loaded before parsing so that its values become the
	// flag defaults and anything given on the command line replaces them.
	if path := configPath(os.Args[1:]); path != "" {
		if err := cfg.LoadFile(path); err != nil {
			fatal(err)
		}
	}
	flaggy.Parse()
	if err := loggo.ConfigureLoggers(cfg.Log); err != nil {
		fatal(err)
	}
	opts.Color = !noColor

	simCfg := spherelife.FromMap(cfg.Map())
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	switch {
	case sweep.Used:
		results, err := runner.Sweep(ctx, simCfg, runner.RuleGrid(sweepLo, sweepHi), sweepGens, sweepJobs)
		if err != nil {
			fatal(err)
		}
		runner.WriteSweep(os.Stdout, results, sweepTop, opts.Color)
	case run.Used:
		w, err := spherelife.NewWithConfig(simCfg)
		if err != nil {
			fatal(err)
		}
		if _, err := runner.Run(ctx, w, opts, os.Stdout); err != nil {
			fatal(err)
		}
	default:
		flaggy.ShowHelpAndExit("choose a subcommand")
	}
}

// bindGlobal registers the flags shared by every subcommand.
func bindGlobal(p *flaggy.Parser, cfg *app.Config, configFile *string, noColor *bool) {
	p.String(configFile, "c", "config", "YAML config file; explicit flags take precedence")
	p.Int(&cfg.Nside, "n", "nside", "Sphere resolution; 12*nside^2 cells")
	p.Int64(&cfg.Seed, "s", "seed", "Random seed")
	p.Int(&cfg.Workers, "w", "workers", "Goroutines per generation (0 = one per CPU)")
	p.String(&cfg.Log, "l", "log", "loggo logging configuration")
	p.Bool(noColor, "", "no-color", "Disable coloured output")
}

// configPath returns the value of -c/--config in args, or "" if absent.
func configPath(args []string) string {
	for i, arg := range args {
		if arg == "--" {
			break
		}
		name := strings.TrimLeft(arg, "-")
		if name == arg {
			continue
		}
		if value, ok := strings.CutPrefix(name, "config="); ok {
			return value
		}
		if value, ok := strings.CutPrefix(name, "c="); ok {
			return value
		}
		if (name == "c" || name == "config") && i+1 < len(args) {
			return args[i+1]
		}
	}
	return ""
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "spherelife-run:", err)
	os.Exit(1)
}
