//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/juju/loggo"

	"sphere-ca/internal/app"
	"sphere-ca/internal/core"
	_ "sphere-ca/internal/sims/spherebrain"
	_ "sphere-ca/internal/sims/spherelife"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()
	if err := cfg.Resolve(flag.CommandLine); err != nil {
		log.Fatal(err)
	}
	if err := loggo.ConfigureLoggers(cfg.Log); err != nil {
		log.Fatal(err)
	}

	factory, ok := core.Sims()[cfg.Sim]
	if !ok {
		log.Fatalf("unknown sim %q, have %v", cfg.Sim, core.SimNames())
	}
	sim, ok := factory(cfg.Map()).(core.SphereSim)
	if !ok {
		log.Fatalf("sim %q does not run on a sphere", cfg.Sim)
	}
	sim.Reset(cfg.Seed)

	game := app.New(sim, cfg)

	ebiten.SetWindowTitle("sphere-ca: " + sim.Name())
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
