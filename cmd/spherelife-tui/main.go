package main

import (
	"flag"
	"log"

	"github.com/juju/loggo"

	"sphere-ca/internal/app"
	"sphere-ca/internal/core"
	"sphere-ca/internal/sims/spherelife"
	"sphere-ca/internal/view"
)

func main() {
	cfg := app.NewConfig()
	cfg.Nside = 8
	cfg.Bind(flag.CommandLine)
	flag.Parse()
	if err := cfg.Resolve(flag.CommandLine); err != nil {
		log.Fatal(err)
	}
	// Anything below ERROR would draw over the terminal UI.
	logSpec, err := app.CapLogLevels(cfg.Log, loggo.ERROR)
	if err != nil {
		log.Fatal(err)
	}
	if err := loggo.ConfigureLoggers(logSpec); err != nil {
		log.Fatal(err)
	}

	w, err := spherelife.NewWithConfig(spherelife.FromMap(cfg.Map()))
	if err != nil {
		log.Fatal(err)
	}
	interval := core.NewFixedStep(cfg.GPS).Interval()
	console, err := view.NewConsole(view.NewController(w, true), interval)
	if err != nil {
		log.Fatal(err)
	}
	if err := console.Start(); err != nil {
		log.Fatal(err)
	}
}
