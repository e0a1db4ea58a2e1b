package spherelife

import (
	"strconv"

	"sphere-ca/internal/life"
	"sphere-ca/internal/sphere"
)

const (
	// MaxResolution bounds the HUD resolution control.
	MaxResolution = 128
	// MinThreshold and MaxThreshold bound the HUD rule controls.
	MinThreshold = 1
	MaxThreshold = sphere.MaxNeighbors
)

// Config controls the sphere tessellation, the rules and the stepping.
type Config struct {
	Nside   int
	Seed    int64
	Workers int

	// StatsWindow is the number of generations averaged by Stats.
	StatsWindow int

	Rules life.RuleSet
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Nside:       32,
		Seed:        1337,
		Workers:     1,
		StatsWindow: 30,
		Rules:       life.DefaultRules(),
	}
}

// FromMap populates the config from a string map (flag-style key/value
// pairs). Malformed or out-of-range values keep their defaults.
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["nside"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Nside = parsed
		}
	}
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}
	if v, ok := cfg["workers"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			c.Workers = parsed
		}
	}
	if v, ok := cfg["stats_window"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.StatsWindow = parsed
		}
	}
	for _, t := range life.Thresholds {
		if v, ok := cfg[t.Key()]; ok {
			if parsed, err := strconv.Atoi(v); err == nil {
				c.Rules.Set(t, parsed)
			}
		}
	}
	return c
}
