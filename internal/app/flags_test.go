package app

import (
	"flag"
	"os"
	"path/filepath"
	"testing"

	qt "github.com/frankban/quicktest"
)

func writeConfig(c *qt.C, body string) string {
	path := filepath.Join(c.TempDir(), "sphere.yaml")
	c.Assert(os.WriteFile(path, []byte(body), 0o644), qt.IsNil)
	return path
}

func TestBindDefaults(t *testing.T) {
	c := qt.New(t)
	cfg := NewConfig()
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cfg.Bind(fs)
	c.Assert(fs.Parse([]string{"-nside", "8", "-gps", "5"}), qt.IsNil)
	c.Assert(cfg.Resolve(fs), qt.IsNil)
	c.Assert(cfg.Nside, qt.Equals, 8)
	c.Assert(cfg.GPS, qt.Equals, 5.0)
	c.Assert(cfg.Sim, qt.Equals, "spherelife")
	c.Assert(cfg.TPS, qt.Equals, 60)
}

func TestResolveFlagsOverrideFile(t *testing.T) {
	c := qt.New(t)
	path := writeConfig(c, `
sim: spherebrain
nside: 16
seed: 9
workers: 4
rules:
  loneliness: 1
  reproduction_max: 5
`)
	cfg := NewConfig()
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cfg.Bind(fs)
	c.Assert(fs.Parse([]string{"-config", path, "-nside", "4"}), qt.IsNil)
	c.Assert(cfg.Resolve(fs), qt.IsNil)

	c.Assert(cfg.Sim, qt.Equals, "spherebrain")
	c.Assert(cfg.Nside, qt.Equals, 4)
	c.Assert(cfg.Seed, qt.Equals, int64(9))
	c.Assert(cfg.Map(), qt.DeepEquals, map[string]string{
		"nside":            "4",
		"seed":             "9",
		"workers":          "4",
		"loneliness":       "1",
		"reproduction_max": "5",
	})
}

func TestResolveExplicitDefaultBeatsFile(t *testing.T) {
	c := qt.New(t)
	path := writeConfig(c, "nside: 16\ngps: 9\n")
	cfg := NewConfig()
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cfg.Bind(fs)
	c.Assert(fs.Parse([]string{"-config", path, "-nside", "32", "-gps", "2"}), qt.IsNil)
	c.Assert(cfg.Resolve(fs), qt.IsNil)
	c.Assert(cfg.Nside, qt.Equals, 32)
	c.Assert(cfg.GPS, qt.Equals, 2.0)
	c.Assert(cfg.ConfigFile, qt.Equals, path)
}

func TestLoadFileErrors(t *testing.T) {
	c := qt.New(t)
	cfg := NewConfig()
	err := cfg.LoadFile(filepath.Join(c.TempDir(), "missing.yaml"))
	c.Assert(err, qt.ErrorMatches, `cannot read config: .*`)

	path := writeConfig(c, "nsid: 3\n")
	err = cfg.LoadFile(path)
	c.Assert(err, qt.ErrorMatches, `cannot parse config ".*": (.|\n)*field nsid not found(.|\n)*`)
}

func TestValidate(t *testing.T) {
	c := qt.New(t)
	for _, tc := range []struct {
		mutate func(*Config)
		want   string
	}{
		{func(cfg *Config) { cfg.Nside = 0 }, `nside must be positive, got 0`},
		{func(cfg *Config) { cfg.GPS = -1 }, `gps must be positive, got -1`},
		{func(cfg *Config) { cfg.Width = 0 }, `window size must be positive, got 0x768`},
		{func(cfg *Config) { cfg.Workers = -2 }, `workers must not be negative, got -2`},
	} {
		cfg := NewConfig()
		tc.mutate(cfg)
		c.Assert(cfg.Validate(), qt.ErrorMatches, tc.want)
	}
	c.Assert(NewConfig().Validate(), qt.IsNil)
}
