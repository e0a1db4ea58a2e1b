package app

import (
	"flag"
	"os"
	"strconv"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

// Config captures command line and config file options for the viewers.
type Config struct {
	Sim     string  `yaml:"sim"`
	Nside   int     `yaml:"nside"`
	Seed    int64   `yaml:"seed"`
	TPS     int     `yaml:"tps"`
	GPS     float64 `yaml:"gps"`
	Width   int     `yaml:"width"`
	Height  int     `yaml:"height"`
	HUD     int     `yaml:"hud"`
	Workers int     `yaml:"workers"`
	Log     string  `yaml:"log"`

	// Rules holds threshold overrides keyed by their config names.
	Rules map[string]int `yaml:"rules"`

	ConfigFile string `yaml:"-"`
}

// NewConfig returns defaults used by the binaries.
func NewConfig() *Config {
	return &Config{
		Sim:     "spherelife",
		Nside:   32,
		Seed:    42,
		TPS:     60,
		GPS:     3,
		Width:   1024,
		Height:  768,
		HUD:     280,
		Workers: 1,
		Log:     "<root>=WARNING",
	}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Sim, "sim", c.Sim, "simulation to run")
	fs.IntVar(&c.Nside, "nside", c.Nside, "sphere resolution; the sphere has 12*nside^2 cells")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for simulation reset")
	fs.IntVar(&c.TPS, "tps", c.TPS, "ticks per second")
	fs.Float64Var(&c.GPS, "gps", c.GPS, "generations per second")
	fs.IntVar(&c.Width, "width", c.Width, "window width in pixels")
	fs.IntVar(&c.Height, "height", c.Height, "window height in pixels")
	fs.IntVar(&c.HUD, "hud", c.HUD, "HUD panel width in pixels")
	fs.IntVar(&c.Workers, "workers", c.Workers, "goroutines per generation (0 = one per CPU)")
	fs.StringVar(&c.Log, "log", c.Log, "loggo logging configuration")
	fs.StringVar(&c.ConfigFile, "config", c.ConfigFile, "YAML config file; explicit flags take precedence")
}

// LoadFile merges values from a YAML file. Keys absent from the file keep
// their current values.
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(err, "cannot read config")
	}
	if err := yaml.UnmarshalStrict(data, c); err != nil {
		return errors.Wrapf(err, "cannot parse config %q", path)
	}
	return nil
}

// Resolve loads ConfigFile, if set, and then reapplies every flag that was
// set explicitly on fs so the command line wins over the file.
func (c *Config) Resolve(fs *flag.FlagSet) error {
	if c.ConfigFile == "" {
		return c.Validate()
	}
	// Flag values alias the Config fields, so capture them before the
	// file overwrites those fields.
	explicit := make(map[string]string)
	fs.Visit(func(f *flag.Flag) {
		explicit[f.Name] = f.Value.String()
	})
	if err := c.LoadFile(c.ConfigFile); err != nil {
		return err
	}
	for name, value := range explicit {
		if err := fs.Set(name, value); err != nil {
			return errors.Wrapf(err, "cannot reapply -%s", name)
		}
	}
	return c.Validate()
}

// Validate rejects values no viewer can run with.
func (c *Config) Validate() error {
	switch {
	case c.Nside <= 0:
		return errors.Errorf("nside must be positive, got %d", c.Nside)
	case c.TPS <= 0:
		return errors.Errorf("tps must be positive, got %d", c.TPS)
	case c.GPS <= 0:
		return errors.Errorf("gps must be positive, got %v", c.GPS)
	case c.Width <= 0 || c.Height <= 0:
		return errors.Errorf("window size must be positive, got %dx%d", c.Width, c.Height)
	case c.Workers < 0:
		return errors.Errorf("workers must not be negative, got %d", c.Workers)
	}
	return nil
}

// Map exports the simulation settings in the flag-style form consumed by
// core.Factory.
func (c *Config) Map() map[string]string {
	m := map[string]string{
		"nside":   strconv.Itoa(c.Nside),
		"seed":    strconv.FormatInt(c.Seed, 10),
		"workers": strconv.Itoa(c.Workers),
	}
	for k, v := range c.Rules {
		m[k] = strconv.Itoa(v)
	}
	return m
}
