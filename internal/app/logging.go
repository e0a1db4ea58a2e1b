package app

import (
	"github.com/juju/loggo"
	"github.com/pkg/errors"
)

// CapLogLevels parses a loggo specification and raises every module, the
// root included, to at least floor. The result is again a specification
// suitable for loggo.ConfigureLoggers.
func CapLogLevels(spec string, floor loggo.Level) (string, error) {
	cfg, err := loggo.ParseConfigString(spec)
	if err != nil {
		return "", errors.Wrapf(err, "cannot parse log config %q", spec)
	}
	if cfg == nil {
		cfg = make(loggo.Config)
	}
	if _, ok := cfg[""]; !ok {
		cfg[""] = floor
	}
	for name, level := range cfg {
		if level < floor {
			cfg[name] = floor
		}
	}
	return cfg.String(), nil
}
