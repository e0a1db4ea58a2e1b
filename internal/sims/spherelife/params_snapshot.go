package spherelife

import (
	"sphere-ca/internal/core"
	"sphere-ca/internal/life"
)

// Parameters reports the current settings grouped for display.
func (w *World) Parameters() core.ParameterSnapshot {
	rules := make([]core.Parameter, 0, len(life.Thresholds))
	for _, t := range life.Thresholds {
		rules = append(rules, core.IntParam(t.Key(), t.String(), w.rules.Get(t)))
	}
	groups := []core.ParameterGroup{
		{
			Name: "Sphere",
			Params: []core.Parameter{
				core.IntParam("nside", "Resolution", w.cfg.Nside),
				core.IntParam("cells", "Cells", w.topo.Len()),
				core.Int64Param("seed", "Seed", w.cfg.Seed),
				core.IntParam("workers", "Workers", w.cfg.Workers),
			},
		},
		{
			Name:    "Rules",
			Params:  rules,
			Summary: w.rules.String(),
		},
		{
			Name: "Population",
			Params: []core.Parameter{
				core.IntParam("generation", "Generation", w.generation),
				core.FloatParam("alive_fraction", "Alive fraction", w.AliveFraction()),
				core.FloatParam("alive_average", "Alive fraction (avg)", w.stats.MovingAverage()),
			},
		},
	}
	return core.ParameterSnapshot{Groups: groups}
}

// ParameterControls lists the HUD-adjustable values.
func (w *World) ParameterControls() []core.ParameterControl {
	controls := make([]core.ParameterControl, 0, len(life.Thresholds)+1)
	for _, t := range life.Thresholds {
		controls = append(controls, core.ParameterControl{
			Key:    t.Key(),
			Label:  t.String(),
			Step:   1,
			Min:    MinThreshold,
			Max:    MaxThreshold,
			HasMin: true,
			HasMax: true,
		})
	}
	controls = append(controls, core.ParameterControl{
		Key:    "nside",
		Label:  "Resolution",
		Step:   1,
		Min:    1,
		Max:    MaxResolution,
		HasMin: true,
		HasMax: true,
	})
	return controls
}

// SetIntParameter applies a HUD adjustment, clamped to the control bounds.
func (w *World) SetIntParameter(key string, value int) bool {
	for _, ctrl := range w.ParameterControls() {
		if ctrl.Key != key {
			continue
		}
		value = ctrl.Clamp(value)
		if key == "nside" {
			if value == w.cfg.Nside {
				return true
			}
			if err := w.SetResolution(value); err != nil {
				logger.Warningf("%v", err)
				return false
			}
			return true
		}
		t, _ := life.ParseThreshold(key)
		return w.SetRuleThreshold(t, value)
	}
	return false
}
