package ui

import "sphere-ca/internal/core"

// Action is a HUD button press the game loop must carry out.
type Action int

const (
	ActionNone Action = iota
	ActionReset
	ActionDefaultRules
)

// adjustedValue returns the value one step from current in direction, and
// whether that step stays inside the control bounds and changes anything.
func adjustedValue(ctrl core.ParameterControl, current, direction int) (int, bool) {
	if direction == 0 {
		return current, false
	}
	step := ctrl.Step
	if step <= 0 {
		step = 1
	}
	target := ctrl.Clamp(current + direction*step)
	return target, target != current
}
