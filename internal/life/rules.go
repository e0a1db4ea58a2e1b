package life

import "fmt"

// RuleSet holds the birth and death thresholds. No relation between the
// fields is enforced: a reproduction window with Min > Max simply never
// produces births.
type RuleSet struct {
	Loneliness      int // die if fewer alive neighbours than this
	Overpopulation  int // die if more alive neighbours than this
	ReproductionMin int // born if at least this many
	ReproductionMax int // born if no more than this many
}

// DefaultRules returns Conway's B3/S23 thresholds.
func DefaultRules() RuleSet {
	return RuleSet{
		Loneliness:      2,
		Overpopulation:  3,
		ReproductionMin: 3,
		ReproductionMax: 3,
	}
}

// Next reports whether a cell with the given state and alive neighbour
// count is alive in the following generation.
func (r RuleSet) Next(alive bool, neighbors int) bool {
	if alive {
		return neighbors >= r.Loneliness && neighbors <= r.Overpopulation
	}
	return neighbors >= r.ReproductionMin && neighbors <= r.ReproductionMax
}

// Threshold selects one of the four RuleSet fields.
type Threshold int

const (
	Loneliness Threshold = iota
	Overpopulation
	ReproductionMin
	ReproductionMax
)

// Thresholds lists every selector in display order.
var Thresholds = []Threshold{Loneliness, Overpopulation, ReproductionMin, ReproductionMax}

var thresholdKeys = [...]string{
	Loneliness:      "loneliness",
	Overpopulation:  "overpopulation",
	ReproductionMin: "reproduction_min",
	ReproductionMax: "reproduction_max",
}

var thresholdLabels = [...]string{
	Loneliness:      "Loneliness Threshold",
	Overpopulation:  "Overpopulation Threshold",
	ReproductionMin: "Reproduction Min",
	ReproductionMax: "Reproduction Max",
}

func (t Threshold) valid() bool { return t >= Loneliness && t <= ReproductionMax }

// Key returns the snake_case configuration key for t.
func (t Threshold) Key() string {
	if !t.valid() {
		return fmt.Sprintf("threshold(%d)", int(t))
	}
	return thresholdKeys[t]
}

// String returns a human readable label.
func (t Threshold) String() string {
	if !t.valid() {
		return fmt.Sprintf("Threshold(%d)", int(t))
	}
	return thresholdLabels[t]
}

// ParseThreshold maps a configuration key back to its selector.
func ParseThreshold(key string) (Threshold, bool) {
	for _, t := range Thresholds {
		if thresholdKeys[t] == key {
			return t, true
		}
	}
	return 0, false
}

// Get returns the value of the selected threshold.
func (r RuleSet) Get(t Threshold) int {
	switch t {
	case Loneliness:
		return r.Loneliness
	case Overpopulation:
		return r.Overpopulation
	case ReproductionMin:
		return r.ReproductionMin
	case ReproductionMax:
		return r.ReproductionMax
	}
	return 0
}

// Set updates the selected threshold. It reports false for an unknown
// selector.
func (r *RuleSet) Set(t Threshold, v int) bool {
	switch t {
	case Loneliness:
		r.Loneliness = v
	case Overpopulation:
		r.Overpopulation = v
	case ReproductionMin:
		r.ReproductionMin = v
	case ReproductionMax:
		r.ReproductionMax = v
	default:
		return false
	}
	return true
}

// String formats the rules as L/O/Rmin-Rmax.
func (r RuleSet) String() string {
	return fmt.Sprintf("L%d/O%d/R%d-%d", r.Loneliness, r.Overpopulation, r.ReproductionMin, r.ReproductionMax)
}
