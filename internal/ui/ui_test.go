package ui

import (
	"testing"

	"sphere-ca/internal/core"
)

func TestAdjustedValueRespectsBounds(t *testing.T) {
	ctrl := core.ParameterControl{Key: "loneliness", Step: 1, Min: 1, Max: 8, HasMin: true, HasMax: true}
	cases := []struct {
		current, direction, want int
		ok                       bool
	}{
		{current: 3, direction: 1, want: 4, ok: true},
		{current: 3, direction: -1, want: 2, ok: true},
		{current: 8, direction: 1, want: 8, ok: false},
		{current: 1, direction: -1, want: 1, ok: false},
		{current: 5, direction: 0, want: 5, ok: false},
	}
	for _, tc := range cases {
		got, ok := adjustedValue(ctrl, tc.current, tc.direction)
		if got != tc.want || ok != tc.ok {
			t.Fatalf("adjustedValue(%d, %d) = %d, %v; want %d, %v", tc.current, tc.direction, got, ok, tc.want, tc.ok)
		}
	}

	unbounded := core.ParameterControl{Key: "birth"}
	if got, ok := adjustedValue(unbounded, 0, -1); got != -1 || !ok {
		t.Fatalf("unbounded step = %d, %v", got, ok)
	}
}
