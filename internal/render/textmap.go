package render

import (
	"strings"

	"sphere-ca/internal/core"
)

// TextRows renders a rasterized map as one string per row. Non-zero cells
// use alive, zero cells use dead. offset pans the map east by that many
// columns, wrapping around in longitude.
func TextRows(grid *core.ByteGrid, offset int, alive, dead string) []string {
	rows := make([]string, grid.H)
	var b strings.Builder
	for y := 0; y < grid.H; y++ {
		b.Reset()
		for x := 0; x < grid.W; x++ {
			if grid.At(x+offset, y) != 0 {
				b.WriteString(alive)
			} else {
				b.WriteString(dead)
			}
		}
		rows[y] = b.String()
	}
	return rows
}
