package render

import (
	"image/color"
	"math"
)

var (
	// AliveColor and DeadColor are the cell dot colours.
	AliveColor = color.RGBA{R: 153, G: 204, B: 230, A: 255}
	DeadColor  = color.RGBA{R: 26, G: 26, B: 26, A: 255}
	// BackgroundColor fills the window and the backing sphere.
	BackgroundColor = color.RGBA{R: 13, G: 15, B: 20, A: 255}
)

// BrainPalette colours dead, firing and dying cells.
var BrainPalette = []color.RGBA{
	DeadColor,
	{R: 240, G: 240, B: 255, A: 255},
	{R: 60, G: 90, B: 200, A: 255},
}

// OptimalAlive is the alive fraction shown in pure green.
const OptimalAlive = 0.30

// HealthColor maps an alive fraction to a red-to-green colour: green at
// OptimalAlive, red at 0 and 1.
func HealthColor(fraction float64) color.RGBA {
	d := math.Min(1, math.Abs(fraction-OptimalAlive)/(1-OptimalAlive))
	return color.RGBA{
		R: uint8(math.Round(255 * d)),
		G: uint8(math.Round(255 * (1 - d))),
		A: 204,
	}
}

// FillCells writes one RGBA pixel per cell into buf. Binary sims use the
// alive and dead colours; multi-state sims use palette.
func FillCells(buf []byte, cells []uint8, palette []color.RGBA) {
	if palette == nil {
		fillBinaryRGBA(buf, cells, AliveColor, DeadColor)
		return
	}
	fillPaletteRGBA(buf, cells, palette)
}

// fillBinaryRGBA converts binary cell data (0/1) into RGBA pixels in buf.
func fillBinaryRGBA(buf []byte, cells []uint8, on, off color.Color) {
	rOn, gOn, bOn, aOn := on.RGBA()
	rOff, gOff, bOff, aOff := off.RGBA()
	for i, c := range cells {
		base := i * 4
		if c != 0 {
			buf[base+0] = uint8(rOn >> 8)
			buf[base+1] = uint8(gOn >> 8)
			buf[base+2] = uint8(bOn >> 8)
			buf[base+3] = uint8(aOn >> 8)
			continue
		}
		buf[base+0] = uint8(rOff >> 8)
		buf[base+1] = uint8(gOff >> 8)
		buf[base+2] = uint8(bOff >> 8)
		buf[base+3] = uint8(aOff >> 8)
	}
}

// fillPaletteRGBA converts cell values into RGBA pixels using a palette. When
// the palette is empty the buffer is cleared to transparent black.
func fillPaletteRGBA(buf []byte, cells []uint8, palette []color.RGBA) {
	if len(palette) == 0 {
		clear(buf[:len(cells)*4])
		return
	}
	last := len(palette) - 1
	for i, c := range cells {
		col := palette[min(int(c), last)]
		base := i * 4
		buf[base+0] = col.R
		buf[base+1] = col.G
		buf[base+2] = col.B
		buf[base+3] = col.A
	}
}

// CellColor returns the colour of a single cell value.
func CellColor(v uint8, palette []color.RGBA) color.RGBA {
	if palette == nil {
		if v != 0 {
			return AliveColor
		}
		return DeadColor
	}
	if len(palette) == 0 {
		return color.RGBA{}
	}
	return palette[min(int(v), len(palette)-1)]
}
