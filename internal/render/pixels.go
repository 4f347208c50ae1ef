package render

import (
	"image/color"

	"pathviz/internal/core"
)

// Palette indices for encoded cells.
const (
	ShadeFree uint8 = iota
	ShadeStart
	ShadeEnd
	ShadeBarrier
	ShadeOpen
	ShadeClosed
	ShadePath
	shadeCount
)

// DefaultPalette returns the cell colors indexed by shade.
func DefaultPalette() []color.RGBA {
	palette := make([]color.RGBA, shadeCount)
	palette[ShadeFree] = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	palette[ShadeStart] = color.RGBA{R: 0, G: 255, B: 0, A: 255}
	palette[ShadeEnd] = color.RGBA{R: 255, G: 215, B: 0, A: 255}
	palette[ShadeBarrier] = color.RGBA{R: 95, G: 158, B: 160, A: 255}
	palette[ShadeOpen] = color.RGBA{R: 255, G: 192, B: 203, A: 255}
	palette[ShadeClosed] = color.RGBA{R: 245, G: 245, B: 220, A: 255}
	palette[ShadePath] = color.RGBA{R: 255, G: 165, B: 0, A: 255}
	return palette
}

// GridLineColor is drawn between cells.
var GridLineColor = color.RGBA{R: 221, G: 160, B: 221, A: 255}

// Shade picks the palette index for a cell. Start, end and barrier roles
// always win over the search status.
func Shade(c core.Cell) uint8 {
	switch c.Role {
	case core.RoleStart:
		return ShadeStart
	case core.RoleEnd:
		return ShadeEnd
	case core.RoleBarrier:
		return ShadeBarrier
	}
	switch c.Status {
	case core.StatusOpen:
		return ShadeOpen
	case core.StatusClosed:
		return ShadeClosed
	case core.StatusPath:
		return ShadePath
	default:
		return ShadeFree
	}
}

// encodeCells writes one shade per cell into dst, which must hold at least
// len(cells) entries.
func encodeCells(dst []uint8, cells []core.Cell) {
	for i := range cells {
		dst[i] = Shade(cells[i])
	}
}

// fillPaletteRGBA converts shades into RGBA pixels using a palette. When
// the palette is empty the buffer is cleared to transparent black.
func fillPaletteRGBA(buf []byte, shades []uint8, palette []color.RGBA) {
	if len(palette) == 0 {
		clear(buf[:4*len(shades)])
		return
	}
	last := len(palette) - 1
	for i, s := range shades {
		idx := int(s)
		if idx > last {
			idx = last
		}
		col := palette[idx]
		base := i * 4
		buf[base+0] = col.R
		buf[base+1] = col.G
		buf[base+2] = col.B
		buf[base+3] = col.A
	}
}
