//go:build ebiten

package render

import (
	"image/color"

	"pathviz/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
)

// GridPainter keeps one pixel per cell in an offscreen image and scales it
// up to the cell size when drawing.
type GridPainter struct {
	rows, cols int
	palette    []color.RGBA
	img        *ebiten.Image
	shades     []uint8
	buf        []byte
}

// NewGridPainter allocates a painter for a rows*cols grid.
func NewGridPainter(rows, cols int) *GridPainter {
	return &GridPainter{
		rows:    rows,
		cols:    cols,
		palette: DefaultPalette(),
		img:     ebiten.NewImage(cols, rows),
		shades:  make([]uint8, rows*cols),
		buf:     make([]byte, 4*rows*cols),
	}
}

// Blit uploads the grid's current roles and statuses and draws them.
func (gp *GridPainter) Blit(dst *ebiten.Image, g *core.Grid, cellSize int) {
	cells := g.Cells()
	if len(cells) != gp.rows*gp.cols {
		return
	}
	encodeCells(gp.shades, cells)
	fillPaletteRGBA(gp.buf, gp.shades, gp.palette)
	gp.img.ReplacePixels(gp.buf)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(cellSize), float64(cellSize))
	dst.DrawImage(gp.img, op)
}
