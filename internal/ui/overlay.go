//go:build ebiten

package ui

import (
	"image/color"

	"pathviz/internal/render"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Overlay draws the grid lines and a hover outline on top of the cells.
type Overlay struct {
	rows, cols int
	cellSize   int
	showLines  bool
	showHover  bool
	pixel      *ebiten.Image
}

// NewOverlay constructs an overlay for a rows*cols grid drawn at cellSize.
func NewOverlay(rows, cols, cellSize int) *Overlay {
	o := &Overlay{rows: rows, cols: cols, cellSize: cellSize, showLines: true, showHover: true}
	o.pixel = ebiten.NewImage(1, 1)
	o.pixel.Fill(color.White)
	return o
}

// Update toggles grid lines with G and the hover outline with H.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyG) {
		o.showLines = !o.showLines
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		o.showHover = !o.showHover
	}
}

// Draw renders the overlay onto the provided screen.
func (o *Overlay) Draw(screen *ebiten.Image) {
	size := o.cellSize
	if size <= 0 {
		size = 1
	}
	width := float64(o.cols * size)
	height := float64(o.rows * size)

	if o.showLines {
		for r := 0; r <= o.rows; r++ {
			o.drawRect(screen, 0, float64(r*size), width, 1, render.GridLineColor)
		}
		for c := 0; c <= o.cols; c++ {
			o.drawRect(screen, float64(c*size), 0, 1, height, render.GridLineColor)
		}
	}

	if o.showHover {
		mx, my := ebiten.CursorPosition()
		if mx < 0 || my < 0 || mx >= o.cols*size || my >= o.rows*size {
			return
		}
		x := float64(mx / size * size)
		y := float64(my / size * size)
		s := float64(size)
		outline := color.RGBA{R: 40, G: 40, B: 48, A: 200}
		o.drawRect(screen, x, y, s, 2, outline)
		o.drawRect(screen, x, y+s-2, s, 2, outline)
		o.drawRect(screen, x, y, 2, s, outline)
		o.drawRect(screen, x+s-2, y, 2, s, outline)
	}
}

func (o *Overlay) drawRect(screen *ebiten.Image, x, y, w, h float64, col color.RGBA) {
	if o.pixel == nil || w <= 0 || h <= 0 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(w, h)
	op.GeoM.Translate(x, y)
	op.ColorM.Scale(float64(col.R)/255.0, float64(col.G)/255.0, float64(col.B)/255.0, float64(col.A)/255.0)
	screen.DrawImage(o.pixel, op)
}
