// Package layout computes the calculator screen geometry.
package layout

import (
	"image"

	"abacus/abacusos/calc"
)

// Padding is the inset between a cell edge and the drawn button.
const Padding = 4

// Layout splits a framebuffer into the display area and the button grid.
type Layout struct {
	Width  int
	Height int

	// Display is the text area above the grid.
	Display image.Rectangle

	top   int
	cellW int
	cellH int
}

// Compute returns the layout for a w x h framebuffer.
//
// The display takes a quarter of the height; the remainder is divided into
// calc.KeypadRows x calc.KeypadCols equal cells. Leftover pixels from integer
// division stay at the right and bottom edges.
func Compute(w, h int) Layout {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	top := h / 4
	l := Layout{
		Width:   w,
		Height:  h,
		Display: image.Rect(0, 0, w, top),
		top:     top,
		cellW:   w / calc.KeypadCols,
		cellH:   (h - top) / calc.KeypadRows,
	}
	return l
}

// Grid returns the rectangle covered by all button cells.
func (l Layout) Grid() image.Rectangle {
	return image.Rect(0, l.top, l.cellW*calc.KeypadCols, l.top+l.cellH*calc.KeypadRows)
}

// Cell returns the full cell at row, col.
func (l Layout) Cell(row, col int) image.Rectangle {
	x := col * l.cellW
	y := l.top + row*l.cellH
	return image.Rect(x, y, x+l.cellW, y+l.cellH)
}

// Button returns the drawn button area of the cell at row, col.
func (l Layout) Button(row, col int) image.Rectangle {
	r := l.Cell(row, col).Inset(Padding)
	if r.Empty() {
		return l.Cell(row, col)
	}
	return r
}

// HitTest returns the cell under (x, y). Padding counts as part of its cell.
func (l Layout) HitTest(x, y int) (row, col int, ok bool) {
	if l.cellW <= 0 || l.cellH <= 0 {
		return 0, 0, false
	}
	if !image.Pt(x, y).In(l.Grid()) {
		return 0, 0, false
	}
	return (y - l.top) / l.cellH, x / l.cellW, true
}
