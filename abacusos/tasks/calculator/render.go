package calculator

import (
	"unicode/utf8"

	"abacus/abacusos/calc"
	"abacus/abacusos/gfx"

	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/freesans"
)

const displayMargin = 12

// Display fonts, largest first.
var displayFonts = []tinyfont.Fonter{
	&freesans.Bold24pt7b,
	&freesans.Bold18pt7b,
	&freesans.Bold12pt7b,
}

var captionFont tinyfont.Fonter = &freesans.Bold18pt7b

func (t *Task) renderAll() {
	if t.d == nil {
		return
	}
	t.d.Fill(t.d.Bounds(), t.cfg.Theme.Background)
	t.drawDisplay()
	for r := 0; r < calc.KeypadRows; r++ {
		for c := 0; c < calc.KeypadCols; c++ {
			t.drawButton(r, c)
		}
	}
	t.present()
}

func (t *Task) present() {
	if t.d == nil {
		return
	}
	_ = t.d.Display()
}

func (t *Task) drawDisplay() {
	if t.d == nil {
		return
	}
	area := t.layout.Display
	t.d.Fill(area, t.cfg.Theme.Background)
	font, text := fitDisplay(t.state.Display(), area.Dx()-2*displayMargin)
	t.d.WriteBottomRight(font, area, displayMargin, text, t.cfg.Theme.DisplayText)
}

// fitDisplay picks the largest display font that fits s into width pixels.
// If none does, it keeps the rightmost characters behind a "<" marker in the
// smallest font.
func fitDisplay(s string, width int) (tinyfont.Fonter, string) {
	for _, f := range displayFonts {
		if gfx.TextWidth(f, s) <= width {
			return f, s
		}
	}
	f := displayFonts[len(displayFonts)-1]
	for s != "" {
		_, size := utf8.DecodeRuneInString(s)
		s = s[size:]
		if gfx.TextWidth(f, "<"+s) <= width {
			break
		}
	}
	return f, "<" + s
}

func (t *Task) drawButton(row, col int) {
	if t.d == nil {
		return
	}
	b := t.pad[row][col]
	theme := t.cfg.Theme

	bg := theme.ButtonBackground
	if b.Background.A != 0 {
		bg = b.Background
	}
	if t.lit && t.litRow == row && t.litCol == col {
		bg = theme.Pressed
	}
	fg := theme.ButtonText
	if b.TextColor.A != 0 {
		fg = b.TextColor
	}

	cell := t.layout.Cell(row, col)
	t.d.Fill(cell, theme.Background)
	r := t.layout.Button(row, col)
	t.d.FillRounded(r, r.Dy()/2, bg)
	t.d.WriteCentered(captionFont, r, t.caption(b), fg)
}

// caption returns the text drawn on b. The clear button follows the state's
// clear label, and glyphs the font lacks are spelled in ASCII.
func (t *Task) caption(b calc.Button) string {
	switch b.Key {
	case calc.Clear:
		return string(t.state.ClearLabel)
	case calc.Backspace:
		return "<-"
	}
	return b.Text
}
