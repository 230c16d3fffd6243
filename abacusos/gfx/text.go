package gfx

import (
	"image"
	"image/color"

	"tinygo.org/x/tinyfont"
)

// TextWidth returns the advance width of s in font.
func TextWidth(font tinyfont.Fonter, s string) int {
	_, outbox := tinyfont.LineWidth(font, s)
	return int(outbox)
}

// capHeight returns the height and baseline offset of the glyph '0', used to
// centre digits and operators alike.
func capHeight(font tinyfont.Fonter) (height, yOffset int) {
	info := font.GetGlyph('0').Info()
	return int(info.Height), int(info.YOffset)
}

// baseline returns the y coordinate that vertically centres font in r.
func baseline(font tinyfont.Fonter, r image.Rectangle) int16 {
	h, yoff := capHeight(font)
	return int16(r.Min.Y + (r.Dy()-h)/2 - yoff)
}

// WriteCentered draws s centred in r.
func (d *Display) WriteCentered(font tinyfont.Fonter, r image.Rectangle, s string, c color.RGBA) {
	x := r.Min.X + (r.Dx()-TextWidth(font, s))/2
	tinyfont.WriteLine(d, font, int16(x), baseline(font, r), s, c)
}

// WriteBottomRight draws s in the bottom-right corner of r, inset by margin
// on both edges.
func (d *Display) WriteBottomRight(font tinyfont.Fonter, r image.Rectangle, margin int, s string, c color.RGBA) {
	x := r.Max.X - margin - TextWidth(font, s)
	tinyfont.WriteLine(d, font, int16(x), int16(r.Max.Y-margin), s, c)
}

// WriteLine draws s with its top-left cell corner at (x, y) and returns the
// y coordinate of the next line.
func (d *Display) WriteLine(font tinyfont.Fonter, x, y int, s string, c color.RGBA) int {
	adv := int(font.GetYAdvance())
	_, yoff := capHeight(font)
	tinyfont.WriteLine(d, font, int16(x), int16(y-yoff), s, c)
	return y + adv
}
