// Package gfx adapts a hal.Framebuffer to the tinygo driver and font APIs.
package gfx

import (
	"image"
	"image/color"

	"abacus/hal"

	"tinygo.org/x/drivers"
)

var _ drivers.Displayer = (*Display)(nil)

// Display draws into an RGB565 framebuffer. Writes are reported to the
// framebuffer's damage tracker when it has one.
type Display struct {
	fb  hal.Framebuffer
	buf []byte
	dmg hal.Damager
}

// New returns a Display over fb, or nil if fb is not RGB565.
func New(fb hal.Framebuffer) *Display {
	if fb == nil || fb.Format() != hal.PixelFormatRGB565 || fb.Buffer() == nil {
		return nil
	}
	d := &Display{fb: fb, buf: fb.Buffer()}
	d.dmg, _ = fb.(hal.Damager)
	return d
}

func (d *Display) Size() (x, y int16) {
	return int16(d.fb.Width()), int16(d.fb.Height())
}

// Bounds returns the framebuffer rectangle.
func (d *Display) Bounds() image.Rectangle {
	return image.Rect(0, 0, d.fb.Width(), d.fb.Height())
}

func (d *Display) SetPixel(x, y int16, c color.RGBA) {
	ix, iy := int(x), int(y)
	if ix < 0 || ix >= d.fb.Width() || iy < 0 || iy >= d.fb.Height() {
		return
	}
	d.put(iy*d.fb.StrideBytes()+ix*2, RGB565(c))
	d.damage(image.Rect(ix, iy, ix+1, iy+1))
}

// Display presents the framebuffer.
func (d *Display) Display() error {
	return d.fb.Present()
}

func (d *Display) FillRectangle(x, y, width, height int16, c color.RGBA) error {
	d.Fill(image.Rect(int(x), int(y), int(x)+int(width), int(y)+int(height)), c)
	return nil
}

// Fill paints r clipped to the framebuffer.
func (d *Display) Fill(r image.Rectangle, c color.RGBA) {
	r = r.Intersect(d.Bounds())
	if r.Empty() {
		return
	}
	pixel := RGB565(c)
	stride := d.fb.StrideBytes()
	for py := r.Min.Y; py < r.Max.Y; py++ {
		row := py * stride
		for px := r.Min.X; px < r.Max.X; px++ {
			d.put(row+px*2, pixel)
		}
	}
	d.damage(r)
}

// FillRounded paints r with corners of the given radius cut to quarter
// circles.
func (d *Display) FillRounded(r image.Rectangle, radius int, c color.RGBA) {
	if limit := min(r.Dx(), r.Dy()) / 2; radius > limit {
		radius = limit
	}
	if radius <= 0 {
		d.Fill(r, c)
		return
	}

	d.Fill(image.Rect(r.Min.X, r.Min.Y+radius, r.Max.X, r.Max.Y-radius), c)
	for i := 0; i < radius; i++ {
		// Inset of row i from the top and bottom edges.
		dy := radius - i
		inset := radius - isqrt(radius*radius-dy*dy)
		d.Fill(image.Rect(r.Min.X+inset, r.Min.Y+i, r.Max.X-inset, r.Min.Y+i+1), c)
		d.Fill(image.Rect(r.Min.X+inset, r.Max.Y-1-i, r.Max.X-inset, r.Max.Y-i), c)
	}
}

func (d *Display) put(off int, pixel uint16) {
	if off < 0 || off+1 >= len(d.buf) {
		return
	}
	d.buf[off] = byte(pixel)
	d.buf[off+1] = byte(pixel >> 8)
}

func (d *Display) damage(r image.Rectangle) {
	if d.dmg != nil {
		d.dmg.Damage(r)
	}
}

// RGB565 packs c into 16 bits, dropping alpha.
func RGB565(c color.RGBA) uint16 {
	return uint16((uint16(c.R>>3)&0x1F)<<11 | (uint16(c.G>>2)&0x3F)<<5 | (uint16(c.B>>3) & 0x1F))
}

func isqrt(n int) int {
	if n <= 0 {
		return 0
	}
	x := n
	y := (x + 1) / 2
	for y < x {
		x = y
		y = (x + n/x) / 2
	}
	return x
}
