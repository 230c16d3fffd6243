package gfx

import (
	"image"
	"image/color"
	"testing"

	"abacus/hal"

	"tinygo.org/x/tinyfont/freesans"
)

type memFB struct {
	w, h     int
	buf      []byte
	damaged  image.Rectangle
	presents int
}

func newMemFB(w, h int) *memFB {
	return &memFB{w: w, h: h, buf: make([]byte, w*h*2)}
}

func (f *memFB) Width() int               { return f.w }
func (f *memFB) Height() int              { return f.h }
func (f *memFB) Format() hal.PixelFormat  { return hal.PixelFormatRGB565 }
func (f *memFB) StrideBytes() int         { return f.w * 2 }
func (f *memFB) Buffer() []byte           { return f.buf }
func (f *memFB) ClearRGB(r, g, b uint8)   {}
func (f *memFB) Damage(r image.Rectangle) { f.damaged = f.damaged.Union(r) }

func (f *memFB) Present() error {
	f.presents++
	return nil
}

func (f *memFB) at(x, y int) uint16 {
	o := (y*f.w + x) * 2
	return uint16(f.buf[o]) | uint16(f.buf[o+1])<<8
}

func (f *memFB) count(pixel uint16) (n int) {
	for y := 0; y < f.h; y++ {
		for x := 0; x < f.w; x++ {
			if f.at(x, y) == pixel {
				n++
			}
		}
	}
	return n
}

var white = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}

func TestFillClipsAndDamages(t *testing.T) {
	fb := newMemFB(10, 10)
	d := New(fb)
	d.Fill(image.Rect(-5, 8, 3, 20), white)

	if got := fb.count(0xFFFF); got != 3*2 {
		t.Fatalf("filled %d pixels, want 6", got)
	}
	if want := image.Rect(0, 8, 3, 10); fb.damaged != want {
		t.Fatalf("damage = %v, want %v", fb.damaged, want)
	}
}

func TestSetPixelIgnoresOutOfBounds(t *testing.T) {
	fb := newMemFB(4, 4)
	d := New(fb)
	d.SetPixel(-1, 0, white)
	d.SetPixel(4, 0, white)
	d.SetPixel(1, 2, white)
	if fb.count(0xFFFF) != 1 || fb.at(1, 2) != 0xFFFF {
		t.Fatal("only (1,2) should be set")
	}
	if err := d.Display(); err != nil || fb.presents != 1 {
		t.Fatalf("Display: %v, presents=%d", err, fb.presents)
	}
}

func TestFillRoundedCutsCorners(t *testing.T) {
	fb := newMemFB(20, 20)
	d := New(fb)
	d.FillRounded(image.Rect(0, 0, 20, 20), 6, white)

	if fb.at(0, 0) != 0 || fb.at(19, 19) != 0 || fb.at(19, 0) != 0 || fb.at(0, 19) != 0 {
		t.Fatal("corners should stay unpainted")
	}
	if fb.at(10, 0) != 0xFFFF || fb.at(0, 10) != 0xFFFF || fb.at(10, 10) != 0xFFFF {
		t.Fatal("edges and centre should be painted")
	}

	fb2 := newMemFB(20, 20)
	New(fb2).FillRounded(image.Rect(0, 0, 20, 20), 0, white)
	if fb2.count(0xFFFF) != 400 {
		t.Fatal("radius 0 should fill the whole rectangle")
	}
}

func TestWriteCenteredDrawsInsideRect(t *testing.T) {
	fb := newMemFB(100, 60)
	d := New(fb)
	r := image.Rect(20, 10, 80, 50)
	d.WriteCentered(&freesans.Bold12pt7b, r, "8", white)

	n := 0
	for y := 0; y < fb.h; y++ {
		for x := 0; x < fb.w; x++ {
			if fb.at(x, y) != 0xFFFF {
				continue
			}
			n++
			if !image.Pt(x, y).In(r) {
				t.Fatalf("pixel (%d,%d) outside %v", x, y, r)
			}
		}
	}
	if n == 0 {
		t.Fatal("nothing drawn")
	}
}

func TestNewRejectsUnsupportedFramebuffer(t *testing.T) {
	if New(nil) != nil {
		t.Fatal("New(nil) should be nil")
	}
}

func TestRGB565(t *testing.T) {
	if got := RGB565(color.RGBA{R: 0x29, G: 0x2d, B: 0x36}); got != 0x2966 {
		t.Fatalf("RGB565 = %#04x", got)
	}
}
