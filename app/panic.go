package app

import (
	"fmt"
	"image/color"
	"strings"
	"unicode/utf8"

	"abacus/abacusos/gfx"
	"abacus/abacusos/kernel"
	"abacus/hal"

	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
)

var (
	panicBackground = color.RGBA{R: 0x70, G: 0x00, B: 0x10, A: 0xff}
	panicText       = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
)

func installPanicHandler(h hal.HAL) {
	kernel.SetPanicHandler(func(info kernel.PanicInfo) {
		lines := panicLines(info)
		if l := h.Logger(); l != nil {
			for _, line := range lines {
				l.WriteLineString(line)
			}
		}

		if disp := h.Display(); disp != nil {
			if d := gfx.New(disp.Framebuffer()); d != nil {
				drawPanic(d, &proggy.TinySZ8pt7b, lines)
				_ = d.Display()
			}
		}
		select {}
	})
}

func panicLines(info kernel.PanicInfo) []string {
	lines := []string{
		fmt.Sprintf("abacus panic: task=%d", info.TaskID),
		fmt.Sprintf("panic: %v", info.Value),
	}
	if len(info.Stack) == 0 {
		return append(lines, "stack: unavailable")
	}
	for _, line := range strings.Split(string(info.Stack), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// drawPanic fills the screen and writes lines top to bottom, wrapping long
// lines and stopping at the bottom edge.
func drawPanic(d *gfx.Display, font tinyfont.Fonter, lines []string) {
	bounds := d.Bounds()
	d.Fill(bounds, panicBackground)

	const margin = 4
	width := bounds.Dx() - 2*margin
	adv := int(font.GetYAdvance())
	y := margin
	for _, line := range lines {
		for _, part := range wrap(font, line, width) {
			if y+adv > bounds.Max.Y {
				return
			}
			y = d.WriteLine(font, margin, y, part, panicText)
		}
	}
}

// wrap splits s into pieces no wider than width. A single rune wider than
// width still gets its own piece.
func wrap(font tinyfont.Fonter, s string, width int) []string {
	var out []string
	for s != "" {
		end := len(s)
		for gfx.TextWidth(font, s[:end]) > width {
			_, size := utf8.DecodeLastRuneInString(s[:end])
			if end-size == 0 {
				break
			}
			end -= size
		}
		out = append(out, s[:end])
		s = strings.TrimLeft(s[end:], " ")
	}
	return out
}
