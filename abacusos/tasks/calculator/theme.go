package calculator

import (
	"image/color"

	"abacus/abacusos/calc"
)

// Theme holds the screen colours. Keypad buttons with their own colours
// override ButtonBackground and ButtonText.
type Theme struct {
	Background       color.RGBA
	DisplayText      color.RGBA
	ButtonBackground color.RGBA
	ButtonText       color.RGBA
	Accent           color.RGBA
	Pressed          color.RGBA
}

func DefaultTheme() Theme {
	return Theme{
		Background:       color.RGBA{R: 0x29, G: 0x2d, B: 0x36, A: 0xff},
		DisplayText:      color.RGBA{R: 0xee, G: 0xe4, B: 0xe4, A: 0xff},
		ButtonBackground: color.RGBA{R: 0x22, G: 0x25, B: 0x2d, A: 0xff},
		ButtonText:       color.RGBA{R: 0xee, G: 0xe4, B: 0xe4, A: 0xff},
		Accent:           calc.AccentColor,
		Pressed:          color.RGBA{R: 0x4a, G: 0x50, B: 0x5e, A: 0xff},
	}
}
