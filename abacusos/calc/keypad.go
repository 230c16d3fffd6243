package calc

import "image/color"

const (
	KeypadRows = 5
	KeypadCols = 4
)

// AccentColor is the default colour of operator captions and the "=" button.
var AccentColor = color.RGBA{R: 0x00, G: 0x22, B: 0x70, A: 0xff}

// Button describes one keypad button.
//
// A zero colour (alpha 0) means the renderer should use its theme default.
type Button struct {
	Text       string
	Key        Key
	Background color.RGBA
	TextColor  color.RGBA
}

// Keypad is the fixed button grid, row-major.
type Keypad [KeypadRows][KeypadCols]Button

// DefaultKeypad returns the grid with the default accent colour.
func DefaultKeypad() Keypad {
	return NewKeypad(AccentColor)
}

// NewKeypad returns the grid using accent for operator captions and the
// "=" background.
func NewKeypad(accent color.RGBA) Keypad {
	digit := func(r rune) Button {
		return Button{Text: string(r), Key: Digit(r)}
	}
	fn := func(k Key) Button {
		return Button{Text: k.String(), Key: k, TextColor: accent}
	}

	return Keypad{
		{fn(Clear), fn(Op('^')), fn(Op('/')), fn(Backspace)},
		{digit('7'), digit('8'), digit('9'), fn(Op('*'))},
		{digit('4'), digit('5'), digit('6'), fn(Op('+'))},
		{digit('3'), digit('2'), digit('1'), fn(Minus)},
		{digit('0'), fn(Percent), fn(Digit('.')), {Text: "=", Key: Equals, Background: accent}},
	}
}

// Lookup returns the position of the button for k.
func (p *Keypad) Lookup(k Key) (row, col int, ok bool) {
	for r := range p {
		for c := range p[r] {
			if p[r][c].Key == k {
				return r, c, true
			}
		}
	}
	return 0, 0, false
}

// Labels returns the button captions row by row.
func (p *Keypad) Labels() [][]string {
	out := make([][]string, 0, KeypadRows)
	for r := range p {
		row := make([]string, 0, KeypadCols)
		for c := range p[r] {
			row = append(row, p[r][c].Text)
		}
		out = append(out, row)
	}
	return out
}
