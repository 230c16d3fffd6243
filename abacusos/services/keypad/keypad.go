// Package keypad turns keyboard and pointer events into MsgKeyPress messages.
package keypad

import (
	"unicode/utf8"

	"abacus/abacusos/calc"
	"abacus/abacusos/kernel"
	"abacus/abacusos/layout"
	"abacus/abacusos/proto"
	"abacus/hal"
)

// sendRetries bounds how many ticks a press waits for room in the
// calculator's queue before it is dropped.
const sendRetries = 50

type Service struct {
	in     hal.Input
	layout layout.Layout
	pad    calc.Keypad
	out    kernel.Capability
}

// New returns a service that sends presses to out. Pointer presses are
// hit-tested against l.
func New(in hal.Input, l layout.Layout, out kernel.Capability) *Service {
	return &Service{in: in, layout: l, pad: calc.DefaultKeypad(), out: out}
}

func (s *Service) Run(ctx *kernel.Context) {
	if s.in == nil {
		return
	}
	var keys <-chan hal.KeyEvent
	if kbd := s.in.Keyboard(); kbd != nil {
		keys = kbd.Events()
	}
	var taps <-chan hal.PointerEvent
	if ptr := s.in.Pointer(); ptr != nil {
		taps = ptr.Events()
	}

	for keys != nil || taps != nil {
		var label string
		var ok bool
		select {
		case ev, open := <-keys:
			if !open {
				keys = nil
				continue
			}
			label, ok = Label(ev)
		case ev, open := <-taps:
			if !open {
				taps = nil
				continue
			}
			label, ok = s.hit(ev)
		}
		if !ok {
			continue
		}
		ctx.SendToCapRetry(s.out, uint16(proto.MsgKeyPress), proto.KeyPressPayload(label), kernel.Capability{}, sendRetries)
	}
}

func (s *Service) hit(ev hal.PointerEvent) (string, bool) {
	if !ev.Press {
		return "", false
	}
	row, col, ok := s.layout.HitTest(ev.X, ev.Y)
	if !ok {
		return "", false
	}
	return s.pad[row][col].Text, true
}

// Label maps a key press to the caption of the keypad button it stands for.
// Releases and keys without a button report false.
func Label(ev hal.KeyEvent) (string, bool) {
	if !ev.Press {
		return "", false
	}
	switch ev.Code {
	case hal.KeyEnter:
		return "=", true
	case hal.KeyBackspace, hal.KeyDelete:
		return calc.LabelBackspace, true
	case hal.KeyEscape:
		return calc.LabelClear, true
	}

	switch r := ev.Rune; {
	case r >= '0' && r <= '9':
		return string(r), true
	case r == '.' || r == ',':
		return ".", true
	case r == 'x' || r == 'X':
		return "*", true
	case r == 'c' || r == 'C':
		return calc.LabelClear, true
	case r == '\r' || r == '\n':
		return "=", true
	case r == '\b' || r == 0x7f:
		return calc.LabelBackspace, true
	default:
		if _, ok := calc.ParseKey(string(r)); ok {
			return string(r), true
		}
		return "", false
	}
}

// Event returns a key press that Label maps back to k's label.
func Event(k calc.Key) hal.KeyEvent {
	switch k.Kind {
	case calc.KeyClear:
		return hal.KeyEvent{Code: hal.KeyEscape, Press: true}
	case calc.KeyBackspace:
		return hal.KeyEvent{Code: hal.KeyBackspace, Press: true}
	case calc.KeyEquals:
		return hal.KeyEvent{Code: hal.KeyEnter, Press: true}
	}
	r, _ := utf8.DecodeRuneInString(k.String())
	return hal.KeyEvent{Press: true, Rune: r}
}
