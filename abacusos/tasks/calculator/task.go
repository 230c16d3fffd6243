// Package calculator is the task that owns the calculator state and draws
// it.
package calculator

import (
	"fmt"

	"abacus/abacusos/calc"
	"abacus/abacusos/gfx"
	"abacus/abacusos/kernel"
	"abacus/abacusos/layout"
	"abacus/abacusos/proto"
	"abacus/hal"
)

// highlightTicks is how long a pressed button stays highlighted.
const highlightTicks = 120

// Config wires optional endpoints into the task.
type Config struct {
	Theme Theme

	// Log receives MsgLogLine and MsgError messages.
	Log kernel.Capability

	// Watcher receives a MsgCalcState after every key press.
	Watcher kernel.Capability
}

type Task struct {
	disp  hal.Display
	ep    kernel.Capability
	cfg   Config
	pad   calc.Keypad
	state calc.State

	d      *gfx.Display
	layout layout.Layout

	lit      bool
	litRow   int
	litCol   int
	litUntil uint64
}

// New returns the task receiving key presses on ep. A zero cfg.Theme means
// DefaultTheme.
func New(disp hal.Display, ep kernel.Capability, cfg Config) *Task {
	if cfg.Theme == (Theme{}) {
		cfg.Theme = DefaultTheme()
	}
	return &Task{
		disp:  disp,
		ep:    ep,
		cfg:   cfg,
		pad:   calc.NewKeypad(cfg.Theme.Accent),
		state: calc.NewState(),
	}
}

func (t *Task) Run(ctx *kernel.Context) {
	ch, ok := ctx.RecvChan(t.ep)
	if !ok {
		return
	}

	if t.disp != nil {
		if fb := t.disp.Framebuffer(); fb != nil {
			t.d = gfx.New(fb)
			t.layout = layout.Compute(fb.Width(), fb.Height())
		}
	}
	t.renderAll()
	t.publish(ctx)

	done := make(chan struct{})
	defer close(done)

	tickCh := make(chan uint64, 16)
	go func() {
		last := ctx.NowTick()
		for {
			select {
			case <-done:
				return
			default:
			}
			last = ctx.WaitTick(last)
			select {
			case tickCh <- last:
			default:
			}
		}
	}()

	for {
		select {
		case msg, ok := <-ch:
			if !ok {
				return
			}
			if proto.Kind(msg.Kind) != proto.MsgKeyPress {
				continue
			}
			label, ok := proto.DecodeKeyPressPayload(msg.Payload())
			if !ok {
				t.reportError(ctx, proto.ErrBadMessage, nil)
				continue
			}
			t.press(ctx, label)

		case now := <-tickCh:
			if t.lit && now >= t.litUntil {
				t.lit = false
				t.drawButton(t.litRow, t.litCol)
				t.present()
			}
		}
	}
}

// press applies one key label to the state.
func (t *Task) press(ctx *kernel.Context, label string) {
	key, ok := calc.ParseKey(label)
	if !ok {
		t.reportError(ctx, proto.ErrUnknownKey, []byte(label))
		return
	}

	prev := t.state
	next, ev := calc.Apply(prev, key)
	t.state = next
	if ev != nil {
		t.logf(ctx, "calc: %s %s %s = %s", ev.A, ev.Operator, ev.B, ev.Result)
	}

	t.drawDisplay()
	if prev.ClearLabel != next.ClearLabel {
		t.drawButton(0, 0)
	}
	if t.lit {
		t.lit = false
		t.drawButton(t.litRow, t.litCol)
	}
	if row, col, ok := t.pad.Lookup(key); ok {
		t.lit = true
		t.litRow, t.litCol = row, col
		t.litUntil = ctx.NowTick() + highlightTicks
		t.drawButton(row, col)
	}
	t.present()
	t.publish(ctx)
}

func (t *Task) publish(ctx *kernel.Context) {
	if !t.cfg.Watcher.Valid() {
		return
	}
	s := proto.CalcState{
		ClearLabel: string(t.state.ClearLabel),
		First:      t.state.First,
		Operator:   t.state.Operator,
		Second:     t.state.Second,
	}
	ctx.SendToCapResult(t.cfg.Watcher, uint16(proto.MsgCalcState), proto.CalcStatePayload(s), kernel.Capability{})
}

func (t *Task) logf(ctx *kernel.Context, format string, args ...any) {
	if !t.cfg.Log.Valid() {
		return
	}
	line := fmt.Sprintf(format, args...)
	ctx.SendToCapResult(t.cfg.Log, uint16(proto.MsgLogLine), proto.LogLinePayload([]byte(line)), kernel.Capability{})
}

func (t *Task) reportError(ctx *kernel.Context, code proto.ErrCode, detail []byte) {
	if !t.cfg.Log.Valid() {
		return
	}
	if len(detail) > kernel.MaxMessageBytes-4 {
		detail = detail[:kernel.MaxMessageBytes-4]
	}
	ctx.SendToCapResult(t.cfg.Log, uint16(proto.MsgError), proto.ErrorPayload(code, proto.MsgKeyPress, detail), kernel.Capability{})
}
