package keypad

import (
	"testing"
	"time"

	"abacus/abacusos/calc"
	"abacus/abacusos/kernel"
	"abacus/abacusos/layout"
	"abacus/abacusos/proto"
	"abacus/hal"
)

func TestLabel(t *testing.T) {
	tests := []struct {
		ev   hal.KeyEvent
		want string
		ok   bool
	}{
		{hal.KeyEvent{Press: true, Rune: '7'}, "7", true},
		{hal.KeyEvent{Press: true, Rune: '.'}, ".", true},
		{hal.KeyEvent{Press: true, Rune: ','}, ".", true},
		{hal.KeyEvent{Press: true, Rune: '+'}, "+", true},
		{hal.KeyEvent{Press: true, Rune: '-'}, "-", true},
		{hal.KeyEvent{Press: true, Rune: '*'}, "*", true},
		{hal.KeyEvent{Press: true, Rune: 'x'}, "*", true},
		{hal.KeyEvent{Press: true, Rune: '/'}, "/", true},
		{hal.KeyEvent{Press: true, Rune: '^'}, "^", true},
		{hal.KeyEvent{Press: true, Rune: '%'}, "%", true},
		{hal.KeyEvent{Press: true, Rune: '='}, "=", true},
		{hal.KeyEvent{Press: true, Rune: 'c'}, "AC", true},
		{hal.KeyEvent{Press: true, Rune: 'C'}, "AC", true},
		{hal.KeyEvent{Press: true, Rune: '\r'}, "=", true},
		{hal.KeyEvent{Press: true, Code: hal.KeyEnter}, "=", true},
		{hal.KeyEvent{Press: true, Code: hal.KeyBackspace}, "⌫", true},
		{hal.KeyEvent{Press: true, Code: hal.KeyDelete}, "⌫", true},
		{hal.KeyEvent{Press: true, Code: hal.KeyEscape}, "AC", true},
		{hal.KeyEvent{Press: false, Rune: '7'}, "", false},
		{hal.KeyEvent{Press: false, Code: hal.KeyEnter}, "", false},
		{hal.KeyEvent{Press: true, Rune: 'q'}, "", false},
		{hal.KeyEvent{Press: true}, "", false},
	}
	for _, tc := range tests {
		got, ok := Label(tc.ev)
		if got != tc.want || ok != tc.ok {
			t.Fatalf("Label(%+v) = %q, %v; want %q, %v", tc.ev, got, ok, tc.want, tc.ok)
		}
	}
}

type fakeInput struct {
	kbd chan hal.KeyEvent
	ptr chan hal.PointerEvent
}

func (in *fakeInput) Keyboard() hal.Keyboard { return keyboard(in.kbd) }
func (in *fakeInput) Pointer() hal.Pointer   { return pointer(in.ptr) }

type keyboard chan hal.KeyEvent

func (k keyboard) Events() <-chan hal.KeyEvent { return k }

type pointer chan hal.PointerEvent

func (p pointer) Events() <-chan hal.PointerEvent { return p }

// collector forwards every key press label it receives to out.
type collector struct {
	ep  kernel.Capability
	out chan string
}

func (c *collector) Run(ctx *kernel.Context) {
	for {
		msg, ok := ctx.Recv(c.ep)
		if !ok {
			return
		}
		if proto.Kind(msg.Kind) != proto.MsgKeyPress {
			continue
		}
		label, ok := proto.DecodeKeyPressPayload(msg.Payload())
		if ok {
			c.out <- label
		}
	}
}

func TestServiceSendsKeyboardAndPointerPresses(t *testing.T) {
	k := kernel.New()
	ep := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)
	out := make(chan string, 16)
	k.AddTask(&collector{ep: ep.Restrict(kernel.RightRecv), out: out})

	in := &fakeInput{kbd: make(chan hal.KeyEvent, 8), ptr: make(chan hal.PointerEvent, 8)}
	l := layout.Compute(320, 320)
	k.AddTask(New(in, l, ep.Restrict(kernel.RightSend)))

	in.kbd <- hal.KeyEvent{Press: true, Rune: '4'}
	expectLabel(t, out, "4")

	in.kbd <- hal.KeyEvent{Press: false, Rune: '4'}
	in.kbd <- hal.KeyEvent{Press: true, Rune: 'z'}
	in.kbd <- hal.KeyEvent{Press: true, Code: hal.KeyBackspace}
	expectLabel(t, out, "⌫")

	eq := l.Cell(4, 3)
	in.ptr <- hal.PointerEvent{X: eq.Min.X + 1, Y: eq.Min.Y + 1, Press: true}
	in.ptr <- hal.PointerEvent{X: eq.Min.X + 1, Y: eq.Min.Y + 1, Press: false}
	in.ptr <- hal.PointerEvent{X: 5, Y: 5, Press: true}
	ac := l.Cell(0, 0)
	in.ptr <- hal.PointerEvent{X: ac.Min.X + 2, Y: ac.Max.Y - 2, Press: true}
	expectLabel(t, out, "=")
	expectLabel(t, out, "AC")

	select {
	case label := <-out:
		t.Fatalf("unexpected extra label %q", label)
	case <-time.After(20 * time.Millisecond):
	}
}

func expectLabel(t *testing.T, out <-chan string, want string) {
	t.Helper()
	select {
	case got := <-out:
		if got != want {
			t.Fatalf("label = %q, want %q", got, want)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for %q", want)
	}
}

func TestEventRoundTripsThroughLabel(t *testing.T) {
	for _, row := range calc.DefaultKeypad() {
		for _, b := range row {
			got, ok := Label(Event(b.Key))
			if !ok || got != b.Text {
				t.Fatalf("Label(Event(%q)) = %q, %v", b.Text, got, ok)
			}
		}
	}
}
