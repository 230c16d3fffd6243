package app

import (
	"abacus/abacusos/kernel"
	"abacus/abacusos/layout"
	"abacus/abacusos/proto"
	"abacus/abacusos/services/keypad"
	"abacus/abacusos/services/logger"
	"abacus/abacusos/tasks/calculator"
	"abacus/hal"
)

type system struct {
	k *kernel.Kernel
}

type Config struct {
	Theme calculator.Theme

	// OnState, if set, is called from a kernel task with the calculator
	// state after every key press.
	OnState func(proto.CalcState)
}

// New initializes and starts the OS with default config.
func New(h hal.HAL) func() error {
	return NewWithConfig(h, Config{})
}

// Run starts the OS and blocks forever (TinyGo/native entrypoint).
func Run(h hal.HAL) {
	_ = New(h)
	select {}
}

func NewWithConfig(h hal.HAL, cfg Config) func() error {
	_ = newSystem(h, cfg)
	return func() error { return nil }
}

func newSystem(h hal.HAL, cfg Config) *system {
	installPanicHandler(h)

	k := kernel.New()
	rw := kernel.RightSend | kernel.RightRecv

	logEP := k.NewEndpoint(rw)
	calcEP := k.NewEndpoint(rw)

	k.AddTask(logger.New(h.Logger(), logEP.Restrict(kernel.RightRecv)))

	calcCfg := calculator.Config{
		Theme: cfg.Theme,
		Log:   logEP.Restrict(kernel.RightSend),
	}
	if cfg.OnState != nil {
		watchEP := k.NewEndpoint(rw)
		calcCfg.Watcher = watchEP.Restrict(kernel.RightSend)
		k.AddTask(&stateWatcher{ep: watchEP.Restrict(kernel.RightRecv), fn: cfg.OnState})
	}

	disp := h.Display()
	k.AddTask(calculator.New(disp, calcEP.Restrict(kernel.RightRecv), calcCfg))
	k.AddTask(keypad.New(h.Input(), screenLayout(disp), calcEP.Restrict(kernel.RightSend)))

	if ht := h.Time(); ht != nil {
		if ch := ht.Ticks(); ch != nil {
			go func() {
				for seq := range ch {
					k.TickTo(seq)
				}
			}()
		}
	}

	return &system{k: k}
}

func screenLayout(disp hal.Display) layout.Layout {
	if disp == nil {
		return layout.Layout{}
	}
	fb := disp.Framebuffer()
	if fb == nil {
		return layout.Layout{}
	}
	return layout.Compute(fb.Width(), fb.Height())
}

type stateWatcher struct {
	ep kernel.Capability
	fn func(proto.CalcState)
}

func (w *stateWatcher) Run(ctx *kernel.Context) {
	ch, ok := ctx.RecvChan(w.ep)
	if !ok {
		return
	}
	for msg := range ch {
		if proto.Kind(msg.Kind) != proto.MsgCalcState {
			continue
		}
		if s, ok := proto.DecodeCalcStatePayload(msg.Payload()); ok {
			w.fn(s)
		}
	}
}
