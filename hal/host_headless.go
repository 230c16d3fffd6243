//go:build !tinygo

package hal

import (
	"context"
	"fmt"
	"image"
	"time"

	"go.uber.org/zap"
)

// HeadlessConfig controls the no-window host runner.
type HeadlessConfig struct {
	Hz    int
	Ticks uint64

	// Keys and Pointer are replayed one event per frame, in order.
	Keys    []KeyEvent
	Pointer []PointerEvent

	// Snapshot, if set, receives the last presented frame when the tick
	// limit is reached.
	Snapshot func(image.Image) error

	Log *zap.Logger
}

// RunHeadless runs the OS without opening a window.
func RunHeadless(ctx context.Context, newApp func(HAL) func() error, cfg HeadlessConfig) error {
	if cfg.Hz <= 0 {
		cfg.Hz = 60
	}
	d := time.Second / time.Duration(cfg.Hz)
	if d <= 0 {
		return fmt.Errorf("invalid headless hz: %d", cfg.Hz)
	}
	t := time.NewTicker(d)
	defer t.Stop()

	h := newHostHAL(cfg.Log)
	return runHeadless(ctx, h, newApp(h), cfg, t.C)
}

func runHeadless(ctx context.Context, h *hostHAL, step func() error, cfg HeadlessConfig, frames <-chan time.Time) error {
	keys, taps := cfg.Keys, cfg.Pointer
	var tick uint64
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-frames:
			if len(keys) > 0 && h.kbd.inject(keys[0]) {
				keys = keys[1:]
			}
			if len(taps) > 0 && h.ptr.inject(taps[0]) {
				taps = taps[1:]
			}
			h.t.step()
			if step != nil {
				if err := step(); err != nil {
					return err
				}
			}
			tick++
			if cfg.Ticks > 0 && tick >= cfg.Ticks {
				if cfg.Snapshot != nil {
					if err := cfg.Snapshot(h.fb.Image()); err != nil {
						return fmt.Errorf("snapshot: %w", err)
					}
				}
				return nil
			}
		}
	}
}
