//go:build tinygo && baremetal

package hal

type stubKeyboard struct{}

func (k *stubKeyboard) Events() <-chan KeyEvent { return nil }

// stubPointer stands in on boards without a touch panel.
type stubPointer struct{}

func (p *stubPointer) Events() <-chan PointerEvent { return nil }
