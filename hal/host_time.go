//go:build !tinygo

package hal

import "time"

// TickDuration is the host timebase resolution.
const TickDuration = time.Millisecond

// hostTime converts frame steps into TickDuration ticks using wall time.
type hostTime struct {
	ch  chan uint64
	seq uint64

	now  func() time.Time
	last time.Time
	acc  time.Duration
}

func newHostTime() *hostTime {
	return &hostTime{ch: make(chan uint64, 1024), now: time.Now}
}

func (t *hostTime) Ticks() <-chan uint64 { return t.ch }

// step emits the ticks that elapsed since the previous step. The first step
// emits exactly one.
func (t *hostTime) step() {
	now := t.now()
	if t.last.IsZero() {
		t.last = now
		t.emit(1)
		return
	}

	t.acc += now.Sub(t.last)
	t.last = now

	n := uint64(t.acc / TickDuration)
	if n == 0 {
		return
	}
	t.acc %= TickDuration
	t.emit(n)
}

// emit publishes only the newest sequence number when the channel is full;
// the kernel timebase jumps forward rather than replaying each tick.
func (t *hostTime) emit(n uint64) {
	t.seq += n
	select {
	case t.ch <- t.seq:
	default:
	}
}
