package proto

import (
	"unicode/utf8"

	"abacus/abacusos/kernel"
)

// LogLinePayload encodes a MsgLogLine payload.
//
// Convention:
// - Payload is UTF-8 bytes without a trailing newline.
// - Lines longer than one message are cut at a rune boundary.
// - Delivery is best-effort; callers may drop on overflow.
func LogLinePayload(b []byte) []byte {
	if b == nil {
		return nil
	}
	n := len(b)
	if n > kernel.MaxMessageBytes {
		n = kernel.MaxMessageBytes
		for n > 0 && !utf8.RuneStart(b[n]) {
			n--
		}
	}
	cp := make([]byte, n)
	copy(cp, b[:n])
	return cp
}
