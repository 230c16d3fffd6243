//go:build !tinygo

package hal

import (
	"strings"

	"go.uber.org/zap"
)

type hostHAL struct {
	logger *hostLogger
	fb     *hostFramebuffer
	kbd    *hostKeyboard
	ptr    *hostPointer
	t      *hostTime
}

// New returns a host HAL implementation logging through a development zap
// logger.
func New() HAL {
	l, err := zap.NewDevelopment()
	if err != nil {
		l = zap.NewNop()
	}
	return NewWithLogger(l)
}

// NewWithLogger returns a host HAL implementation whose log lines go to l.
func NewWithLogger(l *zap.Logger) HAL {
	return newHostHAL(l)
}

func newHostHAL(l *zap.Logger) *hostHAL {
	if l == nil {
		l = zap.NewNop()
	}
	return &hostHAL{
		logger: &hostLogger{l: l},
		fb:     newHostFramebuffer(320, 320),
		kbd:    newHostKeyboard(),
		ptr:    newHostPointer(),
		t:      newHostTime(),
	}
}

func (h *hostHAL) Logger() Logger   { return h.logger }
func (h *hostHAL) Display() Display { return hostDisplay{fb: h.fb} }
func (h *hostHAL) Input() Input     { return hostInput{kbd: h.kbd, ptr: h.ptr} }
func (h *hostHAL) Time() Time       { return h.t }

type hostDisplay struct {
	fb *hostFramebuffer
}

func (d hostDisplay) Framebuffer() Framebuffer { return d.fb }

type hostInput struct {
	kbd *hostKeyboard
	ptr *hostPointer
}

func (in hostInput) Keyboard() Keyboard { return in.kbd }
func (in hostInput) Pointer() Pointer   { return in.ptr }

// hostLogger turns OS log lines into zap entries. A leading "name: " prefix
// becomes the task field.
type hostLogger struct {
	l *zap.Logger
}

func (l *hostLogger) WriteLineString(s string) {
	task, msg := splitTask(s)
	if task == "" {
		l.l.Info(msg)
		return
	}
	l.l.Info(msg, zap.String("task", task))
}

func (l *hostLogger) WriteLineBytes(b []byte) {
	l.WriteLineString(string(b))
}

func splitTask(s string) (task, msg string) {
	i := strings.Index(s, ": ")
	if i <= 0 || strings.ContainsAny(s[:i], " \t") {
		return "", s
	}
	return s[:i], s[i+2:]
}
