//go:build !tinygo

package hal

import (
	"image"
	"sync"
)

// hostFramebuffer is drawn into by the OS and read by the window or the
// headless runner. Present publishes the back buffer to the front buffer, so
// readers only ever see whole frames.
type hostFramebuffer struct {
	width  int
	height int
	stride int
	buf    []byte

	mu       sync.Mutex
	front    []byte
	presents uint64
}

func newHostFramebuffer(width, height int) *hostFramebuffer {
	stride := width * 2
	return &hostFramebuffer{
		width:  width,
		height: height,
		stride: stride,
		buf:    make([]byte, stride*height),
		front:  make([]byte, stride*height),
	}
}

func (f *hostFramebuffer) Width() int             { return f.width }
func (f *hostFramebuffer) Height() int            { return f.height }
func (f *hostFramebuffer) Format() PixelFormat    { return PixelFormatRGB565 }
func (f *hostFramebuffer) StrideBytes() int       { return f.stride }
func (f *hostFramebuffer) Buffer() []byte         { return f.buf }
func (f *hostFramebuffer) ClearRGB(r, g, b uint8) { fillRGB565(f.buf, r, g, b) }

func (f *hostFramebuffer) Present() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	copy(f.front, f.buf)
	f.presents++
	return nil
}

// snapshotRGB565 copies the last presented frame into dst and returns the
// number of presents so far.
func (f *hostFramebuffer) snapshotRGB565(dst []byte) uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	copy(dst, f.front)
	return f.presents
}

// Image returns the last presented frame.
func (f *hostFramebuffer) Image() *image.RGBA {
	scratch := make([]byte, len(f.front))
	f.snapshotRGB565(scratch)
	img := image.NewRGBA(image.Rect(0, 0, f.width, f.height))
	expandRGB565(img, scratch, f.width, f.height, f.stride)
	return img
}
