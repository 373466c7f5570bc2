package colour

import "fmt"

// PixelBuffer is a decoded image as interleaved 8-bit RGB samples.
// The core only ever reads it.
type PixelBuffer struct {
	Width  int
	Height int
	Pix    []uint8
}

// NewPixelBuffer wraps interleaved RGB8 samples.
func NewPixelBuffer(width, height int, pix []uint8) PixelBuffer {
	return PixelBuffer{Width: width, Height: height, Pix: pix}
}

// Validate reports ErrInvalidInput for empty, zero-sized or truncated buffers.
func (b PixelBuffer) Validate() error {
	if b.Width <= 0 || b.Height <= 0 {
		return fmt.Errorf("%w: image has zero size (%dx%d)", ErrInvalidInput, b.Width, b.Height)
	}
	if len(b.Pix) == 0 {
		return fmt.Errorf("%w: pixel buffer is empty", ErrInvalidInput)
	}
	if want := b.Width * b.Height * 3; len(b.Pix) != want {
		return fmt.Errorf("%w: pixel buffer has %d bytes, want %d for %dx%d RGB8", ErrInvalidInput, len(b.Pix), want, b.Width, b.Height)
	}
	return nil
}

// Len returns the number of pixels in the buffer.
func (b PixelBuffer) Len() int {
	return len(b.Pix) / 3
}

