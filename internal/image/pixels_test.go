package image

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToPixelBufferNRGBA(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	img.Set(0, 0, color.NRGBA{R: 1, G: 2, B: 3, A: 255})
	img.Set(1, 0, color.NRGBA{R: 4, G: 5, B: 6, A: 10})

	buf := ToPixelBuffer(img)
	require.NoError(t, buf.Validate())
	assert.Equal(t, 2, buf.Width)
	assert.Equal(t, 1, buf.Height)
	assert.Equal(t, []uint8{1, 2, 3, 4, 5, 6}, buf.Pix)
}

func TestToPixelBufferSubImage(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 3, 3))
	img.Set(1, 1, color.NRGBA{R: 200, G: 100, B: 50, A: 255})
	img.Set(2, 1, color.NRGBA{R: 9, G: 8, B: 7, A: 255})

	buf := ToPixelBuffer(img.SubImage(image.Rect(1, 1, 3, 2)))
	assert.Equal(t, 2, buf.Width)
	assert.Equal(t, 1, buf.Height)
	assert.Equal(t, []uint8{200, 100, 50, 9, 8, 7}, buf.Pix)
}

func TestToPixelBufferOtherModels(t *testing.T) {
	gray := image.NewGray(image.Rect(0, 0, 2, 2))
	for i := range gray.Pix {
		gray.Pix[i] = 128
	}

	buf := ToPixelBuffer(gray)
	require.NoError(t, buf.Validate())
	assert.Equal(t, []uint8{128, 128, 128, 128, 128, 128, 128, 128, 128, 128, 128, 128}, buf.Pix)

	// Premultiplied input is un-premultiplied.
	rgba := image.NewRGBA(image.Rect(0, 0, 1, 1))
	rgba.Set(0, 0, color.RGBA{R: 100, A: 200})
	assert.Equal(t, []uint8{127, 0, 0}, ToPixelBuffer(rgba).Pix)
}

func TestToPixelBufferEmpty(t *testing.T) {
	buf := ToPixelBuffer(image.NewNRGBA(image.Rect(0, 0, 0, 0)))
	assert.Error(t, buf.Validate())
}
