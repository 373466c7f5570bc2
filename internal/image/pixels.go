package image

import (
	"image"
	"image/color"

	"github.com/jmylchreest/termtint/internal/colour"
)

// ToPixelBuffer flattens img into interleaved RGB8 samples. Alpha is
// discarded after un-premultiplying.
func ToPixelBuffer(img image.Image) colour.PixelBuffer {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= 0 || h <= 0 {
		return colour.NewPixelBuffer(max(w, 0), max(h, 0), nil)
	}

	pix := make([]uint8, 0, w*h*3)
	switch src := img.(type) {
	case *image.NRGBA:
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			row := src.Pix[src.PixOffset(bounds.Min.X, y):src.PixOffset(bounds.Max.X, y)]
			for i := 0; i < len(row); i += 4 {
				pix = append(pix, row[i], row[i+1], row[i+2])
			}
		}
	default:
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			for x := bounds.Min.X; x < bounds.Max.X; x++ {
				c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
				pix = append(pix, c.R, c.G, c.B)
			}
		}
	}

	return colour.NewPixelBuffer(w, h, pix)
}
