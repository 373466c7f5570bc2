package colour

// solidBuffer returns a w×h buffer filled with a single colour.
func solidBuffer(w, h int, r, g, b uint8) PixelBuffer {
	pix := make([]uint8, 0, w*h*3)
	for range w * h {
		pix = append(pix, r, g, b)
	}
	return NewPixelBuffer(w, h, pix)
}

// bufferOf returns a 1-row buffer holding the given pixels in order.
func bufferOf(pixels ...[3]uint8) PixelBuffer {
	pix := make([]uint8, 0, len(pixels)*3)
	for _, p := range pixels {
		pix = append(pix, p[0], p[1], p[2])
	}
	return NewPixelBuffer(len(pixels), 1, pix)
}

// gradientBuffer returns a w×h buffer where every pixel is distinct.
func gradientBuffer(w, h int) PixelBuffer {
	pix := make([]uint8, 0, w*h*3)
	for y := range h {
		for x := range w {
			pix = append(pix, uint8(x*255/max(1, w-1)), uint8(y*255/max(1, h-1)), uint8((x+y)*7%256))
		}
	}
	return NewPixelBuffer(w, h, pix)
}
