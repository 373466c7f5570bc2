package colour

import (
	"math"
	"slices"
)

// clamp01 clamps v to [0.0, 1.0].
func clamp01(v float64) float64 {
	return math.Max(0.0, math.Min(1.0, v))
}

// clampDelta clamps an adjustment delta to [-1.0, 1.0].
func clampDelta(v float64) float64 {
	return math.Max(-1.0, math.Min(1.0, v))
}

// packRGB packs 8-bit channels into a single sortable key.
func packRGB(r, g, b uint8) uint32 {
	return uint32(r)<<16 | uint32(g)<<8 | uint32(b)
}

// weightedRGB is a distinct pixel colour with its occurrence count.
type weightedRGB struct {
	R, G, B uint8
	Count   int
}

// histogram counts the distinct colours in buf, ordered by packed RGB so
// that downstream quantizers see the same order on every run.
func histogram(buf PixelBuffer) []weightedRGB {
	counts := make(map[uint32]int)
	for i := 0; i+2 < len(buf.Pix); i += 3 {
		counts[packRGB(buf.Pix[i], buf.Pix[i+1], buf.Pix[i+2])]++
	}

	keys := make([]uint32, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	hist := make([]weightedRGB, len(keys))
	for i, k := range keys {
		hist[i] = weightedRGB{
			R:     uint8(k >> 16),
			G:     uint8(k >> 8),
			B:     uint8(k),
			Count: counts[k],
		}
	}
	return hist
}
