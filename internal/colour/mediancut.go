package colour

import (
	"cmp"
	"slices"

	"github.com/lucasb-eyer/go-colorful"
)

// MedianCutQuantizer implements colour quantization by recursively splitting
// the RGB cube at the population median of its longest axis.
type MedianCutQuantizer struct{}

// NewMedianCutQuantizer creates a new MedianCutQuantizer.
func NewMedianCutQuantizer() *MedianCutQuantizer {
	return &MedianCutQuantizer{}
}

// Quantize returns up to k colours, one per box, in box creation order.
func (q *MedianCutQuantizer) Quantize(buf PixelBuffer, k int) []Color {
	if k < 1 {
		return nil
	}

	hist := histogram(buf)
	if len(hist) == 0 {
		return nil
	}

	boxes := []*colorBox{newColorBox(hist)}
	for len(boxes) < k {
		idx := pickBox(boxes)
		if idx < 0 {
			// Every box holds a single colour.
			break
		}
		left, right := boxes[idx].split()
		boxes[idx] = left
		boxes = append(boxes, right)
	}

	colors := make([]Color, len(boxes))
	for i, b := range boxes {
		colors[i] = b.average()
	}
	return colors
}

// pickBox returns the index of the splittable box with the largest
// population-weighted extent, or -1 when no box can be split.
func pickBox(boxes []*colorBox) int {
	idx := -1
	var best int64 = -1
	for i, b := range boxes {
		if len(b.colors) < 2 {
			continue
		}
		_, extent := b.longestAxis()
		score := int64(b.population) * int64(extent)
		if score > best {
			best = score
			idx = i
		}
	}
	return idx
}

// colorBox is an axis-aligned region of the RGB cube holding distinct
// colours and their pixel counts.
type colorBox struct {
	colors     []weightedRGB
	population int
	lo, hi     [3]uint8
}

func newColorBox(colors []weightedRGB) *colorBox {
	b := &colorBox{
		colors: colors,
		lo:     [3]uint8{255, 255, 255},
	}
	for _, c := range colors {
		b.population += c.Count
		for axis := range 3 {
			v := c.channel(axis)
			b.lo[axis] = min(b.lo[axis], v)
			b.hi[axis] = max(b.hi[axis], v)
		}
	}
	return b
}

// longestAxis returns the channel with the widest range. Ties prefer R, then G.
func (b *colorBox) longestAxis() (axis, extent int) {
	for a := range 3 {
		if e := int(b.hi[a]) - int(b.lo[a]); e > extent {
			axis, extent = a, e
		}
	}
	return axis, extent
}

// split cuts the box at the population median along its longest axis.
// Both halves are non-empty.
func (b *colorBox) split() (*colorBox, *colorBox) {
	axis, _ := b.longestAxis()
	slices.SortFunc(b.colors, func(x, y weightedRGB) int {
		if c := cmp.Compare(x.channel(axis), y.channel(axis)); c != 0 {
			return c
		}
		return cmp.Compare(packRGB(x.R, x.G, x.B), packRGB(y.R, y.G, y.B))
	})

	n := len(b.colors)
	cut := n - 1
	cumulative := 0
	for i, c := range b.colors {
		cumulative += c.Count
		if cumulative*2 >= b.population {
			cut = i + 1
			break
		}
	}
	cut = max(1, min(cut, n-1))

	return newColorBox(b.colors[:cut]), newColorBox(b.colors[cut:])
}

// average returns the population-weighted mean colour of the box.
func (b *colorBox) average() Color {
	var r, g, bl float64
	for _, c := range b.colors {
		w := float64(c.Count)
		r += float64(c.R) * w
		g += float64(c.G) * w
		bl += float64(c.B) * w
	}
	total := float64(b.population) * 255.0
	return Color{
		rgb:   colorful.Color{R: r / total, G: g / total, B: bl / total}.Clamped(),
		alpha: 1.0,
	}
}

func (c weightedRGB) channel(axis int) uint8 {
	switch axis {
	case 0:
		return c.R
	case 1:
		return c.G
	default:
		return c.B
	}
}
