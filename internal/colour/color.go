// Package colour implements palette extraction from images and the transform
// pipeline that turns extracted colours into a terminal colour scheme.
package colour

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// achromaticChroma is the Oklch chroma below which a colour has no usable hue.
const achromaticChroma = 1e-6

var _ color.Color = Color{}

// Color is an immutable sRGB colour. Channels are always held clamped to
// [0,1]; every transform returns a new Color.
type Color struct {
	rgb   colorful.Color
	alpha float64
}

// FromRGB creates a Color from 8-bit sRGB channels.
func FromRGB(r, g, b uint8) Color {
	return Color{
		rgb:   colorful.Color{R: float64(r) / 255.0, G: float64(g) / 255.0, B: float64(b) / 255.0},
		alpha: 1.0,
	}
}

// FromOklab creates a Color from Oklab coordinates. Values outside the sRGB
// gamut are clamped per channel.
func FromOklab(l, a, b, alpha float64) Color {
	lr, lg, lb := oklabToLinearRGB(l, a, b)
	return Color{
		rgb:   colorful.LinearRgb(clamp01(lr), clamp01(lg), clamp01(lb)).Clamped(),
		alpha: clamp01(alpha),
	}
}

// ParseHex parses a "#rrggbb" or "#rgb" string.
func ParseHex(s string) (Color, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return Color{}, fmt.Errorf("invalid hex colour %q: %w", s, err)
	}
	return Color{rgb: c.Clamped(), alpha: 1.0}, nil
}

// Black returns pure black.
func Black() Color { return FromRGB(0, 0, 0) }

// White returns pure white.
func White() Color { return FromRGB(255, 255, 255) }

// RGB returns the colour as rounded 8-bit channels.
func (c Color) RGB() (r, g, b uint8) {
	return c.rgb.Clamped().RGB255()
}

// RGBA implements color.Color, returning alpha-premultiplied channels.
func (c Color) RGBA() (r, g, b, a uint32) {
	cr, cg, cb, _ := c.rgb.Clamped().RGBA()
	a = uint32(math.Round(c.alpha * 0xffff))
	return cr * a / 0xffff, cg * a / 0xffff, cb * a / 0xffff, a
}

// Alpha returns the alpha channel in [0,1].
func (c Color) Alpha() float64 {
	return c.alpha
}

// Oklab returns the colour in Oklab coordinates.
func (c Color) Oklab() (l, a, b float64) {
	return linearRGBToOklab(c.rgb.LinearRgb())
}

// Luminance returns the WCAG relative luminance, 0 for black and 1 for white.
func (c Color) Luminance() float64 {
	r, g, b := c.rgb.LinearRgb()
	return 0.2126*r + 0.7152*g + 0.0722*b
}

// Lighten moves the colour's Oklab lightness towards white by delta, or
// towards black for a negative delta. Delta is clamped to [-1,1] and moves
// lightness by that fraction of the remaining distance.
func (c Color) Lighten(delta float64) Color {
	if delta == 0 || math.IsNaN(delta) {
		return c
	}
	delta = clampDelta(delta)

	l, a, b := c.Oklab()
	if delta > 0 {
		l += delta * (1 - l)
	} else {
		l += delta * l
	}
	return FromOklab(l, a, b, c.alpha)
}

// Darken is Lighten with the delta negated.
func (c Color) Darken(delta float64) Color {
	return c.Lighten(-delta)
}

// Saturate scales Oklch chroma by (1+delta). A delta of -1 yields grey.
func (c Color) Saturate(delta float64) Color {
	if delta == 0 || math.IsNaN(delta) {
		return c
	}
	delta = clampDelta(delta)

	l, a, b := c.Oklab()
	chroma, hue := oklabToOklch(a, b)
	a, b = oklchToOklab(chroma*(1+delta), hue)
	return FromOklab(l, a, b, c.alpha)
}

// Desaturate is Saturate with the delta negated.
func (c Color) Desaturate(delta float64) Color {
	return c.Saturate(-delta)
}

// RotateHue rotates the Oklch hue by degrees, wrapping modulo 360.
// Achromatic colours are returned unchanged.
func (c Color) RotateHue(degrees float64) Color {
	if math.IsNaN(degrees) || math.IsInf(degrees, 0) {
		return c
	}
	degrees = math.Mod(degrees, 360)
	if degrees == 0 {
		return c
	}

	l, a, b := c.Oklab()
	chroma, hue := oklabToOklch(a, b)
	if chroma < achromaticChroma {
		return c
	}

	hue = math.Mod(hue+degrees, 360)
	if hue < 0 {
		hue += 360
	}
	a, b = oklchToOklab(chroma, hue)
	return FromOklab(l, a, b, c.alpha)
}

// Mix interpolates towards other in CIE L*a*b*. Fraction is the weight of
// other: 0 returns c, 1 returns other.
func (c Color) Mix(other Color, fraction float64) Color {
	if math.IsNaN(fraction) {
		return c
	}
	fraction = clamp01(fraction)
	return Color{
		rgb:   c.rgb.BlendLab(other.rgb, fraction).Clamped(),
		alpha: c.alpha + (other.alpha-c.alpha)*fraction,
	}
}

// Hex formats the colour as #rrggbb, or #RRGGBB when upper is set.
func (c Color) Hex(upper bool) string {
	hex := c.rgb.Clamped().Hex()
	if upper {
		return strings.ToUpper(hex)
	}
	return hex
}

// String implements fmt.Stringer.
func (c Color) String() string {
	return c.Hex(true)
}

// TextColor returns black or white, whichever reads better on c.
func (c Color) TextColor() Color {
	if c.Luminance() > 0.179 {
		return Black()
	}
	return White()
}

// ContrastRatio calculates the contrast ratio between two colours according to WCAG 2.0.
// Returns a value between 1 and 21, where 21 is maximum contrast (black vs white).
// https://www.w3.org/TR/WCAG20/#contrast-ratiodef.
func ContrastRatio(c1, c2 Color) float64 {
	l1 := c1.Luminance()
	l2 := c2.Luminance()

	// Ensure l1 is the lighter colour.
	if l1 < l2 {
		l1, l2 = l2, l1
	}

	return (l1 + 0.05) / (l2 + 0.05)
}
