package colour

import (
	"cmp"
	"slices"
)

// anchorFraction is how far the darkest and lightest colours are pulled
// towards black and white.
const anchorFraction = 0.9

// Transform runs the full pipeline over quantized colours: luminance sort,
// contrast anchoring, bold synthesis, per-colour adjustment and light-theme
// inversion. The input is not modified.
func Transform(colors []Color, cfg Config) []Color {
	out := SortByLuminance(colors)
	if cfg.Anchor {
		out = AnchorContrast(out)
	}
	if cfg.Bold {
		out = SynthesizeBold(out, cfg.BoldDelta)
	}
	out = Adjust(out, cfg.HueRotation, cfg.Lightness, cfg.Saturation)
	if cfg.Light {
		out = Invert(out)
	}
	return out
}

// SortByLuminance returns the colours ordered from darkest to lightest.
// Colours with equal luminance keep their input order.
func SortByLuminance(colors []Color) []Color {
	out := slices.Clone(colors)
	slices.SortStableFunc(out, func(a, b Color) int {
		return cmp.Compare(a.Luminance(), b.Luminance())
	})
	return out
}

// AnchorContrast pulls the first colour towards black and the last towards
// white. A single colour gets both, darkening first.
func AnchorContrast(colors []Color) []Color {
	out := slices.Clone(colors)
	if len(out) == 0 {
		return out
	}

	out[0] = out[0].Mix(Black(), anchorFraction)
	last := len(out) - 1
	out[last] = out[last].Mix(White(), anchorFraction)
	return out
}

// SynthesizeBold appends a lightened copy of every colour after the
// originals, keeping relative order within each half.
func SynthesizeBold(colors []Color, delta float64) []Color {
	out := make([]Color, 0, len(colors)*2)
	out = append(out, colors...)
	for _, c := range colors {
		out = append(out, c.Lighten(delta))
	}
	return out
}

// Adjust rotates the hue, then shifts lightness, then saturation of every colour.
func Adjust(colors []Color, hue, lightness, saturation float64) []Color {
	out := make([]Color, len(colors))
	for i, c := range colors {
		out[i] = c.RotateHue(hue).Lighten(lightness).Saturate(saturation)
	}
	return out
}

// Invert returns the colours in reverse order.
func Invert(colors []Color) []Color {
	out := slices.Clone(colors)
	slices.Reverse(out)
	return out
}
