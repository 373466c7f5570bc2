package colour

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func samplePalette() []Color {
	return []Color{
		FromRGB(200, 180, 40),
		FromRGB(20, 30, 60),
		FromRGB(255, 0, 0),
		FromRGB(0, 0, 255),
		FromRGB(120, 200, 150),
	}
}

func TestSortByLuminance(t *testing.T) {
	in := samplePalette()
	original := slices.Clone(in)

	got := SortByLuminance(in)
	require.Len(t, got, len(in))
	for i := 1; i < len(got); i++ {
		assert.LessOrEqual(t, got[i-1].Luminance(), got[i].Luminance())
	}
	assert.Equal(t, original, in, "input must not be modified")
}

func TestSortByLuminanceStable(t *testing.T) {
	// Same RGB, different alpha: equal luminance, distinct values.
	a := FromOklab(0.6, 0.1, 0.05, 1.0)
	b := FromOklab(0.6, 0.1, 0.05, 0.5)
	dark := Black()

	assert.Equal(t, []Color{dark, a, b}, SortByLuminance([]Color{a, dark, b}))
	assert.Equal(t, []Color{dark, b, a}, SortByLuminance([]Color{b, dark, a}))
}

func TestAnchorContrast(t *testing.T) {
	in := SortByLuminance(samplePalette())

	got := AnchorContrast(in)
	require.Len(t, got, len(in))
	assert.Equal(t, in[0].Mix(Black(), 0.9), got[0])
	assert.Equal(t, in[len(in)-1].Mix(White(), 0.9), got[len(got)-1])
	assert.Equal(t, in[1:len(in)-1], got[1:len(got)-1])
	assert.Less(t, got[0].Luminance(), in[0].Luminance())
	assert.Greater(t, got[len(got)-1].Luminance(), in[len(in)-1].Luminance())
}

func TestAnchorContrastEdgeCases(t *testing.T) {
	assert.Empty(t, AnchorContrast(nil))

	// A single colour is darkened first, then lightened.
	c := FromRGB(90, 140, 60)
	got := AnchorContrast([]Color{c})
	require.Len(t, got, 1)
	assert.Equal(t, c.Mix(Black(), 0.9).Mix(White(), 0.9), got[0])
}

func TestSynthesizeBold(t *testing.T) {
	in := SortByLuminance(samplePalette())

	got := SynthesizeBold(in, 0.2)
	require.Len(t, got, 2*len(in))
	for i, c := range in {
		assert.Equal(t, c, got[i])
		assert.Equal(t, c.Lighten(0.2), got[i+len(in)])
	}
}

func TestAdjust(t *testing.T) {
	in := samplePalette()

	got := Adjust(in, 45, 0.1, -0.2)
	require.Len(t, got, len(in))
	for i, c := range in {
		assert.Equal(t, c.RotateHue(45).Lighten(0.1).Saturate(-0.2), got[i])
	}

	assert.Equal(t, in, Adjust(in, 0, 0, 0))
}

func TestInvert(t *testing.T) {
	in := samplePalette()

	got := Invert(in)
	assert.Equal(t, in[0], got[len(got)-1])
	assert.Equal(t, in, Invert(got))
}

func TestTransform(t *testing.T) {
	in := samplePalette()

	t.Run("all stages disabled", func(t *testing.T) {
		cfg := Config{}
		assert.Equal(t, SortByLuminance(in), Transform(in, cfg))
	})

	t.Run("order invariant", func(t *testing.T) {
		cfg := Config{Anchor: true}
		got := Transform(in, cfg)
		for _, c := range got {
			assert.LessOrEqual(t, got[0].Luminance(), c.Luminance())
			assert.GreaterOrEqual(t, got[len(got)-1].Luminance(), c.Luminance())
		}
	})

	t.Run("bold doubling", func(t *testing.T) {
		cfg := Config{Anchor: true, Bold: true, BoldDelta: 0.3}
		got := Transform(in, cfg)
		n := len(in)
		require.Len(t, got, 2*n)
		for i := range n {
			assert.Equal(t, got[i].Lighten(0.3), got[i+n])
		}
	})

	t.Run("light inversion", func(t *testing.T) {
		dark := Config{Anchor: true, Bold: true, BoldDelta: 0.2, HueRotation: 30}
		light := dark
		light.Light = true
		assert.Equal(t, Invert(Transform(in, dark)), Transform(in, light))
	})

	t.Run("stage order", func(t *testing.T) {
		cfg := Config{Anchor: true, Bold: true, BoldDelta: 0.2, HueRotation: 90, Lightness: -0.1, Saturation: 0.2, Light: true}
		want := Invert(Adjust(SynthesizeBold(AnchorContrast(SortByLuminance(in)), 0.2), 90, -0.1, 0.2))
		assert.Equal(t, want, Transform(in, cfg))
	})
}
