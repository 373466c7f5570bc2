package colour

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Oklab conversion matrices from https://bottosson.github.io/posts/oklab.
var (
	// linear sRGB -> LMS
	oklabM1 = mat.NewDense(3, 3, []float64{
		0.4122214708, 0.5363325363, 0.0514459929,
		0.2119034982, 0.6806995451, 0.1073969566,
		0.0883024619, 0.2817188376, 0.6299787005,
	})

	// LMS' -> Lab
	oklabM2 = mat.NewDense(3, 3, []float64{
		0.2104542553, 0.7936177850, -0.0040720468,
		1.9779984951, -2.4285922050, 0.4505937099,
		0.0259040371, 0.7827717662, -0.8086757660,
	})

	// Lab -> LMS'
	oklabM2Inv = mat.NewDense(3, 3, []float64{
		1.0, 0.3963377774, 0.2158037573,
		1.0, -0.1055613458, -0.0638541728,
		1.0, -0.0894841775, -1.2914855480,
	})

	// LMS -> linear sRGB
	oklabM1Inv = mat.NewDense(3, 3, []float64{
		4.0767416621, -3.3077115913, 0.2309699292,
		-1.2684380046, 2.6097574011, -0.3413193965,
		-0.0041960863, -0.7034186147, 1.7076147010,
	})
)

// linearRGBToOklab converts linear sRGB to Oklab.
func linearRGBToOklab(r, g, b float64) (l, a, bb float64) {
	var lms mat.VecDense
	lms.MulVec(oklabM1, mat.NewVecDense(3, []float64{r, g, b}))
	for i := range 3 {
		lms.SetVec(i, math.Cbrt(lms.AtVec(i)))
	}

	var lab mat.VecDense
	lab.MulVec(oklabM2, &lms)
	return lab.AtVec(0), lab.AtVec(1), lab.AtVec(2)
}

// oklabToLinearRGB converts Oklab to linear sRGB. The result is not clamped
// and may fall outside [0,1] for colours outside the sRGB gamut.
func oklabToLinearRGB(l, a, b float64) (r, g, bb float64) {
	var lms mat.VecDense
	lms.MulVec(oklabM2Inv, mat.NewVecDense(3, []float64{l, a, b}))
	for i := range 3 {
		v := lms.AtVec(i)
		lms.SetVec(i, v*v*v)
	}

	var rgb mat.VecDense
	rgb.MulVec(oklabM1Inv, &lms)
	return rgb.AtVec(0), rgb.AtVec(1), rgb.AtVec(2)
}

// oklabToOklch converts Oklab to polar form. Hue is in degrees [0, 360).
func oklabToOklch(a, b float64) (chroma, hue float64) {
	chroma = math.Hypot(a, b)
	hue = math.Atan2(b, a) * 180 / math.Pi
	if hue < 0 {
		hue += 360
	}
	return chroma, hue
}

// oklchToOklab converts chroma and hue (degrees) back to Oklab a/b.
func oklchToOklab(chroma, hue float64) (a, b float64) {
	rad := hue * math.Pi / 180
	return chroma * math.Cos(rad), chroma * math.Sin(rad)
}
