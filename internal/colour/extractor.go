package colour

import (
	"fmt"
	"math"
	"strings"

	"github.com/hashicorp/go-hclog"
)

// Quantizer reduces a pixel buffer to at most k representative colours.
type Quantizer interface {
	// Quantize returns up to k colours. It never pads the result when the
	// buffer holds fewer than k distinct colours.
	Quantize(buf PixelBuffer, k int) []Color
}

// Algorithm represents the quantization algorithm type.
type Algorithm string

const (
	// AlgorithmMedianCut splits the RGB cube at weighted medians.
	AlgorithmMedianCut Algorithm = "mediancut"

	// AlgorithmKMeans clusters colours with weighted k-means in Oklab.
	AlgorithmKMeans Algorithm = "kmeans"
)

// Limits on the requested colour count.
const (
	MinColorCount = 1
	MaxColorCount = 256
)

// ValidAlgorithms returns a list of valid algorithm names.
func ValidAlgorithms() []Algorithm {
	return []Algorithm{
		AlgorithmMedianCut,
		AlgorithmKMeans,
	}
}

// ParseAlgorithm resolves an algorithm name, accepting the common aliases.
func ParseAlgorithm(name string) (Algorithm, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "mediancut", "median-cut", "color-thief", "colorthief":
		return AlgorithmMedianCut, nil
	case "kmeans", "k-means", "okolors":
		return AlgorithmKMeans, nil
	default:
		return "", fmt.Errorf("%w: unknown algorithm: %s (valid algorithms: %v)", ErrConfiguration, name, ValidAlgorithms())
	}
}

// Config holds everything the palette generator needs besides the pixels.
type Config struct {
	Algorithm Algorithm
	Count     int

	Bold      bool
	BoldDelta float64

	// HueRotation is in degrees and wraps modulo 360.
	HueRotation float64
	Lightness   float64
	Saturation  float64

	Light  bool
	Anchor bool

	// K-means tuning.
	ConvergenceThreshold float64
	MaxIterations        int
}

// DefaultConfig returns the default generator configuration.
func DefaultConfig() Config {
	return Config{
		Algorithm:            AlgorithmMedianCut,
		Count:                8,
		Bold:                 true,
		BoldDelta:            0.2,
		Anchor:               true,
		ConvergenceThreshold: 0.001,
		MaxIterations:        128,
	}
}

// Validate rejects configurations outside their documented ranges.
// Values are never clamped.
func (c Config) Validate() error {
	alg, err := ParseAlgorithm(string(c.Algorithm))
	if err != nil {
		return err
	}
	if c.Count < MinColorCount {
		return fmt.Errorf("%w: color count must be at least %d, got %d", ErrConfiguration, MinColorCount, c.Count)
	}
	if c.Count > MaxColorCount {
		return fmt.Errorf("%w: color count too large: %d (maximum: %d)", ErrConfiguration, c.Count, MaxColorCount)
	}

	deltas := []struct {
		name  string
		value float64
	}{
		{"bold delta", c.BoldDelta},
		{"lightness", c.Lightness},
		{"saturation", c.Saturation},
	}
	for _, d := range deltas {
		if err := ValidateDelta(d.value); err != nil {
			return fmt.Errorf("%s: %w", d.name, err)
		}
	}

	if math.IsNaN(c.HueRotation) || math.IsInf(c.HueRotation, 0) {
		return fmt.Errorf("%w: hue rotation must be finite, got %v", ErrConfiguration, c.HueRotation)
	}

	if alg == AlgorithmKMeans {
		return c.validateKMeans()
	}
	return nil
}

// validateKMeans checks the k-means tuning fields.
func (c Config) validateKMeans() error {
	if math.IsNaN(c.ConvergenceThreshold) || math.IsInf(c.ConvergenceThreshold, 0) || c.ConvergenceThreshold <= 0 {
		return fmt.Errorf("%w: convergence threshold must be a positive number, got %v", ErrConfiguration, c.ConvergenceThreshold)
	}
	if c.MaxIterations < 1 {
		return fmt.Errorf("%w: max iterations must be at least 1, got %d", ErrConfiguration, c.MaxIterations)
	}
	return nil
}

// ValidateDelta checks that an adjustment delta lies within [-1.0, 1.0].
func ValidateDelta(v float64) error {
	if math.IsNaN(v) || v < -1.0 || v > 1.0 {
		return fmt.Errorf("%w: %v is not in range [-1.0,1.0]", ErrConfiguration, v)
	}
	return nil
}

// NewQuantizer creates the quantizer selected by cfg.Algorithm.
func NewQuantizer(cfg Config, logger hclog.Logger) (Quantizer, error) {
	alg, err := ParseAlgorithm(string(cfg.Algorithm))
	if err != nil {
		return nil, err
	}

	switch alg {
	case AlgorithmMedianCut:
		return NewMedianCutQuantizer(), nil
	case AlgorithmKMeans:
		if err := cfg.validateKMeans(); err != nil {
			return nil, err
		}
		return NewKMeansQuantizer(cfg.ConvergenceThreshold, cfg.MaxIterations, logger), nil
	default:
		return nil, fmt.Errorf("%w: unknown algorithm: %s", ErrConfiguration, alg)
	}
}
