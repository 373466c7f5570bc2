package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cast"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/jmylchreest/termtint/internal/colour"
)

const (
	configDirName  = "termtint"
	configFileName = "config"
	envPrefix      = "TERMTINT"
)

// Configuration keys. Each is also the long flag name.
const (
	keyColors           = "colors"
	keyBackend          = "backend"
	keyNoBold           = "no-bold"
	keyBoldDelta        = "bold-delta"
	keyRotateHue        = "rotate-hue"
	keyLighten          = "lighten"
	keySaturate         = "saturate"
	keyLight            = "light"
	keyNoAdjust         = "no-adjust"
	keyKMeansThreshold  = "kmeans-threshold"
	keyKMeansIterations = "kmeans-iterations"
	keyFormat           = "format"
	keyLowercase        = "lowercase"
	keyColor            = "color"
	keyVerbose          = "verbose"
	keyNoCache          = "no-cache"
	keyCacheDir         = "cache-dir"
)

// deltaValue is a pflag.Value accepting numbers in [-1, 1].
type deltaValue float64

func newDeltaValue(val float64) *deltaValue {
	d := deltaValue(val)
	return &d
}

func (d *deltaValue) Set(s string) error {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return fmt.Errorf("%q is not a number", s)
	}
	if err := colour.ValidateDelta(v); err != nil {
		return err
	}
	*d = deltaValue(v)
	return nil
}

func (d *deltaValue) String() string {
	return strconv.FormatFloat(float64(*d), 'g', -1, 64)
}

func (d *deltaValue) Type() string {
	return "delta"
}

func registerFlags(fs *pflag.FlagSet) {
	def := colour.DefaultConfig()

	fs.IntP(keyColors, "c", def.Count, fmt.Sprintf("number of colours to extract (%d-%d)", colour.MinColorCount, colour.MaxColorCount))
	fs.String(keyBackend, string(def.Algorithm), "quantization backend (mediancut, kmeans)")
	fs.BoolP(keyNoBold, "b", false, "do not generate bold variants")
	fs.Var(newDeltaValue(def.BoldDelta), keyBoldDelta, "lightness delta for bold variants (-1 to 1)")
	fs.Float64(keyRotateHue, 0, "rotate hues by degrees")
	fs.Var(newDeltaValue(0), keyLighten, "lighten (positive) or darken (negative) all colours (-1 to 1)")
	fs.Var(newDeltaValue(0), keySaturate, "saturate (positive) or desaturate (negative) all colours (-1 to 1)")
	fs.Bool(keyLight, false, "generate a light theme (lightest colour first)")
	fs.Bool(keyNoAdjust, false, "do not push the darkest and lightest colours towards black and white")
	fs.Float64(keyKMeansThreshold, def.ConvergenceThreshold, "k-means convergence threshold")
	fs.Int(keyKMeansIterations, def.MaxIterations, "k-means iteration limit")
	fs.StringP(keyFormat, "f", formatHex, "output format (hex, rgb, json)")
	fs.Bool(keyLowercase, false, "print hex codes in lowercase")
	fs.String(keyColor, colorAuto, "style output with the palette colours (auto, always, never)")
	fs.Bool(keyNoCache, false, "do not cache images downloaded from URLs")
	fs.String(keyCacheDir, "", "directory for downloaded images (default: $XDG_CACHE_HOME/termtint/images)")
	fs.BoolP(keyVerbose, "v", false, "enable verbose output")
}

// loadConfig layers flags over TERMTINT_* environment variables over the
// config file over flag defaults.
func loadConfig(fs *pflag.FlagSet, configFile string) (*viper.Viper, error) {
	v := viper.New()

	if err := v.BindPFlags(fs); err != nil {
		return nil, fmt.Errorf("failed to bind flags: %w", err)
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(configFileName)
		v.AddConfigPath(configDir())
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	return v, nil
}

func configDir() string {
	userConfigDir, err := os.UserConfigDir()
	if err != nil {
		homeDir, _ := os.UserHomeDir()
		userConfigDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(userConfigDir, configDirName)
}

// settings reads typed values from viper, keeping the first conversion
// failure. viper's own getters return zero values for malformed
// environment or file values.
type settings struct {
	v   *viper.Viper
	err error
}

func (s *settings) fail(key string, val any, err error) {
	if s.err == nil {
		s.err = fmt.Errorf("%w: %s: invalid value %q: %v", colour.ErrConfiguration, key, fmt.Sprint(val), err)
	}
}

func (s *settings) float(key string) float64 {
	val := s.v.Get(key)
	f, err := cast.ToFloat64E(val)
	if err != nil {
		s.fail(key, val, err)
	}
	return f
}

func (s *settings) int(key string) int {
	val := s.v.Get(key)
	i, err := cast.ToIntE(val)
	if err != nil {
		s.fail(key, val, err)
	}
	return i
}

func (s *settings) bool(key string) bool {
	val := s.v.Get(key)
	b, err := cast.ToBoolE(val)
	if err != nil {
		s.fail(key, val, err)
	}
	return b
}

func (s *settings) string(key string) string {
	val := s.v.Get(key)
	str, err := cast.ToStringE(val)
	if err != nil {
		s.fail(key, val, err)
	}
	return str
}

// paletteConfig reads the palette settings. Range checks are left to
// colour.Config.Validate so file and environment values are held to the
// same rules as flags.
func paletteConfig(v *viper.Viper) (colour.Config, error) {
	s := &settings{v: v}
	cfg := colour.DefaultConfig()

	alg, err := colour.ParseAlgorithm(s.string(keyBackend))
	if err != nil {
		return cfg, err
	}
	cfg.Algorithm = alg
	cfg.Count = s.int(keyColors)
	cfg.Bold = !s.bool(keyNoBold)
	cfg.BoldDelta = s.float(keyBoldDelta)
	cfg.HueRotation = s.float(keyRotateHue)
	cfg.Lightness = s.float(keyLighten)
	cfg.Saturation = s.float(keySaturate)
	cfg.Light = s.bool(keyLight)
	cfg.Anchor = !s.bool(keyNoAdjust)
	cfg.ConvergenceThreshold = s.float(keyKMeansThreshold)
	cfg.MaxIterations = s.int(keyKMeansIterations)
	if s.err != nil {
		return cfg, s.err
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}
