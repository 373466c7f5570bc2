// Package cli provides the command-line interface for termtint.
package cli

import (
	"fmt"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jmylchreest/termtint/internal/colour"
	"github.com/jmylchreest/termtint/internal/image"
	"github.com/jmylchreest/termtint/internal/util/imagecache"
	"github.com/jmylchreest/termtint/internal/version"
)

// NewRootCmd builds the termtint command tree. Each call returns an
// independent command with its own flag and configuration state.
func NewRootCmd() *cobra.Command {
	var configFile string

	cmd := &cobra.Command{
		Use:   "termtint [flags] <image>",
		Short: "Generate a terminal colour palette from an image",
		Long: `termtint extracts a terminal colour palette from an image.

Colours are quantized with median cut or perceptual k-means, ordered from
darkest to lightest, anchored towards black and white, and extended with
lighter bold variants.

The image may be a file, a directory (a random image is picked) or an
HTTP(S) URL. Supported image formats: JPEG, PNG, GIF, WebP

Examples:
  # 8 colours plus 8 bold variants
  termtint wallpaper.jpg

  # 16 colours using k-means, no bold variants
  termtint -c 16 --backend kmeans --no-bold wallpaper.png

  # Light theme with warmer hues, as JSON
  termtint --light --rotate-hue 15 -f json wallpaper.jpg`,
		Version:      version.String(),
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := loadConfig(cmd.Flags(), configFile)
			if err != nil {
				return err
			}
			return runGenerate(cmd, v, args[0])
		},
	}

	cmd.SetVersionTemplate("{{.Version}}\n")
	registerFlags(cmd.Flags())
	cmd.Flags().StringVar(&configFile, "config", "", "config file (default: $XDG_CONFIG_HOME/termtint/config.{toml,yaml,json})")

	cmd.AddCommand(newVersionCmd())

	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print detailed version information including build date, commit hash, and Go version.`,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.String())
		},
	}
}

func newLogger(cmd *cobra.Command, verbose bool) hclog.Logger {
	level := hclog.Warn
	if verbose {
		level = hclog.Debug
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:   "termtint",
		Level:  level,
		Output: cmd.ErrOrStderr(),
	})
}

// runGenerate loads the image, generates the palette and prints it.
func runGenerate(cmd *cobra.Command, v *viper.Viper, path string) error {
	s := &settings{v: v}
	verbose := s.bool(keyVerbose)
	noCache := s.bool(keyNoCache)
	cacheDir := s.string(keyCacheDir)
	if s.err != nil {
		return s.err
	}
	logger := newLogger(cmd, verbose)

	cfg, err := paletteConfig(v)
	if err != nil {
		return err
	}
	out, err := outputOptions(v)
	if err != nil {
		return err
	}

	if err := image.ValidateImagePath(path); err != nil {
		return fmt.Errorf("invalid image path: %w", err)
	}
	resolved, err := image.ResolveImagePath(path)
	if err != nil {
		return err
	}
	logger.Debug("loading image", "path", resolved)

	var cache *imagecache.Cache
	if image.IsURL(resolved) {
		cache = downloadCache(noCache, cacheDir, logger)
	}
	img, err := image.NewSmartLoader(cache, logger).Load(cmd.Context(), resolved)
	if err != nil {
		return fmt.Errorf("failed to load image: %w", err)
	}
	bounds := img.Bounds()
	logger.Debug("image loaded", "width", bounds.Dx(), "height", bounds.Dy())

	palette, err := colour.NewGenerator(logger).Generate(image.ToPixelBuffer(img), cfg)
	if err != nil {
		return fmt.Errorf("failed to generate palette: %w", err)
	}
	logger.Trace("generated palette", "palette", palette.String())
	if n := palette.Len(); n > 1 {
		first, _ := palette.Get(0)
		last, _ := palette.Get(n - 1)
		logger.Debug("palette contrast",
			"first", first.Hex(true),
			"last", last.Hex(true),
			"ratio", colour.ContrastRatio(first, last))
	}

	return writePalette(cmd.OutOrStdout(), palette, out)
}

// downloadCache returns the cache for URL inputs, or nil when caching is
// disabled or unavailable.
func downloadCache(disabled bool, dir string, logger hclog.Logger) *imagecache.Cache {
	if disabled {
		return nil
	}
	cache, err := imagecache.New(dir)
	if err != nil {
		logger.Warn("image cache disabled", "error", err)
		return nil
	}
	return cache
}
