package colour

import (
	"fmt"

	"github.com/hashicorp/go-hclog"
)

// Generator turns a pixel buffer into a terminal palette.
type Generator struct {
	logger hclog.Logger
}

// NewGenerator creates a Generator. A nil logger discards output.
func NewGenerator(logger hclog.Logger) *Generator {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Generator{logger: logger}
}

// Generate quantizes buf with the configured algorithm and runs the result
// through the transform pipeline. It fails only for an invalid buffer or an
// out-of-range configuration, and never returns a partial palette.
func (g *Generator) Generate(buf PixelBuffer, cfg Config) (*Palette, error) {
	if err := buf.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	quantizer, err := NewQuantizer(cfg, g.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create quantizer: %w", err)
	}

	g.logger.Debug("quantizing image",
		"width", buf.Width,
		"height", buf.Height,
		"pixels", buf.Len(),
		"algorithm", cfg.Algorithm,
		"colors", cfg.Count,
	)
	raw := quantizer.Quantize(buf, cfg.Count)
	g.logger.Debug("quantized", "colors", len(raw))

	colors := Transform(raw, cfg)
	g.logger.Debug("transformed palette",
		"colors", len(colors),
		"bold", cfg.Bold,
		"anchor", cfg.Anchor,
		"light", cfg.Light,
	)

	return NewPalette(colors), nil
}

// Generate runs a Generator with logging disabled.
func Generate(buf PixelBuffer, cfg Config) (*Palette, error) {
	return NewGenerator(nil).Generate(buf, cfg)
}
