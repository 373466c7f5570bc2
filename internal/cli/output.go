package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/jmylchreest/termtint/internal/colour"
)

// Output formats.
const (
	formatHex  = "hex"
	formatRGB  = "rgb"
	formatJSON = "json"
)

// Colour modes for styled output.
const (
	colorAuto   = "auto"
	colorAlways = "always"
	colorNever  = "never"
)

type outputOpts struct {
	format    string
	uppercase bool
	color     string
}

func outputOptions(v *viper.Viper) (outputOpts, error) {
	s := &settings{v: v}
	opts := outputOpts{
		format:    strings.ToLower(s.string(keyFormat)),
		uppercase: !s.bool(keyLowercase),
		color:     strings.ToLower(s.string(keyColor)),
	}
	if s.err != nil {
		return opts, s.err
	}

	switch opts.format {
	case formatHex, formatRGB, formatJSON:
	default:
		return opts, fmt.Errorf("unsupported format: %s (supported: hex, rgb, json)", opts.format)
	}
	switch opts.color {
	case colorAuto, colorAlways, colorNever:
	default:
		return opts, fmt.Errorf("invalid color mode: %s (valid: auto, always, never)", opts.color)
	}
	return opts, nil
}

// styled reports whether lines written to w get colour swatches.
func (o outputOpts) styled(w io.Writer) bool {
	switch o.color {
	case colorAlways:
		return true
	case colorNever:
		return false
	}
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// writePalette prints one colour per line, or the whole palette as JSON.
func writePalette(w io.Writer, palette *colour.Palette, opts outputOpts) error {
	if opts.format == formatJSON {
		data, err := palette.ToJSON(opts.uppercase)
		if err != nil {
			return fmt.Errorf("failed to convert to JSON: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	}

	var renderer *lipgloss.Renderer
	if opts.styled(w) {
		renderer = lipgloss.NewRenderer(w)
		renderer.SetColorProfile(termenv.TrueColor)
	}

	lines := palette.ToHex(opts.uppercase)
	if opts.format == formatRGB {
		for i, rgb := range palette.ToRGBSlice() {
			lines[i] = rgb.String()
		}
	}

	var sb strings.Builder
	for i, c := range palette.All() {
		line := lines[i]
		if renderer != nil {
			line = swatch(renderer, c).Render(line)
		}
		sb.WriteString(line)
		sb.WriteByte('\n')
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

// swatch paints text in the colour's contrasting text colour on the colour.
func swatch(r *lipgloss.Renderer, c colour.Color) lipgloss.Style {
	return r.NewStyle().
		Background(lipgloss.Color(c.Hex(true))).
		Foreground(lipgloss.Color(c.TextColor().Hex(true)))
}
