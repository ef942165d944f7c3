// Package palette holds the named fallback colours resolvers substitute for
// missing or malformed content colours, and maps go-theme tokens onto them.
package palette

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	theme "github.com/goliatone/go-theme"
)

// Token names read from theme manifests.
const (
	TokenPrimary     = "primary"
	TokenSecondary   = "secondary"
	TokenAccent      = "accent"
	TokenBackground  = "background"
	TokenSurface     = "surface"
	TokenText        = "text"
	TokenMuted       = "muted"
	TokenLine        = "line"
	TokenPlaceholder = "placeholder"
	TokenOverlay     = "overlay"
	// TokenSeries is a comma separated list of colours cycled by cards and
	// circles.
	TokenSeries = "series"
)

// Palette is the set of named colours passed explicitly to every resolver.
type Palette struct {
	Primary     string   `json:"primary" yaml:"primary"`
	Secondary   string   `json:"secondary" yaml:"secondary"`
	Accent      string   `json:"accent" yaml:"accent"`
	Background  string   `json:"background" yaml:"background"`
	Surface     string   `json:"surface" yaml:"surface"`
	Text        string   `json:"text" yaml:"text"`
	Muted       string   `json:"muted" yaml:"muted"`
	Line        string   `json:"line" yaml:"line"`
	Placeholder string   `json:"placeholder" yaml:"placeholder"`
	Overlay     string   `json:"overlay" yaml:"overlay"`
	Series      []string `json:"series" yaml:"series"`
}

// Default is the built-in palette.
var Default = Palette{
	Primary:     "#1f3a5f",
	Secondary:   "#4a6fa5",
	Accent:      "#e07a2f",
	Background:  "#ffffff",
	Surface:     "#f4f6f9",
	Text:        "#1d232b",
	Muted:       "#5f6b7a",
	Line:        "#9aa5b4",
	Placeholder: "#d9dee5",
	Overlay:     "#0b1a2b",
	Series:      []string{"#1f3a5f", "#e07a2f", "#3c8d7c", "#8e5ba8", "#c44d58", "#4a6fa5"},
}

// SeriesColor cycles through the series colours.
func (p Palette) SeriesColor(i int) string {
	if len(p.Series) == 0 {
		return p.Primary
	}
	if i < 0 {
		i = -i
	}
	return p.Series[i%len(p.Series)]
}

// Or returns the normalised colour when it parses, fallback otherwise.
func (p Palette) Or(color, fallback string) string {
	if normalized, ok := Normalize(color); ok {
		return normalized
	}
	return fallback
}

// Merge overlays valid token values onto the palette. Unknown tokens and
// unparsable colours are ignored.
func (p Palette) Merge(tokens map[string]string) Palette {
	out := p
	out.Series = append([]string(nil), p.Series...)
	for key, value := range tokens {
		name := strings.ToLower(strings.TrimSpace(key))
		if name == TokenSeries {
			if series := parseSeries(value); len(series) > 0 {
				out.Series = series
			}
			continue
		}
		color, ok := Normalize(value)
		if !ok {
			continue
		}
		switch name {
		case TokenPrimary:
			out.Primary = color
		case TokenSecondary:
			out.Secondary = color
		case TokenAccent:
			out.Accent = color
		case TokenBackground:
			out.Background = color
		case TokenSurface:
			out.Surface = color
		case TokenText:
			out.Text = color
		case TokenMuted:
			out.Muted = color
		case TokenLine:
			out.Line = color
		case TokenPlaceholder:
			out.Placeholder = color
		case TokenOverlay:
			out.Overlay = color
		}
	}
	return out
}

// FromSelection derives a palette from a go-theme selection: manifest tokens
// first, then the selected variant's tokens.
func FromSelection(base Palette, selection *theme.Selection) Palette {
	if selection == nil || selection.Manifest == nil {
		return base
	}
	out := base.Merge(selection.Manifest.Tokens)
	if variant, ok := selection.Manifest.Variants[selection.Variant]; ok {
		out = out.Merge(variant.Tokens)
	}
	return out
}

func parseSeries(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if color, ok := Normalize(part); ok {
			out = append(out, color)
		}
	}
	return out
}

// RGB is an 8-bit colour.
type RGB struct {
	R, G, B uint8
}

var errBadColor = errors.New("palette: invalid hex colour")

// ParseHex parses #rgb or #rrggbb (the leading # is optional).
func ParseHex(s string) (RGB, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	switch len(hex) {
	case 3:
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	case 6:
	default:
		return RGB{}, fmt.Errorf("%w: %q", errBadColor, s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return RGB{}, fmt.Errorf("%w: %q", errBadColor, s)
	}
	return RGB{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
}

// RGBOr parses a colour, returning fallback when it is invalid.
func RGBOr(s string, fallback RGB) RGB {
	c, err := ParseHex(s)
	if err != nil {
		return fallback
	}
	return c
}

// Hex formats the colour as #rrggbb.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Normalize returns the lowercase #rrggbb form of a valid colour.
func Normalize(s string) (string, bool) {
	c, err := ParseHex(s)
	if err != nil {
		return "", false
	}
	return c.Hex(), true
}

// Luminance returns the relative luminance in [0, 1], used to choose a
// readable text colour on coloured fills.
func (c RGB) Luminance() float64 {
	return (0.2126*float64(c.R) + 0.7152*float64(c.G) + 0.0722*float64(c.B)) / 255
}

// Contrast returns light on dark fills and dark on light fills.
func (p Palette) Contrast(fill string) string {
	if RGBOr(fill, RGB{}).Luminance() < 0.55 {
		return p.Background
	}
	return p.Text
}
