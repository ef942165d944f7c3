// Package config loads deckgen settings from a JSON or YAML file. Command
// line flags override individual fields after loading.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-deckgen/pkg/palette"
)

// Config is the on-disk configuration.
type Config struct {
	// Renderer is the default backend name ("preview" or "pdf").
	Renderer string `json:"renderer" yaml:"renderer"`
	// Output is the default output path; empty writes to stdout.
	Output string `json:"output" yaml:"output"`
	// Year replaces an empty cover year. Empty means the current year.
	Year        string `json:"year" yaml:"year"`
	Concurrency int    `json:"concurrency" yaml:"concurrency"`
	// StrictTemplates rejects decks naming templates outside the catalog.
	StrictTemplates bool `json:"strictTemplates" yaml:"strictTemplates"`
	Debug           bool `json:"debug" yaml:"debug"`
	// DivergenceCheck re-fits text with real glyph metrics and logs boxes
	// where the result differs from the estimator.
	DivergenceCheck bool `json:"divergenceCheck" yaml:"divergenceCheck"`

	Assets AssetConfig `json:"assets" yaml:"assets"`
	Theme  ThemeConfig `json:"theme" yaml:"theme"`
	Fonts  []FontFile  `json:"fonts" yaml:"fonts"`
}

// AssetConfig selects where image keys are loaded from. SQLite wins when both
// are set.
type AssetConfig struct {
	Dir    string `json:"dir" yaml:"dir"`
	SQLite string `json:"sqlite" yaml:"sqlite"`
}

// ThemeConfig names the manifest directory and the default selection.
type ThemeConfig struct {
	Dir     string `json:"dir" yaml:"dir"`
	Name    string `json:"name" yaml:"name"`
	Variant string `json:"variant" yaml:"variant"`
	// Tokens overlay the built-in palette before any theme applies.
	Tokens map[string]string `json:"tokens" yaml:"tokens"`
}

// FontFile maps a font family name to TrueType files for the PDF backend.
type FontFile struct {
	Family  string `json:"family" yaml:"family"`
	Regular string `json:"regular" yaml:"regular"`
	Bold    string `json:"bold" yaml:"bold"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{Renderer: "preview", Concurrency: 4}
}

// Load reads and parses a configuration file.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(data, path)
}

// Parse decodes JSON first and falls back to YAML. Unset fields keep their
// defaults.
func Parse(data []byte, source string) (Config, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return Config{}, fmt.Errorf("config: file %s is empty", source)
	}

	cfg := Default()
	if err := json.Unmarshal(data, &cfg); err != nil {
		cfg = Default()
		if yerr := yaml.Unmarshal(data, &cfg); yerr != nil {
			return Config{}, fmt.Errorf("config: parse %s: invalid JSON or YAML", source)
		}
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", source, err)
	}
	return cfg, nil
}

var errInvalid = errors.New("invalid configuration")

// Validate reports settings no run could use.
func (c Config) Validate() error {
	if c.Concurrency < 0 {
		return fmt.Errorf("%w: concurrency must not be negative", errInvalid)
	}
	for i, font := range c.Fonts {
		if strings.TrimSpace(font.Family) == "" || strings.TrimSpace(font.Regular) == "" {
			return fmt.Errorf("%w: fonts[%d] needs family and regular", errInvalid, i)
		}
	}
	for key, value := range c.Theme.Tokens {
		if key == palette.TokenSeries {
			continue
		}
		if _, ok := palette.Normalize(value); !ok {
			return fmt.Errorf("%w: theme token %q has invalid colour %q", errInvalid, key, value)
		}
	}
	return nil
}

// Palette returns the built-in palette with the configured tokens applied.
func (c Config) Palette() palette.Palette {
	return palette.Default.Merge(c.Theme.Tokens)
}
