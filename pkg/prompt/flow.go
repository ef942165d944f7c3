// Package prompt runs the interactive questions of the deckgen CLI.
package prompt

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Choices are the answers collected for one render.
type Choices struct {
	Deck     string
	Renderer string
	Output   string
	Theme    string
	Debug    bool
}

// Extensions maps renderer names to the output file extension suggested for
// them.
var Extensions = map[string]string{
	"preview": ".html",
	"pdf":     ".pdf",
}

// Ask fills in Choices starting from defaults. renderers must not be empty;
// the theme question is skipped when themes is empty.
func Ask(ctx context.Context, driver Driver, defaults Choices, renderers, themes []string) (Choices, error) {
	if driver == nil {
		return Choices{}, errors.New("prompt: driver is required")
	}
	if len(renderers) == 0 {
		return Choices{}, errors.New("prompt: no renderers to choose from")
	}
	out := defaults

	deck, err := driver.Input(ctx, InputConfig{
		Message:   "Deck file",
		Default:   defaults.Deck,
		Help:      "JSON or YAML deck description",
		Validator: required,
	})
	if err != nil {
		return Choices{}, err
	}
	out.Deck = strings.TrimSpace(deck)

	idx, err := driver.Select(ctx, SelectConfig{
		Message:      "Output format",
		Options:      renderers,
		DefaultIndex: indexOf(renderers, defaults.Renderer),
	})
	if err != nil {
		return Choices{}, err
	}
	if idx < 0 || idx >= len(renderers) {
		return Choices{}, fmt.Errorf("prompt: renderer selection %d out of range", idx)
	}
	out.Renderer = renderers[idx]

	if len(themes) > 0 {
		options := append([]string{"(deck default)"}, themes...)
		idx, err := driver.Select(ctx, SelectConfig{
			Message:      "Theme",
			Options:      options,
			DefaultIndex: max(indexOf(options, defaults.Theme), 0),
		})
		if err != nil {
			return Choices{}, err
		}
		out.Theme = ""
		if idx > 0 && idx < len(options) {
			out.Theme = options[idx]
		}
	}

	suggested := defaults.Output
	if suggested == "" {
		suggested = OutputPath(out.Deck, out.Renderer)
	}
	output, err := driver.Input(ctx, InputConfig{
		Message: "Write to",
		Default: suggested,
		Help:    "use - for stdout",
	})
	if err != nil {
		return Choices{}, err
	}
	out.Output = strings.TrimSpace(output)
	if out.Output == "" {
		out.Output = suggested
	}

	debug, err := driver.Confirm(ctx, ConfirmConfig{
		Message: "Outline elements for debugging?",
		Default: defaults.Debug,
	})
	if err != nil {
		return Choices{}, err
	}
	out.Debug = debug

	if err := driver.Info(ctx, fmt.Sprintf("Rendering %s as %s to %s", out.Deck, out.Renderer, out.Output)); err != nil {
		return Choices{}, err
	}
	return out, nil
}

// OutputPath swaps the deck extension for the renderer's.
func OutputPath(deck, renderer string) string {
	ext, ok := Extensions[renderer]
	if !ok {
		ext = "." + renderer
	}
	base := strings.TrimSuffix(deck, filepath.Ext(deck))
	if base == "" {
		base = "deck"
	}
	return base + ext
}

func required(value string) error {
	if strings.TrimSpace(value) == "" {
		return errors.New("a value is required")
	}
	return nil
}
