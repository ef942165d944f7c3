package deckgen

import (
	"context"

	"github.com/goliatone/go-deckgen/pkg/content"
	"github.com/goliatone/go-deckgen/pkg/pipeline"
	"github.com/goliatone/go-deckgen/pkg/render"
	"github.com/goliatone/go-deckgen/pkg/renderers/pdf"
	"github.com/goliatone/go-deckgen/pkg/renderers/preview"
	theme "github.com/goliatone/go-theme"
)

// Deck aliases content.Deck so callers can build decks from the root package.
type Deck = content.Deck

// RenderOptions describes per-request overrides such as element offsets and
// debug outlines.
type RenderOptions = render.RenderOptions

// NewPipeline exposes the pipeline constructor from the top-level module.
func NewPipeline(options ...pipeline.Option) *pipeline.Pipeline {
	return pipeline.New(options...)
}

// ParseDeck decodes a JSON or YAML deck.
func ParseDeck(data []byte) (Deck, error) {
	return content.Parse(data)
}

// LoadDeck reads and decodes a deck file.
func LoadDeck(path string) (Deck, error) {
	return content.Load(path)
}

// GenerateHTML loads the deck file at path and renders the HTML preview.
func GenerateHTML(ctx context.Context, path string, options ...pipeline.Option) ([]byte, error) {
	return generate(ctx, pipeline.Request{Path: path, Renderer: preview.Name}, options)
}

// GeneratePDF loads the deck file at path and exports it as PDF.
func GeneratePDF(ctx context.Context, path string, options ...pipeline.Option) ([]byte, error) {
	return generate(ctx, pipeline.Request{Path: path, Renderer: pdf.Name}, options)
}

// GenerateFromDeck renders an already parsed deck with the named renderer.
func GenerateFromDeck(ctx context.Context, deck Deck, rendererName string, options ...pipeline.Option) ([]byte, error) {
	return generate(ctx, pipeline.Request{Deck: &deck, Renderer: rendererName}, options)
}

// WithThemeSelector passes a go-theme selector through to the pipeline so the
// deck theme and variant resolve into palette colours.
func WithThemeSelector(selector theme.ThemeSelector) pipeline.Option {
	return pipeline.WithThemeSelector(selector)
}

func generate(ctx context.Context, req pipeline.Request, options []pipeline.Option) ([]byte, error) {
	result, err := pipeline.New(options...).Generate(ctx, req)
	if err != nil {
		return nil, err
	}
	return result.Output, nil
}
