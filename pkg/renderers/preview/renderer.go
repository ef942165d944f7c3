package preview

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/goliatone/go-deckgen/pkg/render"
	rendertemplate "github.com/goliatone/go-deckgen/pkg/render/template"
	"github.com/goliatone/go-deckgen/pkg/render/template/pongo"
)

// Name is the registry name of the preview backend.
const Name = "preview"

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	assetURL         func(key string) string
	linkMissing      bool
	stylesheetHref   string
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithAssetURL links images by URL instead of embedding data URIs. Keys
// absent from the document assets still render as placeholders unless
// linkMissing is set, for servers that resolve assets lazily.
func WithAssetURL(fn func(key string) string, linkMissing bool) Option {
	return func(cfg *config) {
		cfg.assetURL = fn
		cfg.linkMissing = linkMissing
	}
}

// WithStylesheetHref links the stylesheet instead of inlining it.
func WithStylesheetHref(href string) Option {
	return func(cfg *config) {
		cfg.stylesheetHref = href
	}
}

// Renderer emits a standalone HTML document with one absolutely positioned
// section per page.
type Renderer struct {
	templates      rendertemplate.TemplateRenderer
	assetURL       func(key string) string
	linkMissing    bool
	stylesheetHref string
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the preview renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := pongo.New(
			pongo.WithFS(cfg.templateFS),
			pongo.WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("preview renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	return &Renderer{
		templates:      renderer,
		assetURL:       cfg.assetURL,
		linkMissing:    cfg.linkMissing,
		stylesheetHref: cfg.stylesheetHref,
	}, nil
}

func (r *Renderer) Name() string {
	return Name
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

func (r *Renderer) Render(ctx context.Context, doc render.Document, options render.RenderOptions) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("preview renderer: context is required")
	}
	if r.templates == nil {
		return nil, fmt.Errorf("preview renderer: template renderer is nil")
	}
	if err := doc.Validate(); err != nil {
		return nil, fmt.Errorf("preview renderer: %w", err)
	}

	pages := make([]pageView, 0, len(doc.Pages))
	for _, page := range doc.Pages {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		pages = append(pages, r.pageView(doc, page, options))
	}

	language := doc.Language
	if language == "" {
		language = "en"
	}
	data := map[string]any{
		"title":              doc.Title,
		"language":           language,
		"font_css":           doc.FontFamily().CSS,
		"stylesheet":         defaultStylesheet(),
		"stylesheet_href":    r.stylesheetHref,
		"placeholder_stroke": render.PlaceholderStroke,
		"debug":              options.Debug,
		"pages":              pages,
	}

	result, err := r.templates.RenderTemplate("templates/deck.tmpl", data)
	if err != nil {
		return nil, fmt.Errorf("preview renderer: render template: %w", err)
	}
	return []byte(result), nil
}
