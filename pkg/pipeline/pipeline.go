// Package pipeline wires deck loading, page resolution, asset prefetch and
// rendering behind a single Generate call.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-deckgen/pkg/assets"
	"github.com/goliatone/go-deckgen/pkg/autofit"
	"github.com/goliatone/go-deckgen/pkg/content"
	"github.com/goliatone/go-deckgen/pkg/layout"
	"github.com/goliatone/go-deckgen/pkg/palette"
	"github.com/goliatone/go-deckgen/pkg/render"
	"github.com/goliatone/go-deckgen/pkg/renderers/pdf"
	"github.com/goliatone/go-deckgen/pkg/renderers/preview"
)

const defaultRendererName = preview.Name

// Option customises the pipeline configuration.
type Option func(*Pipeline)

// WithLogger routes progress and warning lines to logger.
func WithLogger(logger *log.Logger) Option {
	return func(p *Pipeline) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(p *Pipeline) {
		p.registry = registry
	}
}

// WithDefaultRenderer overrides the renderer used when a request omits an
// explicit Renderer field.
func WithDefaultRenderer(name string) Option {
	return func(p *Pipeline) {
		p.defaultRenderer = name
	}
}

// WithLayoutRegistry swaps the per-template resolvers.
func WithLayoutRegistry(registry *layout.Registry) Option {
	return func(p *Pipeline) {
		p.layouts = registry
	}
}

// WithAssetProvider sets where image keys are loaded from. Without one every
// image renders as a placeholder.
func WithAssetProvider(provider assets.Provider) Option {
	return func(p *Pipeline) {
		p.provider = provider
	}
}

// WithThemeSelector resolves the deck theme and variant into palette tokens.
func WithThemeSelector(selector theme.ThemeSelector) Option {
	return func(p *Pipeline) {
		p.selector = selector
	}
}

// WithPalette sets the base palette theme tokens are layered over.
func WithPalette(base palette.Palette) Option {
	return func(p *Pipeline) {
		p.palette = base
	}
}

// WithEnvOptions forwards options to every layout.Env the pipeline builds.
func WithEnvOptions(options ...layout.EnvOption) Option {
	return func(p *Pipeline) {
		p.envOptions = append(p.envOptions, options...)
	}
}

// WithConcurrency bounds page resolution and asset prefetch workers.
func WithConcurrency(n int) Option {
	return func(p *Pipeline) {
		if n > 0 {
			p.concurrency = n
		}
	}
}

// WithDivergenceCheck re-fits every recorded text box with m and reports the
// boxes where it settles on a different size than the resolver measurer.
func WithDivergenceCheck(m autofit.Measurer) Option {
	return func(p *Pipeline) {
		p.divergence = m
	}
}

// WithStrictTemplates makes decks naming unknown templates fail to load.
func WithStrictTemplates() Option {
	return func(p *Pipeline) {
		p.parseOptions = append(p.parseOptions, content.WithStrictTemplates())
	}
}

// Pipeline coordinates deck file → resolved pages → rendered output. It
// registers the preview and PDF backends by default while remaining open to
// dependency injection.
type Pipeline struct {
	logger          *log.Logger
	registry        *render.Registry
	defaultRenderer string
	layouts         *layout.Registry
	provider        assets.Provider
	selector        theme.ThemeSelector
	palette         palette.Palette
	envOptions      []layout.EnvOption
	concurrency     int
	divergence      autofit.Measurer
	parseOptions    []content.ParseOption
	initialiseErr   error
}

// New constructs a Pipeline applying any provided options.
func New(options ...Option) *Pipeline {
	p := &Pipeline{
		defaultRenderer: defaultRendererName,
		palette:         palette.Default,
		concurrency:     assets.DefaultConcurrency,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(p)
	}
	p.applyDefaults()
	return p
}

// Request describes one deck to render.
type Request struct {
	// Deck bypasses loading when the caller already holds parsed content.
	Deck *content.Deck
	// Path names a deck file, read from FS when set and from disk otherwise.
	Path string
	FS   fs.FS

	// Renderer names the backend. Empty falls back to the default renderer.
	Renderer string

	// ThemeName and ThemeVariant override the deck's own selection.
	ThemeName    string
	ThemeVariant string

	RenderOptions render.RenderOptions
}

// Result is a rendered deck plus the diagnostics gathered on the way.
type Result struct {
	Output      []byte
	ContentType string
	Renderer    string
	Document    render.Document
	Report      Report
}

// Generate runs the whole pipeline and returns the rendered bytes.
func (p *Pipeline) Generate(ctx context.Context, req Request) (Result, error) {
	if ctx == nil {
		return Result{}, errors.New("pipeline: context is required")
	}
	if err := p.initialiseErr; err != nil {
		return Result{}, err
	}

	renderer, err := p.rendererFor(req.Renderer)
	if err != nil {
		return Result{}, err
	}

	doc, report, err := p.Document(ctx, req)
	if err != nil {
		return Result{}, err
	}

	output, err := renderer.Render(ctx, doc, req.RenderOptions)
	if err != nil {
		return Result{}, fmt.Errorf("pipeline: render output: %w", err)
	}
	p.logger.Printf("[INFO] pipeline: rendered %d pages with %s (%d bytes)", len(doc.Pages), renderer.Name(), len(output))

	return Result{
		Output:      output,
		ContentType: renderer.ContentType(),
		Renderer:    renderer.Name(),
		Document:    doc,
		Report:      report,
	}, nil
}

func (p *Pipeline) loadDeck(req Request) (content.Deck, error) {
	if req.Deck != nil {
		return req.Deck.WithPageIDs(), nil
	}
	if req.Path == "" {
		return content.Deck{}, errors.New("pipeline: deck or path is required")
	}
	var (
		deck content.Deck
		err  error
	)
	if req.FS != nil {
		deck, err = content.LoadFS(req.FS, req.Path, p.parseOptions...)
	} else {
		deck, err = content.Load(req.Path, p.parseOptions...)
	}
	if err != nil {
		return content.Deck{}, fmt.Errorf("pipeline: load deck: %w", err)
	}
	return deck, nil
}

func (p *Pipeline) rendererFor(name string) (render.Renderer, error) {
	if p.registry == nil {
		return nil, errors.New("pipeline: renderer registry is nil")
	}

	target := name
	if target == "" {
		target = p.defaultRenderer
	}

	if target != "" {
		renderer, err := p.registry.Get(target)
		if err == nil {
			return renderer, nil
		}
		if name != "" {
			return nil, fmt.Errorf("pipeline: renderer %q: %w", name, err)
		}
	}

	names := p.registry.List()
	if len(names) == 0 {
		return nil, errors.New("pipeline: no renderers registered")
	}

	renderer, err := p.registry.Get(names[0])
	if err != nil {
		return nil, fmt.Errorf("pipeline: renderer %q: %w", names[0], err)
	}
	return renderer, nil
}

func (p *Pipeline) applyDefaults() {
	if p.logger == nil {
		p.logger = log.New(io.Discard, "", 0)
	}
	if p.layouts == nil {
		p.layouts = layout.NewDefaultRegistry()
	}
	if p.registry == nil {
		p.registry = render.NewRegistry()
		html, err := preview.New()
		if err != nil {
			p.initialiseErr = fmt.Errorf("pipeline: default renderer: %w", err)
			return
		}
		p.registry.MustRegister(html)
		p.registry.MustRegister(pdf.New())
	}
	if p.defaultRenderer == "" {
		p.defaultRenderer = defaultRendererName
	}
}
