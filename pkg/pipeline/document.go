package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/goliatone/go-deckgen/pkg/assets"
	"github.com/goliatone/go-deckgen/pkg/autofit"
	"github.com/goliatone/go-deckgen/pkg/content"
	"github.com/goliatone/go-deckgen/pkg/fonts"
	"github.com/goliatone/go-deckgen/pkg/layout"
	"github.com/goliatone/go-deckgen/pkg/palette"
	"github.com/goliatone/go-deckgen/pkg/render"
	"github.com/goliatone/go-deckgen/pkg/scene"
)

// Report collects the non-fatal findings of a run.
type Report struct {
	// Missing maps asset keys that rendered as placeholders to the reason.
	Missing map[string]error
	// Fits lists every auto-fit in deck order.
	Fits []layout.FitRecord
	// Divergences is filled when a divergence measurer is configured.
	Divergences []autofit.Divergence
}

// Document loads and resolves the deck in req and prefetches its assets
// without rendering.
func (p *Pipeline) Document(ctx context.Context, req Request) (render.Document, Report, error) {
	if ctx == nil {
		return render.Document{}, Report{}, errors.New("pipeline: context is required")
	}
	if err := ctx.Err(); err != nil {
		return render.Document{}, Report{}, err
	}

	deck, err := p.loadDeck(req)
	if err != nil {
		return render.Document{}, Report{}, err
	}

	pal, err := p.paletteFor(deck, req)
	if err != nil {
		return render.Document{}, Report{}, err
	}

	var (
		mu   sync.Mutex
		fits []layout.FitRecord
	)
	observer := func(rec layout.FitRecord) {
		mu.Lock()
		fits = append(fits, rec)
		mu.Unlock()
	}
	envOptions := append([]layout.EnvOption{layout.WithPalette(pal)}, p.envOptions...)
	envOptions = append(envOptions, layout.WithFitObserver(observer))
	env, err := layout.NewEnv(envOptions...)
	if err != nil {
		return render.Document{}, Report{}, fmt.Errorf("pipeline: layout env: %w", err)
	}

	pages, err := p.resolvePages(ctx, deck, env)
	if err != nil {
		return render.Document{}, Report{}, err
	}
	p.logger.Printf("[INFO] pipeline: resolved %d pages", len(pages))

	keys := imageKeys(pages)
	fetched := assets.Prefetch(ctx, p.provider, keys, assets.WithConcurrency(p.concurrency))
	for _, key := range sortedKeys(fetched.Missing) {
		p.logger.Printf("[WARN] pipeline: asset %q unavailable, drawing placeholder: %v", key, fetched.Missing[key])
	}

	report := Report{Missing: fetched.Missing, Fits: orderFits(fits, pages)}
	for _, rec := range report.Fits {
		if rec.State.Overflow {
			p.logger.Printf("[WARN] pipeline: %s still overflows at %g", rec.Case.Name, rec.State.Value)
		}
	}
	if p.divergence != nil {
		report.Divergences = autofit.Compare(env.Measurer, p.divergence, cases(report.Fits))
		for _, d := range report.Divergences {
			p.logger.Printf("[WARN] pipeline: fit divergence %s: resolver %g, check %g", d.Case, d.A, d.B)
		}
	}

	doc := render.Document{
		Title:    deck.Title,
		Language: deck.Language,
		Font:     fonts.ForLanguage(deck.Language),
		Canvas:   env.Canvas,
		Pages:    pages,
		Assets:   fetched.Set,
	}
	return doc, report, nil
}

func (p *Pipeline) paletteFor(deck content.Deck, req Request) (palette.Palette, error) {
	name, variant := deck.Theme, deck.Variant
	if req.ThemeName != "" {
		name = req.ThemeName
	}
	if req.ThemeVariant != "" {
		variant = req.ThemeVariant
	}
	if p.selector == nil {
		if name != "" {
			p.logger.Printf("[WARN] pipeline: theme %q requested but no theme selector configured", name)
		}
		return p.palette, nil
	}
	selection, err := p.selector.Select(name, variant)
	if err != nil {
		return palette.Palette{}, fmt.Errorf("pipeline: select theme %q: %w", name, err)
	}
	return palette.FromSelection(p.palette, selection), nil
}

// resolvePages resolves every page concurrently. Results land by index so
// deck order is preserved.
func (p *Pipeline) resolvePages(ctx context.Context, deck content.Deck, env layout.Env) ([]scene.Page, error) {
	pages := make([]scene.Page, len(deck.Pages))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.concurrency)
	for i, page := range deck.Pages {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			pages[i] = p.layouts.Resolve(page, env)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("pipeline: resolve pages: %w", err)
	}
	return pages, nil
}

func imageKeys(pages []scene.Page) []string {
	var keys []string
	for _, page := range pages {
		keys = append(keys, page.ImageKeys()...)
	}
	return keys
}

func sortedKeys(m map[string]error) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// orderFits sorts records by page position, keeping each page's fits in the
// order its resolver performed them.
func orderFits(fits []layout.FitRecord, pages []scene.Page) []layout.FitRecord {
	position := make(map[string]int, len(pages))
	for i, page := range pages {
		position[page.ID] = i
	}
	sort.SliceStable(fits, func(i, j int) bool {
		return position[fits[i].Page] < position[fits[j].Page]
	})
	return fits
}

func cases(fits []layout.FitRecord) []autofit.Case {
	out := make([]autofit.Case, len(fits))
	for i, rec := range fits {
		out[i] = rec.Case
	}
	return out
}
