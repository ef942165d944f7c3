package pipeline_test

import (
	"bytes"
	"context"
	"errors"
	"image/color"
	"log"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-deckgen/pkg/assets"
	"github.com/goliatone/go-deckgen/pkg/autofit"
	"github.com/goliatone/go-deckgen/pkg/content"
	"github.com/goliatone/go-deckgen/pkg/layout"
	"github.com/goliatone/go-deckgen/pkg/pipeline"
	"github.com/goliatone/go-deckgen/pkg/render"
	"github.com/goliatone/go-deckgen/pkg/scene"
	"github.com/goliatone/go-deckgen/pkg/testsupport"
)

type captureRenderer struct {
	doc     render.Document
	options render.RenderOptions
}

func (c *captureRenderer) Name() string        { return "capture" }
func (c *captureRenderer) ContentType() string { return "text/plain" }

func (c *captureRenderer) Render(_ context.Context, doc render.Document, options render.RenderOptions) ([]byte, error) {
	c.doc = doc
	c.options = options
	return []byte("ok"), nil
}

type selectorCall struct {
	name    string
	variant string
}

type stubThemeSelector struct {
	selection *theme.Selection
	err       error
	calls     []selectorCall
}

func (s *stubThemeSelector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	s.calls = append(s.calls, selectorCall{name: name, variant: variant})
	return s.selection, s.err
}

func captureRegistry() (*render.Registry, *captureRenderer) {
	renderer := &captureRenderer{}
	registry := render.NewRegistry()
	registry.MustRegister(renderer)
	return registry, renderer
}

func TestPipeline_PreservesDeckOrder(t *testing.T) {
	registry, renderer := captureRegistry()
	deck := testsupport.SampleDeck()

	p := pipeline.New(
		pipeline.WithRegistry(registry),
		pipeline.WithDefaultRenderer(renderer.Name()),
		pipeline.WithConcurrency(3),
		pipeline.WithEnvOptions(layout.WithYear("2024")),
	)
	result, err := p.Generate(testsupport.Context(), pipeline.Request{Deck: &deck})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if string(result.Output) != "ok" || result.Renderer != "capture" {
		t.Fatalf("unexpected result %+v", result)
	}
	if len(renderer.doc.Pages) != len(deck.Pages) {
		t.Fatalf("expected %d pages, got %d", len(deck.Pages), len(renderer.doc.Pages))
	}
	for i, page := range deck.Pages {
		got := renderer.doc.Pages[i]
		if got.ID != page.ID || got.Template != string(page.Tag()) {
			t.Fatalf("page %d: expected %s/%s, got %s/%s", i, page.ID, page.Tag(), got.ID, got.Template)
		}
	}
	if renderer.doc.Font.Name != "Inter" {
		t.Fatalf("expected latin font family, got %+v", renderer.doc.Font)
	}
}

func TestPipeline_MissingAssetsAreReportedNotFatal(t *testing.T) {
	registry, renderer := captureRegistry()
	deck := testsupport.SampleDeck()
	provider := assets.NewMemory(map[string][]byte{
		"map.png": testsupport.PNG(t, 4, 4, color.NRGBA{B: 200, A: 255}),
	})

	var logs bytes.Buffer
	p := pipeline.New(
		pipeline.WithRegistry(registry),
		pipeline.WithDefaultRenderer(renderer.Name()),
		pipeline.WithAssetProvider(provider),
		pipeline.WithLogger(log.New(&logs, "", 0)),
	)
	result, err := p.Generate(testsupport.Context(), pipeline.Request{Deck: &deck})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, ok := renderer.doc.Assets.Get("map.png"); !ok {
		t.Fatalf("expected map.png prefetched")
	}
	for _, key := range []string{"photo-1.png", "missing.png"} {
		if !errors.Is(result.Report.Missing[key], assets.ErrNotFound) {
			t.Fatalf("expected %s reported missing, got %v", key, result.Report.Missing)
		}
	}
	if !strings.Contains(logs.String(), `[WARN] pipeline: asset "missing.png" unavailable`) {
		t.Fatalf("expected missing asset warning, got:\n%s", logs.String())
	}
}

func TestPipeline_ThemeSelectionFeedsPalette(t *testing.T) {
	registry, renderer := captureRegistry()
	selector := &stubThemeSelector{selection: &theme.Selection{
		Theme:   "acme",
		Variant: "dark",
		Manifest: &theme.Manifest{
			Tokens: map[string]string{"primary": "#123456"},
			Variants: map[string]theme.Variant{
				"dark": {Tokens: map[string]string{"background": "#000000"}},
			},
		},
	}}
	deck := content.Deck{
		Theme:   "acme",
		Variant: "light",
		Pages: []content.Page{
			content.NewPage("cover", content.Cover{Title: "Hello"}),
			content.NewPage("next", content.Timeline{Heading: "Plan"}),
		},
	}

	p := pipeline.New(
		pipeline.WithRegistry(registry),
		pipeline.WithDefaultRenderer(renderer.Name()),
		pipeline.WithThemeSelector(selector),
	)
	if _, err := p.Generate(testsupport.Context(), pipeline.Request{Deck: &deck, ThemeVariant: "dark"}); err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(selector.calls) != 1 || selector.calls[0] != (selectorCall{name: "acme", variant: "dark"}) {
		t.Fatalf("unexpected selector calls %+v", selector.calls)
	}
	if got := renderer.doc.Pages[0].Background; got != "#123456" {
		t.Fatalf("expected manifest primary on cover, got %q", got)
	}
	if got := renderer.doc.Pages[1].Background; got != "#000000" {
		t.Fatalf("expected variant background, got %q", got)
	}
}

func TestPipeline_ThemeErrorIsFatal(t *testing.T) {
	registry, renderer := captureRegistry()
	selector := &stubThemeSelector{err: errors.New("no such theme")}
	deck := testsupport.SampleDeck()

	p := pipeline.New(
		pipeline.WithRegistry(registry),
		pipeline.WithDefaultRenderer(renderer.Name()),
		pipeline.WithThemeSelector(selector),
	)
	if _, err := p.Generate(testsupport.Context(), pipeline.Request{Deck: &deck}); err == nil {
		t.Fatalf("expected theme selection error")
	}
}

func TestPipeline_UnknownRenderer(t *testing.T) {
	deck := testsupport.SampleDeck()
	_, err := pipeline.New().Generate(testsupport.Context(), pipeline.Request{Deck: &deck, Renderer: "docx"})
	if !errors.Is(err, render.ErrUnknownRenderer) {
		t.Fatalf("expected ErrUnknownRenderer, got %v", err)
	}
}

func TestPipeline_DefaultsRenderPreviewAndPDF(t *testing.T) {
	deck := testsupport.SampleDeck()
	p := pipeline.New()

	html, err := p.Generate(testsupport.Context(), pipeline.Request{Deck: &deck})
	if err != nil {
		t.Fatalf("preview: %v", err)
	}
	if !strings.HasPrefix(html.ContentType, "text/html") {
		t.Fatalf("expected preview default, got %s", html.ContentType)
	}

	doc, err := p.Generate(testsupport.Context(), pipeline.Request{Deck: &deck, Renderer: "pdf"})
	if err != nil {
		t.Fatalf("pdf: %v", err)
	}
	if !bytes.HasPrefix(doc.Output, []byte("%PDF-")) {
		t.Fatalf("expected PDF output")
	}
}

func TestPipeline_LoadsDeckFromPath(t *testing.T) {
	registry, renderer := captureRegistry()
	p := pipeline.New(pipeline.WithRegistry(registry), pipeline.WithDefaultRenderer(renderer.Name()))

	if _, err := p.Generate(testsupport.Context(), pipeline.Request{Path: "../content/testdata/deck.yaml"}); err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(renderer.doc.Pages) == 0 {
		t.Fatalf("expected pages from deck file")
	}
	last := renderer.doc.Pages[len(renderer.doc.Pages)-1]
	if last.Count(scene.KindText) == 0 {
		t.Fatalf("expected placeholder text on unknown template page")
	}

	strict := pipeline.New(pipeline.WithRegistry(registry), pipeline.WithStrictTemplates())
	_, err := strict.Generate(testsupport.Context(), pipeline.Request{Path: "../content/testdata/deck.yaml"})
	if !errors.Is(err, content.ErrUnknownTemplate) {
		t.Fatalf("expected ErrUnknownTemplate in strict mode, got %v", err)
	}
}

func TestPipeline_ReportsFitsAndDivergence(t *testing.T) {
	registry, renderer := captureRegistry()
	deck := testsupport.SampleDeck()
	face, err := autofit.NewFaceMeasurer(nil)
	if err != nil {
		t.Fatalf("face measurer: %v", err)
	}

	p := pipeline.New(
		pipeline.WithRegistry(registry),
		pipeline.WithDefaultRenderer(renderer.Name()),
		pipeline.WithDivergenceCheck(face),
	)
	result, err := p.Generate(testsupport.Context(), pipeline.Request{Deck: &deck})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(result.Report.Fits) == 0 {
		t.Fatalf("expected fit records")
	}
	if result.Report.Fits[0].Page != "cover" {
		t.Fatalf("expected fits in deck order, first was %s", result.Report.Fits[0].Page)
	}
	names := make(map[string]bool, len(result.Report.Fits))
	for _, rec := range result.Report.Fits {
		names[rec.Case.Name] = true
	}
	for _, d := range result.Report.Divergences {
		if !names[d.Case] {
			t.Fatalf("divergence %s does not match a recorded fit", d.Case)
		}
	}
}

func TestPipeline_RequiresDeckOrPath(t *testing.T) {
	if _, err := pipeline.New().Generate(context.Background(), pipeline.Request{}); err == nil {
		t.Fatalf("expected error without deck or path")
	}
}

func longMapList(n int) content.MapTextList {
	items := make([]content.ListItem, n)
	for i := range items {
		items[i] = content.ListItem{Title: "Region", Body: strings.Repeat("detail ", 20)}
	}
	return content.MapTextList{Heading: "Regions", Items: items}
}

type doubled struct{ base autofit.Measurer }

func (d doubled) Measure(text string, size, width, lineHeight float64) float64 {
	return 2 * d.base.Measure(text, size, width, lineHeight)
}

func TestPipeline_ReportsListScaleFit(t *testing.T) {
	registry, renderer := captureRegistry()
	deck := content.Deck{Pages: []content.Page{
		content.NewPage("regions", longMapList(30)),
		content.NewPage("short", longMapList(3)),
	}}

	var logs bytes.Buffer
	p := pipeline.New(
		pipeline.WithRegistry(registry),
		pipeline.WithDefaultRenderer(renderer.Name()),
		pipeline.WithLogger(log.New(&logs, "", 0)),
		pipeline.WithDivergenceCheck(doubled{base: autofit.NewEstimator()}),
	)
	result, err := p.Generate(testsupport.Context(), pipeline.Request{Deck: &deck})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	scales := map[string]autofit.State{}
	for _, rec := range result.Report.Fits {
		if rec.Element == "item-list" {
			scales[rec.Page] = rec.State
		}
	}
	if len(scales) != 2 {
		t.Fatalf("expected a list scale record per page, got %+v", scales)
	}
	if !scales["regions"].Overflow || scales["regions"].Value != layout.MapListScaleFit.Min {
		t.Fatalf("expected long list to overflow at minimum scale, got %+v", scales["regions"])
	}
	if !strings.Contains(logs.String(), "[WARN] pipeline: regions/item-list still overflows") {
		t.Fatalf("expected overflow warning for the list, got:\n%s", logs.String())
	}

	diverged := false
	for _, d := range result.Report.Divergences {
		if d.Case == "short/item-list" {
			diverged = true
		}
	}
	if !diverged {
		t.Fatalf("expected the short list to diverge under a taller measurer, got %+v", result.Report.Divergences)
	}
}

func TestPipeline_DefaultsPageIDsForInMemoryDecks(t *testing.T) {
	registry, renderer := captureRegistry()
	deck := content.Deck{Pages: []content.Page{
		content.NewPage("", content.Cover{Title: "One"}),
		content.NewPage("dup", content.Cover{Title: "Two"}),
		content.NewPage("dup", content.Cover{Title: "Three"}),
	}}

	p := pipeline.New(
		pipeline.WithRegistry(registry),
		pipeline.WithDefaultRenderer(renderer.Name()),
		pipeline.WithConcurrency(3),
	)
	result, err := p.Generate(testsupport.Context(), pipeline.Request{Deck: &deck})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	var ids []string
	for _, page := range renderer.doc.Pages {
		ids = append(ids, page.ID)
	}
	if diff := cmp.Diff([]string{"page-1", "dup", "dup-3"}, ids); diff != "" {
		t.Fatalf("page ids mismatch (-want +got):\n%s", diff)
	}
	var fitPages []string
	for _, rec := range result.Report.Fits {
		fitPages = append(fitPages, rec.Page)
	}
	if diff := cmp.Diff([]string{"page-1", "dup", "dup-3"}, fitPages); diff != "" {
		t.Fatalf("fit order mismatch (-want +got):\n%s", diff)
	}
	if deck.Pages[0].ID != "" {
		t.Fatalf("expected caller deck untouched")
	}
}
