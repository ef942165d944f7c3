package preview_test

import (
	"context"
	"image/color"
	"strings"
	"testing"

	"github.com/goliatone/go-deckgen/pkg/assets"
	"github.com/goliatone/go-deckgen/pkg/content"
	"github.com/goliatone/go-deckgen/pkg/fonts"
	"github.com/goliatone/go-deckgen/pkg/geometry"
	"github.com/goliatone/go-deckgen/pkg/render"
	"github.com/goliatone/go-deckgen/pkg/renderers/preview"
	"github.com/goliatone/go-deckgen/pkg/scene"
	"github.com/goliatone/go-deckgen/pkg/testsupport"
)

func newRenderer(t *testing.T, options ...preview.Option) *preview.Renderer {
	t.Helper()
	r, err := preview.New(options...)
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	return r
}

func sampleDocument(t *testing.T) render.Document {
	t.Helper()
	deck := testsupport.SampleDeck()
	return render.Document{
		Title:    deck.Title,
		Language: deck.Language,
		Font:     fonts.ForLanguage(deck.Language),
		Canvas:   geometry.DefaultCanvas,
		Pages:    testsupport.ResolveDeck(t, deck, testsupport.Env(t)),
		Assets: assets.Set{
			"map.png":     testsupport.PNG(t, 8, 8, color.NRGBA{R: 200, G: 220, B: 240, A: 255}),
			"photo-1.png": testsupport.PNG(t, 4, 6, color.NRGBA{R: 90, A: 255}),
		},
	}
}

func renderString(t *testing.T, r *preview.Renderer, doc render.Document, options render.RenderOptions) string {
	t.Helper()
	out, err := r.Render(testsupport.Context(), doc, options)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	return string(out)
}

func TestRenderer_Contract(t *testing.T) {
	r := newRenderer(t)
	if r.Name() != preview.Name || !strings.HasPrefix(r.ContentType(), "text/html") {
		t.Fatalf("unexpected renderer identity %q %q", r.Name(), r.ContentType())
	}
	if _, err := r.Render(context.Background(), render.Document{Canvas: geometry.DefaultCanvas}, render.RenderOptions{}); err == nil {
		t.Fatalf("expected error for empty document")
	}
}

func TestRenderer_EmitsEveryPlacementBox(t *testing.T) {
	doc := sampleDocument(t)
	html := renderString(t, newRenderer(t), doc, render.RenderOptions{})

	if got := strings.Count(html, `<section class="deck-page"`); got != len(doc.Pages) {
		t.Fatalf("expected %d pages, got %d", len(doc.Pages), got)
	}
	for _, page := range doc.Pages {
		for _, el := range render.Placements(page, render.RenderOptions{}) {
			if el.Kind == scene.KindLine {
				continue
			}
			if !strings.Contains(html, preview.Box(el.Bounds())) {
				t.Fatalf("page %s element %s: box %q missing from output", page.ID, el.ID, preview.Box(el.Bounds()))
			}
		}
	}
}

func TestRenderer_ImagesAndPlaceholders(t *testing.T) {
	doc := sampleDocument(t)
	html := renderString(t, newRenderer(t), doc, render.RenderOptions{})

	if !strings.Contains(html, `data-element-id="photo-0" src="data:image/png;base64,`) {
		t.Fatalf("expected present photo as data URI")
	}
	if !strings.Contains(html, `class="deck-el deck-placeholder" data-element-id="photo-1"`) {
		t.Fatalf("expected missing asset to render as placeholder")
	}
	if !strings.Contains(html, `class="deck-el deck-placeholder" data-element-id="photo-2"`) {
		t.Fatalf("expected empty key to render as placeholder")
	}
}

func TestRenderer_AssetURL(t *testing.T) {
	doc := sampleDocument(t)
	r := newRenderer(t, preview.WithAssetURL(func(key string) string { return "/assets/" + key }, false))
	html := renderString(t, r, doc, render.RenderOptions{})
	if !strings.Contains(html, `src="/assets/photo-1.png"`) {
		t.Fatalf("expected linked asset")
	}
	if strings.Contains(html, `src="/assets/missing.png"`) {
		t.Fatalf("missing asset should stay a placeholder")
	}
}

func TestRenderer_SanitizesText(t *testing.T) {
	env := testsupport.Env(t)
	page := content.NewPage("c", content.Cover{Title: `<script>alert("x")</script>Sales & Ops`})
	doc := render.Document{
		Canvas: geometry.DefaultCanvas,
		Pages:  testsupport.ResolveDeck(t, content.Deck{Pages: []content.Page{page}}, env),
	}
	html := renderString(t, newRenderer(t), doc, render.RenderOptions{})
	if strings.Contains(html, "<script>") {
		t.Fatalf("script tag leaked into preview")
	}
	if !strings.Contains(html, "Sales &amp; Ops") {
		t.Fatalf("expected escaped ampersand in title")
	}
}

func TestRenderer_OffsetsAndDebug(t *testing.T) {
	doc := sampleDocument(t)
	cover := doc.Pages[0]
	title, _ := cover.Find("title")
	options := render.RenderOptions{
		Debug:   true,
		Offsets: map[string]geometry.Point{render.OffsetKey(cover.ID, "title"): geometry.Pt(10, -5)},
	}
	html := renderString(t, newRenderer(t), doc, options)

	moved := title.Bounds().Offset(geometry.Pt(10, -5))
	if !strings.Contains(html, preview.Box(moved)) {
		t.Fatalf("expected offset title box %q", preview.Box(moved))
	}
	if !strings.Contains(html, `class="deck deck--debug"`) {
		t.Fatalf("expected debug class on body")
	}
}

func TestRenderer_ArrowheadPolygon(t *testing.T) {
	doc := sampleDocument(t)
	html := renderString(t, newRenderer(t), doc, render.RenderOptions{})
	if !strings.Contains(html, `<polygon points="`) {
		t.Fatalf("expected flow-chart arrowheads")
	}
	if !strings.Contains(html, `lang="en"`) {
		t.Fatalf("expected document language")
	}
}

func TestBox_Format(t *testing.T) {
	got := preview.Box(geometry.R(40, 28.5, 880, 346.153846))
	want := "left:40px;top:28.5px;width:880px;height:346.15px;"
	if got != want {
		t.Fatalf("Box() = %q, want %q", got, want)
	}
}
