package deckgen

import (
	"bytes"
	"context"
	"io/fs"
	"strings"
	"testing"

	"github.com/goliatone/go-deckgen/pkg/renderers/preview"
)

func TestPreviewAssetsFSContainsStylesheet(t *testing.T) {
	data, err := fs.ReadFile(PreviewAssetsFS(), preview.StylesheetName)
	if err != nil {
		t.Fatalf("expected stylesheet to be readable: %v", err)
	}
	if !strings.Contains(string(data), ".deck-page") {
		t.Fatalf("expected stylesheet to style deck pages")
	}
}

func TestEmbeddedTemplatesIncludeDeck(t *testing.T) {
	if _, err := fs.ReadFile(EmbeddedTemplates(), "templates/deck.tmpl"); err != nil {
		t.Fatalf("expected deck template: %v", err)
	}
}

func TestGenerateFromParsedDeck(t *testing.T) {
	deck, err := ParseDeck([]byte(`{"title":"Q3","pages":[{"template":"cover","content":{"title":"Q3 review"}}]}`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	html, err := GenerateFromDeck(context.Background(), deck, preview.Name)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !strings.Contains(string(html), "Q3 review") {
		t.Fatalf("expected cover title in preview")
	}

	pdfBytes, err := GeneratePDF(context.Background(), "pkg/content/testdata/deck.yaml")
	if err != nil {
		t.Fatalf("generate pdf: %v", err)
	}
	if !bytes.HasPrefix(pdfBytes, []byte("%PDF-")) {
		t.Fatalf("expected PDF output")
	}
}
