package render

import (
	"errors"
	"fmt"

	"github.com/goliatone/go-deckgen/pkg/assets"
	"github.com/goliatone/go-deckgen/pkg/fonts"
	"github.com/goliatone/go-deckgen/pkg/geometry"
	"github.com/goliatone/go-deckgen/pkg/scene"
)

// Document is everything a backend needs to draw a deck: resolved pages in
// deck order plus the assets already loaded for them.
type Document struct {
	Title    string
	Language string
	Font     fonts.Family
	Canvas   geometry.Canvas
	Pages    []scene.Page
	// Assets holds image bytes by key. Keys missing here render as
	// placeholders.
	Assets assets.Set
}

// ErrEmptyDocument is returned when a document has no pages.
var ErrEmptyDocument = errors.New("render: document has no pages")

// Validate checks the document is drawable.
func (d Document) Validate() error {
	if err := d.Canvas.Validate(); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	if len(d.Pages) == 0 {
		return ErrEmptyDocument
	}
	return nil
}

// FontFamily returns the document font, defaulting to the Latin family.
func (d Document) FontFamily() fonts.Family {
	if d.Font.Name == "" && d.Font.Core == "" {
		return fonts.Default()
	}
	return d.Font
}

// Image returns the bytes for an image element, or false when the element is
// a placeholder or its asset is absent.
func (d Document) Image(el scene.Element) ([]byte, bool) {
	if el.Image == nil || el.Image.Placeholder || el.Image.Key == "" {
		return nil, false
	}
	return d.Assets.Get(el.Image.Key)
}

// Placements returns the page elements in draw order with any offset override
// applied. Both backends draw from this list, which is what keeps their
// element boxes identical.
func Placements(page scene.Page, options RenderOptions) []scene.Element {
	out := make([]scene.Element, len(page.Elements))
	for i, el := range page.Elements {
		out[i] = el
		delta, ok := options.Offsets[OffsetKey(page.ID, el.ID)]
		if !ok || (delta.X == 0 && delta.Y == 0) {
			continue
		}
		out[i] = shift(el, delta)
	}
	return out
}

func shift(el scene.Element, d geometry.Point) scene.Element {
	el.X += d.X
	el.Y += d.Y
	if el.Line != nil {
		line := *el.Line
		line.X2 += d.X
		line.Y2 += d.Y
		el.Line = &line
	}
	if el.Anchor != nil {
		anchor := el.Anchor.Add(d)
		el.Anchor = &anchor
	}
	return el
}
