package content

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownTemplate is returned by strict decoding for tags outside the
// catalog.
var ErrUnknownTemplate = errors.New("content: unknown template")

// Deck is an ordered list of pages plus deck-wide settings.
type Deck struct {
	Title    string `json:"title,omitempty"`
	Language string `json:"language,omitempty"`
	// Theme and Variant select a go-theme manifest for the palette.
	Theme   string `json:"theme,omitempty"`
	Variant string `json:"variant,omitempty"`
	Pages   []Page `json:"pages"`
}

// Page pairs a template tag with its content payload.
type Page struct {
	ID      string  `json:"id,omitempty"`
	Content Content `json:"-"`
}

// Tag returns the page's template tag.
func (p Page) Tag() Tag {
	if p.Content == nil {
		return ""
	}
	return p.Content.Tag()
}

// WithPageIDs returns a copy of the deck where every page has a distinct ID.
// Empty IDs become "page-N" (1-based position) and repeated IDs get a "-N"
// suffix, so page/element keys stay unambiguous.
func (d Deck) WithPageIDs() Deck {
	pages := make([]Page, len(d.Pages))
	seen := make(map[string]bool, len(d.Pages))
	for i, page := range d.Pages {
		if page.ID == "" {
			page.ID = fmt.Sprintf("page-%d", i+1)
		}
		for base, n := page.ID, i+1; seen[page.ID]; n++ {
			page.ID = fmt.Sprintf("%s-%d", base, n)
		}
		seen[page.ID] = true
		pages[i] = page
	}
	d.Pages = pages
	return d
}

// NewPage wraps content in a page.
func NewPage(id string, c Content) Page {
	return Page{ID: id, Content: c}
}

type wirePage struct {
	ID       string          `json:"id,omitempty"`
	Template string          `json:"template"`
	Content  json.RawMessage `json:"content,omitempty"`
}

// MarshalJSON emits {"id", "template", "content"}.
func (p Page) MarshalJSON() ([]byte, error) {
	raw := json.RawMessage("{}")
	if p.Content != nil {
		if _, unknown := p.Content.(Unknown); !unknown {
			data, err := json.Marshal(p.Content)
			if err != nil {
				return nil, err
			}
			raw = data
		}
	}
	return json.Marshal(wirePage{ID: p.ID, Template: string(p.Tag()), Content: raw})
}

// UnmarshalJSON decodes leniently: unknown templates become Unknown.
func (p *Page) UnmarshalJSON(data []byte) error {
	page, err := decodePage(data, false)
	if err != nil {
		return err
	}
	*p = page
	return nil
}

func decodePage(data []byte, strict bool) (Page, error) {
	var wire wirePage
	if err := json.Unmarshal(data, &wire); err != nil {
		return Page{}, fmt.Errorf("content: decode page: %w", err)
	}
	tag := Tag(strings.TrimSpace(wire.Template))
	payload, ok := newContent(tag)
	if !ok {
		if strict {
			return Page{}, fmt.Errorf("%w: %q", ErrUnknownTemplate, wire.Template)
		}
		return Page{ID: wire.ID, Content: Unknown{Template: string(tag)}}, nil
	}
	if len(wire.Content) > 0 && string(wire.Content) != "null" {
		if err := json.Unmarshal(wire.Content, payload); err != nil {
			return Page{}, fmt.Errorf("content: decode %s page %q: %w", tag, wire.ID, err)
		}
	}
	return Page{ID: wire.ID, Content: deref(payload)}, nil
}

// As returns the page payload as T, accepting both value and pointer
// payloads.
func As[T Content](p Page) (T, bool) {
	var zero T
	switch v := any(p.Content).(type) {
	case T:
		return v, true
	case *T:
		if v != nil {
			return *v, true
		}
	}
	return zero, false
}
