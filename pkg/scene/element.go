package scene

import "github.com/goliatone/go-deckgen/pkg/geometry"

// Kind identifies the drawable primitive an element maps to.
type Kind string

const (
	KindRect   Kind = "rect"
	KindCircle Kind = "circle"
	KindLine   Kind = "line"
	KindText   Kind = "text"
	KindImage  Kind = "image"
)

// Text alignment values.
const (
	AlignLeft   = "left"
	AlignCenter = "center"
	AlignRight  = "right"

	VAlignTop    = "top"
	VAlignMiddle = "middle"
	VAlignBottom = "bottom"
)

// Style carries the paint attributes shared by every kind.
type Style struct {
	Fill        string  `json:"fill,omitempty"`
	Stroke      string  `json:"stroke,omitempty"`
	StrokeWidth float64 `json:"strokeWidth,omitempty"`
	Radius      float64 `json:"radius,omitempty"`
	Opacity     float64 `json:"opacity,omitempty"`
}

// Text is the payload of a text element. FontSize is final: any auto-fit has
// already been applied by the resolver.
type Text struct {
	Content    string  `json:"content"`
	FontSize   float64 `json:"fontSize"`
	Bold       bool    `json:"bold,omitempty"`
	Align      string  `json:"align,omitempty"`
	VAlign     string  `json:"valign,omitempty"`
	Color      string  `json:"color,omitempty"`
	LineHeight float64 `json:"lineHeight,omitempty"`
}

// Image references an asset by key. Placeholder is set when the resolver
// already knows no image will be available.
type Image struct {
	Key         string `json:"key,omitempty"`
	Placeholder bool   `json:"placeholder,omitempty"`
}

// Line holds the end point of a line element; the start is (X, Y).
type Line struct {
	X2    float64 `json:"x2"`
	Y2    float64 `json:"y2"`
	Arrow bool    `json:"arrow,omitempty"`
}

// Element is one positioned, styled drawable.
type Element struct {
	ID    string  `json:"id"`
	Kind  Kind    `json:"kind"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	W     float64 `json:"w"`
	H     float64 `json:"h"`
	Style Style   `json:"style"`

	Text  *Text  `json:"text,omitempty"`
	Image *Image `json:"image,omitempty"`
	Line  *Line  `json:"line,omitempty"`

	// Anchor is an optional derived point, e.g. a circle's center or a
	// connector label anchor.
	Anchor *geometry.Point `json:"anchor,omitempty"`
}

// Bounds returns the element box.
func (e Element) Bounds() geometry.Rect {
	return geometry.Rect{X: e.X, Y: e.Y, W: e.W, H: e.H}
}

// Rect builds a rectangle element.
func Rect(id string, r geometry.Rect, style Style) Element {
	return Element{ID: id, Kind: KindRect, X: r.X, Y: r.Y, W: r.W, H: r.H, Style: style}
}

// Circle builds a circle element from its center and radius.
func Circle(id string, center geometry.Point, radius float64, style Style) Element {
	c := center
	return Element{
		ID:     id,
		Kind:   KindCircle,
		X:      center.X - radius,
		Y:      center.Y - radius,
		W:      radius * 2,
		H:      radius * 2,
		Style:  style,
		Anchor: &c,
	}
}

// Segment builds a line element between two points.
func Segment(id string, from, to geometry.Point, style Style, arrow bool) Element {
	return Element{
		ID:    id,
		Kind:  KindLine,
		X:     from.X,
		Y:     from.Y,
		Style: style,
		Line:  &Line{X2: to.X, Y2: to.Y, Arrow: arrow},
	}
}

// TextBlock builds a text element filling r.
func TextBlock(id string, r geometry.Rect, text Text) Element {
	t := text
	return Element{ID: id, Kind: KindText, X: r.X, Y: r.Y, W: r.W, H: r.H, Text: &t}
}

// Picture builds an image element filling r.
func Picture(id string, r geometry.Rect, key string, style Style) Element {
	return Element{
		ID:    id,
		Kind:  KindImage,
		X:     r.X,
		Y:     r.Y,
		W:     r.W,
		H:     r.H,
		Style: style,
		Image: &Image{Key: key, Placeholder: key == ""},
	}
}
