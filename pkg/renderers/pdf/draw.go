package pdf

import (
	"context"

	"github.com/goliatone/go-deckgen/pkg/geometry"
	"github.com/goliatone/go-deckgen/pkg/render"
	"github.com/goliatone/go-deckgen/pkg/scene"
)

// Surface is the drawing target Draw walks a document onto. The fpdf backend
// implements it; tests record the calls to compare against the preview.
type Surface interface {
	BeginPage(page scene.Page)
	Rect(box geometry.Rect, style scene.Style)
	Circle(center geometry.Point, radius float64, style scene.Style)
	Line(from, to geometry.Point, style scene.Style)
	Polygon(points []geometry.Point, fill string, opacity float64)
	// Image draws data cover-cropped into box. An error makes Draw fall back
	// to a placeholder.
	Image(key string, data []byte, box geometry.Rect, style scene.Style) error
	Placeholder(box geometry.Rect, style scene.Style)
	Text(box geometry.Rect, text scene.Text)
	Outline(box geometry.Rect, label string)
}

// Draw emits every page of doc onto s in placement order.
func Draw(ctx context.Context, doc render.Document, options render.RenderOptions, s Surface) error {
	for _, page := range doc.Pages {
		if err := ctx.Err(); err != nil {
			return err
		}
		s.BeginPage(page)
		for _, el := range render.Placements(page, options) {
			drawElement(doc, el, s)
			if options.Debug && el.Kind != scene.KindLine {
				s.Outline(el.Bounds(), el.ID)
			}
		}
	}
	return nil
}

func drawElement(doc render.Document, el scene.Element, s Surface) {
	switch el.Kind {
	case scene.KindRect:
		s.Rect(el.Bounds(), el.Style)
	case scene.KindCircle:
		center := el.Bounds().Center()
		if el.Anchor != nil {
			center = *el.Anchor
		}
		s.Circle(center, el.W/2, el.Style)
	case scene.KindLine:
		from := geometry.Pt(el.X, el.Y)
		to := from
		if el.Line != nil {
			to = geometry.Pt(el.Line.X2, el.Line.Y2)
		}
		s.Line(from, to, el.Style)
		if el.Line != nil && el.Line.Arrow {
			head := render.ArrowHead(from, to)
			s.Polygon(head[:], el.Style.Stroke, el.Style.Opacity)
		}
	case scene.KindText:
		if el.Text != nil && el.Text.Content != "" {
			s.Text(el.Bounds(), *el.Text)
		}
	case scene.KindImage:
		data, ok := doc.Image(el)
		if !ok {
			s.Placeholder(el.Bounds(), el.Style)
			return
		}
		if err := s.Image(el.Image.Key, data, el.Bounds(), el.Style); err != nil {
			s.Placeholder(el.Bounds(), el.Style)
		}
	}
}
