package preview

import (
	"encoding/base64"
	"net/http"
	"strings"

	"github.com/goliatone/go-deckgen/pkg/geometry"
	"github.com/goliatone/go-deckgen/pkg/render"
	"github.com/goliatone/go-deckgen/pkg/render/template/pongo"
	"github.com/goliatone/go-deckgen/pkg/scene"
)

type pageView struct {
	ID       string        `json:"id"`
	Template string        `json:"template"`
	Width    string        `json:"width"`
	Height   string        `json:"height"`
	Style    string        `json:"style"`
	Elements []elementView `json:"elements"`
}

type elementView struct {
	ID    string    `json:"id"`
	Kind  string    `json:"kind"`
	Style string    `json:"style"`
	Text  string    `json:"text,omitempty"`
	Src   string    `json:"src,omitempty"`
	Line  *lineView `json:"line,omitempty"`
}

type lineView struct {
	X1     string `json:"x1"`
	Y1     string `json:"y1"`
	X2     string `json:"x2"`
	Y2     string `json:"y2"`
	Stroke string `json:"stroke"`
	Width  string `json:"width"`
	Head   string `json:"head,omitempty"`
}

var num = pongo.FormatNumber

// Box returns the CSS declarations positioning an element box. Exported for
// parity checks against the PDF backend.
func Box(r geometry.Rect) string {
	return "left:" + num(r.X) + "px;top:" + num(r.Y) + "px;width:" + num(r.W) + "px;height:" + num(r.H) + "px;"
}

func (r *Renderer) pageView(doc render.Document, page scene.Page, options render.RenderOptions) pageView {
	view := pageView{
		ID:       page.ID,
		Template: page.Template,
		Width:    num(page.Width),
		Height:   num(page.Height),
		Style:    "width:" + num(page.Width) + "px;height:" + num(page.Height) + "px;background:" + orTransparent(page.Background) + ";",
	}
	placed := render.Placements(page, options)
	view.Elements = make([]elementView, 0, len(placed))
	for _, el := range placed {
		view.Elements = append(view.Elements, r.elementView(doc, page, el))
	}
	return view
}

func (r *Renderer) elementView(doc render.Document, page scene.Page, el scene.Element) elementView {
	view := elementView{ID: el.ID, Kind: string(el.Kind)}
	switch el.Kind {
	case scene.KindLine:
		view.Style = "left:0;top:0;"
		view.Line = lineViewFor(el)
	case scene.KindText:
		view.Style = Box(el.Bounds()) + textStyle(el.Text)
		if el.Text != nil {
			view.Text = sanitizeText(el.Text.Content)
		}
	case scene.KindImage:
		view.Style = Box(el.Bounds()) + shapeStyle(el.Style)
		view.Src = r.imageSource(doc, el)
	case scene.KindCircle:
		view.Style = Box(el.Bounds()) + shapeStyle(el.Style) + "border-radius:50%;"
	default:
		view.Style = Box(el.Bounds()) + shapeStyle(el.Style)
	}
	return view
}

func (r *Renderer) imageSource(doc render.Document, el scene.Element) string {
	if el.Image == nil || el.Image.Placeholder || el.Image.Key == "" {
		return ""
	}
	if r.assetURL != nil {
		if _, ok := doc.Assets.Get(el.Image.Key); ok || r.linkMissing {
			return r.assetURL(el.Image.Key)
		}
		return ""
	}
	data, ok := doc.Image(el)
	if !ok {
		return ""
	}
	return "data:" + http.DetectContentType(data) + ";base64," + base64.StdEncoding.EncodeToString(data)
}

func lineViewFor(el scene.Element) *lineView {
	if el.Line == nil {
		return &lineView{X1: num(el.X), Y1: num(el.Y), X2: num(el.X), Y2: num(el.Y), Stroke: orTransparent(el.Style.Stroke), Width: num(el.Style.StrokeWidth)}
	}
	view := &lineView{
		X1:     num(el.X),
		Y1:     num(el.Y),
		X2:     num(el.Line.X2),
		Y2:     num(el.Line.Y2),
		Stroke: orTransparent(el.Style.Stroke),
		Width:  num(el.Style.StrokeWidth),
	}
	if el.Line.Arrow {
		head := render.ArrowHead(geometry.Pt(el.X, el.Y), geometry.Pt(el.Line.X2, el.Line.Y2))
		points := make([]string, len(head))
		for i, p := range head {
			points[i] = num(p.X) + "," + num(p.Y)
		}
		view.Head = strings.Join(points, " ")
	}
	return view
}

func shapeStyle(s scene.Style) string {
	var b strings.Builder
	if s.Fill != "" {
		b.WriteString("background:" + s.Fill + ";")
	}
	if s.Stroke != "" && s.StrokeWidth > 0 {
		b.WriteString("border:" + num(s.StrokeWidth) + "px solid " + s.Stroke + ";")
	}
	if s.Radius > 0 {
		b.WriteString("border-radius:" + num(s.Radius) + "px;")
	}
	if s.Opacity > 0 && s.Opacity < 1 {
		b.WriteString("opacity:" + num(s.Opacity) + ";")
	}
	return b.String()
}

func textStyle(t *scene.Text) string {
	if t == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString("font-size:" + num(t.FontSize) + "px;")
	lineHeight := t.LineHeight
	if lineHeight <= 0 {
		lineHeight = 1.2
	}
	b.WriteString("line-height:" + num(lineHeight) + ";")
	if t.Bold {
		b.WriteString("font-weight:700;")
	}
	if t.Color != "" {
		b.WriteString("color:" + t.Color + ";")
	}
	b.WriteString("text-align:" + alignOr(t.Align) + ";")
	b.WriteString("justify-content:" + justify(t.VAlign) + ";")
	return b.String()
}

func alignOr(align string) string {
	switch align {
	case scene.AlignCenter, scene.AlignRight:
		return align
	default:
		return scene.AlignLeft
	}
}

func justify(valign string) string {
	switch valign {
	case scene.VAlignMiddle:
		return "center"
	case scene.VAlignBottom:
		return "flex-end"
	default:
		return "flex-start"
	}
}

func orTransparent(color string) string {
	if color == "" {
		return "transparent"
	}
	return color
}
