package pdf

import (
	"bytes"
	"fmt"
	"math"

	"github.com/disintegration/imaging"
	"github.com/go-pdf/fpdf"

	"github.com/goliatone/go-deckgen/pkg/autofit"
	"github.com/goliatone/go-deckgen/pkg/geometry"
	"github.com/goliatone/go-deckgen/pkg/palette"
	"github.com/goliatone/go-deckgen/pkg/render"
	"github.com/goliatone/go-deckgen/pkg/scene"
)

// imageScale is the raster density used when cropping images, in pixels per
// point.
const imageScale = 2.0

const defaultLineHeight = 1.2

type fpdfSurface struct {
	pdf       *fpdf.Fpdf
	family    string
	translate func(string) string
	images    map[string]bool
}

func newFPDFSurface(pdf *fpdf.Fpdf, family string, translate func(string) string) *fpdfSurface {
	if translate == nil {
		translate = func(s string) string { return s }
	}
	return &fpdfSurface{pdf: pdf, family: family, translate: translate, images: make(map[string]bool)}
}

func (s *fpdfSurface) BeginPage(page scene.Page) {
	s.pdf.AddPageFormat("P", fpdf.SizeType{Wd: page.Width, Ht: page.Height})
	if page.Background != "" {
		s.fill(page.Background)
		s.pdf.Rect(0, 0, page.Width, page.Height, "F")
	}
}

func (s *fpdfSurface) Rect(box geometry.Rect, style scene.Style) {
	mode := s.paint(style)
	if mode == "" {
		return
	}
	defer s.withAlpha(style.Opacity)()
	box, radius := insetRect(box, style)
	if radius > 0 {
		s.pdf.RoundedRect(box.X, box.Y, box.W, box.H, radius, "1234", mode)
		return
	}
	s.pdf.Rect(box.X, box.Y, box.W, box.H, mode)
}

func (s *fpdfSurface) Circle(center geometry.Point, radius float64, style scene.Style) {
	mode := s.paint(style)
	if mode == "" || radius <= 0 {
		return
	}
	defer s.withAlpha(style.Opacity)()
	s.pdf.Circle(center.X, center.Y, math.Max(radius-strokeInset(style), 0), mode)
}

func (s *fpdfSurface) Line(from, to geometry.Point, style scene.Style) {
	if style.Stroke == "" || style.StrokeWidth <= 0 {
		return
	}
	defer s.withAlpha(style.Opacity)()
	s.draw(style.Stroke)
	s.pdf.SetLineWidth(style.StrokeWidth)
	s.pdf.Line(from.X, from.Y, to.X, to.Y)
}

func (s *fpdfSurface) Polygon(points []geometry.Point, fill string, opacity float64) {
	if fill == "" || len(points) < 3 {
		return
	}
	defer s.withAlpha(opacity)()
	s.fill(fill)
	pts := make([]fpdf.PointType, len(points))
	for i, p := range points {
		pts[i] = fpdf.PointType{X: p.X, Y: p.Y}
	}
	s.pdf.Polygon(pts, "F")
}

func (s *fpdfSurface) Image(key string, data []byte, box geometry.Rect, style scene.Style) error {
	pw := int(math.Ceil(box.W * imageScale))
	ph := int(math.Ceil(box.H * imageScale))
	if pw < 1 || ph < 1 {
		return fmt.Errorf("pdf renderer: image %q has an empty box", key)
	}
	name := fmt.Sprintf("%s#%dx%d", key, pw, ph)
	if !s.images[name] {
		encoded, err := coverCrop(data, pw, ph)
		if err != nil {
			return fmt.Errorf("pdf renderer: image %q: %w", key, err)
		}
		s.pdf.RegisterImageOptionsReader(name, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(encoded))
		if err := s.pdf.Error(); err != nil {
			return err
		}
		s.images[name] = true
	}

	defer s.withAlpha(style.Opacity)()
	if style.Radius > 0 {
		s.pdf.ClipRoundedRect(box.X, box.Y, box.W, box.H, style.Radius, false)
		defer s.pdf.ClipEnd()
	}
	s.pdf.ImageOptions(name, box.X, box.Y, box.W, box.H, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")
	return nil
}

func (s *fpdfSurface) Placeholder(box geometry.Rect, style scene.Style) {
	s.Rect(box, style)
	s.draw(render.PlaceholderStroke)
	s.pdf.SetLineWidth(1)
	s.pdf.Line(box.X, box.Y, box.X+box.W, box.Y+box.H)
	s.pdf.Line(box.X+box.W, box.Y, box.X, box.Y+box.H)
}

// Text wraps content with the same line breaker the estimator uses, measured
// with the active PDF font, and stacks the lines by valign.
func (s *fpdfSurface) Text(box geometry.Rect, text scene.Text) {
	if text.FontSize <= 0 {
		return
	}
	style := ""
	if text.Bold {
		style = "B"
	}
	s.pdf.SetFont(s.family, style, text.FontSize)
	s.color(text.Color)

	lineHeight := text.LineHeight
	if lineHeight <= 0 {
		lineHeight = defaultLineHeight
	}
	step := text.FontSize * lineHeight
	lines := autofit.WrapLines(text.Content, box.W, func(line string) float64 {
		return s.pdf.GetStringWidth(s.translate(line))
	})

	block := step * float64(len(lines))
	y := box.Y
	switch text.VAlign {
	case scene.VAlignMiddle:
		y = box.Y + (box.H-block)/2
	case scene.VAlignBottom:
		y = box.Y + box.H - block
	}

	align := "L"
	switch text.Align {
	case scene.AlignCenter:
		align = "C"
	case scene.AlignRight:
		align = "R"
	}

	for i, line := range lines {
		s.pdf.SetXY(box.X, y+float64(i)*step)
		s.pdf.CellFormat(box.W, step, s.translate(line), "", 0, align+"M", false, 0, "")
	}
}

func (s *fpdfSurface) Outline(box geometry.Rect, label string) {
	s.draw(debugColor)
	s.pdf.SetLineWidth(0.5)
	s.pdf.SetDashPattern([]float64{2, 2}, 0)
	s.pdf.Rect(box.X, box.Y, box.W, box.H, "D")
	s.pdf.SetDashPattern(nil, 0)
	s.pdf.SetFont(s.family, "", 6)
	s.color(debugColor)
	s.pdf.Text(box.X+1, box.Y+6, s.translate(label))
}

const debugColor = "#e11d48"

// strokeInset is how far a stroked path moves inwards so the stroke's outer
// edge sits on the element bounds, matching the preview's border-box borders.
func strokeInset(style scene.Style) float64 {
	if style.Stroke == "" || style.StrokeWidth <= 0 {
		return 0
	}
	return style.StrokeWidth / 2
}

// insetRect returns the stroke path and corner radius for a rect.
func insetRect(box geometry.Rect, style scene.Style) (geometry.Rect, float64) {
	d := strokeInset(style)
	if d == 0 {
		return box, style.Radius
	}
	radius := style.Radius
	if radius > 0 {
		radius = math.Max(radius-d, 0)
	}
	return box.Inset(d), radius
}

// paint sets fill and stroke state and returns the fpdf style string, or ""
// when the style draws nothing.
func (s *fpdfSurface) paint(style scene.Style) string {
	mode := ""
	if style.Fill != "" {
		s.fill(style.Fill)
		mode = "F"
	}
	if style.Stroke != "" && style.StrokeWidth > 0 {
		s.draw(style.Stroke)
		s.pdf.SetLineWidth(style.StrokeWidth)
		mode += "D"
	}
	return mode
}

func (s *fpdfSurface) withAlpha(opacity float64) func() {
	if opacity <= 0 || opacity >= 1 {
		return func() {}
	}
	s.pdf.SetAlpha(opacity, "Normal")
	return func() { s.pdf.SetAlpha(1, "Normal") }
}

func (s *fpdfSurface) fill(hex string) {
	c := palette.RGBOr(hex, palette.RGB{})
	s.pdf.SetFillColor(int(c.R), int(c.G), int(c.B))
}

func (s *fpdfSurface) draw(hex string) {
	c := palette.RGBOr(hex, palette.RGB{})
	s.pdf.SetDrawColor(int(c.R), int(c.G), int(c.B))
}

func (s *fpdfSurface) color(hex string) {
	if hex == "" {
		s.pdf.SetTextColor(0, 0, 0)
		return
	}
	c := palette.RGBOr(hex, palette.RGB{})
	s.pdf.SetTextColor(int(c.R), int(c.G), int(c.B))
}

// coverCrop scales data to fill w×h pixels, cropping the overflow around the
// centre, and re-encodes it as PNG.
func coverCrop(data []byte, w, h int) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	filled := imaging.Fill(img, w, h, imaging.Center, imaging.Lanczos)
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, filled, imaging.PNG); err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}
	return buf.Bytes(), nil
}
