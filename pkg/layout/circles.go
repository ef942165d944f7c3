package layout

import (
	"unicode/utf8"

	"github.com/goliatone/go-deckgen/pkg/content"
	"github.com/goliatone/go-deckgen/pkg/geometry"
	"github.com/goliatone/go-deckgen/pkg/scene"
)

// Three-circles constants.
const (
	CircleCount        = 3
	CircleSideMargin   = 30.0
	CircleOverlapRatio = 0.2
	CircleTextRatio    = 0.62
	CircleFillAlpha    = 0.85
)

// Quantized circle text sizes and the rune-count thresholds between them.
var (
	CircleTitleSizes      = [3]float64{24, 20, 16}
	CircleTitleThresholds = [2]int{20, 40}
	CircleBodySizes       = [3]float64{16, 14, 12}
	CircleBodyThresholds  = [2]int{120, 200}
)

// CircleDiameter solves 3D - 2(D/5) = span for D.
func CircleDiameter(span float64) float64 {
	return span / (CircleCount - (CircleCount-1)*CircleOverlapRatio)
}

// CircleOverlap is the horizontal overlap between neighbouring circles.
func CircleOverlap(diameter float64) float64 {
	return diameter * CircleOverlapRatio
}

// CircleCenters returns the three center x coordinates for a span starting at
// left.
func CircleCenters(left, span float64) [CircleCount]float64 {
	d := CircleDiameter(span)
	step := d - CircleOverlap(d)
	var xs [CircleCount]float64
	for i := range xs {
		xs[i] = left + d/2 + float64(i)*step
	}
	return xs
}

// CircleTitleSize picks the title size from the title length.
func CircleTitleSize(title string) float64 {
	return quantizedSize(title, CircleTitleSizes, CircleTitleThresholds)
}

// CircleBodySize picks the body size from the body length.
func CircleBodySize(body string) float64 {
	return quantizedSize(body, CircleBodySizes, CircleBodyThresholds)
}

func quantizedSize(text string, sizes [3]float64, thresholds [2]int) float64 {
	n := utf8.RuneCountInString(text)
	switch {
	case n <= thresholds[0]:
		return sizes[0]
	case n <= thresholds[1]:
		return sizes[1]
	default:
		return sizes[2]
	}
}

func resolveThreeCircles(page content.Page, env Env) scene.Page {
	c, _ := content.As[content.ThreeCircles](page)
	b := newBuilder(page, env)
	pal := env.Palette
	b.heading(c.Heading, pal.Text)

	span := b.width() - 2*CircleSideMargin
	d := CircleDiameter(span)
	xs := CircleCenters(CircleSideMargin, span)
	area := b.contentArea()
	cy := area.Y + area.H/2

	items := c.Circles
	if len(items) > CircleCount {
		items = items[:CircleCount]
	}

	var texts []scene.Element
	for i, item := range items {
		center := geometry.Pt(xs[i], cy)
		fill := pal.Or(item.Color, pal.SeriesColor(i))
		ink := pal.Contrast(fill)
		id := elementID("circle", i)
		b.add(scene.Circle(id, center, d/2, scene.Style{Fill: fill, Opacity: CircleFillAlpha}))

		tw := d * CircleTextRatio
		if item.Title != "" {
			texts = append(texts, scene.TextBlock(id+"-title", geometry.R(center.X-tw/2, cy-60, tw, 52), scene.Text{
				Content:    item.Title,
				FontSize:   CircleTitleSize(item.Title),
				Bold:       true,
				Align:      scene.AlignCenter,
				VAlign:     scene.VAlignBottom,
				Color:      ink,
				LineHeight: TightLineHeight,
			}))
		}
		if item.Body != "" {
			texts = append(texts, scene.TextBlock(id+"-body", geometry.R(center.X-tw/2, cy, tw, d/2-20), scene.Text{
				Content:    item.Body,
				FontSize:   CircleBodySize(item.Body),
				Align:      scene.AlignCenter,
				VAlign:     scene.VAlignTop,
				Color:      ink,
				LineHeight: DefaultLineHeight,
			}))
		}
	}
	b.add(texts...)
	return b.build()
}
