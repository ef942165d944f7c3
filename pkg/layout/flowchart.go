package layout

import (
	"github.com/goliatone/go-deckgen/pkg/autofit"
	"github.com/goliatone/go-deckgen/pkg/content"
	"github.com/goliatone/go-deckgen/pkg/geometry"
	"github.com/goliatone/go-deckgen/pkg/scene"
)

// Flow-chart constants.
const (
	DefaultNodeWidth   = 160.0
	DefaultNodeHeight  = 80.0
	DefaultNodeRadius  = 8.0
	NodeHeadingSize    = 15.0
	ArrowLabelOffset   = 12.0
	ArrowLabelWidth    = 140.0
	ArrowLabelHeight   = 20.0
	ArrowLabelFontSize = 12.0
	ArrowStrokeWidth   = 2.0
)

// NodeBodyFit is the per-node body auto-fit range.
var NodeBodyFit = autofit.MustParams(13, 1, 9)

type placedNode struct {
	center geometry.Point
	box    geometry.Rect
}

func resolveFlowChart(page content.Page, env Env) scene.Page {
	c, _ := content.As[content.FlowChart](page)
	b := newBuilder(page, env)
	pal := env.Palette
	b.heading(c.Heading, pal.Text)

	area := b.contentArea()
	nodes := make(map[string]placedNode, len(c.Nodes))
	var shapes []scene.Element

	for i, n := range c.Nodes {
		w, h := n.Width, n.Height
		if w <= 0 {
			w = DefaultNodeWidth
		}
		if h <= 0 {
			h = DefaultNodeHeight
		}
		radius := n.Radius
		if radius < 0 {
			radius = 0
		} else if radius == 0 {
			radius = DefaultNodeRadius
		}
		center := env.Canvas.At(area, n.X, n.Y)
		box := geometry.CenteredAt(center, w, h)
		if n.ID != "" {
			if _, dup := nodes[n.ID]; !dup {
				nodes[n.ID] = placedNode{center: center, box: box}
			}
		}

		id := "node-" + n.ID
		if n.ID == "" {
			id = elementID("node", i)
		}
		fill := pal.Or(n.Color, pal.Primary)
		ink := pal.Contrast(fill)
		shapes = append(shapes, scene.Rect(id, box, scene.Style{Fill: fill, Radius: radius}))

		inner := box.Inset(8)
		bodyBox := inner
		if n.Heading != "" {
			headBox := geometry.R(inner.X, inner.Y, inner.W, NodeHeadingSize*TightLineHeight+4)
			shapes = append(shapes, scene.TextBlock(id+"-heading", headBox, scene.Text{
				Content:    n.Heading,
				FontSize:   NodeHeadingSize,
				Bold:       true,
				Align:      scene.AlignCenter,
				VAlign:     scene.VAlignMiddle,
				Color:      ink,
				LineHeight: TightLineHeight,
			}))
			bodyBox = geometry.R(inner.X, headBox.Y+headBox.H+2, inner.W, inner.H-headBox.H-2)
		}
		if n.Body != "" {
			state := b.fit(id+"-body", n.Body, bodyBox, DefaultLineHeight, NodeBodyFit)
			shapes = append(shapes, scene.TextBlock(id+"-body", bodyBox, scene.Text{
				Content:    n.Body,
				FontSize:   state.Value,
				Align:      scene.AlignCenter,
				VAlign:     scene.VAlignTop,
				Color:      ink,
				LineHeight: DefaultLineHeight,
			}))
		}
	}

	// Connectors sit under the nodes.
	stroke := pal.Or(c.ArrowColor, pal.Secondary)
	for i, a := range c.Arrows {
		from, okFrom := nodes[a.From]
		to, okTo := nodes[a.To]
		if !okFrom || !okTo || a.From == a.To {
			continue
		}
		start, end := Connect(from.center, from.box, to.center, to.box)
		id := elementID("arrow", i)
		b.add(scene.Segment(id, start, end, scene.Style{Stroke: stroke, StrokeWidth: ArrowStrokeWidth}, true))
		if a.Label != "" {
			b.add(arrowLabel(id+"-label", start.Mid(end), a, pal.Text))
		}
	}
	b.add(shapes...)
	return b.build()
}

// Connect returns the connector end points between two node boxes: the exit
// point of each box on the line joining their centers.
func Connect(fromCenter geometry.Point, fromBox geometry.Rect, toCenter geometry.Point, toBox geometry.Rect) (geometry.Point, geometry.Point) {
	start := geometry.EdgeIntersection(fromCenter, fromBox.W/2, fromBox.H/2, toCenter)
	end := geometry.EdgeIntersection(toCenter, toBox.W/2, toBox.H/2, fromCenter)
	return start, end
}

// LabelAnchor shifts the connector midpoint by ArrowLabelOffset according to
// position and returns the text alignment the label uses there. Unknown
// positions behave as above.
func LabelAnchor(mid geometry.Point, position string) (geometry.Point, string) {
	switch position {
	case content.LabelBelow:
		return mid.Add(geometry.Pt(0, ArrowLabelOffset)), scene.AlignCenter
	case content.LabelLeft:
		return mid.Add(geometry.Pt(-ArrowLabelOffset, 0)), scene.AlignRight
	case content.LabelRight:
		return mid.Add(geometry.Pt(ArrowLabelOffset, 0)), scene.AlignLeft
	default:
		return mid.Add(geometry.Pt(0, -ArrowLabelOffset)), scene.AlignCenter
	}
}

func arrowLabel(id string, mid geometry.Point, a content.Arrow, color string) scene.Element {
	anchor, align := LabelAnchor(mid, a.LabelPosition)
	var box geometry.Rect
	valign := scene.VAlignMiddle
	switch align {
	case scene.AlignRight:
		box = geometry.R(anchor.X-ArrowLabelWidth, anchor.Y-ArrowLabelHeight/2, ArrowLabelWidth, ArrowLabelHeight)
	case scene.AlignLeft:
		box = geometry.R(anchor.X, anchor.Y-ArrowLabelHeight/2, ArrowLabelWidth, ArrowLabelHeight)
	default:
		if a.LabelPosition == content.LabelBelow {
			box = geometry.R(anchor.X-ArrowLabelWidth/2, anchor.Y, ArrowLabelWidth, ArrowLabelHeight)
			valign = scene.VAlignTop
		} else {
			box = geometry.R(anchor.X-ArrowLabelWidth/2, anchor.Y-ArrowLabelHeight, ArrowLabelWidth, ArrowLabelHeight)
			valign = scene.VAlignBottom
		}
	}
	el := scene.TextBlock(id, box, scene.Text{
		Content:    a.Label,
		FontSize:   ArrowLabelFontSize,
		Align:      align,
		VAlign:     valign,
		Color:      color,
		LineHeight: TightLineHeight,
	})
	el.Anchor = &anchor
	return el
}
