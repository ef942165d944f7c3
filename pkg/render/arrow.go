package render

import (
	"math"

	"github.com/goliatone/go-deckgen/pkg/geometry"
)

// Arrowhead size shared by both backends.
const (
	ArrowHeadLength = 10.0
	ArrowHeadWidth  = 8.0
)

// PlaceholderStroke is the colour of the cross drawn over missing images.
const PlaceholderStroke = "#9aa5b4"

// ArrowHead returns the triangle drawn at end for a line from start: the tip
// followed by the two base corners. A zero-length line yields three copies of
// end.
func ArrowHead(start, end geometry.Point) [3]geometry.Point {
	dx, dy := end.X-start.X, end.Y-start.Y
	length := math.Hypot(dx, dy)
	if length == 0 {
		return [3]geometry.Point{end, end, end}
	}
	ux, uy := dx/length, dy/length
	base := geometry.Pt(end.X-ux*ArrowHeadLength, end.Y-uy*ArrowHeadLength)
	half := ArrowHeadWidth / 2
	return [3]geometry.Point{
		end,
		geometry.Pt(base.X-uy*half, base.Y+ux*half),
		geometry.Pt(base.X+uy*half, base.Y-ux*half),
	}
}
