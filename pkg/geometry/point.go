package geometry

import "math"

// Point is a position on the canvas in logical pixels.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Add returns p translated by d.
func (p Point) Add(d Point) Point {
	return Point{X: p.X + d.X, Y: p.Y + d.Y}
}

// Sub returns the vector from q to p.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Mid returns the midpoint between p and q.
func (p Point) Mid(q Point) Point {
	return Point{X: (p.X + q.X) / 2, Y: (p.Y + q.Y) / 2}
}

// EdgeIntersection returns the point where a ray leaving center toward the
// target exits the axis-aligned rectangle with the given half extents. When
// target equals center the center is returned unchanged and callers end up
// with a zero-length connector.
func EdgeIntersection(center Point, halfWidth, halfHeight float64, toward Point) Point {
	dx := toward.X - center.X
	dy := toward.Y - center.Y
	if dx == 0 && dy == 0 {
		return center
	}

	var scale float64
	if math.Abs(dx)*halfHeight > math.Abs(dy)*halfWidth {
		// exits through the left or right edge
		scale = halfWidth / math.Abs(dx)
	} else {
		scale = halfHeight / math.Abs(dy)
	}
	return Point{X: center.X + dx*scale, Y: center.Y + dy*scale}
}

// PercentToPixel maps a percentage of extent to pixels. Values outside
// [0, 100] are not clamped; resolvers use them to let elements bleed off the
// canvas.
func PercentToPixel(percent, extent float64) float64 {
	return percent / 100 * extent
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
