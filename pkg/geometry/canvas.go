package geometry

import (
	"errors"
	"fmt"
)

// Logical canvas size shared by the preview and export backends.
const (
	CanvasWidth  = 960
	CanvasHeight = 540
)

// ErrInvalidCanvas reports non-positive canvas dimensions. It signals a
// contract violation by the embedding application, not bad user content.
var ErrInvalidCanvas = errors.New("geometry: invalid canvas dimensions")

// Canvas is the fixed logical drawing surface. Coordinates are relative to
// its top-left origin.
type Canvas struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// DefaultCanvas is the 960×540 surface every template targets.
var DefaultCanvas = Canvas{Width: CanvasWidth, Height: CanvasHeight}

// NewCanvas validates the dimensions and returns a Canvas.
func NewCanvas(width, height float64) (Canvas, error) {
	c := Canvas{Width: width, Height: height}
	if err := c.Validate(); err != nil {
		return Canvas{}, err
	}
	return c, nil
}

// Validate returns ErrInvalidCanvas when either dimension is not positive.
func (c Canvas) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: %gx%g", ErrInvalidCanvas, c.Width, c.Height)
	}
	return nil
}

// Bounds returns the canvas as a rectangle at the origin.
func (c Canvas) Bounds() Rect {
	return Rect{W: c.Width, H: c.Height}
}

// At maps percentage coordinates within area to an absolute canvas point.
func (c Canvas) At(area Rect, xPercent, yPercent float64) Point {
	return Point{
		X: area.X + PercentToPixel(xPercent, area.W),
		Y: area.Y + PercentToPixel(yPercent, area.H),
	}
}
