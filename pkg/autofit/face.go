package autofit

import (
	"fmt"
	"math"
	"strings"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// FaceMeasurer measures text with real glyph advances from an OpenType font.
// It approximates what a live layout surface reports and is used to check the
// analytic Estimator, not to drive resolvers.
type FaceMeasurer struct {
	mu    sync.Mutex
	font  *opentype.Font
	faces map[float64]font.Face
}

// NewFaceMeasurer parses the font data; empty data selects the embedded Go
// Regular font.
func NewFaceMeasurer(data []byte) (*FaceMeasurer, error) {
	if len(data) == 0 {
		data = goregular.TTF
	}
	parsed, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("autofit: parse font: %w", err)
	}
	return &FaceMeasurer{font: parsed, faces: make(map[float64]font.Face)}, nil
}

// Measure implements Measurer.
func (m *FaceMeasurer) Measure(text string, fontSize, boxWidth, lineHeight float64) float64 {
	if fontSize <= 0 || strings.TrimSpace(text) == "" {
		return 0
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	face, err := m.faceLocked(fontSize)
	if err != nil {
		return math.Inf(1)
	}
	lines := WrapLines(text, boxWidth, func(s string) float64 {
		return float64(font.MeasureString(face, s)) / 64
	})
	return float64(len(lines)) * fontSize * lineHeight
}

// faceLocked returns a cached face; 72 DPI keeps one point equal to one
// logical pixel.
func (m *FaceMeasurer) faceLocked(size float64) (font.Face, error) {
	if face, ok := m.faces[size]; ok {
		return face, nil
	}
	face, err := opentype.NewFace(m.font, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, err
	}
	m.faces[size] = face
	return face, nil
}
