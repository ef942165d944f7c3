package autofit

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/width"
)

// Measurer reports the height a text block occupies when wrapped to width at
// the given font size. lineHeight is a multiplier of the font size.
type Measurer interface {
	Measure(text string, fontSize, width, lineHeight float64) float64
}

// Default advance ratios (in em) used by the Estimator.
const (
	DefaultNarrowAdvance = 0.52
	DefaultWideAdvance   = 1.0
	DefaultSpaceAdvance  = 0.28
)

// Estimator approximates wrapped text height from character counts. It is the
// measurement both backends share: it never touches a font file, so the same
// content always produces the same height.
type Estimator struct {
	Narrow float64
	Wide   float64
	Space  float64
}

// NewEstimator returns an Estimator with the default advance ratios.
func NewEstimator() Estimator {
	return Estimator{Narrow: DefaultNarrowAdvance, Wide: DefaultWideAdvance, Space: DefaultSpaceAdvance}
}

// Measure implements Measurer.
func (e Estimator) Measure(text string, fontSize, boxWidth, lineHeight float64) float64 {
	if fontSize <= 0 || strings.TrimSpace(text) == "" {
		return 0
	}
	e = e.withDefaults()
	lines := WrapLines(text, boxWidth, func(s string) float64 {
		return e.advance(s) * fontSize
	})
	return float64(len(lines)) * fontSize * lineHeight
}

// Width returns the estimated single-line width of s at fontSize.
func (e Estimator) Width(s string, fontSize float64) float64 {
	return e.withDefaults().advance(s) * fontSize
}

func (e Estimator) withDefaults() Estimator {
	if e.Narrow <= 0 {
		e.Narrow = DefaultNarrowAdvance
	}
	if e.Wide <= 0 {
		e.Wide = DefaultWideAdvance
	}
	if e.Space <= 0 {
		e.Space = DefaultSpaceAdvance
	}
	return e
}

func (e Estimator) advance(s string) float64 {
	total := 0.0
	for _, r := range s {
		switch {
		case unicode.IsSpace(r):
			total += e.Space
		case isWide(r):
			total += e.Wide
		default:
			total += e.Narrow
		}
	}
	return total
}

func isWide(r rune) bool {
	switch width.LookupRune(r).Kind() {
	case width.EastAsianWide, width.EastAsianFullwidth:
		return true
	}
	return false
}

// WrapLines greedily wraps text into lines no wider than maxWidth using the
// supplied advance function. Explicit newlines start a new paragraph; words
// wider than a line are broken between runes. An empty paragraph still
// occupies one line.
func WrapLines(text string, maxWidth float64, advance func(string) float64) []string {
	var lines []string
	for _, paragraph := range strings.Split(text, "\n") {
		lines = append(lines, wrapParagraph(paragraph, maxWidth, advance)...)
	}
	return lines
}

func wrapParagraph(paragraph string, maxWidth float64, advance func(string) float64) []string {
	words := strings.Fields(paragraph)
	if len(words) == 0 {
		return []string{""}
	}

	var lines []string
	current := ""
	for _, word := range words {
		candidate := word
		if current != "" {
			candidate = current + " " + word
		}
		if advance(candidate) <= maxWidth {
			current = candidate
			continue
		}
		if current != "" {
			lines = append(lines, current)
			current = ""
		}
		if advance(word) <= maxWidth {
			current = word
			continue
		}
		broken := breakWord(word, maxWidth, advance)
		lines = append(lines, broken[:len(broken)-1]...)
		current = broken[len(broken)-1]
	}
	if current != "" {
		lines = append(lines, current)
	}
	return lines
}

// breakWord splits a single word into chunks that fit maxWidth. Every chunk
// holds at least one rune so the loop always advances.
func breakWord(word string, maxWidth float64, advance func(string) float64) []string {
	var chunks []string
	start := 0
	for start < len(word) {
		end := start
		for end < len(word) {
			_, size := utf8.DecodeRuneInString(word[end:])
			if end > start && advance(word[start:end+size]) > maxWidth {
				break
			}
			end += size
		}
		chunks = append(chunks, word[start:end])
		start = end
	}
	return chunks
}
