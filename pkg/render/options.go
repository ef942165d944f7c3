package render

import "github.com/goliatone/go-deckgen/pkg/geometry"

// RenderOptions describe per-request data layered over a Document without
// mutating its resolved geometry.
type RenderOptions struct {
	// Offsets nudges individual elements, keyed by OffsetKey(pageID,
	// elementID). It backs the manual positioning tool: the override is
	// applied at draw time and the scene stays untouched.
	Offsets map[string]geometry.Point
	// Debug outlines every element and labels it with its id.
	Debug bool
}

// OffsetKey builds the Offsets key for an element on a page.
func OffsetKey(pageID, elementID string) string {
	return pageID + "/" + elementID
}
