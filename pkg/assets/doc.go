// Package assets loads image bytes by opaque key. Absence is an expected
// outcome: renderers draw a placeholder for any key missing from a Set.
package assets
