// Package scene describes resolved page geometry: an ordered list of
// positioned, styled elements that both rendering backends draw verbatim.
package scene
