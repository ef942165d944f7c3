// Package autofit shrinks a font size (or a uniform scale factor) until
// measured content fits an available height, stopping at a minimum.
//
// The loop is iterative because line wrapping is not linear in font size:
// every candidate value is measured again. Measurement is supplied by the
// caller. Resolvers use the analytic Estimator so the preview and export
// backends always see the same fitted value; FaceMeasurer measures real glyph
// advances and is used to report where the estimate drifts.
package autofit
