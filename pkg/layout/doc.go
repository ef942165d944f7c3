// Package layout turns template content into resolved page geometry.
//
// Each template tag has a Resolver. Resolvers are pure: the same content and
// Env always produce the same scene.Page, they share no state, and they never
// fail on content shape. Missing references are dropped, malformed numbers are
// clamped and absent images become placeholders.
//
// Auto-fit runs here, once, with Env.Measurer. Renderers draw the stored font
// sizes and never fit again (see FitStrategies).
package layout
