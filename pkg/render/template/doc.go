// Package template defines the template engine seam used by text based
// renderers such as the HTML preview.
package template
