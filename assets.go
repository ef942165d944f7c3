package deckgen

import (
	"io/fs"

	"github.com/goliatone/go-deckgen/pkg/renderers/preview"
)

// EmbeddedTemplates exposes the built-in preview templates so callers can
// reuse or extend them without importing the renderer package directly.
func EmbeddedTemplates() fs.FS {
	return preview.TemplatesFS()
}

// PreviewAssetsFS exposes the preview stylesheet for servers that link it
// with preview.WithStylesheetHref instead of inlining it.
//
// Typical mount:
//
//	mux.Handle("/deckgen/",
//	  http.StripPrefix("/deckgen/",
//	    http.FileServerFS(deckgen.PreviewAssetsFS()),
//	  ),
//	)
func PreviewAssetsFS() fs.FS {
	return preview.AssetsFS()
}
