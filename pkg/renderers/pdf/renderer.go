// Package pdf exports resolved decks as PDF documents, one page per deck page
// sized to the logical canvas in points.
package pdf

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/goliatone/go-deckgen/pkg/render"
)

// Name is the registry name of the PDF backend.
const Name = "pdf"

const producer = "go-deckgen"

type Option func(*config)

type fontFiles struct {
	regular []byte
	bold    []byte
}

type config struct {
	fonts    map[string]fontFiles
	created  time.Time
	compress bool
	hasDate  bool
}

// WithFont registers TrueType bytes for a family name. Documents whose font
// family Name matches draw with it as UTF-8 text; others fall back to the
// family's core font. A nil bold face reuses the regular one.
func WithFont(name string, regular, bold []byte) Option {
	return func(cfg *config) {
		if name == "" || len(regular) == 0 {
			return
		}
		if len(bold) == 0 {
			bold = regular
		}
		cfg.fonts[name] = fontFiles{regular: regular, bold: bold}
	}
}

// WithCreationDate pins the document creation and modification dates, which
// makes output reproducible.
func WithCreationDate(ts time.Time) Option {
	return func(cfg *config) {
		cfg.created = ts
		cfg.hasDate = true
	}
}

// WithCompression toggles page stream compression. Defaults to enabled.
func WithCompression(enabled bool) Option {
	return func(cfg *config) {
		cfg.compress = enabled
	}
}

// Renderer draws documents with fpdf.
type Renderer struct {
	cfg config
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the PDF renderer applying any provided options.
func New(options ...Option) *Renderer {
	cfg := config{fonts: make(map[string]fontFiles), compress: true}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	return &Renderer{cfg: cfg}
}

func (r *Renderer) Name() string {
	return Name
}

func (r *Renderer) ContentType() string {
	return "application/pdf"
}

func (r *Renderer) Render(ctx context.Context, doc render.Document, options render.RenderOptions) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("pdf renderer: context is required")
	}
	if err := doc.Validate(); err != nil {
		return nil, fmt.Errorf("pdf renderer: %w", err)
	}

	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           fpdf.SizeType{Wd: doc.Canvas.Width, Ht: doc.Canvas.Height},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCellMargin(0)
	pdf.SetCompression(r.cfg.compress)
	pdf.SetProducer(producer, false)
	pdf.SetTitle(doc.Title, true)
	if doc.Language != "" {
		pdf.SetLang(doc.Language)
	}
	if r.cfg.hasDate {
		pdf.SetCreationDate(r.cfg.created)
		pdf.SetModificationDate(r.cfg.created)
	}

	surface := r.surface(pdf, doc)
	if err := Draw(ctx, doc, options, surface); err != nil {
		return nil, err
	}
	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("pdf renderer: %w", err)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf renderer: output: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) surface(pdf *fpdf.Fpdf, doc render.Document) *fpdfSurface {
	family := doc.FontFamily()
	if files, ok := r.cfg.fonts[family.Name]; ok {
		pdf.AddUTF8FontFromBytes(family.Name, "", files.regular)
		pdf.AddUTF8FontFromBytes(family.Name, "B", files.bold)
		return newFPDFSurface(pdf, family.Name, nil)
	}
	core := family.Core
	if core == "" {
		core = "Helvetica"
	}
	return newFPDFSurface(pdf, core, pdf.UnicodeTranslatorFromDescriptor(""))
}
