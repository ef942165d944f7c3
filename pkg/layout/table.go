package layout

import (
	"math"

	"github.com/goliatone/go-deckgen/pkg/content"
	"github.com/goliatone/go-deckgen/pkg/geometry"
	"github.com/goliatone/go-deckgen/pkg/scene"
)

// Data-table constants.
const (
	TableHeaderHeight  = 40.0
	TableRowHeight     = 36.0
	TableHeaderSize    = 15.0
	TableMaxCellSize   = 14.0
	TableMinCellSize   = 8.0
	TableCellFontRatio = 0.4
	TableCellPadding   = 8.0
)

// NormalizeWidths returns column percentages summing to 100. The signed
// difference from 100 is split evenly across all columns. If that would leave
// a column at zero or below, the non-negative inputs are scaled
// proportionally instead, and equal widths are used when nothing is positive.
func NormalizeWidths(widths []float64) []float64 {
	n := len(widths)
	if n == 0 {
		return nil
	}
	clean := make([]float64, n)
	sum := 0.0
	for i, w := range widths {
		if math.IsNaN(w) || math.IsInf(w, 0) {
			w = 0
		}
		clean[i] = w
		sum += w
	}

	out := make([]float64, n)
	share := (100 - sum) / float64(n)
	valid := true
	for i, w := range clean {
		out[i] = w + share
		if out[i] <= 0 {
			valid = false
		}
	}
	if valid {
		return out
	}

	positive := 0.0
	for _, w := range clean {
		if w > 0 {
			positive += w
		}
	}
	for i, w := range clean {
		switch {
		case positive <= 0:
			out[i] = 100 / float64(n)
		case w > 0:
			out[i] = w / positive * 100
		default:
			out[i] = 0
		}
	}
	return out
}

// RowHeight returns the uniform body row height: the default, or the share of
// available height when the default total would overflow.
func RowHeight(available float64, rows int) float64 {
	if rows <= 0 || available <= 0 {
		return 0
	}
	return math.Min(TableRowHeight, available/float64(rows))
}

// CellFontSize scales the body font with the row height, in half points,
// between TableMinCellSize and TableMaxCellSize.
func CellFontSize(rowHeight float64) float64 {
	size := math.Floor(rowHeight*TableCellFontRatio*2) / 2
	return geometry.Clamp(size, TableMinCellSize, TableMaxCellSize)
}

func resolveDataTable(page content.Page, env Env) scene.Page {
	c, _ := content.As[content.DataTable](page)
	b := newBuilder(page, env)
	pal := env.Palette
	b.heading(c.Heading, pal.Text)

	columns := c.Columns
	if len(columns) == 0 {
		wide := 0
		for _, row := range c.Rows {
			wide = max(wide, len(row))
		}
		columns = make([]content.Column, wide)
	}
	if len(columns) == 0 {
		return b.build()
	}

	raw := make([]float64, len(columns))
	for i, col := range columns {
		raw[i] = col.Width
	}
	widths := NormalizeWidths(raw)

	area := b.contentArea()
	xs := make([]float64, len(columns))
	ws := make([]float64, len(columns))
	cursor := area.X
	for i, pct := range widths {
		xs[i] = cursor
		ws[i] = geometry.PercentToPixel(pct, area.W)
		cursor += ws[i]
	}

	headerFill := pal.Or(c.HeaderColor, pal.Primary)
	headerInk := pal.Contrast(headerFill)
	header := geometry.R(area.X, area.Y, area.W, TableHeaderHeight)
	b.add(scene.Rect("header", header, scene.Style{Fill: headerFill}))
	for i, col := range columns {
		box := geometry.R(xs[i], header.Y, ws[i], header.H).Inset(TableCellPadding)
		b.add(scene.TextBlock(elementID("header-cell", i), box, scene.Text{
			Content:    col.Title,
			FontSize:   TableHeaderSize,
			Bold:       true,
			Align:      scene.AlignLeft,
			VAlign:     scene.VAlignMiddle,
			Color:      headerInk,
			LineHeight: TightLineHeight,
		}))
	}

	rowH := RowHeight(area.H-TableHeaderHeight, len(c.Rows))
	fontSize := CellFontSize(rowH)
	for r, row := range c.Rows {
		y := header.Y + header.H + float64(r)*rowH
		rowBox := geometry.R(area.X, y, area.W, rowH)
		fill := pal.Background
		if c.Striped && r%2 == 1 {
			fill = pal.Surface
		}
		b.add(scene.Rect(elementID("row", r), rowBox, scene.Style{Fill: fill}))
		b.add(scene.Segment(elementID("row-rule", r), geometry.Pt(area.X, y+rowH), geometry.Pt(area.X+area.W, y+rowH), scene.Style{Stroke: pal.Line, StrokeWidth: 0.5}, false))
		for i := range columns {
			value := ""
			if i < len(row) {
				value = row[i]
			}
			if value == "" {
				continue
			}
			box := geometry.R(xs[i]+TableCellPadding, y, math.Max(ws[i]-2*TableCellPadding, 0), rowH)
			b.add(scene.TextBlock(elementID("cell-"+itoa(r), i), box, scene.Text{
				Content:    value,
				FontSize:   fontSize,
				Align:      scene.AlignLeft,
				VAlign:     scene.VAlignMiddle,
				Color:      pal.Text,
				LineHeight: TightLineHeight,
			}))
		}
	}
	return b.build()
}
