package layout

import (
	"math"

	"github.com/goliatone/go-deckgen/pkg/autofit"
	"github.com/goliatone/go-deckgen/pkg/content"
	"github.com/goliatone/go-deckgen/pkg/geometry"
	"github.com/goliatone/go-deckgen/pkg/scene"
)

// Map template constants.
const (
	MapListRatio      = 0.6
	MapListPadding    = 24.0
	MapListTitleSize  = 18.0
	MapListBodySize   = 14.0
	MapListItemGap    = 12.0
	MapListBullet     = 5.0
	MapCardWidth      = 240.0
	MapCardHeight     = 120.0
	MapCardTitleSize  = 16.0
	MarkerRadius      = 8.0
	MarkerDotRadius   = 3.0
	MarkerLabelSize   = 13.0
	MarkerLabelWidth  = 160.0
	MapPanelWidth     = 320.0
	MapPanelHeight    = 160.0
	MapPanelTitleSize = 18.0
	MapBandHeight     = 80.0
	MapBandAlpha      = 0.55
)

var (
	// MapListScaleFit shrinks the whole item list uniformly.
	MapListScaleFit = autofit.MustParams(1.0, 0.05, 0.6)
	// MapCardBodyFit is the per-card body range.
	MapCardBodyFit = autofit.MustParams(14, 1, 10)
	// MapPanelBodyFit is the info panel body range.
	MapPanelBodyFit = autofit.MustParams(14, 1, 10)
)

// mapBackdrop draws a full-bleed map and, when there is a heading, a dark
// band to carry it.
func mapBackdrop(b *builder, key, heading string) {
	pal := b.env.Palette
	b.add(scene.Picture("map", b.env.Canvas.Bounds(), key, scene.Style{Fill: pal.Placeholder}))
	if heading == "" {
		return
	}
	b.add(scene.Rect("heading-band", geometry.R(0, 0, b.width(), MapBandHeight), scene.Style{Fill: pal.Overlay, Opacity: MapBandAlpha}))
	b.heading(heading, pal.Background)
}

func resolveMapTextList(page content.Page, env Env) scene.Page {
	c, _ := content.As[content.MapTextList](page)
	b := newBuilder(page, env)
	pal := env.Palette
	w, h := b.width(), b.height()

	mapW := w * MapListRatio
	b.add(scene.Picture("map", geometry.R(0, 0, mapW, h), c.MapImage, scene.Style{Fill: pal.Placeholder}))
	b.add(scene.Rect("panel", geometry.R(mapW, 0, w-mapW, h), scene.Style{Fill: pal.Surface}))

	inner := geometry.R(mapW+MapListPadding, 0, w-mapW-2*MapListPadding, h)
	if c.Heading != "" {
		b.headingIn(geometry.R(inner.X, HeadingTop, inner.W, HeadingHeight), c.Heading, pal.Text)
	}

	list := geometry.R(inner.X, ContentTop, inner.W, h-ContentTop-Margin)
	textW := math.Max(list.W-3*MapListBullet, 0)
	m := env.measurer()
	blocks := mapListBlocks(c.Items)
	state := b.fitScale("item-list", blocks, geometry.R(list.X+3*MapListBullet, list.Y, textW, list.H), MapListScaleFit)
	scale := state.Value

	accent := pal.Or(c.AccentColor, pal.Accent)
	titleSize := scaled(MapListTitleSize, scale)
	bodySize := scaled(MapListBodySize, scale)
	y := list.Y
	next := 0
	for i, item := range c.Items {
		title := blocks[next]
		next++
		y += title.Gap * scale
		titleH := autofit.BlockHeight(m, title, textW, scale)
		b.add(scene.Circle(elementID("item-bullet", i), geometry.Pt(list.X+MapListBullet, y+titleSize*TightLineHeight/2), MapListBullet*scale, scene.Style{Fill: accent}))
		b.add(scene.TextBlock(elementID("item-title", i), geometry.R(list.X+3*MapListBullet, y, textW, titleH), scene.Text{
			Content:    item.Title,
			FontSize:   titleSize,
			Bold:       true,
			Align:      scene.AlignLeft,
			VAlign:     scene.VAlignTop,
			Color:      pal.Text,
			LineHeight: TightLineHeight,
		}))
		y += titleH
		if item.Body != "" {
			body := blocks[next]
			next++
			y += body.Gap * scale
			bodyH := autofit.BlockHeight(m, body, textW, scale)
			b.add(scene.TextBlock(elementID("item-body", i), geometry.R(list.X+3*MapListBullet, y, textW, bodyH), scene.Text{
				Content:    item.Body,
				FontSize:   bodySize,
				Align:      scene.AlignLeft,
				VAlign:     scene.VAlignTop,
				Color:      pal.Muted,
				LineHeight: DefaultLineHeight,
			}))
			y += bodyH
		}
	}
	return b.build()
}

// mapListBlocks stacks every item as a title block followed by its body block
// when there is one. Titles always keep a line so bullets stay aligned.
func mapListBlocks(items []content.ListItem) []autofit.Block {
	blocks := make([]autofit.Block, 0, 2*len(items))
	for i, item := range items {
		title := autofit.Block{Text: item.Title, Size: MapListTitleSize, LineHeight: TightLineHeight, KeepLine: true}
		if i > 0 {
			title.Gap = MapListItemGap
		}
		blocks = append(blocks, title)
		if item.Body != "" {
			blocks = append(blocks, autofit.Block{Text: item.Body, Size: MapListBodySize, LineHeight: DefaultLineHeight, Gap: 4})
		}
	}
	return blocks
}

func scaled(size, scale float64) float64 {
	return math.Round(size*scale*100) / 100
}

func resolveMapTextCards(page content.Page, env Env) scene.Page {
	c, _ := content.As[content.MapTextCards](page)
	b := newBuilder(page, env)
	pal := env.Palette
	mapBackdrop(b, c.MapImage, c.Heading)

	for i, card := range c.Cards {
		// Positions are not clamped; a card may hang off the canvas.
		x := geometry.PercentToPixel(card.X, b.width())
		y := geometry.PercentToPixel(card.Y, b.height())
		box := geometry.R(x, y, MapCardWidth, MapCardHeight)
		color := pal.Or(card.Color, pal.SeriesColor(i))
		id := elementID("card", i)
		b.add(scene.Rect(id, box, scene.Style{Fill: pal.Background, Stroke: color, StrokeWidth: 2, Radius: 8}))
		b.add(scene.Rect(id+"-bar", geometry.R(box.X, box.Y, box.W, 6), scene.Style{Fill: color}))
		b.add(scene.TextBlock(id+"-title", geometry.R(box.X+12, box.Y+14, box.W-24, 24), scene.Text{
			Content:    card.Title,
			FontSize:   MapCardTitleSize,
			Bold:       true,
			Align:      scene.AlignLeft,
			VAlign:     scene.VAlignMiddle,
			Color:      pal.Text,
			LineHeight: TightLineHeight,
		}))
		if card.Body == "" {
			continue
		}
		bodyBox := geometry.R(box.X+12, box.Y+42, box.W-24, box.H-54)
		state := b.fit(id+"-body", card.Body, bodyBox, DefaultLineHeight, MapCardBodyFit)
		b.add(scene.TextBlock(id+"-body", bodyBox, scene.Text{
			Content:    card.Body,
			FontSize:   state.Value,
			Align:      scene.AlignLeft,
			VAlign:     scene.VAlignTop,
			Color:      pal.Muted,
			LineHeight: DefaultLineHeight,
		}))
	}
	return b.build()
}

func resolveMapOverlay(page content.Page, env Env) scene.Page {
	c, _ := content.As[content.MapOverlay](page)
	b := newBuilder(page, env)
	pal := env.Palette
	mapBackdrop(b, c.MapImage, c.Heading)

	for i, mk := range c.Markers {
		center := geometry.Pt(geometry.PercentToPixel(mk.X, b.width()), geometry.PercentToPixel(mk.Y, b.height()))
		r := mk.Radius
		if r <= 0 {
			r = MarkerRadius
		}
		color := pal.Or(mk.Color, pal.Accent)
		id := elementID("marker", i)
		b.add(scene.Circle(id, center, r, scene.Style{Fill: color, Opacity: 0.35, Stroke: color, StrokeWidth: 2}))
		b.add(scene.Circle(id+"-dot", center, MarkerDotRadius, scene.Style{Fill: color}))
		if mk.Label == "" {
			continue
		}
		label := scene.TextBlock(id+"-label", geometry.R(center.X+r+6, center.Y-10, MarkerLabelWidth, 20), scene.Text{
			Content:    mk.Label,
			FontSize:   MarkerLabelSize,
			Bold:       true,
			Align:      scene.AlignLeft,
			VAlign:     scene.VAlignMiddle,
			Color:      pal.Text,
			LineHeight: TightLineHeight,
		})
		anchor := geometry.Pt(center.X+r+6, center.Y)
		label.Anchor = &anchor
		b.add(label)
	}

	if c.Panel.Title == "" && c.Panel.Body == "" {
		return b.build()
	}
	panel := geometry.R(Margin, b.height()-Margin-MapPanelHeight, MapPanelWidth, MapPanelHeight)
	b.add(scene.Rect("panel", panel, scene.Style{Fill: pal.Background, Opacity: 0.92, Radius: 8}))
	bodyBox := geometry.R(panel.X+16, panel.Y+16, panel.W-32, panel.H-32)
	if c.Panel.Title != "" {
		b.add(scene.TextBlock("panel-title", geometry.R(panel.X+16, panel.Y+14, panel.W-32, 26), scene.Text{
			Content:    c.Panel.Title,
			FontSize:   MapPanelTitleSize,
			Bold:       true,
			Align:      scene.AlignLeft,
			VAlign:     scene.VAlignMiddle,
			Color:      pal.Text,
			LineHeight: TightLineHeight,
		}))
		bodyBox = geometry.R(panel.X+16, panel.Y+46, panel.W-32, panel.H-60)
	}
	if c.Panel.Body != "" {
		state := b.fit("panel-body", c.Panel.Body, bodyBox, DefaultLineHeight, MapPanelBodyFit)
		b.add(scene.TextBlock("panel-body", bodyBox, scene.Text{
			Content:    c.Panel.Body,
			FontSize:   state.Value,
			Align:      scene.AlignLeft,
			VAlign:     scene.VAlignTop,
			Color:      pal.Muted,
			LineHeight: DefaultLineHeight,
		}))
	}
	return b.build()
}
