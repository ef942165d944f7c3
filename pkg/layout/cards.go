package layout

import (
	"math"

	"github.com/goliatone/go-deckgen/pkg/autofit"
	"github.com/goliatone/go-deckgen/pkg/content"
	"github.com/goliatone/go-deckgen/pkg/geometry"
	"github.com/goliatone/go-deckgen/pkg/scene"
)

// Multi-card grid constants.
const (
	CardGridMaxRows   = 3
	CardGridPerRow    = 4
	CardGridMaxCards  = CardGridMaxRows * CardGridPerRow
	CardGridGap       = 16.0
	CardTitleSize     = 17.0
	CardIconSize      = 28.0
	CardAccentWidth   = 6.0
	CardInnerPadding  = 16.0
	CardTitleHeight   = 26.0
	CardIconTextRatio = 0.5
)

// CardBodyFit is shared by every card body on the page.
var CardBodyFit = autofit.MustParams(15, 1, 10)

func resolveMultiCardGrid(page content.Page, env Env) scene.Page {
	c, _ := content.As[content.MultiCardGrid](page)
	b := newBuilder(page, env)
	pal := env.Palette
	b.heading(c.Heading, pal.Text)

	rows := geometry.DistributeIntoRows(len(c.Cards), CardGridMaxRows, CardGridPerRow)
	cells := geometry.GridCells(rows, b.contentArea(), CardGridGap)

	type cardBoxes struct {
		icon  geometry.Rect
		title geometry.Rect
		body  geometry.Rect
	}
	boxes := make([]cardBoxes, len(cells))
	slots := make([]textSlot, len(cells))
	for i, cell := range cells {
		card := c.Cards[i]
		x := cell.X + CardAccentWidth + CardInnerPadding
		w := math.Max(cell.W-CardAccentWidth-2*CardInnerPadding, 0)
		y := cell.Y + 14
		var bx cardBoxes
		if card.Icon != "" {
			bx.icon = geometry.R(x, y, CardIconSize, CardIconSize)
			y += CardIconSize + 6
		}
		bx.title = geometry.R(x, y, w, CardTitleHeight)
		y += CardTitleHeight + 6
		bx.body = geometry.R(x, y, w, math.Max(cell.Y+cell.H-12-y, 0))
		boxes[i] = bx
		slots[i] = textSlot{id: elementID("card", i) + "-body", text: card.Body, box: bx.body}
	}
	shared := b.fitShared(slots, DefaultLineHeight, CardBodyFit)

	for i, cell := range cells {
		card := c.Cards[i]
		bx := boxes[i]
		color := pal.Or(card.Color, pal.SeriesColor(i))
		id := elementID("card", i)
		b.add(scene.Rect(id, cell, scene.Style{Fill: pal.Surface, Radius: 10}))
		b.add(scene.Rect(id+"-accent", geometry.R(cell.X, cell.Y, CardAccentWidth, cell.H), scene.Style{Fill: color}))
		if card.Icon != "" {
			b.add(scene.Circle(id+"-icon", bx.icon.Center(), CardIconSize/2, scene.Style{Fill: color}))
			b.add(scene.TextBlock(id+"-icon-label", bx.icon, scene.Text{
				Content:    card.Icon,
				FontSize:   CardIconSize * CardIconTextRatio,
				Bold:       true,
				Align:      scene.AlignCenter,
				VAlign:     scene.VAlignMiddle,
				Color:      pal.Contrast(color),
				LineHeight: 1,
			}))
		}
		b.add(scene.TextBlock(id+"-title", bx.title, scene.Text{
			Content:    card.Title,
			FontSize:   CardTitleSize,
			Bold:       true,
			Align:      scene.AlignLeft,
			VAlign:     scene.VAlignMiddle,
			Color:      pal.Text,
			LineHeight: TightLineHeight,
		}))
		if card.Body != "" {
			b.add(scene.TextBlock(slots[i].id, bx.body, scene.Text{
				Content:    card.Body,
				FontSize:   shared.Value,
				Align:      scene.AlignLeft,
				VAlign:     scene.VAlignTop,
				Color:      pal.Muted,
				LineHeight: DefaultLineHeight,
			}))
		}
	}
	return b.build()
}
