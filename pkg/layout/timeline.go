package layout

import (
	"math"

	"github.com/goliatone/go-deckgen/pkg/autofit"
	"github.com/goliatone/go-deckgen/pkg/content"
	"github.com/goliatone/go-deckgen/pkg/geometry"
	"github.com/goliatone/go-deckgen/pkg/scene"
)

// Timeline constants.
const (
	TimelineMaxEvents  = 8
	TimelineAxisRatio  = 0.55
	TimelineDotRadius  = 8.0
	TimelineCardGap    = 24.0
	TimelineCardWidth  = 200.0
	TimelineCardHeight = 150.0
	TimelineDateSize   = 13.0
	TimelineTitleSize  = 15.0
)

// TimelineBodyFit is shared by every event body on the page.
var TimelineBodyFit = autofit.MustParams(14, 1, 9)

func resolveTimeline(page content.Page, env Env) scene.Page {
	c, _ := content.As[content.Timeline](page)
	b := newBuilder(page, env)
	pal := env.Palette
	w, h := b.width(), b.height()
	b.heading(c.Heading, pal.Text)

	color := pal.Or(c.Color, pal.Primary)
	axisY := h * TimelineAxisRatio
	b.add(scene.Segment("axis", geometry.Pt(Margin, axisY), geometry.Pt(w-Margin, axisY), scene.Style{Stroke: color, StrokeWidth: 3}, false))

	events := c.Events
	if len(events) > TimelineMaxEvents {
		events = events[:TimelineMaxEvents]
	}
	if len(events) == 0 {
		return b.build()
	}

	slot := (w - 2*Margin) / float64(len(events))
	cardW := math.Min(slot-12, TimelineCardWidth)
	cardH := math.Min(TimelineCardHeight, math.Min(axisY-TimelineCardGap-ContentTop, h-Margin-axisY-TimelineCardGap))
	if cardH < 0 {
		cardH = 0
	}

	type card struct {
		box  geometry.Rect
		body geometry.Rect
	}
	cards := make([]card, len(events))
	slots := make([]textSlot, len(events))
	for i, ev := range events {
		cx := Margin + slot*(float64(i)+0.5)
		y := axisY + TimelineCardGap
		if i%2 == 0 {
			y = axisY - TimelineCardGap - cardH
		}
		box := geometry.R(cx-cardW/2, y, cardW, cardH)
		body := geometry.R(box.X+10, box.Y+68, box.W-20, box.H-76)
		cards[i] = card{box: box, body: body}
		slots[i] = textSlot{id: elementID("event-body", i), text: ev.Body, box: body}
	}
	shared := b.fitShared(slots, DefaultLineHeight, TimelineBodyFit)

	for i, ev := range events {
		cd := cards[i]
		center := geometry.Pt(cd.box.X+cd.box.W/2, axisY)
		edgeY := cd.box.Y + cd.box.H
		if i%2 == 1 {
			edgeY = cd.box.Y
		}
		b.add(scene.Segment(elementID("event-stem", i), center, geometry.Pt(center.X, edgeY), scene.Style{Stroke: pal.Line, StrokeWidth: 1}, false))
		b.add(scene.Circle(elementID("event-dot", i), center, TimelineDotRadius, scene.Style{Fill: color, Stroke: pal.Background, StrokeWidth: 2}))
		b.add(scene.Rect(elementID("event-card", i), cd.box, scene.Style{Fill: pal.Surface, Stroke: pal.Line, StrokeWidth: 1, Radius: 8}))
		b.add(scene.TextBlock(elementID("event-date", i), geometry.R(cd.box.X+10, cd.box.Y+8, cd.box.W-20, 18), scene.Text{
			Content:    ev.Date,
			FontSize:   TimelineDateSize,
			Bold:       true,
			Align:      scene.AlignLeft,
			VAlign:     scene.VAlignTop,
			Color:      pal.Accent,
			LineHeight: TightLineHeight,
		}))
		b.add(scene.TextBlock(elementID("event-title", i), geometry.R(cd.box.X+10, cd.box.Y+28, cd.box.W-20, 36), scene.Text{
			Content:    ev.Title,
			FontSize:   TimelineTitleSize,
			Bold:       true,
			Align:      scene.AlignLeft,
			VAlign:     scene.VAlignTop,
			Color:      pal.Text,
			LineHeight: TightLineHeight,
		}))
		if ev.Body != "" {
			b.add(scene.TextBlock(slots[i].id, cd.body, scene.Text{
				Content:    ev.Body,
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
