package layout

import (
	"github.com/goliatone/go-deckgen/pkg/autofit"
	"github.com/goliatone/go-deckgen/pkg/content"
	"github.com/goliatone/go-deckgen/pkg/geometry"
	"github.com/goliatone/go-deckgen/pkg/scene"
)

// Cover constants.
const (
	CoverTitleWidth    = 800.0
	CoverTitleHeight   = 180.0
	CoverSubtitleSize  = 24.0
	CoverPresenterSize = 18.0
	CoverYearSize      = 18.0
	CoverOverlayAlpha  = 0.45
)

// CoverTitleFit is the title auto-fit range.
var CoverTitleFit = autofit.MustParams(56, 2, 28)

func resolveCover(page content.Page, env Env) scene.Page {
	c, _ := content.As[content.Cover](page)
	b := newBuilder(page, env)
	pal := env.Palette
	w, h := b.width(), b.height()

	textColor := pal.Contrast(pal.Primary)
	if c.BackgroundImage != "" {
		b.add(scene.Picture("background", env.Canvas.Bounds(), c.BackgroundImage, scene.Style{Fill: pal.Placeholder}))
		b.add(scene.Rect("overlay", env.Canvas.Bounds(), scene.Style{Fill: pal.Overlay, Opacity: CoverOverlayAlpha}))
		textColor = pal.Background
	} else {
		b.page.Background = pal.Primary
	}

	titleX := (w - CoverTitleWidth) / 2
	titleBox := geometry.R(titleX, (h-CoverTitleHeight)/2-40, CoverTitleWidth, CoverTitleHeight)
	accent := pal.Or(c.AccentColor, pal.Accent)
	b.add(scene.Rect("accent", geometry.R(titleX, titleBox.Y-16, 80, 6), scene.Style{Fill: accent}))

	state := b.fit("title", c.Title, titleBox, TightLineHeight, CoverTitleFit)
	b.add(scene.TextBlock("title", titleBox, scene.Text{
		Content:    c.Title,
		FontSize:   state.Value,
		Bold:       true,
		Align:      scene.AlignLeft,
		VAlign:     scene.VAlignBottom,
		Color:      textColor,
		LineHeight: TightLineHeight,
	}))

	cursor := titleBox.Y + titleBox.H + 12
	if c.Subtitle != "" {
		box := geometry.R(titleX, cursor, CoverTitleWidth, CoverSubtitleSize*DefaultLineHeight*2)
		b.add(scene.TextBlock("subtitle", box, scene.Text{
			Content:    c.Subtitle,
			FontSize:   CoverSubtitleSize,
			Align:      scene.AlignLeft,
			VAlign:     scene.VAlignTop,
			Color:      textColor,
			LineHeight: DefaultLineHeight,
		}))
		cursor += box.H + 8
	}
	if c.Presenter != "" {
		box := geometry.R(titleX, cursor, CoverTitleWidth, CoverPresenterSize*DefaultLineHeight)
		b.add(scene.TextBlock("presenter", box, scene.Text{
			Content:    c.Presenter,
			FontSize:   CoverPresenterSize,
			Align:      scene.AlignLeft,
			VAlign:     scene.VAlignTop,
			Color:      textColor,
			LineHeight: DefaultLineHeight,
		}))
	}

	year := c.Year
	if year == "" {
		year = env.Year
	}
	if year != "" {
		box := geometry.R(w-Margin-200, h-Margin-30, 200, 30)
		b.add(scene.TextBlock("year", box, scene.Text{
			Content:    year,
			FontSize:   CoverYearSize,
			Bold:       true,
			Align:      scene.AlignRight,
			VAlign:     scene.VAlignBottom,
			Color:      textColor,
			LineHeight: DefaultLineHeight,
		}))
	}
	return b.build()
}
