package layout

import (
	"math"

	"github.com/goliatone/go-deckgen/pkg/content"
	"github.com/goliatone/go-deckgen/pkg/geometry"
	"github.com/goliatone/go-deckgen/pkg/scene"
)

// Photo-gallery constants.
const (
	GalleryMaxRows      = 4
	GalleryPerRow       = 4
	GalleryMaxPhotos    = GalleryMaxRows * GalleryPerRow
	GalleryGap          = 12.0
	GalleryCaptionSize  = 12.0
	GalleryCaptionBand  = 28.0
	GalleryCaptionAlpha = 0.6
)

// GalleryCells returns the photo cells for count photos inside area. Photos
// beyond GalleryMaxPhotos get no cell.
func GalleryCells(count int, area geometry.Rect) []geometry.Rect {
	rows := geometry.DistributeIntoRows(count, GalleryMaxRows, GalleryPerRow)
	return geometry.GridCells(rows, area, GalleryGap)
}

func resolvePhotoGallery(page content.Page, env Env) scene.Page {
	c, _ := content.As[content.PhotoGallery](page)
	b := newBuilder(page, env)
	pal := env.Palette
	b.heading(c.Heading, pal.Text)

	cells := GalleryCells(len(c.Photos), b.contentArea())
	for i, cell := range cells {
		photo := c.Photos[i]
		id := elementID("photo", i)
		b.add(scene.Picture(id, cell, photo.Image, scene.Style{Fill: pal.Placeholder, Radius: 6}))

		// A caption without a photo has nothing to describe.
		if photo.Caption == "" || photo.Image == "" {
			continue
		}
		bandH := math.Min(GalleryCaptionBand, cell.H/4)
		band := geometry.R(cell.X, cell.Y+cell.H-bandH, cell.W, bandH)
		b.add(scene.Rect(id+"-caption-band", band, scene.Style{Fill: pal.Overlay, Opacity: GalleryCaptionAlpha}))
		b.add(scene.TextBlock(id+"-caption", geometry.R(band.X+8, band.Y, math.Max(band.W-16, 0), band.H), scene.Text{
			Content:    photo.Caption,
			FontSize:   math.Min(GalleryCaptionSize, bandH*0.6),
			Align:      scene.AlignLeft,
			VAlign:     scene.VAlignMiddle,
			Color:      pal.Background,
			LineHeight: TightLineHeight,
		}))
	}
	return b.build()
}
