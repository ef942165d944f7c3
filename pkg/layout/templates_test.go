package layout_test

import (
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/goliatone/go-deckgen/pkg/content"
	"github.com/goliatone/go-deckgen/pkg/geometry"
	"github.com/goliatone/go-deckgen/pkg/layout"
	"github.com/goliatone/go-deckgen/pkg/scene"
)

func TestCover_DefaultsYearAndFitsTitle(t *testing.T) {
	env := newEnv(t)
	page := layout.Resolve(content.NewPage("c", content.Cover{Title: "Short"}), env)
	if year := mustFind(t, page, "year"); year.Text.Content != "2024" {
		t.Fatalf("expected env year, got %q", year.Text.Content)
	}
	if title := mustFind(t, page, "title"); title.Text.FontSize != layout.CoverTitleFit.Start {
		t.Fatalf("expected unshrunk title, got %v", title.Text.FontSize)
	}

	long := layout.Resolve(content.NewPage("c", content.Cover{Title: strings.Repeat("word ", 400), Year: "1999"}), env)
	title := mustFind(t, long, "title")
	if title.Text.FontSize != layout.CoverTitleFit.Min {
		t.Fatalf("expected title at minimum %v, got %v", layout.CoverTitleFit.Min, title.Text.FontSize)
	}
	if year := mustFind(t, long, "year"); year.Text.Content != "1999" {
		t.Fatalf("expected explicit year, got %q", year.Text.Content)
	}
}

func TestCover_BackgroundImageAddsOverlay(t *testing.T) {
	env := newEnv(t)
	page := layout.Resolve(content.NewPage("c", content.Cover{Title: "T", BackgroundImage: "hero.png"}), env)
	bg := mustFind(t, page, "background")
	if bg.Image == nil || bg.Image.Key != "hero.png" || bg.Image.Placeholder {
		t.Fatalf("unexpected background image %+v", bg.Image)
	}
	if bg.Bounds() != env.Canvas.Bounds() {
		t.Fatalf("expected full-bleed background, got %+v", bg.Bounds())
	}
	mustFind(t, page, "overlay")
}

func TestTimeline_CapsEventsAndSharesBodySize(t *testing.T) {
	env := newEnv(t)
	events := make([]content.TimelineEvent, 10)
	for i := range events {
		body := "Short note"
		if i == 3 {
			body = strings.Repeat("a much longer description ", 12)
		}
		events[i] = content.TimelineEvent{Date: fmt.Sprintf("Q%d", i+1), Title: "Milestone", Body: body}
	}
	page := layout.Resolve(content.NewPage("t", content.Timeline{Events: events}), env)

	if got := page.Count(scene.KindCircle); got != layout.TimelineMaxEvents {
		t.Fatalf("expected %d dots, got %d", layout.TimelineMaxEvents, got)
	}
	axis := mustFind(t, page, "axis")
	if !approx(axis.Y, env.Canvas.Height*layout.TimelineAxisRatio) {
		t.Fatalf("unexpected axis y %v", axis.Y)
	}

	size := mustFind(t, page, "event-body-0").Text.FontSize
	for i := 1; i < layout.TimelineMaxEvents; i++ {
		if got := mustFind(t, page, fmt.Sprintf("event-body-%d", i)).Text.FontSize; got != size {
			t.Fatalf("event %d body size %v differs from shared %v", i, got, size)
		}
	}
	if size >= layout.TimelineBodyFit.Start {
		t.Fatalf("expected the long body to shrink the shared size, got %v", size)
	}

	above := mustFind(t, page, "event-card-0")
	below := mustFind(t, page, "event-card-1")
	if above.Y+above.H > axis.Y || below.Y < axis.Y {
		t.Fatalf("cards do not alternate around the axis: %+v %+v", above.Bounds(), below.Bounds())
	}
}

func flowPage(arrows ...content.Arrow) content.Page {
	return content.NewPage("f", content.FlowChart{
		Nodes: []content.Node{
			{ID: "a", X: 25, Y: 50, Heading: "Start"},
			{ID: "b", X: 75, Y: 50, Heading: "End", Body: "done"},
		},
		Arrows: arrows,
	})
}

func TestFlowChart_ArrowToTheRightUsesRightEdge(t *testing.T) {
	env := newEnv(t)
	page := layout.Resolve(flowPage(content.Arrow{From: "a", To: "b"}), env)

	node := mustFind(t, page, "node-a")
	center := node.Bounds().Center()
	arrow := mustFind(t, page, "arrow-0")
	if !approx(arrow.X, center.X+node.W/2) || !approx(arrow.Y, center.Y) {
		t.Fatalf("expected start on right edge (%v,%v), got (%v,%v)", center.X+node.W/2, center.Y, arrow.X, arrow.Y)
	}
	target := mustFind(t, page, "node-b")
	if !approx(arrow.Line.X2, target.X) || !arrow.Line.Arrow {
		t.Fatalf("expected end on target left edge %v, got %+v", target.X, arrow.Line)
	}
}

func TestFlowChart_MissingNodeArrowOmitted(t *testing.T) {
	env := newEnv(t)
	page := layout.Resolve(flowPage(
		content.Arrow{From: "a", To: "ghost"},
		content.Arrow{From: "a", To: "b", Label: "go"},
	), env)

	if _, ok := page.Find("arrow-0"); ok {
		t.Fatalf("arrow to missing node should be omitted")
	}
	mustFind(t, page, "arrow-1")
	mustFind(t, page, "arrow-1-label")
	if got := page.Count(scene.KindLine); got != 1 {
		t.Fatalf("expected one connector, got %d", got)
	}
}

func TestLabelAnchor_Positions(t *testing.T) {
	mid := geometry.Pt(100, 100)
	cases := []struct {
		position string
		want     geometry.Point
		align    string
	}{
		{position: content.LabelAbove, want: geometry.Pt(100, 88), align: scene.AlignCenter},
		{position: content.LabelBelow, want: geometry.Pt(100, 112), align: scene.AlignCenter},
		{position: content.LabelLeft, want: geometry.Pt(88, 100), align: scene.AlignRight},
		{position: content.LabelRight, want: geometry.Pt(112, 100), align: scene.AlignLeft},
		{position: "", want: geometry.Pt(100, 88), align: scene.AlignCenter},
	}
	for _, tc := range cases {
		got, align := layout.LabelAnchor(mid, tc.position)
		if got != tc.want || align != tc.align {
			t.Fatalf("%q: expected %v/%s, got %v/%s", tc.position, tc.want, tc.align, got, align)
		}
	}
}

func TestNormalizeWidths(t *testing.T) {
	approxOpt := cmpopts.EquateApprox(0, 1e-9)
	if diff := cmp.Diff([]float64{25, 25, 25, 25}, layout.NormalizeWidths([]float64{25, 25, 25, 25}), approxOpt); diff != "" {
		t.Fatalf("widths summing to 100 changed (-want +got):\n%s", diff)
	}
	third := 20 + 40.0/3
	if diff := cmp.Diff([]float64{third, third, third}, layout.NormalizeWidths([]float64{20, 20, 20}), approxOpt); diff != "" {
		t.Fatalf("unexpected normalised widths (-want +got):\n%s", diff)
	}

	for _, in := range [][]float64{{200, 10}, {0, 0, 0}, {-50, 30}, {math.NaN(), 40}} {
		out := layout.NormalizeWidths(in)
		sum := 0.0
		for _, w := range out {
			if w < 0 {
				t.Fatalf("%v: negative width in %v", in, out)
			}
			sum += w
		}
		if math.Abs(sum-100) > 1e-9 {
			t.Fatalf("%v: widths sum to %v", in, sum)
		}
	}
	if out := layout.NormalizeWidths(nil); out != nil {
		t.Fatalf("expected nil for no columns, got %v", out)
	}
}

func TestDataTable_RowsShrinkUniformly(t *testing.T) {
	env := newEnv(t)
	rows := make([][]string, 20)
	for i := range rows {
		rows[i] = []string{fmt.Sprintf("r%d", i), "value"}
	}
	page := layout.Resolve(content.NewPage("d", content.DataTable{
		Columns: []content.Column{{Title: "Name", Width: 30}, {Title: "Value", Width: 30}},
		Rows:    rows,
	}), env)

	area := geometry.R(layout.Margin, layout.ContentTop, env.Canvas.Width-2*layout.Margin, env.Canvas.Height-layout.ContentTop-layout.Margin)
	wantH := (area.H - layout.TableHeaderHeight) / 20
	for i := range rows {
		row := mustFind(t, page, fmt.Sprintf("row-%d", i))
		if !approx(row.H, wantH) {
			t.Fatalf("row %d height %v, want %v", i, row.H, wantH)
		}
		if !area.Contains(row.Bounds()) && !approx(row.Y+row.H, area.Y+area.H) {
			t.Fatalf("row %d escapes table area: %+v", i, row.Bounds())
		}
	}
	cell := mustFind(t, page, "cell-0-0")
	if cell.Text.FontSize != layout.TableMinCellSize {
		t.Fatalf("expected minimum cell font, got %v", cell.Text.FontSize)
	}
	header := mustFind(t, page, "header-cell-1")
	if !approx(header.X, area.X+area.W/2+layout.TableCellPadding) {
		t.Fatalf("expected second column at half width, got %v", header.X)
	}
}

func TestDataTable_FewRowsKeepDefaultHeight(t *testing.T) {
	if got := layout.RowHeight(360, 3); got != layout.TableRowHeight {
		t.Fatalf("expected default row height, got %v", got)
	}
	if got := layout.CellFontSize(layout.TableRowHeight); got != layout.TableMaxCellSize {
		t.Fatalf("expected max cell size, got %v", got)
	}
}

func photos(n int) []content.Photo {
	out := make([]content.Photo, n)
	for i := range out {
		out[i] = content.Photo{Image: fmt.Sprintf("img-%d", i), Caption: fmt.Sprintf("caption %d", i)}
	}
	return out
}

func TestPhotoGallery_ElevenPhotosInThreeRows(t *testing.T) {
	env := newEnv(t)
	page := layout.Resolve(content.NewPage("g", content.PhotoGallery{Photos: photos(11)}), env)
	if got := page.Count(scene.KindImage); got != 11 {
		t.Fatalf("expected 11 images, got %d", got)
	}
	rows := map[float64]int{}
	for i := 0; i < 11; i++ {
		rows[mustFind(t, page, fmt.Sprintf("photo-%d", i)).Y]++
	}
	var sizes []int
	for i := 0; i < 11; {
		y := mustFind(t, page, fmt.Sprintf("photo-%d", i)).Y
		sizes = append(sizes, rows[y])
		i += rows[y]
	}
	if diff := cmp.Diff([]int{4, 4, 3}, sizes); diff != "" {
		t.Fatalf("row sizes mismatch (-want +got):\n%s", diff)
	}
}

func TestPhotoGallery_DropsOverflowAndStaysInArea(t *testing.T) {
	env := newEnv(t)
	page := layout.Resolve(content.NewPage("g", content.PhotoGallery{Photos: photos(20)}), env)
	if got := page.Count(scene.KindImage); got != layout.GalleryMaxPhotos {
		t.Fatalf("expected %d images, got %d", layout.GalleryMaxPhotos, got)
	}
	area := geometry.R(layout.Margin, layout.ContentTop, env.Canvas.Width-2*layout.Margin, env.Canvas.Height-layout.ContentTop-layout.Margin).Inset(-1e-9)
	for _, el := range page.Elements {
		if el.Kind == scene.KindImage && !area.Contains(el.Bounds()) {
			t.Fatalf("photo %s escapes grid area: %+v", el.ID, el.Bounds())
		}
	}
}

func TestPhotoGallery_PlaceholderAndCaptionRules(t *testing.T) {
	env := newEnv(t)
	page := layout.Resolve(content.NewPage("g", content.PhotoGallery{Photos: []content.Photo{
		{Image: "", Caption: "orphan caption"},
		{Image: "ok.png", Caption: "kept"},
	}}), env)
	first := mustFind(t, page, "photo-0")
	if !first.Image.Placeholder {
		t.Fatalf("expected placeholder for missing image")
	}
	if _, ok := page.Find("photo-0-caption"); ok {
		t.Fatalf("caption without photo should be omitted")
	}
	mustFind(t, page, "photo-1-caption")
}

func TestThreeCircles_Geometry(t *testing.T) {
	d := layout.CircleDiameter(900)
	if math.Abs(d-346.1538) > 1e-3 {
		t.Fatalf("unexpected diameter %v", d)
	}
	if math.Abs(layout.CircleOverlap(d)-69.2308) > 1e-3 {
		t.Fatalf("unexpected overlap %v", layout.CircleOverlap(d))
	}
	xs := layout.CircleCenters(30, 900)
	if !approx(xs[0], 30+d/2) || !approx(xs[1]-xs[0], d-d/5) {
		t.Fatalf("unexpected centers %v", xs)
	}
	if !approx(xs[2]+d/2, 930) {
		t.Fatalf("circles should end at the span edge, got %v", xs[2]+d/2)
	}
}

func TestThreeCircles_QuantizedSizes(t *testing.T) {
	env := newEnv(t)
	page := layout.Resolve(content.NewPage("c", content.ThreeCircles{Circles: []content.CircleItem{
		{Title: "Plan", Body: strings.Repeat("x", 100)},
		{Title: strings.Repeat("t", 30), Body: strings.Repeat("x", 150)},
		{Title: strings.Repeat("t", 50), Body: strings.Repeat("x", 250)},
		{Title: "dropped"},
	}}), env)

	wantBody := []float64{16, 14, 12}
	wantTitle := []float64{24, 20, 16}
	for i := 0; i < 3; i++ {
		if got := mustFind(t, page, fmt.Sprintf("circle-%d-body", i)).Text.FontSize; got != wantBody[i] {
			t.Fatalf("circle %d body size %v, want %v", i, got, wantBody[i])
		}
		if got := mustFind(t, page, fmt.Sprintf("circle-%d-title", i)).Text.FontSize; got != wantTitle[i] {
			t.Fatalf("circle %d title size %v, want %v", i, got, wantTitle[i])
		}
	}
	if got := page.Count(scene.KindCircle); got != 3 {
		t.Fatalf("expected three circles, got %d", got)
	}
	circle := mustFind(t, page, "circle-0")
	if math.Abs(circle.W-layout.CircleDiameter(env.Canvas.Width-2*layout.CircleSideMargin)) > 1e-9 {
		t.Fatalf("unexpected circle diameter %v", circle.W)
	}
}

func TestMapTextList_ScaleShrinksUniformly(t *testing.T) {
	env := newEnv(t)
	items := make([]content.ListItem, 12)
	for i := range items {
		items[i] = content.ListItem{Title: "Region", Body: strings.Repeat("detail ", 20)}
	}
	page := layout.Resolve(content.NewPage("m", content.MapTextList{Heading: "Regions", Items: items}), env)
	title := mustFind(t, page, "item-title-0")
	body := mustFind(t, page, "item-body-0")
	if title.Text.FontSize >= layout.MapListTitleSize {
		t.Fatalf("expected shrunk title, got %v", title.Text.FontSize)
	}
	if math.Abs(title.Text.FontSize/layout.MapListTitleSize-body.Text.FontSize/layout.MapListBodySize) > 0.01 {
		t.Fatalf("title and body scaled differently: %v %v", title.Text.FontSize, body.Text.FontSize)
	}
	mapEl := mustFind(t, page, "map")
	if !mapEl.Image.Placeholder || !approx(mapEl.W, env.Canvas.Width*layout.MapListRatio) {
		t.Fatalf("unexpected map element %+v", mapEl)
	}
}

func TestMapTextList_ReportsScaleFit(t *testing.T) {
	var records []layout.FitRecord
	env := newEnv(t, layout.WithFitObserver(func(r layout.FitRecord) {
		records = append(records, r)
	}))
	items := make([]content.ListItem, 30)
	for i := range items {
		items[i] = content.ListItem{Title: "Region", Body: strings.Repeat("detail ", 20)}
	}
	page := layout.Resolve(content.NewPage("m", content.MapTextList{Items: items}), env)

	var list *layout.FitRecord
	for i := range records {
		if records[i].Element == "item-list" {
			list = &records[i]
		}
	}
	if list == nil {
		t.Fatalf("expected item-list fit record, got %+v", records)
	}
	if list.Case.Name != "m/item-list" || len(list.Case.Blocks) != 2*len(items) {
		t.Fatalf("unexpected list case %+v", list.Case)
	}
	if list.State.Value != layout.MapListScaleFit.Min || !list.State.Overflow {
		t.Fatalf("expected overflow at minimum scale, got %+v", list.State)
	}
	title := mustFind(t, page, "item-title-0")
	if !approx(title.Text.FontSize, layout.MapListTitleSize*list.State.Value) {
		t.Fatalf("title size %v does not follow recorded scale %v", title.Text.FontSize, list.State.Value)
	}
}

func TestMapTextCards_UnclampedPositions(t *testing.T) {
	env := newEnv(t)
	page := layout.Resolve(content.NewPage("m", content.MapTextCards{MapImage: "map.png", Cards: []content.MapCard{
		{Title: "Inside", X: 10, Y: 20},
		{Title: "Hanging", X: 110, Y: -5},
	}}), env)
	inside := mustFind(t, page, "card-0")
	if !approx(inside.X, 96) || !approx(inside.Y, 108) || inside.W != layout.MapCardWidth {
		t.Fatalf("unexpected card box %+v", inside.Bounds())
	}
	hanging := mustFind(t, page, "card-1")
	if !approx(hanging.X, 1056) || !approx(hanging.Y, -27) {
		t.Fatalf("expected unclamped card, got %+v", hanging.Bounds())
	}
}

func TestMapOverlay_MarkersAndPanel(t *testing.T) {
	env := newEnv(t)
	page := layout.Resolve(content.NewPage("m", content.MapOverlay{
		Markers: []content.Marker{{Label: "HQ", X: 50, Y: 50}, {X: 10, Y: 10, Radius: 14}},
		Panel:   content.Panel{Title: "Offices", Body: "Two sites."},
	}), env)
	marker := mustFind(t, page, "marker-0")
	if marker.Anchor == nil || *marker.Anchor != geometry.Pt(480, 270) || marker.W != 2*layout.MarkerRadius {
		t.Fatalf("unexpected marker %+v", marker)
	}
	dot := mustFind(t, page, "marker-0-dot")
	if dot.W != 2*layout.MarkerDotRadius {
		t.Fatalf("unexpected dot size %v", dot.W)
	}
	if big := mustFind(t, page, "marker-1"); big.W != 28 {
		t.Fatalf("expected custom radius, got %v", big.W)
	}
	if _, ok := page.Find("marker-1-label"); ok {
		t.Fatalf("marker without label should not get one")
	}
	mustFind(t, page, "panel-body")
}

func TestMultiCardGrid_SharedBodySize(t *testing.T) {
	env := newEnv(t)
	cards := make([]content.Card, 14)
	for i := range cards {
		cards[i] = content.Card{Title: fmt.Sprintf("Card %d", i), Body: "Brief."}
	}
	cards[5].Body = strings.Repeat("verbose content ", 30)
	page := layout.Resolve(content.NewPage("g", content.MultiCardGrid{Cards: cards}), env)

	count := 0
	for _, el := range page.Elements {
		if el.Kind == scene.KindRect && strings.HasPrefix(el.ID, "card-") && !strings.Contains(el.ID[5:], "-") {
			count++
		}
	}
	if count != layout.CardGridMaxCards {
		t.Fatalf("expected %d cards, got %d", layout.CardGridMaxCards, count)
	}
	size := mustFind(t, page, "card-0-body").Text.FontSize
	for i := 1; i < layout.CardGridMaxCards; i++ {
		if got := mustFind(t, page, fmt.Sprintf("card-%d-body", i)).Text.FontSize; got != size {
			t.Fatalf("card %d body size %v differs from shared %v", i, got, size)
		}
	}
	if size >= layout.CardBodyFit.Start {
		t.Fatalf("expected verbose card to shrink shared size, got %v", size)
	}
}
