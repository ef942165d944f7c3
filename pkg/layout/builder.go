package layout

import (
	"fmt"
	"math"
	"strconv"

	"github.com/goliatone/go-deckgen/pkg/autofit"
	"github.com/goliatone/go-deckgen/pkg/content"
	"github.com/goliatone/go-deckgen/pkg/geometry"
	"github.com/goliatone/go-deckgen/pkg/scene"
)

// Shared page frame, in canvas pixels.
const (
	Margin        = 40.0
	HeadingTop    = 28.0
	HeadingHeight = 52.0
	ContentTop    = 100.0

	// DefaultLineHeight is the line-height multiplier for body text.
	DefaultLineHeight = 1.3
	// TightLineHeight is used for headings and titles.
	TightLineHeight = 1.15
)

// HeadingFit is the auto-fit range of the page heading.
var HeadingFit = autofit.MustParams(30, 2, 18)

type builder struct {
	env  Env
	page scene.Page
}

func newBuilder(page content.Page, env Env) *builder {
	tag := string(page.Tag())
	return &builder{
		env: env,
		page: scene.Page{
			ID:         page.ID,
			Template:   tag,
			Width:      env.Canvas.Width,
			Height:     env.Canvas.Height,
			Background: env.Palette.Background,
		},
	}
}

func (b *builder) add(elements ...scene.Element) {
	b.page.Elements = append(b.page.Elements, elements...)
}

func (b *builder) build() scene.Page {
	if b.page.Elements == nil {
		b.page.Elements = []scene.Element{}
	}
	return b.page
}

func (b *builder) width() float64  { return b.env.Canvas.Width }
func (b *builder) height() float64 { return b.env.Canvas.Height }

// contentArea is the region below the heading band inside the margins.
func (b *builder) contentArea() geometry.Rect {
	return geometry.R(Margin, ContentTop, b.width()-2*Margin, b.height()-ContentTop-Margin)
}

// heading adds the fitted page heading when text is not empty.
func (b *builder) heading(text, color string) {
	if text == "" {
		return
	}
	box := geometry.R(Margin, HeadingTop, b.width()-2*Margin, HeadingHeight)
	b.headingIn(box, text, color)
}

func (b *builder) headingIn(box geometry.Rect, text, color string) {
	state := b.fit("heading", text, box, TightLineHeight, HeadingFit)
	b.add(scene.TextBlock("heading", box, scene.Text{
		Content:    text,
		FontSize:   state.Value,
		Bold:       true,
		Align:      scene.AlignLeft,
		VAlign:     scene.VAlignMiddle,
		Color:      color,
		LineHeight: TightLineHeight,
	}))
}

// fit runs one text fit and reports it to the observer.
func (b *builder) fit(id, text string, box geometry.Rect, lineHeight float64, p autofit.Params) autofit.State {
	state := autofit.FitText(b.env.measurer(), text, box.W, box.H, lineHeight, p)
	b.observe(id, text, box, lineHeight, p, state)
	return state
}

func (b *builder) observe(id, text string, box geometry.Rect, lineHeight float64, p autofit.Params, state autofit.State) {
	if text == "" {
		return
	}
	b.report(id, autofit.Case{Text: text, Width: box.W, Height: box.H, LineHeight: lineHeight, Params: p}, state)
}

// fitScale shrinks a stack of blocks by one shared scale factor and reports
// it as a single record under id.
func (b *builder) fitScale(id string, blocks []autofit.Block, box geometry.Rect, p autofit.Params) autofit.State {
	state := autofit.FitBlocks(b.env.measurer(), blocks, box.W, box.H, p)
	if len(blocks) > 0 {
		b.report(id, autofit.Case{Width: box.W, Height: box.H, Params: p, Blocks: blocks}, state)
	}
	return state
}

func (b *builder) report(id string, c autofit.Case, state autofit.State) {
	if b.env.Observer == nil {
		return
	}
	c.Name = fmt.Sprintf("%s/%s", b.page.ID, id)
	b.env.Observer(FitRecord{Page: b.page.ID, Element: id, Case: c, State: state})
}

type textSlot struct {
	id   string
	text string
	box  geometry.Rect
}

// fitShared finds one size at which every slot fits its own box. The measure
// is the worst height-to-box ratio, so the container is 1. Slots with no
// height cannot fit and force the minimum.
func (b *builder) fitShared(slots []textSlot, lineHeight float64, p autofit.Params) autofit.State {
	m := b.env.measurer()
	container := 1.0
	for _, s := range slots {
		if s.text != "" && s.box.H <= 0 {
			container = 0
		}
	}
	state := autofit.Fit(func(size float64) float64 {
		worst := 0.0
		for _, s := range slots {
			if s.text == "" || s.box.H <= 0 {
				continue
			}
			worst = math.Max(worst, m.Measure(s.text, size, s.box.W, lineHeight)/s.box.H)
		}
		return worst
	}, container, p)
	for _, s := range slots {
		b.observe(s.id, s.text, s.box, lineHeight, p, state)
	}
	return state
}

// placeholderPage is drawn for pages whose template has no resolver.
func placeholderPage(page content.Page, env Env) scene.Page {
	b := newBuilder(page, env)
	if b.page.Template == "" {
		b.page.Template = "unknown"
	}
	area := geometry.CenteredAt(env.Canvas.Bounds().Center(), env.Canvas.Width*0.6, env.Canvas.Height*0.4)
	b.add(scene.Rect("placeholder", area, scene.Style{
		Fill:        env.Palette.Placeholder,
		Stroke:      env.Palette.Line,
		StrokeWidth: 1,
		Radius:      12,
	}))
	b.add(scene.TextBlock("placeholder-label", area.Inset(16), scene.Text{
		Content:    fmt.Sprintf("Template unavailable: %s", b.page.Template),
		FontSize:   20,
		Align:      scene.AlignCenter,
		VAlign:     scene.VAlignMiddle,
		Color:      env.Palette.Muted,
		LineHeight: DefaultLineHeight,
	}))
	return b.build()
}

func elementID(prefix string, i int) string {
	return fmt.Sprintf("%s-%d", prefix, i)
}

func itoa(i int) string {
	return strconv.Itoa(i)
}
