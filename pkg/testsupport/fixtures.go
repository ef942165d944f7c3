package testsupport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image/color"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-deckgen/pkg/content"
	"github.com/goliatone/go-deckgen/pkg/layout"
	"github.com/goliatone/go-deckgen/pkg/scene"
)

// LoadDeck reads a deck fixture. Testing helpers fail the test on error to
// keep contract tests concise.
func LoadDeck(t *testing.T, path string) content.Deck {
	t.Helper()

	deck, err := LoadDeckFromPath(path)
	if err != nil {
		t.Fatalf("load deck: %v", err)
	}
	return deck
}

// LoadDeckFromPath returns a Deck without requiring testing.T, allowing
// callers to wire fixtures in setup functions.
func LoadDeckFromPath(path string) (content.Deck, error) {
	if path == "" {
		return content.Deck{}, errors.New("testsupport: deck path is required")
	}
	deck, err := content.Load(path)
	if err != nil {
		return content.Deck{}, fmt.Errorf("testsupport: %w", err)
	}
	return deck, nil
}

// Env returns a layout environment with a fixed year so goldens stay stable.
func Env(t *testing.T, options ...layout.EnvOption) layout.Env {
	t.Helper()

	env, err := layout.NewEnv(append([]layout.EnvOption{layout.WithYear("2024")}, options...)...)
	if err != nil {
		t.Fatalf("layout env: %v", err)
	}
	return env
}

// ResolveDeck resolves every page of deck in order.
func ResolveDeck(t *testing.T, deck content.Deck, env layout.Env) []scene.Page {
	t.Helper()

	pages := make([]scene.Page, len(deck.Pages))
	for i, page := range deck.Pages {
		pages[i] = layout.Resolve(page, env)
	}
	return pages
}

// SampleDeck returns a deck exercising every catalog template. Image keys
// "map.png" and "photo-1.png" are expected to exist; "missing.png" is not.
func SampleDeck() content.Deck {
	return content.Deck{
		Title:    "Sample deck",
		Language: "en",
		Pages: []content.Page{
			content.NewPage("cover", content.Cover{Title: "Annual review", Subtitle: "Operations and outlook", Presenter: "Planning office"}),
			content.NewPage("timeline", content.Timeline{Heading: "Milestones", Events: []content.TimelineEvent{
				{Date: "Jan", Title: "Kickoff", Body: "Scope agreed with every stakeholder."},
				{Date: "Apr", Title: "Pilot", Body: "First region live."},
				{Date: "Sep", Title: "Rollout", Body: "All regions live."},
			}}),
			content.NewPage("flow", content.FlowChart{
				Heading: "Approval flow",
				Nodes: []content.Node{
					{ID: "draft", X: 15, Y: 50, Heading: "Draft"},
					{ID: "review", X: 50, Y: 25, Heading: "Review", Body: "Two approvers"},
					{ID: "publish", X: 85, Y: 50, Heading: "Publish"},
				},
				Arrows: []content.Arrow{
					{From: "draft", To: "review", Label: "submit"},
					{From: "review", To: "publish", Label: "approve", LabelPosition: content.LabelRight},
					{From: "review", To: "archived"},
				},
			}),
			content.NewPage("table", content.DataTable{
				Heading: "Results",
				Columns: []content.Column{{Title: "Region", Width: 40}, {Title: "Revenue", Width: 30}, {Title: "Growth", Width: 20}},
				Rows:    [][]string{{"North", "1.2M", "4%"}, {"South", "0.9M", "7%"}},
				Striped: true,
			}),
			content.NewPage("gallery", content.PhotoGallery{Heading: "Site visit", Photos: []content.Photo{
				{Image: "photo-1.png", Caption: "Entrance"},
				{Image: "missing.png", Caption: "Lobby"},
				{Image: ""},
			}}),
			content.NewPage("list", content.MapTextList{Heading: "Regions", MapImage: "map.png", Items: []content.ListItem{
				{Title: "North", Body: "Headquarters and two plants."},
				{Title: "South", Body: "Distribution hub."},
			}}),
			content.NewPage("cards", content.MapTextCards{MapImage: "map.png", Cards: []content.MapCard{
				{Title: "Port", Body: "Main import terminal.", X: 10, Y: 20},
				{Title: "Airport", Body: "Cargo only.", X: 60, Y: 55},
			}}),
			content.NewPage("overlay", content.MapOverlay{Heading: "Offices", MapImage: "map.png",
				Markers: []content.Marker{{Label: "HQ", X: 30, Y: 40}, {Label: "Lab", X: 70, Y: 60}},
				Panel:   content.Panel{Title: "Two sites", Body: "Both open weekdays."},
			}),
			content.NewPage("circles", content.ThreeCircles{Heading: "Strategy", Circles: []content.CircleItem{
				{Title: "People", Body: "Hire and grow."},
				{Title: "Process", Body: "Automate the boring parts."},
				{Title: "Platform", Body: "One stack."},
			}}),
			content.NewPage("grid", content.MultiCardGrid{Heading: "Services", Cards: []content.Card{
				{Title: "Design", Body: "Research and prototypes.", Icon: "D"},
				{Title: "Build", Body: "Delivery teams."},
				{Title: "Run", Body: "Operations around the clock."},
				{Title: "Support", Body: "Help desk."},
			}}),
		},
	}
}

// PNG returns an encoded solid-colour PNG of the given size.
func PNG(t *testing.T, width, height int, fill color.Color) []byte {
	t.Helper()

	img := imaging.New(width, height, fill)
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

// UpdateGoldens reports whether golden files should be rewritten from the
// current output.
func UpdateGoldens() bool {
	return os.Getenv("UPDATE_GOLDENS") != ""
}

// Golden compares got with the file at path. The file is (re)written instead
// when UPDATE_GOLDENS is set or when it does not exist yet.
func Golden(t *testing.T, path string, got []byte) {
	t.Helper()

	want, err := os.ReadFile(path)
	if UpdateGoldens() || errors.Is(err, fs.ErrNotExist) {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir golden dir: %v", err)
		}
		if err := os.WriteFile(path, got, 0o644); err != nil {
			t.Fatalf("write golden: %v", err)
		}
		t.Logf("wrote golden %s", path)
		return
	}
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	if diff := cmp.Diff(string(want), string(got)); diff != "" {
		t.Fatalf("%s mismatch (-want +got), rerun with UPDATE_GOLDENS=1 to accept:\n%s", path, diff)
	}
}

// GoldenJSON compares the indented JSON encoding of value with the file at
// path.
func GoldenJSON(t *testing.T, path string, value any) {
	t.Helper()

	payload, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		t.Fatalf("marshal golden: %v", err)
	}
	Golden(t, path, append(payload, '\n'))
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// CaptureTemplateOutput executes a render function that writes to an io.Writer,
// returning both the string result and the writer contents.
func CaptureTemplateOutput(t *testing.T, render func(io.Writer) (string, error)) (string, string) {
	t.Helper()

	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render template: %v", err)
	}

	return out, buf.String()
}
