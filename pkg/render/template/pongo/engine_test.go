package pongo_test

import (
	"fmt"
	"io"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-deckgen/pkg/render/template/pongo"
	"github.com/goliatone/go-deckgen/pkg/testsupport"
)

var templatesFS = fstest.MapFS{
	"hello.tmpl":      {Data: []byte("Hello {{ name }}!")},
	"use-global.tmpl": {Data: []byte("deck={{ deck.title }}")},
	"use-filter.tmpl": {Data: []byte("{{ name|deck_shout }}")},
	"box.tmpl":        {Data: []byte(`left:{{ box.x|px }};width:{{ box.w|px }}`)},
}

func TestEngine_RenderTemplate(t *testing.T) {
	engine := newEngine(t)

	result, written := testsupport.CaptureTemplateOutput(t, func(w io.Writer) (string, error) {
		return engine.RenderTemplate("hello", map[string]any{"name": "Ada"}, w)
	})

	want := "Hello Ada!"
	if result != want {
		t.Fatalf("render template mismatch result\nwant: %q\n got: %q", want, result)
	}
	if written != want {
		t.Fatalf("render template mismatch writer\nwant: %q\n got: %q", want, written)
	}
}

func TestEngine_RenderString(t *testing.T) {
	result, err := newEngine(t).RenderString("{{ n|px }}", map[string]any{"n": 4.0})
	if err != nil {
		t.Fatalf("render string: %v", err)
	}
	if result != "4px" {
		t.Fatalf("unexpected output %q", result)
	}
}

func TestEngine_Globals(t *testing.T) {
	engine, err := pongo.New(
		pongo.WithFS(templatesFS),
		pongo.WithGlobals(map[string]any{"deck": map[string]any{"title": "Q3"}}),
	)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	result, err := engine.RenderTemplate("use-global", nil)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if result != "deck=Q3" {
		t.Fatalf("unexpected output %q", result)
	}
}

func TestEngine_RegisterFilter(t *testing.T) {
	engine := newEngine(t)
	err := engine.RegisterFilter("deck_shout", func(input any, _ any) (any, error) {
		return fmt.Sprintf("%s!", strings.ToUpper(fmt.Sprint(input))), nil
	})
	if err != nil && !strings.Contains(err.Error(), "already exists") {
		t.Fatalf("register filter: %v", err)
	}

	result, err := engine.RenderTemplate("use-filter", map[string]any{"name": "Ada"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if result != "ADA!" {
		t.Fatalf("unexpected output %q", result)
	}
}

func TestEngine_PxFilterReadsJSONTags(t *testing.T) {
	type box struct {
		X float64 `json:"x"`
		W float64 `json:"w"`
	}
	result, err := newEngine(t).RenderTemplate("box", map[string]any{"box": box{X: 12.5, W: 346.153846}})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if result != "left:12.5px;width:346.15px" {
		t.Fatalf("unexpected output %q", result)
	}
}

func TestFormatNumber(t *testing.T) {
	cases := map[float64]string{0: "0", 10: "10", -0.001: "0", 1.005: "1", 33.333: "33.33", -12.5: "-12.5"}
	for in, want := range cases {
		if got := pongo.FormatNumber(in); got != want {
			t.Fatalf("FormatNumber(%v) = %q, want %q", in, got, want)
		}
	}
}

func TestEngine_RequiresSource(t *testing.T) {
	if _, err := pongo.New(); err == nil {
		t.Fatalf("expected error without base dir or fs")
	}
}

func newEngine(t *testing.T) *pongo.Engine {
	t.Helper()

	engine, err := pongo.New(pongo.WithFS(templatesFS))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return engine
}
