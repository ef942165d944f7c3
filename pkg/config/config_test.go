package config_test

import (
	"errors"
	"os"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-deckgen/pkg/config"
	"github.com/goliatone/go-deckgen/pkg/palette"
)

func TestLoad_YAML(t *testing.T) {
	cfg, err := config.Load("testdata/deckgen.yaml")
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	want := config.Config{
		Renderer:        "pdf",
		Year:            "2025",
		Concurrency:     8,
		DivergenceCheck: true,
		Assets:          config.AssetConfig{Dir: "./images"},
		Theme: config.ThemeConfig{
			Dir:     "./themes",
			Name:    "harbor",
			Variant: "night",
			Tokens:  map[string]string{"accent": "#ff6600"},
		},
		Fonts: []config.FontFile{{Family: "Inter", Regular: "fonts/Inter-Regular.ttf", Bold: "fonts/Inter-Bold.ttf"}},
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
	if got := cfg.Palette().Accent; got != "#ff6600" {
		t.Fatalf("expected accent token applied, got %s", got)
	}
}

func TestLoad_JSONKeepsDefaults(t *testing.T) {
	cfg, err := config.Load("testdata/deckgen.json")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Concurrency != config.Default().Concurrency {
		t.Fatalf("expected default concurrency, got %d", cfg.Concurrency)
	}
	if cfg.Assets.SQLite != "assets.db" || !cfg.Debug {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if cfg.Palette().Primary != palette.Default.Primary {
		t.Fatalf("expected default palette")
	}
}

func TestParse_Rejects(t *testing.T) {
	cases := map[string]string{
		"empty":       "  ",
		"garbage":     "{not: [valid",
		"bad colour":  "theme:\n  tokens:\n    primary: nope\n",
		"font family": "fonts:\n  - regular: a.ttf\n",
		"concurrency": `{"concurrency": -1}`,
	}
	for name, input := range cases {
		if _, err := config.Parse([]byte(input), name); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}

func TestLoadThemesFS_Select(t *testing.T) {
	themes, err := config.LoadThemesFS(os.DirFS("testdata/themes"), "harbor", "night")
	if err != nil {
		t.Fatalf("load themes: %v", err)
	}
	if diff := cmp.Diff([]string{"harbor", "meadow"}, themes.Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}

	selection, err := themes.Select("", "")
	if err != nil {
		t.Fatalf("select default: %v", err)
	}
	pal := palette.FromSelection(palette.Default, selection)
	if pal.Primary != "#0b3d59" || pal.Background != "#0a1620" {
		t.Fatalf("unexpected palette %+v", pal)
	}
	if diff := cmp.Diff([]string{"#0b3d59", "#f2a541", "#3c8d7c"}, pal.Series); diff != "" {
		t.Fatalf("series mismatch (-want +got):\n%s", diff)
	}

	meadow, err := themes.Select("meadow", "")
	if err != nil {
		t.Fatalf("select meadow: %v", err)
	}
	if got := palette.FromSelection(palette.Default, meadow).Primary; got != "#3c7d3a" {
		t.Fatalf("expected meadow primary, got %s", got)
	}

	if _, err := themes.Select("missing", ""); !errors.Is(err, config.ErrUnknownTheme) {
		t.Fatalf("expected ErrUnknownTheme, got %v", err)
	}
}

func TestLoadThemesFS_NilSelectsNothing(t *testing.T) {
	themes, err := config.LoadThemesFS(nil, "", "")
	if err != nil {
		t.Fatalf("load themes: %v", err)
	}
	selection, err := themes.Select("", "")
	if err != nil || selection != nil {
		t.Fatalf("expected empty selection, got %+v %v", selection, err)
	}
}
