package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"

	"github.com/goliatone/go-deckgen/pkg/assets"
	"github.com/goliatone/go-deckgen/pkg/autofit"
	"github.com/goliatone/go-deckgen/pkg/config"
	"github.com/goliatone/go-deckgen/pkg/layout"
	"github.com/goliatone/go-deckgen/pkg/pipeline"
	"github.com/goliatone/go-deckgen/pkg/render"
	"github.com/goliatone/go-deckgen/pkg/renderers/pdf"
	"github.com/goliatone/go-deckgen/pkg/renderers/preview"
)

type app struct {
	logger   *log.Logger
	pipeline *pipeline.Pipeline
	registry *render.Registry
	themes   *config.Themes
	store    *assets.SQLiteStore
}

func newApp(cfg config.Config) (*app, error) {
	logger := log.New(os.Stderr, "", log.LstdFlags)
	a := &app{logger: logger}

	provider, err := a.assetProvider(cfg.Assets)
	if err != nil {
		return nil, err
	}

	var themeFS fs.FS
	if cfg.Theme.Dir != "" {
		themeFS = os.DirFS(cfg.Theme.Dir)
	}
	themes, err := config.LoadThemesFS(themeFS, cfg.Theme.Name, cfg.Theme.Variant)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.themes = themes

	fontOptions, faceData, err := loadFonts(cfg.Fonts)
	if err != nil {
		a.Close()
		return nil, err
	}
	html, err := preview.New()
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("preview renderer: %w", err)
	}
	a.registry = render.NewRegistry()
	a.registry.MustRegister(html)
	a.registry.MustRegister(pdf.New(fontOptions...))

	options := []pipeline.Option{
		pipeline.WithLogger(logger),
		pipeline.WithRegistry(a.registry),
		pipeline.WithDefaultRenderer(cfg.Renderer),
		pipeline.WithAssetProvider(provider),
		pipeline.WithPalette(cfg.Palette()),
		pipeline.WithConcurrency(cfg.Concurrency),
	}
	if len(themes.Names()) > 0 {
		options = append(options, pipeline.WithThemeSelector(themes))
	}
	if cfg.Year != "" {
		options = append(options, pipeline.WithEnvOptions(layout.WithYear(cfg.Year)))
	}
	if cfg.StrictTemplates {
		options = append(options, pipeline.WithStrictTemplates())
	}
	if cfg.DivergenceCheck {
		face, err := autofit.NewFaceMeasurer(faceData)
		if err != nil {
			a.Close()
			return nil, err
		}
		options = append(options, pipeline.WithDivergenceCheck(face))
	}
	a.pipeline = pipeline.New(options...)
	return a, nil
}

func (a *app) assetProvider(cfg config.AssetConfig) (assets.Provider, error) {
	switch {
	case cfg.SQLite != "":
		store, err := assets.OpenSQLite(cfg.SQLite)
		if err != nil {
			return nil, err
		}
		a.store = store
		a.logger.Printf("[INFO] deckgen: loading assets from %s", cfg.SQLite)
		return store, nil
	case cfg.Dir != "":
		a.logger.Printf("[INFO] deckgen: loading assets from %s", cfg.Dir)
		return assets.NewDirProvider(os.DirFS(cfg.Dir)), nil
	default:
		return nil, nil
	}
}

// loadFonts reads configured font files. The first regular face also backs
// the divergence measurer.
func loadFonts(files []config.FontFile) ([]pdf.Option, []byte, error) {
	var (
		options []pdf.Option
		face    []byte
	)
	for _, file := range files {
		regular, err := os.ReadFile(file.Regular)
		if err != nil {
			return nil, nil, fmt.Errorf("font %s: %w", file.Family, err)
		}
		var bold []byte
		if file.Bold != "" {
			if bold, err = os.ReadFile(file.Bold); err != nil {
				return nil, nil, fmt.Errorf("font %s: %w", file.Family, err)
			}
		}
		if face == nil {
			face = regular
		}
		options = append(options, pdf.WithFont(file.Family, regular, bold))
	}
	return options, face, nil
}

func (a *app) render(ctx context.Context, job renderJob) error {
	result, err := a.pipeline.Generate(ctx, job.request())
	if err != nil {
		return err
	}
	if job.output == "" || job.output == "-" {
		_, err := os.Stdout.Write(result.Output)
		return err
	}
	if err := os.WriteFile(job.output, result.Output, 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	a.logger.Printf("[INFO] deckgen: %s written to %s", result.Renderer, job.output)
	return nil
}

func (a *app) Close() {
	if a.store == nil {
		return
	}
	if err := a.store.Close(); err != nil {
		a.logger.Printf("[WARN] deckgen: close asset store: %v", err)
	}
	a.store = nil
}

func importAssets(ctx context.Context, cfg config.Config) error {
	if cfg.Assets.Dir == "" || cfg.Assets.SQLite == "" {
		return errors.New("-import needs both -assets and -sqlite")
	}
	src := assets.NewDirProvider(os.DirFS(cfg.Assets.Dir))
	keys, err := src.Keys()
	if err != nil {
		return err
	}
	store, err := assets.OpenSQLite(cfg.Assets.SQLite)
	if err != nil {
		return err
	}
	defer store.Close()

	written, err := store.Import(ctx, src, keys)
	if err != nil {
		return err
	}
	log.Printf("[INFO] deckgen: imported %d of %d assets into %s", written, len(keys), cfg.Assets.SQLite)
	return nil
}
