package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/goliatone/go-deckgen/pkg/config"
	"github.com/goliatone/go-deckgen/pkg/pipeline"
	"github.com/goliatone/go-deckgen/pkg/prompt"
	"github.com/goliatone/go-deckgen/pkg/render"
)

type flags struct {
	configPath  string
	deck        string
	renderer    string
	output      string
	year        string
	theme       string
	variant     string
	assetsDir   string
	sqlitePath  string
	importOnly  bool
	debug       bool
	strict      bool
	checkFit    bool
	watch       bool
	interactive bool
	concurrency int
}

func main() {
	var f flags
	flag.StringVar(&f.configPath, "config", "", "configuration file (JSON or YAML)")
	flag.StringVar(&f.deck, "deck", "", "deck file to render (JSON or YAML)")
	flag.StringVar(&f.renderer, "renderer", "", "renderer to use (preview or pdf)")
	flag.StringVar(&f.output, "output", "", "output file (stdout if empty or -)")
	flag.StringVar(&f.year, "year", "", "year shown on covers that omit one")
	flag.StringVar(&f.theme, "theme", "", "theme name from the configured theme directory")
	flag.StringVar(&f.variant, "variant", "", "theme variant")
	flag.StringVar(&f.assetsDir, "assets", "", "directory holding deck images")
	flag.StringVar(&f.sqlitePath, "sqlite", "", "SQLite asset database")
	flag.BoolVar(&f.importOnly, "import", false, "copy every file under -assets into -sqlite and exit")
	flag.BoolVar(&f.debug, "debug", false, "outline every element with its id")
	flag.BoolVar(&f.strict, "strict", false, "fail on templates outside the catalog")
	flag.BoolVar(&f.checkFit, "check-fit", false, "report text boxes where real glyph metrics fit differently")
	flag.BoolVar(&f.watch, "watch", false, "re-render whenever the deck file changes")
	flag.BoolVar(&f.interactive, "interactive", false, "ask for missing settings")
	flag.IntVar(&f.concurrency, "concurrency", 0, "page and asset workers")
	flag.Parse()

	if f.deck == "" && flag.NArg() > 0 {
		f.deck = flag.Arg(0)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, f); err != nil {
		if errors.Is(err, prompt.ErrAborted) {
			os.Exit(130)
		}
		log.Fatalf("deckgen: %v", err)
	}
}

func run(ctx context.Context, f flags) error {
	cfg, err := loadConfig(f)
	if err != nil {
		return err
	}

	if f.importOnly {
		return importAssets(ctx, cfg)
	}

	app, err := newApp(cfg)
	if err != nil {
		return err
	}
	defer app.Close()

	job := renderJob{
		deck:     f.deck,
		renderer: cfg.Renderer,
		output:   cfg.Output,
		theme:    f.theme,
		variant:  f.variant,
		debug:    cfg.Debug,
	}

	if f.interactive {
		choices, err := prompt.Ask(ctx, prompt.NewSurveyDriver(), prompt.Choices{
			Deck:     job.deck,
			Renderer: job.renderer,
			Output:   job.output,
			Theme:    job.theme,
			Debug:    job.debug,
		}, app.registry.List(), app.themes.Names())
		if err != nil {
			return err
		}
		job.deck, job.renderer, job.output, job.theme, job.debug = choices.Deck, choices.Renderer, choices.Output, choices.Theme, choices.Debug
	}

	if job.deck == "" {
		return errors.New("a deck file is required (-deck or first argument)")
	}

	if err := app.render(ctx, job); err != nil {
		if !f.watch {
			return err
		}
		log.Printf("[WARN] deckgen: %v", err)
	}
	if f.watch {
		return app.watch(ctx, job)
	}
	return nil
}

// loadConfig reads the configuration file when given and applies flag
// overrides on top.
func loadConfig(f flags) (config.Config, error) {
	cfg := config.Default()
	if f.configPath != "" {
		loaded, err := config.Load(f.configPath)
		if err != nil {
			return config.Config{}, err
		}
		cfg = loaded
		cfg.Assets.Dir = relativeTo(f.configPath, cfg.Assets.Dir)
		cfg.Assets.SQLite = relativeTo(f.configPath, cfg.Assets.SQLite)
		cfg.Theme.Dir = relativeTo(f.configPath, cfg.Theme.Dir)
		for i := range cfg.Fonts {
			cfg.Fonts[i].Regular = relativeTo(f.configPath, cfg.Fonts[i].Regular)
			cfg.Fonts[i].Bold = relativeTo(f.configPath, cfg.Fonts[i].Bold)
		}
	}

	if f.renderer != "" {
		cfg.Renderer = f.renderer
	}
	if f.output != "" {
		cfg.Output = f.output
	}
	if f.year != "" {
		cfg.Year = f.year
	}
	if f.assetsDir != "" {
		cfg.Assets.Dir = f.assetsDir
	}
	if f.sqlitePath != "" {
		cfg.Assets.SQLite = f.sqlitePath
	}
	if f.concurrency > 0 {
		cfg.Concurrency = f.concurrency
	}
	cfg.Debug = cfg.Debug || f.debug
	cfg.StrictTemplates = cfg.StrictTemplates || f.strict
	cfg.DivergenceCheck = cfg.DivergenceCheck || f.checkFit

	if err := cfg.Validate(); err != nil {
		return config.Config{}, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// relativeTo resolves a path from the configuration file against the file's
// directory.
func relativeTo(configPath, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(filepath.Dir(configPath), path)
}

type renderJob struct {
	deck     string
	renderer string
	output   string
	theme    string
	variant  string
	debug    bool
}

func (j renderJob) request() pipeline.Request {
	return pipeline.Request{
		Path:          j.deck,
		Renderer:      j.renderer,
		ThemeName:     j.theme,
		ThemeVariant:  j.variant,
		RenderOptions: render.RenderOptions{Debug: j.debug},
	}
}
