package layout

import (
	"strconv"
	"time"

	"github.com/goliatone/go-deckgen/pkg/autofit"
	"github.com/goliatone/go-deckgen/pkg/geometry"
	"github.com/goliatone/go-deckgen/pkg/palette"
)

// FitRecord describes one auto-fit performed while resolving a page.
type FitRecord struct {
	Page    string        `json:"page"`
	Element string        `json:"element"`
	Case    autofit.Case  `json:"case"`
	State   autofit.State `json:"state"`
}

// FitObserver receives every text fit a resolver performs. It may be called
// from several goroutines when pages resolve concurrently.
type FitObserver func(FitRecord)

// Env carries the explicit inputs every resolver needs besides content.
type Env struct {
	Canvas   geometry.Canvas
	Palette  palette.Palette
	Year     string
	Measurer autofit.Measurer
	Observer FitObserver
}

// EnvOption customises an Env.
type EnvOption func(*Env)

// WithCanvas overrides the canvas. NewEnv validates it.
func WithCanvas(canvas geometry.Canvas) EnvOption {
	return func(env *Env) {
		env.Canvas = canvas
	}
}

// WithPalette sets the fallback colours.
func WithPalette(p palette.Palette) EnvOption {
	return func(env *Env) {
		env.Palette = p
	}
}

// WithYear sets the year shown when a cover omits one.
func WithYear(year string) EnvOption {
	return func(env *Env) {
		env.Year = year
	}
}

// WithMeasurer swaps the text measurer used for fitting.
func WithMeasurer(m autofit.Measurer) EnvOption {
	return func(env *Env) {
		if m != nil {
			env.Measurer = m
		}
	}
}

// WithFitObserver registers a callback for every fit.
func WithFitObserver(fn FitObserver) EnvOption {
	return func(env *Env) {
		env.Observer = fn
	}
}

// NewEnv builds an Env on the default canvas, palette and Estimator. The year
// defaults to the current year, read once here.
func NewEnv(options ...EnvOption) (Env, error) {
	env := Env{
		Canvas:   geometry.DefaultCanvas,
		Palette:  palette.Default,
		Measurer: autofit.NewEstimator(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(&env)
		}
	}
	if err := env.Canvas.Validate(); err != nil {
		return Env{}, err
	}
	if env.Year == "" {
		env.Year = strconv.Itoa(time.Now().Year())
	}
	return env, nil
}

func (env Env) measurer() autofit.Measurer {
	if env.Measurer == nil {
		return autofit.NewEstimator()
	}
	return env.Measurer
}
