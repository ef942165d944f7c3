package autofit

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidParams reports fit parameters that could never converge.
var ErrInvalidParams = errors.New("autofit: invalid params")

// Params are the template-defined constants of one fit: the unshrunk start
// value, the decrement applied per iteration and the floor.
type Params struct {
	Start float64 `json:"start"`
	Step  float64 `json:"step"`
	Min   float64 `json:"min"`
}

// NewParams validates and returns fit parameters.
func NewParams(start, step, minimum float64) (Params, error) {
	p := Params{Start: start, Step: step, Min: minimum}
	if err := p.Validate(); err != nil {
		return Params{}, err
	}
	return p, nil
}

// Validate reports parameters whose decrement loop could not terminate.
func (p Params) Validate() error {
	if p.Step <= 0 || p.Min < 0 || p.Min > p.Start {
		return fmt.Errorf("%w: start=%g step=%g min=%g", ErrInvalidParams, p.Start, p.Step, p.Min)
	}
	return nil
}

// MustParams panics when the parameters are invalid. Intended for package
// level template constants.
func MustParams(start, step, minimum float64) Params {
	p, err := NewParams(start, step, minimum)
	if err != nil {
		panic(err)
	}
	return p
}

// State is the outcome of a single fit pass.
type State struct {
	Value      float64 `json:"value"`
	Iterations int     `json:"iterations"`
	// Overflow is set when content still exceeds the container at Min.
	Overflow bool `json:"overflow"`
}

// MeasureFunc returns the rendered content height at the candidate value.
type MeasureFunc func(value float64) float64

// Fit decrements from p.Start by p.Step while the measured height exceeds
// container and the value is above p.Min.
//
// A container height <= 0 yields p.Min without measuring. Content that
// measures zero at p.Start is empty and keeps p.Start. Params that fail
// Validate never iterate: content that does not fit at p.Start drops straight
// to the lower of p.Start and p.Min.
func Fit(measure MeasureFunc, container float64, p Params) State {
	if container <= 0 {
		return State{Value: p.Min}
	}
	if measure == nil {
		return State{Value: p.Start}
	}

	height := measure(p.Start)
	if height == 0 {
		return State{Value: p.Start}
	}

	if p.Validate() != nil {
		if height <= container {
			return State{Value: p.Start}
		}
		floor := math.Min(p.Start, p.Min)
		return State{Value: floor, Overflow: measure(floor) > container}
	}

	value := p.Start
	i := 0
	for height > container && value > p.Min {
		i++
		value = quantize(p.Start - float64(i)*p.Step)
		if value < p.Min {
			value = p.Min
		}
		height = measure(value)
	}
	return State{Value: value, Iterations: i, Overflow: height > container}
}

// FitText fits a text block of the given width into height, treating the
// fitted value as the font size.
func FitText(m Measurer, text string, width, height, lineHeight float64, p Params) State {
	return Fit(func(size float64) float64 {
		return m.Measure(text, size, width, lineHeight)
	}, height, p)
}

// quantize drops float noise from repeated decrements so equal inputs print
// equal values in both backends.
func quantize(v float64) float64 {
	return math.Round(v*1e6) / 1e6
}
