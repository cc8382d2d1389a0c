package session

import (
	"fmt"
	"math"
	"slices"

	"github.com/Virtuozs/interactive-optimization-house-price-prediction/internal/dataset"
	"github.com/Virtuozs/interactive-optimization-house-price-prediction/internal/linreg"
	"github.com/Virtuozs/interactive-optimization-house-price-prediction/internal/normalize"
	"github.com/Virtuozs/interactive-optimization-house-price-prediction/internal/optim"
	"github.com/Virtuozs/interactive-optimization-house-price-prediction/internal/parallel"
)

// Run is the result of one optimization, stored as a single unit.
//
// A Run is immutable once returned; readers at different playback steps can
// share it freely.
type Run struct {
	Settings    Settings        `json:"settings"`
	Stats       normalize.Stats `json:"stats"`
	History     optim.History   `json:"history"`
	Samples     dataset.Dataset `json:"samples"` // Data the run was trained on
	Fingerprint uint64          `json:"fingerprint"`
}

// Prediction is a price estimate for one house size.
type Prediction struct {
	Size       float64 `json:"size"`
	Normalized float64 `json:"normalized"` // Model output in normalized space
	Price      float64 `json:"price"`      // Rp
}

// Point is one (size, price) pair in raw units.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Frame is everything needed to draw one playback step.
type Frame struct {
	Step       int             `json:"step"`
	Params     linreg.Params   `json:"params"`
	Equation   string          `json:"equation"`
	Observed   []Point         `json:"observed"`
	Fit        []Point         `json:"fit"` // Regression line, sorted by size
	Losses     []float64       `json:"losses"`
	Trajectory []linreg.Params `json:"trajectory"`
	Start      linreg.Params   `json:"start"`
	Current    linreg.Params   `json:"current"`
}

// Train standardizes samples and runs the optimizer selected by settings
// from w = 0, b = 0.
//
// Nothing is returned on failure: a Run always holds a complete History.
func Train(samples dataset.Dataset, settings Settings) (*Run, error) {
	if len(samples) < MinSamples {
		return nil, fmt.Errorf("%w: have %d samples, need at least %d", ErrInsufficientData, len(samples), MinSamples)
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	if err := samples.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	samples = samples.Clone()
	stats, err := normalize.Fit(samples.Sizes(), samples.Prices())
	if err != nil {
		return nil, err
	}
	x, y := stats.Apply(samples.Sizes(), samples.Prices())

	opt, err := optim.New(settings.Method, settings.OptimConfig())
	if err != nil {
		return nil, err
	}
	history, err := opt.Run(linreg.Params{}, x, y)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", settings.Method, err)
	}

	return &Run{
		Settings:    settings,
		Stats:       stats,
		History:     history,
		Samples:     samples,
		Fingerprint: fingerprint(samples, settings),
	}, nil
}

// Compare trains one Run per method on the same samples concurrently.
//
// Only the method of settings is overridden; learning rate and iteration
// count are shared.
func Compare(samples dataset.Dataset, settings Settings, cfg parallel.Config) (map[optim.Method]*Run, error) {
	runs, err := parallel.Map(optim.Methods, func(m optim.Method) (*Run, error) {
		s := settings
		s.Method = m
		return Train(samples, s)
	}, cfg)
	if err != nil {
		return nil, err
	}

	out := make(map[optim.Method]*Run, len(runs))
	for i, m := range optim.Methods {
		out[m] = runs[i]
	}
	return out, nil
}

// PredictFrom estimates the price of size with the final entry of history.
func PredictFrom(size float64, history optim.History, stats normalize.Stats) (Prediction, error) {
	if math.IsNaN(size) || math.IsInf(size, 0) {
		return Prediction{}, fmt.Errorf("%w: house size %v", ErrInvalidInput, size)
	}
	final, ok := history.Final()
	if !ok {
		return Prediction{}, ErrNotTrained
	}

	yNorm := linreg.Predict(final.Params(), stats.NormalizeX(size))
	return Prediction{
		Size:       size,
		Normalized: yNorm,
		Price:      stats.DenormalizeY(yNorm),
	}, nil
}

// Predict estimates the price of size with the fully trained parameters.
func (r *Run) Predict(size float64) (Prediction, error) {
	return PredictFrom(size, r.History, r.Stats)
}

// Frame returns the chart data of playback step.
func (r *Run) Frame(step int) (Frame, error) {
	cur, ok := r.History.At(step)
	if !ok {
		return Frame{}, fmt.Errorf("%w: %d not in [0, %d)", ErrStepOutOfRange, step, len(r.History))
	}
	p := cur.Params()

	observed := make([]Point, len(r.Samples))
	fit := make([]Point, len(r.Samples))
	for i, s := range r.Samples {
		observed[i] = Point{X: s.Size, Y: s.Price}
		fit[i] = Point{X: s.Size, Y: r.Stats.DenormalizeY(linreg.Predict(p, r.Stats.NormalizeX(s.Size)))}
	}
	slices.SortStableFunc(fit, func(a, b Point) int {
		switch {
		case a.X < b.X:
			return -1
		case a.X > b.X:
			return 1
		}
		return 0
	})

	start, _ := r.History.At(0)
	return Frame{
		Step:       step,
		Params:     p,
		Equation:   fmt.Sprintf("y = %.3f·x + %.3f", p.W, p.B),
		Observed:   observed,
		Fit:        fit,
		Losses:     r.History.Losses(step),
		Trajectory: r.History.Trajectory(step),
		Start:      start.Params(),
		Current:    p,
	}, nil
}
