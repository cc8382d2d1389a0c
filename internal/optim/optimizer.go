// Package optim implements the optimizers that fit the linear model.
//
// This package provides:
//   - Optimizer interface: common capability of all optimizers
//   - GD: fixed-count batch gradient descent
//   - BFGS: fixed-count damped quasi-Newton with an inverse-Hessian estimate
//
// Both optimizers run to completion and return the full History, one Entry
// per iteration. There is no convergence check and no early exit, so the
// same inputs always produce the same History.
//
// Example usage:
//
//	opt, err := optim.New(optim.QuasiNewton, optim.Config{
//	    LR:         0.1,
//	    Iterations: 30,
//	})
//	if err != nil {
//	    return err
//	}
//
//	history, err := opt.Run(linreg.Params{}, x, y)
//	final, _ := history.Final()
package optim

import (
	"fmt"
	"math"

	"github.com/Virtuozs/interactive-optimization-house-price-prediction/internal/linreg"
)

// Optimizer is the common interface for both optimization algorithms.
//
// All optimizers must implement:
//   - Run: iterate from an initial point and record every step
//   - Method: report which algorithm this is
//   - GetLR: report the step multiplier (for display)
type Optimizer interface {
	// Run optimizes the model starting at init over the normalized data.
	//
	// The returned History has exactly Config.Iterations entries, each
	// captured after its update. x and y must be non-empty and of equal
	// length.
	Run(init linreg.Params, x, y []float64) (History, error)

	// Method returns the algorithm identifier.
	Method() Method

	// GetLR returns the learning rate.
	GetLR() float64
}

// Config is the configuration shared by all optimizers.
type Config struct {
	LR         float64 // Learning rate (default: 0.1)
	Iterations int     // Number of iterations (default: 30)
}

// DefaultConfig returns the defaults used by the training page.
func DefaultConfig() Config {
	return Config{
		LR:         0.1,
		Iterations: 30,
	}
}

// Validate reports the first invalid field as a *HyperparameterError.
func (c Config) Validate() error {
	if math.IsNaN(c.LR) || math.IsInf(c.LR, 0) || c.LR <= 0 {
		return &HyperparameterError{Field: "learning rate", Value: fmt.Sprint(c.LR)}
	}
	if c.Iterations < 1 {
		return &HyperparameterError{Field: "iterations", Value: fmt.Sprint(c.Iterations)}
	}
	return nil
}

// New creates the optimizer selected by method.
func New(method Method, config Config) (Optimizer, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	switch method {
	case GradientDescent:
		return NewGD(config), nil
	case QuasiNewton:
		return NewBFGS(config), nil
	default:
		return nil, &HyperparameterError{Field: "method", Value: method.String()}
	}
}

// checkData validates the shape of the training data.
func checkData(x, y []float64) error {
	if len(x) != len(y) {
		return fmt.Errorf("%w: x has %d values, y has %d", ErrLengthMismatch, len(x), len(y))
	}
	if len(x) == 0 {
		return ErrEmptyData
	}
	return nil
}
