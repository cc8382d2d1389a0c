// Copyright 2026 The housefit Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package optim

import (
	"github.com/Virtuozs/interactive-optimization-house-price-prediction/internal/linreg"
	"github.com/Virtuozs/interactive-optimization-house-price-prediction/internal/optim"
)

// Optimizer interface defines the common interface for all optimizers.
type Optimizer = optim.Optimizer

// Config represents the configuration shared by all optimizers.
type Config = optim.Config

// Method identifies an optimization algorithm.
type Method = optim.Method

// Supported methods.
const (
	GradientDescent = optim.GradientDescent
	QuasiNewton     = optim.QuasiNewton
)

// Params holds the model weight and bias.
type Params = linreg.Params

// Entry is the optimizer state captured after one iteration.
type Entry = optim.Entry

// History is the ordered per-iteration record of one run.
type History = optim.History

// HyperparameterError describes a rejected optimizer setting.
type HyperparameterError = optim.HyperparameterError

// Common errors.
var (
	ErrInvalidHyperparameter = optim.ErrInvalidHyperparameter
	ErrLengthMismatch        = optim.ErrLengthMismatch
	ErrEmptyData             = optim.ErrEmptyData
)

// DefaultConfig returns LR 0.1 and 30 iterations.
func DefaultConfig() Config {
	return optim.DefaultConfig()
}

// New creates the optimizer selected by method.
//
// Example:
//
//	opt, err := optim.New(optim.GradientDescent, optim.Config{
//	    LR:         0.1,
//	    Iterations: 50,
//	})
func New(method Method, config Config) (Optimizer, error) {
	return optim.New(method, config)
}

// ParseMethod converts "gd" or "bfgs" into a Method.
func ParseMethod(s string) (Method, error) {
	return optim.ParseMethod(s)
}

// Gradient Descent

// GD represents the batch gradient descent optimizer.
type GD = optim.GD

// NewGD creates a gradient descent optimizer.
func NewGD(config Config) *GD {
	return optim.NewGD(config)
}

// Quasi-Newton

// BFGS represents the damped quasi-Newton optimizer.
type BFGS = optim.BFGS

// NewBFGS creates a quasi-Newton optimizer.
func NewBFGS(config Config) *BFGS {
	return optim.NewBFGS(config)
}
