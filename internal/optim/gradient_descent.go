package optim

import (
	"math"

	"github.com/Virtuozs/interactive-optimization-house-price-prediction/internal/linreg"
)

// GD implements batch gradient descent.
//
// Update rule:
//
//	w = w - lr * dL/dw
//	b = b - lr * dL/db
//
// Every iteration uses the full dataset. Run performs exactly
// Config.Iterations updates.
//
// Example:
//
//	gd := optim.NewGD(optim.Config{LR: 0.1, Iterations: 50})
//	history, err := gd.Run(linreg.Params{}, x, y)
type GD struct {
	lr         float64
	iterations int
}

// NewGD creates a gradient descent optimizer.
//
// Zero or invalid fields in config are replaced by DefaultConfig values.
// Use New to reject invalid settings instead.
func NewGD(config Config) *GD {
	config = withDefaults(config)
	return &GD{
		lr:         config.LR,
		iterations: config.Iterations,
	}
}

// GradientStep returns the parameters after one descent step from p.
func GradientStep(p linreg.Params, x, y []float64, lr float64) linreg.Params {
	g := linreg.Gradients(p, x, y)
	return linreg.Params{
		W: p.W - lr*g.DW,
		B: p.B - lr*g.DB,
	}
}

// Run performs the descent and records the post-update state of every step.
func (gd *GD) Run(init linreg.Params, x, y []float64) (History, error) {
	if err := checkData(x, y); err != nil {
		return nil, err
	}

	p := init
	history := make(History, 0, gd.iterations)
	for range gd.iterations {
		p = GradientStep(p, x, y, gd.lr)
		history = history.record(p, x, y)
	}
	return history, nil
}

// Method returns GradientDescent.
func (gd *GD) Method() Method {
	return GradientDescent
}

// GetLR returns the learning rate.
func (gd *GD) GetLR() float64 {
	return gd.lr
}

// withDefaults replaces zero or invalid fields with DefaultConfig values.
func withDefaults(config Config) Config {
	def := DefaultConfig()
	if math.IsNaN(config.LR) || math.IsInf(config.LR, 0) || config.LR <= 0 {
		config.LR = def.LR
	}
	if config.Iterations < 1 {
		config.Iterations = def.Iterations
	}
	return config
}
