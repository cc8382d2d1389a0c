// Package linreg implements the single-feature linear model y = w*x + b.
//
// The model is stateless: every function takes the parameters explicitly,
// so optimizers can evaluate candidate points without mutating anything.
//
// Loss is the batch mean squared error:
//
//	L(w, b) = mean((y - (w*x + b))^2)
//
// and its analytic gradient is:
//
//	dL/dw = -2 * mean(x * (y - ŷ))
//	dL/db = -2 * mean(y - ŷ)
//
// Callers must pass equal-length, non-empty x and y.
package linreg

import (
	"gonum.org/v1/gonum/stat"
)

// Params holds the two model parameters.
type Params struct {
	W float64 `json:"w"` // Weight (slope)
	B float64 `json:"b"` // Bias (intercept)
}

// Gradient is the gradient of the MSE loss with respect to Params.
type Gradient struct {
	DW float64 `json:"dw"`
	DB float64 `json:"db"`
}

// Predict returns w*x + b.
func Predict(p Params, x float64) float64 {
	return p.W*x + p.B
}

// PredictAll applies Predict elementwise.
func PredictAll(p Params, xs []float64) []float64 {
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = Predict(p, x)
	}
	return out
}

// Loss returns the mean squared error of p over the whole dataset.
func Loss(p Params, x, y []float64) float64 {
	sq := make([]float64, len(x))
	for i := range x {
		r := y[i] - Predict(p, x[i])
		sq[i] = r * r
	}
	return stat.Mean(sq, nil)
}

// Gradients returns the analytic MSE gradient at p.
func Gradients(p Params, x, y []float64) Gradient {
	residual := make([]float64, len(x))
	scaled := make([]float64, len(x))
	for i := range x {
		r := y[i] - Predict(p, x[i])
		residual[i] = r
		scaled[i] = x[i] * r
	}

	return Gradient{
		DW: -2 * stat.Mean(scaled, nil),
		DB: -2 * stat.Mean(residual, nil),
	}
}
