// Package normalize implements z-score standardization of the house data.
//
// Sizes and prices are standardized independently with their population
// mean and standard deviation (divide by n). The four scalars are kept so
// that predictions made in normalized space can be mapped back to prices.
package normalize

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Stats holds the normalization constants of one training run.
type Stats struct {
	XMean float64 `json:"x_mean"`
	XStd  float64 `json:"x_std"`
	YMean float64 `json:"y_mean"`
	YStd  float64 `json:"y_std"`
}

// Fit computes Stats from raw sizes and prices.
//
// Returns ErrEmpty when there is no data and a *DegenerateScaleError when
// either standard deviation is zero or not finite.
func Fit(xs, ys []float64) (Stats, error) {
	if len(xs) == 0 || len(ys) == 0 {
		return Stats{}, ErrEmpty
	}

	var s Stats
	s.XMean, s.XStd = stat.PopMeanStdDev(xs, nil)
	s.YMean, s.YStd = stat.PopMeanStdDev(ys, nil)

	if !usable(s.XMean, s.XStd) {
		return Stats{}, &DegenerateScaleError{Axis: AxisSize, Std: s.XStd}
	}
	if !usable(s.YMean, s.YStd) {
		return Stats{}, &DegenerateScaleError{Axis: AxisPrice, Std: s.YStd}
	}
	return s, nil
}

func usable(mean, std float64) bool {
	return std > 0 && !math.IsInf(std, 0) && !math.IsNaN(std) && !math.IsNaN(mean) && !math.IsInf(mean, 0)
}

// NormalizeX maps a raw size into normalized space.
func (s Stats) NormalizeX(x float64) float64 {
	return (x - s.XMean) / s.XStd
}

// NormalizeY maps a raw price into normalized space.
func (s Stats) NormalizeY(y float64) float64 {
	return (y - s.YMean) / s.YStd
}

// DenormalizeY maps a normalized prediction back to a price.
func (s Stats) DenormalizeY(y float64) float64 {
	return y*s.YStd + s.YMean
}

// Apply returns normalized copies of xs and ys.
func (s Stats) Apply(xs, ys []float64) ([]float64, []float64) {
	x := make([]float64, len(xs))
	for i, v := range xs {
		x[i] = s.NormalizeX(v)
	}
	y := make([]float64, len(ys))
	for i, v := range ys {
		y[i] = s.NormalizeY(v)
	}
	return x, y
}
