// Package dataset holds the raw house samples the session trains on.
//
// Sizes are in square metres and prices in Rupiah. The dataset only grows:
// samples are appended by hand or by the random generator.
package dataset

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidSample is returned for non-finite or non-positive samples.
var ErrInvalidSample = errors.New("invalid sample")

// Sample is one observed house.
type Sample struct {
	Size  float64 `json:"Size"`  // m²
	Price float64 `json:"Price"` // Rp
}

// Validate checks that both fields are finite and positive.
func (s Sample) Validate() error {
	if !positive(s.Size) {
		return fmt.Errorf("%w: size %v", ErrInvalidSample, s.Size)
	}
	if !positive(s.Price) {
		return fmt.Errorf("%w: price %v", ErrInvalidSample, s.Price)
	}
	return nil
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}

// Dataset is an ordered collection of samples.
type Dataset []Sample

// Sizes returns the size column.
func (d Dataset) Sizes() []float64 {
	out := make([]float64, len(d))
	for i, s := range d {
		out[i] = s.Size
	}
	return out
}

// Prices returns the price column.
func (d Dataset) Prices() []float64 {
	out := make([]float64, len(d))
	for i, s := range d {
		out[i] = s.Price
	}
	return out
}

// Clone returns an independent copy.
func (d Dataset) Clone() Dataset {
	if d == nil {
		return nil
	}
	out := make(Dataset, len(d))
	copy(out, d)
	return out
}

// Validate checks every sample, reporting the first bad row.
func (d Dataset) Validate() error {
	for i, s := range d {
		if err := s.Validate(); err != nil {
			return fmt.Errorf("sample %d: %w", i, err)
		}
	}
	return nil
}
