package normalize

import (
	"errors"
	"fmt"
)

// Common errors.
var (
	ErrEmpty           = errors.New("cannot normalize empty data")
	ErrDegenerateScale = errors.New("degenerate scale")
)

// Axis names the column that failed normalization.
type Axis string

// Data columns.
const (
	AxisSize  Axis = "size"
	AxisPrice Axis = "price"
)

// DegenerateScaleError reports a column whose standard deviation is unusable,
// typically because every value is identical.
type DegenerateScaleError struct {
	Axis Axis
	Std  float64
}

// Error implements the error interface.
func (e *DegenerateScaleError) Error() string {
	return fmt.Sprintf("%s: %s has standard deviation %v, all values are identical or invalid",
		ErrDegenerateScale, e.Axis, e.Std)
}

// Unwrap makes errors.Is(err, ErrDegenerateScale) report true.
func (e *DegenerateScaleError) Unwrap() error {
	return ErrDegenerateScale
}
