package session

import (
	"errors"
)

// MinSamples is the smallest dataset a run accepts.
const MinSamples = 3

// Common errors.
var (
	ErrInsufficientData = errors.New("insufficient data")
	ErrNotTrained       = errors.New("train the model first")
	ErrInvalidInput     = errors.New("invalid input")
	ErrStepOutOfRange   = errors.New("step out of range")
)
