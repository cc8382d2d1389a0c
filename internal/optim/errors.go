package optim

import (
	"errors"
	"fmt"
)

// Common errors.
var (
	ErrInvalidHyperparameter = errors.New("invalid hyperparameter")
	ErrLengthMismatch        = errors.New("x and y length mismatch")
	ErrEmptyData             = errors.New("no training data")
)

// HyperparameterError describes a rejected optimizer setting.
type HyperparameterError struct {
	Field string // Setting name (e.g., "learning rate", "method")
	Value string // Offending value as given
}

// Error implements the error interface.
func (e *HyperparameterError) Error() string {
	return fmt.Sprintf("%s: %s %q", ErrInvalidHyperparameter, e.Field, e.Value)
}

// Unwrap makes errors.Is(err, ErrInvalidHyperparameter) report true.
func (e *HyperparameterError) Unwrap() error {
	return ErrInvalidHyperparameter
}
