package optim

import (
	"strings"
)

// Method identifies an optimization algorithm.
type Method int

// Supported methods.
const (
	GradientDescent Method = iota // Batch gradient descent ("gd")
	QuasiNewton                   // Damped BFGS ("bfgs")
)

// Methods lists every supported method in display order.
var Methods = []Method{GradientDescent, QuasiNewton}

// String returns the short flag value of the method.
func (m Method) String() string {
	switch m {
	case GradientDescent:
		return "gd"
	case QuasiNewton:
		return "bfgs"
	default:
		return "unknown"
	}
}

// Label returns the human-readable name of the method.
func (m Method) Label() string {
	switch m {
	case GradientDescent:
		return "Gradient Descent"
	case QuasiNewton:
		return "Quasi-Newton (BFGS)"
	default:
		return "Unknown"
	}
}

// ParseMethod converts a flag value into a Method.
func ParseMethod(s string) (Method, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "gd", "gradient-descent":
		return GradientDescent, nil
	case "bfgs", "quasi-newton":
		return QuasiNewton, nil
	default:
		return 0, &HyperparameterError{Field: "method", Value: s}
	}
}

// MarshalText implements encoding.TextMarshaler.
func (m Method) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Method) UnmarshalText(text []byte) error {
	parsed, err := ParseMethod(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
