package session

import (
	"github.com/Virtuozs/interactive-optimization-house-price-prediction/internal/optim"
)

// Settings are the user-controlled hyperparameters of a run.
type Settings struct {
	Method       optim.Method `json:"method"`
	LearningRate float64      `json:"lr"`
	Iterations   int          `json:"iters"`
}

// DefaultSettings returns the initial controls of the training page.
func DefaultSettings() Settings {
	def := optim.DefaultConfig()
	return Settings{
		Method:       optim.GradientDescent,
		LearningRate: def.LR,
		Iterations:   def.Iterations,
	}
}

// OptimConfig converts s into an optimizer configuration.
func (s Settings) OptimConfig() optim.Config {
	return optim.Config{
		LR:         s.LearningRate,
		Iterations: s.Iterations,
	}
}

// Validate checks the settings without running anything.
func (s Settings) Validate() error {
	if s.Method != optim.GradientDescent && s.Method != optim.QuasiNewton {
		return &optim.HyperparameterError{Field: "method", Value: s.Method.String()}
	}
	return s.OptimConfig().Validate()
}
