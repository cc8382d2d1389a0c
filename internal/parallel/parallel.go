// Package parallel runs independent jobs on separate goroutines.
//
// It is used to fit the same data with several optimizers at once. Each
// job must own its state; the helpers only fan out and wait.
package parallel

import (
	"runtime"
	"sync"
)

// Config controls parallel execution behavior.
type Config struct {
	Enabled    bool // Whether jobs may run concurrently.
	NumWorkers int  // Maximum number of jobs in flight.
}

// DefaultConfig returns defaults based on CPU count.
func DefaultConfig() Config {
	n := runtime.NumCPU()
	return Config{
		Enabled:    n > 1,
		NumWorkers: n,
	}
}

// For executes f(i) for i in [0, n), at most cfg.NumWorkers at a time.
// Falls back to sequential execution if parallelism is disabled.
func For(n int, f func(i int), cfg Config) {
	if !cfg.Enabled || cfg.NumWorkers <= 1 || n <= 1 {
		for i := 0; i < n; i++ {
			f(i)
		}
		return
	}

	var wg sync.WaitGroup
	sem := make(chan struct{}, cfg.NumWorkers)
	for i := 0; i < n; i++ {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int) {
			defer func() {
				<-sem
				wg.Done()
			}()
			f(i)
		}(i)
	}
	wg.Wait()
}

// Map applies f to every input and returns results in input order.
//
// The first non-nil error by index is returned alongside all results.
func Map[In, Out any](inputs []In, f func(In) (Out, error), cfg Config) ([]Out, error) {
	results := make([]Out, len(inputs))
	errs := make([]error, len(inputs))

	For(len(inputs), func(i int) {
		results[i], errs[i] = f(inputs[i])
	}, cfg)

	for _, err := range errs {
		if err != nil {
			return results, err
		}
	}
	return results, nil
}
