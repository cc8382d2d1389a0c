// Package session owns the state of one interactive training session.
//
// A Session holds the growing house dataset, the current hyperparameters,
// the cached Run and the playback cursor. Training is synchronous and runs
// to completion; playback and prediction only read the cached Run.
//
// Example:
//
//	s := session.New(session.DefaultConfig())
//	_ = s.AddRandom(10)
//	s.SetMethod(optim.QuasiNewton)
//
//	run, err := s.Train()
//	if err != nil {
//	    return err
//	}
//
//	_ = s.Play()
//	for {
//	    step, ok := s.Tick()
//	    if !ok {
//	        break
//	    }
//	    frame, _ := s.Frame()
//	    draw(frame)
//	}
//
//	p, err := s.Predict(120)
package session

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/Virtuozs/interactive-optimization-house-price-prediction/internal/dataset"
	"github.com/Virtuozs/interactive-optimization-house-price-prediction/internal/optim"
	"github.com/Virtuozs/interactive-optimization-house-price-prediction/internal/parallel"
)

// Config configures a new Session.
type Config struct {
	Settings  Settings                // Initial hyperparameters (default: DefaultSettings)
	Generator dataset.GeneratorConfig // Random house market
	Parallel  parallel.Config         // Used by Compare
}

// DefaultConfig returns a session configuration with page defaults.
func DefaultConfig() Config {
	return Config{
		Settings:  DefaultSettings(),
		Generator: dataset.DefaultGeneratorConfig(),
		Parallel:  parallel.DefaultConfig(),
	}
}

// Session is the state of one user's training session.
//
// Session is safe for concurrent use.
type Session struct {
	mu       sync.RWMutex
	id       uuid.UUID
	samples  dataset.Dataset
	settings Settings
	run      *Run
	cursor   int
	playing  bool
	gen      *dataset.Generator
	parallel parallel.Config
}

// New creates an empty session.
func New(config Config) *Session {
	if config.Settings == (Settings{}) {
		config.Settings = DefaultSettings()
	}

	return &Session{
		id:       uuid.New(),
		settings: config.Settings,
		gen:      dataset.NewGenerator(config.Generator),
		parallel: config.Parallel,
	}
}

// ID returns the session identifier.
func (s *Session) ID() uuid.UUID {
	return s.id
}

// AddSample appends one house.
func (s *Session) AddSample(size, price float64) error {
	return s.AddSamples(dataset.Dataset{{Size: size, Price: price}})
}

// AddSamples appends houses. Nothing is added if any sample is invalid.
func (s *Session) AddSamples(samples dataset.Dataset) error {
	if err := samples.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.samples = append(s.samples, samples...)
	s.invalidateLocked()
	return nil
}

// AddRandom appends n generated houses.
func (s *Session) AddRandom(n int) error {
	if n < 1 {
		return fmt.Errorf("%w: cannot generate %d houses", ErrInvalidInput, n)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.samples = append(s.samples, s.gen.Samples(n)...)
	s.invalidateLocked()
	return nil
}

// Samples returns a copy of the dataset.
func (s *Session) Samples() dataset.Dataset {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.samples.Clone()
}

// Len returns the number of samples.
func (s *Session) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.samples)
}

// Settings returns the current hyperparameters.
func (s *Session) Settings() Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

// SetSettings replaces the hyperparameters.
//
// Values are validated by Train. Changing settings rewinds and pauses
// playback.
func (s *Session) SetSettings(settings Settings) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.settings = settings
	s.invalidateLocked()
}

// SetMethod changes the optimizer.
func (s *Session) SetMethod(m optim.Method) {
	s.updateSettings(func(settings *Settings) { settings.Method = m })
}

// SetLearningRate changes the learning rate.
func (s *Session) SetLearningRate(lr float64) {
	s.updateSettings(func(settings *Settings) { settings.LearningRate = lr })
}

// SetIterations changes the iteration count.
func (s *Session) SetIterations(n int) {
	s.updateSettings(func(settings *Settings) { settings.Iterations = n })
}

func (s *Session) updateSettings(apply func(*Settings)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	apply(&s.settings)
	s.invalidateLocked()
}

// invalidateLocked rewinds and pauses playback after an input change.
// Only Play, which retrains first, can resume it.
func (s *Session) invalidateLocked() {
	s.cursor = 0
	s.playing = false
}

// Train optimizes the current dataset with the current settings.
//
// If the cached Run was produced from identical inputs it is returned as is.
// On error the previously cached Run is kept.
func (s *Session) Train() (*Run, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.trainLocked()
}

func (s *Session) trainLocked() (*Run, error) {
	if s.run != nil && s.run.Fingerprint == fingerprint(s.samples, s.settings) {
		return s.run, nil
	}

	run, err := Train(s.samples, s.settings)
	if err != nil {
		return nil, err
	}
	s.run = run
	s.cursor = 0
	return run, nil
}

// Run returns the cached Run, if any.
func (s *Session) Run() (*Run, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.run, s.run != nil
}

// Stale reports whether the data or settings changed since the cached Run.
func (s *Session) Stale() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.run == nil || s.run.Fingerprint != fingerprint(s.samples, s.settings)
}

// Play starts playback, training first if the cached Run is stale.
func (s *Session) Play() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.trainLocked(); err != nil {
		return err
	}
	s.playing = true
	return nil
}

// Pause stops playback at the current step.
func (s *Session) Pause() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.playing = false
}

// Playing reports whether playback is running.
func (s *Session) Playing() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.playing
}

// Tick advances the cursor by one step while playing.
//
// The cursor saturates at the last entry; ok is false when nothing moved.
func (s *Session) Tick() (step int, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.playing || s.run == nil {
		return s.cursor, false
	}
	next := min(s.cursor+1, len(s.run.History)-1)
	moved := next != s.cursor
	s.cursor = next
	return s.cursor, moved
}

// Step returns the playback cursor.
func (s *Session) Step() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cursor
}

// Seek moves the cursor to step.
func (s *Session) Seek(step int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.run == nil {
		return ErrNotTrained
	}
	if step < 0 || step >= len(s.run.History) {
		return fmt.Errorf("%w: %d not in [0, %d)", ErrStepOutOfRange, step, len(s.run.History))
	}
	s.cursor = step
	return nil
}

// ResetCursor rewinds playback to the first step.
func (s *Session) ResetCursor() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cursor = 0
}

// Frame returns the chart data at the playback cursor.
func (s *Session) Frame() (Frame, error) {
	s.mu.RLock()
	run, step := s.run, s.cursor
	s.mu.RUnlock()

	if run == nil {
		return Frame{}, ErrNotTrained
	}
	return run.Frame(step)
}

// Predict estimates the price of size with the final trained parameters,
// independent of the playback cursor.
//
// A stale Run is retrained first. If that fails the previous Run is used;
// with no previous Run the training error is returned wrapped in
// ErrNotTrained.
func (s *Session) Predict(size float64) (Prediction, error) {
	s.mu.Lock()
	run, err := s.trainLocked()
	if err != nil {
		run = s.run
	}
	s.mu.Unlock()

	if run == nil {
		return Prediction{}, fmt.Errorf("%w: %w", ErrNotTrained, err)
	}
	return run.Predict(size)
}

// Compare trains both methods on the current data without touching the
// cached Run.
func (s *Session) Compare() (map[optim.Method]*Run, error) {
	s.mu.RLock()
	samples, settings, cfg := s.samples.Clone(), s.settings, s.parallel
	s.mu.RUnlock()

	return Compare(samples, settings, cfg)
}
