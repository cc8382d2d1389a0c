package session

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Virtuozs/interactive-optimization-house-price-prediction/internal/dataset"
	"github.com/Virtuozs/interactive-optimization-house-price-prediction/internal/linreg"
	"github.com/Virtuozs/interactive-optimization-house-price-prediction/internal/normalize"
	"github.com/Virtuozs/interactive-optimization-house-price-prediction/internal/optim"
	"github.com/Virtuozs/interactive-optimization-house-price-prediction/internal/parallel"
)

func threeHouses() dataset.Dataset {
	return dataset.Dataset{
		{Size: 30, Price: 1e8},
		{Size: 60, Price: 4e8},
		{Size: 90, Price: 7e8},
	}
}

// cleanMarket lies exactly on price = 5,000,000*size + 100,000,000.
func cleanMarket() dataset.Dataset {
	var d dataset.Dataset
	for _, size := range []float64{50, 80, 120, 150, 200} {
		d = append(d, dataset.Sample{Size: size, Price: 5_000_000*size + 100_000_000})
	}
	return d
}

func newSession(t *testing.T, samples dataset.Dataset, settings Settings) *Session {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Settings = settings
	cfg.Generator.Seed = 42
	s := New(cfg)
	if len(samples) > 0 {
		require.NoError(t, s.AddSamples(samples))
	}
	return s
}

func TestTrain_Scenario(t *testing.T) {
	s := newSession(t, threeHouses(), Settings{Method: optim.GradientDescent, LearningRate: 0.1, Iterations: 5})

	run, err := s.Train()
	require.NoError(t, err)
	require.Len(t, run.History, 5)
	for i := 1; i < len(run.History); i++ {
		assert.Less(t, run.History[i].Loss, run.History[i-1].Loss)
	}

	assert.InDelta(t, 60.0, run.Stats.XMean, 1e-9)
	assert.InDelta(t, 4e8, run.Stats.YMean, 1e-3)
	assert.Equal(t, threeHouses(), run.Samples)
}

func TestTrain_Deterministic(t *testing.T) {
	for _, m := range optim.Methods {
		settings := Settings{Method: m, LearningRate: 0.4, Iterations: 60}

		a := newSession(t, nil, settings)
		b := newSession(t, nil, settings)
		require.NoError(t, a.AddRandom(10))
		require.NoError(t, b.AddRandom(10))

		ra, err := a.Train()
		require.NoError(t, err)
		rb, err := b.Train()
		require.NoError(t, err)
		assert.Equal(t, ra.History, rb.History, m.String())
		assert.NotEqual(t, a.ID(), b.ID())
	}
}

func TestTrain_InsufficientData(t *testing.T) {
	s := newSession(t, threeHouses()[:2], DefaultSettings())

	_, err := s.Train()
	require.ErrorIs(t, err, ErrInsufficientData)
	_, ok := s.Run()
	assert.False(t, ok)

	_, err = s.Predict(100)
	assert.ErrorIs(t, err, ErrNotTrained)
	assert.ErrorIs(t, err, ErrInsufficientData)
}

func TestTrain_DegenerateScale(t *testing.T) {
	s := newSession(t, dataset.Dataset{
		{Size: 50, Price: 100},
		{Size: 80, Price: 100},
		{Size: 120, Price: 100},
	}, DefaultSettings())

	run, err := s.Train()
	require.ErrorIs(t, err, normalize.ErrDegenerateScale)
	assert.Nil(t, run)

	var dsErr *normalize.DegenerateScaleError
	require.ErrorAs(t, err, &dsErr)
	assert.Equal(t, normalize.AxisPrice, dsErr.Axis)
}

func TestTrain_InvalidSettingsKeepPreviousRun(t *testing.T) {
	s := newSession(t, threeHouses(), DefaultSettings())
	prev, err := s.Train()
	require.NoError(t, err)

	tests := []struct {
		name  string
		apply func()
	}{
		{"negative lr", func() { s.SetLearningRate(-0.1) }},
		{"zero iterations", func() { s.SetIterations(0) }},
		{"unknown method", func() { s.SetMethod(optim.Method(7)) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s.SetSettings(DefaultSettings())
			tt.apply()

			_, err := s.Train()
			require.ErrorIs(t, err, optim.ErrInvalidHyperparameter)

			cur, ok := s.Run()
			require.True(t, ok)
			assert.Same(t, prev, cur)
			assert.True(t, s.Stale())
		})
	}
}

func TestTrain_Cache(t *testing.T) {
	s := newSession(t, threeHouses(), DefaultSettings())

	first, err := s.Train()
	require.NoError(t, err)
	again, err := s.Train()
	require.NoError(t, err)
	assert.Same(t, first, again)
	assert.False(t, s.Stale())

	require.NoError(t, s.AddSample(120, 9e8))
	assert.True(t, s.Stale())
	second, err := s.Train()
	require.NoError(t, err)
	assert.NotSame(t, first, second)
	assert.NotEqual(t, first.Fingerprint, second.Fingerprint)

	s.SetMethod(optim.QuasiNewton)
	third, err := s.Train()
	require.NoError(t, err)
	assert.NotSame(t, second, third)
	assert.Equal(t, optim.QuasiNewton, third.Settings.Method)
}

func TestPlayback(t *testing.T) {
	s := newSession(t, threeHouses(), Settings{Method: optim.QuasiNewton, LearningRate: 0.5, Iterations: 4})

	_, ok := s.Tick()
	assert.False(t, ok, "tick without playing must not move")

	require.NoError(t, s.Play())
	assert.True(t, s.Playing())

	var steps []int
	for {
		step, ok := s.Tick()
		if !ok {
			break
		}
		steps = append(steps, step)
	}
	assert.Equal(t, []int{1, 2, 3}, steps)
	assert.Equal(t, 3, s.Step())

	step, ok := s.Tick()
	assert.False(t, ok)
	assert.Equal(t, 3, step, "cursor saturates at the last entry")

	s.SetLearningRate(0.2)
	assert.Equal(t, 0, s.Step())
	assert.False(t, s.Playing())

	// Playing again retrains on the new settings.
	require.NoError(t, s.Play())
	run, _ := s.Run()
	assert.InDelta(t, 0.2, run.Settings.LearningRate, 1e-15)

	require.NoError(t, s.Seek(2))
	assert.Equal(t, 2, s.Step())
	assert.ErrorIs(t, s.Seek(4), ErrStepOutOfRange)
	s.ResetCursor()
	assert.Equal(t, 0, s.Step())

	s.Pause()
	assert.False(t, s.Playing())
}

func TestPlay_RequiresData(t *testing.T) {
	s := newSession(t, nil, DefaultSettings())

	assert.ErrorIs(t, s.Play(), ErrInsufficientData)
	assert.False(t, s.Playing())
	assert.ErrorIs(t, s.Seek(0), ErrNotTrained)
	_, err := s.Frame()
	assert.ErrorIs(t, err, ErrNotTrained)
}

func TestPredict_RoundTrip(t *testing.T) {
	for _, m := range optim.Methods {
		s := newSession(t, cleanMarket(), Settings{Method: m, LearningRate: 0.1, Iterations: 200})
		_, err := s.Train()
		require.NoError(t, err)

		for _, smp := range cleanMarket() {
			p, err := s.Predict(smp.Size)
			require.NoError(t, err)
			assert.InEpsilon(t, smp.Price, p.Price, 1e-6, "%s size %v", m, smp.Size)
		}
	}
}

func TestPredict_UsesFinalEntry(t *testing.T) {
	s := newSession(t, threeHouses(), Settings{Method: optim.GradientDescent, LearningRate: 0.1, Iterations: 10})
	run, err := s.Train()
	require.NoError(t, err)
	require.NoError(t, s.Seek(0))

	p, err := s.Predict(75)
	require.NoError(t, err)

	final, _ := run.History.Final()
	want := linreg.Predict(final.Params(), run.Stats.NormalizeX(75))
	assert.InDelta(t, want, p.Normalized, 1e-12)
	assert.InDelta(t, run.Stats.DenormalizeY(want), p.Price, 1e-3)
	assert.Equal(t, 75.0, p.Size)
}

func TestPredictFrom(t *testing.T) {
	stats := normalize.Stats{XMean: 100, XStd: 50, YMean: 6e8, YStd: 2e8}
	history := optim.History{{W: 9, B: 9}, {W: 0.5, B: 0.25}}

	p, err := PredictFrom(150, history, stats)
	require.NoError(t, err)
	assert.InDelta(t, 0.75, p.Normalized, 1e-12)
	assert.InDelta(t, 7.5e8, p.Price, 1e-3)

	_, err = PredictFrom(150, nil, stats)
	assert.ErrorIs(t, err, ErrNotTrained)
}

func TestFrame(t *testing.T) {
	samples := dataset.Dataset{
		{Size: 90, Price: 7e8},
		{Size: 30, Price: 1e8},
		{Size: 60, Price: 4e8},
	}
	s := newSession(t, samples, Settings{Method: optim.GradientDescent, LearningRate: 0.1, Iterations: 5})
	run, err := s.Train()
	require.NoError(t, err)

	f, err := s.Frame()
	require.NoError(t, err)
	assert.Equal(t, 0, f.Step)
	assert.Len(t, f.Losses, 1)

	f, err = run.Frame(2)
	require.NoError(t, err)
	assert.Equal(t, "y = 0.488·x + 0.000", f.Equation)
	assert.Len(t, f.Losses, 3)
	assert.Len(t, f.Trajectory, 3)
	assert.Equal(t, run.History[0].Params(), f.Start)
	assert.Equal(t, run.History[2].Params(), f.Current)
	assert.Equal(t, Point{X: 90, Y: 7e8}, f.Observed[0])

	require.Len(t, f.Fit, 3)
	assert.Equal(t, 30.0, f.Fit[0].X)
	assert.Equal(t, 90.0, f.Fit[2].X)
	assert.InDelta(t, 4e8, f.Fit[1].Y, 1e-3, "line passes through the mean")

	_, err = run.Frame(5)
	assert.ErrorIs(t, err, ErrStepOutOfRange)
}

func TestCompare(t *testing.T) {
	s := newSession(t, nil, Settings{Method: optim.GradientDescent, LearningRate: 1.0, Iterations: 20})
	require.NoError(t, s.AddRandom(12))

	runs, err := s.Compare()
	require.NoError(t, err)
	require.Len(t, runs, 2)

	for _, m := range optim.Methods {
		settings := s.Settings()
		settings.Method = m
		want, err := Train(s.Samples(), settings)
		require.NoError(t, err)
		assert.Equal(t, want.History, runs[m].History, m.String())
	}

	gd, _ := runs[optim.GradientDescent].History.Final()
	qn, _ := runs[optim.QuasiNewton].History.Final()
	assert.LessOrEqual(t, qn.Loss, gd.Loss)

	_, ok := s.Run()
	assert.False(t, ok, "compare must not populate the cache")
}

func TestCompare_Error(t *testing.T) {
	_, err := Compare(threeHouses()[:1], DefaultSettings(), parallel.Config{Enabled: true, NumWorkers: 2})
	assert.ErrorIs(t, err, ErrInsufficientData)
}

func TestAddSample_Invalid(t *testing.T) {
	s := newSession(t, nil, DefaultSettings())

	assert.ErrorIs(t, s.AddSample(0, 5e8), ErrInvalidInput)
	assert.ErrorIs(t, s.AddSample(100, -1), dataset.ErrInvalidSample)
	assert.ErrorIs(t, s.AddRandom(0), ErrInvalidInput)
	assert.Equal(t, 0, s.Len())

	require.NoError(t, s.AddRandom(10))
	assert.Equal(t, 10, s.Len())
}

func TestDataChangeResetsCursor(t *testing.T) {
	s := newSession(t, threeHouses(), DefaultSettings())
	require.NoError(t, s.Play())
	s.Tick()
	s.Tick()
	require.Equal(t, 2, s.Step())

	require.NoError(t, s.AddSample(75, 5e8))
	assert.Equal(t, 0, s.Step())
	assert.False(t, s.Playing(), "a data change must pause playback")
	assert.True(t, s.Stale())

	_, ok := s.Tick()
	assert.False(t, ok, "stale history must not be played")
	assert.Equal(t, 0, s.Step())

	// Play retrains on the new data before resuming.
	require.NoError(t, s.Play())
	run, _ := s.Run()
	assert.Len(t, run.Samples, 4)
	step, ok := s.Tick()
	assert.True(t, ok)
	assert.Equal(t, 1, step)

	f, err := s.Frame()
	require.NoError(t, err)
	assert.Len(t, f.Observed, 4)

	require.NoError(t, s.AddRandom(2))
	assert.False(t, s.Playing())
	assert.Equal(t, 0, s.Step())
}

func TestPredict_RetrainsAfterChange(t *testing.T) {
	s := newSession(t, threeHouses(), Settings{Method: optim.GradientDescent, LearningRate: 0.1, Iterations: 20})
	before, err := s.Predict(120)
	require.NoError(t, err)

	require.NoError(t, s.AddSample(200, 2e8))
	got, err := s.Predict(120)
	require.NoError(t, err)

	want, err := Train(s.Samples(), s.Settings())
	require.NoError(t, err)
	wantP, err := want.Predict(120)
	require.NoError(t, err)
	assert.Equal(t, wantP, got)
	assert.NotEqual(t, before.Price, got.Price)
	assert.False(t, s.Stale())

	s.SetLearningRate(0.5)
	got, err = s.Predict(120)
	require.NoError(t, err)
	want, err = Train(s.Samples(), s.Settings())
	require.NoError(t, err)
	wantP, err = want.Predict(120)
	require.NoError(t, err)
	assert.Equal(t, wantP, got)
}

func TestPredict_FallsBackToPreviousRun(t *testing.T) {
	s := newSession(t, threeHouses(), DefaultSettings())
	prev, err := s.Train()
	require.NoError(t, err)

	s.SetLearningRate(-1)
	got, err := s.Predict(75)
	require.NoError(t, err)

	want, err := prev.Predict(75)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	cur, _ := s.Run()
	assert.Same(t, prev, cur)
}

func TestSetters_Concurrent(t *testing.T) {
	s := newSession(t, nil, DefaultSettings())

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if i%2 == 0 {
				s.SetLearningRate(0.7)
			} else {
				s.SetIterations(77)
			}
		}()
	}
	wg.Wait()

	got := s.Settings()
	assert.InDelta(t, 0.7, got.LearningRate, 1e-15)
	assert.Equal(t, 77, got.Iterations)
	assert.Equal(t, optim.GradientDescent, got.Method)
}

func TestSession_ConcurrentReaders(t *testing.T) {
	s := newSession(t, nil, Settings{Method: optim.QuasiNewton, LearningRate: 0.3, Iterations: 50})
	require.NoError(t, s.AddRandom(20))
	require.NoError(t, s.Play())

	var wg sync.WaitGroup
	for range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				s.Tick()
				_, err := s.Frame()
				assert.NoError(t, err)
				_, err = s.Predict(110)
				assert.NoError(t, err)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 49, s.Step())
}

func TestNew_Defaults(t *testing.T) {
	s := New(Config{})
	assert.Equal(t, DefaultSettings(), s.Settings())
	assert.Equal(t, Settings{Method: optim.GradientDescent, LearningRate: 0.1, Iterations: 30}, s.Settings())
}
