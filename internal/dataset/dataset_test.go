package dataset

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSample_Validate(t *testing.T) {
	tests := []struct {
		name   string
		sample Sample
		ok     bool
	}{
		{"valid", Sample{Size: 120, Price: 7e8}, true},
		{"zero size", Sample{Size: 0, Price: 7e8}, false},
		{"negative price", Sample{Size: 120, Price: -1}, false},
		{"nan size", Sample{Size: math.NaN(), Price: 7e8}, false},
		{"inf price", Sample{Size: 120, Price: math.Inf(1)}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.sample.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidSample)
			}
		})
	}
}

func TestDataset_Columns(t *testing.T) {
	d := Dataset{{Size: 30, Price: 1e8}, {Size: 60, Price: 4e8}}

	assert.Equal(t, []float64{30, 60}, d.Sizes())
	assert.Equal(t, []float64{1e8, 4e8}, d.Prices())

	c := d.Clone()
	c[0].Size = 99
	assert.Equal(t, 30.0, d[0].Size)
	assert.Nil(t, Dataset(nil).Clone())
}

func TestDataset_Validate(t *testing.T) {
	d := Dataset{{Size: 30, Price: 1e8}, {Size: 60, Price: 0}}

	err := d.Validate()
	require.ErrorIs(t, err, ErrInvalidSample)
	assert.Contains(t, err.Error(), "sample 1")
}

func TestGenerator_Deterministic(t *testing.T) {
	config := DefaultGeneratorConfig()
	config.Seed = 42

	a := NewGenerator(config).Samples(10)
	b := NewGenerator(config).Samples(10)
	assert.Equal(t, a, b)
	assert.Len(t, a, 10)
}

func TestGenerator_Range(t *testing.T) {
	g := NewGenerator(GeneratorConfig{Seed: 7, NoiseStd: 30_000_000})

	for _, s := range g.Samples(500) {
		require.NoError(t, s.Validate())
		assert.GreaterOrEqual(t, s.Size, 30.0)
		assert.Less(t, s.Size, 200.0)
	}
	assert.Empty(t, g.Samples(0))
	assert.Empty(t, g.Samples(-2))
}

func TestGenerator_NoNoise(t *testing.T) {
	g := NewGenerator(GeneratorConfig{Seed: 1})

	s := g.Sample()
	assert.InDelta(t, 5_000_000*s.Size+100_000_000, s.Price, 1e-3)
}
