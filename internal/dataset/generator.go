package dataset

import (
	"math/rand"
	"time"
)

// GeneratorConfig describes the synthetic housing market.
//
// Prices follow price = PricePerM2*size + BasePrice + N(0, NoiseStd) with
// sizes drawn uniformly from [MinSize, MaxSize).
type GeneratorConfig struct {
	MinSize    float64 // Smallest size in m² (default: 30)
	MaxSize    float64 // Largest size in m² (default: 200)
	PricePerM2 float64 // Rp per m² (default: 5,000,000)
	BasePrice  float64 // Rp (default: 100,000,000)
	NoiseStd   float64 // Rp (default: 30,000,000)

	// Seed for reproducibility. -1 = time-seeded.
	Seed int64
}

// DefaultGeneratorConfig returns the market used by the training page.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		MinSize:    30,
		MaxSize:    200,
		PricePerM2: 5_000_000,
		BasePrice:  100_000_000,
		NoiseStd:   30_000_000,
		Seed:       -1,
	}
}

// Generator produces random houses.
type Generator struct {
	config GeneratorConfig
	rng    *rand.Rand
}

// NewGenerator creates a generator.
//
// Zero size range, PricePerM2 and BasePrice take defaults. A zero NoiseStd
// gives noise-free prices.
func NewGenerator(config GeneratorConfig) *Generator {
	def := DefaultGeneratorConfig()
	if config.MaxSize <= config.MinSize {
		config.MinSize, config.MaxSize = def.MinSize, def.MaxSize
	}
	if config.PricePerM2 == 0 {
		config.PricePerM2 = def.PricePerM2
	}
	if config.BasePrice == 0 {
		config.BasePrice = def.BasePrice
	}

	seed := config.Seed
	if seed < 0 {
		seed = time.Now().UnixNano()
	}

	return &Generator{
		config: config,
		rng:    rand.New(rand.NewSource(seed)), //nolint:gosec // Not security sensitive.
	}
}

// Sample draws one house.
//
// Noise can in principle push a price below zero; such draws are retried.
func (g *Generator) Sample() Sample {
	for {
		size := g.config.MinSize + g.rng.Float64()*(g.config.MaxSize-g.config.MinSize)
		price := g.config.PricePerM2*size + g.config.BasePrice + g.rng.NormFloat64()*g.config.NoiseStd
		if price > 0 {
			return Sample{Size: size, Price: price}
		}
	}
}

// Samples draws n houses.
func (g *Generator) Samples(n int) Dataset {
	out := make(Dataset, 0, max(n, 0))
	for range n {
		out = append(out, g.Sample())
	}
	return out
}
