package session

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"

	"github.com/Virtuozs/interactive-optimization-house-price-prediction/internal/dataset"
)

// fingerprint computes the xxHash64 of everything a run depends on.
//
// Two runs with equal fingerprints produce identical histories, so a cached
// Run can be reused instead of optimizing again.
func fingerprint(samples dataset.Dataset, s Settings) uint64 {
	d := xxhash.New()
	var buf [8]byte

	put := func(v uint64) {
		binary.LittleEndian.PutUint64(buf[:], v)
		_, _ = d.Write(buf[:])
	}

	put(uint64(s.Method))
	put(math.Float64bits(s.LearningRate))
	put(uint64(s.Iterations))
	put(uint64(len(samples)))
	for _, smp := range samples {
		put(math.Float64bits(smp.Size))
		put(math.Float64bits(smp.Price))
	}
	return d.Sum64()
}
