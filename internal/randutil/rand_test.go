package randutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Deterministic(t *testing.T) {
	a := New(42)
	b := New(42)
	for i := 0; i < 100; i++ {
		require.Equal(t, a.Uint64(), b.Uint64(), "same seed must produce same stream")
	}
}

func TestDerive_IndependentStreams(t *testing.T) {
	s0 := Derive(42, 0)
	s1 := Derive(42, 1)
	assert.NotEqual(t, s0, s1)

	// Derived seeds are stable across calls
	assert.Equal(t, s0, Derive(42, 0))
}

func TestCardFace_Range(t *testing.T) {
	rng := New(7)
	for i := 0; i < 1000; i++ {
		face := CardFace(rng, 8)
		require.GreaterOrEqual(t, face, 1)
		require.LessOrEqual(t, face, 8)
	}
}

func TestCoinToss_RoughlyFair(t *testing.T) {
	rng := New(99)
	heads := 0
	const n = 10000
	for i := 0; i < n; i++ {
		if CoinToss(rng) {
			heads++
		}
	}
	// 4 sigma band around n/2
	assert.InDelta(t, n/2, heads, 200)
}

func TestWeightedIndex(t *testing.T) {
	rng := New(1)

	t.Run("degenerate distribution", func(t *testing.T) {
		weights := []float64{0, 0, 1, 0}
		for i := 0; i < 100; i++ {
			assert.Equal(t, 2, WeightedIndex(rng, weights))
		}
	})

	t.Run("never out of range", func(t *testing.T) {
		// Weights that sum slightly below 1 must still yield a valid index.
		weights := []float64{0.3333333, 0.3333333, 0.3333333}
		for i := 0; i < 1000; i++ {
			idx := WeightedIndex(rng, weights)
			require.GreaterOrEqual(t, idx, 0)
			require.Less(t, idx, 3)
		}
	})

	t.Run("matches weights statistically", func(t *testing.T) {
		weights := []float64{0.5, 0.25, 0.25}
		counts := make([]int, 3)
		const n = 20000
		for i := 0; i < n; i++ {
			counts[WeightedIndex(rng, weights)]++
		}
		assert.InDelta(t, 0.5, float64(counts[0])/n, 0.02)
		assert.InDelta(t, 0.25, float64(counts[1])/n, 0.02)
	})
}
