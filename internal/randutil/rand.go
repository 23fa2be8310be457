package randutil

import rand "math/rand/v2"

const (
	goldenRatio64 = 0x9e3779b97f4a7c15
)

// New returns a *rand.Rand seeded deterministically from the provided int64.
// The helper centralises how we derive the two 64-bit seeds required by rand/v2
// so that every session and simulation run gets a reproducible sequence.
func New(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(rand.NewPCG(mix(u), mix(u+goldenRatio64)))
}

// Derive returns a child seed for stream n so that parallel sessions draw
// from independent, reproducible sequences.
func Derive(seed int64, n int) int64 {
	return int64(mix(uint64(seed) + uint64(n)*goldenRatio64))
}

// CardFace draws a uniform card face in 1..faces.
func CardFace(rng *rand.Rand, faces int) int {
	return rng.IntN(faces) + 1
}

// CoinToss returns true or false with equal probability.
func CoinToss(rng *rand.Rand) bool {
	return rng.IntN(2) == 1
}

// WeightedIndex draws an index from the discrete distribution given by
// weights. The weights are expected to sum to 1; any floating point
// shortfall is absorbed by the final index so a valid draw is always
// produced.
func WeightedIndex(rng *rand.Rand, weights []float64) int {
	r := rng.Float64()
	acc := 0.0
	for i, w := range weights {
		acc += w
		if r < acc {
			return i
		}
	}
	return len(weights) - 1
}

func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
