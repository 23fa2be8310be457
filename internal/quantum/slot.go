package quantum

import (
	"math"
	rand "math/rand/v2"

	"github.com/thisistayeb/QuantumBlackJack/internal/randutil"
)

const (
	// SlotBits is the number of qubits backing one pending card slot.
	SlotBits = 3

	// SlotOutcomes is the number of distinct slot outcomes (card faces).
	SlotOutcomes = 1 << SlotBits
)

// Outcome is a single measured slot result: a SlotBits-wide bit group,
// bit i holding the measured value of qubit i.
type Outcome uint8

// Bit returns bit i of the outcome.
func (o Outcome) Bit(i int) uint8 {
	return uint8(o>>i) & 1
}

// Permute rearranges the outcome's bits: bit i of the result is bit
// perm[i] of o.
func (o Outcome) Permute(perm Permutation) Outcome {
	var out Outcome
	for i := 0; i < SlotBits; i++ {
		out |= Outcome(o.Bit(perm[i])) << i
	}
	return out
}

// Permutation maps destination bit positions to source bit positions
// within a slot outcome.
type Permutation [SlotBits]int

// Slot models the probability distribution of one undetermined card as
// three independent qubits. A fresh slot starts in the even split
// (Hadamard on every qubit); an optional skew rotation tilts each
// qubit by the same randomly drawn angle.
type Slot struct {
	qubits [SlotBits]qubit
	skew   float64
	skewed bool
}

// NewUniformSlot returns a slot in the even split: every outcome has
// probability 1/SlotOutcomes.
func NewUniformSlot() *Slot {
	s := &Slot{}
	s.Reset()
	return s
}

// NewSkewedSlot returns a slot whose even split has been composed with
// an Ry rotation by an angle drawn uniformly from [0, 2π). The angle is
// retained for reporting; the probabilities themselves are computed
// analytically from the amplitudes.
func NewSkewedSlot(rng *rand.Rand) *Slot {
	s := NewUniformSlot()
	s.Skew(rng.Float64() * 2 * math.Pi)
	return s
}

// Skew composes the current state with Ry(theta) on every qubit.
func (s *Slot) Skew(theta float64) {
	for i := range s.qubits {
		s.qubits[i] = s.qubits[i].rotateY(theta)
	}
	s.skew = theta
	s.skewed = true
}

// Reset restores the even split, discarding any skew. Resetting an
// already even slot is a no-op, so the operation is idempotent.
func (s *Slot) Reset() {
	for i := range s.qubits {
		s.qubits[i] = zeroQubit().hadamard()
	}
	s.skew = 0
	s.skewed = false
}

// SkewAngle reports the rotation angle applied on top of the even
// split, and whether one is currently in effect.
func (s *Slot) SkewAngle() (float64, bool) {
	return s.skew, s.skewed
}

// Probabilities returns the distribution over the SlotOutcomes possible
// outcomes. The qubits are independent, so each joint probability is
// the product of the per-qubit marginals; the result always sums to 1
// up to floating point error.
func (s *Slot) Probabilities() [SlotOutcomes]float64 {
	var probs [SlotOutcomes]float64
	for o := 0; o < SlotOutcomes; o++ {
		p := 1.0
		for i := 0; i < SlotBits; i++ {
			p1 := s.qubits[i].probOne()
			if Outcome(o).Bit(i) == 1 {
				p *= p1
			} else {
				p *= 1 - p1
			}
		}
		probs[o] = p
	}
	return probs
}

// sample draws one outcome from the slot's distribution.
func (s *Slot) sample(rng *rand.Rand) Outcome {
	probs := s.Probabilities()
	return Outcome(randutil.WeightedIndex(rng, probs[:]))
}
