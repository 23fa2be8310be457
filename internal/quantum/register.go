// Package quantum implements the toy quantum register behind the game:
// per-slot probability distributions built from qubit amplitudes, a
// fixed entanglement link between the two players' slots, and a single
// irreversible joint measurement.
package quantum

import (
	"errors"
	"fmt"
	"math"
	rand "math/rand/v2"
)

// SlotsPerHand is the maximum number of undetermined cards per
// participant.
const SlotsPerHand = 2

var (
	// ErrAlreadyMeasured is returned when Measure is called twice; the
	// collapse is irreversible.
	ErrAlreadyMeasured = errors.New("register already measured")

	// ErrInvalidSlot is returned for a slot index outside 1..SlotsPerHand.
	ErrInvalidSlot = errors.New("invalid slot index")
)

// correlations fixes how player 2's slot outcomes derive from player
// 1's. Slot 1 reverses the bit group end to end; slot 2 uses the
// rotated variant that falls out of the register's bit ordering. The
// tables are fixed at init and never change, whatever happens to the
// feeding distributions.
var correlations = [SlotsPerHand]Permutation{
	{2, 1, 0},
	{1, 2, 0},
}

// Register holds the undetermined card slots for all three
// participants. The dealer's slots are independent and uniform. The
// two players share one feeding distribution per slot: player 1 reads
// the sampled outcome directly, player 2 reads it through the slot's
// fixed bit permutation, making the two perfectly correlated.
type Register struct {
	dealer   [SlotsPerHand]*Slot
	shared   [SlotsPerHand]*Slot
	measured bool
}

// NewRegister prepares a fresh register: uniform dealer slots, and one
// skewed shared distribution per player slot pair.
func NewRegister(rng *rand.Rand) *Register {
	r := &Register{}
	for k := 0; k < SlotsPerHand; k++ {
		r.dealer[k] = NewUniformSlot()
		r.shared[k] = NewSkewedSlot(rng)
	}
	return r
}

// ResetPlayerSlot restores the feeding distribution of player slot
// (1-based) to the even split. Both players own the same feeding
// distribution for a given slot, so a reset by either is the same
// operation; it is idempotent and does not touch the correlation link.
func (r *Register) ResetPlayerSlot(slot int) error {
	if r.measured {
		return ErrAlreadyMeasured
	}
	if slot < 1 || slot > SlotsPerHand {
		return fmt.Errorf("%w: %d", ErrInvalidSlot, slot)
	}
	r.shared[slot-1].Reset()
	return nil
}

// DealerProbabilities returns the dealer's distribution for the given
// slot (1-based).
func (r *Register) DealerProbabilities(slot int) ([SlotOutcomes]float64, error) {
	if slot < 1 || slot > SlotsPerHand {
		return [SlotOutcomes]float64{}, fmt.Errorf("%w: %d", ErrInvalidSlot, slot)
	}
	return r.dealer[slot-1].Probabilities(), nil
}

// PlayerProbabilities returns the distribution player one or two would
// observe for the given slot (both 1-based). Player 2's view is player
// 1's distribution pushed through the slot's fixed permutation.
func (r *Register) PlayerProbabilities(player, slot int) ([SlotOutcomes]float64, error) {
	if slot < 1 || slot > SlotsPerHand {
		return [SlotOutcomes]float64{}, fmt.Errorf("%w: %d", ErrInvalidSlot, slot)
	}
	probs := r.shared[slot-1].Probabilities()
	if player == 1 {
		return probs, nil
	}
	var permuted [SlotOutcomes]float64
	for o := 0; o < SlotOutcomes; o++ {
		permuted[Outcome(o).Permute(correlations[slot-1])] = probs[o]
	}
	return permuted, nil
}

// SkewAngle reports the rotation angle currently applied to the given
// player slot's feeding distribution.
func (r *Register) SkewAngle(slot int) (float64, bool) {
	if slot < 1 || slot > SlotsPerHand {
		return 0, false
	}
	return r.shared[slot-1].SkewAngle()
}

// Measured reports whether the register has collapsed.
func (r *Register) Measured() bool {
	return r.measured
}

// Measurement is the collapsed state of the register: one outcome per
// sampled slot per participant, in slot order.
type Measurement struct {
	Dealer  []Outcome
	Player1 []Outcome
	Player2 []Outcome
}

// Measure collapses the first slots slots of the register in one joint
// sample. Dealer slots are drawn independently; each player slot pair
// is drawn once from the shared distribution, with player 2's outcome
// derived through the slot's fixed permutation. A register can only be
// measured once.
func (r *Register) Measure(rng *rand.Rand, slots int) (Measurement, error) {
	if r.measured {
		return Measurement{}, ErrAlreadyMeasured
	}
	if slots < 1 || slots > SlotsPerHand {
		return Measurement{}, fmt.Errorf("%w: cannot measure %d slots", ErrInvalidSlot, slots)
	}
	for k := 0; k < slots; k++ {
		if err := checkNormalised(r.dealer[k]); err != nil {
			return Measurement{}, fmt.Errorf("dealer slot %d: %w", k+1, err)
		}
		if err := checkNormalised(r.shared[k]); err != nil {
			return Measurement{}, fmt.Errorf("player slot %d: %w", k+1, err)
		}
	}

	m := Measurement{
		Dealer:  make([]Outcome, slots),
		Player1: make([]Outcome, slots),
		Player2: make([]Outcome, slots),
	}
	for k := 0; k < slots; k++ {
		m.Dealer[k] = r.dealer[k].sample(rng)
		m.Player1[k] = r.shared[k].sample(rng)
		m.Player2[k] = m.Player1[k].Permute(correlations[k])
	}
	r.measured = true
	return m, nil
}

// normTolerance bounds the acceptable drift of a distribution's total
// probability away from 1.
const normTolerance = 1e-9

func checkNormalised(s *Slot) error {
	probs := s.Probabilities()
	sum := 0.0
	for _, p := range probs {
		sum += p
	}
	if math.Abs(sum-1) > normTolerance {
		return fmt.Errorf("distribution not normalised: sum=%v", sum)
	}
	return nil
}
