package game

import (
	"fmt"

	"github.com/thisistayeb/QuantumBlackJack/internal/quantum"
)

// Rules holds the table constants. The defaults are the standard game;
// they can be overridden from configuration within the limits enforced
// by Validate.
type Rules struct {
	// CardFaces is the number of card values (1..CardFaces). Tied to
	// the slot width of the quantum register.
	CardFaces int

	// Rounds is the number of turn rounds before the session ends by
	// default.
	Rounds int

	// StandsThreshold is the dealer total at or above which the dealer
	// stops drawing.
	StandsThreshold int

	// TargetScore is the maximum non-busting total.
	TargetScore int
}

// DefaultRules returns the standard table: faces 1..8, two rounds,
// dealer stands at 14, bust above 17.
func DefaultRules() Rules {
	return Rules{
		CardFaces:       quantum.SlotOutcomes,
		Rounds:          2,
		StandsThreshold: 14,
		TargetScore:     17,
	}
}

// Validate checks the rules for internal consistency.
func (r Rules) Validate() error {
	if r.CardFaces != quantum.SlotOutcomes {
		return fmt.Errorf("card faces must be %d to match the %d-qubit slots, got %d",
			quantum.SlotOutcomes, quantum.SlotBits, r.CardFaces)
	}
	if r.Rounds != 2 {
		return fmt.Errorf("rounds must be 2, got %d", r.Rounds)
	}
	if r.StandsThreshold <= 0 {
		return fmt.Errorf("stands threshold must be positive, got %d", r.StandsThreshold)
	}
	if r.TargetScore < r.StandsThreshold {
		return fmt.Errorf("target score %d below stands threshold %d", r.TargetScore, r.StandsThreshold)
	}
	return nil
}
