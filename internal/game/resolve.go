package game

import (
	"fmt"

	"github.com/thisistayeb/QuantumBlackJack/internal/quantum"
	"github.com/thisistayeb/QuantumBlackJack/internal/randutil"
)

// Result is the final outcome of a session.
type Result struct {
	MeasureLevel int
	Hands        map[Role][]int
	Scores       map[Role]int
	Busted       map[Role]bool

	// Winners holds every non-busted participant with the maximum
	// score, in Dealer, Player 1, Player 2 order. Empty means everyone
	// busted: the house wins.
	Winners []Role
}

// Tie reports whether more than one participant shares the top score.
func (r Result) Tie() bool {
	return len(r.Winners) > 1
}

// HouseWins reports whether every participant busted.
func (r Result) HouseWins() bool {
	return len(r.Winners) == 0
}

// cardValue maps a measured slot outcome to a card value: the bit
// group is reversed before being read as a binary integer, then 1 is
// added, yielding 1..SlotOutcomes.
func cardValue(o quantum.Outcome) int {
	v := 0
	for i := 0; i < quantum.SlotBits; i++ {
		v = v<<1 | int(o.Bit(i))
	}
	return v + 1
}

// resolve runs the end-of-game pipeline: collapse the register, derive
// the quantum cards, let the dealer draw up to the stands threshold,
// then score and announce. It runs synchronously and exactly once,
// when the session enters Ended.
func (s *Session) resolve() error {
	slots := s.measureLevel - 1
	m, err := s.register.Measure(s.rng, slots)
	if err != nil {
		s.aborted = true
		s.logger.Error("Measurement failed, session aborted", "error", err)
		return fmt.Errorf("measurement failed: %w", err)
	}

	dealer := s.participants[Dealer]
	p1 := s.participants[PlayerOne]
	p2 := s.participants[PlayerTwo]

	// Players take every sampled slot. The dealer always takes slot 1;
	// slot 2 is revealed only while the dealer is still below the
	// stands threshold.
	for k := 0; k < slots; k++ {
		p1.Reveal(cardValue(m.Player1[k]))
		p2.Reveal(cardValue(m.Player2[k]))
	}
	dealer.Reveal(cardValue(m.Dealer[0]))
	if slots == quantum.SlotsPerHand && dealer.Total() < s.rules.StandsThreshold {
		dealer.Reveal(cardValue(m.Dealer[1]))
	}

	hands := make(map[Role][]int, 3)
	for role, p := range s.participants {
		hand := make([]int, len(p.Hand))
		copy(hand, p.Hand)
		hands[role] = hand
	}
	s.logger.Debug("Register measured",
		"measureLevel", s.measureLevel,
		"dealer", hands[Dealer],
		"player1", hands[PlayerOne],
		"player2", hands[PlayerTwo])
	s.bus.Publish(NewMeasurementEvent(s.measureLevel, hands))
	s.wait()

	// Dealer auto-draw: classical cards until the threshold is met.
	for dealer.Total() < s.rules.StandsThreshold {
		card := randutil.CardFace(s.rng, s.rules.CardFaces)
		dealer.Reveal(card)
		s.logger.Debug("Dealer draws", "card", card, "total", dealer.Total())
		s.bus.Publish(NewDealerDrawEvent(card, dealer.Total()))
		s.wait()
	}

	result := s.computeResult()
	s.result = &result
	s.logger.Info("Session resolved",
		"dealer", result.Scores[Dealer],
		"player1", result.Scores[PlayerOne],
		"player2", result.Scores[PlayerTwo],
		"winners", len(result.Winners))
	s.bus.Publish(NewResultEvent(result))
	return nil
}

// computeResult totals every hand and picks the winners: the highest
// non-busted score, with ties reported as shared wins and an all-bust
// table going to the house.
func (s *Session) computeResult() Result {
	result := Result{
		MeasureLevel: s.measureLevel,
		Hands:        make(map[Role][]int, 3),
		Scores:       make(map[Role]int, 3),
		Busted:       make(map[Role]bool, 3),
	}

	best := 0
	for _, role := range []Role{Dealer, PlayerOne, PlayerTwo} {
		p := s.participants[role]
		hand := make([]int, len(p.Hand))
		copy(hand, p.Hand)
		result.Hands[role] = hand
		result.Scores[role] = p.Total()
		result.Busted[role] = p.Busted(s.rules.TargetScore)
		if !result.Busted[role] && p.Total() > best {
			best = p.Total()
		}
	}
	if best > 0 {
		for _, role := range []Role{Dealer, PlayerOne, PlayerTwo} {
			if !result.Busted[role] && result.Scores[role] == best {
				result.Winners = append(result.Winners, role)
			}
		}
	}
	return result
}
