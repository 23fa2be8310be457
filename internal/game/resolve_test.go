package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thisistayeb/QuantumBlackJack/internal/quantum"
)

func TestCardValue(t *testing.T) {
	// The bit group is reversed before being read as an integer, then
	// incremented: outcome b2b1b0 reads as b0b1b2 + 1.
	tests := []struct {
		outcome quantum.Outcome
		want    int
	}{
		{0b000, 1},
		{0b001, 5}, // bit 0 set reads as 100
		{0b010, 3},
		{0b100, 2}, // bit 2 set reads as 001
		{0b011, 7},
		{0b111, 8},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, cardValue(tt.outcome), "outcome %03b", tt.outcome)
	}
}

func TestCardValue_CoversAllFaces(t *testing.T) {
	seen := map[int]bool{}
	for o := 0; o < quantum.SlotOutcomes; o++ {
		v := cardValue(quantum.Outcome(o))
		require.GreaterOrEqual(t, v, 1)
		require.LessOrEqual(t, v, 8)
		seen[v] = true
	}
	assert.Len(t, seen, 8, "card derivation is a bijection onto 1..8")
}

// endImmediately runs a session to its end in round 1.
func endImmediately(t *testing.T, seed int64) *Session {
	t.Helper()
	s := newTestSession(t, seed)
	player, ok := s.CurrentPlayer()
	require.True(t, ok)
	require.NoError(t, s.Apply(player, Action{Type: End}))
	return s
}

// skipToDefaultEnd runs a session through both rounds with all skips.
func skipToDefaultEnd(t *testing.T, seed int64) *Session {
	t.Helper()
	s := newTestSession(t, seed)
	for i := 0; i < 4; i++ {
		player, ok := s.CurrentPlayer()
		require.True(t, ok)
		require.NoError(t, s.Apply(player, Action{Type: Skip}))
	}
	return s
}

func TestResolve_DealerAutoDrawBoundary(t *testing.T) {
	// The dealer must keep drawing strictly below 14 and stop at or
	// above it: every proper prefix of the dealer's hand past the
	// first card sums below the threshold, and the final total does
	// not.
	for seed := int64(0); seed < 300; seed++ {
		s := skipToDefaultEnd(t, seed)
		result, ok := s.Result()
		require.True(t, ok, "seed %d", seed)

		hand := result.Hands[Dealer]
		total := 0
		for i, card := range hand {
			if i >= 1 {
				// A further card was revealed, so the running total
				// before it was below the threshold.
				require.Less(t, total, 14, "seed %d: dealer drew at total %d", seed, total)
			}
			total += card
		}
		require.GreaterOrEqual(t, total, 14, "seed %d: dealer stood below the threshold", seed)
		require.Equal(t, total, result.Scores[Dealer])
	}
}

func TestResolve_TwoCardMeasureSkipsSlotTwo(t *testing.T) {
	for seed := int64(0); seed < 100; seed++ {
		s := endImmediately(t, seed)
		result, ok := s.Result()
		require.True(t, ok)

		require.Equal(t, 2, result.MeasureLevel)
		assert.Len(t, result.Hands[PlayerOne], 2)
		assert.Len(t, result.Hands[PlayerTwo], 2)
		// Dealer has initial + slot 1 + any classical draws; the hand
		// can be longer but the players' never are.
		assert.GreaterOrEqual(t, len(result.Hands[Dealer]), 2)
	}
}

func TestResolve_PlayerCorrelationIsFunctional(t *testing.T) {
	// Player 2's slot-k card must be a fixed bijection of player 1's
	// slot-k card: the same input card always maps to the same output
	// card, across independent sessions.
	for k := 0; k < 2; k++ {
		mapping := map[int]int{}
		for seed := int64(0); seed < 400; seed++ {
			s := skipToDefaultEnd(t, seed)
			result, ok := s.Result()
			require.True(t, ok)

			p1Card := result.Hands[PlayerOne][k+1]
			p2Card := result.Hands[PlayerTwo][k+1]
			if prev, seen := mapping[p1Card]; seen {
				require.Equal(t, prev, p2Card,
					"slot %d: player 1 card %d mapped to both %d and %d", k+1, p1Card, prev, p2Card)
			} else {
				mapping[p1Card] = p2Card
			}
		}
		// Bijection: no two inputs share an output.
		outputs := map[int]bool{}
		for _, out := range mapping {
			require.False(t, outputs[out], "slot %d mapping not injective", k+1)
			outputs[out] = true
		}
	}
}

func TestResolve_ScoresAreHandSums(t *testing.T) {
	for seed := int64(0); seed < 50; seed++ {
		s := skipToDefaultEnd(t, seed)
		result, ok := s.Result()
		require.True(t, ok)
		for _, role := range []Role{Dealer, PlayerOne, PlayerTwo} {
			sum := 0
			for _, c := range result.Hands[role] {
				sum += c
			}
			assert.Equal(t, sum, result.Scores[role], "%s", role)
			assert.Equal(t, sum > 17, result.Busted[role], "%s", role)
		}
	}
}

func TestResolve_WinnersAreMaxNonBusted(t *testing.T) {
	for seed := int64(0); seed < 200; seed++ {
		s := skipToDefaultEnd(t, seed)
		result, ok := s.Result()
		require.True(t, ok)

		best := 0
		for _, role := range []Role{Dealer, PlayerOne, PlayerTwo} {
			if !result.Busted[role] && result.Scores[role] > best {
				best = result.Scores[role]
			}
		}
		if best == 0 {
			assert.True(t, result.HouseWins(), "seed %d", seed)
			continue
		}
		require.NotEmpty(t, result.Winners, "seed %d", seed)
		for _, winner := range result.Winners {
			assert.False(t, result.Busted[winner])
			assert.Equal(t, best, result.Scores[winner])
		}
	}
}

// fixedSession builds an ended session with predetermined hands, for
// scoring scenarios that seeded play cannot force.
func fixedSession(hands map[Role][]int) *Session {
	s := &Session{
		rules:        DefaultRules(),
		participants: make(map[Role]*Participant, 3),
		measureLevel: 3,
	}
	for role, hand := range hands {
		p := NewParticipant(role)
		for _, c := range hand {
			p.Reveal(c)
		}
		s.participants[role] = p
	}
	return s
}

func TestComputeResult_AllBustIsHouseWin(t *testing.T) {
	s := fixedSession(map[Role][]int{
		Dealer:    {8, 8, 3}, // 19
		PlayerOne: {8, 8, 6}, // 22
		PlayerTwo: {8, 7, 3}, // 18
	})
	result := s.computeResult()

	assert.True(t, result.Busted[Dealer])
	assert.True(t, result.Busted[PlayerOne])
	assert.True(t, result.Busted[PlayerTwo])
	assert.True(t, result.HouseWins())
	assert.Empty(t, result.Winners)
}

func TestComputeResult_ExactTieNamesBothPlayers(t *testing.T) {
	s := fixedSession(map[Role][]int{
		Dealer:    {8, 8, 6}, // 22, busted
		PlayerOne: {8, 5, 3}, // 16
		PlayerTwo: {8, 4, 4}, // 16
	})
	result := s.computeResult()

	assert.True(t, result.Tie())
	assert.Equal(t, []Role{PlayerOne, PlayerTwo}, result.Winners)
}

func TestComputeResult_SeventeenIsNotABust(t *testing.T) {
	s := fixedSession(map[Role][]int{
		Dealer:    {8, 8, 2}, // 18, busted
		PlayerOne: {8, 6, 3}, // 17, exactly on target
		PlayerTwo: {8, 4, 3}, // 15
	})
	result := s.computeResult()

	assert.False(t, result.Busted[PlayerOne])
	assert.Equal(t, []Role{PlayerOne}, result.Winners)
}

func TestComputeResult_DealerCanWin(t *testing.T) {
	s := fixedSession(map[Role][]int{
		Dealer:    {8, 6, 3}, // 17
		PlayerOne: {8, 5, 3}, // 16
		PlayerTwo: {8, 8, 6}, // 22, busted
	})
	result := s.computeResult()

	assert.Equal(t, []Role{Dealer}, result.Winners)
	assert.False(t, result.Tie())
}

func TestResolve_EmitsMeasurementAndResultEvents(t *testing.T) {
	collector := &eventCollector{}
	bus := NewEventBus()
	bus.Subscribe(collector)
	s, err := NewSession(42, WithEventBus(bus))
	require.NoError(t, err)

	player, ok := s.CurrentPlayer()
	require.True(t, ok)
	require.NoError(t, s.Apply(player, Action{Type: End}))

	measurements := collector.ofType(EventTypeMeasurement)
	require.Len(t, measurements, 1)
	assert.Equal(t, 2, measurements[0].(MeasurementEvent).MeasureLevel)

	results := collector.ofType(EventTypeResult)
	require.Len(t, results, 1)

	dealer := s.Participant(Dealer)
	draws := collector.ofType(EventTypeDealerDraw)
	assert.Len(t, draws, len(dealer.Hand)-2, "one event per classical draw")
}
