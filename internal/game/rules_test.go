package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRules(t *testing.T) {
	rules := DefaultRules()
	require.NoError(t, rules.Validate())
	assert.Equal(t, 8, rules.CardFaces)
	assert.Equal(t, 2, rules.Rounds)
	assert.Equal(t, 14, rules.StandsThreshold)
	assert.Equal(t, 17, rules.TargetScore)
}

func TestRules_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Rules)
	}{
		{"wrong card faces", func(r *Rules) { r.CardFaces = 10 }},
		{"wrong rounds", func(r *Rules) { r.Rounds = 3 }},
		{"zero stands threshold", func(r *Rules) { r.StandsThreshold = 0 }},
		{"target below stands", func(r *Rules) { r.TargetScore = 10 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rules := DefaultRules()
			tt.mutate(&rules)
			assert.Error(t, rules.Validate())
		})
	}
}

func TestParticipant_TotalAndBust(t *testing.T) {
	p := NewParticipant(PlayerOne)
	assert.Equal(t, 0, p.Total())

	p.Reveal(8)
	p.Reveal(6)
	p.Reveal(3)
	assert.Equal(t, 17, p.Total())
	assert.False(t, p.Busted(17), "exactly on target is not a bust")

	p.Reveal(1)
	assert.True(t, p.Busted(17))
}

func TestRole_String(t *testing.T) {
	assert.Equal(t, "Dealer", Dealer.String())
	assert.Equal(t, "Player 1", PlayerOne.String())
	assert.Equal(t, "Player 2", PlayerTwo.String())
	assert.False(t, Dealer.IsPlayer())
	assert.True(t, PlayerOne.IsPlayer())
}
