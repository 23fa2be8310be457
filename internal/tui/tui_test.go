package tui

import (
	"io"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thisistayeb/QuantumBlackJack/internal/game"
)

func newTestModel(t *testing.T) *Model {
	t.Helper()
	m, err := New(Options{
		Seed:   42,
		Rules:  game.DefaultRules(),
		Logger: log.New(io.Discard),
	})
	require.NoError(t, err)
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return m
}

func press(m *Model, key string) {
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)})
}

func TestModel_StartsWithLiveSession(t *testing.T) {
	m := newTestModel(t)

	require.NotNil(t, m.session)
	assert.Equal(t, game.Round1Active, m.session.State())
	assert.NotEmpty(t, m.gameLog, "initial deal and turn order are logged")
	assert.Len(t, m.dists, 4, "one bar per player slot")
}

func TestModel_SkipKeysDriveSessionToEnd(t *testing.T) {
	m := newTestModel(t)

	for i := 0; i < 4; i++ {
		press(m, "s")
	}
	assert.Equal(t, game.Ended, m.session.State())
	_, ok := m.session.Result()
	assert.True(t, ok)
}

func TestModel_EndKeyEndsInRoundOne(t *testing.T) {
	m := newTestModel(t)

	press(m, "e")
	assert.Equal(t, game.Ended, m.session.State())
	assert.Equal(t, 2, m.session.MeasureLevel())
}

func TestModel_ReshuffleKeyConsumesTurn(t *testing.T) {
	m := newTestModel(t)
	first, ok := m.session.CurrentPlayer()
	require.True(t, ok)

	press(m, "1")
	next, ok := m.session.CurrentPlayer()
	require.True(t, ok)
	assert.NotEqual(t, first, next)
}

func TestModel_UnknownKeysIgnoredDuringPlay(t *testing.T) {
	m := newTestModel(t)

	press(m, "x")
	press(m, "n")
	assert.Equal(t, game.Round1Active, m.session.State())
}

func TestModel_NewGameAfterEnd(t *testing.T) {
	m := newTestModel(t)

	press(m, "e")
	require.Equal(t, game.Ended, m.session.State())

	press(m, "n")
	assert.Equal(t, game.Round1Active, m.session.State())
	for _, role := range []game.Role{game.Dealer, game.PlayerOne, game.PlayerTwo} {
		assert.Len(t, m.session.Participant(role).Hand, 1, "fresh session state for %s", role)
	}
}

func TestModel_ViewRendersStatus(t *testing.T) {
	m := newTestModel(t)

	view := m.View()
	assert.Contains(t, view, "Quantum Blackjack")
	assert.Contains(t, view, "Round 1")

	for i := 0; i < 4; i++ {
		press(m, "s")
	}
	view = m.View()
	assert.Contains(t, view, "=")
}

func TestModel_QuitKey(t *testing.T) {
	m := newTestModel(t)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	assert.NotNil(t, cmd)
	assert.Empty(t, m.View())
}
