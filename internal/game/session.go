package game

import (
	"fmt"
	"io"
	rand "math/rand/v2"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/thisistayeb/QuantumBlackJack/internal/quantum"
	"github.com/thisistayeb/QuantumBlackJack/internal/randutil"
)

// State is the turn controller's state.
type State int

const (
	Round1Active State = iota
	Round2Active
	Ended
)

// String returns the display name of the state.
func (s State) String() string {
	switch s {
	case Round1Active:
		return "round 1"
	case Round2Active:
		return "round 2"
	case Ended:
		return "ended"
	default:
		return "unknown"
	}
}

// Session owns the full state of one game: the participants, the
// quantum register, the round/turn bookkeeping and, once the game
// ends, the result. A session is single use; start a new one to play
// again.
type Session struct {
	rules  Rules
	rng    *rand.Rand
	logger *log.Logger
	bus    EventBus
	clock  quartz.Clock
	pace   time.Duration

	register     *quantum.Register
	participants map[Role]*Participant

	state        State
	round        int
	order        [2]Role
	turn         int
	measureLevel int
	result       *Result
	aborted      bool
}

// SessionOption configures a session at construction time.
type SessionOption func(*Session)

// WithRules overrides the default table rules.
func WithRules(rules Rules) SessionOption {
	return func(s *Session) { s.rules = rules }
}

// WithLogger sets the session logger.
func WithLogger(logger *log.Logger) SessionOption {
	return func(s *Session) { s.logger = logger }
}

// WithEventBus sets the event bus. Subscribe before calling NewSession
// to receive the initial deal and distribution snapshots.
func WithEventBus(bus EventBus) SessionOption {
	return func(s *Session) { s.bus = bus }
}

// WithPacing inserts a cosmetic delay between announced phases of the
// resolution, driven by the given clock. Pacing never changes game
// outcomes.
func WithPacing(clock quartz.Clock, delay time.Duration) SessionOption {
	return func(s *Session) {
		s.clock = clock
		s.pace = delay
	}
}

// NewSession deals the initial classical cards, prepares the quantum
// register and opens round 1 with a coin-tossed turn order.
func NewSession(seed int64, opts ...SessionOption) (*Session, error) {
	s := &Session{
		rules:        DefaultRules(),
		logger:       log.New(io.Discard),
		bus:          NewEventBus(),
		clock:        quartz.NewReal(),
		participants: make(map[Role]*Participant, 3),
		state:        Round1Active,
		round:        1,
	}
	for _, opt := range opts {
		opt(s)
	}
	if err := s.rules.Validate(); err != nil {
		return nil, fmt.Errorf("invalid rules: %w", err)
	}

	s.rng = randutil.New(seed)
	s.register = quantum.NewRegister(s.rng)

	initial := make(map[Role]int, 3)
	for _, role := range []Role{Dealer, PlayerOne, PlayerTwo} {
		p := NewParticipant(role)
		p.Reveal(randutil.CardFace(s.rng, s.rules.CardFaces))
		s.participants[role] = p
		initial[role] = p.Hand[0]
	}
	s.logger.Debug("Session started",
		"seed", seed,
		"dealer", initial[Dealer],
		"player1", initial[PlayerOne],
		"player2", initial[PlayerTwo])

	s.bus.Publish(NewSessionStartEvent(initial))
	s.publishDistributions()

	s.order = s.tossTurnOrder()
	s.bus.Publish(NewTurnOrderEvent(s.round, s.order))
	return s, nil
}

// tossTurnOrder decides who acts first this round with an unbiased
// coin toss.
func (s *Session) tossTurnOrder() [2]Role {
	if randutil.CoinToss(s.rng) {
		return [2]Role{PlayerTwo, PlayerOne}
	}
	return [2]Role{PlayerOne, PlayerTwo}
}

// publishDistributions snapshots every pending slot's distribution.
func (s *Session) publishDistributions() {
	for slot := 1; slot <= quantum.SlotsPerHand; slot++ {
		if probs, err := s.register.DealerProbabilities(slot); err == nil {
			s.bus.Publish(NewDistributionEvent(Dealer, slot, probs, 0, false))
		}
		theta, skewed := s.register.SkewAngle(slot)
		for _, player := range []Role{PlayerOne, PlayerTwo} {
			if probs, err := s.register.PlayerProbabilities(playerIndex(player), slot); err == nil {
				s.bus.Publish(NewDistributionEvent(player, slot, probs, theta, skewed))
			}
		}
	}
}

// publishSlotDistribution snapshots one player slot pair after a reset.
func (s *Session) publishSlotDistribution(slot int) {
	theta, skewed := s.register.SkewAngle(slot)
	for _, player := range []Role{PlayerOne, PlayerTwo} {
		if probs, err := s.register.PlayerProbabilities(playerIndex(player), slot); err == nil {
			s.bus.Publish(NewDistributionEvent(player, slot, probs, theta, skewed))
		}
	}
}

// State returns the turn controller state.
func (s *Session) State() State {
	return s.state
}

// Round returns the current round number (1 or 2).
func (s *Session) Round() int {
	return s.round
}

// TurnOrder returns this round's turn order.
func (s *Session) TurnOrder() [2]Role {
	return s.order
}

// CurrentPlayer returns the role whose turn it is. ok is false once
// the session has ended.
func (s *Session) CurrentPlayer() (Role, bool) {
	if s.state == Ended {
		return Dealer, false
	}
	return s.order[s.turn], true
}

// MeasureLevel returns the frozen hand size (2 or 3), or 0 while the
// game is still running.
func (s *Session) MeasureLevel() int {
	return s.measureLevel
}

// Participant returns the participant for the given role.
func (s *Session) Participant(role Role) *Participant {
	return s.participants[role]
}

// Result returns the final result once the session has ended.
func (s *Session) Result() (*Result, bool) {
	if s.result == nil {
		return nil, false
	}
	return s.result, true
}

// Aborted reports whether the session was killed by a simulation
// failure. An aborted session has no result; start a fresh one.
func (s *Session) Aborted() bool {
	return s.aborted
}

// PlayerDistribution returns the distribution the given player
// currently observes for their slot (both 1-based for players 1 and 2).
func (s *Session) PlayerDistribution(player Role, slot int) ([quantum.SlotOutcomes]float64, error) {
	if !player.IsPlayer() {
		return s.register.DealerProbabilities(slot)
	}
	return s.register.PlayerProbabilities(playerIndex(player), slot)
}

// View builds the read-only snapshot handed to an agent acting for the
// given player.
func (s *Session) View(player Role) SessionView {
	view := SessionView{
		You:         player,
		Round:       s.round,
		InitialCard: s.participants[player].Hand[0],
	}
	for slot := 1; slot <= quantum.SlotsPerHand; slot++ {
		if probs, err := s.PlayerDistribution(player, slot); err == nil {
			view.Distribution[slot-1] = probs
		}
	}
	return view
}

// Apply processes one turn action for the given player. Invalid
// actions (out of turn, bad slot, after the end) are rejected without
// any state change: a sentinel error is returned and an
// ActionRejectedEvent is published for the presentation layer.
func (s *Session) Apply(player Role, action Action) error {
	if s.state == Ended {
		s.reject(player, action, "the game is already over")
		return ErrSessionOver
	}
	current := s.order[s.turn]
	if player != current {
		s.reject(player, action, fmt.Sprintf("it is %s's turn", current))
		return ErrNotYourTurn
	}

	switch action.Type {
	case Skip:
		s.logger.Debug("Player skips", "player", player, "round", s.round)
		s.bus.Publish(NewPlayerActionEvent(player, action, s.round))
		return s.advanceTurn()

	case ResetSlot:
		if action.Slot < 1 || action.Slot > quantum.SlotsPerHand {
			s.reject(player, action, fmt.Sprintf("slot must be 1 or 2, got %d", action.Slot))
			return ErrInvalidSlot
		}
		if err := s.register.ResetPlayerSlot(action.Slot); err != nil {
			return fmt.Errorf("reset slot %d: %w", action.Slot, err)
		}
		s.logger.Debug("Player re-shuffles slot", "player", player, "slot", action.Slot, "round", s.round)
		s.bus.Publish(NewPlayerActionEvent(player, action, s.round))
		s.publishSlotDistribution(action.Slot)
		return s.advanceTurn()

	case End:
		s.measureLevel = s.round + 1
		s.state = Ended
		s.logger.Debug("Player ends the game", "player", player, "round", s.round, "measureLevel", s.measureLevel)
		s.bus.Publish(NewPlayerActionEvent(player, action, s.round))
		return s.resolve()

	default:
		s.reject(player, action, "unrecognised action")
		return ErrInvalidAction
	}
}

// advanceTurn moves to the next player, rolling over rounds. Both
// players skipping round 2 ends the game at the default 3-card level.
func (s *Session) advanceTurn() error {
	s.turn++
	if s.turn < len(s.order) {
		return nil
	}
	if s.round < s.rules.Rounds {
		s.round++
		s.state = Round2Active
		s.turn = 0
		s.order = s.tossTurnOrder()
		s.logger.Debug("Round complete", "round", s.round-1, "nextOrder", fmt.Sprintf("%s, %s", s.order[0], s.order[1]))
		s.bus.Publish(NewTurnOrderEvent(s.round, s.order))
		return nil
	}
	// Nobody ended it: full hands for everyone.
	s.measureLevel = s.rules.Rounds + 1
	s.state = Ended
	s.logger.Debug("All rounds complete", "measureLevel", s.measureLevel)
	return s.resolve()
}

// reject publishes an explanatory no-op notification.
func (s *Session) reject(player Role, action Action, reason string) {
	s.logger.Debug("Action rejected", "player", player, "action", action.Type, "reason", reason)
	s.bus.Publish(NewActionRejectedEvent(player, action, reason))
}

// wait inserts the cosmetic pacing delay, if one is configured.
func (s *Session) wait() {
	if s.pace <= 0 {
		return
	}
	timer := s.clock.NewTimer(s.pace)
	defer timer.Stop()
	<-timer.C
}

// playerIndex maps a player role to the register's 1-based player
// numbering.
func playerIndex(player Role) int {
	if player == PlayerTwo {
		return 2
	}
	return 1
}

// PlayAuto drives the session to completion using the given agents.
// Used by the simulator and tests; the TUI feeds Apply directly.
func (s *Session) PlayAuto(agents map[Role]Agent) (*Result, error) {
	for {
		player, ok := s.CurrentPlayer()
		if !ok {
			break
		}
		agent := agents[player]
		if agent == nil {
			return nil, fmt.Errorf("no agent for %s", player)
		}
		if err := s.Apply(player, agent.ChooseAction(s.View(player))); err != nil {
			return nil, fmt.Errorf("%s: %w", player, err)
		}
	}
	result, ok := s.Result()
	if !ok {
		return nil, fmt.Errorf("session ended without a result")
	}
	return result, nil
}
