package game

import (
	rand "math/rand/v2"

	"github.com/thisistayeb/QuantumBlackJack/internal/quantum"
)

// ActionType identifies one of the three turn intents.
type ActionType int

const (
	// Skip passes the turn without touching the register.
	Skip ActionType = iota

	// End finishes the game, freezing the measure level at the current
	// round.
	End

	// ResetSlot re-shuffles one of the acting player's slots back to
	// the even split, then passes the turn.
	ResetSlot
)

// String returns the display name of the action type.
func (a ActionType) String() string {
	switch a {
	case Skip:
		return "skip"
	case End:
		return "end"
	case ResetSlot:
		return "re-shuffle"
	default:
		return "unknown"
	}
}

// Action is a single turn command: an intent plus, for re-shuffles,
// the 1-based slot choice.
type Action struct {
	Type ActionType
	Slot int
}

// SessionView is the read-only state handed to an agent when it is
// asked to act. Agents receive immutable state and return an action;
// no state mutation is allowed.
type SessionView struct {
	You          Role
	Round        int
	InitialCard  int
	Distribution [quantum.SlotsPerHand][quantum.SlotOutcomes]float64
}

// Agent represents any entity (human or automated) that can choose a
// turn action for a player.
type Agent interface {
	ChooseAction(view SessionView) Action
}

// ScriptedAgent replays a predetermined action list, skipping once the
// script is exhausted.
type ScriptedAgent struct {
	actions []Action
	index   int
}

// NewScriptedAgent creates an agent that plays the given actions in order.
func NewScriptedAgent(actions ...Action) *ScriptedAgent {
	return &ScriptedAgent{actions: actions}
}

// ChooseAction returns the next scripted action.
func (a *ScriptedAgent) ChooseAction(SessionView) Action {
	if a.index >= len(a.actions) {
		return Action{Type: Skip}
	}
	action := a.actions[a.index]
	a.index++
	return action
}

// RandomAgent picks a uniformly random valid action each turn.
type RandomAgent struct {
	rng *rand.Rand
}

// NewRandomAgent creates an agent driven by the given random source.
func NewRandomAgent(rng *rand.Rand) *RandomAgent {
	return &RandomAgent{rng: rng}
}

// ChooseAction returns one of skip, end, re-shuffle slot 1 or
// re-shuffle slot 2, each with equal probability.
func (a *RandomAgent) ChooseAction(SessionView) Action {
	switch a.rng.IntN(4) {
	case 0:
		return Action{Type: End}
	case 1:
		return Action{Type: ResetSlot, Slot: 1}
	case 2:
		return Action{Type: ResetSlot, Slot: 2}
	default:
		return Action{Type: Skip}
	}
}
