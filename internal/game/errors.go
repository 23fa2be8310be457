package game

import "errors"

var (
	// ErrNotYourTurn is returned when a player acts out of turn. The
	// session state is unchanged.
	ErrNotYourTurn = errors.New("not your turn")

	// ErrSessionOver is returned for any action submitted after the
	// session has ended.
	ErrSessionOver = errors.New("session is over")

	// ErrInvalidSlot is returned for a re-shuffle targeting a slot
	// other than 1 or 2.
	ErrInvalidSlot = errors.New("invalid slot choice")

	// ErrInvalidAction is returned for an unrecognised action type.
	ErrInvalidAction = errors.New("invalid action")
)
