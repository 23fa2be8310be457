// Package game implements the core session logic for quantum
// blackjack.
//
// The main type is Session, which owns the state of a single game:
// three participants, the quantum register backing their undetermined
// cards, the two-round turn loop, and the final resolution.
//
// # Basic Usage
//
// Create a session and feed it turn actions:
//
//	s, _ := game.NewSession(42)
//	player, _ := s.CurrentPlayer()
//	s.Apply(player, game.Action{Type: game.Skip})
//	// ...
//	if result, ok := s.Result(); ok {
//	    fmt.Println(result.Winners)
//	}
//
// # Deterministic Testing
//
// All randomness (initial cards, coin tosses, skew angles, sampling)
// flows from the seed given to NewSession, so a seed fully determines
// a session's card stream.
//
// # Architecture
//
// Session delegates responsibilities to specialized components:
//   - quantum.Register: slot distributions, the players' correlation
//     link, and the one-shot joint measurement
//   - EventBus: typed notifications consumed by the presentation layer
//   - Agent: pluggable turn decision makers for automated play
//
// Each session is independent; playing again means building a fresh
// Session value.
package game
