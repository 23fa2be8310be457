package game

// Role identifies a participant in the session.
type Role int

const (
	Dealer Role = iota
	PlayerOne
	PlayerTwo
)

// String returns the display name of the role.
func (r Role) String() string {
	switch r {
	case Dealer:
		return "Dealer"
	case PlayerOne:
		return "Player 1"
	case PlayerTwo:
		return "Player 2"
	default:
		return "Unknown"
	}
}

// IsPlayer reports whether the role takes turns. The dealer never acts;
// it only receives cards.
func (r Role) IsPlayer() bool {
	return r == PlayerOne || r == PlayerTwo
}

// Participant is one hand at the table: the dealer or one of the two
// players. Cards accumulate in reveal order; the score is always the
// sum of the revealed cards.
type Participant struct {
	Role Role
	Hand []int
}

// NewParticipant creates a participant with no revealed cards.
func NewParticipant(role Role) *Participant {
	return &Participant{Role: role}
}

// Reveal appends a card value to the hand.
func (p *Participant) Reveal(card int) {
	p.Hand = append(p.Hand, card)
}

// Total returns the sum of all revealed cards.
func (p *Participant) Total() int {
	total := 0
	for _, c := range p.Hand {
		total += c
	}
	return total
}

// Busted reports whether the participant's total exceeds the target
// score.
func (p *Participant) Busted(target int) bool {
	return p.Total() > target
}
