package game

import (
	"fmt"
	"sort"
	"strings"
)

// FormattingOptions controls how events are formatted for different contexts
type FormattingOptions struct {
	ShowSkewAngles bool // Include the raw skew rotation angle in snapshots
	ShowTimestamps bool // Prefix lines with the event time
}

// EventFormatter provides centralized formatting for all game events
type EventFormatter struct {
	opts FormattingOptions
}

// NewEventFormatter creates a new event formatter with the given options
func NewEventFormatter(opts FormattingOptions) *EventFormatter {
	return &EventFormatter{opts: opts}
}

// Format renders any game event into a human-readable line.
func (ef *EventFormatter) Format(event GameEvent) string {
	var text string
	switch e := event.(type) {
	case SessionStartEvent:
		text = ef.FormatSessionStart(e)
	case TurnOrderEvent:
		text = ef.FormatTurnOrder(e)
	case PlayerActionEvent:
		text = ef.FormatPlayerAction(e)
	case ActionRejectedEvent:
		text = ef.FormatActionRejected(e)
	case DistributionEvent:
		text = ef.FormatDistribution(e)
	case MeasurementEvent:
		text = ef.FormatMeasurement(e)
	case DealerDrawEvent:
		text = ef.FormatDealerDraw(e)
	case ResultEvent:
		text = ef.FormatResult(e)
	default:
		text = fmt.Sprintf("[%s]", event.EventType())
	}
	if ef.opts.ShowTimestamps {
		return fmt.Sprintf("%s %s", event.Timestamp().Format("15:04:05"), text)
	}
	return text
}

// FormatSessionStart formats the initial deal announcement.
func (ef *EventFormatter) FormatSessionStart(event SessionStartEvent) string {
	roles := make([]Role, 0, len(event.InitialCards))
	for role := range event.InitialCards {
		roles = append(roles, role)
	}
	sort.Slice(roles, func(i, j int) bool { return roles[i] < roles[j] })

	parts := make([]string, 0, len(roles))
	for _, role := range roles {
		parts = append(parts, fmt.Sprintf("%s %d", role, event.InitialCards[role]))
	}
	return fmt.Sprintf("Cards dealt: %s", strings.Join(parts, ", "))
}

// FormatTurnOrder formats the coin toss announcement for a round.
func (ef *EventFormatter) FormatTurnOrder(event TurnOrderEvent) string {
	return fmt.Sprintf("Round %d: %s goes first, then %s", event.Round, event.Order[0], event.Order[1])
}

// FormatPlayerAction formats an accepted player action.
func (ef *EventFormatter) FormatPlayerAction(event PlayerActionEvent) string {
	switch event.Action.Type {
	case Skip:
		return fmt.Sprintf("%s skips", event.Player)
	case End:
		return fmt.Sprintf("%s ends the game in round %d", event.Player, event.Round)
	case ResetSlot:
		return fmt.Sprintf("%s re-shuffles slot %d", event.Player, event.Action.Slot)
	default:
		return fmt.Sprintf("%s: %s", event.Player, event.Action.Type)
	}
}

// FormatActionRejected formats a rejected action notification.
func (ef *EventFormatter) FormatActionRejected(event ActionRejectedEvent) string {
	return fmt.Sprintf("%s cannot %s: %s", event.Player, event.Action.Type, event.Reason)
}

// FormatDistribution formats a slot distribution snapshot.
func (ef *EventFormatter) FormatDistribution(event DistributionEvent) string {
	parts := make([]string, len(event.Probs))
	for i, p := range event.Probs {
		parts[i] = fmt.Sprintf("%d:%.3f", i+1, p)
	}
	text := fmt.Sprintf("%s slot %d odds: %s", event.Owner, event.Slot, strings.Join(parts, " "))
	if ef.opts.ShowSkewAngles && event.Skewed {
		text += fmt.Sprintf(" (skew %.3f rad)", event.SkewAngle)
	}
	return text
}

// FormatMeasurement formats the collapse announcement.
func (ef *EventFormatter) FormatMeasurement(event MeasurementEvent) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Measured at %d cards.", event.MeasureLevel)
	for _, role := range []Role{Dealer, PlayerOne, PlayerTwo} {
		if hand, ok := event.Hands[role]; ok {
			fmt.Fprintf(&b, " %s: %s.", role, formatHand(hand))
		}
	}
	return b.String()
}

// FormatDealerDraw formats one dealer draw announcement.
func (ef *EventFormatter) FormatDealerDraw(event DealerDrawEvent) string {
	return fmt.Sprintf("Dealer draws %d (total %d)", event.Card, event.Total)
}

// FormatResult formats the final verdict.
func (ef *EventFormatter) FormatResult(event ResultEvent) string {
	var b strings.Builder
	for _, role := range []Role{Dealer, PlayerOne, PlayerTwo} {
		status := ""
		if event.Result.Busted[role] {
			status = " (bust)"
		}
		fmt.Fprintf(&b, "%s: %s = %d%s\n", role, formatHand(event.Result.Hands[role]), event.Result.Scores[role], status)
	}
	b.WriteString(ef.FormatVerdict(event.Result))
	return b.String()
}

// FormatVerdict renders the winner line on its own, for the result
// screen.
func (ef *EventFormatter) FormatVerdict(result Result) string {
	switch {
	case result.HouseWins():
		return "Everyone busted - the house wins!"
	case result.Tie():
		names := make([]string, len(result.Winners))
		for i, role := range result.Winners {
			names[i] = role.String()
		}
		return fmt.Sprintf("Tie between %s with %d", strings.Join(names, " and "), result.Scores[result.Winners[0]])
	default:
		winner := result.Winners[0]
		return fmt.Sprintf("%s wins with %d!", winner, result.Scores[winner])
	}
}

// formatHand renders a hand as "a + b + c".
func formatHand(hand []int) string {
	parts := make([]string, len(hand))
	for i, c := range hand {
		parts[i] = fmt.Sprintf("%d", c)
	}
	return strings.Join(parts, " + ")
}
