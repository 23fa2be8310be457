package game

import (
	"time"

	"github.com/thisistayeb/QuantumBlackJack/internal/quantum"
)

// EventType represents a game event type with type safety
type EventType string

// EventType constants for session domain events
// These represent events that occur within the game logic
const (
	EventTypeSessionStart   EventType = "session_start"
	EventTypeTurnOrder      EventType = "turn_order"
	EventTypePlayerAction   EventType = "player_action"
	EventTypeActionRejected EventType = "action_rejected"
	EventTypeDistribution   EventType = "distribution"
	EventTypeMeasurement    EventType = "measurement"
	EventTypeDealerDraw     EventType = "dealer_draw"
	EventTypeResult         EventType = "result"
)

// String returns the string representation of the event type
func (et EventType) String() string {
	return string(et)
}

// GameEvent represents any event that occurs during a session
type GameEvent interface {
	EventType() EventType
	Timestamp() time.Time
}

// SessionStartEvent is published once, after the initial classical
// cards are dealt and the register is prepared.
type SessionStartEvent struct {
	InitialCards map[Role]int
	timestamp    time.Time
}

func (e SessionStartEvent) EventType() EventType { return EventTypeSessionStart }
func (e SessionStartEvent) Timestamp() time.Time { return e.timestamp }

// NewSessionStartEvent creates a new session start event
func NewSessionStartEvent(initial map[Role]int) SessionStartEvent {
	cards := make(map[Role]int, len(initial))
	for r, c := range initial {
		cards[r] = c
	}
	return SessionStartEvent{InitialCards: cards, timestamp: time.Now()}
}

// TurnOrderEvent is published at the start of each round after the
// coin toss.
type TurnOrderEvent struct {
	Round     int
	Order     [2]Role
	timestamp time.Time
}

func (e TurnOrderEvent) EventType() EventType { return EventTypeTurnOrder }
func (e TurnOrderEvent) Timestamp() time.Time { return e.timestamp }

// NewTurnOrderEvent creates a new turn order event
func NewTurnOrderEvent(round int, order [2]Role) TurnOrderEvent {
	return TurnOrderEvent{Round: round, Order: order, timestamp: time.Now()}
}

// PlayerActionEvent is published when a player's action is accepted
type PlayerActionEvent struct {
	Player    Role
	Action    Action
	Round     int
	timestamp time.Time
}

func (e PlayerActionEvent) EventType() EventType { return EventTypePlayerAction }
func (e PlayerActionEvent) Timestamp() time.Time { return e.timestamp }

// NewPlayerActionEvent creates a new player action event
func NewPlayerActionEvent(player Role, action Action, round int) PlayerActionEvent {
	return PlayerActionEvent{Player: player, Action: action, Round: round, timestamp: time.Now()}
}

// ActionRejectedEvent is published when an action is refused: out of
// turn, bad slot choice, or submitted after the session ended. The
// session state is unchanged.
type ActionRejectedEvent struct {
	Player    Role
	Action    Action
	Reason    string
	timestamp time.Time
}

func (e ActionRejectedEvent) EventType() EventType { return EventTypeActionRejected }
func (e ActionRejectedEvent) Timestamp() time.Time { return e.timestamp }

// NewActionRejectedEvent creates a new action rejected event
func NewActionRejectedEvent(player Role, action Action, reason string) ActionRejectedEvent {
	return ActionRejectedEvent{Player: player, Action: action, Reason: reason, timestamp: time.Now()}
}

// DistributionEvent is a snapshot of one slot's probability
// distribution, published after initialisation and after any reset.
type DistributionEvent struct {
	Owner     Role
	Slot      int
	Probs     [quantum.SlotOutcomes]float64
	SkewAngle float64
	Skewed    bool
	timestamp time.Time
}

func (e DistributionEvent) EventType() EventType { return EventTypeDistribution }
func (e DistributionEvent) Timestamp() time.Time { return e.timestamp }

// NewDistributionEvent creates a new distribution snapshot event
func NewDistributionEvent(owner Role, slot int, probs [quantum.SlotOutcomes]float64, skewAngle float64, skewed bool) DistributionEvent {
	return DistributionEvent{
		Owner:     owner,
		Slot:      slot,
		Probs:     probs,
		SkewAngle: skewAngle,
		Skewed:    skewed,
		timestamp: time.Now(),
	}
}

// MeasurementEvent is published when the register collapses and the
// quantum cards are revealed.
type MeasurementEvent struct {
	MeasureLevel int
	Hands        map[Role][]int
	timestamp    time.Time
}

func (e MeasurementEvent) EventType() EventType { return EventTypeMeasurement }
func (e MeasurementEvent) Timestamp() time.Time { return e.timestamp }

// NewMeasurementEvent creates a new measurement event
func NewMeasurementEvent(level int, hands map[Role][]int) MeasurementEvent {
	copied := make(map[Role][]int, len(hands))
	for r, h := range hands {
		hand := make([]int, len(h))
		copy(hand, h)
		copied[r] = hand
	}
	return MeasurementEvent{MeasureLevel: level, Hands: copied, timestamp: time.Now()}
}

// DealerDrawEvent is published for each classical card the dealer
// draws below the stands threshold.
type DealerDrawEvent struct {
	Card      int
	Total     int
	timestamp time.Time
}

func (e DealerDrawEvent) EventType() EventType { return EventTypeDealerDraw }
func (e DealerDrawEvent) Timestamp() time.Time { return e.timestamp }

// NewDealerDrawEvent creates a new dealer draw event
func NewDealerDrawEvent(card, total int) DealerDrawEvent {
	return DealerDrawEvent{Card: card, Total: total, timestamp: time.Now()}
}

// ResultEvent is published once, with the final scores and verdict.
type ResultEvent struct {
	Result    Result
	timestamp time.Time
}

func (e ResultEvent) EventType() EventType { return EventTypeResult }
func (e ResultEvent) Timestamp() time.Time { return e.timestamp }

// NewResultEvent creates a new result event
func NewResultEvent(result Result) ResultEvent {
	return ResultEvent{Result: result, timestamp: time.Now()}
}

// EventSubscriber can subscribe to game events
type EventSubscriber interface {
	OnEvent(event GameEvent)
}

// EventBus manages event publishing and subscription
type EventBus interface {
	Subscribe(subscriber EventSubscriber)
	Unsubscribe(subscriber EventSubscriber)
	Publish(event GameEvent)
}

// SimpleEventBus is a basic in-memory event bus implementation
type SimpleEventBus struct {
	subscribers []EventSubscriber
}

// NewEventBus creates a new event bus
func NewEventBus() EventBus {
	return &SimpleEventBus{
		subscribers: make([]EventSubscriber, 0),
	}
}

// Subscribe adds a subscriber to receive events
func (bus *SimpleEventBus) Subscribe(subscriber EventSubscriber) {
	bus.subscribers = append(bus.subscribers, subscriber)
}

// Unsubscribe removes a subscriber from receiving events
func (bus *SimpleEventBus) Unsubscribe(subscriber EventSubscriber) {
	for i, sub := range bus.subscribers {
		if sub == subscriber {
			bus.subscribers = append(bus.subscribers[:i], bus.subscribers[i+1:]...)
			break
		}
	}
}

// Publish sends an event to all subscribers
func (bus *SimpleEventBus) Publish(event GameEvent) {
	for _, subscriber := range bus.subscribers {
		subscriber.OnEvent(event)
	}
}
