package events

import (
	"github.com/billie-coop/riffle/internal/deck"
	"github.com/billie-coop/riffle/internal/review"
)

// QueueBridge adapts review queue lifecycle callbacks onto the broker,
// keeping the review core free of any broker or UI dependency.
type QueueBridge struct {
	broker *Broker
}

var _ review.Observer[deck.Card] = (*QueueBridge)(nil)

// NewQueueBridge creates a bridge publishing to broker.
func NewQueueBridge(broker *Broker) *QueueBridge {
	return &QueueBridge{broker: broker}
}

// WindowChanged publishes the post-operation window contents.
func (b *QueueBridge) WindowChanged(slots []review.MaterializedSlot[deck.Card]) {
	b.broker.Publish(Event{
		Type:    ReviewWindowEvent,
		Payload: WindowPayload{Slots: slots},
	})
}

// ItemCommitted publishes a committed decision.
func (b *QueueBridge) ItemCommitted(card deck.Card, direction review.Direction) {
	b.broker.Publish(Event{
		Type: ReviewCommittedEvent,
		Payload: DecisionPayload{
			Card:      card,
			Direction: direction,
		},
	})
}

// ItemRestored publishes an undone decision, replaying the direction
// recorded at commit time.
func (b *QueueBridge) ItemRestored(card deck.Card, direction review.Direction) {
	b.broker.Publish(Event{
		Type: ReviewRestoredEvent,
		Payload: DecisionPayload{
			Card:      card,
			Direction: direction,
		},
	})
}

// Exhausted publishes the end-of-deck signal.
func (b *QueueBridge) Exhausted() {
	b.broker.Publish(Event{Type: ReviewExhaustedEvent})
}
