package events

import (
	"github.com/billie-coop/riffle/internal/deck"
	"github.com/billie-coop/riffle/internal/review"
)

// EventType identifies the type of event
type EventType string

const (
	// Review lifecycle events
	ReviewWindowEvent    EventType = "review.window"
	ReviewCommittedEvent EventType = "review.committed"
	ReviewRestoredEvent  EventType = "review.restored"
	ReviewExhaustedEvent EventType = "review.exhausted"

	// Gesture events
	GestureProgressEvent  EventType = "gesture.progress"
	GestureCancelledEvent EventType = "gesture.cancelled"

	// UI events
	StatusMessageEvent EventType = "ui.status"
)

// Event represents an event in the system
type Event struct {
	Type    EventType
	Payload interface{}
}

// Event payload types

type WindowPayload struct {
	Slots []review.MaterializedSlot[deck.Card]
}

type DecisionPayload struct {
	Card      deck.Card
	Direction review.Direction
	Index     int
}

type ProgressPayload struct {
	Progress  float64
	Direction review.Direction
}

type StatusMessagePayload struct {
	Message string
	Type    string // "info", "warning", "error", "success"
}
