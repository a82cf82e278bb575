package events

import (
	"sync"
)

const defaultBufferSize = 16

// Broker manages event distribution. Components subscribe to the event
// types they care about and receive them on a buffered channel; the
// review core publishes without any compile-time knowledge of who is
// listening.
type Broker struct {
	subscribers map[EventType][]chan Event
	mu          sync.RWMutex
	bufferSize  int
}

// BrokerOption configures a broker at construction
type BrokerOption func(*Broker)

// WithBufferSize sets the per-subscription channel buffer
func WithBufferSize(n int) BrokerOption {
	return func(b *Broker) {
		b.bufferSize = n
	}
}

// NewBroker creates a new event broker
func NewBroker(opts ...BrokerOption) *Broker {
	b := &Broker{
		subscribers: make(map[EventType][]chan Event),
		bufferSize:  defaultBufferSize,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Subscribe creates a subscription to specific event types. With no
// types it subscribes to everything.
func (b *Broker) Subscribe(eventTypes ...EventType) <-chan Event {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch := make(chan Event, b.bufferSize)

	if len(eventTypes) == 0 {
		eventTypes = []EventType{"*"} // wildcard
	}

	for _, eventType := range eventTypes {
		b.subscribers[eventType] = append(b.subscribers[eventType], ch)
	}

	return ch
}

// Unsubscribe removes a subscription and closes its channel. The
// channel is closed once even when it was registered under several
// event types.
func (b *Broker) Unsubscribe(ch <-chan Event, eventTypes ...EventType) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(eventTypes) == 0 {
		eventTypes = make([]EventType, 0, len(b.subscribers))
		for eventType := range b.subscribers {
			eventTypes = append(eventTypes, eventType)
		}
	}

	removed := false
	for _, eventType := range eventTypes {
		if target := b.removeChannel(eventType, ch); target != nil && !removed {
			close(target)
			removed = true
		}
	}
}

// Publish sends an event to all matching subscribers. A subscriber
// whose channel is full misses the event rather than blocking the
// publisher.
func (b *Broker) Publish(event Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, ch := range b.subscribers[event.Type] {
		select {
		case ch <- event:
		default:
		}
	}

	for _, ch := range b.subscribers["*"] {
		select {
		case ch <- event:
		default:
		}
	}
}

// PublishAsync sends an event without blocking the caller
func (b *Broker) PublishAsync(event Event) {
	go b.Publish(event)
}

func (b *Broker) removeChannel(eventType EventType, target <-chan Event) chan Event {
	subscribers := b.subscribers[eventType]
	for i, ch := range subscribers {
		if ch == target {
			b.subscribers[eventType] = append(subscribers[:i], subscribers[i+1:]...)
			if len(b.subscribers[eventType]) == 0 {
				delete(b.subscribers, eventType)
			}
			return ch
		}
	}
	return nil
}

// Clear removes all subscriptions
func (b *Broker) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()

	closed := make(map[chan Event]struct{})
	for _, subscribers := range b.subscribers {
		for _, ch := range subscribers {
			if _, ok := closed[ch]; ok {
				continue
			}
			close(ch)
			closed[ch] = struct{}{}
		}
	}

	b.subscribers = make(map[EventType][]chan Event)
}
