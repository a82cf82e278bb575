package events

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func receive(t *testing.T, ch <-chan Event) Event {
	t.Helper()
	select {
	case ev := <-ch:
		return ev
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
		return Event{}
	}
}

func TestBroker_PublishToSubscribedType(t *testing.T) {
	b := NewBroker()
	ch := b.Subscribe(ReviewCommittedEvent)

	b.Publish(Event{Type: ReviewCommittedEvent, Payload: "x"})

	ev := receive(t, ch)
	assert.Equal(t, ReviewCommittedEvent, ev.Type)
	assert.Equal(t, "x", ev.Payload)
}

func TestBroker_DoesNotDeliverOtherTypes(t *testing.T) {
	b := NewBroker()
	ch := b.Subscribe(ReviewCommittedEvent)

	b.Publish(Event{Type: StatusMessageEvent})

	select {
	case ev := <-ch:
		t.Fatalf("unexpected event %s", ev.Type)
	case <-time.After(20 * time.Millisecond):
	}
}

func TestBroker_WildcardSubscription(t *testing.T) {
	b := NewBroker()
	ch := b.Subscribe()

	b.Publish(Event{Type: ReviewWindowEvent})
	b.Publish(Event{Type: StatusMessageEvent})

	assert.Equal(t, ReviewWindowEvent, receive(t, ch).Type)
	assert.Equal(t, StatusMessageEvent, receive(t, ch).Type)
}

func TestBroker_FullSubscriberDropsInsteadOfBlocking(t *testing.T) {
	b := NewBroker(WithBufferSize(1))
	ch := b.Subscribe(ReviewWindowEvent)

	done := make(chan struct{})
	go func() {
		b.Publish(Event{Type: ReviewWindowEvent, Payload: 1})
		b.Publish(Event{Type: ReviewWindowEvent, Payload: 2})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publish blocked on a full subscriber")
	}

	assert.Equal(t, 1, receive(t, ch).Payload)
}

func TestBroker_UnsubscribeClosesChannelOnce(t *testing.T) {
	b := NewBroker()
	ch := b.Subscribe(ReviewWindowEvent, ReviewCommittedEvent)

	// Closing a channel registered under several types must not panic.
	require.NotPanics(t, func() {
		b.Unsubscribe(ch)
	})

	_, open := <-ch
	assert.False(t, open)

	b.Publish(Event{Type: ReviewWindowEvent})
}

func TestBroker_UnsubscribeSingleType(t *testing.T) {
	b := NewBroker()
	kept := b.Subscribe(ReviewWindowEvent)
	removed := b.Subscribe(ReviewWindowEvent)

	b.Unsubscribe(removed, ReviewWindowEvent)
	b.Publish(Event{Type: ReviewWindowEvent})

	assert.Equal(t, ReviewWindowEvent, receive(t, kept).Type)
	_, open := <-removed
	assert.False(t, open)
}

func TestBroker_Clear(t *testing.T) {
	b := NewBroker()
	multi := b.Subscribe(ReviewWindowEvent, ReviewExhaustedEvent)
	single := b.Subscribe(StatusMessageEvent)

	require.NotPanics(t, b.Clear)

	_, open := <-multi
	assert.False(t, open)
	_, open = <-single
	assert.False(t, open)
}
