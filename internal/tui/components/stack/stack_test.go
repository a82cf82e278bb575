package stack

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/billie-coop/riffle/internal/deck"
	"github.com/billie-coop/riffle/internal/gesture"
	"github.com/billie-coop/riffle/internal/review"
	"github.com/billie-coop/riffle/internal/tui/events"
)

// fakeClock feeds the component a controllable time source.
type fakeClock struct {
	now time.Time
}

func (f *fakeClock) advance(d time.Duration) {
	f.now = f.now.Add(d)
}

func newTestStack(t *testing.T) (*Component, *fakeClock, <-chan events.Event) {
	t.Helper()

	broker := events.NewBroker()
	ch := broker.Subscribe(events.GestureProgressEvent, events.GestureCancelledEvent)

	c := New(broker, gesture.NewClassifier(gesture.DefaultConfig()))
	c.SetSize(80, 24)
	c.SetSlots([]review.MaterializedSlot[deck.Card]{
		{SlotIndex: 0, Item: deck.Card{UUID: uuid.New(), Title: "front"}},
		{SlotIndex: 1, Item: deck.Card{UUID: uuid.New(), Title: "behind"}},
	})

	clock := &fakeClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	c.now = func() time.Time { return clock.now }

	return c, clock, ch
}

func runMsg(c *Component, msg tea.Msg) tea.Cmd {
	_, cmd := c.Update(msg)
	return cmd
}

func TestStack_DragPastThresholdCommits(t *testing.T) {
	c, clock, _ := newTestStack(t)

	runMsg(c, tea.MouseClickMsg{X: 10, Y: 5, Button: tea.MouseLeft})
	require.True(t, c.Dragging())

	// cardWidth is 52 at width 80; drag most of a card width slowly.
	clock.advance(300 * time.Millisecond)
	runMsg(c, tea.MouseMotionMsg{X: 35, Y: 5})
	clock.advance(300 * time.Millisecond)
	cmd := runMsg(c, tea.MouseReleaseMsg{X: 55, Y: 5})

	require.NotNil(t, cmd)
	msg := cmd()
	decision, ok := msg.(DecisionMsg)
	require.True(t, ok, "expected DecisionMsg, got %T", msg)
	assert.Equal(t, review.DirectionForward, decision.Direction)
	assert.False(t, c.Dragging())
}

func TestStack_ShortSlowDragCancels(t *testing.T) {
	c, clock, ch := newTestStack(t)

	runMsg(c, tea.MouseClickMsg{X: 10, Y: 5, Button: tea.MouseLeft})
	clock.advance(500 * time.Millisecond)
	runMsg(c, tea.MouseMotionMsg{X: 15, Y: 5})
	clock.advance(500 * time.Millisecond)
	cmd := runMsg(c, tea.MouseReleaseMsg{X: 16, Y: 5})

	require.NotNil(t, cmd)
	_, ok := cmd().(CancelledMsg)
	require.True(t, ok)

	// Progress feedback then the cancellation, in order.
	ev := <-ch
	assert.Equal(t, events.GestureProgressEvent, ev.Type)
	ev = <-ch
	assert.Equal(t, events.GestureCancelledEvent, ev.Type)
}

func TestStack_FastFlingCommitsOnVelocity(t *testing.T) {
	c, clock, _ := newTestStack(t)

	runMsg(c, tea.MouseClickMsg{X: 40, Y: 5, Button: tea.MouseLeft})
	// 30 columns leftward in 20ms is far past any velocity threshold.
	clock.advance(20 * time.Millisecond)
	cmd := runMsg(c, tea.MouseReleaseMsg{X: 10, Y: 5})

	require.NotNil(t, cmd)
	decision, ok := cmd().(DecisionMsg)
	require.True(t, ok)
	assert.Equal(t, review.DirectionBackward, decision.Direction)
}

func TestStack_IgnoresGesturesWhenExhausted(t *testing.T) {
	c, _, _ := newTestStack(t)
	c.SetSlots(nil)

	cmd := runMsg(c, tea.MouseClickMsg{X: 10, Y: 5, Button: tea.MouseLeft})
	assert.Nil(t, cmd)
	assert.False(t, c.Dragging())

	assert.Nil(t, runMsg(c, tea.MouseMotionMsg{X: 20, Y: 5}))
	assert.Nil(t, runMsg(c, tea.MouseReleaseMsg{X: 30, Y: 5}))
}

func TestStack_IgnoresStatusBarClicks(t *testing.T) {
	c, _, _ := newTestStack(t)

	runMsg(c, tea.MouseClickMsg{X: 10, Y: 23, Button: tea.MouseLeft})
	assert.False(t, c.Dragging())
}

func TestStack_ReleaseWithoutPressIsNoOp(t *testing.T) {
	c, _, _ := newTestStack(t)

	assert.Nil(t, runMsg(c, tea.MouseReleaseMsg{X: 30, Y: 5}))
	assert.False(t, c.Dragging())
}

func TestStack_PruneBodiesOnWindowChange(t *testing.T) {
	c, _, _ := newTestStack(t)

	front := c.slots[0].Item
	c.bodies[front.ID()] = "rendered"
	other := deck.Card{UUID: uuid.New(), Title: "other"}

	c.SetSlots([]review.MaterializedSlot[deck.Card]{{SlotIndex: 0, Item: other}})
	assert.NotContains(t, c.bodies, front.ID())
}
