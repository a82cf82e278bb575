package review

import (
	"errors"
	"math/rand"
	"time"

	"github.com/billie-coop/riffle/internal/transform"
)

// DefaultWindowSize is the number of slots materialized when no
// explicit size is configured.
const DefaultWindowSize = 3

// ErrInvalidWindowSize is returned at construction when the requested
// window cannot hold a single slot. It is the only fatal error the
// queue produces.
var ErrInvalidWindowSize = errors.New("review: window size must be at least 1")

// State describes where the queue is in its lifecycle.
type State int

const (
	// StateActive means the front slot awaits a decision.
	StateActive State = iota
	// StateExhausted means every item has been committed. Terminal
	// except via Undo.
	StateExhausted
)

// Observer receives queue lifecycle events. Implementations must not
// call back into the queue from inside a notification; events fire
// after the operation's state change is complete.
type Observer[T Item] interface {
	WindowChanged(slots []MaterializedSlot[T])
	ItemCommitted(item T, direction Direction)
	ItemRestored(item T, direction Direction)
	Exhausted()
}

// nopObserver is used when no observer is configured.
type nopObserver[T Item] struct{}

func (nopObserver[T]) WindowChanged([]MaterializedSlot[T]) {}
func (nopObserver[T]) ItemCommitted(T, Direction)          {}
func (nopObserver[T]) ItemRestored(T, Direction)           {}
func (nopObserver[T]) Exhausted()                          {}

// Queue is the review state machine. It owns the cursor, the
// materialized window and the undo history; the backing sequence and
// item payloads stay owned by the caller.
//
// Not safe for concurrent use. Confine it to one logical thread of
// control, typically the UI event loop.
type Queue[T Item] struct {
	items      []T
	cursor     int
	windowSize int

	window  *window[T]
	history history[T]

	policy   *transform.Policy
	observer Observer[T]
}

// Option configures a Queue at construction.
type Option[T Item] func(*Queue[T])

// WithWindowSize sets how many slots are materialized at once.
func WithWindowSize[T Item](size int) Option[T] {
	return func(q *Queue[T]) {
		q.windowSize = size
	}
}

// WithObserver registers the lifecycle event sink.
func WithObserver[T Item](obs Observer[T]) Option[T] {
	return func(q *Queue[T]) {
		q.observer = obs
	}
}

// WithTransformPolicy injects the slot transform policy. Tests use
// this with a seeded random source for reproducible descriptors.
func WithTransformPolicy[T Item](p *transform.Policy) Option[T] {
	return func(q *Queue[T]) {
		q.policy = p
	}
}

// New creates a queue over items and materializes the initial window.
// It fails only when the configured window size is below 1.
func New[T Item](items []T, opts ...Option[T]) (*Queue[T], error) {
	q := &Queue[T]{
		items:      items,
		windowSize: DefaultWindowSize,
		observer:   nopObserver[T]{},
	}
	for _, opt := range opts {
		opt(q)
	}

	if q.windowSize < 1 {
		return nil, ErrInvalidWindowSize
	}
	if q.policy == nil {
		q.policy = transform.NewPolicy(
			transform.DefaultConfig(),
			rand.New(rand.NewSource(time.Now().UnixNano())),
		)
	}

	q.window = newWindow[T](q.windowSize)
	for i := 0; i < q.windowSize && i < len(q.items); i++ {
		q.window.pushBack(MaterializedSlot[T]{Item: q.items[i]})
	}
	q.refresh()

	return q, nil
}

// State reports Active while an undecided item remains.
func (q *Queue[T]) State() State {
	if q.cursor < len(q.items) {
		return StateActive
	}
	return StateExhausted
}

// CanCommit reports whether a front item awaits a decision.
func (q *Queue[T]) CanCommit() bool {
	return q.State() == StateActive
}

// CanUndo reports whether a previous commit can be reversed.
func (q *Queue[T]) CanUndo() bool {
	return q.history.len() > 0
}

// Cursor returns the index of the next undecided item.
func (q *Queue[T]) Cursor() int {
	return q.cursor
}

// Len returns the backing sequence length.
func (q *Queue[T]) Len() int {
	return len(q.items)
}

// Window returns the current ordered slots, front first. Pure read.
func (q *Queue[T]) Window() []MaterializedSlot[T] {
	return q.window.snapshot()
}

// Decisions returns a copy of the history, oldest first.
func (q *Queue[T]) Decisions() []Decision[T] {
	return q.history.snapshot()
}

// Tally counts past commits by direction.
func (q *Queue[T]) Tally() (forward, backward int) {
	for _, d := range q.history.snapshot() {
		if d.Direction == DirectionForward {
			forward++
		} else {
			backward++
		}
	}
	return forward, backward
}

// Commit decides the front item with the given direction. Committing
// an exhausted queue is a silent no-op: once the deck is consumed the
// UI cannot be driven further, and stray gestures are expected.
//
// All state moves before any event fires, so observers always see the
// queue in a consistent post-commit shape.
func (q *Queue[T]) Commit(direction Direction) {
	if q.State() == StateExhausted {
		return
	}

	front, ok := q.window.popFront()
	if !ok {
		return
	}
	q.policy.Forget(front.Item.ID())

	q.history.push(Decision[T]{
		Item:      front.Item,
		Direction: direction,
		Index:     q.cursor,
	})
	q.cursor++

	// Materialize the item entering at the window tail, if one exists.
	if tail := q.cursor + q.windowSize - 1; tail < len(q.items) {
		q.window.pushBack(MaterializedSlot[T]{Item: q.items[tail]})
	}
	q.refresh()

	q.observer.ItemCommitted(front.Item, direction)
	q.observer.WindowChanged(q.Window())
	if q.window.len() == 0 {
		q.observer.Exhausted()
	}
}

// Undo reverses the most recent not-yet-undone commit. It returns
// false, with zero state change, when the history is empty; callers
// must check this before assuming a restore occurred.
func (q *Queue[T]) Undo() bool {
	decision, ok := q.history.pop()
	if !ok {
		return false
	}

	q.cursor--
	q.window.pushFront(MaterializedSlot[T]{Item: decision.Item})
	for _, trimmed := range q.window.trimBack() {
		q.policy.Forget(trimmed.Item.ID())
	}
	q.refresh()

	q.observer.ItemRestored(decision.Item, decision.Direction)
	q.observer.WindowChanged(q.Window())
	return true
}

// refresh renumbers the slots and rehydrates their presentation
// descriptors from the transform policy.
func (q *Queue[T]) refresh() {
	for i := range q.window.slots {
		q.window.slots[i].SlotIndex = i
		q.window.slots[i].Transform = q.policy.Transform(i, q.window.slots[i].Item.ID())
	}
}
