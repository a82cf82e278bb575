package review

import "github.com/billie-coop/riffle/internal/transform"

// Item is anything with a stable string identity. The queue holds
// items by reference and never touches their payload.
type Item interface {
	ID() string
}

// MaterializedSlot pairs an item with its position in the window and
// the presentation descriptor for that position. It exists only while
// the item occupies the window.
type MaterializedSlot[T Item] struct {
	SlotIndex int
	Item      T
	Transform transform.Transform
}

// window is a small fixed-capacity deque of materialized slots.
//
// Invariants, maintained by Queue:
//   - len(slots) <= capacity at the end of every queue operation
//   - slots[i].SlotIndex == i after every refresh
//   - slots[0] holds the item at the queue cursor while the queue is
//     active
//
// Modelled as an explicit deque rather than ad hoc slice arithmetic so
// the cursor/window off-by-one cases live in exactly one place.
type window[T Item] struct {
	capacity int
	slots    []MaterializedSlot[T]
}

func newWindow[T Item](capacity int) *window[T] {
	return &window[T]{
		capacity: capacity,
		slots:    make([]MaterializedSlot[T], 0, capacity+1),
	}
}

func (w *window[T]) len() int {
	return len(w.slots)
}

// front returns the active slot.
func (w *window[T]) front() (MaterializedSlot[T], bool) {
	if len(w.slots) == 0 {
		var zero MaterializedSlot[T]
		return zero, false
	}
	return w.slots[0], true
}

// popFront removes and returns the active slot.
func (w *window[T]) popFront() (MaterializedSlot[T], bool) {
	if len(w.slots) == 0 {
		var zero MaterializedSlot[T]
		return zero, false
	}
	slot := w.slots[0]
	w.slots = append(w.slots[:0], w.slots[1:]...)
	return slot, true
}

// pushFront inserts a slot at position 0, shifting the rest back. The
// deque may momentarily hold capacity+1 slots; the caller trims the
// tail before returning control.
func (w *window[T]) pushFront(slot MaterializedSlot[T]) {
	w.slots = append(w.slots, MaterializedSlot[T]{})
	copy(w.slots[1:], w.slots)
	w.slots[0] = slot
}

// pushBack appends a slot at the tail.
func (w *window[T]) pushBack(slot MaterializedSlot[T]) {
	w.slots = append(w.slots, slot)
}

// trimBack drops tail slots until the deque fits its capacity again,
// returning the removed slots.
func (w *window[T]) trimBack() []MaterializedSlot[T] {
	if len(w.slots) <= w.capacity {
		return nil
	}
	trimmed := make([]MaterializedSlot[T], len(w.slots)-w.capacity)
	copy(trimmed, w.slots[w.capacity:])
	w.slots = w.slots[:w.capacity]
	return trimmed
}

// snapshot returns a copy of the slots, safe for the caller to hold.
func (w *window[T]) snapshot() []MaterializedSlot[T] {
	out := make([]MaterializedSlot[T], len(w.slots))
	copy(out, w.slots)
	return out
}
