package review

// Direction is the gesture a commit was made with. Undo replays the
// recorded direction unchanged so the presentation layer can animate
// the reverse of the original commit.
type Direction int

const (
	DirectionForward Direction = iota
	DirectionBackward
)

// String returns the direction name for logs and status lines.
func (d Direction) String() string {
	if d == DirectionBackward {
		return "backward"
	}
	return "forward"
}

// Decision is an immutable record of a past commit. Entries are
// lightweight: item identity plus direction, never presentation state.
type Decision[T Item] struct {
	Item      T
	Direction Direction
	Index     int
}

// history is an unbounded LIFO stack of decisions. Every commit is
// undoable, not just the most recent one.
type history[T Item] struct {
	decisions []Decision[T]
}

func (h *history[T]) push(d Decision[T]) {
	h.decisions = append(h.decisions, d)
}

func (h *history[T]) pop() (Decision[T], bool) {
	if len(h.decisions) == 0 {
		var zero Decision[T]
		return zero, false
	}
	d := h.decisions[len(h.decisions)-1]
	h.decisions = h.decisions[:len(h.decisions)-1]
	return d, true
}

func (h *history[T]) len() int {
	return len(h.decisions)
}

// snapshot returns a copy of the stack, oldest first.
func (h *history[T]) snapshot() []Decision[T] {
	out := make([]Decision[T], len(h.decisions))
	copy(out, h.decisions)
	return out
}
