// Package review implements the windowed review queue at the heart of
// riffle.
//
// # Overview
//
// A review session walks an ordered backing sequence of items one at a
// time. The user commits the front item with a direction (forward =
// keep, backward = discard) or undoes the most recent commit. Only a
// small fixed-size window over the sequence is ever materialized, so
// memory and render cost stay bounded no matter how long the deck is.
//
// # Architecture
//
// The package is built from small parts:
//
//   - window: fixed-capacity deque of materialized slots with the
//     queue's structural invariants enforced in one place
//   - history: unbounded LIFO of lightweight Decision records
//   - Queue: the state machine tying cursor, window and history
//     together and emitting lifecycle events through an Observer
//
// Presentation descriptors for slots come from the transform package
// and are recomputed whenever the window shifts; history entries never
// cache presentation state.
//
// # Contract
//
// The queue is synchronous and confined to a single logical thread of
// control (the UI event loop). All operations are O(1) relative to the
// backing sequence length. Commit on an exhausted queue and undo on an
// empty history are expected conditions, reported as no-ops rather
// than errors.
package review
