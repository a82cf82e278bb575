// Package gesture turns a raw, continuous pointer drag into a discrete
// commit-or-cancel outcome. The classifier itself is stateless; all
// per-gesture accumulation lives in a Tracker value so nothing leaks
// between gestures.
package gesture

import (
	"math"
	"time"

	"github.com/billie-coop/riffle/internal/review"
)

// Config holds the classification thresholds. The epsilon absorbs
// floating-point rounding at the threshold boundary and is real
// configuration, not a hidden constant.
type Config struct {
	// DismissThreshold is the progress fraction past which a release
	// commits.
	DismissThreshold float64
	// VelocityThreshold commits a release regardless of progress, in
	// reference-width units per second.
	VelocityThreshold float64
	// Epsilon widens the dismiss threshold downward.
	Epsilon float64
}

// DefaultConfig returns the standard thresholds.
func DefaultConfig() Config {
	return Config{
		DismissThreshold:  0.75,
		VelocityThreshold: 500,
		Epsilon:           0.01,
	}
}

// Progress is the continuous signal emitted while a drag is in flight.
// It feeds live visual feedback only and never mutates queue state.
type Progress struct {
	// Value is |translation| / referenceWidth clamped to [0, 1].
	Value float64
	// Direction is where the drag currently points.
	Direction review.Direction
}

// Result is the discrete outcome of a finished gesture.
type Result struct {
	Committed bool
	Direction review.Direction
	Progress  float64
}

// Classifier applies Config to gesture samples.
type Classifier struct {
	cfg Config
}

// NewClassifier creates a classifier with the given thresholds.
func NewClassifier(cfg Config) *Classifier {
	return &Classifier{cfg: cfg}
}

// Changed computes the live progress signal for an in-flight drag.
func (c *Classifier) Changed(translationX, referenceWidth float64) Progress {
	return Progress{
		Value:     clamp(math.Abs(translationX)/referenceWidth, 0, 1),
		Direction: directionOf(translationX),
	}
}

// Ended classifies a released (or cancelled) gesture. A release
// commits when progress clears the dismiss threshold or the fling was
// fast enough, whichever comes first.
func (c *Classifier) Ended(translationX, velocityX, referenceWidth float64) Result {
	progress := clamp(math.Abs(translationX)/referenceWidth, 0, 1)

	committed := c.Committable(progress) ||
		math.Abs(velocityX) > c.cfg.VelocityThreshold

	return Result{
		Committed: committed,
		Direction: directionOf(translationX),
		Progress:  progress,
	}
}

// Committable reports whether a release at this progress would commit
// on distance alone. The UI uses it for live threshold feedback.
func (c *Classifier) Committable(progress float64) bool {
	return progress > c.cfg.DismissThreshold-c.cfg.Epsilon
}

func directionOf(translationX float64) review.Direction {
	if translationX > 0 {
		return review.DirectionForward
	}
	return review.DirectionBackward
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Tracker accumulates one gesture's samples: the press origin plus the
// most recent movement, from which release velocity is derived. Create
// a fresh tracker per gesture; zero value is not usable.
type Tracker struct {
	originX  int
	lastX    int
	lastAt   time.Time
	velocity float64
	active   bool
}

// Begin starts a gesture at the pressed column.
func Begin(x int, at time.Time) *Tracker {
	return &Tracker{
		originX: x,
		lastX:   x,
		lastAt:  at,
		active:  true,
	}
}

// Move records a drag sample and returns the accumulated translation.
func (t *Tracker) Move(x int, at time.Time) float64 {
	if !t.active {
		return 0
	}

	if dt := at.Sub(t.lastAt).Seconds(); dt > 0 {
		t.velocity = float64(x-t.lastX) / dt
	}
	t.lastX = x
	t.lastAt = at

	return t.Translation()
}

// Translation returns the horizontal distance from the press origin.
func (t *Tracker) Translation() float64 {
	return float64(t.lastX - t.originX)
}

// Velocity returns the most recent sample-to-sample velocity in
// columns per second.
func (t *Tracker) Velocity() float64 {
	return t.velocity
}

// Active reports whether the gesture is still in flight.
func (t *Tracker) Active() bool {
	return t.active
}

// End finishes the gesture at the released column and classifies it.
func (t *Tracker) End(x int, at time.Time, c *Classifier, referenceWidth float64) Result {
	t.Move(x, at)
	t.active = false
	return c.Ended(t.Translation(), t.velocity, referenceWidth)
}
