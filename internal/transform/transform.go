// Package transform computes presentation parameters for window slots.
// The policy is pure apart from an injected random source, so slot
// output is reproducible in tests by seeding the source.
package transform

import (
	"math"
	"math/rand"
)

// Stability controls when a card's rotation is redrawn.
type Stability int

const (
	// StabilityPerItem draws a rotation magnitude once per item and
	// reuses it for as long as the item stays in the window.
	StabilityPerItem Stability = iota
	// StabilityPerSlot redraws the rotation every time the slot is
	// recomputed.
	StabilityPerSlot
)

// Config holds the tunable parameters of the transform policy.
type Config struct {
	// BaseOffset is the vertical offset, in rows, added per slot depth.
	BaseOffset float64
	// ScaleRatio shrinks each deeper slot; slot n is scaled ScaleRatio^n.
	ScaleRatio float64
	// MinRotation and MaxRotation bound the rotation magnitude in
	// degrees for slots behind the front card.
	MinRotation float64
	MaxRotation float64
	// Stability selects per-item or per-slot rotation behaviour.
	Stability Stability
}

// DefaultConfig returns the standard stack appearance.
func DefaultConfig() Config {
	return Config{
		BaseOffset:  2,
		ScaleRatio:  0.85,
		MinRotation: 1,
		MaxRotation: 3,
		Stability:   StabilityPerItem,
	}
}

// Transform is the presentation descriptor for one slot.
type Transform struct {
	VerticalOffset  float64
	Scale           float64
	RotationDegrees float64
}

// Policy maps a slot index to a Transform. Rotation magnitudes come
// from the injected random source; the sign alternates with slot
// parity so neighbouring cards lean opposite ways.
type Policy struct {
	cfg Config
	rng *rand.Rand

	// magnitudes caches the drawn rotation per item when the policy
	// runs with StabilityPerItem.
	magnitudes map[string]float64
}

// NewPolicy creates a policy using rng for rotation draws.
func NewPolicy(cfg Config, rng *rand.Rand) *Policy {
	return &Policy{
		cfg:        cfg,
		rng:        rng,
		magnitudes: make(map[string]float64),
	}
}

// Transform computes the presentation descriptor for the item occupying
// slotIndex. itemID is only consulted for per-item rotation stability.
func (p *Policy) Transform(slotIndex int, itemID string) Transform {
	t := Transform{
		VerticalOffset: p.cfg.BaseOffset * float64(slotIndex),
		Scale:          math.Pow(p.cfg.ScaleRatio, float64(slotIndex)),
	}

	// The front card always sits straight.
	if slotIndex == 0 {
		return t
	}

	magnitude := p.magnitude(itemID)
	if slotIndex%2 == 0 {
		magnitude = -magnitude
	}
	t.RotationDegrees = magnitude

	return t
}

// Forget drops the cached rotation for an item that left the window.
func (p *Policy) Forget(itemID string) {
	delete(p.magnitudes, itemID)
}

func (p *Policy) magnitude(itemID string) float64 {
	if p.cfg.Stability == StabilityPerItem {
		if m, ok := p.magnitudes[itemID]; ok {
			return m
		}
	}

	m := p.cfg.MinRotation + p.rng.Float64()*(p.cfg.MaxRotation-p.cfg.MinRotation)

	if p.cfg.Stability == StabilityPerItem {
		p.magnitudes[itemID] = m
	}
	return m
}
