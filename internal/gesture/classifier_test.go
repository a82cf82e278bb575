package gesture

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/billie-coop/riffle/internal/review"
)

func TestClassifier_Ended(t *testing.T) {
	c := NewClassifier(DefaultConfig())

	tests := []struct {
		name          string
		translationX  float64
		velocityX     float64
		refWidth      float64
		wantCommitted bool
		wantDirection review.Direction
		wantProgress  float64
	}{
		{
			name:          "slow_drag_past_threshold",
			translationX:  230,
			velocityX:     100,
			refWidth:      300,
			wantCommitted: true,
			wantDirection: review.DirectionForward,
			wantProgress:  230.0 / 300.0,
		},
		{
			name:          "fast_fling_short_distance",
			translationX:  100,
			velocityX:     600,
			refWidth:      300,
			wantCommitted: true,
			wantDirection: review.DirectionForward,
			wantProgress:  100.0 / 300.0,
		},
		{
			name:          "slow_and_short_cancels",
			translationX:  100,
			velocityX:     100,
			refWidth:      300,
			wantCommitted: false,
			wantDirection: review.DirectionForward,
			wantProgress:  100.0 / 300.0,
		},
		{
			name:          "leftward_drag_commits_backward",
			translationX:  -260,
			velocityX:     -100,
			refWidth:      300,
			wantCommitted: true,
			wantDirection: review.DirectionBackward,
			wantProgress:  260.0 / 300.0,
		},
		{
			name:          "leftward_fling",
			translationX:  -80,
			velocityX:     -700,
			refWidth:      300,
			wantCommitted: true,
			wantDirection: review.DirectionBackward,
			wantProgress:  80.0 / 300.0,
		},
		{
			name:          "epsilon_admits_near_threshold_release",
			translationX:  0.745 * 300,
			velocityX:     0,
			refWidth:      300,
			wantCommitted: true,
			wantDirection: review.DirectionForward,
			wantProgress:  0.745,
		},
		{
			name:          "below_epsilon_band_cancels",
			translationX:  0.73 * 300,
			velocityX:     0,
			refWidth:      300,
			wantCommitted: false,
			wantDirection: review.DirectionForward,
			wantProgress:  0.73,
		},
		{
			name:          "beyond_reference_width_clamps",
			translationX:  450,
			velocityX:     0,
			refWidth:      300,
			wantCommitted: true,
			wantDirection: review.DirectionForward,
			wantProgress:  1,
		},
		{
			name:          "zero_translation_zero_velocity",
			translationX:  0,
			velocityX:     0,
			refWidth:      300,
			wantCommitted: false,
			wantDirection: review.DirectionBackward,
			wantProgress:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Ended(tt.translationX, tt.velocityX, tt.refWidth)
			assert.Equal(t, tt.wantCommitted, got.Committed)
			assert.Equal(t, tt.wantDirection, got.Direction)
			assert.InDelta(t, tt.wantProgress, got.Progress, 1e-9)
		})
	}
}

func TestClassifier_Changed(t *testing.T) {
	c := NewClassifier(DefaultConfig())

	p := c.Changed(150, 300)
	assert.InDelta(t, 0.5, p.Value, 1e-9)
	assert.Equal(t, review.DirectionForward, p.Direction)

	p = c.Changed(-90, 300)
	assert.InDelta(t, 0.3, p.Value, 1e-9)
	assert.Equal(t, review.DirectionBackward, p.Direction)

	p = c.Changed(-500, 300)
	assert.InDelta(t, 1, p.Value, 1e-9)
}

func TestTracker_TranslationAndVelocity(t *testing.T) {
	start := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	tr := Begin(10, start)
	require.True(t, tr.Active())
	assert.Zero(t, tr.Translation())

	// 20 columns in 100ms is 200 columns/second.
	got := tr.Move(30, start.Add(100*time.Millisecond))
	assert.InDelta(t, 20, got, 1e-9)
	assert.InDelta(t, 200, tr.Velocity(), 1e-9)

	// Velocity tracks the latest sample pair, not the whole gesture.
	tr.Move(35, start.Add(200*time.Millisecond))
	assert.InDelta(t, 25, tr.Translation(), 1e-9)
	assert.InDelta(t, 50, tr.Velocity(), 1e-9)
}

func TestTracker_ZeroDurationSampleKeepsVelocity(t *testing.T) {
	start := time.Now()
	tr := Begin(0, start)

	tr.Move(40, start.Add(100*time.Millisecond))
	before := tr.Velocity()

	tr.Move(45, start.Add(100*time.Millisecond))
	assert.Equal(t, before, tr.Velocity())
	assert.InDelta(t, 45, tr.Translation(), 1e-9)
}

func TestTracker_End(t *testing.T) {
	c := NewClassifier(DefaultConfig())
	start := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tr := Begin(0, start)
	tr.Move(40, start.Add(50*time.Millisecond))
	res := tr.End(46, start.Add(100*time.Millisecond), c, 60)

	assert.True(t, res.Committed)
	assert.Equal(t, review.DirectionForward, res.Direction)
	assert.False(t, tr.Active())

	// A finished tracker ignores further samples.
	assert.Zero(t, tr.Move(100, start.Add(time.Second)))
	assert.InDelta(t, 46, tr.Translation(), 1e-9)
}
