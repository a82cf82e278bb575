package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/billie-coop/riffle/internal/gesture"
	"github.com/billie-coop/riffle/internal/review"
	"github.com/billie-coop/riffle/internal/transform"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func riffleFlags() *pflag.FlagSet {
	flags := pflag.NewFlagSet("riffle", pflag.ContinueOnError)
	flags.Int("window-size", 0, "")
	flags.Float64("dismiss-threshold", 0, "")
	flags.Float64("velocity-threshold", 0, "")
	flags.Float64("scale-ratio", 0, "")
	flags.String("rotation-stability", "", "")
	flags.String("theme", "", "")
	flags.String("log-file", "", "")
	flags.Bool("debug", false, "")
	return flags
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, ""), nil)
	require.NoError(t, err)

	assert.Equal(t, review.DefaultWindowSize, cfg.WindowSize)
	assert.Equal(t, 0.75, cfg.DismissThreshold)
	assert.Equal(t, 500.0, cfg.VelocityThreshold)
	assert.Equal(t, 0.01, cfg.Epsilon)
	assert.Equal(t, 0.85, cfg.ScaleRatio)
	assert.Equal(t, StabilityPerItem, cfg.RotationStability)
	assert.Equal(t, "riffle", cfg.Theme)
	assert.False(t, cfg.Debug)
}

func TestLoad_ConfigFileOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
window_size: 5
dismiss_threshold: 0.6
rotation_stability: per-slot
theme: paper
`)

	cfg, err := Load(path, nil)
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.WindowSize)
	assert.Equal(t, 0.6, cfg.DismissThreshold)
	assert.Equal(t, StabilityPerSlot, cfg.RotationStability)
	assert.Equal(t, "paper", cfg.Theme)
	// Untouched keys keep defaults.
	assert.Equal(t, 500.0, cfg.VelocityThreshold)
}

func TestLoad_FlagsOverrideConfigFile(t *testing.T) {
	path := writeConfig(t, "window_size: 5\ntheme: paper\n")

	flags := riffleFlags()
	require.NoError(t, flags.Parse([]string{"--window-size", "2", "--debug"}))

	cfg, err := Load(path, flags)
	require.NoError(t, err)

	assert.Equal(t, 2, cfg.WindowSize)
	assert.True(t, cfg.Debug)
	// Flags left at their defaults do not mask the config file.
	assert.Equal(t, "paper", cfg.Theme)
}

func TestLoad_MissingExplicitConfigFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"), nil)
	require.Error(t, err)
}

func TestLoad_InvalidValuesRejected(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "zero_window", content: "window_size: 0\n"},
		{name: "negative_window", content: "window_size: -2\n"},
		{name: "scale_ratio_above_one", content: "scale_ratio: 1.4\n"},
		{name: "scale_ratio_zero", content: "scale_ratio: 0\n"},
		{name: "rotation_bounds_swapped", content: "min_rotation: 5\nmax_rotation: 2\n"},
		{name: "dismiss_threshold_above_one", content: "dismiss_threshold: 1.3\n"},
		{name: "unknown_stability", content: "rotation_stability: sideways\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content), nil)
			require.Error(t, err)
		})
	}
}

func TestLoad_InvalidWindowSizeWrapsQueueError(t *testing.T) {
	_, err := Load(writeConfig(t, "window_size: 0\n"), nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, review.ErrInvalidWindowSize)
}

func TestConfig_GestureConfig(t *testing.T) {
	cfg := Default()
	cfg.DismissThreshold = 0.5
	cfg.VelocityThreshold = 800
	cfg.Epsilon = 0.02

	assert.Equal(t, gesture.Config{
		DismissThreshold:  0.5,
		VelocityThreshold: 800,
		Epsilon:           0.02,
	}, cfg.GestureConfig())
}

func TestConfig_TransformConfig(t *testing.T) {
	cfg := Default()
	got := cfg.TransformConfig()
	assert.Equal(t, transform.StabilityPerItem, got.Stability)
	assert.Equal(t, 0.85, got.ScaleRatio)
	assert.Equal(t, 2.0, got.BaseOffset)

	cfg.RotationStability = StabilityPerSlot
	assert.Equal(t, transform.StabilityPerSlot, cfg.TransformConfig().Stability)
}
