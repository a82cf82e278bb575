// Package main is the entry point for the riffle application.
package main

import (
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/billie-coop/riffle/internal/config"
	"github.com/billie-coop/riffle/internal/deck"
	"github.com/billie-coop/riffle/internal/tui"
)

var configPath string

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "riffle <deck>",
		Short: "Triage a deck of cards, one decision at a time",
		Long: `Riffle reviews an ordered deck of cards one at a time: drag (or use
the arrow keys) right to keep, left to drop, and u to undo. A deck is
either a directory of markdown files or a JSON file.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath, cmd.Flags())
			if err != nil {
				return err
			}

			closeLog, err := setupLogging(cfg)
			if err != nil {
				return err
			}
			defer closeLog()

			cards, err := deck.Load(args[0])
			if err != nil {
				return err
			}
			if cards.Len() == 0 {
				return errors.Errorf("deck %q contains no cards", args[0])
			}

			model, err := tui.New(cfg, cards)
			if err != nil {
				return err
			}

			log.Info().
				Int("cards", cards.Len()).
				Int("window_size", cfg.WindowSize).
				Msg("starting review session")

			p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseAllMotion())
			if _, err := p.Run(); err != nil {
				return errors.Wrap(err, "run program")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "path to config file")
	cmd.Flags().Int("window-size", 0, "number of cards materialized at once")
	cmd.Flags().Float64("dismiss-threshold", 0, "drag fraction past which a release commits")
	cmd.Flags().Float64("velocity-threshold", 0, "fling speed that commits regardless of progress")
	cmd.Flags().Float64("scale-ratio", 0, "per-slot card shrink factor")
	cmd.Flags().String("rotation-stability", "", "per-item or per-slot card rotation")
	cmd.Flags().String("theme", "", "color theme")
	cmd.Flags().String("log-file", "", "write logs to this file")
	cmd.Flags().Bool("debug", false, "enable debug logging")

	return cmd
}

// setupLogging routes zerolog to the configured file. The terminal
// belongs to the TUI, so without a log file output is discarded.
func setupLogging(cfg *config.Config) (func(), error) {
	level := zerolog.InfoLevel
	if cfg.Debug {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.LogFile == "" {
		log.Logger = zerolog.New(io.Discard)
		return func() {}, nil
	}

	f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, errors.Wrapf(err, "open log file %q", cfg.LogFile)
	}
	log.Logger = zerolog.New(f).With().Timestamp().Logger()
	return func() { _ = f.Close() }, nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
