package commands

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/anecdotes/internal/tui"
)

type TuiCmd struct {
	flags *Flags

	altScreen bool
}

// NewTuiCmd creates a new tui command
func NewTuiCmd(flags *Flags) *TuiCmd {
	return &TuiCmd{flags: flags}
}

// Flags returns the TUI-specific flags for registration on the root command
func (cmd *TuiCmd) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:        "alt-screen",
			Usage:       "run the interactive view in the terminal's alternate screen",
			Sources:     cli.EnvVars("ANECDOTES_ALT_SCREEN"),
			Value:       true,
			Destination: &cmd.altScreen,
		},
	}
}

// Run executes the TUI. Exported for use as default command.
func (cmd *TuiCmd) Run(ctx context.Context, c *cli.Command) error {
	return cmd.run(ctx, c)
}

func (cmd *TuiCmd) run(ctx context.Context, _ *cli.Command) error {
	cfg := cmd.flags.Config

	m := tui.New(
		tui.Deps{
			Service: cmd.flags.Service,
			Logger:  log.With().Str("component", "tui").Logger(),
		},
		tui.Opts{
			NotificationDuration: cfg.Notifications.Duration,
			ServiceURL:           cfg.Service.BaseURL,
		},
	)

	opts := []tea.ProgramOption{tea.WithContext(ctx)}
	if cmd.altScreen {
		opts = append(opts, tea.WithAltScreen())
	}

	if _, err := tea.NewProgram(m, opts...).Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}

	return nil
}
