package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/charmbracelet/glamour"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/colonyops/anecdotes/internal/core/anecdote"
	"github.com/colonyops/anecdotes/internal/core/styles"
	"github.com/colonyops/anecdotes/pkg/iojson"
)

const defaultWrapWidth = 100

type LsCmd struct {
	flags *Flags

	// flags
	jsonOutput bool
	sortVotes  bool
}

// NewLsCmd creates a new ls command
func NewLsCmd(flags *Flags) *LsCmd {
	return &LsCmd{flags: flags}
}

// Register adds the ls command to the application
func (cmd *LsCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "ls",
		Usage:     "List all anecdotes",
		UsageText: "anecdotes ls [--json] [--top]",
		Description: `Displays a table of all anecdotes with their id, votes and content.

Use --json for one JSON object per line.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output as JSON lines",
				Destination: &cmd.jsonOutput,
			},
			&cli.BoolFlag{
				Name:        "top",
				Usage:       "sort by votes, most voted first",
				Destination: &cmd.sortVotes,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *LsCmd) run(ctx context.Context, c *cli.Command) error {
	items, err := cmd.flags.Service.List(ctx)
	if err != nil {
		return err
	}

	if cmd.sortVotes {
		slices.SortStableFunc(items, func(a, b anecdote.Anecdote) int {
			return b.Votes - a.Votes
		})
	}

	out := c.Root().Writer

	if cmd.jsonOutput {
		for _, a := range items {
			if err := iojson.WriteLine(out, a); err != nil {
				return fmt.Errorf("encode anecdote: %w", err)
			}
		}
		return nil
	}

	if len(items) == 0 {
		_, _ = fmt.Fprintln(c.Root().ErrWriter, "No anecdotes found")
		return nil
	}

	md := markdownTable(items)

	width, ok := terminalWidth(out)
	if !ok {
		_, err := io.WriteString(out, md)
		return err
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStyles(styles.GlamourStyle()),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return fmt.Errorf("create renderer: %w", err)
	}

	rendered, err := r.Render(md)
	if err != nil {
		return fmt.Errorf("render table: %w", err)
	}

	_, err = io.WriteString(out, rendered)
	return err
}

// terminalWidth reports the width of w when it is a terminal.
func terminalWidth(w io.Writer) (int, bool) {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return 0, false
	}

	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return defaultWrapWidth, true
	}
	return width, true
}
