package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/anecdotes/internal/core/anecdote"
	"github.com/colonyops/anecdotes/pkg/iojson"
)

// importItem is one entry of the import document.
type importItem struct {
	Content string `json:"content"`
}

type ImportCmd struct {
	flags  *Flags
	reader iojson.FileReader[[]importItem]

	// flags
	jsonOutput bool
}

// NewImportCmd creates a new import command
func NewImportCmd(flags *Flags) *ImportCmd {
	return &ImportCmd{flags: flags}
}

// Register adds the import command to the application
func (cmd *ImportCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "import",
		Usage:     "Create anecdotes from a JSON document",
		UsageText: "anecdotes import [--json] [-f file.json]",
		Description: `Reads a JSON array of {"content": "..."} objects from a file or stdin and
creates one anecdote per entry. Entries that fail validation are skipped and reported.`,
		Flags: []cli.Flag{
			cmd.reader.Flag(),
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "report each created anecdote and each rejected entry as a JSON line",
				Destination: &cmd.jsonOutput,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *ImportCmd) run(ctx context.Context, c *cli.Command) error {
	items, err := cmd.reader.Read()
	if err != nil {
		return err
	}

	return cmd.importAll(ctx, c, items)
}

func (cmd *ImportCmd) importAll(ctx context.Context, c *cli.Command, items []importItem) error {
	var (
		errs    []error
		created int
		out     = c.Root().Writer
	)

	reject := func(i int, err error) {
		errs = append(errs, err)
		if cmd.jsonOutput {
			_ = iojson.WriteError(out, "entry rejected", map[string]any{
				"index": i,
				"error": err.Error(),
			})
		}
	}

	for i, item := range items {
		if err := anecdote.ContentField(fmt.Sprintf("[%d].content", i), item.Content); err != nil {
			reject(i, err)
			continue
		}

		a, err := cmd.flags.Service.Create(ctx, anecdote.New(item.Content))
		if err != nil {
			reject(i, fmt.Errorf("[%d]: %w", i, err))
			continue
		}

		log.Debug().Str("id", a.ID.String()).Msg("imported anecdote")
		created++

		if cmd.jsonOutput {
			if err := iojson.WriteLine(out, a); err != nil {
				return fmt.Errorf("encode anecdote: %w", err)
			}
		}
	}

	if !cmd.jsonOutput {
		_, _ = fmt.Fprintf(out, "imported %d of %d anecdotes\n", created, len(items))
	}

	return errors.Join(errs...)
}
