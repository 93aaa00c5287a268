package commands

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/anecdotes/internal/core/anecdote"
	"github.com/colonyops/anecdotes/pkg/iojson"
)

type VoteCmd struct {
	flags *Flags

	// flags
	jsonOutput bool
}

// NewVoteCmd creates a new vote command
func NewVoteCmd(flags *Flags) *VoteCmd {
	return &VoteCmd{flags: flags}
}

// Register adds the vote command to the application
func (cmd *VoteCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "vote",
		Usage:     "Vote for an anecdote",
		UsageText: "anecdotes vote [--json] <id>",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output the updated anecdote as JSON",
				Destination: &cmd.jsonOutput,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *VoteCmd) run(ctx context.Context, c *cli.Command) error {
	id := c.Args().First()
	if err := anecdote.ValidateID(id); err != nil {
		return err
	}

	current, err := cmd.flags.Service.Get(ctx, id)
	if err != nil {
		return err
	}

	updated, err := cmd.flags.Service.Update(ctx, current.Voted())
	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("voting error details")
		return err
	}

	out := c.Root().Writer
	if cmd.jsonOutput {
		return iojson.WriteLine(out, updated)
	}

	_, err = fmt.Fprintf(out, "anecdote '%s' voted! (has %d)\n", updated.Content, updated.Votes)
	return err
}
