package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/anecdotes/internal/core/anecdote"
	"github.com/colonyops/anecdotes/pkg/iojson"
)

type AddCmd struct {
	flags *Flags

	// flags
	jsonOutput bool

	// prompt asks for content when none is given on the command line
	prompt func() (string, error)
}

// NewAddCmd creates a new add command
func NewAddCmd(flags *Flags) *AddCmd {
	return &AddCmd{flags: flags, prompt: promptContent}
}

// Register adds the add command to the application
func (cmd *AddCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "add",
		Usage:     "Create a new anecdote",
		UsageText: "anecdotes add [--json] [content...]",
		Description: `Creates an anecdote with zero votes. Content shorter than 5 characters is rejected.

Without arguments an interactive prompt asks for the content.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output the created anecdote as JSON",
				Destination: &cmd.jsonOutput,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *AddCmd) run(ctx context.Context, c *cli.Command) error {
	content := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))

	if content == "" {
		var err error
		content, err = cmd.prompt()
		if err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return nil
			}
			return fmt.Errorf("prompt: %w", err)
		}
	}

	if err := anecdote.ContentField("content", content); err != nil {
		return err
	}

	created, err := cmd.flags.Service.Create(ctx, anecdote.New(content))
	if err != nil {
		return err
	}

	log.Info().Str("id", created.ID.String()).Msg("anecdote created")

	out := c.Root().Writer
	if cmd.jsonOutput {
		return iojson.WriteLine(out, created)
	}

	_, err = fmt.Fprintf(out, "New anecdote added: %s (%s)\n", created.Content, created.ID)
	return err
}

func promptContent() (string, error) {
	var content string
	err := huh.NewInput().
		Title("New anecdote").
		Placeholder("at least 5 characters").
		Value(&content).
		Validate(anecdote.ValidateContent).
		Run()
	return strings.TrimSpace(content), err
}
