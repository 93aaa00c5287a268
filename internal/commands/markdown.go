package commands

import (
	"fmt"
	"strings"

	"github.com/colonyops/anecdotes/internal/core/anecdote"
)

var tableCellReplacer = strings.NewReplacer(
	"|", `\|`,
	"\r\n", " ",
	"\n", " ",
)

// markdownTable renders anecdotes as a GitHub flavoured markdown table.
func markdownTable(items []anecdote.Anecdote) string {
	var b strings.Builder

	b.WriteString("| ID | VOTES | CONTENT |\n")
	b.WriteString("|----|------:|---------|\n")
	for _, a := range items {
		fmt.Fprintf(&b, "| %s | %d | %s |\n",
			tableCellReplacer.Replace(a.ID.String()),
			a.Votes,
			tableCellReplacer.Replace(a.Content),
		)
	}

	return b.String()
}
