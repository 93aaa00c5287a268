package tui

import "github.com/colonyops/anecdotes/internal/core/anecdote"

// anecdotesLoadedMsg reports completion of a list fetch. The result itself
// lives in the query cache.
type anecdotesLoadedMsg struct {
	err error
}

// anecdoteCreatedMsg carries the service's copy of a newly created anecdote.
type anecdoteCreatedMsg struct {
	anecdote anecdote.Anecdote
	err      error
}

// anecdoteVotedMsg carries the service's copy of a voted anecdote.
type anecdoteVotedMsg struct {
	anecdote anecdote.Anecdote
	err      error
}
