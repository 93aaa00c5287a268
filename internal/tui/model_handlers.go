package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/colonyops/anecdotes/internal/tui/notify"
	"github.com/colonyops/anecdotes/pkg/querycache"
)

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case spinner.TickMsg:
		// Stop ticking once the first load settles.
		if m.queryState().Status != querycache.StatusLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case anecdotesLoadedMsg:
		if msg.err != nil {
			m.log.Error().Err(msg.err).Msg("load anecdotes")
		} else {
			m.log.Debug().Int("count", len(m.anecdotes())).Msg("anecdotes loaded")
		}
		m.clampCursor()
		return m, nil

	case anecdoteCreatedMsg:
		return m, m.handleCreated(msg)

	case anecdoteVotedMsg:
		return m, m.handleVoted(msg)

	case notify.HideMsg:
		if m.banner.Update(msg) {
			m.log.Debug().Msg("notification cleared")
		}
		return m, nil

	case tea.KeyMsg:
		return m, m.handleKey(msg)
	}

	if m.focus == focusForm {
		return m, m.form.Update(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, m.keys.ForceQ) {
		return m.quit()
	}

	// The loading and error screens accept nothing but quitting.
	if m.queryState().Status != querycache.StatusSuccess {
		if key.Matches(msg, m.keys.Quit) {
			return m.quit()
		}
		return nil
	}

	switch {
	case key.Matches(msg, m.keys.Focus):
		return m.toggleFocus()
	case key.Matches(msg, m.keys.Dismiss):
		m.banner.Dismiss()
		return nil
	}

	if m.focus == focusForm {
		return m.form.Update(msg)
	}

	return m.handleListKey(msg)
}

func (m *Model) handleListKey(msg tea.KeyMsg) tea.Cmd {
	items := m.anecdotes()

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(items)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Vote):
		if m.cursor >= 0 && m.cursor < len(items) {
			return m.vote(items[m.cursor])
		}
	case key.Matches(msg, m.keys.Refresh):
		if m.cache.Invalidate(anecdotesKey) {
			return m.loadAnecdotes()
		}
	}

	return nil
}

func (m *Model) toggleFocus() tea.Cmd {
	if m.focus == focusForm {
		m.focus = focusList
		m.form.Blur()
		return nil
	}
	m.focus = focusForm
	return m.form.Focus()
}
