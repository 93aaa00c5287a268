package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"

	"github.com/colonyops/anecdotes/internal/core/anecdote"
	"github.com/colonyops/anecdotes/internal/core/styles"
	"github.com/colonyops/anecdotes/pkg/querycache"
)

func newSpinner() spinner.Model {
	return spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(styles.SpinnerStyle),
	)
}

func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	switch m.queryState().Status {
	case querycache.StatusLoading:
		return m.spinner.View() + " " + textLoading
	case querycache.StatusError:
		return styles.ErrorTextStyle.Render(textUnavailable)
	}

	sections := []string{m.renderHeader()}
	if banner := m.banner.View(m.width); banner != "" {
		sections = append(sections, banner)
	}
	sections = append(sections,
		m.form.View(),
		"",
		m.renderList(),
		"",
		m.renderHelp(),
	)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *Model) renderHeader() string {
	title := styles.TitleStyle.Render(textTitle)
	if m.queryState().Fetching {
		title += " " + styles.TextMutedStyle.Render(textRefreshing)
	}
	if m.serviceURL == "" {
		return title
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		styles.TextMutedStyle.Render(fmt.Sprintf(textServiceCaption, m.serviceURL)),
	)
}

func (m *Model) renderList() string {
	items := m.anecdotes()
	if len(items) == 0 {
		return styles.TextMutedStyle.Render(textEmptyList)
	}

	rows := make([]string, 0, len(items))
	for i, a := range items {
		rows = append(rows, m.renderRow(a, i == m.cursor && m.focus == focusList))
	}
	return strings.Join(rows, "\n")
}

func (m *Model) renderRow(a anecdote.Anecdote, selected bool) string {
	button := styles.VoteButtonStyle.Render("[" + textVoteButton + "]")
	rowStyle := styles.RowStyle
	if selected {
		button = styles.VoteButtonActive.Render("[" + textVoteButton + "]")
		rowStyle = styles.RowSelectedStyle
	}

	votes := styles.VotesStyle.Render(fmt.Sprintf(textVotesFormat, a.Votes))
	return rowStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		a.Content,
		votes+" "+button,
	))
}

func (m *Model) renderHelp() string {
	var km help.KeyMap = formKeys{m.keys}
	if m.focus == focusList {
		km = listKeys{m.keys}
	}
	return m.help.View(km)
}
