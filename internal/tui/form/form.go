// Package form implements the single-field form used to create anecdotes.
package form

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/colonyops/anecdotes/internal/core/styles"
)

const (
	inputWidth = 60
	charLimit  = 500
)

// SubmitFunc receives the trimmed form content. Validation is left to the
// caller.
type SubmitFunc func(content string) tea.Cmd

var submitKey = key.NewBinding(
	key.WithKeys("enter"),
	key.WithHelp("enter", "create"),
)

// Form captures free text and hands it to a submit callback.
type Form struct {
	input    textinput.Model
	title    string
	focused  bool
	onSubmit SubmitFunc
}

// New creates a blurred form that calls onSubmit when the user submits.
func New(onSubmit SubmitFunc) *Form {
	ti := textinput.New()
	ti.Placeholder = "write an anecdote"
	ti.Prompt = ""
	ti.Width = inputWidth
	ti.CharLimit = charLimit
	ti.PlaceholderStyle = lipgloss.NewStyle().Foreground(styles.CurrentPalette.Muted)
	ti.Cursor.Style = lipgloss.NewStyle().Foreground(styles.CurrentPalette.Primary)

	return &Form{
		input:    ti,
		title:    "create new",
		onSubmit: onSubmit,
	}
}

// Update handles input while the form is focused. Submitting trims the
// value, passes it to the callback and clears the field whatever the callback
// decides.
func (f *Form) Update(msg tea.Msg) tea.Cmd {
	if !f.focused {
		return nil
	}

	if km, ok := msg.(tea.KeyMsg); ok && key.Matches(km, submitKey) {
		return f.Submit()
	}

	var cmd tea.Cmd
	f.input, cmd = f.input.Update(msg)
	return cmd
}

// Submit behaves like pressing enter in the field.
func (f *Form) Submit() tea.Cmd {
	content := strings.TrimSpace(f.input.Value())

	var cmd tea.Cmd
	if f.onSubmit != nil {
		cmd = f.onSubmit(content)
	}

	f.input.Reset()
	return cmd
}

func (f *Form) View() string {
	titleStyle := styles.TextMutedStyle
	borderStyle := styles.FormFieldStyle
	if f.focused {
		titleStyle = styles.FormTitleStyle
		borderStyle = styles.FormFieldFocusedStyle
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(f.title),
		f.input.View(),
	)

	return borderStyle.Render(content)
}

func (f *Form) Focus() tea.Cmd {
	f.focused = true
	return f.input.Focus()
}

func (f *Form) Blur() {
	f.focused = false
	f.input.Blur()
}

func (f *Form) Focused() bool { return f.focused }
func (f *Form) Value() string { return f.input.Value() }

// SetValue replaces the field content.
func (f *Form) SetValue(s string) { f.input.SetValue(s) }

// SubmitKey returns the binding that submits the form, for help rendering.
func SubmitKey() key.Binding { return submitKey }
