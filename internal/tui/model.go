package tui

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/colonyops/anecdotes/internal/core/anecdote"
	"github.com/colonyops/anecdotes/internal/data/anecdoteapi"
	"github.com/colonyops/anecdotes/internal/tui/form"
	"github.com/colonyops/anecdotes/internal/tui/notify"
	"github.com/colonyops/anecdotes/pkg/querycache"
)

// anecdotesKey addresses the anecdote list in the query cache.
const anecdotesKey = "anecdotes"

// User-facing texts.
const (
	textLoading        = "loading data..."
	textRefreshing     = "refreshing..."
	textUnavailable    = "anecdote service not available due to problem in server"
	textTooShort       = "too short anecdote, must have length 5 characters or more."
	textCreateFailed   = "An error occured while adding the anecdote."
	textVoteFailed     = "An error occured while voting."
	textCreatedFormat  = "New anecdote added: %s"
	textVotedFormat    = "anecdote '%s' voted!"
	textTitle          = "Anecdote app"
	textEmptyList      = "no anecdotes yet"
	textVoteButton     = "vote"
	textVotesFormat    = "has %d"
	textServiceCaption = "service: %s"
)

type focusArea int

const (
	focusForm focusArea = iota
	focusList
)

// Deps are the collaborators of the TUI.
type Deps struct {
	Service anecdote.Service
	Cache   *querycache.Cache[[]anecdote.Anecdote] // optional, a fresh cache is used when nil
	Logger  zerolog.Logger
	Tick    notify.TickFunc // optional, schedules banner hides; tea.Tick when nil
}

// Opts configures the TUI behavior.
type Opts struct {
	NotificationDuration time.Duration // defaults to notify.DefaultDuration
	ServiceURL           string        // shown under the title when set
}

// Model is the root Bubble Tea model. It owns the notification state and
// the anecdote query and hands derived values to the form and banner.
type Model struct {
	svc    anecdote.Service
	cache  *querycache.Cache[[]anecdote.Anecdote]
	log    zerolog.Logger
	ctx    context.Context
	cancel context.CancelFunc

	banner         *notify.Banner
	notifyDuration time.Duration
	form           *form.Form
	spinner        spinner.Model
	help           help.Model
	keys           keyMap
	serviceURL     string
	focus          focusArea
	cursor         int
	width          int
	height         int
	quitting       bool
}

// New creates the root model.
func New(deps Deps, opts Opts) *Model {
	cache := deps.Cache
	if cache == nil {
		cache = querycache.New[[]anecdote.Anecdote]()
	}

	duration := opts.NotificationDuration
	if duration <= 0 {
		duration = notify.DefaultDuration
	}

	ctx, cancel := context.WithCancel(context.Background())

	m := &Model{
		svc:            deps.Service,
		cache:          cache,
		log:            deps.Logger,
		ctx:            ctx,
		cancel:         cancel,
		banner:         notify.NewBanner(duration, deps.Tick),
		notifyDuration: duration,
		spinner:        newSpinner(),
		help:           help.New(),
		keys:           defaultKeyMap(),
		serviceURL:     opts.ServiceURL,
		focus:          focusForm,
	}
	m.form = form.New(m.createAnecdote)

	return m
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		m.loadAnecdotes(),
		m.spinner.Tick,
		m.form.Focus(),
	)
}

// loadAnecdotes fetches the list through the cache. There is no retry.
func (m *Model) loadAnecdotes() tea.Cmd {
	ctx, svc, cache := m.ctx, m.svc, m.cache
	return func() tea.Msg {
		_, err := cache.Fetch(ctx, anecdotesKey, svc.List)
		return anecdotesLoadedMsg{err: err}
	}
}

// createAnecdote validates content and, when acceptable, submits it to the
// service with zero votes.
func (m *Model) createAnecdote(content string) tea.Cmd {
	if err := anecdote.ValidateContent(content); err != nil {
		m.log.Debug().Str("content", content).Msg("rejected short anecdote")
		return m.triggerNotification(notify.Error(textTooShort, m.notifyDuration))
	}

	ctx, svc := m.ctx, m.svc
	draft := anecdote.New(content)
	return func() tea.Msg {
		created, err := svc.Create(ctx, draft)
		return anecdoteCreatedMsg{anecdote: created, err: err}
	}
}

// vote submits a with its vote counter incremented.
func (m *Model) vote(a anecdote.Anecdote) tea.Cmd {
	m.log.Debug().Str("id", a.ID.String()).Str("content", a.Content).Msg("voting for anecdote")

	ctx, svc := m.ctx, m.svc
	voted := a.Voted()
	return func() tea.Msg {
		updated, err := svc.Update(ctx, voted)
		return anecdoteVotedMsg{anecdote: updated, err: err}
	}
}

// triggerNotification replaces whatever the banner shows and arms a fresh
// hide.
func (m *Model) triggerNotification(n notify.Notification) tea.Cmd {
	m.log.Debug().
		Str("message", n.Message).
		Str("level", string(n.Level)).
		Dur("duration", n.Duration).
		Msg("showing notification")
	return m.banner.Show(n)
}

func (m *Model) handleCreated(msg anecdoteCreatedMsg) tea.Cmd {
	if msg.err != nil {
		m.log.Error().Err(msg.err).Msg("create anecdote")
		return m.triggerNotification(notify.Error(textCreateFailed, m.notifyDuration))
	}

	created := msg.anecdote
	m.cache.SetData(anecdotesKey, func(old []anecdote.Anecdote, _ bool) []anecdote.Anecdote {
		next := make([]anecdote.Anecdote, 0, len(old)+1)
		next = append(next, old...)
		return append(next, created)
	})

	return m.triggerNotification(notify.Success(fmt.Sprintf(textCreatedFormat, created.Content), m.notifyDuration))
}

func (m *Model) handleVoted(msg anecdoteVotedMsg) tea.Cmd {
	if msg.err != nil {
		ev := m.log.Error().Err(msg.err)
		var statusErr *anecdoteapi.StatusError
		if errors.As(msg.err, &statusErr) {
			ev = ev.Int("status", statusErr.StatusCode).Str("body", statusErr.Body)
		}
		ev.Msg("voting error details")
		return m.triggerNotification(notify.Error(textVoteFailed, m.notifyDuration))
	}

	var cmds []tea.Cmd
	if m.cache.Invalidate(anecdotesKey) {
		cmds = append(cmds, m.loadAnecdotes())
	}
	cmds = append(cmds, m.triggerNotification(notify.Success(fmt.Sprintf(textVotedFormat, msg.anecdote.Content), m.notifyDuration)))

	return tea.Batch(cmds...)
}

func (m *Model) quit() tea.Cmd {
	m.quitting = true
	m.banner.Stop()
	m.cancel()
	return tea.Quit
}

// queryState returns the current list query entry. A key that has never been
// fetched counts as loading.
func (m *Model) queryState() querycache.Entry[[]anecdote.Anecdote] {
	e, ok := m.cache.Get(anecdotesKey)
	if !ok || e.Status == querycache.StatusIdle {
		e.Status = querycache.StatusLoading
	}
	return e
}

func (m *Model) anecdotes() []anecdote.Anecdote {
	return m.cache.Data(anecdotesKey)
}

func (m *Model) clampCursor() {
	n := len(m.anecdotes())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// Notification returns what the banner currently shows.
func (m *Model) Notification() notify.Notification {
	return m.banner.Current()
}
