package notify

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/colonyops/anecdotes/internal/core/styles"
)

// HideMsg asks the banner to hide the notification armed with generation Gen.
// Messages for an older generation are stale and ignored.
type HideMsg struct {
	Gen uint64
}

// TickFunc schedules fn to produce a message after d. tea.Tick is the
// production implementation.
type TickFunc func(d time.Duration, fn func(time.Time) tea.Msg) tea.Cmd

// Banner shows at most one notification at a time. Every Show supersedes the
// previous one: the generation counter acts as a single-slot timer register,
// so only the most recently armed hide can take effect.
type Banner struct {
	current         Notification
	visible         bool
	armed           bool
	gen             uint64
	defaultDuration time.Duration
	tick            TickFunc
}

// NewBanner creates a hidden banner. Notifications without a positive
// duration use defaultDuration, or DefaultDuration when that is not positive.
// A nil tick uses tea.Tick.
func NewBanner(defaultDuration time.Duration, tick TickFunc) *Banner {
	if defaultDuration <= 0 {
		defaultDuration = DefaultDuration
	}
	if tick == nil {
		tick = tea.Tick
	}
	return &Banner{
		defaultDuration: defaultDuration,
		tick:            tick,
	}
}

// Show displays n and returns the command that will deliver its HideMsg.
// An empty message hides the banner and disarms any pending hide.
func (b *Banner) Show(n Notification) tea.Cmd {
	b.gen++

	if n.Message == "" {
		b.hide()
		return nil
	}

	if n.Duration <= 0 {
		n.Duration = b.defaultDuration
	}

	b.current = n
	b.visible = true
	b.armed = true

	gen := b.gen
	return b.tick(n.Duration, func(time.Time) tea.Msg {
		return HideMsg{Gen: gen}
	})
}

// Update applies a HideMsg. It reports whether the banner changed state.
func (b *Banner) Update(msg tea.Msg) bool {
	hm, ok := msg.(HideMsg)
	if !ok {
		return false
	}
	if !b.armed || hm.Gen != b.gen {
		return false
	}
	b.hide()
	return true
}

// Dismiss hides the banner immediately.
func (b *Banner) Dismiss() {
	b.gen++
	b.hide()
}

// Stop disarms any pending hide without changing what is displayed. It is
// used when the owning view is torn down.
func (b *Banner) Stop() {
	b.gen++
	b.armed = false
}

func (b *Banner) hide() {
	b.visible = false
	b.armed = false
	b.current = Notification{}
}

// Visible reports whether a notification is being shown.
func (b *Banner) Visible() bool { return b.visible }

// Armed reports whether a hide is pending.
func (b *Banner) Armed() bool { return b.armed }

// Current returns the displayed notification, zero when hidden.
func (b *Banner) Current() Notification { return b.current }

// View renders the banner, or "" when hidden.
func (b *Banner) View(width int) string {
	if !b.visible {
		return ""
	}

	icon, style := styles.IconInfo, styles.BannerInfoStyle
	switch b.current.Level {
	case LevelSuccess:
		icon, style = styles.IconSuccess, styles.BannerSuccessStyle
	case LevelError:
		icon, style = styles.IconError, styles.BannerErrorStyle
	}

	if width > 0 {
		// border plus horizontal padding
		style = style.Width(max(width-2, 10))
	}

	return style.Render(icon + " " + b.current.Message)
}
