// Package notify implements the transient notification banner shown at the
// top of the anecdote view.
package notify

import "time"

// DefaultDuration is how long a notification stays visible when no explicit
// duration is given.
const DefaultDuration = 5 * time.Second

// Level represents the severity of a notification. It only affects styling.
type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

// Notification is a message shown for a bounded duration. An empty Message
// means nothing is shown.
type Notification struct {
	Message  string
	Duration time.Duration
	Level    Level
}

// Info returns an info-level notification with the given duration.
func Info(msg string, d time.Duration) Notification {
	return Notification{Message: msg, Duration: d, Level: LevelInfo}
}

// Success returns a success-level notification with the given duration.
func Success(msg string, d time.Duration) Notification {
	return Notification{Message: msg, Duration: d, Level: LevelSuccess}
}

// Error returns an error-level notification with the given duration.
func Error(msg string, d time.Duration) Notification {
	return Notification{Message: msg, Duration: d, Level: LevelError}
}
