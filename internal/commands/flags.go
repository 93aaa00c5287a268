package commands

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/colonyops/anecdotes/internal/core/anecdote"
	"github.com/colonyops/anecdotes/internal/core/config"
)

type Flags struct {
	LogLevel   string
	LogFile    string
	ConfigPath string
	BaseURL    string

	// Config is loaded in the Before hook and available to all commands
	Config *config.Config

	// Service is the anecdote service client, created in the Before hook
	Service anecdote.Service
}

// DefaultConfigPath returns the default config file path using XDG_CONFIG_HOME.
func DefaultConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, _ := os.UserHomeDir()
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "anecdotes", "config.yaml")
}

// DefaultLogFile returns the default log file path using the system's state directory.
// On macOS: ~/Library/Logs/anecdotes/anecdotes.log
// On Linux: $XDG_STATE_HOME/anecdotes/anecdotes.log (defaults to ~/.local/state/anecdotes/anecdotes.log)
func DefaultLogFile() string {
	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome != "" {
		return filepath.Join(stateHome, "anecdotes", "anecdotes.log")
	}

	home, _ := os.UserHomeDir()

	if runtime.GOOS == "darwin" {
		return filepath.Join(home, "Library", "Logs", "anecdotes", "anecdotes.log")
	}

	return filepath.Join(home, ".local", "state", "anecdotes", "anecdotes.log")
}
