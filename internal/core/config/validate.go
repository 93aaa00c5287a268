package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/hay-kot/criterio"

	"github.com/colonyops/anecdotes/internal/core/styles"
)

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	return criterio.ValidateStruct(
		criterio.Run("service.base_url", c.Service.BaseURL, validateBaseURL),
		c.validateDurations(),
		criterio.Run("tui.theme", c.TUI.Theme, validateTheme),
	)
}

func (c *Config) validateDurations() error {
	var errs criterio.FieldErrorsBuilder
	if c.Service.Timeout < 0 {
		errs = errs.Append("service.timeout", fmt.Errorf("must not be negative"))
	}
	if c.Notifications.Duration <= 0 {
		errs = errs.Append("notifications.duration", fmt.Errorf("must be positive"))
	}
	return errs.ToError()
}

func validateBaseURL(raw string) error {
	if raw == "" {
		return fmt.Errorf("is required")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("scheme must be http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("host is required")
	}
	return nil
}

func validateTheme(name string) error {
	if _, ok := styles.GetPalette(name); !ok {
		return fmt.Errorf("unknown theme %q (available: %s)", name, strings.Join(styles.ThemeNames(), ", "))
	}
	return nil
}
