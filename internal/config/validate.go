package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateOrganize(); err != nil {
		return err
	}
	if err := c.validateJournal(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	if _, err := c.FormatTable(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateOrganize() error {
	if c.Organize.Jobs < 0 {
		return errors.New("organize.jobs must be zero (unbounded) or positive")
	}
	return nil
}

func (c *Config) validateJournal() error {
	if c.Journal.LockTimeoutSeconds < 0 {
		return errors.New("journal.lock_timeout_seconds must be positive")
	}
	if c.Journal.Enabled && c.Journal.Path == "" {
		return errors.New("journal.path must be set when the journal is enabled")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q (use console or json)", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}
