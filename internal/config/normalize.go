package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	if err := c.normalizeOrganize(); err != nil {
		return err
	}
	if err := c.normalizeJournal(); err != nil {
		return err
	}
	c.normalizeLogging()
	c.normalizeFormats()
	return nil
}

func (c *Config) normalizePaths() error {
	if value, ok := os.LookupEnv("FILESORT_SOURCE_DIR"); ok && strings.TrimSpace(value) != "" {
		c.Paths.SourceDir = value
	}
	if value, ok := os.LookupEnv("FILESORT_OUTPUT_DIR"); ok && strings.TrimSpace(value) != "" {
		c.Paths.OutputDir = value
	}

	var err error
	c.Paths.SourceDir = strings.TrimSpace(c.Paths.SourceDir)
	if c.Paths.SourceDir == "" {
		c.Paths.SourceDir = defaultSourceDir
	}
	if c.Paths.SourceDir, err = expandPath(c.Paths.SourceDir); err != nil {
		return fmt.Errorf("paths.source_dir: %w", err)
	}
	c.Paths.OutputDir = strings.TrimSpace(c.Paths.OutputDir)
	if c.Paths.OutputDir == "" {
		c.Paths.OutputDir = c.Paths.SourceDir
	}
	if c.Paths.OutputDir, err = expandPath(c.Paths.OutputDir); err != nil {
		return fmt.Errorf("paths.output_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeOrganize() error {
	c.Organize.FormatsFile = strings.TrimSpace(c.Organize.FormatsFile)
	if c.Organize.FormatsFile == "" {
		return nil
	}
	var err error
	if c.Organize.FormatsFile, err = expandPath(c.Organize.FormatsFile); err != nil {
		return fmt.Errorf("organize.formats_file: %w", err)
	}
	return nil
}

func (c *Config) normalizeJournal() error {
	c.Journal.Path = strings.TrimSpace(c.Journal.Path)
	if c.Journal.Path == "" {
		c.Journal.Path = defaultJournalPath()
	}
	var err error
	if c.Journal.Path, err = expandPath(c.Journal.Path); err != nil {
		return fmt.Errorf("journal.path: %w", err)
	}
	if c.Journal.LockTimeoutSeconds == 0 {
		c.Journal.LockTimeoutSeconds = defaultJournalLockTimeout
	}
	return nil
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	c.Logging.File = strings.TrimSpace(c.Logging.File)
	if c.Logging.File != "" {
		if expanded, err := expandPath(c.Logging.File); err == nil {
			c.Logging.File = expanded
		}
	}
}

func (c *Config) normalizeFormats() {
	for i := range c.Formats {
		c.Formats[i].Name = strings.TrimSpace(c.Formats[i].Name)
	}
}
