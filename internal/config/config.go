package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"filesort/internal/formats"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains the default source and output directories.
type Paths struct {
	SourceDir string `toml:"source_dir"`
	OutputDir string `toml:"output_dir"`
}

// Organize contains batch behaviour settings.
type Organize struct {
	// Jobs bounds concurrent moves. Zero means unbounded.
	Jobs int `toml:"jobs"`
	// FormatsFile points at a standalone TOML or YAML Format Table. Ignored
	// when the config itself declares [[formats]].
	FormatsFile string `toml:"formats_file"`
}

// Journal contains configuration for the move history database.
type Journal struct {
	Enabled            bool   `toml:"enabled"`
	Path               string `toml:"path"`
	LockTimeoutSeconds int    `toml:"lock_timeout_seconds"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
	File   string `toml:"file"`
}

// Config encapsulates all configuration values for filesort.
type Config struct {
	Paths    Paths              `toml:"paths"`
	Organize Organize           `toml:"organize"`
	Journal  Journal            `toml:"journal"`
	Logging  Logging            `toml:"logging"`
	Formats  []formats.Category `toml:"formats"`

	table *formats.Table
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized. The second return value is the resolved
// path and the third reports whether a file was actually read.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath(defaultConfigPath)
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("filesort.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// FormatTable returns the resolved Format Table. It is built during Validate.
func (c *Config) FormatTable() (*formats.Table, error) {
	if c.table != nil {
		return c.table, nil
	}
	table, err := c.buildFormatTable()
	if err != nil {
		return nil, err
	}
	c.table = table
	return table, nil
}

func (c *Config) buildFormatTable() (*formats.Table, error) {
	if len(c.Formats) > 0 {
		table, err := formats.New(c.Formats)
		if err != nil {
			return nil, fmt.Errorf("formats: %w", err)
		}
		return table, nil
	}
	if c.Organize.FormatsFile != "" {
		table, err := formats.Load(c.Organize.FormatsFile)
		if err != nil {
			return nil, fmt.Errorf("organize.formats_file: %w", err)
		}
		return table, nil
	}
	return formats.Default(), nil
}

// JournalLockPath returns the lock file guarding journal writes.
func (c *Config) JournalLockPath() string {
	return c.Journal.Path + ".lock"
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

func defaultJournalPath() string {
	if base, ok := os.LookupEnv("XDG_DATA_HOME"); ok && strings.TrimSpace(base) != "" {
		return filepath.Join(base, "filesort", "journal.db")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "~/.local/share/filesort/journal.db"
	}
	return filepath.Join(home, ".local", "share", "filesort", "journal.db")
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

// Encode renders the effective configuration as TOML.
func (c *Config) Encode() (string, error) {
	var b strings.Builder
	encoder := toml.NewEncoder(&b)
	encoder.SetIndentTables(true)
	if err := encoder.Encode(c); err != nil {
		return "", fmt.Errorf("encode config: %w", err)
	}
	return b.String(), nil
}
