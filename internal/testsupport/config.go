package testsupport

import (
	"path/filepath"
	"testing"

	"filesort/internal/config"
	"filesort/internal/formats"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// Source and output live side by side under the same temp root and the
// journal is enabled in the same root.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.SourceDir = filepath.Join(base, "source")
	cfgVal.Paths.OutputDir = filepath.Join(base, "output")
	cfgVal.Journal.Enabled = true
	cfgVal.Journal.Path = filepath.Join(base, "state", "journal.db")
	cfgVal.Journal.LockTimeoutSeconds = 2
	cfgVal.Logging.Level = "error"

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	if err := cfgVal.Validate(); err != nil {
		t.Fatalf("test config invalid: %v", err)
	}
	return builder.cfg
}

// WithJobs overrides the move concurrency bound.
func WithJobs(jobs int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Organize.Jobs = jobs
	}
}

// WithFormats replaces the Format Table with inline categories.
func WithFormats(categories ...formats.Category) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Formats = categories
	}
}

// WithoutJournal disables move history.
func WithoutJournal() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Journal.Enabled = false
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.SourceDir)
}
