package logging_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"filesort/internal/config"
	"filesort/internal/logging"
)

func newFileLogger(t *testing.T, level, format string) (string, func() string) {
	t.Helper()
	logPath := filepath.Join(t.TempDir(), "filesort.log")
	logger, err := logging.New(logging.Options{
		Level:       level,
		Format:      format,
		OutputPaths: []string{logPath},
	})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logging.NewComponentLogger(logger, "organizer").Info("organize finished", logging.Int("moved", 3))
	logger.Debug("debug detail")
	return logPath, func() string {
		data, err := os.ReadFile(logPath)
		if err != nil {
			t.Fatalf("read log file: %v", err)
		}
		return string(data)
	}
}

func TestConsoleLoggerFormatsComponentAndAttrs(t *testing.T) {
	_, read := newFileLogger(t, "info", "console")
	content := read()
	if !strings.Contains(content, "INFO organizer: organize finished moved=3") {
		t.Fatalf("unexpected console line %q", content)
	}
	if strings.Contains(content, "debug detail") {
		t.Fatalf("debug line should be filtered at info level: %q", content)
	}
	if strings.Contains(content, ".go:") {
		t.Fatalf("expected no caller information in info logs, got %q", content)
	}
}

func TestConsoleLoggerIncludesCallerForDebug(t *testing.T) {
	_, read := newFileLogger(t, "debug", "console")
	content := read()
	if !strings.Contains(content, "debug detail") {
		t.Fatalf("expected debug line, got %q", content)
	}
	if !strings.Contains(content, ".go:") {
		t.Fatalf("expected caller information in debug logs, got %q", content)
	}
}

func TestJSONLoggerUsesShortKeys(t *testing.T) {
	_, read := newFileLogger(t, "info", "json")
	content := read()
	for _, fragment := range []string{`"ts":`, `"level":"info"`, `"component":"organizer"`, `"moved":3`} {
		if !strings.Contains(content, fragment) {
			t.Fatalf("expected %s in %q", fragment, content)
		}
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestNewFromConfigWritesJSONFile(t *testing.T) {
	cfg := config.Default()
	cfg.Logging.Level = "info"
	cfg.Logging.File = filepath.Join(t.TempDir(), "logs", "filesort.log")

	logger, err := logging.NewFromConfig(&cfg)
	if err != nil {
		t.Fatalf("NewFromConfig: %v", err)
	}
	logger.Info("journal recorded")

	data, err := os.ReadFile(cfg.Logging.File)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), `"msg":"journal recorded"`) {
		t.Fatalf("expected JSON record, got %q", data)
	}
}

func TestWithContextAddsRunFields(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "ctx.log")
	logger, err := logging.New(logging.Options{Format: "json", OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatal(err)
	}
	ctx := logging.WithStrategy(logging.WithRunID(context.Background(), "run-123"), "dates")
	if id, ok := logging.RunIDFromContext(ctx); !ok || id != "run-123" {
		t.Fatalf("RunIDFromContext = %q, %v", id, ok)
	}
	logging.WithContext(ctx, logger).Info("dispatch")

	data, _ := os.ReadFile(logPath)
	for _, fragment := range []string{`"run_id":"run-123"`, `"strategy":"dates"`} {
		if !strings.Contains(string(data), fragment) {
			t.Fatalf("expected %s in %q", fragment, data)
		}
	}
}

func TestWithContextNilLogger(t *testing.T) {
	if logging.WithContext(context.Background(), nil) == nil {
		t.Fatal("expected no-op logger")
	}
}
