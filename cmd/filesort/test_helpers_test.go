package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type cliTestEnv struct {
	baseDir     string
	sourceDir   string
	outputDir   string
	journalPath string
	configPath  string
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	t.Setenv("HOME", filepath.Join(base, "home"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(base, "data"))
	t.Setenv("FILESORT_SOURCE_DIR", "")
	t.Setenv("FILESORT_OUTPUT_DIR", "")

	env := &cliTestEnv{
		baseDir:     base,
		sourceDir:   filepath.Join(base, "downloads"),
		outputDir:   filepath.Join(base, "sorted"),
		journalPath: filepath.Join(base, "state", "journal.db"),
		configPath:  filepath.Join(base, "config.toml"),
	}
	if err := os.MkdirAll(env.sourceDir, 0o755); err != nil {
		t.Fatalf("mkdir source: %v", err)
	}
	writeTestConfig(t, env, "")
	return env
}

func writeTestConfig(t *testing.T, env *cliTestEnv, extra string) {
	t.Helper()
	content := fmt.Sprintf(`[paths]
source_dir = %q
output_dir = %q

[organize]
jobs = 4

[journal]
enabled = true
path = %q
lock_timeout_seconds = 2

[logging]
level = "error"
%s`, env.sourceDir, env.outputDir, env.journalPath, extra)
	if err := os.WriteFile(env.configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func runCLI(t *testing.T, env *cliTestEnv, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--config", env.configPath}, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}

func requireExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected %s to exist: %v", path, err)
	}
}

func requireMissing(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("expected %s to be absent (err=%v)", path, err)
	}
}
