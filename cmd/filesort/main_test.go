package main

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"filesort/internal/testsupport"
)

func TestOrganizeByDefaults(t *testing.T) {
	env := setupCLITestEnv(t)
	testsupport.WriteFiles(t, env.sourceDir, "a.jpg", "b.pdf", "c.unknownext", ".hidden")

	out, _, err := runCLI(t, env, "organize")
	if err != nil {
		t.Fatalf("organize: %v\n%s", err, out)
	}
	requireExists(t, filepath.Join(env.outputDir, "Images", "a.jpg"))
	requireExists(t, filepath.Join(env.outputDir, "Documents", "b.pdf"))
	requireExists(t, filepath.Join(env.outputDir, "Miscellaneous", "c.unknownext"))
	requireExists(t, filepath.Join(env.sourceDir, ".hidden"))
	requireContains(t, out, "Recorded run")
}

func TestOrganizeListPrintsMovesOnly(t *testing.T) {
	env := setupCLITestEnv(t)
	testsupport.WriteFiles(t, env.sourceDir, "a.jpg")
	before := testsupport.Snapshot(t, env.baseDir)

	out, _, err := runCLI(t, env, "organize", "--list")
	if err != nil {
		t.Fatalf("organize --list: %v", err)
	}
	want := "mv " + filepath.Join(env.sourceDir, "a.jpg") + " " + filepath.Join(env.outputDir, "Images", "a.jpg")
	requireContains(t, out, want)
	requireMissing(t, env.outputDir)
	requireMissing(t, env.journalPath)
	if after := testsupport.Snapshot(t, env.baseDir); len(after) != len(before) {
		t.Fatalf("list mode changed the tree: before=%v after=%v", before, after)
	}
}

func TestOrganizeSpecificFormats(t *testing.T) {
	env := setupCLITestEnv(t)
	testsupport.WriteFiles(t, env.sourceDir, "x.png", "x.PNG", "y.txt")

	if _, _, err := runCLI(t, env, "organize", "-f", "png", "-t", "Pics"); err != nil {
		t.Fatalf("organize formats: %v", err)
	}
	requireExists(t, filepath.Join(env.outputDir, "Pics", "x.png"))
	requireExists(t, filepath.Join(env.sourceDir, "x.PNG"))
	requireExists(t, filepath.Join(env.sourceDir, "y.txt"))
}

func TestOrganizeFormatsRequiresFolder(t *testing.T) {
	env := setupCLITestEnv(t)
	if _, _, err := runCLI(t, env, "organize", "--formats", "png"); err == nil {
		t.Fatal("expected error when --folder is missing")
	}
}

func TestOrganizeByDateWithPositionalDirs(t *testing.T) {
	env := setupCLITestEnv(t)
	src := filepath.Join(env.baseDir, "other")
	dst := filepath.Join(env.baseDir, "by-date")
	stamp := time.Date(2023, 7, 4, 9, 30, 0, 0, time.Local)
	testsupport.WriteFileAt(t, filepath.Join(src, "photo.jpg"), stamp)

	if _, _, err := runCLI(t, env, "organize", "--by-date", src, dst); err != nil {
		t.Fatalf("organize by date: %v", err)
	}
	requireExists(t, filepath.Join(dst, "2023-07-04", "photo.jpg"))
}

func TestOrganizeFailsWhenSourceMissing(t *testing.T) {
	env := setupCLITestEnv(t)
	_, _, err := runCLI(t, env, "organize", filepath.Join(env.baseDir, "missing"))
	if err == nil || !strings.Contains(err.Error(), "read source directory") {
		t.Fatalf("expected read error, got %v", err)
	}
}

func TestHistoryAndUndo(t *testing.T) {
	env := setupCLITestEnv(t)
	testsupport.WriteFiles(t, env.sourceDir, "a.jpg", "b.mp3")

	out, _, err := runCLI(t, env, "organize")
	if err != nil {
		t.Fatalf("organize: %v", err)
	}
	match := regexp.MustCompile(`Recorded run ([0-9a-f]{8})`).FindStringSubmatch(out)
	if match == nil {
		t.Fatalf("run id missing from output:\n%s", out)
	}
	runID := match[1]

	out, _, err = runCLI(t, env, "history")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	requireContains(t, out, runID)

	out, _, err = runCLI(t, env, "history", runID)
	if err != nil {
		t.Fatalf("history run: %v", err)
	}
	requireContains(t, out, "a.jpg")
	requireContains(t, out, "b.mp3")

	if _, _, err := runCLI(t, env, "undo", "--list", runID); err != nil {
		t.Fatalf("undo --list: %v", err)
	}
	requireExists(t, filepath.Join(env.outputDir, "Images", "a.jpg"))

	out, _, err = runCLI(t, env, "undo", runID)
	if err != nil {
		t.Fatalf("undo: %v\n%s", err, out)
	}
	requireExists(t, filepath.Join(env.sourceDir, "a.jpg"))
	requireExists(t, filepath.Join(env.sourceDir, "b.mp3"))
	requireMissing(t, filepath.Join(env.outputDir, "Images", "a.jpg"))

	if _, _, err := runCLI(t, env, "undo", runID); err == nil {
		t.Fatal("expected second undo to fail")
	}
}

func TestFormatsCommandUsesConfigTable(t *testing.T) {
	env := setupCLITestEnv(t)
	writeTestConfig(t, env, `
[[formats]]
category = "Pictures"
extensions = ["JPG", "PNG"]
`)
	out, _, err := runCLI(t, env, "formats")
	if err != nil {
		t.Fatalf("formats: %v", err)
	}
	requireContains(t, out, "Pictures")
	requireContains(t, out, "JPG, PNG")
	if strings.Contains(out, "Documents") {
		t.Fatalf("inline table should replace the built-in one:\n%s", out)
	}
}

func TestCheckCommand(t *testing.T) {
	env := setupCLITestEnv(t)
	out, _, err := runCLI(t, env, "check")
	if err != nil {
		t.Fatalf("check: %v\n%s", err, out)
	}
	requireContains(t, out, "Source directory:")
	requireContains(t, out, "will be created")

	blocker := filepath.Join(env.baseDir, "file")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	out, _, err = runCLI(t, env, "check", env.sourceDir, filepath.Join(blocker, "out"))
	if err == nil {
		t.Fatalf("expected failure for output under a file:\n%s", out)
	}
	requireContains(t, out, "[ERROR]")
}

func TestConfigInitAndShow(t *testing.T) {
	env := setupCLITestEnv(t)

	target := filepath.Join(t.TempDir(), "config.toml")
	out, _, err := runCLI(t, env, "config", "init", "--path", target)
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration")
	requireExists(t, target)

	if _, _, err := runCLI(t, env, "config", "init", "--path", target); err == nil {
		t.Fatal("expected init to refuse overwriting")
	}

	out, _, err = runCLI(t, env, "config", "show")
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	requireContains(t, out, env.sourceDir)

	out, _, err = runCLI(t, env, "config", "validate")
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	requireContains(t, out, "Configuration valid")
}

func TestLogFlagOverrideIsValidated(t *testing.T) {
	env := setupCLITestEnv(t)
	if _, _, err := runCLI(t, env, "--log-level", "loud", "formats"); err == nil {
		t.Fatal("expected invalid log level to fail")
	}
}

func TestOrganizeReportsBatchAbort(t *testing.T) {
	env := setupCLITestEnv(t)
	testsupport.WriteFiles(t, env.sourceDir, "a.jpg")
	blocker := filepath.Join(env.baseDir, "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, _, err := runCLI(t, env, "organize", env.sourceDir, filepath.Join(blocker, "out"))
	if err == nil || !strings.Contains(err.Error(), "organize aborted, no files were moved") {
		t.Fatalf("expected batch abort error, got %v", err)
	}
	requireExists(t, filepath.Join(env.sourceDir, "a.jpg"))
}
