package report_test

import (
	"bytes"
	"strings"
	"sync"
	"testing"

	"filesort/internal/logging"
	"filesort/internal/report"
	"filesort/internal/testsupport"
)

func TestConsoleWritesOneLinePerMessage(t *testing.T) {
	var buf bytes.Buffer
	console := report.NewConsole(&buf)
	console.Info("mv /src/a.jpg /out/Images/a.jpg")
	console.Warn("failed to move b.txt: permission denied")

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %q", len(lines), buf.String())
	}
	if !strings.Contains(lines[0], "mv /src/a.jpg /out/Images/a.jpg") {
		t.Fatalf("unexpected info line %q", lines[0])
	}
	if !strings.Contains(lines[1], "warning: failed to move b.txt") {
		t.Fatalf("unexpected warn line %q", lines[1])
	}
}

func TestConsoleIsSafeForConcurrentUse(t *testing.T) {
	var buf bytes.Buffer
	console := report.NewConsole(&buf)
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			console.Info("moved")
		}()
	}
	wg.Wait()
	if got := strings.Count(buf.String(), "\n"); got != 50 {
		t.Fatalf("expected 50 lines, got %d", got)
	}
}

func TestMultiFansOutAndSkipsNil(t *testing.T) {
	first := &testsupport.Reporter{}
	second := &testsupport.Reporter{}
	r := report.Multi(first, nil, second)
	r.Info("hello")
	r.Warn("careful")

	for i, rec := range []*testsupport.Reporter{first, second} {
		if got := rec.Infos(); len(got) != 1 || got[0] != "hello" {
			t.Fatalf("reporter %d infos = %v", i, got)
		}
		if got := rec.Warns(); len(got) != 1 || got[0] != "careful" {
			t.Fatalf("reporter %d warns = %v", i, got)
		}
	}
}

func TestFromLoggerAcceptsNil(t *testing.T) {
	r := report.FromLogger(nil)
	r.Info("ignored")
	r.Warn("ignored")
	report.FromLogger(logging.NewNop()).Info("ignored")
	report.Nop().Warn("ignored")
}

func TestConsoleKeepsTabsInMessages(t *testing.T) {
	var buf bytes.Buffer
	console := report.NewConsole(&buf)
	line := "mv /src/tab\tname.jpg /out/Images/tab\tname.jpg"
	console.Info(line)
	console.Warn("failed to move tab\tname.jpg: denied")

	out := buf.String()
	if !strings.Contains(out, line+"\n") {
		t.Fatalf("tab was not preserved in info line: %q", out)
	}
	if !strings.Contains(out, "warning: failed to move tab\tname.jpg: denied\n") {
		t.Fatalf("tab was not preserved in warn line: %q", out)
	}
}
