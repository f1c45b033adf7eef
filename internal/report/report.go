// Package report defines the two-method sink the organizer uses to tell the
// user what happened, plus console, logger and fan-out implementations.
//
// Every implementation is safe for concurrent use: moves report from their own
// goroutines.
package report

import (
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"filesort/internal/logging"
)

// Reporter receives progress and failure messages.
type Reporter interface {
	Info(message string)
	Warn(message string)
}

// Console writes one styled line per message. Styling is dropped
// automatically when w is not a terminal.
type Console struct {
	mu        sync.Mutex
	w         io.Writer
	infoStyle lipgloss.Style
	warnStyle lipgloss.Style
}

// NewConsole builds a Console writing to w.
func NewConsole(w io.Writer) *Console {
	renderer := lipgloss.NewRenderer(w)
	return &Console{
		w:         w,
		infoStyle: renderer.NewStyle().Foreground(lipgloss.Color("#A8DADC")),
		warnStyle: renderer.NewStyle().Foreground(lipgloss.Color("#FFE66D")).Bold(true),
	}
}

func (c *Console) Info(message string) {
	c.write(renderSegments(c.infoStyle, message))
}

func (c *Console) Warn(message string) {
	c.write(renderSegments(c.warnStyle, "warning: "+message))
}

// renderSegments styles the text between tabs and keeps the tabs themselves,
// since Render expands them to spaces and paths must print unchanged.
func renderSegments(style lipgloss.Style, message string) string {
	parts := strings.Split(message, "\t")
	for i, part := range parts {
		if part != "" {
			parts[i] = style.Render(part)
		}
	}
	return strings.Join(parts, "\t")
}

func (c *Console) write(line string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, _ = io.WriteString(c.w, strings.TrimRight(line, "\n")+"\n")
}

type loggerReporter struct {
	logger *slog.Logger
}

// FromLogger adapts a slog logger: Info maps to INFO and Warn to WARN.
func FromLogger(logger *slog.Logger) Reporter {
	if logger == nil {
		logger = logging.NewNop()
	}
	return loggerReporter{logger: logger}
}

func (r loggerReporter) Info(message string) { r.logger.Info(message) }

func (r loggerReporter) Warn(message string) { r.logger.Warn(message) }

type multi []Reporter

// Multi fans every message out to each non-nil reporter in order.
func Multi(reporters ...Reporter) Reporter {
	out := make(multi, 0, len(reporters))
	for _, r := range reporters {
		if r != nil {
			out = append(out, r)
		}
	}
	return out
}

func (m multi) Info(message string) {
	for _, r := range m {
		r.Info(message)
	}
}

func (m multi) Warn(message string) {
	for _, r := range m {
		r.Warn(message)
	}
}

type nop struct{}

// Nop discards everything.
func Nop() Reporter { return nop{} }

func (nop) Info(string) {}

func (nop) Warn(string) {}
