package logging

import (
	"context"
	"log/slog"
	"strings"
)

const (
	// FieldComponent is the standardized structured logging key for component names.
	FieldComponent = "component"
	// FieldRunID identifies one organize invocation.
	FieldRunID = "run_id"
	// FieldStrategy names the batch strategy (defaults, file-types, dates, undo).
	FieldStrategy = "strategy"
	// FieldFile is the file name being organized.
	FieldFile = "file"
	// FieldCategory is the destination category folder.
	FieldCategory = "category"
	// FieldEventType classifies warnings for filtering.
	FieldEventType = "event_type"
	// FieldErrorHint suggests the next step to the operator.
	FieldErrorHint = "error_hint"
)

type contextKey string

const (
	runIDKey    contextKey = "run_id"
	strategyKey contextKey = "strategy"
)

// WithRunID stamps ctx with a run identifier.
func WithRunID(ctx context.Context, id string) context.Context {
	id = strings.TrimSpace(id)
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, runIDKey, id)
}

// RunIDFromContext extracts the run identifier if present.
func RunIDFromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	id, ok := ctx.Value(runIDKey).(string)
	return id, ok && id != ""
}

// WithStrategy stamps ctx with the organize strategy name.
func WithStrategy(ctx context.Context, strategy string) context.Context {
	strategy = strings.TrimSpace(strategy)
	if strategy == "" {
		return ctx
	}
	return context.WithValue(ctx, strategyKey, strategy)
}

// ContextFields extracts standardized slog attributes from the provided context.
func ContextFields(ctx context.Context) []slog.Attr {
	if ctx == nil {
		return nil
	}
	fields := make([]slog.Attr, 0, 2)
	if id, ok := RunIDFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldRunID, id))
	}
	if strategy, ok := ctx.Value(strategyKey).(string); ok && strategy != "" {
		fields = append(fields, slog.String(FieldStrategy, strategy))
	}
	return fields
}

// WithContext returns a logger augmented with structured fields derived from the supplied context.
func WithContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	fields := ContextFields(ctx)
	if len(fields) == 0 {
		return logger
	}
	return logger.With(attrsToArgs(fields)...)
}
