package persistence

import (
	"context"
	"log/slog"
	"time"
)

// SaveEvent describes one write of the store to its blob.
type SaveEvent struct {
	Op       string
	Target   string
	Records  int
	Duration time.Duration
	Err      error
}

// SaveObserver receives an event after every save attempt.
type SaveObserver interface {
	ObserveSave(ctx context.Context, event SaveEvent)
}

type NoopSaveObserver struct{}

func (NoopSaveObserver) ObserveSave(context.Context, SaveEvent) {}

type logSaveObserver struct {
	logger *slog.Logger
}

// NewLogSaveObserver logs save events to logger.
func NewLogSaveObserver(logger *slog.Logger) SaveObserver {
	if logger == nil {
		return NoopSaveObserver{}
	}
	return &logSaveObserver{logger: logger}
}

func (o *logSaveObserver) ObserveSave(ctx context.Context, event SaveEvent) {
	attrs := []any{
		"op", event.Op,
		"target", event.Target,
		"records", event.Records,
		"duration_ms", event.Duration.Milliseconds(),
		"success", event.Err == nil,
	}
	if event.Err != nil {
		attrs = append(attrs, "error", event.Err.Error())
		o.logger.ErrorContext(ctx, "store_saved", attrs...)
		return
	}
	o.logger.DebugContext(ctx, "store_saved", attrs...)
}
