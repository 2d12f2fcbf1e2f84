package llm

import (
	"context"
	"errors"
	"log/slog"
	"time"
)

// CallEvent describes one Chat call, including its retries.
type CallEvent struct {
	Model    string
	Latency  time.Duration
	Attempts int
	Err      error
}

// Outcome is a short label for metrics and logs.
func (e CallEvent) Outcome() string {
	var statusErr *StatusError
	switch {
	case e.Err == nil:
		return "ok"
	case errors.Is(e.Err, ErrTimeout):
		return "timeout"
	case errors.Is(e.Err, ErrUnavailable):
		return "unavailable"
	case errors.Is(e.Err, context.Canceled):
		return "cancelled"
	case errors.As(e.Err, &statusErr):
		return "status"
	default:
		return "error"
	}
}

// Observer is notified after every Chat call.
type Observer interface {
	OnCall(event CallEvent)
}

// LogObserver writes call events to a structured logger.
type LogObserver struct {
	logger *slog.Logger
}

func NewLogObserver(logger *slog.Logger) *LogObserver {
	return &LogObserver{logger: logger}
}

func (o *LogObserver) OnCall(e CallEvent) {
	attrs := []any{
		"model", e.Model,
		"latency_ms", e.Latency.Milliseconds(),
		"attempts", e.Attempts,
		"outcome", e.Outcome(),
	}
	if e.Err != nil {
		o.logger.Warn("llm call failed", append(attrs, "error", e.Err.Error())...)
		return
	}
	o.logger.Debug("llm call", attrs...)
}

// NoopObserver discards all events.
type NoopObserver struct{}

func (NoopObserver) OnCall(CallEvent) {}
