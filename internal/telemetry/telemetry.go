// Package telemetry exports burnout scoring metrics over OTLP.
package telemetry

import (
	"context"
	"time"

	"github.com/alexanderramin/cinder/internal/domain"
)

// Recorder receives scoring and notification events.
type Recorder interface {
	RecordScore(ctx context.Context, score domain.BurnoutScore, elapsed time.Duration)
	RecordNotification(ctx context.Context, delivered bool)
	Close(ctx context.Context) error
}

// Config selects and locates the OTLP collector.
type Config struct {
	Endpoint string
	Enabled  bool
	Insecure bool
}

// NoOpRecorder discards every event.
type NoOpRecorder struct{}

// NewNoOpRecorder creates a recorder for when export is disabled.
func NewNoOpRecorder() *NoOpRecorder {
	return &NoOpRecorder{}
}

func (*NoOpRecorder) RecordScore(context.Context, domain.BurnoutScore, time.Duration) {}

func (*NoOpRecorder) RecordNotification(context.Context, bool) {}

func (*NoOpRecorder) Close(context.Context) error { return nil }

// OrNoop returns r, or a no-op recorder when r is nil.
func OrNoop(r Recorder) Recorder {
	if r == nil {
		return NewNoOpRecorder()
	}
	return r
}
