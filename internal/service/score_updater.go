package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/alexanderramin/cinder/internal/domain"
	"github.com/alexanderramin/cinder/internal/logging"
	"github.com/alexanderramin/cinder/internal/notify"
	"github.com/alexanderramin/cinder/internal/telemetry"
)

// ScoreUpdater is told about every persisted score. It must not block and
// has no way to fail the calculation.
type ScoreUpdater interface {
	ScoreCalculated(ctx context.Context, score domain.BurnoutScore, elapsed time.Duration)
}

type noopUpdater struct{}

func (noopUpdater) ScoreCalculated(context.Context, domain.BurnoutScore, time.Duration) {}

type scoreUpdater struct {
	sink     notify.Sink
	recorder telemetry.Recorder
	logger   *slog.Logger
}

// NewScoreUpdater pushes scores to the user's live channel and records
// calculation metrics. Undeliverable updates are dropped.
func NewScoreUpdater(sink notify.Sink, recorder telemetry.Recorder, logger *slog.Logger) ScoreUpdater {
	if sink == nil {
		sink = notify.NoopSink{}
	}
	return &scoreUpdater{
		sink:     sink,
		recorder: telemetry.OrNoop(recorder),
		logger:   logging.OrNop(logger),
	}
}

func (u *scoreUpdater) ScoreCalculated(ctx context.Context, score domain.BurnoutScore, elapsed time.Duration) {
	u.recorder.RecordScore(ctx, score, elapsed)

	delivered := u.sink.Publish(ctx, score.UserID, notify.BurnoutUpdate(score))
	u.recorder.RecordNotification(ctx, delivered)
	u.logger.DebugContext(ctx, "burnout update dispatched",
		"user_id", score.UserID,
		"score_id", score.ID,
		"delivered", delivered,
	)
}
