package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/alexanderramin/cinder/internal/domain"
	"github.com/alexanderramin/cinder/internal/logging"
	"github.com/alexanderramin/cinder/internal/repository"
)

// Option configures a service.
type Option func(*options)

type options struct {
	now      func() time.Time
	observer UseCaseObserver
	policy   domain.WorkdayPolicy
	updater  ScoreUpdater
	logger   *slog.Logger
}

func buildOptions(opts []Option) options {
	o := options{
		now:      func() time.Time { return time.Now().UTC() },
		observer: NoopUseCaseObserver{},
		policy:   domain.DefaultWorkdayPolicy(),
		updater:  noopUpdater{},
		logger:   logging.Nop(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithClock replaces the wall clock.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = func() time.Time { return now().UTC() }
		}
	}
}

// WithObserver reports use-case events to the first non-nil observer.
func WithObserver(observers ...UseCaseObserver) Option {
	return func(o *options) {
		o.observer = useCaseObserverOrNoop(observers)
	}
}

// WithWorkdayPolicy sets the time zone and working hours used for
// after-hours flags and calendar grouping.
func WithWorkdayPolicy(p domain.WorkdayPolicy) Option {
	return func(o *options) {
		o.policy = p
	}
}

// WithScoreUpdater receives every freshly calculated score.
func WithScoreUpdater(u ScoreUpdater) Option {
	return func(o *options) {
		if u != nil {
			o.updater = u
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// ensureUser rejects blank ids and ids without a user row.
func ensureUser(ctx context.Context, users repository.UserRepo, userID string) error {
	if userID == "" {
		return invalidf("user_id", "is required")
	}
	if _, err := users.GetByID(ctx, userID); err != nil {
		return fmt.Errorf("user %s: %w", userID, err)
	}
	return nil
}

func normalizeLimit(limit, fallback, max int) int {
	if limit <= 0 {
		return fallback
	}
	return min(limit, max)
}
