package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/cinder/internal/domain"
	"github.com/alexanderramin/cinder/internal/scoring"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultHistoryLimit = 30
	MaxHistoryLimit     = 500
	metricsTrendPoints  = 7

	// Read-back factors for the metrics view. They invert the lower band of
	// each sub-score formula.
	workHoursReadback   = 16
	meetingLoadReadback = 35
)

type burnoutService struct {
	repos Repos
	opts  options
}

func NewBurnoutService(repos Repos, opts ...Option) BurnoutService {
	return &burnoutService{repos: repos, opts: buildOptions(opts)}
}

// fetchFunc loads one user's records in an inclusive time range.
type fetchFunc[T any] func(ctx context.Context, userID string, from, to time.Time) ([]T, error)

// subScore loads and scores one signal for a window.
type subScore func(ctx context.Context, userID string, w scoring.Window) (float64, error)

// bind pairs a fetcher with its calculator so aggregation never sees the
// record type.
func bind[T any](name string, fetch fetchFunc[T], calc scoring.Calculator[T]) subScore {
	return func(ctx context.Context, userID string, w scoring.Window) (float64, error) {
		records, err := fetch(ctx, userID, w.Start, w.End)
		if err != nil {
			return 0, fmt.Errorf("loading %s: %w", name, err)
		}
		return calc(records, w), nil
	}
}

func (s *burnoutService) Calculate(ctx context.Context, userID string, days int) (score *domain.BurnoutScore, err error) {
	now := s.opts.now()
	fields := map[string]any{"user_id": userID, "days": days}
	defer observe(ctx, s.opts.observer, "calculate-burnout", now, fields, &err)

	if days <= 0 {
		return nil, invalidf("days", "must be positive, got %d", days)
	}
	if err = ensureUser(ctx, s.repos.Users, userID); err != nil {
		return nil, err
	}

	w, err := scoring.NewWindow(now, days, s.opts.policy.Location)
	if err != nil {
		return nil, invalidf("days", "%v", err)
	}

	var b scoring.Breakdown
	signals := []struct {
		score subScore
		dst   *float64
	}{
		{bind[*domain.WorkSession]("work sessions", s.repos.WorkSessions.ListInRange, scoring.WorkHours), &b.WorkHours},
		{bind[*domain.JournalEntry]("journal entries", s.repos.Journal.ListInRange, scoring.Sentiment), &b.Sentiment},
		{bind[*domain.Meeting]("meetings", s.repos.Meetings.ListInRange, scoring.MeetingLoad), &b.MeetingLoad},
		{bind[*domain.Email]("emails", s.repos.Emails.ListInRange, scoring.EmailStress), &b.EmailStress},
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, sig := range signals {
		g.Go(func() error {
			v, err := sig.score(gctx, userID, w)
			if err != nil {
				return err
			}
			*sig.dst = v
			return nil
		})
	}
	if err = g.Wait(); err != nil {
		return nil, fmt.Errorf("calculating burnout score: %w", err)
	}

	result := b.Score()
	result.ID = uuid.New().String()
	result.UserID = userID
	result.CalculatedAt = now

	if err = s.repos.Scores.Create(ctx, &result); err != nil {
		return nil, fmt.Errorf("saving burnout score: %w", err)
	}
	fields["overall_score"] = result.OverallScore
	fields["burnout_level"] = string(result.BurnoutLevel)

	s.opts.updater.ScoreCalculated(ctx, result, time.Since(now))
	return &result, nil
}

func (s *burnoutService) Trend(ctx context.Context, userID string, days int) (scoring.Trend, error) {
	if days <= 0 {
		return scoring.Trend{}, invalidf("days", "must be positive, got %d", days)
	}
	if err := ensureUser(ctx, s.repos.Users, userID); err != nil {
		return scoring.Trend{}, err
	}

	now := s.opts.now()
	w, err := scoring.NewWindow(now, days, s.opts.policy.Location)
	if err != nil {
		return scoring.Trend{}, invalidf("days", "%v", err)
	}
	scores, err := s.repos.Scores.ListRange(ctx, userID, w.Start, w.End)
	if err != nil {
		return scoring.Trend{}, fmt.Errorf("loading burnout trend: %w", err)
	}
	return scoring.NewTrend(scores), nil
}

func (s *burnoutService) History(ctx context.Context, userID string, limit int) ([]*domain.BurnoutScore, error) {
	if err := ensureUser(ctx, s.repos.Users, userID); err != nil {
		return nil, err
	}
	scores, err := s.repos.Scores.ListRecent(ctx, userID, normalizeLimit(limit, DefaultHistoryLimit, MaxHistoryLimit))
	if err != nil {
		return nil, fmt.Errorf("loading burnout history: %w", err)
	}
	return scores, nil
}

func (s *burnoutService) Range(ctx context.Context, userID string, from, to time.Time) ([]*domain.BurnoutScore, error) {
	if _, err := scoring.Between(from, to, s.opts.policy.Location); err != nil {
		return nil, invalidf("to", "must not be before from")
	}
	if err := ensureUser(ctx, s.repos.Users, userID); err != nil {
		return nil, err
	}
	scores, err := s.repos.Scores.ListRange(ctx, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("loading burnout scores: %w", err)
	}
	return scores, nil
}

func (s *burnoutService) Metrics(ctx context.Context, userID string, days int) (*Metrics, error) {
	score, err := s.Calculate(ctx, userID, days)
	if err != nil {
		return nil, err
	}
	trend, err := s.Trend(ctx, userID, days)
	if err != nil {
		return nil, err
	}
	recent := trend.Last(metricsTrendPoints)

	return &Metrics{
		Score:        *score,
		WorkHoursAvg: score.WorkHoursScore * workHoursReadback,
		MeetingLoad:  int(score.MeetingLoadScore * meetingLoadReadback),
		WeeklyTrend:  recent.Points(),
		Movement:     recent.Movement(),
	}, nil
}
