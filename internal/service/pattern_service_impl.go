package service

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"github.com/alexanderramin/cinder/internal/scoring"
)

const topHours = 3

type patternService struct {
	repos Repos
	opts  options
}

func NewPatternService(repos Repos, opts ...Option) PatternService {
	return &patternService{repos: repos, opts: buildOptions(opts)}
}

func (s *patternService) WorkPatterns(ctx context.Context, userID string, days int) (*WorkPatterns, error) {
	if days <= 0 {
		return nil, invalidf("days", "must be positive, got %d", days)
	}
	if err := ensureUser(ctx, s.repos.Users, userID); err != nil {
		return nil, err
	}

	w, err := scoring.NewWindow(s.opts.now(), days, s.opts.policy.Location)
	if err != nil {
		return nil, invalidf("days", "%v", err)
	}
	sessions, err := s.repos.WorkSessions.ListInRange(ctx, userID, w.Start, w.End)
	if err != nil {
		return nil, fmt.Errorf("loading work sessions: %w", err)
	}

	p := &WorkPatterns{
		Days:                days,
		SessionCount:        len(sessions),
		HourlyDistribution:  make(map[int]int),
		MostProductiveHours: []HourMinutes{},
	}
	var totalMin int
	for _, sess := range sessions {
		totalMin += sess.DurationMinutes
		hour := s.opts.policy.Local(sess.StartTime).Hour()
		p.HourlyDistribution[hour] += sess.DurationMinutes
	}
	p.TotalHours = float64(totalMin) / 60
	p.AvgDailyHours = p.TotalHours / float64(days)

	for hour, minutes := range p.HourlyDistribution {
		p.MostProductiveHours = append(p.MostProductiveHours, HourMinutes{Hour: hour, Minutes: minutes})
	}
	slices.SortFunc(p.MostProductiveHours, func(a, b HourMinutes) int {
		if c := cmp.Compare(b.Minutes, a.Minutes); c != 0 {
			return c
		}
		return cmp.Compare(a.Hour, b.Hour)
	})
	if len(p.MostProductiveHours) > topHours {
		p.MostProductiveHours = p.MostProductiveHours[:topHours]
	}

	return p, nil
}
