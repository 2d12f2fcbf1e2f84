package service

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/cinder/internal/domain"
	"github.com/alexanderramin/cinder/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkPatterns_Distribution(t *testing.T) {
	repos, _ := setupRepos(t)
	user := seedUser(t, repos)
	ctx := context.Background()
	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	for _, s := range []struct {
		hour, minutes int
	}{
		{9, 120}, {9, 60}, {14, 180}, {11, 90}, {16, 90}, {20, 30},
	} {
		start := day.Add(time.Duration(s.hour) * time.Hour)
		require.NoError(t, repos.WorkSessions.Create(ctx, testutil.NewTestSession(user.ID, start, s.minutes)))
	}

	svc := NewPatternService(repos, WithClock(func() time.Time { return testutil.RefTime }))
	p, err := svc.WorkPatterns(ctx, user.ID, 7)
	require.NoError(t, err)

	assert.Equal(t, 6, p.SessionCount)
	assert.InDelta(t, 9.5, p.TotalHours, 1e-9)
	assert.InDelta(t, 9.5/7, p.AvgDailyHours, 1e-9)
	assert.Equal(t, map[int]int{9: 180, 11: 90, 14: 180, 16: 90, 20: 30}, p.HourlyDistribution)
	assert.Equal(t, []HourMinutes{
		{Hour: 9, Minutes: 180},
		{Hour: 14, Minutes: 180},
		{Hour: 11, Minutes: 90},
	}, p.MostProductiveHours, "ties go to the earlier hour")
}

func TestWorkPatterns_LocalHours(t *testing.T) {
	repos, _ := setupRepos(t)
	user := seedUser(t, repos)
	ctx := context.Background()

	start := time.Date(2024, 3, 3, 23, 0, 0, 0, time.UTC)
	require.NoError(t, repos.WorkSessions.Create(ctx, testutil.NewTestSession(user.ID, start, 60)))

	policy := domain.DefaultWorkdayPolicy()
	policy.Location = time.FixedZone("UTC+2", 2*3600)
	svc := NewPatternService(repos,
		WithClock(func() time.Time { return testutil.RefTime }),
		WithWorkdayPolicy(policy),
	)
	p, err := svc.WorkPatterns(ctx, user.ID, 7)
	require.NoError(t, err)
	assert.Equal(t, map[int]int{1: 60}, p.HourlyDistribution)
}

func TestWorkPatterns_Empty(t *testing.T) {
	repos, _ := setupRepos(t)
	user := seedUser(t, repos)
	svc := NewPatternService(repos)

	p, err := svc.WorkPatterns(context.Background(), user.ID, 30)
	require.NoError(t, err)
	assert.Zero(t, p.SessionCount)
	assert.Zero(t, p.TotalHours)
	assert.Empty(t, p.MostProductiveHours)
	assert.NotNil(t, p.MostProductiveHours)

	_, err = svc.WorkPatterns(context.Background(), user.ID, 0)
	assert.True(t, IsValidation(err))
}
