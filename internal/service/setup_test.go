package service

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/alexanderramin/cinder/internal/domain"
	"github.com/alexanderramin/cinder/internal/testutil"
	"github.com/stretchr/testify/require"
)

func setupRepos(t *testing.T) (Repos, *sql.DB) {
	t.Helper()
	database := testutil.NewTestDB(t)
	return NewRepos(database), database
}

func seedUser(t *testing.T, repos Repos) *domain.User {
	t.Helper()
	u := testutil.NewTestUser()
	require.NoError(t, repos.Users.Create(context.Background(), u))
	return u
}

// fakeClock is a settable clock for deterministic windows.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock(t time.Time) *fakeClock { return &fakeClock{now: t} }

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// recordingUpdater keeps every score it is handed.
type recordingUpdater struct {
	mu     sync.Mutex
	scores []domain.BurnoutScore
}

func (u *recordingUpdater) ScoreCalculated(_ context.Context, score domain.BurnoutScore, _ time.Duration) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.scores = append(u.scores, score)
}

func (u *recordingUpdater) Scores() []domain.BurnoutScore {
	u.mu.Lock()
	defer u.mu.Unlock()
	return append([]domain.BurnoutScore(nil), u.scores...)
}

// recordingObserver keeps use-case events.
type recordingObserver struct {
	mu     sync.Mutex
	events []UseCaseEvent
}

func (o *recordingObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, e)
}

func (o *recordingObserver) Events() []UseCaseEvent {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]UseCaseEvent(nil), o.events...)
}
