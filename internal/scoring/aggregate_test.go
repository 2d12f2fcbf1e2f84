package scoring

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/alexanderramin/cinder/internal/domain"
	"github.com/alexanderramin/cinder/internal/testutil"
	"github.com/stretchr/testify/assert"
)

func TestClassifyLevel_Boundaries(t *testing.T) {
	tests := []struct {
		overall float64
		want    domain.BurnoutLevel
	}{
		{0, domain.BurnoutLow},
		{0.3, domain.BurnoutLow},
		{0.30001, domain.BurnoutModerate},
		{0.6, domain.BurnoutModerate},
		{0.60001, domain.BurnoutHigh},
		{1, domain.BurnoutHigh},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ClassifyLevel(tt.overall), "overall=%v", tt.overall)
	}
}

func TestBreakdown_Overall(t *testing.T) {
	b := Breakdown{WorkHours: 0.4, Sentiment: 0.2, MeetingLoad: 0.6, EmailStress: 0.8}
	assert.InDelta(t, 0.5, b.Overall(), 1e-9)

	s := b.Score()
	assert.InDelta(t, 0.5, s.OverallScore, 1e-9)
	assert.Equal(t, domain.BurnoutModerate, s.BurnoutLevel)
	assert.InDelta(t, 0.6, s.MeetingLoadScore, 1e-9)
}

func TestBreakdown_ZeroActivity(t *testing.T) {
	s := Breakdown{}.Score()
	assert.Equal(t, 0.0, s.OverallScore)
	assert.Equal(t, domain.BurnoutLow, s.BurnoutLevel)
}

func TestBreakdown_ClampsOutOfRangeInputs(t *testing.T) {
	b := Breakdown{WorkHours: 3, Sentiment: -1, MeetingLoad: math.NaN(), EmailStress: 1}
	assert.InDelta(t, 0.5, b.Overall(), 1e-9)
}

// TestSubScores_AlwaysInUnitRange property-tests every calculator over
// random activity.
func TestSubScores_AlwaysInUnitRange(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for trial := 0; trial < 300; trial++ {
		days := rng.Intn(30) + 1
		w, err := NewWindow(testutil.RefTime, days, time.UTC)
		if !assert.NoError(t, err) {
			return
		}
		span := int64(w.End.Sub(w.Start))
		randomAt := func() time.Time {
			return w.Start.Add(time.Duration(rng.Int63n(span + 1)))
		}

		var sessions []*domain.WorkSession
		for i := rng.Intn(40); i > 0; i-- {
			sessions = append(sessions, testutil.NewTestSession("u", randomAt(), rng.Intn(24*60)))
		}
		var entries []*domain.JournalEntry
		for i := rng.Intn(20); i > 0; i-- {
			opts := []testutil.JournalOption{}
			if rng.Intn(4) > 0 {
				opts = append(opts, testutil.WithJournalSentiment(rng.Float64()*2-1))
			}
			entries = append(entries, testutil.NewTestJournalEntry("u", randomAt(), opts...))
		}
		var meetings []*domain.Meeting
		for i := rng.Intn(80); i > 0; i-- {
			meetings = append(meetings, testutil.NewTestMeeting("u", randomAt(), rng.Intn(300),
				testutil.WithAfterHours(rng.Intn(2) == 0)))
		}
		var emails []*domain.Email
		for i := rng.Intn(300); i > 0; i-- {
			opts := []testutil.EmailOption{testutil.WithEmailAfterHours(rng.Intn(3) == 0)}
			if rng.Intn(2) == 0 {
				opts = append(opts, testutil.WithEmailSentiment(rng.Float64()*2-1))
			}
			emails = append(emails, testutil.NewTestEmail("u", randomAt(), opts...))
		}

		b := Breakdown{
			WorkHours:   WorkHours(sessions, w),
			Sentiment:   Sentiment(entries, w),
			MeetingLoad: MeetingLoad(meetings, w),
			EmailStress: EmailStress(emails, w),
		}
		for name, v := range map[string]float64{
			"work": b.WorkHours, "sentiment": b.Sentiment,
			"meeting": b.MeetingLoad, "email": b.EmailStress, "overall": b.Overall(),
		} {
			assert.GreaterOrEqual(t, v, 0.0, "trial %d: %s", trial, name)
			assert.LessOrEqual(t, v, 1.0, "trial %d: %s", trial, name)
		}
		if len(sessions) == 0 {
			assert.Equal(t, 0.0, b.WorkHours, "trial %d: empty sessions", trial)
		}
		if len(meetings) == 0 {
			assert.Equal(t, 0.0, b.MeetingLoad, "trial %d: empty meetings", trial)
		}
		if len(emails) == 0 {
			assert.Equal(t, 0.0, b.EmailStress, "trial %d: empty emails", trial)
		}
	}
}
