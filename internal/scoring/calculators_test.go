package scoring

import (
	"testing"
	"time"

	"github.com/alexanderramin/cinder/internal/domain"
	"github.com/alexanderramin/cinder/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func weekWindow(t *testing.T) Window {
	t.Helper()
	w, err := NewWindow(testutil.RefTime, 7, time.UTC)
	require.NoError(t, err)
	return w
}

func sessionsPerDay(hours ...float64) []*domain.WorkSession {
	var out []*domain.WorkSession
	for i, h := range hours {
		start := testutil.RefTime.Add(-time.Duration(i+1) * 24 * time.Hour)
		out = append(out, testutil.NewTestSession("u", start, int(h*60)))
	}
	return out
}

func TestWorkHours(t *testing.T) {
	w := weekWindow(t)
	tests := []struct {
		name  string
		hours []float64
		want  float64
	}{
		{"eight hours", []float64{8}, 0.5},
		{"twelve hours", []float64{12}, 1.0},
		{"four hours", []float64{4}, 0.25},
		{"ten hours", []float64{10}, 0.75},
		{"twenty hours saturates", []float64{20}, 1.0},
		{"mean over active days", []float64{4, 12}, 0.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, WorkHours(sessionsPerDay(tt.hours...), w), 1e-9)
		})
	}
}

func TestWorkHours_SameDaySessionsSummed(t *testing.T) {
	w := weekWindow(t)
	day := testutil.RefTime.Add(-48 * time.Hour)
	sessions := []*domain.WorkSession{
		testutil.NewTestSession("u", day, 240),
		testutil.NewTestSession("u", day.Add(5*time.Hour), 240),
	}
	assert.InDelta(t, 0.5, WorkHours(sessions, w), 1e-9)
}

func TestWorkHours_GroupsByWindowLocation(t *testing.T) {
	// 21:00 and 22:30 UTC share a UTC day but straddle midnight at UTC+2.
	day := time.Date(2024, 3, 2, 21, 0, 0, 0, time.UTC)
	sessions := []*domain.WorkSession{
		testutil.NewTestSession("u", day, 480),
		testutil.NewTestSession("u", day.Add(90*time.Minute), 480),
	}

	utc, err := NewWindow(testutil.RefTime, 7, time.UTC)
	require.NoError(t, err)
	shifted, err := NewWindow(testutil.RefTime, 7, time.FixedZone("UTC+2", 2*3600))
	require.NoError(t, err)

	assert.InDelta(t, 1.0, WorkHours(sessions, utc), 1e-9)
	assert.InDelta(t, 0.5, WorkHours(sessions, shifted), 1e-9)
}

func TestWorkHours_IgnoresOutsideWindow(t *testing.T) {
	w := weekWindow(t)
	old := testutil.NewTestSession("u", testutil.RefTime.Add(-8*24*time.Hour), 600)
	assert.Zero(t, WorkHours([]*domain.WorkSession{old}, w))
}

func TestSentiment(t *testing.T) {
	w := weekWindow(t)
	at := testutil.RefTime.Add(-time.Hour)

	assert.Zero(t, Sentiment(nil, w))

	negative := []*domain.JournalEntry{
		testutil.NewTestJournalEntry("u", at, testutil.WithJournalSentiment(-0.6)),
		testutil.NewTestJournalEntry("u", at, testutil.WithJournalSentiment(-0.2)),
		testutil.NewTestJournalEntry("u", at), // no sentiment
	}
	assert.InDelta(t, 0.4, Sentiment(negative, w), 1e-9)

	positive := []*domain.JournalEntry{
		testutil.NewTestJournalEntry("u", at, testutil.WithJournalSentiment(0.7)),
	}
	assert.Zero(t, Sentiment(positive, w))

	unscored := []*domain.JournalEntry{testutil.NewTestJournalEntry("u", at)}
	assert.Zero(t, Sentiment(unscored, w))
}

func TestMeetingLoad(t *testing.T) {
	w := weekWindow(t)
	at := testutil.RefTime.Add(-time.Hour)

	assert.Zero(t, MeetingLoad(nil, w))

	// 35 meetings of 96 minutes each, 7 after hours: every term saturates.
	var saturated []*domain.Meeting
	for i := 0; i < 35; i++ {
		saturated = append(saturated, testutil.NewTestMeeting("u", at, 96, testutil.WithAfterHours(i < 7)))
	}
	assert.InDelta(t, 1.0, MeetingLoad(saturated, w), 1e-9)

	// 7 meetings, 420 minutes, 1 after hours.
	var partial []*domain.Meeting
	for i := 0; i < 7; i++ {
		partial = append(partial, testutil.NewTestMeeting("u", at, 60, testutil.WithAfterHours(i == 0)))
	}
	want := 0.4*(7.0/35) + 0.4*(420.0/3360) + 0.2*(1.0/7)
	assert.InDelta(t, want, MeetingLoad(partial, w), 1e-9)
}

func TestEmailStress(t *testing.T) {
	w := weekWindow(t)
	at := testutil.RefTime.Add(-time.Hour)

	assert.Zero(t, EmailStress(nil, w))

	emails := []*domain.Email{
		testutil.NewTestEmail("u", at, testutil.WithEmailAfterHours(true), testutil.WithEmailSentiment(-0.8)),
		testutil.NewTestEmail("u", at, testutil.WithEmailSentiment(0.2)),
		testutil.NewTestEmail("u", at),
		testutil.NewTestEmail("u", at),
	}
	want := 0.4*(4.0/140) + 0.3*(1.0/14) + 0.3*0.3
	assert.InDelta(t, want, EmailStress(emails, w), 1e-9)
}

func TestEmailStress_NoSentimentContributesZero(t *testing.T) {
	w := weekWindow(t)
	emails := []*domain.Email{testutil.NewTestEmail("u", testutil.RefTime)}
	assert.InDelta(t, 0.4/140, EmailStress(emails, w), 1e-9)
}

func TestEmailStress_Saturates(t *testing.T) {
	w := weekWindow(t)
	var emails []*domain.Email
	for i := 0; i < 200; i++ {
		emails = append(emails, testutil.NewTestEmail("u", testutil.RefTime,
			testutil.WithEmailAfterHours(true), testutil.WithEmailSentiment(-1)))
	}
	assert.InDelta(t, 1.0, EmailStress(emails, w), 1e-9)
}

func TestBaselinesIgnoreWindowLength(t *testing.T) {
	week := weekWindow(t)
	month, err := NewWindow(testutil.RefTime, 30, time.UTC)
	require.NoError(t, err)

	var meetings []*domain.Meeting
	for i := 0; i < 10; i++ {
		meetings = append(meetings, testutil.NewTestMeeting("u", testutil.RefTime.Add(-time.Hour), 30))
	}
	assert.Equal(t, MeetingLoad(meetings, week), MeetingLoad(meetings, month))
}

func TestNewWindow(t *testing.T) {
	w, err := NewWindow(testutil.RefTime, 7, nil)
	require.NoError(t, err)
	assert.Equal(t, testutil.RefTime.Add(-7*24*time.Hour), w.Start)
	assert.Equal(t, time.UTC, w.Location)
	assert.InDelta(t, 7.0, w.Days(), 1e-9)
	assert.True(t, w.Contains(w.Start))
	assert.True(t, w.Contains(w.End))
	assert.False(t, w.Contains(w.End.Add(time.Nanosecond)))

	_, err = NewWindow(testutil.RefTime, 0, nil)
	assert.ErrorIs(t, err, ErrInvalidWindow)

	_, err = Between(testutil.RefTime, testutil.RefTime.Add(-time.Second), nil)
	assert.ErrorIs(t, err, ErrInvalidWindow)
}
