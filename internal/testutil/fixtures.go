package testutil

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/alexanderramin/cinder/internal/domain"
	"github.com/google/uuid"
)

var testEmailCounter atomic.Int64

// RefTime is a Monday at noon UTC, used as a stable "now" in tests.
var RefTime = time.Date(2024, 3, 4, 12, 0, 0, 0, time.UTC)

func Float(v float64) *float64 { return &v }

// User options
type UserOption func(*domain.User)

func WithEmail(e string) UserOption {
	return func(u *domain.User) {
		u.Email = e
	}
}

func WithFullName(n string) UserOption {
	return func(u *domain.User) {
		u.FullName = n
	}
}

func NewTestUser(opts ...UserOption) *domain.User {
	n := testEmailCounter.Add(1)
	u := &domain.User{
		ID:        uuid.New().String(),
		Email:     fmt.Sprintf("user%d@example.com", n),
		FullName:  fmt.Sprintf("Test User %d", n),
		CreatedAt: time.Now().UTC(),
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// WorkSession options
type SessionOption func(*domain.WorkSession)

func WithActivityType(a string) SessionOption {
	return func(s *domain.WorkSession) {
		s.ActivityType = a
	}
}

func WithProductivity(p float64) SessionOption {
	return func(s *domain.WorkSession) {
		s.ProductivityScore = &p
	}
}

// NewTestSession creates a session of the given length starting at start.
func NewTestSession(userID string, start time.Time, minutes int, opts ...SessionOption) *domain.WorkSession {
	s := &domain.WorkSession{
		ID:              uuid.New().String(),
		UserID:          userID,
		StartTime:       start,
		EndTime:         start.Add(time.Duration(minutes) * time.Minute),
		DurationMinutes: minutes,
		ActivityType:    "coding",
		CreatedAt:       start,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Meeting options
type MeetingOption func(*domain.Meeting)

func WithAttendees(n int) MeetingOption {
	return func(m *domain.Meeting) {
		m.AttendeesCount = n
	}
}

func WithAfterHours(b bool) MeetingOption {
	return func(m *domain.Meeting) {
		m.IsAfterHours = b
	}
}

func WithTitle(title string) MeetingOption {
	return func(m *domain.Meeting) {
		m.Title = title
	}
}

func NewTestMeeting(userID string, start time.Time, minutes int, opts ...MeetingOption) *domain.Meeting {
	m := &domain.Meeting{
		ID:              uuid.New().String(),
		UserID:          userID,
		Title:           "Sync",
		StartTime:       start,
		EndTime:         start.Add(time.Duration(minutes) * time.Minute),
		DurationMinutes: minutes,
		AttendeesCount:  3,
		CreatedAt:       start,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Email options
type EmailOption func(*domain.Email)

func WithEmailSentiment(v float64) EmailOption {
	return func(e *domain.Email) {
		e.SentimentScore = &v
	}
}

func WithEmailAfterHours(b bool) EmailOption {
	return func(e *domain.Email) {
		e.IsAfterHours = b
	}
}

func WithSubject(s string) EmailOption {
	return func(e *domain.Email) {
		e.Subject = s
	}
}

func WithStressIndicators(ind domain.StressIndicators) EmailOption {
	return func(e *domain.Email) {
		e.StressIndicators = ind
	}
}

func NewTestEmail(userID string, sentAt time.Time, opts ...EmailOption) *domain.Email {
	e := &domain.Email{
		ID:               uuid.New().String(),
		UserID:           userID,
		Subject:          "Status",
		Body:             "See attached.",
		SentAt:           sentAt,
		IsSent:           true,
		StressIndicators: domain.StressIndicators{Keywords: []string{}},
		CreatedAt:        sentAt,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Journal options
type JournalOption func(*domain.JournalEntry)

func WithJournalSentiment(v float64) JournalOption {
	return func(j *domain.JournalEntry) {
		j.SentimentScore = &v
	}
}

func WithEmotions(e map[string]float64) JournalOption {
	return func(j *domain.JournalEntry) {
		j.EmotionAnalysis = e
	}
}

func NewTestJournalEntry(userID string, createdAt time.Time, opts ...JournalOption) *domain.JournalEntry {
	j := &domain.JournalEntry{
		ID:              uuid.New().String(),
		UserID:          userID,
		Content:         "Long day.",
		EmotionAnalysis: map[string]float64{},
		CreatedAt:       createdAt,
	}
	for _, opt := range opts {
		opt(j)
	}
	return j
}

// NewTestScore builds a score row with the given overall value.
func NewTestScore(userID string, overall float64, at time.Time) *domain.BurnoutScore {
	level := domain.BurnoutLow
	switch {
	case overall > 0.6:
		level = domain.BurnoutHigh
	case overall > 0.3:
		level = domain.BurnoutModerate
	}
	return &domain.BurnoutScore{
		ID:           uuid.New().String(),
		UserID:       userID,
		OverallScore: overall,
		BurnoutLevel: level,
		CalculatedAt: at,
	}
}
