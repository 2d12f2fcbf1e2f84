package service

import (
	"context"
	"time"

	"github.com/alexanderramin/cinder/internal/domain"
	"github.com/alexanderramin/cinder/internal/importer"
	"github.com/alexanderramin/cinder/internal/scoring"
)

type UserService interface {
	Create(ctx context.Context, email, fullName string) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
}

// WorkSessionInput is a work session as reported by a caller. Duration is
// derived from the interval.
type WorkSessionInput struct {
	StartTime         time.Time
	EndTime           time.Time
	ActivityType      string
	ProductivityScore *float64
}

// MeetingInput is a calendar meeting. A nil IsAfterHours is derived from the
// workday policy; a nil AttendeesCount defaults to 1.
type MeetingInput struct {
	Title          string
	StartTime      time.Time
	EndTime        time.Time
	AttendeesCount *int
	IsAfterHours   *bool
}

// EmailInput is a sent or received email. A zero SentAt means now.
type EmailInput struct {
	Subject      string
	Body         string
	SentAt       time.Time
	IsSent       *bool
	IsAfterHours *bool
}

// JournalInput is a free-text journal entry. A zero CreatedAt means now.
type JournalInput struct {
	Content   string
	CreatedAt time.Time
}

type ActivityService interface {
	LogWorkSession(ctx context.Context, userID string, in WorkSessionInput) (*domain.WorkSession, error)
	AddMeeting(ctx context.Context, userID string, in MeetingInput) (*domain.Meeting, error)
	AddEmail(ctx context.Context, userID string, in EmailInput) (*domain.Email, error)
	AddJournalEntry(ctx context.Context, userID string, in JournalInput) (*domain.JournalEntry, error)

	ListWorkSessions(ctx context.Context, userID string, days int) ([]*domain.WorkSession, error)
	RecentWorkSessions(ctx context.Context, userID string, limit int) ([]*domain.WorkSession, error)
	RecentMeetings(ctx context.Context, userID string, limit int) ([]*domain.Meeting, error)
	RecentEmails(ctx context.Context, userID string, limit int) ([]*domain.Email, error)
	RecentJournalEntries(ctx context.Context, userID string, limit int) ([]*domain.JournalEntry, error)
	GetJournalEntry(ctx context.Context, userID, id string) (*domain.JournalEntry, error)
}

// Metrics is the dashboard view of a fresh calculation.
type Metrics struct {
	Score        domain.BurnoutScore `json:"score"`
	WorkHoursAvg float64             `json:"work_hours_avg"`
	MeetingLoad  int                 `json:"meeting_load"`
	WeeklyTrend  []scoring.Point     `json:"weekly_trend"`
	Movement     scoring.Movement    `json:"movement"`
}

type BurnoutService interface {
	// Calculate scores the trailing window of days ending now, appends the
	// result to the history and hands it to the score updater.
	Calculate(ctx context.Context, userID string, days int) (*domain.BurnoutScore, error)
	Trend(ctx context.Context, userID string, days int) (scoring.Trend, error)
	History(ctx context.Context, userID string, limit int) ([]*domain.BurnoutScore, error)
	Range(ctx context.Context, userID string, from, to time.Time) ([]*domain.BurnoutScore, error)
	Metrics(ctx context.Context, userID string, days int) (*Metrics, error)
}

// HourMinutes is the work started within one local hour of the day.
type HourMinutes struct {
	Hour    int `json:"hour"`
	Minutes int `json:"minutes"`
}

// WorkPatterns summarizes when a user works.
type WorkPatterns struct {
	Days                int           `json:"days"`
	SessionCount        int           `json:"session_count"`
	TotalHours          float64       `json:"total_hours"`
	AvgDailyHours       float64       `json:"avg_daily_hours"`
	HourlyDistribution  map[int]int   `json:"hourly_distribution"`
	MostProductiveHours []HourMinutes `json:"most_productive_hours"`
}

type PatternService interface {
	WorkPatterns(ctx context.Context, userID string, days int) (*WorkPatterns, error)
}

// ImportResult holds the outcome of an activity import.
type ImportResult struct {
	WorkSessionCount  int `json:"work_sessions"`
	MeetingCount      int `json:"meetings"`
	EmailCount        int `json:"emails"`
	JournalEntryCount int `json:"journal_entries"`
}

// Total is the number of records written.
func (r ImportResult) Total() int {
	return r.WorkSessionCount + r.MeetingCount + r.EmailCount + r.JournalEntryCount
}

type ImportService interface {
	ImportFile(ctx context.Context, userID, filePath string) (*ImportResult, error)
	Import(ctx context.Context, userID string, schema *importer.ImportSchema) (*ImportResult, error)
}
