package importer

import (
	"fmt"
	"time"

	"github.com/alexanderramin/cinder/internal/domain"
	"github.com/google/uuid"
)

// Batch is a converted import ready for annotation and persistence.
type Batch struct {
	WorkSessions   []*domain.WorkSession
	Meetings       []*domain.Meeting
	Emails         []*domain.Email
	JournalEntries []*domain.JournalEntry

	// Explicit sentiment supplied in the file, keyed by record id. These
	// win over annotator output.
	EmailSentiment   map[string]float64
	JournalSentiment map[string]float64
}

// Convert transforms a validated ImportSchema into domain objects owned by
// userID. Call ValidateImportSchema first; Convert assumes the schema is valid.
func Convert(schema *ImportSchema, userID string, policy domain.WorkdayPolicy, now time.Time) (*Batch, error) {
	now = now.UTC()
	b := &Batch{
		EmailSentiment:   make(map[string]float64),
		JournalSentiment: make(map[string]float64),
	}

	for i, s := range schema.WorkSessions {
		start, end, minutes, err := parseInterval(s.StartTime, s.EndTime)
		if err != nil {
			return nil, fmt.Errorf("work_sessions[%d]: %w", i, err)
		}
		b.WorkSessions = append(b.WorkSessions, &domain.WorkSession{
			ID:                uuid.New().String(),
			UserID:            userID,
			StartTime:         start,
			EndTime:           end,
			DurationMinutes:   minutes,
			ActivityType:      s.ActivityType,
			ProductivityScore: s.ProductivityScore,
			CreatedAt:         now,
		})
	}

	for i, m := range schema.Meetings {
		start, end, minutes, err := parseInterval(m.StartTime, m.EndTime)
		if err != nil {
			return nil, fmt.Errorf("meetings[%d]: %w", i, err)
		}
		b.Meetings = append(b.Meetings, &domain.Meeting{
			ID:              uuid.New().String(),
			UserID:          userID,
			Title:           m.Title,
			StartTime:       start,
			EndTime:         end,
			DurationMinutes: minutes,
			AttendeesCount:  domain.ValueOr(m.AttendeesCount, 1),
			IsAfterHours:    domain.ValueOr(m.IsAfterHours, policy.MeetingAfterHours(start, end)),
			CreatedAt:       now,
		})
	}

	for i, e := range schema.Emails {
		sentAt, err := parseTime(e.SentAt)
		if err != nil {
			return nil, fmt.Errorf("emails[%d]: %w", i, err)
		}
		email := &domain.Email{
			ID:           uuid.New().String(),
			UserID:       userID,
			Subject:      e.Subject,
			Body:         e.Body,
			SentAt:       sentAt,
			IsSent:       domain.ValueOr(e.IsSent, true),
			IsAfterHours: domain.ValueOr(e.IsAfterHours, policy.IsAfterHours(sentAt)),
			CreatedAt:    now,
		}
		if e.SentimentScore != nil {
			b.EmailSentiment[email.ID] = *e.SentimentScore
		}
		b.Emails = append(b.Emails, email)
	}

	for i, j := range schema.JournalEntries {
		createdAt, err := parseTime(j.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("journal_entries[%d]: %w", i, err)
		}
		entry := &domain.JournalEntry{
			ID:              uuid.New().String(),
			UserID:          userID,
			Content:         j.Content,
			EmotionAnalysis: map[string]float64{},
			CreatedAt:       createdAt,
		}
		if j.SentimentScore != nil {
			b.JournalSentiment[entry.ID] = *j.SentimentScore
		}
		b.JournalEntries = append(b.JournalEntries, entry)
	}

	return b, nil
}

func parseTime(raw string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing time %q: %w", raw, err)
	}
	return t.UTC(), nil
}

func parseInterval(startRaw, endRaw string) (time.Time, time.Time, int, error) {
	start, err := parseTime(startRaw)
	if err != nil {
		return time.Time{}, time.Time{}, 0, err
	}
	end, err := parseTime(endRaw)
	if err != nil {
		return time.Time{}, time.Time{}, 0, err
	}
	minutes, err := domain.DurationMinutes(start, end)
	if err != nil {
		return time.Time{}, time.Time{}, 0, err
	}
	return start, end, minutes, nil
}
