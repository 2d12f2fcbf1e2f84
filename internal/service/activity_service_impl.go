package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/cinder/internal/annotate"
	"github.com/alexanderramin/cinder/internal/domain"
	"github.com/alexanderramin/cinder/internal/scoring"
	"github.com/google/uuid"
)

const (
	DefaultRecentLimit = 20
	MaxRecentLimit     = 200
)

type activityService struct {
	repos     Repos
	annotator annotate.Annotator
	opts      options
}

// NewActivityService records user activity. Text is read by annotator;
// a nil annotator falls back to the keyword reader.
func NewActivityService(repos Repos, annotator annotate.Annotator, opts ...Option) ActivityService {
	o := buildOptions(opts)
	if annotator == nil {
		annotator = annotate.NewKeyword()
	}
	if _, ok := annotator.(*annotate.Fallback); !ok {
		annotator = annotate.WithFallback(annotator, o.logger)
	}
	return &activityService{repos: repos, annotator: annotator, opts: o}
}

func (s *activityService) LogWorkSession(ctx context.Context, userID string, in WorkSessionInput) (session *domain.WorkSession, err error) {
	now := s.opts.now()
	fields := map[string]any{"user_id": userID}
	defer observe(ctx, s.opts.observer, "log-work-session", now, fields, &err)

	minutes, err := domain.DurationMinutes(in.StartTime, in.EndTime)
	if err != nil {
		return nil, invalidf("end_time", "%v", err)
	}
	if in.ProductivityScore != nil && (*in.ProductivityScore < 0 || *in.ProductivityScore > 1) {
		return nil, invalidf("productivity_score", "must be within [0, 1]")
	}
	if err = ensureUser(ctx, s.repos.Users, userID); err != nil {
		return nil, err
	}

	session = &domain.WorkSession{
		ID:                uuid.New().String(),
		UserID:            userID,
		StartTime:         in.StartTime.UTC(),
		EndTime:           in.EndTime.UTC(),
		DurationMinutes:   minutes,
		ActivityType:      strings.TrimSpace(in.ActivityType),
		ProductivityScore: in.ProductivityScore,
		CreatedAt:         now,
	}
	fields["duration_minutes"] = minutes
	if err = s.repos.WorkSessions.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("saving work session: %w", err)
	}
	return session, nil
}

func (s *activityService) AddMeeting(ctx context.Context, userID string, in MeetingInput) (meeting *domain.Meeting, err error) {
	now := s.opts.now()
	fields := map[string]any{"user_id": userID}
	defer observe(ctx, s.opts.observer, "add-meeting", now, fields, &err)

	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, invalidf("title", "is required")
	}
	minutes, err := domain.DurationMinutes(in.StartTime, in.EndTime)
	if err != nil {
		return nil, invalidf("end_time", "%v", err)
	}
	attendees := domain.ValueOr(in.AttendeesCount, 1)
	if attendees < 1 {
		return nil, invalidf("attendees_count", "must be at least 1")
	}
	if err = ensureUser(ctx, s.repos.Users, userID); err != nil {
		return nil, err
	}

	meeting = &domain.Meeting{
		ID:              uuid.New().String(),
		UserID:          userID,
		Title:           title,
		StartTime:       in.StartTime.UTC(),
		EndTime:         in.EndTime.UTC(),
		DurationMinutes: minutes,
		AttendeesCount:  attendees,
		IsAfterHours:    domain.ValueOr(in.IsAfterHours, s.opts.policy.MeetingAfterHours(in.StartTime, in.EndTime)),
		CreatedAt:       now,
	}
	fields["after_hours"] = meeting.IsAfterHours
	if err = s.repos.Meetings.Create(ctx, meeting); err != nil {
		return nil, fmt.Errorf("saving meeting: %w", err)
	}
	return meeting, nil
}

func (s *activityService) AddEmail(ctx context.Context, userID string, in EmailInput) (email *domain.Email, err error) {
	now := s.opts.now()
	fields := map[string]any{"user_id": userID}
	defer observe(ctx, s.opts.observer, "add-email", now, fields, &err)

	if strings.TrimSpace(in.Subject) == "" && strings.TrimSpace(in.Body) == "" {
		return nil, invalidf("subject", "subject or body is required")
	}
	if err = ensureUser(ctx, s.repos.Users, userID); err != nil {
		return nil, err
	}

	sentAt := in.SentAt.UTC()
	if in.SentAt.IsZero() {
		sentAt = now
	}
	email = &domain.Email{
		ID:           uuid.New().String(),
		UserID:       userID,
		Subject:      in.Subject,
		Body:         in.Body,
		SentAt:       sentAt,
		IsSent:       domain.ValueOr(in.IsSent, true),
		IsAfterHours: domain.ValueOr(in.IsAfterHours, s.opts.policy.IsAfterHours(sentAt)),
		CreatedAt:    now,
	}

	a, _ := s.annotator.Annotate(ctx, email.Text())
	email.ApplyAnnotation(a)
	fields["sentiment"] = a.Sentiment
	fields["stress"] = a.Stress

	if err = s.repos.Emails.Create(ctx, email); err != nil {
		return nil, fmt.Errorf("saving email: %w", err)
	}
	return email, nil
}

func (s *activityService) AddJournalEntry(ctx context.Context, userID string, in JournalInput) (entry *domain.JournalEntry, err error) {
	now := s.opts.now()
	fields := map[string]any{"user_id": userID}
	defer observe(ctx, s.opts.observer, "add-journal-entry", now, fields, &err)

	content := strings.TrimSpace(in.Content)
	if content == "" {
		return nil, invalidf("content", "is required")
	}
	if err = ensureUser(ctx, s.repos.Users, userID); err != nil {
		return nil, err
	}

	createdAt := in.CreatedAt.UTC()
	if in.CreatedAt.IsZero() {
		createdAt = now
	}
	entry = &domain.JournalEntry{
		ID:        uuid.New().String(),
		UserID:    userID,
		Content:   content,
		CreatedAt: createdAt,
	}

	a, _ := s.annotator.Annotate(ctx, content)
	entry.ApplyAnnotation(a)
	if entry.EmotionAnalysis == nil {
		entry.EmotionAnalysis = map[string]float64{}
	}
	fields["sentiment"] = a.Sentiment

	if err = s.repos.Journal.Create(ctx, entry); err != nil {
		return nil, fmt.Errorf("saving journal entry: %w", err)
	}
	return entry, nil
}

func (s *activityService) ListWorkSessions(ctx context.Context, userID string, days int) ([]*domain.WorkSession, error) {
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
		return nil, fmt.Errorf("listing work sessions: %w", err)
	}
	return sessions, nil
}

func (s *activityService) RecentWorkSessions(ctx context.Context, userID string, limit int) ([]*domain.WorkSession, error) {
	if err := ensureUser(ctx, s.repos.Users, userID); err != nil {
		return nil, err
	}
	return s.repos.WorkSessions.ListRecent(ctx, userID, normalizeLimit(limit, DefaultRecentLimit, MaxRecentLimit))
}

func (s *activityService) RecentMeetings(ctx context.Context, userID string, limit int) ([]*domain.Meeting, error) {
	if err := ensureUser(ctx, s.repos.Users, userID); err != nil {
		return nil, err
	}
	return s.repos.Meetings.ListRecent(ctx, userID, normalizeLimit(limit, DefaultRecentLimit, MaxRecentLimit))
}

func (s *activityService) RecentEmails(ctx context.Context, userID string, limit int) ([]*domain.Email, error) {
	if err := ensureUser(ctx, s.repos.Users, userID); err != nil {
		return nil, err
	}
	return s.repos.Emails.ListRecent(ctx, userID, normalizeLimit(limit, DefaultRecentLimit, MaxRecentLimit))
}

func (s *activityService) RecentJournalEntries(ctx context.Context, userID string, limit int) ([]*domain.JournalEntry, error) {
	if err := ensureUser(ctx, s.repos.Users, userID); err != nil {
		return nil, err
	}
	return s.repos.Journal.ListRecent(ctx, userID, normalizeLimit(limit, DefaultRecentLimit, MaxRecentLimit))
}

func (s *activityService) GetJournalEntry(ctx context.Context, userID, id string) (*domain.JournalEntry, error) {
	if err := ensureUser(ctx, s.repos.Users, userID); err != nil {
		return nil, err
	}
	return s.repos.Journal.GetByID(ctx, userID, id)
}
