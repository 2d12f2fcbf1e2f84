package httpapi

import (
	"time"

	"github.com/alexanderramin/cinder/internal/domain"
	"github.com/alexanderramin/cinder/internal/scoring"
)

type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	CreatedAt time.Time `json:"created_at"`
}

func toUser(u *domain.User) UserResponse {
	return UserResponse{ID: u.ID, Email: u.Email, FullName: u.FullName, CreatedAt: u.CreatedAt}
}

type WorkSessionResponse struct {
	ID                string    `json:"id"`
	StartTime         time.Time `json:"start_time"`
	EndTime           time.Time `json:"end_time"`
	DurationMinutes   int       `json:"duration_minutes"`
	ActivityType      string    `json:"activity_type"`
	ProductivityScore *float64  `json:"productivity_score"`
	CreatedAt         time.Time `json:"created_at"`
}

func toWorkSession(s *domain.WorkSession) WorkSessionResponse {
	return WorkSessionResponse{
		ID:                s.ID,
		StartTime:         s.StartTime,
		EndTime:           s.EndTime,
		DurationMinutes:   s.DurationMinutes,
		ActivityType:      s.ActivityType,
		ProductivityScore: s.ProductivityScore,
		CreatedAt:         s.CreatedAt,
	}
}

func toWorkSessions(ss []*domain.WorkSession) []WorkSessionResponse {
	out := make([]WorkSessionResponse, len(ss))
	for i, s := range ss {
		out[i] = toWorkSession(s)
	}
	return out
}

type MeetingResponse struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	StartTime       time.Time `json:"start_time"`
	EndTime         time.Time `json:"end_time"`
	DurationMinutes int       `json:"duration_minutes"`
	AttendeesCount  int       `json:"attendees_count"`
	IsAfterHours    bool      `json:"is_after_hours"`
}

func toMeeting(m *domain.Meeting) MeetingResponse {
	return MeetingResponse{
		ID:              m.ID,
		Title:           m.Title,
		StartTime:       m.StartTime,
		EndTime:         m.EndTime,
		DurationMinutes: m.DurationMinutes,
		AttendeesCount:  m.AttendeesCount,
		IsAfterHours:    m.IsAfterHours,
	}
}

func toMeetings(ms []*domain.Meeting) []MeetingResponse {
	out := make([]MeetingResponse, len(ms))
	for i, m := range ms {
		out[i] = toMeeting(m)
	}
	return out
}

type EmailResponse struct {
	ID               string                  `json:"id"`
	Subject          string                  `json:"subject"`
	SentAt           time.Time               `json:"sent_at"`
	IsSent           bool                    `json:"is_sent"`
	IsAfterHours     bool                    `json:"is_after_hours"`
	SentimentScore   *float64                `json:"sentiment_score"`
	StressLevel      float64                 `json:"stress_level"`
	StressIndicators domain.StressIndicators `json:"stress_indicators"`
}

func toEmail(e *domain.Email) EmailResponse {
	return EmailResponse{
		ID:               e.ID,
		Subject:          e.Subject,
		SentAt:           e.SentAt,
		IsSent:           e.IsSent,
		IsAfterHours:     e.IsAfterHours,
		SentimentScore:   e.SentimentScore,
		StressLevel:      e.StressLevel,
		StressIndicators: e.StressIndicators,
	}
}

func toEmails(es []*domain.Email) []EmailResponse {
	out := make([]EmailResponse, len(es))
	for i, e := range es {
		out[i] = toEmail(e)
	}
	return out
}

type JournalResponse struct {
	ID              string             `json:"id"`
	Content         string             `json:"content"`
	SentimentScore  *float64           `json:"sentiment_score"`
	StressLevel     float64            `json:"stress_level"`
	EmotionAnalysis map[string]float64 `json:"emotion_analysis"`
	CreatedAt       time.Time          `json:"created_at"`
}

func toJournal(j *domain.JournalEntry) JournalResponse {
	return JournalResponse{
		ID:              j.ID,
		Content:         j.Content,
		SentimentScore:  j.SentimentScore,
		StressLevel:     j.StressLevel,
		EmotionAnalysis: j.EmotionAnalysis,
		CreatedAt:       j.CreatedAt,
	}
}

func toJournals(js []*domain.JournalEntry) []JournalResponse {
	out := make([]JournalResponse, len(js))
	for i, j := range js {
		out[i] = toJournal(j)
	}
	return out
}

type TrendResponse struct {
	Days     int              `json:"days"`
	Values   []float64        `json:"values"`
	Points   []scoring.Point  `json:"points"`
	Movement scoring.Movement `json:"movement"`
}

func toTrend(days int, t scoring.Trend) TrendResponse {
	values := t.Values()
	if values == nil {
		values = []float64{}
	}
	return TrendResponse{Days: days, Values: values, Points: t.Points(), Movement: t.Movement()}
}

func scoresOrEmpty(scores []*domain.BurnoutScore) []*domain.BurnoutScore {
	if scores == nil {
		return []*domain.BurnoutScore{}
	}
	return scores
}
