package domain

import (
	"errors"
	"time"
)

// ErrEndBeforeStart is returned when an interval ends before it starts.
var ErrEndBeforeStart = errors.New("end time is before start time")

// DurationMinutes returns the whole minutes between start and end.
func DurationMinutes(start, end time.Time) (int, error) {
	if end.Before(start) {
		return 0, ErrEndBeforeStart
	}
	return int(end.Sub(start) / time.Minute), nil
}

type WorkSession struct {
	ID                string    `json:"id"`
	UserID            string    `json:"user_id"`
	StartTime         time.Time `json:"start_time"`
	EndTime           time.Time `json:"end_time"`
	DurationMinutes   int       `json:"duration_minutes"`
	ActivityType      string    `json:"activity_type"`
	ProductivityScore *float64  `json:"productivity_score"`
	CreatedAt         time.Time `json:"created_at"`
}

// Hours returns the session length in fractional hours.
func (s *WorkSession) Hours() float64 {
	return float64(s.DurationMinutes) / 60
}

type Meeting struct {
	ID              string    `json:"id"`
	UserID          string    `json:"user_id"`
	Title           string    `json:"title"`
	StartTime       time.Time `json:"start_time"`
	EndTime         time.Time `json:"end_time"`
	DurationMinutes int       `json:"duration_minutes"`
	AttendeesCount  int       `json:"attendees_count"`
	IsAfterHours    bool      `json:"is_after_hours"`
	CreatedAt       time.Time `json:"created_at"`
}

type Email struct {
	ID               string           `json:"id"`
	UserID           string           `json:"user_id"`
	Subject          string           `json:"subject"`
	Body             string           `json:"body"`
	SentAt           time.Time        `json:"sent_at"`
	IsSent           bool             `json:"is_sent"`
	IsAfterHours     bool             `json:"is_after_hours"`
	SentimentScore   *float64         `json:"sentiment_score"`
	StressLevel      float64          `json:"stress_level"`
	StressIndicators StressIndicators `json:"stress_indicators"`
	CreatedAt        time.Time        `json:"created_at"`
}

// Text is what the annotator reads for an email.
func (e *Email) Text() string {
	if e.Subject == "" {
		return e.Body
	}
	if e.Body == "" {
		return e.Subject
	}
	return e.Subject + "\n\n" + e.Body
}

// ApplyAnnotation copies annotator output onto the email.
func (e *Email) ApplyAnnotation(a Annotation) {
	s := a.Sentiment
	e.SentimentScore = &s
	e.StressLevel = a.Stress
	e.StressIndicators = a.Indicators
}

type JournalEntry struct {
	ID              string             `json:"id"`
	UserID          string             `json:"user_id"`
	Content         string             `json:"content"`
	SentimentScore  *float64           `json:"sentiment_score"`
	StressLevel     float64            `json:"stress_level"`
	EmotionAnalysis map[string]float64 `json:"emotion_analysis"`
	CreatedAt       time.Time          `json:"created_at"`
}

// ApplyAnnotation copies annotator output onto the entry.
func (j *JournalEntry) ApplyAnnotation(a Annotation) {
	s := a.Sentiment
	j.SentimentScore = &s
	j.StressLevel = a.Stress
	j.EmotionAnalysis = a.Emotions
}
