package domain

import "time"

type BurnoutLevel string

const (
	BurnoutLow      BurnoutLevel = "low"
	BurnoutModerate BurnoutLevel = "moderate"
	BurnoutHigh     BurnoutLevel = "high"
)

// Valid reports whether l is one of the three known levels.
func (l BurnoutLevel) Valid() bool {
	switch l {
	case BurnoutLow, BurnoutModerate, BurnoutHigh:
		return true
	}
	return false
}

// BurnoutScore is one append-only row of a user's score history.
type BurnoutScore struct {
	ID               string       `json:"id"`
	UserID           string       `json:"user_id"`
	OverallScore     float64      `json:"overall_score"`
	WorkHoursScore   float64      `json:"work_hours_score"`
	SentimentScore   float64      `json:"sentiment_score"`
	MeetingLoadScore float64      `json:"meeting_load_score"`
	EmailStressScore float64      `json:"email_stress_score"`
	BurnoutLevel     BurnoutLevel `json:"burnout_level"`
	CalculatedAt     time.Time    `json:"calculated_at"`
}
