package scoring

import "github.com/alexanderramin/cinder/internal/domain"

// Level thresholds are inclusive upper bounds.
const (
	LowThreshold      = 0.3
	ModerateThreshold = 0.6

	subScoreWeight = 0.25
)

// Breakdown holds the four sub-scores of one calculation.
type Breakdown struct {
	WorkHours   float64
	Sentiment   float64
	MeetingLoad float64
	EmailStress float64
}

// Overall is the equally weighted mean of the sub-scores, clamped to [0,1].
func (b Breakdown) Overall() float64 {
	return clamp(subScoreWeight * (clamp(b.WorkHours) + clamp(b.Sentiment) +
		clamp(b.MeetingLoad) + clamp(b.EmailStress)))
}

// ClassifyLevel maps an overall score to its burnout level.
func ClassifyLevel(overall float64) domain.BurnoutLevel {
	switch {
	case overall <= LowThreshold:
		return domain.BurnoutLow
	case overall <= ModerateThreshold:
		return domain.BurnoutModerate
	default:
		return domain.BurnoutHigh
	}
}

// Score fills the numeric and level fields of a BurnoutScore from b. Identity
// and timestamp fields are left to the caller.
func (b Breakdown) Score() domain.BurnoutScore {
	overall := b.Overall()
	return domain.BurnoutScore{
		OverallScore:     overall,
		WorkHoursScore:   clamp(b.WorkHours),
		SentimentScore:   clamp(b.Sentiment),
		MeetingLoadScore: clamp(b.MeetingLoad),
		EmailStressScore: clamp(b.EmailStress),
		BurnoutLevel:     ClassifyLevel(overall),
	}
}
