package scoring

import (
	"math"

	"github.com/alexanderramin/cinder/internal/domain"
)

// Calculator maps the records of one activity source to a sub-score in [0,1].
// Records outside the window are ignored.
type Calculator[T any] func(records []T, w Window) float64

// Weekly baselines. They stay fixed whatever the window length.
const (
	MaxHealthyDailyHours = 8.0
	DailyHoursSpan       = 16.0

	MeetingCountBaseline      = 35.0
	MeetingMinutesBaseline    = 3360.0
	MeetingAfterHoursBaseline = 7.0

	EmailCountBaseline      = 140.0
	EmailAfterHoursBaseline = 14.0
)

var (
	_ Calculator[*domain.WorkSession]  = WorkHours
	_ Calculator[*domain.JournalEntry] = Sentiment
	_ Calculator[*domain.Meeting]      = MeetingLoad
	_ Calculator[*domain.Email]        = EmailStress
)

// WorkHours scores the mean hours worked per active day. Eight hours maps to
// 0.5 and sixteen or more saturates at 1.
func WorkHours(sessions []*domain.WorkSession, w Window) float64 {
	daily := make(map[string]float64)
	for _, s := range sessions {
		if s == nil || !w.Contains(s.StartTime) {
			continue
		}
		daily[w.dateKey(s.StartTime)] += s.Hours()
	}
	if len(daily) == 0 {
		return 0
	}

	var total float64
	for _, h := range daily {
		total += h
	}
	avg := total / float64(len(daily))

	if avg <= MaxHealthyDailyHours {
		return clamp(avg / DailyHoursSpan)
	}
	return clamp(0.5 + math.Min((avg-MaxHealthyDailyHours)/MaxHealthyDailyHours, 0.5))
}

// Sentiment scores how negative journal entries are on average. Entries
// without a sentiment value are skipped.
func Sentiment(entries []*domain.JournalEntry, w Window) float64 {
	var sum float64
	var n int
	for _, j := range entries {
		if j == nil || j.SentimentScore == nil || !w.Contains(j.CreatedAt) {
			continue
		}
		sum += *j.SentimentScore
		n++
	}
	if n == 0 {
		return 0
	}
	return clamp(math.Max(0, -sum/float64(n)))
}

// MeetingLoad combines meeting count, total minutes and after-hours meetings.
func MeetingLoad(meetings []*domain.Meeting, w Window) float64 {
	var count, afterHours, minutes float64
	for _, m := range meetings {
		if m == nil || !w.Contains(m.StartTime) {
			continue
		}
		count++
		minutes += float64(m.DurationMinutes)
		if m.IsAfterHours {
			afterHours++
		}
	}
	if count == 0 {
		return 0
	}
	return clamp(0.4*ratio(count, MeetingCountBaseline) +
		0.4*ratio(minutes, MeetingMinutesBaseline) +
		0.2*ratio(afterHours, MeetingAfterHoursBaseline))
}

// EmailStress combines email volume, after-hours sending and negative tone.
func EmailStress(emails []*domain.Email, w Window) float64 {
	var count, afterHours, sentimentSum float64
	var withSentiment int
	for _, e := range emails {
		if e == nil || !w.Contains(e.SentAt) {
			continue
		}
		count++
		if e.IsAfterHours {
			afterHours++
		}
		if e.SentimentScore != nil {
			sentimentSum += *e.SentimentScore
			withSentiment++
		}
	}
	if count == 0 {
		return 0
	}

	var negativity float64
	if withSentiment > 0 {
		negativity = math.Max(0, -sentimentSum/float64(withSentiment))
	}
	return clamp(0.4*ratio(count, EmailCountBaseline) +
		0.3*ratio(afterHours, EmailAfterHoursBaseline) +
		0.3*negativity)
}

// ratio is v/baseline capped at 1.
func ratio(v, baseline float64) float64 {
	return math.Min(v/baseline, 1)
}

// clamp forces v into [0,1]; NaN becomes 0.
func clamp(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(0, math.Min(1, v))
}
