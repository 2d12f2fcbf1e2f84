package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/cinder/internal/domain"
	"github.com/alexanderramin/cinder/internal/scoring"
	"github.com/alexanderramin/cinder/internal/service"
)

const scoreBarWidth = 20

var sparkTicks = []rune("▁▂▃▄▅▆▇█")

// FormatBurnoutScore renders a calculation with its four sub-scores.
func FormatBurnoutScore(s *domain.BurnoutScore, days int) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s  %s\n", LevelIndicator(s.BurnoutLevel), Bold(FormatScore(s.OverallScore)))
	b.WriteString(RenderScoreBar(s.OverallScore, scoreBarWidth) + "\n\n")

	rows := []struct {
		label string
		value float64
	}{
		{"Work hours", s.WorkHoursScore},
		{"Sentiment", s.SentimentScore},
		{"Meeting load", s.MeetingLoadScore},
		{"Email stress", s.EmailStressScore},
	}
	for _, r := range rows {
		fmt.Fprintf(&b, "%-14s %s\n", r.label, RenderScoreBar(r.value, scoreBarWidth/2))
	}
	b.WriteString("\n" + Dim(fmt.Sprintf("Last %d days, calculated %s", days, s.CalculatedAt.Local().Format("Jan 2 15:04"))))

	return RenderBox("Burnout score", b.String())
}

// FormatHistory renders scores newest first.
func FormatHistory(scores []*domain.BurnoutScore, now time.Time) string {
	headers := []string{"CALCULATED", "LEVEL", "OVERALL", "HOURS", "SENTIMENT", "MEETINGS", "EMAIL"}
	rows := make([][]string, 0, len(scores))
	for _, s := range scores {
		rows = append(rows, []string{
			HumanTimestamp(s.CalculatedAt, now),
			LevelIndicator(s.BurnoutLevel),
			ScoreColor(s.OverallScore).Render(FormatScore(s.OverallScore)),
			FormatScore(s.WorkHoursScore),
			FormatScore(s.SentimentScore),
			FormatScore(s.MeetingLoadScore),
			FormatScore(s.EmailStressScore),
		})
	}
	return RenderBox("History", RenderTable(headers, rows))
}

// Sparkline maps 0..1 values onto block heights.
func Sparkline(values []float64) string {
	var b strings.Builder
	top := len(sparkTicks) - 1
	for _, v := range values {
		b.WriteRune(sparkTicks[int(clamp01(v)*float64(top)+0.5)])
	}
	return b.String()
}

// MovementLabel renders the direction of a trend with its delta.
func MovementLabel(m scoring.Movement) string {
	switch m.Direction {
	case scoring.DirectionUp:
		return StyleRed.Render(fmt.Sprintf("▲ rising %+.2f", m.Delta))
	case scoring.DirectionDown:
		return StyleGreen.Render(fmt.Sprintf("▼ easing %+.2f", m.Delta))
	default:
		return StyleDim.Render("● stable")
	}
}

// FormatTrend renders the overall scores of the last days as a sparkline.
func FormatTrend(days int, t scoring.Trend) string {
	if t.Len() == 0 {
		return RenderBox("Trend", Dim(fmt.Sprintf("No scores in the last %d days.", days)))
	}

	values := t.Values()
	var b strings.Builder
	b.WriteString(StyleHeader.Render(Sparkline(values)) + "\n\n")

	lo, hi := values[0], values[0]
	for _, v := range values {
		lo, hi = min(lo, v), max(hi, v)
	}
	fmt.Fprintf(&b, "%d scores  min %s  max %s  latest %s\n",
		len(values), FormatScore(lo), FormatScore(hi),
		ScoreColor(values[len(values)-1]).Render(FormatScore(values[len(values)-1])))
	b.WriteString(MovementLabel(t.Movement()))

	return RenderBox(fmt.Sprintf("Trend (%dd)", days), b.String())
}

// FormatPatterns renders the hour-of-day distribution of work.
func FormatPatterns(p *service.WorkPatterns) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d sessions, %.1fh total, %.1fh per active day\n\n", p.SessionCount, p.TotalHours, p.AvgDailyHours)

	if len(p.HourlyDistribution) == 0 {
		b.WriteString(Dim("No work sessions in range."))
		return RenderBox(fmt.Sprintf("Work patterns (%dd)", p.Days), b.String())
	}

	peak := 0
	for _, m := range p.HourlyDistribution {
		peak = max(peak, m)
	}
	for hour := range 24 {
		m, ok := p.HourlyDistribution[hour]
		if !ok {
			continue
		}
		fmt.Fprintf(&b, "%02d:00 %s %s\n", hour, RenderCompactBar(float64(m)/float64(peak), 24, false), Dim(FormatMinutes(m)))
	}

	if len(p.MostProductiveHours) > 0 {
		top := make([]string, len(p.MostProductiveHours))
		for i, h := range p.MostProductiveHours {
			top[i] = fmt.Sprintf("%02d:00", h.Hour)
		}
		b.WriteString("\nBusiest hours: " + Bold(strings.Join(top, ", ")))
	}

	return RenderBox(fmt.Sprintf("Work patterns (%dd)", p.Days), b.String())
}
