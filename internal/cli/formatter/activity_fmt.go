package formatter

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/alexanderramin/cinder/internal/domain"
)

func FormatSessions(sessions []*domain.WorkSession) string {
	headers := []string{"ID", "WHEN", "DURATION", "TYPE", "PRODUCTIVITY"}
	rows := make([][]string, 0, len(sessions))
	for _, s := range sessions {
		productivity := Dim("--")
		if s.ProductivityScore != nil {
			productivity = FormatScore(*s.ProductivityScore)
		}
		rows = append(rows, []string{
			TruncID(s.ID),
			ClockRange(s.StartTime.Local(), s.EndTime),
			FormatMinutes(s.DurationMinutes),
			s.ActivityType,
			productivity,
		})
	}
	return RenderBox("Work sessions", RenderTable(headers, rows))
}

func FormatMeetings(meetings []*domain.Meeting) string {
	headers := []string{"ID", "WHEN", "DURATION", "TITLE", "PEOPLE", ""}
	rows := make([][]string, 0, len(meetings))
	for _, m := range meetings {
		flag := ""
		if m.IsAfterHours {
			flag = StyleYellow.Render("after hours")
		}
		rows = append(rows, []string{
			TruncID(m.ID),
			ClockRange(m.StartTime.Local(), m.EndTime),
			FormatMinutes(m.DurationMinutes),
			Truncate(m.Title, 40),
			fmt.Sprintf("%d", m.AttendeesCount),
			flag,
		})
	}
	return RenderBox("Meetings", RenderTable(headers, rows))
}

func FormatEmails(emails []*domain.Email, now time.Time) string {
	headers := []string{"ID", "SENT", "SUBJECT", "SENTIMENT", "STRESS", ""}
	rows := make([][]string, 0, len(emails))
	for _, e := range emails {
		var flags []string
		if !e.IsSent {
			flags = append(flags, "received")
		}
		if e.IsAfterHours {
			flags = append(flags, StyleYellow.Render("after hours"))
		}
		rows = append(rows, []string{
			TruncID(e.ID),
			HumanTimestamp(e.SentAt, now),
			Truncate(e.Subject, 40),
			FormatSentiment(e.SentimentScore),
			ScoreColor(e.StressLevel).Render(FormatScore(e.StressLevel)),
			strings.Join(flags, " "),
		})
	}
	return RenderBox("Emails", RenderTable(headers, rows))
}

func FormatJournalEntries(entries []*domain.JournalEntry, now time.Time) string {
	headers := []string{"ID", "WRITTEN", "SENTIMENT", "ENTRY"}
	rows := make([][]string, 0, len(entries))
	for _, j := range entries {
		rows = append(rows, []string{
			TruncID(j.ID),
			HumanTimestamp(j.CreatedAt, now),
			FormatSentiment(j.SentimentScore),
			Dim(Truncate(j.Content, 50)),
		})
	}
	return RenderBox("Journal", RenderTable(headers, rows))
}

// FormatJournalEntry renders one entry with its emotion reading, strongest
// emotion first.
func FormatJournalEntry(j *domain.JournalEntry) string {
	var b strings.Builder
	b.WriteString(Dim(j.ID+"  "+j.CreatedAt.Local().Format("Monday, Jan 2 2006 15:04")) + "\n\n")
	b.WriteString(j.Content + "\n\n")
	fmt.Fprintf(&b, "Sentiment %s   Stress %s\n", FormatSentiment(j.SentimentScore), FormatScore(j.StressLevel))

	if len(j.EmotionAnalysis) > 0 {
		names := make([]string, 0, len(j.EmotionAnalysis))
		for name := range j.EmotionAnalysis {
			names = append(names, name)
		}
		sort.Slice(names, func(a, b int) bool {
			ea, eb := j.EmotionAnalysis[names[a]], j.EmotionAnalysis[names[b]]
			if ea != eb {
				return ea > eb
			}
			return names[a] < names[b]
		})
		b.WriteString("\n")
		for _, name := range names {
			fmt.Fprintf(&b, "%-10s %s\n", name, RenderCompactBar(j.EmotionAnalysis[name], 16, false))
		}
	}

	return RenderBox("Journal entry", strings.TrimRight(b.String(), "\n"))
}
