package importer

import (
	"fmt"
	"time"
)

// ValidateImportSchema checks the import schema for errors before conversion.
// Returns a slice of all validation errors found.
func ValidateImportSchema(schema *ImportSchema) []error {
	var errs []error

	if schema.Len() == 0 {
		errs = append(errs, fmt.Errorf("import file contains no records"))
	}

	errs = append(errs, validateWorkSessions(schema.WorkSessions)...)
	errs = append(errs, validateMeetings(schema.Meetings)...)
	errs = append(errs, validateEmails(schema.Emails)...)
	errs = append(errs, validateJournalEntries(schema.JournalEntries)...)

	return errs
}

func validateWorkSessions(sessions []WorkSessionImport) []error {
	var errs []error

	for i, s := range sessions {
		prefix := fmt.Sprintf("work_sessions[%d]", i)

		errs = append(errs, validateInterval(prefix, s.StartTime, s.EndTime)...)
		if s.ProductivityScore != nil && (*s.ProductivityScore < 0 || *s.ProductivityScore > 1) {
			errs = append(errs, fmt.Errorf("%s.productivity_score %.2f must be within [0, 1]", prefix, *s.ProductivityScore))
		}
	}

	return errs
}

func validateMeetings(meetings []MeetingImport) []error {
	var errs []error

	for i, m := range meetings {
		prefix := fmt.Sprintf("meetings[%d]", i)

		if m.Title == "" {
			errs = append(errs, fmt.Errorf("%s.title is required", prefix))
		}
		errs = append(errs, validateInterval(prefix, m.StartTime, m.EndTime)...)
		if m.AttendeesCount != nil && *m.AttendeesCount < 1 {
			errs = append(errs, fmt.Errorf("%s.attendees_count must be at least 1", prefix))
		}
	}

	return errs
}

func validateEmails(emails []EmailImport) []error {
	var errs []error

	for i, e := range emails {
		prefix := fmt.Sprintf("emails[%d]", i)

		if e.Subject == "" && e.Body == "" {
			errs = append(errs, fmt.Errorf("%s: subject or body is required", prefix))
		}
		errs = append(errs, validateRequiredTime(prefix+".sent_at", e.SentAt)...)
		errs = append(errs, validateSentiment(prefix+".sentiment_score", e.SentimentScore)...)
	}

	return errs
}

func validateJournalEntries(entries []JournalImport) []error {
	var errs []error

	for i, j := range entries {
		prefix := fmt.Sprintf("journal_entries[%d]", i)

		if j.Content == "" {
			errs = append(errs, fmt.Errorf("%s.content is required", prefix))
		}
		errs = append(errs, validateRequiredTime(prefix+".created_at", j.CreatedAt)...)
		errs = append(errs, validateSentiment(prefix+".sentiment_score", j.SentimentScore)...)
	}

	return errs
}

func validateInterval(prefix, startRaw, endRaw string) []error {
	errs := validateRequiredTime(prefix+".start_time", startRaw)
	errs = append(errs, validateRequiredTime(prefix+".end_time", endRaw)...)
	if len(errs) > 0 {
		return errs
	}

	start, _ := time.Parse(time.RFC3339, startRaw)
	end, _ := time.Parse(time.RFC3339, endRaw)
	if end.Before(start) {
		errs = append(errs, fmt.Errorf("%s.end_time %q must not be before start_time %q", prefix, endRaw, startRaw))
	}
	return errs
}

func validateRequiredTime(field, raw string) []error {
	if raw == "" {
		return []error{fmt.Errorf("%s is required", field)}
	}
	if _, err := time.Parse(time.RFC3339, raw); err != nil {
		return []error{fmt.Errorf("%s: invalid time %q (expected RFC3339)", field, raw)}
	}
	return nil
}

func validateSentiment(field string, v *float64) []error {
	if v != nil && (*v < -1 || *v > 1) {
		return []error{fmt.Errorf("%s %.2f must be within [-1, 1]", field, *v)}
	}
	return nil
}
