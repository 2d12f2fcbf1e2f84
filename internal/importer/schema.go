package importer

import (
	"encoding/json"
	"fmt"
	"os"
)

// ImportSchema is the top-level JSON structure for activity import.
// All times are RFC3339.
type ImportSchema struct {
	WorkSessions   []WorkSessionImport `json:"work_sessions,omitempty"`
	Meetings       []MeetingImport     `json:"meetings,omitempty"`
	Emails         []EmailImport       `json:"emails,omitempty"`
	JournalEntries []JournalImport     `json:"journal_entries,omitempty"`
}

// WorkSessionImport defines a work session in the import file.
type WorkSessionImport struct {
	StartTime         string   `json:"start_time"`
	EndTime           string   `json:"end_time"`
	ActivityType      string   `json:"activity_type,omitempty"`
	ProductivityScore *float64 `json:"productivity_score,omitempty"`
}

// MeetingImport defines a calendar meeting. IsAfterHours is derived from
// the workday policy when omitted.
type MeetingImport struct {
	Title          string `json:"title"`
	StartTime      string `json:"start_time"`
	EndTime        string `json:"end_time"`
	AttendeesCount *int   `json:"attendees_count,omitempty"`
	IsAfterHours   *bool  `json:"is_after_hours,omitempty"`
}

// EmailImport defines an email. A supplied sentiment_score overrides the
// annotator's reading.
type EmailImport struct {
	Subject        string   `json:"subject"`
	Body           string   `json:"body,omitempty"`
	SentAt         string   `json:"sent_at"`
	IsSent         *bool    `json:"is_sent,omitempty"`
	IsAfterHours   *bool    `json:"is_after_hours,omitempty"`
	SentimentScore *float64 `json:"sentiment_score,omitempty"`
}

// JournalImport defines a journal entry.
type JournalImport struct {
	Content        string   `json:"content"`
	CreatedAt      string   `json:"created_at"`
	SentimentScore *float64 `json:"sentiment_score,omitempty"`
}

// Len is the total number of records in the file.
func (s *ImportSchema) Len() int {
	return len(s.WorkSessions) + len(s.Meetings) + len(s.Emails) + len(s.JournalEntries)
}

// LoadImportSchema reads and parses an activity import JSON file.
func LoadImportSchema(path string) (*ImportSchema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseImportSchema(data)
}

// ParseImportSchema parses an activity import document.
func ParseImportSchema(data []byte) (*ImportSchema, error) {
	var schema ImportSchema
	if err := json.Unmarshal(data, &schema); err != nil {
		return nil, fmt.Errorf("parsing import file: %w", err)
	}
	return &schema, nil
}
