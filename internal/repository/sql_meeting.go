package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/cinder/internal/db"
	"github.com/alexanderramin/cinder/internal/domain"
)

// SQLMeetingRepo implements MeetingRepo.
type SQLMeetingRepo struct {
	db db.DBTX
}

// NewSQLMeetingRepo creates a new SQLMeetingRepo.
func NewSQLMeetingRepo(conn db.DBTX) *SQLMeetingRepo {
	return &SQLMeetingRepo{db: conn}
}

const meetingColumns = `id, user_id, title, start_time, end_time, duration_minutes,
	attendees_count, is_after_hours, created_at`

func (r *SQLMeetingRepo) Create(ctx context.Context, m *domain.Meeting) error {
	query := `INSERT INTO meetings (` + meetingColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		m.ID,
		m.UserID,
		m.Title,
		formatTime(m.StartTime),
		formatTime(m.EndTime),
		m.DurationMinutes,
		m.AttendeesCount,
		boolToInt(m.IsAfterHours),
		formatTime(m.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting meeting: %w", err)
	}
	return nil
}

func (r *SQLMeetingRepo) GetByID(ctx context.Context, id string) (*domain.Meeting, error) {
	query := `SELECT ` + meetingColumns + ` FROM meetings WHERE id = ?`
	return r.scanMeeting(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLMeetingRepo) ListInRange(ctx context.Context, userID string, from, to time.Time) ([]*domain.Meeting, error) {
	query := `SELECT ` + meetingColumns + ` FROM meetings
		WHERE user_id = ? AND start_time >= ? AND start_time <= ?
		ORDER BY start_time, id`
	rows, err := r.db.QueryContext(ctx, query, userID, formatTime(from), formatTime(to))
	if err != nil {
		return nil, fmt.Errorf("listing meetings in range: %w", err)
	}
	return collect(rows, "meetings", r.scanMeeting)
}

func (r *SQLMeetingRepo) ListRecent(ctx context.Context, userID string, limit int) ([]*domain.Meeting, error) {
	query := `SELECT ` + meetingColumns + ` FROM meetings
		WHERE user_id = ?
		ORDER BY start_time DESC, id DESC
		LIMIT ?`
	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("listing recent meetings: %w", err)
	}
	return collect(rows, "meetings", r.scanMeeting)
}

func (r *SQLMeetingRepo) scanMeeting(row rowScanner) (*domain.Meeting, error) {
	var m domain.Meeting
	var startStr, endStr, createdStr string
	var afterHours int

	err := row.Scan(
		&m.ID, &m.UserID, &m.Title, &startStr, &endStr, &m.DurationMinutes,
		&m.AttendeesCount, &afterHours, &createdStr,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("meeting: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning meeting: %w", err)
	}
	m.IsAfterHours = intToBool(afterHours)

	if m.StartTime, err = parseTime(startStr); err != nil {
		return nil, fmt.Errorf("parsing start_time: %w", err)
	}
	if m.EndTime, err = parseTime(endStr); err != nil {
		return nil, fmt.Errorf("parsing end_time: %w", err)
	}
	if m.CreatedAt, err = parseTime(createdStr); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	return &m, nil
}
