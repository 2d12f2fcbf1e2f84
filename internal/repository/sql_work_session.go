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

// SQLWorkSessionRepo implements WorkSessionRepo.
type SQLWorkSessionRepo struct {
	db db.DBTX
}

// NewSQLWorkSessionRepo creates a new SQLWorkSessionRepo.
func NewSQLWorkSessionRepo(conn db.DBTX) *SQLWorkSessionRepo {
	return &SQLWorkSessionRepo{db: conn}
}

const workSessionColumns = `id, user_id, start_time, end_time, duration_minutes,
	activity_type, productivity_score, created_at`

func (r *SQLWorkSessionRepo) Create(ctx context.Context, s *domain.WorkSession) error {
	query := `INSERT INTO work_sessions (` + workSessionColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		s.ID,
		s.UserID,
		formatTime(s.StartTime),
		formatTime(s.EndTime),
		s.DurationMinutes,
		s.ActivityType,
		nullableFloatToValue(s.ProductivityScore),
		formatTime(s.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting work session: %w", err)
	}
	return nil
}

func (r *SQLWorkSessionRepo) GetByID(ctx context.Context, id string) (*domain.WorkSession, error) {
	query := `SELECT ` + workSessionColumns + ` FROM work_sessions WHERE id = ?`
	return r.scanSession(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLWorkSessionRepo) ListInRange(ctx context.Context, userID string, from, to time.Time) ([]*domain.WorkSession, error) {
	query := `SELECT ` + workSessionColumns + ` FROM work_sessions
		WHERE user_id = ? AND start_time >= ? AND start_time <= ?
		ORDER BY start_time, id`
	rows, err := r.db.QueryContext(ctx, query, userID, formatTime(from), formatTime(to))
	if err != nil {
		return nil, fmt.Errorf("listing work sessions in range: %w", err)
	}
	return collect(rows, "work sessions", r.scanSession)
}

func (r *SQLWorkSessionRepo) ListRecent(ctx context.Context, userID string, limit int) ([]*domain.WorkSession, error) {
	query := `SELECT ` + workSessionColumns + ` FROM work_sessions
		WHERE user_id = ?
		ORDER BY start_time DESC, id DESC
		LIMIT ?`
	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("listing recent work sessions: %w", err)
	}
	return collect(rows, "work sessions", r.scanSession)
}

func (r *SQLWorkSessionRepo) scanSession(row rowScanner) (*domain.WorkSession, error) {
	var s domain.WorkSession
	var startStr, endStr, createdStr string
	var productivity sql.NullFloat64

	err := row.Scan(
		&s.ID, &s.UserID, &startStr, &endStr, &s.DurationMinutes,
		&s.ActivityType, &productivity, &createdStr,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("work session: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning work session: %w", err)
	}
	s.ProductivityScore = floatPtr(productivity)

	if s.StartTime, err = parseTime(startStr); err != nil {
		return nil, fmt.Errorf("parsing start_time: %w", err)
	}
	if s.EndTime, err = parseTime(endStr); err != nil {
		return nil, fmt.Errorf("parsing end_time: %w", err)
	}
	if s.CreatedAt, err = parseTime(createdStr); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	return &s, nil
}
