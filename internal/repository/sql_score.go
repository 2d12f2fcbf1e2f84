package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/cinder/internal/db"
	"github.com/alexanderramin/cinder/internal/domain"
)

// SQLScoreRepo implements ScoreRepo. Rows are never updated or deleted.
type SQLScoreRepo struct {
	db db.DBTX
}

// NewSQLScoreRepo creates a new SQLScoreRepo.
func NewSQLScoreRepo(conn db.DBTX) *SQLScoreRepo {
	return &SQLScoreRepo{db: conn}
}

const scoreColumns = `id, user_id, overall_score, work_hours_score, sentiment_score,
	meeting_load_score, email_stress_score, burnout_level, calculated_at`

func (r *SQLScoreRepo) Create(ctx context.Context, s *domain.BurnoutScore) error {
	query := `INSERT INTO burnout_scores (` + scoreColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		s.ID,
		s.UserID,
		s.OverallScore,
		s.WorkHoursScore,
		s.SentimentScore,
		s.MeetingLoadScore,
		s.EmailStressScore,
		string(s.BurnoutLevel),
		formatTime(s.CalculatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting burnout score: %w", err)
	}
	return nil
}

// ListRecent returns up to limit scores, newest first.
func (r *SQLScoreRepo) ListRecent(ctx context.Context, userID string, limit int) ([]*domain.BurnoutScore, error) {
	query := `SELECT ` + scoreColumns + ` FROM burnout_scores
		WHERE user_id = ?
		ORDER BY calculated_at DESC, id DESC
		LIMIT ?`
	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("listing recent burnout scores: %w", err)
	}
	return collect(rows, "burnout scores", r.scanScore)
}

// ListRange returns scores calculated within [from, to], oldest first with
// ties broken by id.
func (r *SQLScoreRepo) ListRange(ctx context.Context, userID string, from, to time.Time) ([]*domain.BurnoutScore, error) {
	query := `SELECT ` + scoreColumns + ` FROM burnout_scores
		WHERE user_id = ? AND calculated_at >= ? AND calculated_at <= ?
		ORDER BY calculated_at, id`
	rows, err := r.db.QueryContext(ctx, query, userID, formatTime(from), formatTime(to))
	if err != nil {
		return nil, fmt.Errorf("listing burnout scores in range: %w", err)
	}
	return collect(rows, "burnout scores", r.scanScore)
}

func (r *SQLScoreRepo) scanScore(row rowScanner) (*domain.BurnoutScore, error) {
	var s domain.BurnoutScore
	var level, calculatedStr string

	err := row.Scan(
		&s.ID, &s.UserID, &s.OverallScore, &s.WorkHoursScore, &s.SentimentScore,
		&s.MeetingLoadScore, &s.EmailStressScore, &level, &calculatedStr,
	)
	if err != nil {
		return nil, fmt.Errorf("scanning burnout score: %w", err)
	}
	s.BurnoutLevel = domain.BurnoutLevel(level)
	if s.CalculatedAt, err = parseTime(calculatedStr); err != nil {
		return nil, fmt.Errorf("parsing calculated_at: %w", err)
	}
	return &s, nil
}
