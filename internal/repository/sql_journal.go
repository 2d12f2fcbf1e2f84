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

// SQLJournalRepo implements JournalRepo.
type SQLJournalRepo struct {
	db db.DBTX
}

// NewSQLJournalRepo creates a new SQLJournalRepo.
func NewSQLJournalRepo(conn db.DBTX) *SQLJournalRepo {
	return &SQLJournalRepo{db: conn}
}

const journalColumns = `id, user_id, content, sentiment_score, stress_level,
	emotion_analysis, created_at`

func (r *SQLJournalRepo) Create(ctx context.Context, j *domain.JournalEntry) error {
	emotions, err := marshalJSON(j.EmotionAnalysis)
	if err != nil {
		return fmt.Errorf("inserting journal entry: %w", err)
	}
	query := `INSERT INTO journal_entries (` + journalColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		j.ID,
		j.UserID,
		j.Content,
		nullableFloatToValue(j.SentimentScore),
		j.StressLevel,
		emotions,
		formatTime(j.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting journal entry: %w", err)
	}
	return nil
}

// GetByID only returns entries owned by userID.
func (r *SQLJournalRepo) GetByID(ctx context.Context, userID, id string) (*domain.JournalEntry, error) {
	query := `SELECT ` + journalColumns + ` FROM journal_entries WHERE id = ? AND user_id = ?`
	return r.scanEntry(r.db.QueryRowContext(ctx, query, id, userID))
}

func (r *SQLJournalRepo) ListInRange(ctx context.Context, userID string, from, to time.Time) ([]*domain.JournalEntry, error) {
	query := `SELECT ` + journalColumns + ` FROM journal_entries
		WHERE user_id = ? AND created_at >= ? AND created_at <= ?
		ORDER BY created_at, id`
	rows, err := r.db.QueryContext(ctx, query, userID, formatTime(from), formatTime(to))
	if err != nil {
		return nil, fmt.Errorf("listing journal entries in range: %w", err)
	}
	return collect(rows, "journal entries", r.scanEntry)
}

func (r *SQLJournalRepo) ListRecent(ctx context.Context, userID string, limit int) ([]*domain.JournalEntry, error) {
	query := `SELECT ` + journalColumns + ` FROM journal_entries
		WHERE user_id = ?
		ORDER BY created_at DESC, id DESC
		LIMIT ?`
	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("listing recent journal entries: %w", err)
	}
	return collect(rows, "journal entries", r.scanEntry)
}

func (r *SQLJournalRepo) scanEntry(row rowScanner) (*domain.JournalEntry, error) {
	var j domain.JournalEntry
	var createdStr, emotions string
	var sentiment sql.NullFloat64

	err := row.Scan(&j.ID, &j.UserID, &j.Content, &sentiment, &j.StressLevel, &emotions, &createdStr)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("journal entry: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning journal entry: %w", err)
	}
	j.SentimentScore = floatPtr(sentiment)
	j.EmotionAnalysis = map[string]float64{}
	if err := unmarshalJSON(emotions, &j.EmotionAnalysis); err != nil {
		return nil, fmt.Errorf("journal entry %s emotion_analysis: %w", j.ID, err)
	}
	if j.CreatedAt, err = parseTime(createdStr); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	return &j, nil
}
