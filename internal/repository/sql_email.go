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

// SQLEmailRepo implements EmailRepo.
type SQLEmailRepo struct {
	db db.DBTX
}

// NewSQLEmailRepo creates a new SQLEmailRepo.
func NewSQLEmailRepo(conn db.DBTX) *SQLEmailRepo {
	return &SQLEmailRepo{db: conn}
}

const emailColumns = `id, user_id, subject, body, sent_at, is_sent, is_after_hours,
	sentiment_score, stress_level, stress_indicators, created_at`

func (r *SQLEmailRepo) Create(ctx context.Context, e *domain.Email) error {
	indicators, err := marshalJSON(e.StressIndicators)
	if err != nil {
		return fmt.Errorf("inserting email: %w", err)
	}
	query := `INSERT INTO emails (` + emailColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		e.ID,
		e.UserID,
		e.Subject,
		e.Body,
		formatTime(e.SentAt),
		boolToInt(e.IsSent),
		boolToInt(e.IsAfterHours),
		nullableFloatToValue(e.SentimentScore),
		e.StressLevel,
		indicators,
		formatTime(e.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting email: %w", err)
	}
	return nil
}

func (r *SQLEmailRepo) GetByID(ctx context.Context, id string) (*domain.Email, error) {
	query := `SELECT ` + emailColumns + ` FROM emails WHERE id = ?`
	return r.scanEmail(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLEmailRepo) ListInRange(ctx context.Context, userID string, from, to time.Time) ([]*domain.Email, error) {
	query := `SELECT ` + emailColumns + ` FROM emails
		WHERE user_id = ? AND sent_at >= ? AND sent_at <= ?
		ORDER BY sent_at, id`
	rows, err := r.db.QueryContext(ctx, query, userID, formatTime(from), formatTime(to))
	if err != nil {
		return nil, fmt.Errorf("listing emails in range: %w", err)
	}
	return collect(rows, "emails", r.scanEmail)
}

func (r *SQLEmailRepo) ListRecent(ctx context.Context, userID string, limit int) ([]*domain.Email, error) {
	query := `SELECT ` + emailColumns + ` FROM emails
		WHERE user_id = ?
		ORDER BY sent_at DESC, id DESC
		LIMIT ?`
	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("listing recent emails: %w", err)
	}
	return collect(rows, "emails", r.scanEmail)
}

func (r *SQLEmailRepo) scanEmail(row rowScanner) (*domain.Email, error) {
	var e domain.Email
	var sentStr, createdStr, indicators string
	var isSent, afterHours int
	var sentiment sql.NullFloat64

	err := row.Scan(
		&e.ID, &e.UserID, &e.Subject, &e.Body, &sentStr, &isSent, &afterHours,
		&sentiment, &e.StressLevel, &indicators, &createdStr,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("email: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning email: %w", err)
	}
	e.IsSent = intToBool(isSent)
	e.IsAfterHours = intToBool(afterHours)
	e.SentimentScore = floatPtr(sentiment)
	if err := unmarshalJSON(indicators, &e.StressIndicators); err != nil {
		return nil, fmt.Errorf("email %s stress_indicators: %w", e.ID, err)
	}
	if e.StressIndicators.Keywords == nil {
		e.StressIndicators.Keywords = []string{}
	}

	if e.SentAt, err = parseTime(sentStr); err != nil {
		return nil, fmt.Errorf("parsing sent_at: %w", err)
	}
	if e.CreatedAt, err = parseTime(createdStr); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	return &e, nil
}
