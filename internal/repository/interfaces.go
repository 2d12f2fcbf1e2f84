package repository

import (
	"context"
	"time"

	"github.com/alexanderramin/cinder/internal/domain"
)

type UserRepo interface {
	Create(ctx context.Context, u *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	Delete(ctx context.Context, id string) error
}

// Range queries below are inclusive on both ends.

type WorkSessionRepo interface {
	Create(ctx context.Context, s *domain.WorkSession) error
	GetByID(ctx context.Context, id string) (*domain.WorkSession, error)
	ListInRange(ctx context.Context, userID string, from, to time.Time) ([]*domain.WorkSession, error)
	ListRecent(ctx context.Context, userID string, limit int) ([]*domain.WorkSession, error)
}

type MeetingRepo interface {
	Create(ctx context.Context, m *domain.Meeting) error
	GetByID(ctx context.Context, id string) (*domain.Meeting, error)
	ListInRange(ctx context.Context, userID string, from, to time.Time) ([]*domain.Meeting, error)
	ListRecent(ctx context.Context, userID string, limit int) ([]*domain.Meeting, error)
}

type EmailRepo interface {
	Create(ctx context.Context, e *domain.Email) error
	GetByID(ctx context.Context, id string) (*domain.Email, error)
	ListInRange(ctx context.Context, userID string, from, to time.Time) ([]*domain.Email, error)
	ListRecent(ctx context.Context, userID string, limit int) ([]*domain.Email, error)
}

type JournalRepo interface {
	Create(ctx context.Context, j *domain.JournalEntry) error
	GetByID(ctx context.Context, userID, id string) (*domain.JournalEntry, error)
	ListInRange(ctx context.Context, userID string, from, to time.Time) ([]*domain.JournalEntry, error)
	ListRecent(ctx context.Context, userID string, limit int) ([]*domain.JournalEntry, error)
}

// ScoreRepo is the append-only burnout score history.
type ScoreRepo interface {
	Create(ctx context.Context, s *domain.BurnoutScore) error
	ListRecent(ctx context.Context, userID string, limit int) ([]*domain.BurnoutScore, error)
	ListRange(ctx context.Context, userID string, from, to time.Time) ([]*domain.BurnoutScore, error)
}
