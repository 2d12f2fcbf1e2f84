package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/cinder/internal/domain"
	"github.com/alexanderramin/cinder/internal/repository"
	"github.com/google/uuid"
)

type userService struct {
	users repository.UserRepo
	opts  options
}

func NewUserService(users repository.UserRepo, opts ...Option) UserService {
	return &userService{users: users, opts: buildOptions(opts)}
}

func (s *userService) Create(ctx context.Context, email, fullName string) (user *domain.User, err error) {
	now := s.opts.now()
	fields := map[string]any{}
	defer observe(ctx, s.opts.observer, "create-user", now, fields, &err)

	user = &domain.User{
		ID:        uuid.New().String(),
		Email:     strings.ToLower(strings.TrimSpace(email)),
		FullName:  strings.TrimSpace(fullName),
		CreatedAt: now,
	}
	if err = user.Validate(); err != nil {
		return nil, &ValidationError{Message: err.Error()}
	}

	existing, lookupErr := s.users.GetByEmail(ctx, user.Email)
	switch {
	case lookupErr == nil && existing != nil:
		err = invalidf("email", "%s is already registered", user.Email)
		return nil, err
	case lookupErr != nil && !errors.Is(lookupErr, repository.ErrNotFound):
		err = fmt.Errorf("checking email: %w", lookupErr)
		return nil, err
	}

	fields["user_id"] = user.ID
	if err = s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("saving user: %w", err)
	}
	return user, nil
}

func (s *userService) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return s.users.GetByID(ctx, id)
}

func (s *userService) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
}

func (s *userService) List(ctx context.Context) ([]*domain.User, error) {
	return s.users.List(ctx)
}
