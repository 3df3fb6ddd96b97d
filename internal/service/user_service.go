package service

import (
	"context"

	"user-api/internal/domain"
	"user-api/internal/metrics"
	"user-api/internal/repository"
)

// UserService describes user lifecycle operations.
type UserService interface {
	ListUsers(ctx context.Context) ([]domain.User, error)
	CreateUser(ctx context.Context, name string, age int) (*domain.User, error)
}

type userService struct {
	users   repository.UserRepository
	metrics metrics.Recorder
}

func NewUserService(users repository.UserRepository, recorder metrics.Recorder) UserService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &userService{
		users:   users,
		metrics: recorder,
	}
}

func (s *userService) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.users.List(ctx)
}

// CreateUser stores a new user and counts it. Name and age are stored as
// given; the counter only moves once the insert has succeeded.
func (s *userService) CreateUser(ctx context.Context, name string, age int) (*domain.User, error) {
	user := &domain.User{
		Name: name,
		Age:  age,
	}

	if _, err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.metrics.IncUserCreated()
	return user, nil
}
