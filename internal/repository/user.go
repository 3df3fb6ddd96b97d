package repository

import (
	"context"

	"user-api/internal/domain"
)

// UserRepository defines persistence operations for User entities.
type UserRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, user *domain.User) (int64, error)
	// List returns every stored user in storage order. The result is
	// unbounded.
	List(ctx context.Context) ([]domain.User, error)
	Ping(ctx context.Context) error
	Close() error
}
