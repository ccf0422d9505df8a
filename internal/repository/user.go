package repository

import (
	"context"

	"coursehub/internal/domain"
)

// UserRepository defines persistence operations for User entities.
// Lookups that match nothing return ErrNotFound; Create returns ErrDuplicate
// when the email is already registered.
type UserRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, user *domain.User) (int64, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}
