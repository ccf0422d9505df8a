package repository

import (
	"context"

	"coursehub/internal/domain"
)

// CourseRepository exposes persistence operations for catalog entries.
// List returns courses in insertion order, matching what the home page shows.
type CourseRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, course *domain.Course) (int64, error)
	Update(ctx context.Context, course *domain.Course) error
	Delete(ctx context.Context, id int64) error
	Get(ctx context.Context, id int64) (*domain.Course, error)
	List(ctx context.Context) ([]domain.Course, error)
}
