package service

import (
	"context"
	"strings"

	"coursehub/internal/domain"
	"coursehub/internal/repository"
)

// ValidationError marks malformed catalog input. The web layer surfaces it
// as a flash message and redisplays the form instead of rendering the error
// page.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// CourseService describes catalog operations.
type CourseService interface {
	List(ctx context.Context) ([]domain.Course, error)
	Get(ctx context.Context, id int64) (*domain.Course, error)
	Create(ctx context.Context, title, description string, ownerID int64) (*domain.Course, error)
	Update(ctx context.Context, id int64, title, description string) (*domain.Course, error)
	Delete(ctx context.Context, id int64) error
}

type courseService struct {
	courses repository.CourseRepository
}

func NewCourseService(courses repository.CourseRepository) CourseService {
	return &courseService{courses: courses}
}

func (s *courseService) List(ctx context.Context) ([]domain.Course, error) {
	return s.courses.List(ctx)
}

func (s *courseService) Get(ctx context.Context, id int64) (*domain.Course, error) {
	return s.courses.Get(ctx, id)
}

func (s *courseService) Create(ctx context.Context, title, description string, ownerID int64) (*domain.Course, error) {
	title, description, err := normalizeCourseInput(title, description)
	if err != nil {
		return nil, err
	}

	course := &domain.Course{
		Title:       title,
		Description: description,
		OwnerID:     ownerID,
	}
	if _, err := s.courses.Create(ctx, course); err != nil {
		return nil, err
	}
	return course, nil
}

func (s *courseService) Update(ctx context.Context, id int64, title, description string) (*domain.Course, error) {
	title, description, err := normalizeCourseInput(title, description)
	if err != nil {
		return nil, err
	}

	course, err := s.courses.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	course.Title = title
	course.Description = description
	if err := s.courses.Update(ctx, course); err != nil {
		return nil, err
	}
	return course, nil
}

func (s *courseService) Delete(ctx context.Context, id int64) error {
	return s.courses.Delete(ctx, id)
}

func normalizeCourseInput(title, description string) (string, string, error) {
	title = strings.TrimSpace(title)
	description = strings.TrimSpace(description)
	if title == "" {
		return "", "", &ValidationError{Message: "title is required"}
	}
	if len(title) > 200 {
		return "", "", &ValidationError{Message: "title must be at most 200 characters"}
	}
	return title, description, nil
}
