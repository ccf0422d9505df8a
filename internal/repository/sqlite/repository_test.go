package sqlite

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coursehub/internal/domain"
	"coursehub/internal/repository"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestUserRepositoryCreateAndLookup(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(openTestDB(t))
	require.NoError(t, repo.Init(ctx))

	user := &domain.User{
		Email:        "alice@example.com",
		Name:         "Alice",
		PasswordHash: "$2a$10$fakefakefakefakefakefake",
	}
	id, err := repo.Create(ctx, user)
	require.NoError(t, err)
	assert.Positive(t, id)

	byEmail, err := repo.GetByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, id, byEmail.ID)
	assert.Equal(t, "Alice", byEmail.Name)

	byID, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", byID.Email)
}

func TestUserRepositoryDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(openTestDB(t))
	require.NoError(t, repo.Init(ctx))

	_, err := repo.Create(ctx, &domain.User{Email: "dup@example.com", PasswordHash: "h"})
	require.NoError(t, err)

	_, err = repo.Create(ctx, &domain.User{Email: "dup@example.com", PasswordHash: "h"})
	assert.ErrorIs(t, err, repository.ErrDuplicate)
}

func TestUserRepositoryNotFound(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(openTestDB(t))
	require.NoError(t, repo.Init(ctx))

	_, err := repo.GetByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = repo.GetByID(ctx, 12345)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestCourseRepositoryCRUD(t *testing.T) {
	ctx := context.Background()
	repo := NewCourseRepository(openTestDB(t))
	require.NoError(t, repo.Init(ctx))

	course := &domain.Course{Title: "Intro to Go", Description: "channels etc", OwnerID: 1}
	id, err := repo.Create(ctx, course)
	require.NoError(t, err)

	got, err := repo.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Intro to Go", got.Title)

	got.Title = "Advanced Go"
	require.NoError(t, repo.Update(ctx, got))

	updated, err := repo.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Advanced Go", updated.Title)

	require.NoError(t, repo.Delete(ctx, id))
	_, err = repo.Get(ctx, id)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestCourseRepositoryUpdateDeleteMissing(t *testing.T) {
	ctx := context.Background()
	repo := NewCourseRepository(openTestDB(t))
	require.NoError(t, repo.Init(ctx))

	err := repo.Update(ctx, &domain.Course{ID: 9, Title: "x"})
	assert.ErrorIs(t, err, repository.ErrNotFound)

	assert.ErrorIs(t, repo.Delete(ctx, 9), repository.ErrNotFound)
}

func TestCourseRepositoryListInsertionOrder(t *testing.T) {
	ctx := context.Background()
	repo := NewCourseRepository(openTestDB(t))
	require.NoError(t, repo.Init(ctx))

	for _, title := range []string{"one", "two", "three"} {
		_, err := repo.Create(ctx, &domain.Course{Title: title})
		require.NoError(t, err)
	}

	courses, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, courses, 3)
	assert.Equal(t, "one", courses[0].Title)
	assert.Equal(t, "two", courses[1].Title)
	assert.Equal(t, "three", courses[2].Title)
}
