package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coursehub/internal/repository/sqlite"
)

func newSQLiteTestStore(t *testing.T) Store {
	t.Helper()
	db, err := sqlite.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	store, err := NewSQLiteStore(db)
	require.NoError(t, err)
	return store
}

func TestSQLiteStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newSQLiteTestStore(t)

	rec := &Record{
		Token:     "tok-1",
		UserID:    7,
		Flash:     map[string][]string{FlashError: {"nope"}},
		CreatedAt: time.Now(),
		ExpiresAt: time.Now().Add(time.Hour),
	}
	require.NoError(t, store.Save(ctx, rec, time.Hour))

	got, err := store.Get(ctx, "tok-1")
	require.NoError(t, err)
	assert.Equal(t, int64(7), got.UserID)
	assert.Equal(t, []string{"nope"}, got.Flash[FlashError])
}

func TestSQLiteStoreUpsert(t *testing.T) {
	ctx := context.Background()
	store := newSQLiteTestStore(t)

	rec := &Record{Token: "tok-2", CreatedAt: time.Now(), ExpiresAt: time.Now().Add(time.Hour)}
	require.NoError(t, store.Save(ctx, rec, time.Hour))

	rec.UserID = 11
	require.NoError(t, store.Save(ctx, rec, time.Hour))

	got, err := store.Get(ctx, "tok-2")
	require.NoError(t, err)
	assert.Equal(t, int64(11), got.UserID)
}

func TestSQLiteStoreExpiredBehavesAsMissing(t *testing.T) {
	ctx := context.Background()
	store := newSQLiteTestStore(t)

	rec := &Record{Token: "tok-3", CreatedAt: time.Now(), ExpiresAt: time.Now().Add(-time.Minute)}
	require.NoError(t, store.Save(ctx, rec, time.Hour))

	_, err := store.Get(ctx, "tok-3")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	// the expired row was reaped, not just skipped
	_, err = store.Get(ctx, "tok-3")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSQLiteStoreDelete(t *testing.T) {
	ctx := context.Background()
	store := newSQLiteTestStore(t)

	rec := &Record{Token: "tok-4", CreatedAt: time.Now(), ExpiresAt: time.Now().Add(time.Hour)}
	require.NoError(t, store.Save(ctx, rec, time.Hour))
	require.NoError(t, store.Delete(ctx, "tok-4"))

	_, err := store.Get(ctx, "tok-4")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}
