package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"coursehub/internal/domain"
	"coursehub/internal/repository"
)

type fakeUserRepo struct {
	nextID int64
	byID   map[int64]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byID: make(map[int64]*domain.User)}
}

func (r *fakeUserRepo) Init(context.Context) error { return nil }

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) (int64, error) {
	for _, existing := range r.byID {
		if existing.Email == user.Email {
			return 0, repository.ErrDuplicate
		}
	}
	r.nextID++
	user.ID = r.nextID
	copied := *user
	r.byID[user.ID] = &copied
	return user.ID, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, user := range r.byID {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	user, ok := r.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *user
	return &copied, nil
}

func TestRegisterHashesPassword(t *testing.T) {
	ctx := context.Background()
	repo := newFakeUserRepo()
	svc := NewUserService(repo)

	user, err := svc.Register(ctx, "Alice@Example.com", "Alice", "correct horse")
	require.NoError(t, err)

	assert.Equal(t, "alice@example.com", user.Email)
	assert.Empty(t, user.PasswordHash, "service must never return the hash")

	stored := repo.byID[user.ID]
	require.NotNil(t, stored)
	assert.NotEqual(t, "correct horse", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("correct horse")))
}

func TestRegisterRejectsBadInput(t *testing.T) {
	ctx := context.Background()
	svc := NewUserService(newFakeUserRepo())

	cases := []struct {
		name     string
		email    string
		password string
	}{
		{"empty email", "", "long enough pw"},
		{"email without at", "not-an-email", "long enough pw"},
		{"empty password", "a@b.com", ""},
		{"short password", "a@b.com", "short"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Register(ctx, tc.email, "", tc.password)
			assert.Error(t, err)
		})
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	svc := NewUserService(newFakeUserRepo())

	_, err := svc.Register(ctx, "dup@example.com", "", "long enough pw")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "dup@example.com", "", "long enough pw")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestAuthenticate(t *testing.T) {
	ctx := context.Background()
	repo := newFakeUserRepo()
	svc := NewUserService(repo)

	registered, err := svc.Register(ctx, "bob@example.com", "Bob", "hunter2hunter2")
	require.NoError(t, err)

	t.Run("valid pair", func(t *testing.T) {
		user, err := svc.Authenticate(ctx, "bob@example.com", "hunter2hunter2")
		require.NoError(t, err)
		assert.Equal(t, registered.ID, user.ID)
		assert.Empty(t, user.PasswordHash)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.Authenticate(ctx, "nobody@example.com", "hunter2hunter2")
		assert.ErrorIs(t, err, ErrInvalidCredentials)

		var authErr *AuthError
		require.ErrorAs(t, err, &authErr)
		assert.Equal(t, "no such user", authErr.Reason)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Authenticate(ctx, "bob@example.com", "wrong")
		assert.ErrorIs(t, err, ErrInvalidCredentials)

		var authErr *AuthError
		require.ErrorAs(t, err, &authErr)
		assert.Equal(t, "bad password", authErr.Reason)
	})

	t.Run("email is case insensitive", func(t *testing.T) {
		_, err := svc.Authenticate(ctx, "BOB@example.com", "hunter2hunter2")
		assert.NoError(t, err)
	})
}

func TestPrincipalCodecRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := newFakeUserRepo()
	svc := NewUserService(repo)
	codec := NewPrincipalCodec(repo)

	user, err := svc.Register(ctx, "carol@example.com", "Carol", "long enough pw")
	require.NoError(t, err)

	id := codec.Serialize(user)
	restored, err := codec.Deserialize(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, user.ID, restored.ID)
	assert.Equal(t, user.Email, restored.Email)
	assert.Empty(t, restored.PasswordHash)
}

func TestPrincipalCodecUnknownID(t *testing.T) {
	codec := NewPrincipalCodec(newFakeUserRepo())

	_, err := codec.Deserialize(context.Background(), 404)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
