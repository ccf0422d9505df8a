package service

import (
	"context"

	"coursehub/internal/domain"
	"coursehub/internal/repository"
	"coursehub/internal/session"
)

// principalCodec is the session manager's bridge to the credential store: it
// serializes a User down to its identifier and reconstitutes it on every
// request that carries a session cookie.
type principalCodec struct {
	users repository.UserRepository
}

// NewPrincipalCodec builds the serialize/deserialize capability the session
// manager is constructed with.
func NewPrincipalCodec(users repository.UserRepository) session.Codec {
	return &principalCodec{users: users}
}

func (c *principalCodec) Serialize(user *domain.User) int64 {
	return user.ID
}

func (c *principalCodec) Deserialize(ctx context.Context, id int64) (*domain.User, error) {
	user, err := c.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return sanitizeUser(user), nil
}
