package session

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrSessionNotFound is returned when no live entry exists for a token.
	ErrSessionNotFound = errors.New("session not found")
	// ErrInvalidSession is returned when a stored entry cannot be decoded.
	ErrInvalidSession = errors.New("invalid session")
)

// Store persists session records keyed by token. Expired entries behave as
// not found on Get.
type Store interface {
	Save(ctx context.Context, rec *Record, ttl time.Duration) error
	Get(ctx context.Context, token string) (*Record, error)
	Delete(ctx context.Context, token string) error
}
