package session

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"coursehub/internal/domain"
)

// Codec converts between a User and the identifier stored in the session
// entry. Deserialize is called on every request that carries a session cookie;
// a not-found result means the request proceeds as anonymous.
type Codec interface {
	Serialize(user *domain.User) int64
	Deserialize(ctx context.Context, id int64) (*domain.User, error)
}

// Options configures a Manager.
type Options struct {
	// Secret signs cookie values so clients cannot mint tokens.
	Secret string
	// TTL is the idle expiry applied every time a session is committed.
	TTL time.Duration
	// CookieName defaults to "coursehub_session".
	CookieName string
	Logger     *logrus.Logger
}

// Manager owns the session lifecycle: restoring state from a signed cookie,
// attaching and clearing the principal, and writing modified records back.
// Handlers never touch the store directly.
type Manager struct {
	store      Store
	codec      Codec
	secret     []byte
	ttl        time.Duration
	cookieName string
	logger     *logrus.Logger
}

func NewManager(store Store, codec Codec, opts Options) *Manager {
	name := opts.CookieName
	if name == "" {
		name = "coursehub_session"
	}
	ttl := opts.TTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	logger := opts.Logger
	if logger == nil {
		logger = logrus.New()
	}
	return &Manager{
		store:      store,
		codec:      codec,
		secret:     []byte(opts.Secret),
		ttl:        ttl,
		cookieName: name,
		logger:     logger,
	}
}

// CookieName returns the name of the session cookie.
func (m *Manager) CookieName() string { return m.cookieName }

// TTL returns the configured idle expiry.
func (m *Manager) TTL() time.Duration { return m.ttl }

// Load restores the session referenced by a raw cookie value. A missing,
// forged, or expired cookie yields a fresh anonymous state that will only be
// persisted if the request modifies it.
func (m *Manager) Load(ctx context.Context, rawCookie string) *State {
	if rawCookie == "" {
		return m.fresh()
	}

	token, ok := m.verify(rawCookie)
	if !ok {
		m.logger.WithField("cookie", m.cookieName).Warn("session cookie signature mismatch")
		return m.fresh()
	}

	rec, err := m.store.Get(ctx, token)
	if err != nil {
		if !errors.Is(err, ErrSessionNotFound) {
			m.logger.WithError(err).Warn("session lookup failed")
		}
		return m.fresh()
	}
	return &State{record: rec}
}

// CurrentUser reconstitutes the principal attached to the session. Any
// deserialize failure degrades to anonymous rather than failing the request.
func (m *Manager) CurrentUser(ctx context.Context, st *State) *domain.User {
	id := st.UserID()
	if id == 0 {
		return nil
	}
	user, err := m.codec.Deserialize(ctx, id)
	if err != nil {
		m.logger.WithError(err).WithField("user_id", id).Warn("session principal no longer resolvable")
		return nil
	}
	return user
}

// Login attaches the authenticated principal and rotates the token so a
// pre-login cookie can never be replayed as an authenticated one.
func (m *Manager) Login(ctx context.Context, st *State, user *domain.User) error {
	old := st.record.Token
	st.record.Token = uuid.New().String()
	st.setPrincipal(m.codec.Serialize(user))
	if old != "" {
		if err := m.store.Delete(ctx, old); err != nil {
			m.logger.WithError(err).Warn("drop pre-login session entry")
		}
	}
	return nil
}

// Logout clears the principal. The session entry itself survives so flash
// messages queued alongside the logout still render on the next request.
func (m *Manager) Logout(st *State) {
	st.clearPrincipal()
}

// Commit writes the session back if the request modified it. Untouched
// sessions are never persisted, so anonymous browsing creates no store rows.
func (m *Manager) Commit(ctx context.Context, st *State) error {
	if !st.Dirty() {
		return nil
	}
	now := time.Now()
	if st.record.CreatedAt.IsZero() {
		st.record.CreatedAt = now
	}
	st.record.ExpiresAt = now.Add(m.ttl)
	if err := m.store.Save(ctx, st.record, m.ttl); err != nil {
		return err
	}
	st.dirty = false
	return nil
}

// Sign produces the cookie value for a token: "<token>.<base64 hmac>".
func (m *Manager) Sign(token string) string {
	return token + "." + m.mac(token)
}

func (m *Manager) verify(value string) (string, bool) {
	i := strings.LastIndexByte(value, '.')
	if i <= 0 {
		return "", false
	}
	token, sig := value[:i], value[i+1:]
	if !hmac.Equal([]byte(sig), []byte(m.mac(token))) {
		return "", false
	}
	return token, true
}

func (m *Manager) mac(token string) string {
	h := hmac.New(sha256.New, m.secret)
	h.Write([]byte(token))
	return base64.RawURLEncoding.EncodeToString(h.Sum(nil))
}

func (m *Manager) fresh() *State {
	return &State{
		record: &Record{
			Token:     uuid.New().String(),
			CreatedAt: time.Now(),
		},
	}
}
