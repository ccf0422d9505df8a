package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

const createSessionsTable = `
CREATE TABLE IF NOT EXISTS sessions (
	token TEXT PRIMARY KEY,
	user_id INTEGER NOT NULL DEFAULT 0,
	flash TEXT NOT NULL DEFAULT '{}',
	created_at DATETIME NOT NULL,
	expires_at DATETIME NOT NULL
);
`

// sqliteStore persists session records in the application database, so a
// single-binary deployment needs no extra infrastructure.
type sqliteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a sqlite-backed session store on an opened database.
func NewSQLiteStore(db *sql.DB) (Store, error) {
	if _, err := db.Exec(createSessionsTable); err != nil {
		return nil, fmt.Errorf("create sessions table: %w", err)
	}
	return &sqliteStore{db: db}, nil
}

func (s *sqliteStore) Save(ctx context.Context, rec *Record, ttl time.Duration) error {
	flash, err := json.Marshal(rec.Flash)
	if err != nil {
		return fmt.Errorf("marshal flash: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
INSERT INTO sessions (token, user_id, flash, created_at, expires_at)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT(token) DO UPDATE SET user_id=excluded.user_id, flash=excluded.flash, expires_at=excluded.expires_at`,
		rec.Token,
		rec.UserID,
		string(flash),
		rec.CreatedAt.UTC(),
		rec.ExpiresAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (s *sqliteStore) Get(ctx context.Context, token string) (*Record, error) {
	row := s.db.QueryRowContext(ctx, `
SELECT token, user_id, flash, created_at, expires_at
FROM sessions
WHERE token = ?`,
		token,
	)

	var (
		rec   Record
		flash string
	)
	if err := row.Scan(&rec.Token, &rec.UserID, &flash, &rec.CreatedAt, &rec.ExpiresAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("scan session: %w", err)
	}

	if time.Now().After(rec.ExpiresAt) {
		_ = s.Delete(ctx, token)
		return nil, ErrSessionNotFound
	}

	if err := json.Unmarshal([]byte(flash), &rec.Flash); err != nil {
		return nil, ErrInvalidSession
	}
	return &rec, nil
}

func (s *sqliteStore) Delete(ctx context.Context, token string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE token = ?`, token); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
