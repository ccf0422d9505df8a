// Package session implements server-side sessions keyed by a signed cookie
// token, with a one-shot flash-message queue scoped to each session. Entries
// live in a pluggable Store (sqlite or Redis) and expire after a configured
// idle TTL.
package session

import "time"

// Flash categories understood by the templates.
const (
	FlashSuccess = "success"
	FlashError   = "error"
)

// Record is the server-side session entry. The client only ever holds the
// signed token; the principal identifier never leaves the store.
type Record struct {
	Token     string              `json:"token"`
	UserID    int64               `json:"user_id,omitempty"`
	Flash     map[string][]string `json:"flash,omitempty"`
	CreatedAt time.Time           `json:"created_at"`
	ExpiresAt time.Time           `json:"expires_at"`
}

// State is the per-request view of a session. It tracks whether the record
// was modified so that untouched anonymous sessions are never persisted.
type State struct {
	record *Record
	dirty  bool
}

// Token returns the current session token.
func (s *State) Token() string { return s.record.Token }

// UserID returns the serialized principal identifier, zero when anonymous.
func (s *State) UserID() int64 { return s.record.UserID }

// Dirty reports whether the session must be written back to the store.
func (s *State) Dirty() bool { return s.dirty }

// Enqueue appends a flash message to the given category queue.
func (s *State) Enqueue(category, text string) {
	if s.record.Flash == nil {
		s.record.Flash = make(map[string][]string)
	}
	s.record.Flash[category] = append(s.record.Flash[category], text)
	s.dirty = true
}

// Drain returns all queued messages for the category and clears them. A
// second call without a new Enqueue returns nothing.
func (s *State) Drain(category string) []string {
	msgs := s.record.Flash[category]
	if len(msgs) == 0 {
		return nil
	}
	delete(s.record.Flash, category)
	s.dirty = true
	return msgs
}

func (s *State) setPrincipal(id int64) {
	s.record.UserID = id
	s.dirty = true
}

func (s *State) clearPrincipal() {
	s.record.UserID = 0
	s.dirty = true
}
