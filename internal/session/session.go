// Package session keeps the upstream bearer token on the server side. The
// browser only ever holds an opaque session id in an HttpOnly cookie.
package session

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("session not found")

type Session struct {
	ID        string
	Token     string
	Email     string
	CreatedAt time.Time
	ExpiresAt time.Time
}

func (s *Session) Expired(now time.Time) bool {
	return s == nil || !now.Before(s.ExpiresAt)
}

// HasToken reports whether the session can call protected upstream endpoints.
func (s *Session) HasToken() bool {
	return s != nil && s.Token != ""
}

// Store persists sessions by id.
type Store interface {
	Save(ctx context.Context, s *Session) error
	// Get returns ErrNotFound for unknown ids. Expiry is the caller's concern.
	Get(ctx context.Context, id string) (*Session, error)
	Delete(ctx context.Context, id string) error
	// DeleteExpired removes sessions expiring at or before now and returns
	// their ids.
	DeleteExpired(ctx context.Context, now time.Time) ([]string, error)
}

type contextKey struct{}

func WithContext(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, contextKey{}, s)
}

func FromContext(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(contextKey{}).(*Session)
	return s, ok && s != nil
}
