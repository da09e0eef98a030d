package session

import (
	"context"
	"errors"
	"time"
)

// ErrNoSession is returned when a context carries no authenticated session.
var ErrNoSession = errors.New("session: no session in context")

// Session is the authenticated identity issued at login and attached to
// every outbound call to the OneResume API.
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Email     string    `json:"email"`
	Token     string    `json:"token"`
	IssuedAt  time.Time `json:"issuedAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Expired reports whether the session is past its expiry at now.
func (s Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}

type ctxKey struct{}

// NewContext returns a copy of ctx carrying s.
func NewContext(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

// FromContext extracts the session stored by NewContext.
func FromContext(ctx context.Context) (Session, bool) {
	if ctx == nil {
		return Session{}, false
	}
	s, ok := ctx.Value(ctxKey{}).(Session)
	return s, ok
}

// UserID returns the user id of the session in ctx or ErrNoSession.
func UserID(ctx context.Context) (string, error) {
	s, ok := FromContext(ctx)
	if !ok || s.UserID == "" {
		return "", ErrNoSession
	}
	return s.UserID, nil
}
