package users

import (
	"context"

	"github.com/artem13815/oneresume/pkg/session"
)

// SessionIssuer abstracts session creation (e.g., JWT).
// It allows use cases to stay framework-agnostic.
type SessionIssuer interface {
	Issue(ctx context.Context, user User) (session.Session, error)
}
