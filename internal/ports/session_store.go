package ports

import (
	"context"

	"github.com/tilpconnect/tilp/internal/domain"
)

// SessionStore persists a login between process runs
type SessionStore interface {
	Clear(ctx context.Context) error
	// Load returns domain.ErrNotAuthenticated when no valid session is stored
	Load(ctx context.Context) (*domain.Session, error)
	Save(ctx context.Context, session *domain.Session) error
}

// PasswordHasher hashes and verifies passwords
type PasswordHasher interface {
	Hash(password string) (string, error)
	// Verify returns domain.ErrInvalidCredentials on mismatch
	Verify(hash, password string) error
}
