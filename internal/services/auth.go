package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tilpconnect/tilp/internal/domain"
	"github.com/tilpconnect/tilp/internal/logging"
	"github.com/tilpconnect/tilp/internal/ports"
)

// AuthService handles login, logout and restoring the current session
type AuthService struct {
	hasher   ports.PasswordHasher
	now      func() time.Time
	sessions ports.SessionStore
	tables   ports.TableReader
	ttl      time.Duration
}

// NewAuthService creates a new AuthService
func NewAuthService(
	tables ports.TableReader,
	hasher ports.PasswordHasher,
	sessions ports.SessionStore,
	ttl time.Duration,
) *AuthService {
	return &AuthService{
		hasher:   hasher,
		now:      time.Now,
		sessions: sessions,
		tables:   tables,
		ttl:      ttl,
	}
}

// findUser returns the users row for username.
// Returns domain.ErrNoUsersConfigured when the users table is empty.
func (s *AuthService) findUser(ctx context.Context, username string) (domain.User, bool, error) {
	users, err := s.tables.GetTable(ctx, domain.TableUsers)
	if err != nil {
		return domain.User{}, false, fmt.Errorf("failed to load users: %w", err)
	}
	if users.Len() == 0 {
		return domain.User{}, false, domain.ErrNoUsersConfigured
	}

	row, ok := users.Find("username", username)
	if !ok {
		return domain.User{}, false, nil
	}
	return domain.UserFromRecord(row), true, nil
}

// Login verifies the credentials and persists a new session
func (s *AuthService) Login(ctx context.Context, username, password string) (*domain.Session, error) {
	logging.Logger.Info("Login attempt", "username", username)

	user, found, err := s.findUser(ctx, username)
	if err != nil {
		return nil, err
	}
	if !found {
		logging.Logger.Info("Login rejected: unknown user", "username", username)
		return nil, domain.ErrInvalidCredentials
	}
	if err := s.hasher.Verify(user.PasswordHash, password); err != nil {
		logging.Logger.Info("Login rejected: password mismatch", "username", username)
		return nil, domain.ErrInvalidCredentials
	}
	if _, err := domain.ParseRole(string(user.Role)); err != nil {
		logging.Logger.Warn("Login rejected: stored role is invalid", "username", username, "role", user.Role)
		return nil, fmt.Errorf("account %q: %w", username, err)
	}

	now := s.now()
	session := domain.NewSession(uuid.NewString(), user, now, now.Add(s.ttl))
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	logging.Logger.Info("Login successful", "username", username, "role", user.Role, "session_id", session.ID)
	return session, nil
}

// Logout invalidates the session and forgets the persisted login.
// Logging out twice is not an error.
func (s *AuthService) Logout(ctx context.Context, session *domain.Session) error {
	if session.Authenticated() {
		logging.Logger.Info("Logout", "username", session.Username, "session_id", session.ID)
	}
	session.Invalidate()

	if err := s.sessions.Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

// Current restores the persisted session.
// The user row is read again so role and child link changes apply immediately.
func (s *AuthService) Current(ctx context.Context) (*domain.Session, error) {
	saved, err := s.sessions.Load(ctx)
	if err != nil {
		return nil, err
	}

	user, found, err := s.findUser(ctx, saved.Username)
	if err != nil {
		if errors.Is(err, domain.ErrNoUsersConfigured) {
			return nil, fmt.Errorf("%w: account %q no longer exists", domain.ErrNotAuthenticated, saved.Username)
		}
		return nil, err
	}
	if !found {
		logging.Logger.Info("Saved session refers to a deleted user", "username", saved.Username)
		if err := s.sessions.Clear(ctx); err != nil {
			logging.Logger.Warn("Failed to clear stale session", "error", err)
		}
		return nil, fmt.Errorf("%w: account %q no longer exists", domain.ErrNotAuthenticated, saved.Username)
	}

	session := domain.NewSession(saved.ID, user, saved.IssuedAt, saved.ExpiresAt)
	if filter := saved.ChildFilter(); filter != "" {
		if err := session.SetChildFilter(filter); err != nil {
			logging.Logger.Debug("Dropping saved child filter", "filter", filter, "error", err)
		}
	}
	return session, nil
}

// SelectChild changes the child filter of the session and persists it
func (s *AuthService) SelectChild(ctx context.Context, session *domain.Session, child string) error {
	if err := session.SetChildFilter(child); err != nil {
		return err
	}
	if err := s.sessions.Save(ctx, session); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	logging.Logger.Info("Child filter changed", "username", session.Username, "filter", session.ChildFilter())
	return nil
}
