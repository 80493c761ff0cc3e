package sessionfile

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/tilpconnect/tilp/internal/domain"
	"github.com/tilpconnect/tilp/internal/logging"
	"github.com/tilpconnect/tilp/internal/ports"
)

var _ ports.SessionStore = (*Store)(nil)

const issuer = "tilp"

// Claims is the signed content of a persisted login
type Claims struct {
	ChildFilter string `json:"child_filter,omitempty"`
	ChildLink   string `json:"child_link"`
	Role        string `json:"role"`
	jwt.RegisteredClaims
}

// Store keeps the current login as an HS256 token in a file
type Store struct {
	secret    []byte
	tokenPath string
}

// NewStore creates a store writing the token to tokenPath
func NewStore(tokenPath string, secret []byte) *Store {
	return &Store{secret: secret, tokenPath: tokenPath}
}

// LoadOrCreateSecret returns envSecret when set, else the key stored at keyPath,
// generating and saving a random key on first use
func LoadOrCreateSecret(keyPath, envSecret string) ([]byte, error) {
	if envSecret != "" {
		return []byte(envSecret), nil
	}

	data, err := os.ReadFile(keyPath)
	if err == nil {
		if key := strings.TrimSpace(string(data)); key != "" {
			return []byte(key), nil
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read session key: %w", err)
	}

	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return nil, fmt.Errorf("failed to generate session key: %w", err)
	}
	key := hex.EncodeToString(buf)

	if err := os.MkdirAll(filepath.Dir(keyPath), 0700); err != nil {
		return nil, fmt.Errorf("failed to create session key directory: %w", err)
	}
	if err := os.WriteFile(keyPath, []byte(key+"\n"), 0600); err != nil {
		return nil, fmt.Errorf("failed to write session key: %w", err)
	}

	logging.Logger.Info("Generated session key", "path", keyPath)
	return []byte(key), nil
}

// Save signs the session and writes it to disk
func (s *Store) Save(ctx context.Context, session *domain.Session) error {
	if !session.Authenticated() {
		return domain.ErrNotAuthenticated
	}

	claims := Claims{
		ChildFilter: session.ChildFilter(),
		ChildLink:   session.ChildLink,
		Role:        string(session.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(session.ExpiresAt),
			ID:        session.ID,
			IssuedAt:  jwt.NewNumericDate(session.IssuedAt),
			Issuer:    issuer,
			Subject:   session.Username,
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return fmt.Errorf("failed to sign session token: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.tokenPath), 0700); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}
	if err := os.WriteFile(s.tokenPath, []byte(token), 0600); err != nil {
		return fmt.Errorf("failed to write session token: %w", err)
	}

	logging.Logger.Debug("Session saved", "username", session.Username, "session_id", session.ID)
	return nil
}

// Load restores the saved session.
// Returns domain.ErrNotAuthenticated when nothing is saved or the token is invalid or expired.
func (s *Store) Load(ctx context.Context) (*domain.Session, error) {
	data, err := os.ReadFile(s.tokenPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrNotAuthenticated
		}
		return nil, fmt.Errorf("failed to read session token: %w", err)
	}

	token, err := jwt.ParseWithClaims(strings.TrimSpace(string(data)), &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			logging.Logger.Info("Session expired")
			return nil, fmt.Errorf("%w: session expired, log in again", domain.ErrNotAuthenticated)
		}
		logging.Logger.Warn("Rejected session token", "error", err)
		return nil, fmt.Errorf("%w: %v", domain.ErrNotAuthenticated, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Subject == "" {
		return nil, fmt.Errorf("%w: invalid session token", domain.ErrNotAuthenticated)
	}

	user := domain.User{
		ChildLink: claims.ChildLink,
		Role:      domain.Role(claims.Role),
		Username:  claims.Subject,
	}
	session := domain.NewSession(claims.ID, user, claims.IssuedAt.Time, claims.ExpiresAt.Time)
	if claims.ChildFilter != "" {
		if err := session.SetChildFilter(claims.ChildFilter); err != nil {
			logging.Logger.Warn("Ignoring saved child filter", "filter", claims.ChildFilter, "error", err)
		}
	}
	return session, nil
}

// Clear removes the saved session. Clearing an absent session is not an error.
func (s *Store) Clear(ctx context.Context) error {
	if err := os.Remove(s.tokenPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove session token: %w", err)
	}
	return nil
}
