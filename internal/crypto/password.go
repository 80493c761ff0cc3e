package crypto

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"regexp"

	"golang.org/x/crypto/bcrypt"

	"github.com/tilpconnect/tilp/internal/domain"
	"github.com/tilpconnect/tilp/internal/logging"
	"github.com/tilpconnect/tilp/internal/ports"
)

var _ ports.PasswordHasher = (*PasswordHasher)(nil)

// legacyHash matches unsalted SHA-256 hex digests written by older installations
var legacyHash = regexp.MustCompile(`^[0-9a-f]{64}$`)

// PasswordHasher hashes new passwords with bcrypt and still verifies legacy SHA-256 digests
type PasswordHasher struct {
	cost int
}

// NewPasswordHasher returns a hasher using cost, or bcrypt.DefaultCost when cost is 0
func NewPasswordHasher(cost int) *PasswordHasher {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &PasswordHasher{cost: cost}
}

// Hash returns the bcrypt hash of password
func (h *PasswordHasher) Hash(password string) (string, error) {
	if password == "" {
		return "", fmt.Errorf("%w: password must not be empty", domain.ErrInvalidInput)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// Verify checks password against a stored hash.
// Any mismatch or unusable hash is reported as domain.ErrInvalidCredentials.
func (h *PasswordHasher) Verify(hash, password string) error {
	if IsLegacyHash(hash) {
		sum := sha256.Sum256([]byte(password))
		if subtle.ConstantTimeCompare([]byte(hex.EncodeToString(sum[:])), []byte(hash)) != 1 {
			return domain.ErrInvalidCredentials
		}
		return nil
	}

	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if err == nil {
		return nil
	}
	if !errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		logging.Logger.Warn("Stored password hash is unusable", "error", err)
	}
	return domain.ErrInvalidCredentials
}

// IsLegacyHash reports whether hash is an unsalted SHA-256 hex digest
func IsLegacyHash(hash string) bool {
	return legacyHash.MatchString(hash)
}
