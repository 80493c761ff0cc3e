package crypto

import (
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/tilpconnect/tilp/internal/domain"
)

func TestHashVerifyRoundTrip(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost)

	hash, err := h.Hash("correct horse")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse", hash)
	assert.False(t, IsLegacyHash(hash))

	assert.NoError(t, h.Verify(hash, "correct horse"))
	assert.ErrorIs(t, h.Verify(hash, "wrong-password"), domain.ErrInvalidCredentials)
}

func TestHash_RejectsEmptyPassword(t *testing.T) {
	_, err := NewPasswordHasher(bcrypt.MinCost).Hash("")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestVerify_LegacySHA256(t *testing.T) {
	sum := sha256.Sum256([]byte("admin123"))
	legacy := hex.EncodeToString(sum[:])
	h := NewPasswordHasher(bcrypt.MinCost)

	require.True(t, IsLegacyHash(legacy))
	assert.NoError(t, h.Verify(legacy, "admin123"))
	assert.ErrorIs(t, h.Verify(legacy, "admin1234"), domain.ErrInvalidCredentials)
}

func TestVerify_UnusableHash(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost)

	tests := []string{"", "plaintext", "$2a$10$short"}
	for _, stored := range tests {
		t.Run(stored, func(t *testing.T) {
			assert.ErrorIs(t, h.Verify(stored, stored), domain.ErrInvalidCredentials)
		})
	}
}
