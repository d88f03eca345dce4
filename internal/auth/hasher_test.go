package auth

import (
	"strings"
	"testing"

	"github.com/theandrewmo/warbler/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("password123")
	require.NoError(t, err)

	assert.NotEqual(t, "password123", hash, "hash must never equal the plaintext")
	assert.True(t, strings.HasPrefix(hash, "$2"), "expected a bcrypt hash, got %q", hash)
}

func TestHashPassword_DistinctSalts(t *testing.T) {
	t.Parallel()

	h1, err := HashPassword("password123")
	require.NoError(t, err)
	h2, err := HashPassword("password123")
	require.NoError(t, err)

	assert.NotEqual(t, h1, h2, "two hashes of the same password should differ by salt")
}

func TestCheckPassword(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)

	t.Run("match", func(t *testing.T) {
		ok, err := CheckPassword("correct horse battery staple", hash)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("mismatch is not an error", func(t *testing.T) {
		ok, err := CheckPassword("wrong password", hash)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("corrupt hash", func(t *testing.T) {
		ok, err := CheckPassword("anything", "not-a-bcrypt-hash")
		assert.False(t, ok)
		require.Error(t, err)
		assert.True(t, models.HasCode(err, models.CodeCorruptCredential), "expected corrupt credential error, got %#v", err)
	})

	t.Run("empty stored hash", func(t *testing.T) {
		ok, err := CheckPassword("anything", "")
		assert.False(t, ok)
		assert.True(t, models.HasCode(err, models.CodeCorruptCredential))
	})
}
