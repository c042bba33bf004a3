package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	t.Run("produces salt and digest separated by dollar sign", func(t *testing.T) {
		encoded, err := HashPassword("secret")
		require.NoError(t, err)

		parts := strings.Split(encoded, "$")
		require.Len(t, parts, 2)
		assert.Len(t, parts[0], saltLength*2)
		assert.Len(t, parts[1], digestLength*2)
	})

	t.Run("same password hashes differently each time", func(t *testing.T) {
		first, err := HashPassword("secret")
		require.NoError(t, err)
		second, err := HashPassword("secret")
		require.NoError(t, err)

		assert.NotEqual(t, first, second)
	})
}

func TestVerifyPassword(t *testing.T) {
	t.Run("accepts the original password", func(t *testing.T) {
		encoded, err := HashPassword("correct horse battery staple")
		require.NoError(t, err)

		assert.True(t, VerifyPassword("correct horse battery staple", encoded))
	})

	t.Run("rejects a wrong password", func(t *testing.T) {
		encoded, err := HashPassword("secret")
		require.NoError(t, err)

		assert.False(t, VerifyPassword("not-secret", encoded))
	})

	t.Run("fails closed on malformed stored values", func(t *testing.T) {
		assert.False(t, VerifyPassword("secret", ""))
		assert.False(t, VerifyPassword("secret", "no-separator"))
		assert.False(t, VerifyPassword("secret", "nothex$deadbeef"))
		assert.False(t, VerifyPassword("secret", "deadbeef$nothex"))
	})
}
