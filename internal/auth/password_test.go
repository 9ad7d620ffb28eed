package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHasher_RoundTrip(t *testing.T) {
	// MinCost keeps the test fast; the production cost comes from config.
	h := NewHasher(bcrypt.MinCost)

	for _, pw := range []string{"secret123", "пароль", "a b c", "!@#$%^&*()"} {
		hash, err := h.Hash(pw)
		require.NoError(t, err)
		assert.NotEqual(t, pw, hash)
		assert.True(t, h.Check(hash, pw))
		assert.False(t, h.Check(hash, pw+"x"))
	}
}

func TestHasher_MalformedHash(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)

	// A corrupt stored hash must resolve to "no match", never a panic.
	assert.False(t, h.Check("", "secret123"))
	assert.False(t, h.Check("not-a-bcrypt-hash", "secret123"))
	assert.False(t, h.Check("$2a$12$tooshort", "secret123"))
}

func TestHasher_CostClamped(t *testing.T) {
	assert.Equal(t, bcrypt.MinCost, NewHasher(1).cost)
	assert.Equal(t, 12, NewHasher(0).cost)
	assert.Equal(t, bcrypt.MaxCost, NewHasher(99).cost)
}
