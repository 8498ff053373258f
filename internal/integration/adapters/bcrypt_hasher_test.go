package adapters

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	hash, err := h.Hash("correct horse")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse", hash)

	assert.True(t, h.Matches(hash, "correct horse"))
	assert.False(t, h.Matches(hash, "wrong horse"))
	assert.False(t, h.Matches("not-a-hash", "correct horse"))
}

func TestBcryptHasherClampsCost(t *testing.T) {
	assert.Equal(t, bcrypt.MinCost, NewBcryptHasher(0).(*bcryptHasher).cost)
	assert.Equal(t, bcrypt.MaxCost, NewBcryptHasher(99).(*bcryptHasher).cost)
}

func TestCheckPolicy(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	assert.ErrorIs(t, h.CheckPolicy("short"), errPasswordTooShort)
	assert.ErrorIs(t, h.CheckPolicy(strings.Repeat("a", 73)), errPasswordTooLong)
	assert.NoError(t, h.CheckPolicy("12345678"))
	assert.NoError(t, h.CheckPolicy(strings.Repeat("a", 72)))
}
