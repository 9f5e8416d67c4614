package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	const pepper = "unit-test-pepper"

	hashed, err := hashPassword("p1", pepper)
	require.NoError(t, err)
	require.NotEmpty(t, hashed)
	assert.NotEqual(t, "p1", hashed)

	assert.True(t, checkPasswordHash("p1", hashed, pepper))
	assert.False(t, checkPasswordHash("wrong", hashed, pepper))
	assert.False(t, checkPasswordHash("p1", hashed, "other-pepper"), "pepper is part of the digest")
	assert.False(t, checkPasswordHash("p1", "not-a-bcrypt-hash", pepper))
}

func TestHashPassword_Salted(t *testing.T) {
	a, err := hashPassword("same", "pepper")
	require.NoError(t, err)
	b, err := hashPassword("same", "pepper")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestHashPassword_LongPasswordsDoNotCollide(t *testing.T) {
	// bcrypt alone ignores input past 72 bytes
	prefix := strings.Repeat("x", 80)
	hashed, err := hashPassword(prefix+"a", "pepper")
	require.NoError(t, err)
	assert.False(t, checkPasswordHash(prefix+"b", hashed, "pepper"))
}
