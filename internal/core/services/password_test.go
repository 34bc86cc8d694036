package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("password1")
	require.NoError(t, err)

	assert.NotEqual(t, "password1", hash, "hash must never equal the plaintext")
	assert.True(t, CheckPassword("password1", hash))
	assert.False(t, CheckPassword("password2", hash))
}

func TestHashPasswordUniqueSalt(t *testing.T) {
	first, err := HashPassword("password1")
	require.NoError(t, err)
	second, err := HashPassword("password1")
	require.NoError(t, err)

	assert.NotEqual(t, first, second, "each hash must carry its own salt")
}

func TestCheckPasswordMalformedHash(t *testing.T) {
	assert.False(t, CheckPassword("password1", "not-a-bcrypt-hash"))
	assert.False(t, CheckPassword("password1", ""))
}
