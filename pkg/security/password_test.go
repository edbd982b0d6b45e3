package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword_VerifyRoundTrip(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse battery staple", hash)

	assert.True(t, VerifyPassword(hash, "correct horse battery staple"))
	assert.False(t, VerifyPassword(hash, "wrong password"))
	assert.False(t, VerifyPassword(hash, ""))
}

func TestHashPassword_SaltedPerCall(t *testing.T) {
	first, err := HashPassword("swordfish")
	require.NoError(t, err)
	second, err := HashPassword("swordfish")
	require.NoError(t, err)
	assert.NotEqual(t, first, second)

	assert.True(t, VerifyPassword(first, "swordfish"))
	assert.True(t, VerifyPassword(second, "swordfish"))
}
