package security

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openforum/backend/internal/models"
)

func testManager(ttl time.Duration) *TokenManager {
	return NewTokenManager("test-secret", "openforum", "openforum-api", ttl)
}

func testUser() *models.User {
	return &models.User{ID: 7, Username: "alice", Role: models.RoleModerator}
}

func TestTokenManager_RoundTrip(t *testing.T) {
	manager := testManager(time.Hour)

	signed, err := manager.GenerateAccessToken(testUser())
	require.NoError(t, err)

	claims, err := manager.ValidateAccessToken(signed)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, models.RoleModerator, claims.Role)
	assert.NotEmpty(t, claims.ID)
}

func TestTokenManager_UniqueTokenIDs(t *testing.T) {
	manager := testManager(time.Hour)

	first, err := manager.GenerateAccessToken(testUser())
	require.NoError(t, err)
	second, err := manager.GenerateAccessToken(testUser())
	require.NoError(t, err)

	firstClaims, err := manager.ValidateAccessToken(first)
	require.NoError(t, err)
	secondClaims, err := manager.ValidateAccessToken(second)
	require.NoError(t, err)
	assert.NotEqual(t, firstClaims.ID, secondClaims.ID)
}

func TestTokenManager_RejectsWrongSecret(t *testing.T) {
	signed, err := testManager(time.Hour).GenerateAccessToken(testUser())
	require.NoError(t, err)

	other := NewTokenManager("other-secret", "openforum", "openforum-api", time.Hour)
	_, err = other.ValidateAccessToken(signed)
	assert.Error(t, err)
}

func TestTokenManager_RejectsWrongIssuerAndAudience(t *testing.T) {
	signed, err := testManager(time.Hour).GenerateAccessToken(testUser())
	require.NoError(t, err)

	wrongIssuer := NewTokenManager("test-secret", "somewhere-else", "openforum-api", time.Hour)
	_, err = wrongIssuer.ValidateAccessToken(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)

	wrongAudience := NewTokenManager("test-secret", "openforum", "another-api", time.Hour)
	_, err = wrongAudience.ValidateAccessToken(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_RejectsGarbage(t *testing.T) {
	_, err := testManager(time.Hour).ValidateAccessToken("not.a.token")
	assert.Error(t, err)
}

func TestTokenManager_ExpiredToken(t *testing.T) {
	manager := testManager(-time.Minute)

	signed, err := manager.GenerateAccessToken(testUser())
	require.NoError(t, err)

	_, err = manager.ValidateAccessToken(signed)
	assert.Error(t, err)

	claims, err := manager.ParseExpiredAccessToken(signed)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
}

func TestParseExpiredAccessToken_StillChecksSignature(t *testing.T) {
	signed, err := testManager(-time.Minute).GenerateAccessToken(testUser())
	require.NoError(t, err)

	other := NewTokenManager("other-secret", "openforum", "openforum-api", time.Hour)
	_, err = other.ParseExpiredAccessToken(signed)
	assert.Error(t, err)
}

func TestNewRefreshToken_Opaque(t *testing.T) {
	first := NewRefreshToken()
	second := NewRefreshToken()
	assert.NotEqual(t, first, second)
	assert.Len(t, first, 72)
}
