package security

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"github.com/openforum/backend/internal/models"
)

var ErrInvalidToken = errors.New("invalid token")

// TokenManager signs and verifies access tokens and mints opaque
// refresh tokens. It holds no state beyond its configuration.
type TokenManager struct {
	secret    []byte
	issuer    string
	audience  string
	accessTTL time.Duration
}

func NewTokenManager(secret, issuer, audience string, accessTTL time.Duration) *TokenManager {
	return &TokenManager{
		secret:    []byte(secret),
		issuer:    issuer,
		audience:  audience,
		accessTTL: accessTTL,
	}
}

// AccessTTL is the configured access-token lifetime.
func (m *TokenManager) AccessTTL() time.Duration {
	return m.accessTTL
}

// GenerateAccessToken signs an HS256 access token for the user with a
// unique jti and the configured issuer, audience and expiry.
func (m *TokenManager) GenerateAccessToken(user *models.User) (string, error) {
	now := time.Now()
	claims := &models.JwtCustomClaims{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.issuer,
			Audience:  jwt.ClaimStrings{m.audience},
			ExpiresAt: jwt.NewNumericDate(now.Add(m.accessTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ID:        uuid.NewString(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// ValidateAccessToken parses and verifies a token: signature, time
// claims, issuer and audience must all check out.
func (m *TokenManager) ValidateAccessToken(tokenString string) (*models.JwtCustomClaims, error) {
	claims, err := m.parse(tokenString, true)
	if err != nil {
		return nil, err
	}
	if !claims.VerifyIssuer(m.issuer, true) {
		return nil, ErrInvalidToken
	}
	if !claims.VerifyAudience(m.audience, true) {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// ParseExpiredAccessToken verifies everything except expiry. Used by
// the refresh flow, where the access token is typically stale.
func (m *TokenManager) ParseExpiredAccessToken(tokenString string) (*models.JwtCustomClaims, error) {
	claims, err := m.parse(tokenString, false)
	if err != nil {
		return nil, err
	}
	if !claims.VerifyIssuer(m.issuer, true) || !claims.VerifyAudience(m.audience, true) {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func (m *TokenManager) parse(tokenString string, validateClaims bool) (*models.JwtCustomClaims, error) {
	claims := &models.JwtCustomClaims{}
	keyFunc := func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return m.secret, nil
	}

	var opts []jwt.ParserOption
	if !validateClaims {
		opts = append(opts, jwt.WithoutClaimsValidation())
	}
	token, err := jwt.NewParser(opts...).ParseWithClaims(tokenString, claims, keyFunc)
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// NewRefreshToken mints an opaque refresh token. Validity comes from
// the token store, not from the string itself.
func NewRefreshToken() string {
	return uuid.NewString() + uuid.NewString()
}
