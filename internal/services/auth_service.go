package services

import (
	"context"
	"strings"
	"time"

	"github.com/openforum/backend/internal/models"
	"github.com/openforum/backend/internal/repositories"
	"github.com/openforum/backend/pkg/security"
	"go.uber.org/zap"
)

// Auth issues and validates credentials.
type Auth interface {
	Register(ctx context.Context, username, email, password string, role models.Role) (*models.AuthResult, error)
	Login(ctx context.Context, identifier, password string) (*models.AuthResult, error)
	RefreshToken(ctx context.Context, oldAccessToken, refreshToken string) (*models.AuthResult, error)
	ValidateToken(ctx context.Context, token string) (*models.UserIdentity, error)
}

type authService struct {
	logger     *zap.Logger
	users      repositories.UserRepository
	tokens     repositories.RefreshTokenRepository
	manager    *security.TokenManager
	refreshTTL time.Duration
}

// NewAuthService creates the auth service.
func NewAuthService(logger *zap.Logger, users repositories.UserRepository, tokens repositories.RefreshTokenRepository, manager *security.TokenManager, refreshTTL time.Duration) Auth {
	return &authService{
		logger:     logger,
		users:      users,
		tokens:     tokens,
		manager:    manager,
		refreshTTL: refreshTTL,
	}
}

// Register creates a new account and signs the user in. Username and
// email uniqueness is checked up front for a friendly error, and the
// unique indexes catch whatever races past the check.
func (s *authService) Register(ctx context.Context, username, email, password string, role models.Role) (*models.AuthResult, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if role == "" {
		role = models.RoleUser
	}

	if _, err := s.users.GetUserByUsername(ctx, username); err == nil {
		return nil, Conflictf("username %q is already taken", username)
	} else if !isNotFound(err) {
		s.logger.Error("failed to check username uniqueness", zap.Error(err))
		return nil, ErrInternal
	}
	if _, err := s.users.GetUserByEmail(ctx, email); err == nil {
		return nil, Conflictf("email %q is already registered", email)
	} else if !isNotFound(err) {
		s.logger.Error("failed to check email uniqueness", zap.Error(err))
		return nil, ErrInternal
	}

	hash, err := security.HashPassword(password)
	if err != nil {
		s.logger.Error("failed to hash password", zap.Error(err))
		return nil, ErrInternal
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		if isDuplicate(err) {
			return nil, Conflictf("username or email is already registered")
		}
		s.logger.Error("failed to create user", zap.Error(err))
		return nil, ErrInternal
	}

	return s.issueTokens(ctx, user)
}

// Login authenticates by email or username. The same Unauthorized
// comes back for an unknown identifier and a wrong password.
func (s *authService) Login(ctx context.Context, identifier, password string) (*models.AuthResult, error) {
	identifier = strings.TrimSpace(identifier)

	user, err := s.users.GetUserByEmail(ctx, identifier)
	if err != nil {
		if !isNotFound(err) {
			s.logger.Error("failed to look up user by email", zap.Error(err))
			return nil, ErrInternal
		}
		user, err = s.users.GetUserByUsername(ctx, identifier)
		if err != nil {
			if isNotFound(err) {
				return nil, Unauthorizedf("invalid credentials")
			}
			s.logger.Error("failed to look up user by username", zap.Error(err))
			return nil, ErrInternal
		}
	}

	if !security.VerifyPassword(user.PasswordHash, password) {
		return nil, Unauthorizedf("invalid credentials")
	}

	return s.issueTokens(ctx, user)
}

// RefreshToken exchanges a live refresh token for a fresh pair.
// Rotation: the spent token is deleted before the new pair is issued.
// When the stale access token is supplied it must belong to the same
// user as the refresh token.
func (s *authService) RefreshToken(ctx context.Context, oldAccessToken, refreshToken string) (*models.AuthResult, error) {
	if refreshToken == "" {
		return nil, Unauthorizedf("refresh token is required")
	}

	userID, err := s.tokens.GetRefreshTokenUser(ctx, refreshToken)
	if err != nil {
		if err == repositories.ErrTokenNotFound {
			return nil, Unauthorizedf("refresh token is invalid or expired")
		}
		s.logger.Error("failed to look up refresh token", zap.Error(err))
		return nil, ErrInternal
	}

	if oldAccessToken != "" {
		claims, err := s.manager.ParseExpiredAccessToken(oldAccessToken)
		if err != nil || claims.UserID != userID {
			return nil, Unauthorizedf("access token does not match refresh token")
		}
	}

	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		if isNotFound(err) {
			return nil, Unauthorizedf("refresh token is invalid or expired")
		}
		s.logger.Error("failed to load user for refresh", zap.Error(err))
		return nil, ErrInternal
	}

	// The spent token is deleted before the new pair is stored. If
	// issuing then fails the caller must log in again; the old token
	// never outlives the exchange that consumed it.
	if err := s.tokens.DeleteRefreshToken(ctx, refreshToken); err != nil {
		s.logger.Error("failed to rotate refresh token", zap.Error(err))
		return nil, ErrInternal
	}

	return s.issueTokens(ctx, user)
}

// ValidateToken resolves a bearer token to the caller's identity.
func (s *authService) ValidateToken(ctx context.Context, token string) (*models.UserIdentity, error) {
	claims, err := s.manager.ValidateAccessToken(token)
	if err != nil {
		return nil, Unauthorizedf("invalid or expired token")
	}
	return &models.UserIdentity{
		UserID:   claims.UserID,
		Username: claims.Username,
		Role:     claims.Role,
	}, nil
}

func (s *authService) issueTokens(ctx context.Context, user *models.User) (*models.AuthResult, error) {
	accessToken, err := s.manager.GenerateAccessToken(user)
	if err != nil {
		s.logger.Error("failed to sign access token", zap.Error(err))
		return nil, ErrInternal
	}

	refreshToken := security.NewRefreshToken()
	if err := s.tokens.SaveRefreshToken(ctx, refreshToken, user.ID, s.refreshTTL); err != nil {
		s.logger.Error("failed to store refresh token", zap.Error(err))
		return nil, ErrInternal
	}

	return &models.AuthResult{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(s.manager.AccessTTL().Seconds()),
		User:         user,
	}, nil
}
