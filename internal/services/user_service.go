package services

import (
	"context"

	"github.com/openforum/backend/internal/models"
	"github.com/openforum/backend/internal/repositories"
	"go.uber.org/zap"
)

// User is the domain service for profiles and identity lookups.
type User interface {
	GetProfile(ctx context.Context, userID uint) (*models.UserProfile, error)
	GetUserPosts(ctx context.Context, userID uint, page, pageSize int, sortOrder string) (*models.PagedResult[models.Post], error)
	Exists(ctx context.Context, userID uint) (bool, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByID(ctx context.Context, userID uint) (*models.User, error)
}

type userService struct {
	logger      *zap.Logger
	users       repositories.UserRepository
	posts       repositories.PostRepository
	comments    repositories.CommentRepository
	likes       repositories.LikeRepository
	maxPageSize int
}

// NewUserService creates the user service.
func NewUserService(logger *zap.Logger, users repositories.UserRepository, posts repositories.PostRepository, comments repositories.CommentRepository, likes repositories.LikeRepository, maxPageSize int) User {
	return &userService{
		logger:      logger,
		users:       users,
		posts:       posts,
		comments:    comments,
		likes:       likes,
		maxPageSize: maxPageSize,
	}
}

// GetProfile returns the user with activity aggregates computed at
// read time.
func (s *userService) GetProfile(ctx context.Context, userID uint) (*models.UserProfile, error) {
	user, err := s.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	postCount, err := s.posts.CountPostsByAuthor(ctx, userID)
	if err != nil {
		s.logger.Error("failed to count posts", zap.Uint("user_id", userID), zap.Error(err))
		return nil, ErrInternal
	}
	commentCount, err := s.comments.CountCommentsByAuthor(ctx, userID)
	if err != nil {
		s.logger.Error("failed to count comments", zap.Uint("user_id", userID), zap.Error(err))
		return nil, ErrInternal
	}
	likesReceived, err := s.likes.CountLikesReceivedByAuthor(ctx, userID)
	if err != nil {
		s.logger.Error("failed to count likes received", zap.Uint("user_id", userID), zap.Error(err))
		return nil, ErrInternal
	}

	return &models.UserProfile{
		User:          *user,
		PostCount:     postCount,
		CommentCount:  commentCount,
		LikesReceived: likesReceived,
	}, nil
}

// GetUserPosts returns a page of the user's posts.
func (s *userService) GetUserPosts(ctx context.Context, userID uint, page, pageSize int, sortOrder string) (*models.PagedResult[models.Post], error) {
	if err := validatePaging(page, pageSize, s.maxPageSize); err != nil {
		return nil, err
	}
	if err := validateSort("", sortOrder); err != nil {
		return nil, err
	}

	exists, err := s.users.UserExists(ctx, userID)
	if err != nil {
		s.logger.Error("failed to check user existence", zap.Uint("user_id", userID), zap.Error(err))
		return nil, ErrInternal
	}
	if !exists {
		return nil, NotFoundf("user %d not found", userID)
	}

	posts, total, err := s.posts.ListPostsByAuthor(ctx, userID, sortOrder, pageSize, models.Offset(page, pageSize))
	if err != nil {
		s.logger.Error("failed to list user posts", zap.Uint("user_id", userID), zap.Error(err))
		return nil, ErrInternal
	}
	return models.NewPagedResult(posts, total, page, pageSize), nil
}

// Exists reports whether the user is present.
func (s *userService) Exists(ctx context.Context, userID uint) (bool, error) {
	exists, err := s.users.UserExists(ctx, userID)
	if err != nil {
		s.logger.Error("failed to check user existence", zap.Uint("user_id", userID), zap.Error(err))
		return false, ErrInternal
	}
	return exists, nil
}

// GetByEmail looks a user up by email.
func (s *userService) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if isNotFound(err) {
			return nil, NotFoundf("user with email %q not found", email)
		}
		s.logger.Error("failed to get user by email", zap.Error(err))
		return nil, ErrInternal
	}
	return user, nil
}

// GetByUsername looks a user up by username.
func (s *userService) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		if isNotFound(err) {
			return nil, NotFoundf("user %q not found", username)
		}
		s.logger.Error("failed to get user by username", zap.Error(err))
		return nil, ErrInternal
	}
	return user, nil
}

// GetByID looks a user up by ID.
func (s *userService) GetByID(ctx context.Context, userID uint) (*models.User, error) {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		if isNotFound(err) {
			return nil, NotFoundf("user %d not found", userID)
		}
		s.logger.Error("failed to get user", zap.Uint("user_id", userID), zap.Error(err))
		return nil, ErrInternal
	}
	return user, nil
}
