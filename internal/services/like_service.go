package services

import (
	"context"

	"github.com/openforum/backend/internal/models"
	"github.com/openforum/backend/internal/repositories"
	"go.uber.org/zap"
)

// Like is the domain service for post likes. The (post, user) unique
// index is the sole mutual-exclusion mechanism; this service holds no
// locks and treats index violations as the race signal.
type Like interface {
	Toggle(ctx context.Context, postID, userID uint) (*models.LikeStatus, error)
	Unlike(ctx context.Context, postID, userID uint) (*models.LikeStatus, error)
	HasLiked(ctx context.Context, postID, userID uint) (bool, error)
	CountForPost(ctx context.Context, postID uint) (int64, error)
	ListForPost(ctx context.Context, postID uint) ([]models.Like, error)
}

type likeService struct {
	logger *zap.Logger
	likes  repositories.LikeRepository
	posts  repositories.PostRepository
}

// NewLikeService creates the like service.
func NewLikeService(logger *zap.Logger, likes repositories.LikeRepository, posts repositories.PostRepository) Like {
	return &likeService{
		logger: logger,
		likes:  likes,
		posts:  posts,
	}
}

// Toggle likes the post if the user has no like row, unlikes it
// otherwise. Authors may never like their own posts. When a concurrent
// toggle wins the insert race, the unique-index violation is resolved
// as "already liked" and the current state comes back idempotently.
func (s *likeService) Toggle(ctx context.Context, postID, userID uint) (*models.LikeStatus, error) {
	authorID, err := s.posts.GetPostAuthorID(ctx, postID)
	if err != nil {
		if isNotFound(err) {
			return nil, NotFoundf("post %d not found", postID)
		}
		s.logger.Error("failed to load post author", zap.Uint("post_id", postID), zap.Error(err))
		return nil, ErrInternal
	}
	if authorID == userID {
		return nil, InvalidOperationf("cannot like own post")
	}

	liked, err := s.likes.HasUserLikedPost(ctx, postID, userID)
	if err != nil {
		s.logger.Error("failed to check like state", zap.Uint("post_id", postID), zap.Error(err))
		return nil, ErrInternal
	}

	if liked {
		removed, err := s.likes.DeleteLike(ctx, postID, userID)
		if err != nil {
			s.logger.Error("failed to delete like", zap.Uint("post_id", postID), zap.Error(err))
			return nil, ErrInternal
		}
		// A racing unlike may have removed the row first; either way
		// the user ends up not liking the post.
		_ = removed
		return s.status(ctx, postID, false)
	}

	like := &models.Like{PostID: postID, UserID: userID}
	if err := s.likes.CreateLike(ctx, like); err != nil {
		if isDuplicate(err) {
			// Someone else just liked it on the user's behalf; the
			// index held, the row count stays at one.
			return s.status(ctx, postID, true)
		}
		s.logger.Error("failed to create like", zap.Uint("post_id", postID), zap.Error(err))
		return nil, ErrInternal
	}
	return s.status(ctx, postID, true)
}

// Unlike removes an existing like; absent likes are NotFound.
func (s *likeService) Unlike(ctx context.Context, postID, userID uint) (*models.LikeStatus, error) {
	removed, err := s.likes.DeleteLike(ctx, postID, userID)
	if err != nil {
		s.logger.Error("failed to delete like", zap.Uint("post_id", postID), zap.Error(err))
		return nil, ErrInternal
	}
	if !removed {
		return nil, NotFoundf("like not found")
	}
	return s.status(ctx, postID, false)
}

// HasLiked reports whether the user currently likes the post.
func (s *likeService) HasLiked(ctx context.Context, postID, userID uint) (bool, error) {
	liked, err := s.likes.HasUserLikedPost(ctx, postID, userID)
	if err != nil {
		s.logger.Error("failed to check like state", zap.Uint("post_id", postID), zap.Error(err))
		return false, ErrInternal
	}
	return liked, nil
}

// CountForPost returns the post's like count.
func (s *likeService) CountForPost(ctx context.Context, postID uint) (int64, error) {
	count, err := s.likes.GetLikesCountByPostID(ctx, postID)
	if err != nil {
		s.logger.Error("failed to count likes", zap.Uint("post_id", postID), zap.Error(err))
		return 0, ErrInternal
	}
	return count, nil
}

// ListForPost returns all likes on a post.
func (s *likeService) ListForPost(ctx context.Context, postID uint) ([]models.Like, error) {
	likes, err := s.likes.GetLikesByPostID(ctx, postID)
	if err != nil {
		s.logger.Error("failed to list likes", zap.Uint("post_id", postID), zap.Error(err))
		return nil, ErrInternal
	}
	return likes, nil
}

func (s *likeService) status(ctx context.Context, postID uint, isLiked bool) (*models.LikeStatus, error) {
	count, err := s.likes.GetLikesCountByPostID(ctx, postID)
	if err != nil {
		s.logger.Error("failed to count likes", zap.Uint("post_id", postID), zap.Error(err))
		return nil, ErrInternal
	}
	return &models.LikeStatus{IsLiked: isLiked, LikeCount: count}, nil
}
