package services

import (
	"context"

	"github.com/openforum/backend/internal/models"
	"github.com/openforum/backend/internal/repositories"
	"go.uber.org/zap"
)

// Moderation is the domain service for misinformation tagging.
type Moderation interface {
	TagPost(ctx context.Context, postID, moderatorID uint) (*models.ModerationResult, error)
	UntagPost(ctx context.Context, postID, moderatorID uint) (*models.ModerationResult, error)
	ListTagged(ctx context.Context, page, pageSize int) (*models.PagedResult[models.TaggedPost], error)
	IsTagged(ctx context.Context, postID uint) (bool, error)
	IsModerator(ctx context.Context, userID uint) (bool, error)
	History(ctx context.Context, postID uint) ([]models.PostTag, error)
}

type moderationService struct {
	logger      *zap.Logger
	tags        repositories.PostTagRepository
	posts       repositories.PostRepository
	users       repositories.UserRepository
	maxPageSize int
}

// NewModerationService creates the moderation service.
func NewModerationService(logger *zap.Logger, tags repositories.PostTagRepository, posts repositories.PostRepository, users repositories.UserRepository, maxPageSize int) Moderation {
	return &moderationService{
		logger:      logger,
		tags:        tags,
		posts:       posts,
		users:       users,
		maxPageSize: maxPageSize,
	}
}

// TagPost marks a post as misleading information. The caller's role
// is checked against the store, not a possibly stale token claim. The
// unique index on post_id closes the check-then-insert window: a race
// comes back as the same already-tagged error.
func (s *moderationService) TagPost(ctx context.Context, postID, moderatorID uint) (*models.ModerationResult, error) {
	if err := s.requireModerator(ctx, moderatorID); err != nil {
		return nil, err
	}
	if err := s.requirePost(ctx, postID); err != nil {
		return nil, err
	}

	tagged, err := s.tags.PostIsTagged(ctx, postID)
	if err != nil {
		s.logger.Error("failed to check tag state", zap.Uint("post_id", postID), zap.Error(err))
		return nil, ErrInternal
	}
	if tagged {
		return nil, InvalidOperationf("post %d is already tagged", postID)
	}

	tag := &models.PostTag{
		PostID:          postID,
		Tag:             models.TagMisleadingInformation,
		CreatedByUserID: moderatorID,
	}
	if err := s.tags.CreateTag(ctx, tag); err != nil {
		if isDuplicate(err) {
			return nil, InvalidOperationf("post %d is already tagged", postID)
		}
		s.logger.Error("failed to create tag", zap.Uint("post_id", postID), zap.Error(err))
		return nil, ErrInternal
	}

	s.logger.Info("post tagged",
		zap.Uint("post_id", postID),
		zap.Uint("moderator_id", moderatorID),
		zap.String("tag", string(tag.Tag)))

	return &models.ModerationResult{PostID: postID, Tag: tag.Tag, Action: "tagged"}, nil
}

// UntagPost removes a post's active tag. This is the one deletion the
// system performs.
func (s *moderationService) UntagPost(ctx context.Context, postID, moderatorID uint) (*models.ModerationResult, error) {
	if err := s.requireModerator(ctx, moderatorID); err != nil {
		return nil, err
	}

	tag, err := s.tags.GetTagByPost(ctx, postID)
	if err != nil {
		if isNotFound(err) {
			return nil, NotFoundf("post %d has no active tag", postID)
		}
		s.logger.Error("failed to load tag", zap.Uint("post_id", postID), zap.Error(err))
		return nil, ErrInternal
	}

	removed, err := s.tags.DeleteTagByPost(ctx, postID)
	if err != nil {
		s.logger.Error("failed to delete tag", zap.Uint("post_id", postID), zap.Error(err))
		return nil, ErrInternal
	}
	if !removed {
		return nil, NotFoundf("post %d has no active tag", postID)
	}

	s.logger.Info("post untagged",
		zap.Uint("post_id", postID),
		zap.Uint("moderator_id", moderatorID))

	return &models.ModerationResult{PostID: postID, Tag: tag.Tag, Action: "untagged"}, nil
}

// ListTagged returns the tagged-post review queue ordered by tag time.
func (s *moderationService) ListTagged(ctx context.Context, page, pageSize int) (*models.PagedResult[models.TaggedPost], error) {
	if err := validatePaging(page, pageSize, s.maxPageSize); err != nil {
		return nil, err
	}

	tagged, total, err := s.tags.ListTaggedPosts(ctx, pageSize, models.Offset(page, pageSize))
	if err != nil {
		s.logger.Error("failed to list tagged posts", zap.Error(err))
		return nil, ErrInternal
	}
	return models.NewPagedResult(tagged, total, page, pageSize), nil
}

// IsTagged reports whether the post currently carries a tag.
func (s *moderationService) IsTagged(ctx context.Context, postID uint) (bool, error) {
	tagged, err := s.tags.PostIsTagged(ctx, postID)
	if err != nil {
		s.logger.Error("failed to check tag state", zap.Uint("post_id", postID), zap.Error(err))
		return false, ErrInternal
	}
	return tagged, nil
}

// IsModerator reports whether the user holds the moderator role.
func (s *moderationService) IsModerator(ctx context.Context, userID uint) (bool, error) {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		if isNotFound(err) {
			return false, nil
		}
		s.logger.Error("failed to load user", zap.Uint("user_id", userID), zap.Error(err))
		return false, ErrInternal
	}
	return user.Role == models.RoleModerator, nil
}

// History returns the tag rows held by a post. Untagging deletes rows,
// so this reflects the currently active tag only.
func (s *moderationService) History(ctx context.Context, postID uint) ([]models.PostTag, error) {
	tags, err := s.tags.ListTagsByPost(ctx, postID)
	if err != nil {
		s.logger.Error("failed to list tags", zap.Uint("post_id", postID), zap.Error(err))
		return nil, ErrInternal
	}
	return tags, nil
}

func (s *moderationService) requireModerator(ctx context.Context, userID uint) error {
	isMod, err := s.IsModerator(ctx, userID)
	if err != nil {
		return err
	}
	if !isMod {
		return Forbiddenf("user %d is not a moderator", userID)
	}
	return nil
}

func (s *moderationService) requirePost(ctx context.Context, postID uint) error {
	exists, err := s.posts.PostExists(ctx, postID)
	if err != nil {
		s.logger.Error("failed to check post existence", zap.Uint("post_id", postID), zap.Error(err))
		return ErrInternal
	}
	if !exists {
		return NotFoundf("post %d not found", postID)
	}
	return nil
}
