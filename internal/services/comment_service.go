package services

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/openforum/backend/internal/models"
	"github.com/openforum/backend/internal/repositories"
	"go.uber.org/zap"
)

const (
	commentContentMin = 3
	commentContentMax = 2000
)

// Comment is the domain service for post comments.
type Comment interface {
	GetForPost(ctx context.Context, postID uint, page, pageSize int, sortOrder string) (*models.PagedResult[models.Comment], error)
	Create(ctx context.Context, postID uint, content string, authorID uint) (*models.Comment, error)
	GetByID(ctx context.Context, id uint) (*models.Comment, error)
	Exists(ctx context.Context, id uint) (bool, error)
	CountForPost(ctx context.Context, postID uint) (int64, error)
}

type commentService struct {
	logger      *zap.Logger
	comments    repositories.CommentRepository
	posts       repositories.PostRepository
	maxPageSize int
}

// NewCommentService creates the comment service.
func NewCommentService(logger *zap.Logger, comments repositories.CommentRepository, posts repositories.PostRepository, maxPageSize int) Comment {
	return &commentService{
		logger:      logger,
		comments:    comments,
		posts:       posts,
		maxPageSize: maxPageSize,
	}
}

// GetForPost returns a page of a post's comments.
func (s *commentService) GetForPost(ctx context.Context, postID uint, page, pageSize int, sortOrder string) (*models.PagedResult[models.Comment], error) {
	if err := validatePaging(page, pageSize, s.maxPageSize); err != nil {
		return nil, err
	}
	if err := validateSort("", sortOrder); err != nil {
		return nil, err
	}
	if err := s.requirePost(ctx, postID); err != nil {
		return nil, err
	}

	comments, total, err := s.comments.ListCommentsByPost(ctx, postID, sortOrder, pageSize, models.Offset(page, pageSize))
	if err != nil {
		s.logger.Error("failed to list comments", zap.Uint("post_id", postID), zap.Error(err))
		return nil, ErrInternal
	}
	return models.NewPagedResult(comments, total, page, pageSize), nil
}

// Create validates and persists a comment on an existing post.
func (s *commentService) Create(ctx context.Context, postID uint, content string, authorID uint) (*models.Comment, error) {
	if err := s.requirePost(ctx, postID); err != nil {
		return nil, err
	}

	content = strings.TrimSpace(content)
	// Character count, not byte count.
	if n := utf8.RuneCountInString(content); n < commentContentMin || n > commentContentMax {
		return nil, Invalid("invalid comment",
			fmt.Sprintf("content must be between %d and %d characters", commentContentMin, commentContentMax))
	}

	comment := &models.Comment{
		Content:  content,
		PostID:   postID,
		AuthorID: authorID,
	}
	if err := s.comments.CreateComment(ctx, comment); err != nil {
		s.logger.Error("failed to create comment", zap.Uint("post_id", postID), zap.Error(err))
		return nil, ErrInternal
	}
	return comment, nil
}

// GetByID returns one comment.
func (s *commentService) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	comment, err := s.comments.GetCommentByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, NotFoundf("comment %d not found", id)
		}
		s.logger.Error("failed to get comment", zap.Uint("comment_id", id), zap.Error(err))
		return nil, ErrInternal
	}
	return comment, nil
}

// Exists reports whether the comment is present.
func (s *commentService) Exists(ctx context.Context, id uint) (bool, error) {
	exists, err := s.comments.CommentExists(ctx, id)
	if err != nil {
		s.logger.Error("failed to check comment existence", zap.Uint("comment_id", id), zap.Error(err))
		return false, ErrInternal
	}
	return exists, nil
}

// CountForPost returns the comment count for a post.
func (s *commentService) CountForPost(ctx context.Context, postID uint) (int64, error) {
	count, err := s.comments.CountCommentsByPost(ctx, postID)
	if err != nil {
		s.logger.Error("failed to count comments", zap.Uint("post_id", postID), zap.Error(err))
		return 0, ErrInternal
	}
	return count, nil
}

func (s *commentService) requirePost(ctx context.Context, postID uint) error {
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
