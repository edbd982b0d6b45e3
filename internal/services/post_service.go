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
	postTitleMin   = 5
	postTitleMax   = 200
	postContentMin = 10
	postContentMax = 10000
)

// Post is the domain service for forum posts.
type Post interface {
	Create(ctx context.Context, title, content string, authorID uint) (*models.Post, error)
	List(ctx context.Context, page, pageSize int, filter models.PostFilter) (*models.PagedResult[models.Post], error)
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	Exists(ctx context.Context, id uint) (bool, error)
	GetAuthorID(ctx context.Context, id uint) (uint, error)
}

type postService struct {
	logger      *zap.Logger
	posts       repositories.PostRepository
	comments    repositories.CommentRepository
	likes       repositories.LikeRepository
	tags        repositories.PostTagRepository
	maxPageSize int
}

// NewPostService creates the post service.
func NewPostService(logger *zap.Logger, posts repositories.PostRepository, comments repositories.CommentRepository, likes repositories.LikeRepository, tags repositories.PostTagRepository, maxPageSize int) Post {
	return &postService{
		logger:      logger,
		posts:       posts,
		comments:    comments,
		likes:       likes,
		tags:        tags,
		maxPageSize: maxPageSize,
	}
}

// Create validates and persists a new post. Title and content are
// trimmed before the length rules run, and every violated rule is
// reported, not just the first.
func (s *postService) Create(ctx context.Context, title, content string, authorID uint) (*models.Post, error) {
	title = strings.TrimSpace(title)
	content = strings.TrimSpace(content)

	// Length rules count characters, not bytes, so multibyte text is
	// measured the same as ASCII.
	var violations []string
	if n := utf8.RuneCountInString(title); n < postTitleMin || n > postTitleMax {
		violations = append(violations, fmt.Sprintf("title must be between %d and %d characters", postTitleMin, postTitleMax))
	}
	if n := utf8.RuneCountInString(content); n < postContentMin || n > postContentMax {
		violations = append(violations, fmt.Sprintf("content must be between %d and %d characters", postContentMin, postContentMax))
	}
	if len(violations) > 0 {
		return nil, Invalid("invalid post", violations...)
	}

	post := &models.Post{
		Title:    title,
		Content:  content,
		AuthorID: authorID,
	}
	if err := s.posts.CreatePost(ctx, post); err != nil {
		s.logger.Error("failed to create post", zap.Uint("author_id", authorID), zap.Error(err))
		return nil, ErrInternal
	}
	return post, nil
}

// List returns a filtered, sorted page of posts with their read-time
// aggregates filled in.
func (s *postService) List(ctx context.Context, page, pageSize int, filter models.PostFilter) (*models.PagedResult[models.Post], error) {
	if err := validatePaging(page, pageSize, s.maxPageSize); err != nil {
		return nil, err
	}
	if err := validateSort(filter.SortBy, filter.SortOrder); err != nil {
		return nil, err
	}

	posts, total, err := s.posts.ListPosts(ctx, filter, pageSize, models.Offset(page, pageSize))
	if err != nil {
		s.logger.Error("failed to list posts", zap.Error(err))
		return nil, ErrInternal
	}

	for i := range posts {
		if err := s.decorate(ctx, &posts[i]); err != nil {
			return nil, err
		}
	}
	return models.NewPagedResult(posts, total, page, pageSize), nil
}

// GetByID returns one post with commentCount, likeCount and isTagged
// computed.
func (s *postService) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	post, err := s.posts.GetPostByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, NotFoundf("post %d not found", id)
		}
		s.logger.Error("failed to get post", zap.Uint("post_id", id), zap.Error(err))
		return nil, ErrInternal
	}
	if err := s.decorate(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// Exists reports whether the post is present.
func (s *postService) Exists(ctx context.Context, id uint) (bool, error) {
	exists, err := s.posts.PostExists(ctx, id)
	if err != nil {
		s.logger.Error("failed to check post existence", zap.Uint("post_id", id), zap.Error(err))
		return false, ErrInternal
	}
	return exists, nil
}

// GetAuthorID returns the post's author, for ownership checks by
// other services.
func (s *postService) GetAuthorID(ctx context.Context, id uint) (uint, error) {
	authorID, err := s.posts.GetPostAuthorID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return 0, NotFoundf("post %d not found", id)
		}
		s.logger.Error("failed to get post author", zap.Uint("post_id", id), zap.Error(err))
		return 0, ErrInternal
	}
	return authorID, nil
}

// decorate fills the read-time aggregates. They are computed per read
// and never cached on the entity.
func (s *postService) decorate(ctx context.Context, post *models.Post) error {
	commentCount, err := s.comments.CountCommentsByPost(ctx, post.ID)
	if err != nil {
		s.logger.Error("failed to count comments", zap.Uint("post_id", post.ID), zap.Error(err))
		return ErrInternal
	}
	likeCount, err := s.likes.GetLikesCountByPostID(ctx, post.ID)
	if err != nil {
		s.logger.Error("failed to count likes", zap.Uint("post_id", post.ID), zap.Error(err))
		return ErrInternal
	}
	tagged, err := s.tags.PostIsTagged(ctx, post.ID)
	if err != nil {
		s.logger.Error("failed to check tag", zap.Uint("post_id", post.ID), zap.Error(err))
		return ErrInternal
	}
	post.CommentCount = commentCount
	post.LikeCount = likeCount
	post.IsTagged = tagged
	return nil
}

// validateSort rejects unknown sort fields and orders.
func validateSort(sortBy, sortOrder string) *Error {
	var violations []string
	switch sortBy {
	case "", models.SortByDate, models.SortByLikeCount:
	default:
		violations = append(violations, fmt.Sprintf("unknown sort field %q", sortBy))
	}
	switch sortOrder {
	case "", models.SortAsc, models.SortDesc:
	default:
		violations = append(violations, fmt.Sprintf("unknown sort order %q", sortOrder))
	}
	if len(violations) > 0 {
		return Invalid("invalid sort parameters", violations...)
	}
	return nil
}
