package repositories

import (
	"context"

	"github.com/openforum/backend/internal/models"
	"gorm.io/gorm"
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	CreatePost(ctx context.Context, post *models.Post) error
	GetPostByID(ctx context.Context, id uint) (*models.Post, error)
	ListPosts(ctx context.Context, filter models.PostFilter, limit, offset int) ([]models.Post, int64, error)
	ListPostsByAuthor(ctx context.Context, authorID uint, sortOrder string, limit, offset int) ([]models.Post, int64, error)
	PostExists(ctx context.Context, id uint) (bool, error)
	GetPostAuthorID(ctx context.Context, id uint) (uint, error)
	CountPostsByAuthor(ctx context.Context, authorID uint) (int64, error)
}

// PostgresPostRepository implements PostRepository for PostgreSQL
type PostgresPostRepository struct {
	db *gorm.DB
}

// NewPostgresPostRepository creates a new PostgresPostRepository
func NewPostgresPostRepository(db *gorm.DB) *PostgresPostRepository {
	return &PostgresPostRepository{db: db}
}

// CreatePost creates a new post in PostgreSQL
func (r *PostgresPostRepository) CreatePost(ctx context.Context, post *models.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

// GetPostByID retrieves a post by ID with its author preloaded
func (r *PostgresPostRepository) GetPostByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	if err := r.db.WithContext(ctx).Preload("Author").First(&post, id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// ListPosts retrieves a page of posts matching the filter, plus the
// total matching count. Filters apply conjunctively; sorting by like
// count is done database-side against an aggregated likes subquery.
func (r *PostgresPostRepository) ListPosts(ctx context.Context, filter models.PostFilter, limit, offset int) ([]models.Post, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Post{})

	if filter.AuthorID != nil {
		query = query.Where("posts.author_id = ?", *filter.AuthorID)
	}
	if filter.DateFrom != nil {
		query = query.Where("posts.created_at >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		query = query.Where("posts.created_at <= ?", *filter.DateTo)
	}
	if len(filter.Tags) > 0 {
		query = query.Joins("JOIN post_tags ON post_tags.post_id = posts.id").
			Where("post_tags.tag IN ?", filter.Tags)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	direction := "DESC"
	if filter.SortOrder == models.SortAsc {
		direction = "ASC"
	}
	switch filter.SortBy {
	case models.SortByLikeCount:
		query = query.
			Joins("LEFT JOIN (SELECT post_id, COUNT(*) AS like_total FROM likes GROUP BY post_id) lc ON lc.post_id = posts.id").
			Order("COALESCE(lc.like_total, 0) " + direction).
			Order("posts.id " + direction)
	default:
		query = query.Order("posts.created_at " + direction).Order("posts.id " + direction)
	}

	var posts []models.Post
	if err := query.Preload("Author").Limit(limit).Offset(offset).Find(&posts).Error; err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

// ListPostsByAuthor retrieves a page of one author's posts ordered by
// creation time.
func (r *PostgresPostRepository) ListPostsByAuthor(ctx context.Context, authorID uint, sortOrder string, limit, offset int) ([]models.Post, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Post{}).Where("author_id = ?", authorID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	direction := "DESC"
	if sortOrder == models.SortAsc {
		direction = "ASC"
	}

	var posts []models.Post
	if err := query.Order("created_at " + direction).Limit(limit).Offset(offset).Find(&posts).Error; err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

// PostExists checks whether a post with the given ID exists
func (r *PostgresPostRepository) PostExists(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Post{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// GetPostAuthorID retrieves only the author ID of a post
func (r *PostgresPostRepository) GetPostAuthorID(ctx context.Context, id uint) (uint, error) {
	var post models.Post
	if err := r.db.WithContext(ctx).Select("id", "author_id").First(&post, id).Error; err != nil {
		return 0, err
	}
	return post.AuthorID, nil
}

// CountPostsByAuthor retrieves the number of posts by one author
func (r *PostgresPostRepository) CountPostsByAuthor(ctx context.Context, authorID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Post{}).Where("author_id = ?", authorID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
