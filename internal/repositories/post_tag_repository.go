package repositories

import (
	"context"
	"time"

	"github.com/openforum/backend/internal/models"
	"gorm.io/gorm"
)

// PostTagRepository defines the interface for moderation tag data operations
type PostTagRepository interface {
	CreateTag(ctx context.Context, tag *models.PostTag) error
	DeleteTagByPost(ctx context.Context, postID uint) (bool, error)
	GetTagByPost(ctx context.Context, postID uint) (*models.PostTag, error)
	PostIsTagged(ctx context.Context, postID uint) (bool, error)
	ListTaggedPosts(ctx context.Context, limit, offset int) ([]models.TaggedPost, int64, error)
	ListTagsByPost(ctx context.Context, postID uint) ([]models.PostTag, error)
}

// PostgresPostTagRepository implements PostTagRepository for PostgreSQL
type PostgresPostTagRepository struct {
	db *gorm.DB
}

// NewPostgresPostTagRepository creates a new PostgresPostTagRepository
func NewPostgresPostTagRepository(db *gorm.DB) *PostgresPostTagRepository {
	return &PostgresPostTagRepository{db: db}
}

// CreateTag creates a moderation tag. The unique index on post_id
// rejects a second active tag; a race surfaces as gorm.ErrDuplicatedKey.
func (r *PostgresPostTagRepository) CreateTag(ctx context.Context, tag *models.PostTag) error {
	return r.db.WithContext(ctx).Create(tag).Error
}

// DeleteTagByPost removes the active tag for a post and reports
// whether one existed. This is the only deletion in the system.
func (r *PostgresPostTagRepository) DeleteTagByPost(ctx context.Context, postID uint) (bool, error) {
	res := r.db.WithContext(ctx).Where("post_id = ?", postID).Delete(&models.PostTag{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// GetTagByPost retrieves the active tag for a post
func (r *PostgresPostTagRepository) GetTagByPost(ctx context.Context, postID uint) (*models.PostTag, error) {
	var tag models.PostTag
	if err := r.db.WithContext(ctx).Where("post_id = ?", postID).First(&tag).Error; err != nil {
		return nil, err
	}
	return &tag, nil
}

// PostIsTagged checks whether a post currently carries a tag
func (r *PostgresPostTagRepository) PostIsTagged(ctx context.Context, postID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.PostTag{}).Where("post_id = ?", postID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// taggedPostRow is the flat scan target for the review-queue join.
type taggedPostRow struct {
	PostID           uint
	Title            string
	Content          string
	AuthorID         uint
	PostCreatedAt    time.Time
	AuthorUsername   string
	Tag              models.TagKind
	TaggedByUsername string
	TaggedAt         time.Time
}

// ListTaggedPosts joins tagged posts with their authors and the
// tagging moderators in one query, ordered by tag creation time.
func (r *PostgresPostTagRepository) ListTaggedPosts(ctx context.Context, limit, offset int) ([]models.TaggedPost, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.PostTag{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []taggedPostRow
	if err := r.db.WithContext(ctx).Model(&models.PostTag{}).
		Select("posts.id AS post_id, posts.title, posts.content, posts.author_id, " +
			"posts.created_at AS post_created_at, authors.username AS author_username, " +
			"post_tags.tag, moderators.username AS tagged_by_username, " +
			"post_tags.created_at AS tagged_at").
		Joins("JOIN posts ON posts.id = post_tags.post_id").
		Joins("JOIN users authors ON authors.id = posts.author_id").
		Joins("JOIN users moderators ON moderators.id = post_tags.created_by_user_id").
		Order("post_tags.created_at ASC").
		Limit(limit).Offset(offset).
		Scan(&rows).Error; err != nil {
		return nil, 0, err
	}

	result := make([]models.TaggedPost, 0, len(rows))
	for _, row := range rows {
		result = append(result, models.TaggedPost{
			Post: models.Post{
				ID:        row.PostID,
				Title:     row.Title,
				Content:   row.Content,
				AuthorID:  row.AuthorID,
				CreatedAt: row.PostCreatedAt,
			},
			AuthorUsername:   row.AuthorUsername,
			Tag:              row.Tag,
			TaggedByUsername: row.TaggedByUsername,
			TaggedAt:         row.TaggedAt,
		})
	}
	return result, total, nil
}

// ListTagsByPost retrieves the tag rows currently held by a post.
// Since untagging deletes the row, this reflects the active tag only.
func (r *PostgresPostTagRepository) ListTagsByPost(ctx context.Context, postID uint) ([]models.PostTag, error) {
	var tags []models.PostTag
	if err := r.db.WithContext(ctx).Where("post_id = ?", postID).Order("created_at ASC").Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}
