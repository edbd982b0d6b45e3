package models

import "time"

// Post is a forum post. CommentCount, LikeCount and IsTagged are
// read-time projections computed from related rows; they are never
// stored on the post itself.
type Post struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Title     string    `json:"title" gorm:"size:200"`
	Content   string    `json:"content" gorm:"type:text"`
	AuthorID  uint      `json:"author_id" gorm:"index;not null"`
	CreatedAt time.Time `json:"created_at"`

	Author *User `json:"author,omitempty" gorm:"foreignKey:AuthorID"`

	CommentCount int64 `json:"comment_count" gorm:"-"`
	LikeCount    int64 `json:"like_count" gorm:"-"`
	IsTagged     bool  `json:"is_tagged" gorm:"-"`
}

// CreatePostRequest defines the request body for creating a new post
type CreatePostRequest struct {
	Title   string `json:"title" validate:"required"`
	Content string `json:"content" validate:"required"`
}

// Sort fields accepted by the post list endpoint.
const (
	SortByDate      = "date"
	SortByLikeCount = "likeCount"

	SortAsc  = "asc"
	SortDesc = "desc"
)

// PostFilter is the conjunctive filter set for listing posts.
type PostFilter struct {
	AuthorID  *uint
	DateFrom  *time.Time
	DateTo    *time.Time
	Tags      []TagKind
	SortBy    string
	SortOrder string
}
