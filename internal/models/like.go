package models

import "time"

// Like represents a user's like on a post. The (PostID, UserID) pair
// is unique; the index is the authority under concurrent toggles.
type Like struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	PostID    uint      `json:"post_id" gorm:"not null;uniqueIndex:idx_likes_post_user"`
	UserID    uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_likes_post_user"`
	CreatedAt time.Time `json:"created_at"`
}

// LikeStatus is the caller-visible state of a post's likes after a
// like operation.
type LikeStatus struct {
	IsLiked   bool  `json:"is_liked"`
	LikeCount int64 `json:"like_count"`
}
