package models

import (
	"fmt"
	"time"
)

// TagKind is the controlled vocabulary of moderation tags. Modeled as
// a closed enumeration so a typo cannot fragment moderation reporting.
type TagKind string

const (
	TagMisleadingInformation TagKind = "misleading-information"
)

// ParseTagKind validates a raw tag string against the vocabulary.
func ParseTagKind(s string) (TagKind, error) {
	switch TagKind(s) {
	case TagMisleadingInformation:
		return TagMisleadingInformation, nil
	default:
		return "", fmt.Errorf("unknown tag %q", s)
	}
}

// PostTag marks a post for misinformation compliance. At most one
// active tag per post, enforced by the unique index on PostID.
type PostTag struct {
	ID              uint      `json:"id" gorm:"primaryKey"`
	PostID          uint      `json:"post_id" gorm:"uniqueIndex;not null"`
	Tag             TagKind   `json:"tag" gorm:"size:50"`
	CreatedByUserID uint      `json:"created_by_user_id" gorm:"index;not null"`
	CreatedAt       time.Time `json:"created_at"`
}

// ModerationResult reports the outcome of a tag or untag action.
type ModerationResult struct {
	PostID uint    `json:"post_id"`
	Tag    TagKind `json:"tag"`
	Action string  `json:"action"` // "tagged" or "untagged"
}

// TaggedPost is a post joined with its active tag and the moderator
// who applied it, for the moderation review listing.
type TaggedPost struct {
	Post             Post      `json:"post"`
	AuthorUsername   string    `json:"author_username"`
	Tag              TagKind   `json:"tag"`
	TaggedByUsername string    `json:"tagged_by_username"`
	TaggedAt         time.Time `json:"tagged_at"`
}
