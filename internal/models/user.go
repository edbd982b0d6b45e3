package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// Role is the closed set of user roles. It is stored as a string;
// the JSON adapter below also accepts the legacy numeric form.
type Role string

const (
	RoleUser      Role = "user"
	RoleModerator Role = "moderator"
)

// ParseRole normalizes a string to a Role. The empty string maps to
// RoleUser, the registration default.
func ParseRole(s string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(RoleUser), "":
		return RoleUser, nil
	case string(RoleModerator):
		return RoleModerator, nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}

// UnmarshalJSON accepts either a string ("user", "Moderator") or the
// legacy numeric encoding (0=user, 1=moderator) and normalizes to the
// enum. Anything else is rejected here, before domain code sees it.
func (r *Role) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		role, err := ParseRole(s)
		if err != nil {
			return err
		}
		*r = role
		return nil
	}

	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("role must be a string or an integer")
	}
	switch n {
	case 0:
		*r = RoleUser
	case 1:
		*r = RoleModerator
	default:
		return fmt.Errorf("unknown role %d", n)
	}
	return nil
}

// User is a registered account.
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Username     string    `json:"username" gorm:"uniqueIndex;size:50"`
	Email        string    `json:"email" gorm:"uniqueIndex;size:255"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role" gorm:"size:20;default:user"`
	CreatedAt    time.Time `json:"created_at"`
}

// RegisterRequest is the body for POST /api/auth/register.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Role     Role   `json:"role,omitempty"`
}

// LoginRequest accepts an email or a username as the identifier.
type LoginRequest struct {
	Identifier string `json:"identifier" validate:"required"`
	Password   string `json:"password" validate:"required"`
}

// RefreshRequest is the body for POST /api/auth/refresh. The access
// token is optional; when present it must belong to the same user as
// the refresh token.
type RefreshRequest struct {
	AccessToken  string `json:"access_token,omitempty"`
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// AuthResult is returned by register, login and refresh.
type AuthResult struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
	User         *User  `json:"user"`
}

// UserProfile is a user plus read-time activity aggregates.
type UserProfile struct {
	User
	PostCount     int64 `json:"post_count"`
	CommentCount  int64 `json:"comment_count"`
	LikesReceived int64 `json:"likes_received"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	Role     Role   `json:"role"`
	jwt.RegisteredClaims
}

// UserIdentity is the authenticated caller resolved from a bearer token.
type UserIdentity struct {
	UserID   uint
	Username string
	Role     Role
}
