package repositories

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrTokenNotFound is returned when a refresh token is unknown,
// expired out of the store, or already rotated.
var ErrTokenNotFound = errors.New("refresh token not found")

// RefreshTokenRepository stores opaque refresh tokens with a TTL.
type RefreshTokenRepository interface {
	SaveRefreshToken(ctx context.Context, token string, userID uint, ttl time.Duration) error
	GetRefreshTokenUser(ctx context.Context, token string) (uint, error)
	DeleteRefreshToken(ctx context.Context, token string) error
}

// RedisRefreshTokenRepository implements RefreshTokenRepository on Redis
type RedisRefreshTokenRepository struct {
	client *redis.Client
}

// NewRedisRefreshTokenRepository creates a new RedisRefreshTokenRepository
func NewRedisRefreshTokenRepository(client *redis.Client) *RedisRefreshTokenRepository {
	return &RedisRefreshTokenRepository{client: client}
}

func refreshTokenKey(token string) string {
	return "refresh:" + token
}

// SaveRefreshToken stores the token with the user ID as value; Redis
// expiry enforces the refresh TTL.
func (r *RedisRefreshTokenRepository) SaveRefreshToken(ctx context.Context, token string, userID uint, ttl time.Duration) error {
	return r.client.Set(ctx, refreshTokenKey(token), strconv.FormatUint(uint64(userID), 10), ttl).Err()
}

// GetRefreshTokenUser resolves a refresh token to its user ID
func (r *RedisRefreshTokenRepository) GetRefreshTokenUser(ctx context.Context, token string) (uint, error) {
	val, err := r.client.Get(ctx, refreshTokenKey(token)).Result()
	if err == redis.Nil {
		return 0, ErrTokenNotFound
	}
	if err != nil {
		return 0, err
	}
	id, err := strconv.ParseUint(val, 10, 64)
	if err != nil {
		return 0, ErrTokenNotFound
	}
	return uint(id), nil
}

// DeleteRefreshToken drops a refresh token, invalidating it immediately
func (r *RedisRefreshTokenRepository) DeleteRefreshToken(ctx context.Context, token string) error {
	return r.client.Del(ctx, refreshTokenKey(token)).Err()
}
