package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// TokenStore tracks issued token IDs so credentials can be revoked before
// they expire. The auth middleware treats a token absent from the store as
// revoked.
type TokenStore interface {
	Save(ctx context.Context, key string, ttl time.Duration) error
	Exists(ctx context.Context, key string) (bool, error)
	Delete(ctx context.Context, keys ...string) error
	DeleteByPattern(ctx context.Context, pattern string) error
}

// AccessTokenKey builds the store key for an issued access token.
func AccessTokenKey(userID uuid.UUID, tokenID string) string {
	return fmt.Sprintf("access_token:%s:%s", userID.String(), tokenID)
}

// RefreshTokenKey builds the store key for an issued refresh token.
func RefreshTokenKey(userID uuid.UUID, tokenID string) string {
	return fmt.Sprintf("refresh_token:%s:%s", userID.String(), tokenID)
}

type redisTokenStore struct {
	client *redis.Client
}

func NewRedisTokenStore(client *redis.Client) TokenStore {
	return &redisTokenStore{client: client}
}

func (s *redisTokenStore) Save(ctx context.Context, key string, ttl time.Duration) error {
	return s.client.Set(ctx, key, "valid", ttl).Err()
}

func (s *redisTokenStore) Exists(ctx context.Context, key string) (bool, error) {
	n, err := s.client.Exists(ctx, key).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *redisTokenStore) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return s.client.Del(ctx, keys...).Err()
}

func (s *redisTokenStore) DeleteByPattern(ctx context.Context, pattern string) error {
	keys, err := s.client.Keys(ctx, pattern).Result()
	if err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return s.client.Del(ctx, keys...).Err()
}
