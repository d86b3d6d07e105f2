// Copyright (c) 2026 The gae-blog Authors. All rights reserved.

package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mrfuxi/gae-blog/internal/platform/constants"
)

// RedisRevocationRepository implements [RevocationRepository] with expiring keys.
type RedisRevocationRepository struct {
	client *redis.Client
}

// NewRevocationRepository creates a new Redis-backed RevocationRepository.
func NewRevocationRepository(client *redis.Client) *RedisRevocationRepository {
	return &RedisRevocationRepository{client: client}
}

func (repository *RedisRevocationRepository) Revoke(context context.Context, tokenID string, ttl time.Duration) error {
	key := constants.RedisPrefixRevokedJTI + tokenID

	if err := repository.client.Set(context, key, "1", ttl).Err(); err != nil {
		return fmt.Errorf("redis_token_revoke_failed: %w", err)
	}

	return nil
}

func (repository *RedisRevocationRepository) IsRevoked(context context.Context, tokenID string) (bool, error) {
	key := constants.RedisPrefixRevokedJTI + tokenID

	count, err := repository.client.Exists(context, key).Result()
	if err != nil {
		return false, fmt.Errorf("redis_token_revoked_check_failed: %w", err)
	}

	return count > 0, nil
}
