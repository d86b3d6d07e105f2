package post

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mrfuxi/gae-blog/internal/platform/constants"
)

// RedisCache stores each post scan as one JSON document keyed by the scan
// version. The version is a Redis counter shared by every instance; scans
// under old versions are never read again and expire with their TTL.
type RedisCache struct {
	client     *redis.Client
	versionKey string
	scanPrefix string
	ttl        time.Duration
}

// NewRedisCache creates a [Cache] under the default post keys.
func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{
		client:     client,
		versionKey: constants.RedisKeyPostVersion,
		scanPrefix: constants.RedisPrefixPostScan,
		ttl:        ttl,
	}
}

func (cache *RedisCache) scanKey(version uint64) string {
	return cache.scanPrefix + strconv.FormatUint(version, 10)
}

func (cache *RedisCache) Version(context context.Context) (uint64, error) {
	version, err := cache.client.Get(context, cache.versionKey).Uint64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("post cache: version: %w", err)
	}
	return version, nil
}

func (cache *RedisCache) Load(context context.Context, version uint64) ([]*Post, bool, error) {
	data, err := cache.client.Get(context, cache.scanKey(version)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("post cache: get: %w", err)
	}

	var posts []*Post
	if err := json.Unmarshal(data, &posts); err != nil {
		return nil, false, fmt.Errorf("post cache: decode: %w", err)
	}

	return posts, true, nil
}

func (cache *RedisCache) Store(context context.Context, version uint64, posts []*Post) error {
	if posts == nil {
		posts = []*Post{}
	}

	data, err := json.Marshal(posts)
	if err != nil {
		return fmt.Errorf("post cache: encode: %w", err)
	}

	if err := cache.client.Set(context, cache.scanKey(version), data, cache.ttl).Err(); err != nil {
		return fmt.Errorf("post cache: set: %w", err)
	}

	return nil
}

func (cache *RedisCache) Invalidate(context context.Context) error {
	if err := cache.client.Incr(context, cache.versionKey).Err(); err != nil {
		return fmt.Errorf("post cache: incr: %w", err)
	}
	return nil
}
