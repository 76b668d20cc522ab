package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"spothop-backend/internal/platform/redis"
)

// Cache is the caching surface services depend on. CacheService is the
// Redis-backed implementation; tests substitute an in-memory one.
type Cache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	DeletePattern(ctx context.Context, pattern string) error
	GetOrSet(ctx context.Context, key string, dest interface{}, ttl time.Duration, setter func() (interface{}, error)) error
	InvalidateSpotCache(ctx context.Context, spotID string) error
	InvalidateContestCache(ctx context.Context, contestID string) error
	InvalidateUserCache(ctx context.Context, userID string) error
}

// CacheService is a thin JSON cache over Redis used for hot read paths.
type CacheService struct {
	redisClient *redis.Client
}

var _ Cache = (*CacheService)(nil)

func NewCacheService(redisClient *redis.Client) *CacheService {
	return &CacheService{
		redisClient: redisClient,
	}
}

func (c *CacheService) Get(ctx context.Context, key string, dest interface{}) error {
	data, err := c.redisClient.Get(ctx, key).Result()
	if err != nil {
		return err
	}

	return json.Unmarshal([]byte(data), dest)
}

func (c *CacheService) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value: %w", err)
	}

	return c.redisClient.Set(ctx, key, string(data), ttl).Err()
}

func (c *CacheService) Delete(ctx context.Context, key string) error {
	return c.redisClient.Del(ctx, key).Err()
}

// DeletePattern removes every key matching the pattern.
func (c *CacheService) DeletePattern(ctx context.Context, pattern string) error {
	keys, err := c.redisClient.Keys(ctx, pattern).Result()
	if err != nil {
		return err
	}

	if len(keys) > 0 {
		return c.redisClient.Del(ctx, keys...).Err()
	}

	return nil
}

// GetOrSet reads key into dest, calling setter and caching its result on a miss.
func (c *CacheService) GetOrSet(ctx context.Context, key string, dest interface{}, ttl time.Duration, setter func() (interface{}, error)) error {
	err := c.Get(ctx, key, dest)
	if err == nil {
		return nil
	}

	value, err := setter()
	if err != nil {
		return err
	}

	if err := c.Set(ctx, key, value, ttl); err != nil {
		return err
	}

	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	return json.Unmarshal(data, dest)
}

// InvalidateSpotCache drops cached state for one spot and the spot lists.
func (c *CacheService) InvalidateSpotCache(ctx context.Context, spotID string) error {
	patterns := []string{
		fmt.Sprintf("spot:%s", spotID),
		fmt.Sprintf("spot_media:%s", spotID),
		fmt.Sprintf("spot_comments:%s", spotID),
		"spot_list:*",
	}

	for _, pattern := range patterns {
		if err := c.DeletePattern(ctx, pattern); err != nil {
			return fmt.Errorf("failed to delete pattern %s: %w", pattern, err)
		}
	}

	return nil
}

// InvalidateContestCache drops cached state for one contest.
func (c *CacheService) InvalidateContestCache(ctx context.Context, contestID string) error {
	patterns := []string{
		fmt.Sprintf("contest:%s", contestID),
		fmt.Sprintf("contest_entries:%s", contestID),
		fmt.Sprintf("contest_winners:%s", contestID),
		"active_contests",
	}

	for _, pattern := range patterns {
		if err := c.DeletePattern(ctx, pattern); err != nil {
			return fmt.Errorf("failed to delete pattern %s: %w", pattern, err)
		}
	}

	return nil
}

// InvalidateUserCache drops cached state for one user.
func (c *CacheService) InvalidateUserCache(ctx context.Context, userID string) error {
	patterns := []string{
		fmt.Sprintf("user:%s", userID),
		fmt.Sprintf("user_spots:%s", userID),
		fmt.Sprintf("user_favorites:%s", userID),
	}

	for _, pattern := range patterns {
		if err := c.DeletePattern(ctx, pattern); err != nil {
			return fmt.Errorf("failed to delete pattern %s: %w", pattern, err)
		}
	}

	return nil
}
