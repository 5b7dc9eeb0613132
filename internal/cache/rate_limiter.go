package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RateLimiter throttles social actions with short-lived Redis counters.
type RateLimiter struct {
	rdb *redis.Client
}

func NewRateLimiter(rdb *redis.Client) *RateLimiter {
	return &RateLimiter{rdb: rdb}
}

// RateLimitConfig defines rate limit rules
type RateLimitConfig struct {
	MaxFollows   int           // per window
	MaxLikes     int           // per window
	FollowWindow time.Duration // time window for follow actions
	LikeWindow   time.Duration // time window for likes
}

// DefaultRateLimitConfig returns default rate limit configuration
func DefaultRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		MaxFollows:   1,
		MaxLikes:     10,
		FollowWindow: 5 * time.Second,
		LikeWindow:   10 * time.Second,
	}
}

// CheckFollowRateLimit checks if the user may perform another follow action
func (rl *RateLimiter) CheckFollowRateLimit(ctx context.Context, userID string, config RateLimitConfig) (bool, error) {
	return rl.check(ctx, fmt.Sprintf("rate:follow:%s", userID), config.MaxFollows)
}

// RecordFollow records a follow action for rate limiting
func (rl *RateLimiter) RecordFollow(ctx context.Context, userID string, config RateLimitConfig) error {
	return rl.record(ctx, fmt.Sprintf("rate:follow:%s", userID), config.FollowWindow)
}

// CheckLikeRateLimit checks if the user may like another meal
func (rl *RateLimiter) CheckLikeRateLimit(ctx context.Context, userID string, config RateLimitConfig) (bool, error) {
	return rl.check(ctx, fmt.Sprintf("rate:like:%s", userID), config.MaxLikes)
}

// RecordLike records a like action for rate limiting
func (rl *RateLimiter) RecordLike(ctx context.Context, userID string, config RateLimitConfig) error {
	return rl.record(ctx, fmt.Sprintf("rate:like:%s", userID), config.LikeWindow)
}

func (rl *RateLimiter) check(ctx context.Context, key string, max int) (bool, error) {
	if rl == nil || rl.rdb == nil {
		return false, fmt.Errorf("Redis client not available")
	}

	count, err := rl.rdb.Get(ctx, key).Int()
	if err == redis.Nil {
		// First action, allow it
		return true, nil
	} else if err != nil {
		return false, err
	}

	return count < max, nil
}

func (rl *RateLimiter) record(ctx context.Context, key string, window time.Duration) error {
	if rl == nil || rl.rdb == nil {
		return fmt.Errorf("Redis client not available")
	}

	count, err := rl.rdb.Incr(ctx, key).Result()
	if err != nil {
		return err
	}

	// Set expiration if first time
	if count == 1 {
		rl.rdb.Expire(ctx, key, window)
	}

	return nil
}
