package redis

import (
	"context"
	"fmt"
	"time"
)

// RateLimiter is a fixed-window counter built on INCR + EXPIRE.
type RateLimiter struct {
	client RedisClient
}

func NewRateLimiter(client RedisClient) *RateLimiter {
	return &RateLimiter{client: client}
}

// Allow records one attempt against key and reports whether the count stays
// within limit for the current window. The first attempt opens the window.
func (r *RateLimiter) Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	count, err := r.client.Incr(ctx, key)
	if err != nil {
		return false, err
	}

	if count == 1 {
		if err := r.client.Expire(ctx, key, window); err != nil {
			return false, err
		}
	}

	return count <= int64(limit), nil
}

// GenerationStartKey scopes the submit limit to a single reading.
func GenerationStartKey(readingID string) string {
	return fmt.Sprintf("rate_limit:generation_start:%s", readingID)
}
