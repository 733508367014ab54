package redis

import (
	"context"
	"fmt"
	"strconv"

	"github.com/go-redis/redis/v8"
)

// ContentRevisions tracks a monotonically increasing revision number per
// reading. The revision is bumped after a generation job lands so content
// viewers know their copy of the lesson material is stale.
type ContentRevisions struct {
	client RedisClient
}

func NewContentRevisions(client RedisClient) *ContentRevisions {
	return &ContentRevisions{client: client}
}

func revisionKey(readingID string) string {
	return fmt.Sprintf("content_rev:%s", readingID)
}

// Bump advances the reading's revision and returns the new value.
func (c *ContentRevisions) Bump(ctx context.Context, readingID string) (int64, error) {
	return c.client.Incr(ctx, revisionKey(readingID))
}

// Current returns the reading's revision, zero when it was never bumped.
func (c *ContentRevisions) Current(ctx context.Context, readingID string) (int64, error) {
	val, err := c.client.Get(ctx, revisionKey(readingID))
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	rev, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("corrupt revision for %s: %w", readingID, err)
	}
	return rev, nil
}
