package analyzer

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"lectio-studio/internal/domain/model"
	"lectio-studio/internal/domain/ports/adapter"
	"lectio-studio/internal/infra/metrics"
	red "lectio-studio/internal/infra/redis"

	"github.com/go-redis/redis/v8"
)

var _ adapter.TextAnalyzerAdapter = (*cacheDecorator)(nil)

// cacheDecorator memoizes analyses in redis. Latin morphology is a pure
// function of the text and options, so entries never need invalidation, only
// expiry.
type cacheDecorator struct {
	inner adapter.TextAnalyzerAdapter
	cache red.RedisClient
	ttl   time.Duration
}

func NewCacheDecorator(inner adapter.TextAnalyzerAdapter, cache red.RedisClient, ttl time.Duration) adapter.TextAnalyzerAdapter {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &cacheDecorator{inner: inner, cache: cache, ttl: ttl}
}

func cacheKey(text string, opts model.AnalysisOptions) string {
	sum := sha256.Sum256([]byte(text))
	return fmt.Sprintf("analysis:%s:m%t:d%t", hex.EncodeToString(sum[:]), opts.IncludeMorphology, opts.IncludeDependencies)
}

func (d *cacheDecorator) Analyze(ctx context.Context, text string, opts model.AnalysisOptions) (*model.TextAnalysis, error) {
	key := cacheKey(text, opts)
	val, err := d.cache.Get(ctx, key)
	if err == nil {
		var analysis model.TextAnalysis
		if json.Unmarshal([]byte(val), &analysis) == nil {
			metrics.IncCacheRequest("analysis", "hit")
			return &analysis, nil
		}
		// corrupt entry; fall through and overwrite it
	} else if err != redis.Nil {
		// a redis outage degrades to uncached analysis
		metrics.IncCacheRequest("analysis", "error")
	}

	metrics.IncCacheRequest("analysis", "miss")
	analysis, err := d.inner.Analyze(ctx, text, opts)
	if err != nil {
		return nil, err
	}
	if bytes, err := json.Marshal(analysis); err == nil {
		_ = d.cache.Set(ctx, key, bytes, d.ttl)
	}
	return analysis, nil
}

// Health is never cached.
func (d *cacheDecorator) Health(ctx context.Context) (adapter.AnalyzerHealth, error) {
	return d.inner.Health(ctx)
}
