package services

import (
	"context"
	"sync"
	"time"

	"github.com/ministerio-jovem/app-frequencia/internal/logging"
	"go.uber.org/zap"
)

// RateLimiter implements a token bucket rate limiter
type RateLimiter struct {
	tokens     int
	maxTokens  int
	refillRate time.Duration
	lastRefill time.Time
	mutex      sync.Mutex
	logger     *logging.SafeLogger
}

// NewRateLimiter creates a new token bucket rate limiter that gains one token every refillRate
func NewRateLimiter(maxTokens int, refillRate time.Duration, logger *logging.SafeLogger) *RateLimiter {
	if refillRate <= 0 {
		refillRate = time.Second
	}
	return &RateLimiter{
		tokens:     maxTokens,
		maxTokens:  maxTokens,
		refillRate: refillRate,
		lastRefill: time.Now(),
		logger:     logger,
	}
}

// Allow takes a token if one is available
func (rl *RateLimiter) Allow(ctx context.Context, operation string) bool {
	rl.mutex.Lock()
	defer rl.mutex.Unlock()

	rl.refill(operation)

	if rl.tokens > 0 {
		rl.tokens--
		return true
	}

	rl.logger.Warn("rate limiter rejected request",
		zap.String("operation", operation),
		zap.Int("max_tokens", rl.maxTokens))
	return false
}

func (rl *RateLimiter) refill(operation string) {
	elapsed := time.Since(rl.lastRefill)
	tokensToAdd := int(elapsed / rl.refillRate)
	if tokensToAdd <= 0 {
		return
	}

	rl.tokens += tokensToAdd
	if rl.tokens > rl.maxTokens {
		rl.tokens = rl.maxTokens
	}
	// keep the remainder so partial intervals are not lost
	rl.lastRefill = rl.lastRefill.Add(time.Duration(tokensToAdd) * rl.refillRate)

	rl.logger.Debug("rate limiter tokens refilled",
		zap.String("operation", operation),
		zap.Int("tokens_added", tokensToAdd),
		zap.Int("current_tokens", rl.tokens))
}

// Full reports whether the bucket has refilled completely
func (rl *RateLimiter) Full() bool {
	rl.mutex.Lock()
	defer rl.mutex.Unlock()
	rl.refill("status")
	return rl.tokens >= rl.maxTokens
}

// GetStatus returns the current and maximum number of tokens
func (rl *RateLimiter) GetStatus() (int, int) {
	rl.mutex.Lock()
	defer rl.mutex.Unlock()
	return rl.tokens, rl.maxTokens
}

// KeyedRateLimiter keeps one token bucket per key
type KeyedRateLimiter struct {
	maxTokens  int
	refillRate time.Duration
	buckets    sync.Map // map[string]*RateLimiter
	logger     *logging.SafeLogger
}

// NewKeyedRateLimiter creates a per-key limiter allowing maxTokens requests per key,
// with one token restored every refillRate
func NewKeyedRateLimiter(maxTokens int, refillRate time.Duration, logger *logging.SafeLogger) *KeyedRateLimiter {
	return &KeyedRateLimiter{
		maxTokens:  maxTokens,
		refillRate: refillRate,
		logger:     logger,
	}
}

// Allow takes a token from the bucket of key
func (k *KeyedRateLimiter) Allow(ctx context.Context, key string) bool {
	bucket, _ := k.buckets.LoadOrStore(key, NewRateLimiter(k.maxTokens, k.refillRate, k.logger))
	return bucket.(*RateLimiter).Allow(ctx, "keyed_rate_limit")
}

// Reset forgets the bucket of key
func (k *KeyedRateLimiter) Reset(key string) {
	k.buckets.Delete(key)
}

// CleanupFullBuckets drops buckets that have refilled completely
func (k *KeyedRateLimiter) CleanupFullBuckets() {
	k.buckets.Range(func(key, value interface{}) bool {
		if value.(*RateLimiter).Full() {
			k.buckets.Delete(key)
			k.logger.Debug("cleaned up rate limit entry", zap.String("key", key.(string)))
		}
		return true
	})
}

// Size returns the number of tracked keys
func (k *KeyedRateLimiter) Size() int {
	count := 0
	k.buckets.Range(func(key, value interface{}) bool {
		count++
		return true
	})
	return count
}
