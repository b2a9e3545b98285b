package services

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/ministerio-jovem/app-frequencia/internal/logging"
	"github.com/ministerio-jovem/app-frequencia/internal/redisclient"
	"go.uber.org/zap"
)

const loginAttemptsKeyPrefix = "login_attempts:"

// LoginLimiter throttles login attempts per email and client address. Counters
// live in Redis when it is configured so every replica shares them; otherwise,
// or when Redis fails, an in-process token bucket is used.
type LoginLimiter struct {
	redis       *redisclient.Client
	local       *KeyedRateLimiter
	maxAttempts int
	window      time.Duration
	logger      *logging.SafeLogger

	stop     chan struct{}
	stopOnce sync.Once
}

// NewLoginLimiter creates a limiter allowing maxAttempts per window. A
// maxAttempts of zero or less disables throttling. The in-process buckets are
// swept once per window until Stop is called.
func NewLoginLimiter(redis *redisclient.Client, maxAttempts int, window time.Duration, logger *logging.SafeLogger) *LoginLimiter {
	limiter := &LoginLimiter{
		redis:       redis,
		maxAttempts: maxAttempts,
		window:      window,
		logger:      logger,
		stop:        make(chan struct{}),
	}
	if maxAttempts > 0 {
		limiter.local = NewKeyedRateLimiter(maxAttempts, window/time.Duration(maxAttempts), logger)
		if window > 0 {
			go limiter.cleanupLoop()
		}
	}
	return limiter
}

func (l *LoginLimiter) cleanupLoop() {
	ticker := time.NewTicker(l.window)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			l.local.CleanupFullBuckets()
		case <-l.stop:
			return
		}
	}
}

// Stop ends the background sweep of in-process buckets
func (l *LoginLimiter) Stop() {
	if l == nil {
		return
	}
	l.stopOnce.Do(func() { close(l.stop) })
}

// LoginAttemptKey builds the throttling key for an email and client address
func LoginAttemptKey(email, clientIP string) string {
	return strings.ToLower(strings.TrimSpace(email)) + "|" + clientIP
}

// Allow records an attempt for key and reports whether it is within the limit
func (l *LoginLimiter) Allow(ctx context.Context, key string) bool {
	if l == nil || l.maxAttempts <= 0 {
		return true
	}

	if l.redis != nil {
		allowed, err := l.allowRedis(ctx, key)
		if err == nil {
			return allowed
		}
		l.logger.Warn("redis login limiter failed, using in-process limiter", zap.Error(err))
	}
	return l.local.Allow(ctx, key)
}

func (l *LoginLimiter) allowRedis(ctx context.Context, key string) (bool, error) {
	redisKey := loginAttemptsKeyPrefix + key

	count, err := l.redis.Incr(ctx, redisKey).Result()
	if err != nil {
		return false, err
	}
	if count == 1 {
		if err := l.redis.Expire(ctx, redisKey, l.window).Err(); err != nil {
			return false, err
		}
	} else {
		// A counter left without expiry would lock the key out for good
		ttl, err := l.redis.TTL(ctx, redisKey).Result()
		if err != nil {
			return false, err
		}
		if ttl == -1 {
			if err := l.redis.Expire(ctx, redisKey, l.window).Err(); err != nil {
				return false, err
			}
		}
	}
	return count <= int64(l.maxAttempts), nil
}

// Reset clears the attempts of key after a successful login
func (l *LoginLimiter) Reset(ctx context.Context, key string) {
	if l == nil || l.maxAttempts <= 0 {
		return
	}
	if l.redis != nil {
		if err := l.redis.Del(ctx, loginAttemptsKeyPrefix+key).Err(); err != nil {
			l.logger.Warn("failed to reset login attempts", zap.Error(err))
		}
	}
	l.local.Reset(key)
}
