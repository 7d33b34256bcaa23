package middleware

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/cardnews/cardnews-backend/internal/common"
	"github.com/cardnews/cardnews-backend/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

const (
	rateLimitWindow   = time.Minute
	rateLimitTimeout  = 100 * time.Millisecond
	localLimiterIdle  = 10 * time.Minute
	localSweepEvery   = time.Minute
	rateLimitKeyUser  = "user:"
	rateLimitKeyIP    = "ip:"
	defaultKeyPrefix  = "cardnews:ratelimit:"
	defaultPerMinute  = 120
	backendRedis      = "redis"
	backendLocalLimit = "local"
)

// RateLimitConfig configures the rate limiter
type RateLimitConfig struct {
	RequestsPerMinute int
	KeyPrefix         string
}

// DefaultRateLimitConfig returns default rate limit configuration
func DefaultRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		RequestsPerMinute: defaultPerMinute,
		KeyPrefix:         defaultKeyPrefix,
	}
}

// rateLimitScript is an atomic Lua script for sliding window rate limiting
var rateLimitScript = redis.NewScript(`
local key = KEYS[1]
local limit = tonumber(ARGV[1])
local window = tonumber(ARGV[2])
local now = tonumber(ARGV[3])
local window_start = now - window

redis.call('ZREMRANGEBYSCORE', key, '-inf', window_start)
local count = redis.call('ZCARD', key)

if count < limit then
    redis.call('ZADD', key, now, now .. ':' .. math.random(1000000))
    redis.call('EXPIRE', key, math.ceil(window / 1000) + 1)
    return {1, limit - count - 1, 0}
else
    local oldest = redis.call('ZRANGE', key, 0, 0, 'WITHSCORES')
    local reset_at = 0
    if #oldest >= 2 then
        reset_at = tonumber(oldest[2]) + window
    end
    return {0, 0, reset_at}
end
`)

// localLimiters token buckets per client, used when Redis is absent or failing
type localLimiters struct {
	mu        sync.Mutex
	perMinute int
	buckets   map[string]*localBucket
	lastSweep time.Time
}

type localBucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func newLocalLimiters(perMinute int) *localLimiters {
	return &localLimiters{perMinute: perMinute, buckets: make(map[string]*localBucket)}
}

// allow reports whether key may proceed, with the remaining burst and the wait until the next token
func (l *localLimiters) allow(key string, now time.Time) (bool, int, time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if now.Sub(l.lastSweep) > localSweepEvery {
		for k, b := range l.buckets {
			if now.Sub(b.lastSeen) > localLimiterIdle {
				delete(l.buckets, k)
			}
		}
		l.lastSweep = now
	}

	b, ok := l.buckets[key]
	if !ok {
		b = &localBucket{limiter: rate.NewLimiter(rate.Every(rateLimitWindow/time.Duration(l.perMinute)), l.perMinute)}
		l.buckets[key] = b
	}
	b.lastSeen = now

	if b.limiter.AllowN(now, 1) {
		return true, int(math.Floor(b.limiter.TokensAt(now))), 0
	}
	r := b.limiter.ReserveN(now, 1)
	wait := r.DelayFrom(now)
	r.CancelAt(now)
	return false, 0, wait
}

// RateLimit limits requests per user (when authenticated) or per client IP.
// Redis gives a shared sliding window across instances; without Redis, or when a Redis
// call fails, each instance falls back to its own token bucket.
func RateLimit(redisClient *redis.Client, cfg RateLimitConfig) gin.HandlerFunc {
	if cfg.RequestsPerMinute <= 0 {
		cfg.RequestsPerMinute = defaultPerMinute
	}
	if cfg.KeyPrefix == "" {
		cfg.KeyPrefix = defaultKeyPrefix
	}
	local := newLocalLimiters(cfg.RequestsPerMinute)

	return func(c *gin.Context) {
		key := rateLimitKeyIP + c.ClientIP()
		if userID := GetUserID(c); userID != "" {
			key = rateLimitKeyUser + userID
		}
		now := time.Now()

		c.Header("X-RateLimit-Limit", strconv.Itoa(cfg.RequestsPerMinute))

		if redisClient != nil {
			allowed, remaining, retryAfter, err := redisAllow(c.Request.Context(), redisClient, cfg, key, now)
			if err == nil {
				c.Header("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))
				if !allowed {
					rejectRateLimited(c, backendRedis, retryAfter)
					return
				}
				c.Next()
				return
			}
			logger.GetLogger().Warn().Err(err).Msg("redis rate limit failed, using local limiter")
		}

		allowed, remaining, wait := local.allow(key, now)
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		if !allowed {
			rejectRateLimited(c, backendLocalLimit, wait)
			return
		}
		c.Next()
	}
}

func redisAllow(ctx context.Context, client *redis.Client, cfg RateLimitConfig, key string, now time.Time) (bool, int64, time.Duration, error) {
	ctx, cancel := context.WithTimeout(ctx, rateLimitTimeout)
	defer cancel()

	nowMs := now.UnixMilli()
	result, err := rateLimitScript.Run(ctx, client, []string{cfg.KeyPrefix + key},
		cfg.RequestsPerMinute, rateLimitWindow.Milliseconds(), nowMs,
	).Int64Slice()
	if err != nil {
		return false, 0, 0, err
	}
	retryAfter := time.Duration(result[2]-nowMs) * time.Millisecond
	return result[0] == 1, result[1], retryAfter, nil
}

func rejectRateLimited(c *gin.Context, backend string, retryAfter time.Duration) {
	seconds := int(math.Ceil(retryAfter.Seconds()))
	if seconds < 1 {
		seconds = 1
	}
	rateLimitedTotal.WithLabelValues(backend).Inc()
	c.Header("Retry-After", strconv.Itoa(seconds))
	common.ErrorResponse(c, http.StatusTooManyRequests, common.Localize(c, "rate_limit.exceeded", seconds), nil)
	c.Abort()
}
