package middleware

// Distributed token-bucket rate limiter backed by Redis. Bucket state lives
// in a hash per key and is updated atomically by a Lua script, so multiple
// server instances share one budget. With limiting disabled or no Redis
// client, the middleware is a no-op.

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/rivieraprestige/concierge-api/internal/config"
)

var limiterScript = redis.NewScript(`
    local key = KEYS[1]
    local now_ms = tonumber(ARGV[1])
    local capacity = tonumber(ARGV[2])
    local refill_tokens = tonumber(ARGV[3])
    local interval_ms = tonumber(ARGV[4])
    local ttl_seconds = tonumber(ARGV[5])

    local state = redis.call('HMGET', key, 'tokens', 'last_refill_ms')
    local tokens = tonumber(state[1])
    local last_refill = tonumber(state[2])

    if tokens == nil or last_refill == nil then
        tokens = capacity
        last_refill = now_ms
    end

    if interval_ms > 0 and refill_tokens > 0 then
        local elapsed = math.max(0, now_ms - last_refill)
        local intervals = math.floor(elapsed / interval_ms)
        if intervals > 0 then
            tokens = math.min(capacity, tokens + (intervals * refill_tokens))
            last_refill = last_refill + (intervals * interval_ms)
        end
    end

    local allowed = 0
    local retry_after_ms = 0
    if tokens > 0 then
        allowed = 1
        tokens = tokens - 1
    else
        local until_next = interval_ms - (now_ms - last_refill)
        if until_next < 0 then until_next = 0 end
        retry_after_ms = until_next
    end

    redis.call('HMSET', key, 'tokens', tokens, 'last_refill_ms', last_refill)
    redis.call('EXPIRE', key, ttl_seconds)
    return {allowed, tokens, retry_after_ms}
`)

// limiterKey derives the bucket key for a request. The default strategy
// buckets by client IP and route; "ip" shares one bucket per client across
// all routes.
func limiterKey(cfg config.RateLimitConfig, c echo.Context) string {
	switch strings.ToLower(cfg.KeyStrategy) {
	case "ip":
		return fmt.Sprintf("%s:ip:%s", cfg.Prefix, c.RealIP())
	default: // "ip_route"
		return fmt.Sprintf("%s:ip:%s:route:%s", cfg.Prefix, c.RealIP(), c.Path())
	}
}

// NewTokenBucket returns the rate limiting middleware. When Redis is
// unavailable mid-flight the request is allowed through: losing rate limiting
// is preferable to refusing the whole public site.
func NewTokenBucket(cfg config.RateLimitConfig, rdb *redis.Client) echo.MiddlewareFunc {
	if !cfg.Enabled || rdb == nil {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return func(c echo.Context) error { return next(c) }
		}
	}

	intervalMS := cfg.RefillInterval.Milliseconds()
	ttlSeconds := int64(math.Ceil(cfg.TTL.Seconds()))

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := limiterKey(cfg, c)
			nowMS := time.Now().UnixMilli()

			ctx, cancel := context.WithTimeout(c.Request().Context(), 150*time.Millisecond)
			res, err := limiterScript.Run(ctx, rdb, []string{key},
				nowMS, cfg.Capacity, cfg.RefillTokens, intervalMS, ttlSeconds).Int64Slice()
			cancel()
			if err != nil || len(res) != 3 {
				return next(c)
			}

			allowed, remaining, retryAfterMS := res[0] == 1, res[1], res[2]
			h := c.Response().Header()
			h.Set("X-RateLimit-Limit", strconv.Itoa(cfg.Capacity))
			h.Set("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))
			if !allowed {
				retryAfter := int64(math.Ceil(float64(retryAfterMS) / 1000.0))
				if retryAfter < 1 {
					retryAfter = 1
				}
				h.Set("Retry-After", strconv.FormatInt(retryAfter, 10))
				return c.JSON(http.StatusTooManyRequests, echo.Map{"error": "rate limit exceeded"})
			}
			return next(c)
		}
	}
}
