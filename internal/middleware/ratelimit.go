package middleware

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/wedding-venue-booking/internal/config"
	"github.com/iliyamo/wedding-venue-booking/internal/i18n"
)

// tokenBucketScript spends one booking token for KEYS[1], first crediting
// the refills earned since the stored timestamp.
//
//	ARGV: now_ms, capacity, refill_tokens, refill_interval_ms, ttl_ms
//	returns {allowed (0|1), tokens_left, retry_after_seconds}
var tokenBucketScript = redis.NewScript(`
	local now = tonumber(ARGV[1])
	local capacity = tonumber(ARGV[2])
	local refill = tonumber(ARGV[3])
	local interval = tonumber(ARGV[4])

	local left = tonumber(redis.call('HGET', KEYS[1], 'left'))
	local stamp = tonumber(redis.call('HGET', KEYS[1], 'stamp'))
	if not left or not stamp then
		left, stamp = capacity, now
	end

	local earned = math.floor(math.max(0, now - stamp) / interval)
	if earned > 0 then
		left = math.min(capacity, left + earned * refill)
		stamp = stamp + earned * interval
	end

	local retry = 0
	if left >= 1 then
		left = left - 1
	else
		retry = math.ceil((stamp + interval - now) / 1000)
	end

	redis.call('HSET', KEYS[1], 'left', left, 'stamp', stamp)
	redis.call('PEXPIRE', KEYS[1], ARGV[5])
	if retry > 0 then
		return {0, left, retry}
	end
	return {1, left, 0}
`)

// NewTokenBucket limits how fast one caller can submit reservations and
// inquiries.  Without Redis, or when disabled, it passes every request
// through.  Redis errors fail open.
func NewTokenBucket(cfg config.RateLimitConfig, rdb *redis.Client) echo.MiddlewareFunc {
	if !cfg.Enabled || rdb == nil {
		return passThrough
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := buildRateKey(cfg, c)
			res, err := tokenBucketScript.Run(c.Request().Context(), rdb, []string{key},
				time.Now().UnixMilli(),
				cfg.Capacity,
				cfg.RefillTokens,
				cfg.RefillInterval.Milliseconds(),
				cfg.TTL.Milliseconds(),
			).Int64Slice()
			if err != nil || len(res) != 3 {
				c.Logger().Warnj(log.JSON{"msg": "rate limit check skipped", "key": key, "error": fmt.Sprint(err)})
				return next(c)
			}
			allowed, left, retry := res[0] == 1, res[1], res[2]

			h := c.Response().Header()
			h.Set("X-RateLimit-Limit", strconv.Itoa(cfg.Capacity))
			h.Set("X-RateLimit-Remaining", strconv.FormatInt(left, 10))
			if cfg.Debug {
				h.Set("X-RateLimit-Key", key)
			}
			if allowed {
				return next(c)
			}

			h.Set("Retry-After", strconv.FormatInt(retry, 10))
			c.Logger().Infoj(log.JSON{"msg": "rate limited", "key": key, "retry_after": retry})
			return c.JSON(http.StatusTooManyRequests, echo.Map{
				"error":       i18n.MsgTooManyRequests,
				"message":     i18n.T(i18n.FromRequest(c.Request()), i18n.MsgTooManyRequests),
				"retry_after": retry,
			})
		}
	}
}

func passThrough(next echo.HandlerFunc) echo.HandlerFunc { return next }

func buildRateKey(cfg config.RateLimitConfig, c echo.Context) string {
	parts := []string{cfg.Prefix}
	ip := c.RealIP()
	if ip == "" {
		ip = "unknown"
	}
	uid := currentUserID(c)
	route := c.Request().Method + " " + c.Path()

	switch strings.ToLower(cfg.KeyStrategy) {
	case "ip":
		parts = append(parts, "ip", ip)
	case "user":
		parts = append(parts, "user", uid)
	case "route":
		parts = append(parts, "route", route)
	case "ip_user":
		parts = append(parts, "ip", ip, "user", uid)
	case "ip_route":
		parts = append(parts, "ip", ip, "route", route)
	case "user_route":
		parts = append(parts, "user", uid, "route", route)
	default:
		parts = append(parts, "ip", ip, "user", uid, "route", route)
	}
	return strings.Join(parts, ":")
}
