package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/wedding-venue-booking/internal/config"
)

func newRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, rdb
}

func okHandler(c echo.Context) error { return c.String(http.StatusOK, "ok") }

func TestTokenBucket_BlocksAfterCapacity(t *testing.T) {
	_, rdb := newRedis(t)
	cfg := config.RateLimitConfig{
		Enabled:        true,
		Capacity:       2,
		RefillTokens:   1,
		RefillInterval: time.Minute,
		TTL:            10 * time.Minute,
		KeyStrategy:    "ip",
		Prefix:         "rl",
	}
	e := echo.New()
	e.POST("/book", okHandler, NewTokenBucket(cfg, rdb))

	for i := 0; i < 2; i++ {
		rec := serve(e, http.MethodPost, "/book", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "2", rec.Header().Get("X-RateLimit-Limit"))
	}
	rec := serve(e, http.MethodPost, "/book", "")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "0", rec.Header().Get("X-RateLimit-Remaining"))
	assert.Equal(t, "60", rec.Header().Get("Retry-After"))
	assert.Contains(t, rec.Body.String(), `"error":"too_many_requests"`)
}

func TestTokenBucket_RefillsAfterInterval(t *testing.T) {
	mr, rdb := newRedis(t)
	cfg := config.RateLimitConfig{
		Enabled:        true,
		Capacity:       1,
		RefillTokens:   1,
		RefillInterval: 50 * time.Millisecond,
		TTL:            time.Minute,
		KeyStrategy:    "ip",
		Prefix:         "rl",
	}
	e := echo.New()
	e.POST("/book", okHandler, NewTokenBucket(cfg, rdb))

	require.Equal(t, http.StatusOK, serve(e, http.MethodPost, "/book", "").Code)
	require.Equal(t, http.StatusTooManyRequests, serve(e, http.MethodPost, "/book", "").Code)
	assert.Equal(t, time.Minute, mr.TTL("rl:ip:192.0.2.1"))

	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, http.StatusOK, serve(e, http.MethodPost, "/book", "").Code)
}

func TestTokenBucket_FailsOpen(t *testing.T) {
	mr, rdb := newRedis(t)
	cfg := config.RateLimitConfig{Enabled: true, Capacity: 1, RefillTokens: 1, RefillInterval: time.Minute, TTL: time.Hour, Prefix: "rl"}
	e := echo.New()
	e.POST("/book", okHandler, NewTokenBucket(cfg, rdb))

	mr.Close()
	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, serve(e, http.MethodPost, "/book", "").Code)
	}
}

func TestTokenBucket_DisabledWithoutRedis(t *testing.T) {
	e := echo.New()
	e.POST("/book", okHandler, NewTokenBucket(config.RateLimitConfig{Enabled: true, Capacity: 1}, nil))
	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, serve(e, http.MethodPost, "/book", "").Code)
	}
}

func TestBuildRateKey(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/venues/1/reservations", nil)
	req.RemoteAddr = "203.0.113.9:5555"
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetPath("/v1/venues/:id/reservations")

	assert.Equal(t, "rl:ip:203.0.113.9", buildRateKey(config.RateLimitConfig{Prefix: "rl", KeyStrategy: "ip"}, c))
	assert.Equal(t, "rl:ip:203.0.113.9:user:anon:route:POST /v1/venues/:id/reservations",
		buildRateKey(config.RateLimitConfig{Prefix: "rl"}, c))
}
