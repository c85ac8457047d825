package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"

	"recharge-service/internal/config"
)

func setupRateLimitedRouter(t *testing.T, client *redis.Client, cfg config.RateLimitConfig) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(RateLimiter(client, cfg))
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"pong": true})
	})
	return r
}

func ping(r *gin.Engine) int {
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.RemoteAddr = "10.0.0.1:12345"
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w.Code
}

func TestRateLimiter_AllowsWithinBurst(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	r := setupRateLimitedRouter(t, client, config.RateLimitConfig{
		Enabled:           true,
		RequestsPerSecond: 1,
		BurstCapacity:     3,
	})

	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, ping(r))
	}
	assert.Equal(t, http.StatusTooManyRequests, ping(r))
}

func TestRateLimiter_DisabledPassesThrough(t *testing.T) {
	r := setupRateLimitedRouter(t, nil, config.RateLimitConfig{Enabled: false})

	for i := 0; i < 10; i++ {
		assert.Equal(t, http.StatusOK, ping(r))
	}
}

func TestRateLimiter_FailsOpenOnRedisError(t *testing.T) {
	// A client pointed at nothing produces errors on every call; the
	// limiter must let traffic through regardless.
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
	t.Cleanup(func() { _ = client.Close() })

	r := setupRateLimitedRouter(t, client, config.RateLimitConfig{
		Enabled:           true,
		RequestsPerSecond: 1,
		BurstCapacity:     1,
	})

	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, ping(r))
	}
}
