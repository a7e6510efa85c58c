package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zaptest"
)

// setupTestRedis creates a miniredis instance for testing
func setupTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
	t.Cleanup(func() {
		_ = client.Close()
	})
	return client, mr
}

func setupRouter(rl *RateLimiter) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(rl.Handler())
	r.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})
	return r
}

func doRequest(r *gin.Engine) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/ping", nil)
	req.RemoteAddr = "10.0.0.1:12345"
	r.ServeHTTP(w, req)
	return w
}

func TestRateLimiter_AllowsWithinBurst(t *testing.T) {
	client, _ := setupTestRedis(t)

	rl := NewRateLimiter(client, RateLimiterConfig{
		RequestsPerSecond: 1,
		BurstCapacity:     5,
		Enabled:           true,
	}, zaptest.NewLogger(t))
	r := setupRouter(rl)

	for i := 0; i < 5; i++ {
		w := doRequest(r)
		assert.Equal(t, http.StatusOK, w.Code, "request %d should pass", i+1)
	}
}

func TestRateLimiter_DeniesBeyondBurst(t *testing.T) {
	client, mr := setupTestRedis(t)

	rl := NewRateLimiter(client, RateLimiterConfig{
		RequestsPerSecond: 1,
		BurstCapacity:     2,
		Enabled:           true,
	}, zaptest.NewLogger(t))
	r := setupRouter(rl)

	// Pin the redis clock so no tokens refill between requests
	mr.SetTime(time.Now())

	assert.Equal(t, http.StatusOK, doRequest(r).Code)
	assert.Equal(t, http.StatusOK, doRequest(r).Code)

	w := doRequest(r)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), "rate_limit_exceeded")
}

func TestRateLimiter_RefillsOverTime(t *testing.T) {
	client, mr := setupTestRedis(t)

	rl := NewRateLimiter(client, RateLimiterConfig{
		RequestsPerSecond: 1,
		BurstCapacity:     1,
		Enabled:           true,
	}, zaptest.NewLogger(t))
	r := setupRouter(rl)

	base := time.Now()
	mr.SetTime(base)

	assert.Equal(t, http.StatusOK, doRequest(r).Code)
	assert.Equal(t, http.StatusTooManyRequests, doRequest(r).Code)

	// Advance the redis clock so the bucket refills
	mr.SetTime(base.Add(2 * time.Second))

	assert.Equal(t, http.StatusOK, doRequest(r).Code)
}

func TestRateLimiter_Disabled(t *testing.T) {
	client, _ := setupTestRedis(t)

	rl := NewRateLimiter(client, RateLimiterConfig{
		RequestsPerSecond: 1,
		BurstCapacity:     1,
		Enabled:           false,
	}, zaptest.NewLogger(t))
	r := setupRouter(rl)

	for i := 0; i < 10; i++ {
		assert.Equal(t, http.StatusOK, doRequest(r).Code)
	}
}

func TestRateLimiter_FailsOpenOnRedisError(t *testing.T) {
	client, mr := setupTestRedis(t)

	rl := NewRateLimiter(client, RateLimiterConfig{
		RequestsPerSecond: 1,
		BurstCapacity:     1,
		Enabled:           true,
	}, zaptest.NewLogger(t))
	r := setupRouter(rl)

	mr.Close()

	assert.Equal(t, http.StatusOK, doRequest(r).Code)
}
