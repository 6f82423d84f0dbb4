package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLimiter(t *testing.T, max int, window time.Duration) (*RateLimiter, *time.Time) {
	t.Helper()
	rl := NewRateLimiter(RateLimitConfig{MaxRequests: max, WindowDuration: window})
	t.Cleanup(rl.Stop)

	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }
	return rl, &now
}

func TestRateLimiter_Allow(t *testing.T) {
	t.Run("allows up to the limit per window", func(t *testing.T) {
		rl, _ := newTestLimiter(t, 2, time.Minute)

		ok, _ := rl.Allow("a")
		assert.True(t, ok)
		ok, _ = rl.Allow("a")
		assert.True(t, ok)

		ok, retryAfter := rl.Allow("a")
		assert.False(t, ok)
		assert.Equal(t, time.Minute, retryAfter)
	})

	t.Run("keys are independent", func(t *testing.T) {
		rl, _ := newTestLimiter(t, 1, time.Minute)

		ok, _ := rl.Allow("a")
		assert.True(t, ok)
		ok, _ = rl.Allow("b")
		assert.True(t, ok)
	})

	t.Run("window resets", func(t *testing.T) {
		rl, now := newTestLimiter(t, 1, time.Minute)

		ok, _ := rl.Allow("a")
		require.True(t, ok)
		ok, _ = rl.Allow("a")
		require.False(t, ok)

		*now = now.Add(time.Minute)
		ok, _ = rl.Allow("a")
		assert.True(t, ok)
	})

	t.Run("cleanup drops expired windows", func(t *testing.T) {
		rl, now := newTestLimiter(t, 1, time.Minute)

		rl.Allow("a")
		*now = now.Add(2 * time.Minute)
		rl.cleanup()

		rl.mu.Lock()
		defer rl.mu.Unlock()
		assert.Empty(t, rl.windows)
	})

	t.Run("stop is idempotent", func(t *testing.T) {
		rl, _ := newTestLimiter(t, 1, time.Minute)
		rl.Stop()
		rl.Stop()
	})
}

func TestRateLimiter_Middleware(t *testing.T) {
	rl, _ := newTestLimiter(t, 1, 30*time.Second)

	router := gin.New()
	router.POST("/sync", rl.Middleware(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/sync", nil))
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/sync", nil))
	assert.Equal(t, http.StatusTooManyRequests, rr.Code)
	assert.Equal(t, "30", rr.Header().Get("Retry-After"))
	assert.Contains(t, rr.Body.String(), "rate_limited")
}
