package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func TestRateLimiter_Allow(t *testing.T) {
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	rl := newRateLimiter(2, time.Minute)
	rl.now = func() time.Time { return now }

	require.True(t, rl.allow("u1"))
	require.True(t, rl.allow("u1"))
	require.False(t, rl.allow("u1"))

	// Independent keys get their own window.
	require.True(t, rl.allow("u2"))

	// Window expiry resets the counter.
	now = now.Add(2 * time.Minute)
	require.True(t, rl.allow("u1"))
}

func TestRateLimiter_EmptyKey(t *testing.T) {
	rl := newRateLimiter(10, time.Minute)
	require.False(t, rl.allow(""))
}

func TestRateLimitMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET("/q", func(c *gin.Context) {
		c.Set(UserIDKey, "user-1")
	}, RateLimitMiddleware(1, time.Minute), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/q", nil))
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/q", nil))
	require.Equal(t, http.StatusTooManyRequests, w.Code)
}
