package ratelimiter

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

// TestAllow_WithinLimit は上限以内の操作がすべて許可されることを確認します。
func TestAllow_WithinLimit(t *testing.T) {
	rl := NewRateLimiter(3, time.Minute)

	for i := 0; i < 3; i++ {
		assert.True(t, rl.Allow("10.0.0.1"), "request %d should be allowed", i+1)
	}
	assert.False(t, rl.Allow("10.0.0.1"), "request over the limit should be denied")
}

// TestAllow_PerKey はキーごとに独立したウィンドウを持つことを確認します。
func TestAllow_PerKey(t *testing.T) {
	rl := NewRateLimiter(1, time.Minute)

	assert.True(t, rl.Allow("10.0.0.1"))
	assert.False(t, rl.Allow("10.0.0.1"))

	// 別キーは別ウィンドウ
	assert.True(t, rl.Allow("10.0.0.2"))
}

// TestAllow_WindowReset はインターバル経過後にカウントがリセットされることを確認します。
func TestAllow_WindowReset(t *testing.T) {
	rl := NewRateLimiter(1, 20*time.Millisecond)

	assert.True(t, rl.Allow("10.0.0.1"))
	assert.False(t, rl.Allow("10.0.0.1"))

	time.Sleep(25 * time.Millisecond)
	assert.True(t, rl.Allow("10.0.0.1"), "window should reset after the interval")
}

// TestMiddleware は上限超過時に429を返すことを確認します。
func TestMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rl := NewRateLimiter(2, time.Minute)

	r := gin.New()
	r.POST("/login", rl.Middleware(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	send := func() int {
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.RemoteAddr = "10.0.0.1:50000"
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, send())
	assert.Equal(t, http.StatusOK, send())
	assert.Equal(t, http.StatusTooManyRequests, send())
}
