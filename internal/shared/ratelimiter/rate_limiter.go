package ratelimiter

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// RateLimiterは、固定ウィンドウ方式でキーごとの操作頻度を制限します。
// 認証エンドポイントへのブルートフォースを抑止するために使用します。
type RateLimiter struct {
	limit    int           // ウィンドウあたりの上限
	interval time.Duration // どの単位でリセットするか

	mu      sync.Mutex
	windows map[string]*window // TODO: evict entries idle for more than one interval
}

type window struct {
	count     int
	lastReset time.Time
}

// NewRateLimiterは新しいRateLimiterのインスタンスを生成します。
func NewRateLimiter(limit int, interval time.Duration) *RateLimiter {
	return &RateLimiter{
		limit:    limit,
		interval: interval,
		windows:  make(map[string]*window),
	}
}

// Allowはキーに対する操作が上限内かどうかを返します。
// HTTPハンドラから呼ばれるため、待機せず即座に判定します。
func (rl *RateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	w, ok := rl.windows[key]
	if !ok {
		w = &window{lastReset: now}
		rl.windows[key] = w
	}

	// interval を過ぎたらカウントリセット
	if now.Sub(w.lastReset) >= rl.interval {
		w.count = 0
		w.lastReset = now
	}

	w.count++
	return w.count <= rl.limit
}

// Middleware はクライアントIPをキーとするGinミドルウェアを返します。
// 上限を超えたリクエストには429を返します。
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.Allow(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many requests"})
			return
		}
		c.Next()
	}
}
