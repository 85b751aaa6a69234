package ratelimiter

import (
	"log/slog"
	"sync"
	"time"
)

// RateLimiterInterface は、外部API呼び出しなどの操作の頻度を制限するインターフェースです。
type RateLimiterInterface interface {
	Allow() bool
}

// RateLimiterは、外部API呼び出しの頻度を制限します。
// 上限に達した場合は待機せず拒否し、呼び出し側がフォールバックします。
type RateLimiter struct {
	mu        sync.Mutex
	limit     int           // intervalあたりの上限
	interval  time.Duration // どの単位でリセットするか
	count     int
	lastReset time.Time
}

// NewRateLimiterは新しいRateLimiterのインスタンスを生成します。
func NewRateLimiter(limit int, interval time.Duration) *RateLimiter {
	return &RateLimiter{
		limit:     limit,
		interval:  interval,
		lastReset: time.Now(),
	}
}

// Allow はレートリミットの上限内であればカウントを進めてtrueを返します。
// 上限に達している場合はfalseを返します。ブロックはしません。
func (rl *RateLimiter) Allow() bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	// interval を過ぎたらカウントリセット
	if now.Sub(rl.lastReset) >= rl.interval {
		rl.count = 0
		rl.lastReset = now
	}

	if rl.count >= rl.limit {
		slog.Warn("rate limit hit, rejecting call", "limit", rl.limit, "interval", rl.interval)
		return false
	}
	rl.count++
	return true
}
