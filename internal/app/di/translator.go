// Package di provides dependency injection factories for creating application components.
package di

import (
	"time"

	redisv9 "github.com/redis/go-redis/v9"

	"mandi_backend/internal/feature/decision/usecase"
	"mandi_backend/internal/platform/cache"
	"mandi_backend/internal/platform/externalapi/translate"
	infrahttp "mandi_backend/internal/platform/http"
	"mandi_backend/internal/shared/ratelimiter"
)

const (
	// translateCacheTTL は翻訳結果のキャッシュ保持期間です。
	translateCacheTTL = 24 * time.Hour
	// translateBudgetLimit は1分あたりに許可する翻訳API呼び出し数です。
	translateBudgetLimit = 30
)

// NewTranslator creates a translate client wrapped with a Redis cache.
// rdbがnilの場合はキャッシュなしで動作します。
func NewTranslator(rdb *redisv9.Client) usecase.Translator {
	cfg := translate.LoadConfig()
	httpClient := infrahttp.NewHTTPClient(cfg.Timeout)
	client := translate.NewClient(cfg, httpClient)
	return cache.NewCachingTranslator(rdb, translateCacheTTL, client, "translate")
}

// NewTranslateBudget creates the non-blocking rate limiter guarding translate calls.
func NewTranslateBudget() *ratelimiter.RateLimiter {
	return ratelimiter.NewRateLimiter(translateBudgetLimit, time.Minute)
}
