// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"mandi_backend/internal/feature/decision/usecase"
)

// CachingTranslator decorates a Translator with Redis caching.
// Translations of the same label/explanation pair are stable, so cache hits
// skip the external API entirely. All cache operations are best effort.
type CachingTranslator struct {
	inner     usecase.Translator
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

var _ usecase.Translator = (*CachingTranslator)(nil)

// cachedPair is the cached value for one translated label/explanation pair.
type cachedPair struct {
	Label       string `json:"label"`
	Explanation string `json:"explanation"`
}

// NewCachingTranslator decorates a Translator with Redis caching.
// If ttl is 0, it defaults to 24 hours. If namespace is empty, it uses "translate".
func NewCachingTranslator(rdb *redis.Client, ttl time.Duration, inner usecase.Translator, namespace string) *CachingTranslator {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	if namespace == "" {
		namespace = "translate"
	}
	return &CachingTranslator{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// TranslatePair translates a pair, checking the cache first then falling back
// to the inner translator.
func (c *CachingTranslator) TranslatePair(ctx context.Context, label, explanation, targetLang string) (string, string, error) {
	// Bypass cache if Redis is not configured
	if c.rdb == nil {
		return c.inner.TranslatePair(ctx, label, explanation, targetLang)
	}

	key := c.cacheKey(label, explanation, targetLang)

	// 1) Check cache
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var pair cachedPair
		if err := json.Unmarshal(b, &pair); err == nil {
			return pair.Label, pair.Explanation, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	// 2) Fallback to the external API
	tl, te, err := c.inner.TranslatePair(ctx, label, explanation, targetLang)
	if err != nil {
		return "", "", err
	}

	// 3) Store in cache (best effort)
	if b, err := json.Marshal(cachedPair{Label: tl, Explanation: te}); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}

	return tl, te, nil
}

// cacheKey generates a cache key for one pair and target language.
// The pair is hashed because explanations contain spaces and punctuation.
func (c *CachingTranslator) cacheKey(label, explanation, targetLang string) string {
	sum := sha256.Sum256([]byte(label + "\x00" + explanation))
	return fmt.Sprintf("%s:%s:%s", c.namespace, targetLang, hex.EncodeToString(sum[:8]))
}
