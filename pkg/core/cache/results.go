package cache

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/msto63/khamseena/foundation/khamseena"
)

// ResultCache caches compile results by the SHA-256 of the source, so
// recompiling an unchanged file returns the earlier result
type ResultCache struct {
	cache  *Cache
	engine *khamseena.Engine
}

// compiled keeps the fatal error next to the result; both are cached
type compiled struct {
	result *khamseena.Result
	err    error
}

// NewResultCache wraps engine with a cache
func NewResultCache(engine *khamseena.Engine, cfg Config) *ResultCache {
	return &ResultCache{
		cache:  New(cfg),
		engine: engine,
	}
}

// Key returns the cache key for source
func Key(source string) string {
	sum := sha256.Sum256([]byte(source))
	return hex.EncodeToString(sum[:])
}

// Compile returns the cached result for source or compiles it. hit
// reports whether the result came from the cache.
func (rc *ResultCache) Compile(source string) (result *khamseena.Result, hit bool, err error) {
	key := Key(source)
	if val, ok := rc.cache.Get(key); ok {
		c := val.(compiled)
		return c.result, true, c.err
	}

	result, err = rc.engine.Compile(source)
	rc.cache.Set(key, compiled{result: result, err: err})
	return result, false, err
}

// Stats returns the hit statistics of the underlying cache
func (rc *ResultCache) Stats() (hits, misses int64, hitRate float64) {
	return rc.cache.Stats()
}
