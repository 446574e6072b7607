package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

// responseCache is the part of the redis client the cache middleware needs
type responseCache interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

func setupCache(ctx context.Context, cfg cacheConfig) (*redis.Client, error) {
	if cfg.Address == "" {
		return nil, nil
	}

	cache := redis.NewClient(&redis.Options{
		Addr:        cfg.Address,
		DialTimeout: time.Second,
	})
	if err := cache.Ping(ctx).Err(); err != nil {
		cache.Close()
		return nil, fmt.Errorf("couldn't connect to redis at %s. %w", cfg.Address, err)
	}

	return cache, nil
}

func paramsToString(params gin.Params) string {
	vals := make([]string, len(params))
	for i, param := range params {
		vals[i] = param.Value
	}

	return strings.Join(vals, "/")
}

func cacheKey(handler rmtHandler, c *gin.Context) string {
	key := handler.name + "-" + paramsToString(c.Params)
	if q := c.Request.URL.Query(); len(q) > 0 {
		// Encode sorts by key so equivalent queries share an entry
		key += "?" + q.Encode()
	}
	return key
}

func apiCacheNoCache() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
	}
}

func apiCache(cache responseCache, handler rmtHandler, ttl time.Duration) gin.HandlerFunc {
	maxAge := fmt.Sprintf("public, max-age=%d", int(ttl.Seconds()))

	return func(c *gin.Context) {
		key := cacheKey(handler, c)
		ctx := c.Request.Context()

		val, err := cache.Get(ctx, key).Bytes()
		if err == nil {
			slog.Debug("loaded from cache", "key", key)
			apiCallCached.Inc()
			apiCallSuccess.Inc()
			c.Header("Cache-Control", maxAge)
			c.Data(http.StatusOK, "application/json; charset=utf-8", val)
			c.Abort()
			return
		}
		if !errors.Is(err, redis.Nil) {
			slog.Warn("cache lookup failed", "key", key, "err", err)
		}

		// headers are sent with the body, error responses override this
		c.Header("Cache-Control", maxAge)
		c.Next()

		valueInterface, exists := c.Get("value")
		if !exists {
			return
		}

		value, ok := valueInterface.([]byte)
		if !ok {
			slog.Error("cached value has the wrong type", "key", key)
			return
		}

		// Concurrent misses may both write, the values are identical
		if err := cache.Set(ctx, key, value, ttl).Err(); err != nil {
			slog.Warn("failed to cache", "key", key, "err", err)
			return
		}
		slog.Debug("cached", "key", key)
	}
}
