package main

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"osutools/osuapi"
)

const (
	ipRate        = 4
	ipBurst       = 8
	keyRate       = 2
	keyBurst      = 1
	globalRmtRate = 10
)

// proxy holds everything the api and signup servers share
type proxy struct {
	db     *sql.DB
	cache  responseCache // nil disables caching
	client *osuapi.Client
	cfg    config

	ips            *ipResolver
	ipVisitors     *visitors
	keyVisitors    *visitors
	signupVisitors *visitors
}

func newProxy(db *sql.DB, cache responseCache, client *osuapi.Client, cfg config) (*proxy, error) {
	ips, err := newIPResolver(cfg.TrustedProxies)
	if err != nil {
		return nil, err
	}

	return &proxy{
		db:             db,
		cache:          cache,
		client:         client,
		cfg:            cfg,
		ips:            ips,
		ipVisitors:     newVisitors(ipRate, ipBurst),
		keyVisitors:    newVisitors(keyRate, keyBurst),
		signupVisitors: newVisitors(rate.Every(signupInterval), 1),
	}, nil
}

// keyPrefix is enough of a key to tell callers apart in logs without leaking it
func keyPrefix(key string) string {
	if len(key) <= 6 {
		return "***"
	}
	return key[:6] + "..."
}

func (p *proxy) apiAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		apiKey := c.GetHeader("api-key")
		if apiKey == "" {
			apiRequestsBadAuth.Inc()
			abortWithError(c, http.StatusUnauthorized, "api key required")
			return
		}

		if !p.keyVisitors.get(apiKey).Allow() {
			slog.Info("api key over rate limit", "key_prefix", keyPrefix(apiKey))
			apiRateLimitedKey.Inc()
			abortWithError(c, http.StatusTooManyRequests, http.StatusText(http.StatusTooManyRequests))
			return
		}

		owner, err := keyToUser(apiKey, p.db)
		if errors.Is(err, errKeyNotFound) {
			apiRequestsBadAuth.Inc()
			abortWithError(c, http.StatusUnauthorized, "invalid api key")
			return
		}
		if err != nil {
			slog.Error("key lookup failed", "err", err)
			abortWithError(c, http.StatusInternalServerError, "couldn't check api key")
			return
		}

		c.Set("owner", owner)

		c.Next()
	}
}

// errorStatus maps errors of the osu! client onto the status the proxy answers with
func errorStatus(err error) int {
	var apiErr *osuapi.APIError
	switch {
	case errors.Is(err, osuapi.ErrUserNotFound),
		errors.Is(err, osuapi.ErrMapNotFound),
		errors.Is(err, osuapi.ErrMatchNotFound),
		errors.Is(err, osuapi.ErrReplayNotFound):
		return http.StatusNotFound
	case errors.Is(err, errBadParam),
		errors.Is(err, osuapi.ErrInvalidMods),
		errors.Is(err, osuapi.ErrNoUser):
		return http.StatusBadRequest
	case errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusTooManyRequests:
		return http.StatusTooManyRequests
	}
	return http.StatusBadGateway
}

func (p *proxy) apiHandler(handler rmtHandler) gin.HandlerFunc {
	return func(c *gin.Context) {
		val, err := handler.fetch(c, p.client)
		if err != nil {
			status := errorStatus(err)
			if status == http.StatusBadGateway {
				slog.Warn("remote call failed", "endpoint", handler.name, "err", err)
			}
			apiCallFailed.Inc()
			abortWithError(c, status, err.Error())
			return
		}

		body, err := json.Marshal(val)
		if err != nil {
			slog.Error("couldn't encode response", "endpoint", handler.name, "err", err)
			apiCallFailed.Inc()
			abortWithError(c, http.StatusInternalServerError, "couldn't encode response")
			return
		}

		c.Set("value", body)
		c.Data(http.StatusOK, "application/json; charset=utf-8", body)
		apiCallSuccess.Inc()
	}
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods: []string{http.MethodGet, http.MethodOptions},
		AllowHeaders: []string{"api-key"},
	}
	for _, o := range origins {
		if o == "*" {
			cfg.AllowAllOrigins = true
			return cfg
		}
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	return cfg
}

func (p *proxy) apiRouter() (*gin.Engine, error) {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	// authentication and local api-wide rate limits
	router.Use(cors.New(corsConfig(p.cfg.APIServer.AllowedOrigins)))
	router.Use(apiLimitIP(p.ipVisitors, p.ips))
	router.Use(p.apiAuth())

	// Remote api total aggregate rate limits
	globalRmtLimitHandler := apiRmtLimit(globalRmtRate, globalRmtRate)

	handlers := handlersMap()
	for _, handlerCFG := range p.cfg.APIServer.Endpoints {
		handler, exists := handlers[handlerCFG.Handler]
		if !exists {
			return nil, fmt.Errorf("endpoint %q does not exist", handlerCFG.Handler)
		}

		var cacheHandler gin.HandlerFunc
		switch {
		case handlerCFG.CachePolicy == "always" && p.cache != nil:
			cacheHandler = apiCache(p.cache, handler, p.cfg.Cache.TTL)
		case handlerCFG.CachePolicy == "always":
			slog.Warn("no cache configured, serving uncached", "endpoint", handler.name)
			cacheHandler = apiCacheNoCache()
		case handlerCFG.CachePolicy == "" || handlerCFG.CachePolicy == "never":
			cacheHandler = apiCacheNoCache()
		default:
			return nil, fmt.Errorf("unknown cache policy %q for endpoint %q", handlerCFG.CachePolicy, handler.name)
		}

		// Remote endpoint specific rate limits
		var rmtLimitHandler gin.HandlerFunc
		if handler.rmtLimit != nil {
			rmtLimitHandler = apiRmtLimit(*handler.rmtLimit, 1)
		} else {
			rmtLimitHandler = apiNoLimit()
		}

		slog.Info("using endpoint", "handler", handler.name, "path", handler.lclEndpoint, "cache", handlerCFG.CachePolicy)
		router.GET(handler.lclEndpoint, cacheHandler, rmtLimitHandler, globalRmtLimitHandler, p.apiHandler(handler))
	}

	return router, nil
}
