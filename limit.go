package main

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

const (
	visitorCleanupInterval = time.Minute
	visitorIdleTimeout     = 3 * time.Minute
)

// Based on https://www.alexedwards.net/blog/how-to-rate-limit-http-requests
type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type visitors struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	limit    rate.Limit
	burst    int
	now      func() time.Time
}

func newVisitors(limit rate.Limit, burst int) *visitors {
	return &visitors{
		visitors: make(map[string]*visitor),
		limit:    limit,
		burst:    burst,
		now:      time.Now,
	}
}

func (vs *visitors) get(key string) *rate.Limiter {
	vs.mu.Lock()
	defer vs.mu.Unlock()

	v, exists := vs.visitors[key]
	if !exists {
		limiter := rate.NewLimiter(vs.limit, vs.burst)
		vs.visitors[key] = &visitor{limiter, vs.now()}
		return limiter
	}
	v.lastSeen = vs.now()
	return v.limiter
}

func (vs *visitors) len() int {
	vs.mu.Lock()
	defer vs.mu.Unlock()
	return len(vs.visitors)
}

func (vs *visitors) cleanup(idle time.Duration) {
	vs.mu.Lock()
	defer vs.mu.Unlock()

	now := vs.now()
	for key, v := range vs.visitors {
		if now.Sub(v.lastSeen) > idle {
			delete(vs.visitors, key)
		}
	}
}

func cleanupVisitorsRoutine(ctx context.Context, all ...*visitors) error {
	ticker := time.NewTicker(visitorCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			for _, vs := range all {
				vs.cleanup(visitorIdleTimeout)
			}
		}
	}
}

// ipResolver finds the caller's address. X-Forwarded-For is only believed when the
// direct peer is one of the configured proxies.
type ipResolver struct {
	trusted []*net.IPNet
}

func newIPResolver(proxies []string) (*ipResolver, error) {
	r := &ipResolver{}
	for _, p := range proxies {
		if !strings.Contains(p, "/") {
			if ip := net.ParseIP(p); ip != nil && ip.To4() != nil {
				p += "/32"
			} else {
				p += "/128"
			}
		}
		_, cidr, err := net.ParseCIDR(p)
		if err != nil {
			return nil, fmt.Errorf("bad trusted proxy %q. %w", p, err)
		}
		r.trusted = append(r.trusted, cidr)
	}
	return r, nil
}

func (r *ipResolver) isTrusted(ip net.IP) bool {
	for _, cidr := range r.trusted {
		if cidr.Contains(ip) {
			return true
		}
	}
	return false
}

func (r *ipResolver) ip(c *gin.Context) string {
	peer, _, err := net.SplitHostPort(strings.TrimSpace(c.Request.RemoteAddr))
	if err != nil {
		peer = strings.TrimSpace(c.Request.RemoteAddr)
	}

	forwarded := c.GetHeader("X-Forwarded-For")
	peerIP := net.ParseIP(peer)
	if forwarded == "" || peerIP == nil || !r.isTrusted(peerIP) {
		return peer
	}

	ips := strings.Split(forwarded, ",")
	return strings.TrimSpace(ips[len(ips)-1])
}

func abortWithError(c *gin.Context, status int, msg string) {
	c.Header("Cache-Control", "no-store")
	c.AbortWithStatusJSON(status, gin.H{"error": msg})
}

func apiLimitIP(vs *visitors, ips *ipResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := ips.ip(c)
		if !vs.get(ip).Allow() {
			slog.Info("ip over rate limit", "ip", ip)
			apiRateLimitedIP.Inc()
			abortWithError(c, http.StatusTooManyRequests, http.StatusText(http.StatusTooManyRequests))
			return
		}
		c.Next()
	}
}

// apiLimitAuth limits signups per ip
func apiLimitAuth(vs *visitors, ips *ipResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := ips.ip(c)
		if !vs.get(ip).Allow() {
			slog.Info("ip over signup rate limit", "ip", ip)
			apiRateLimitedIP.Inc()
			abortWithError(c, http.StatusTooManyRequests, "too many signups, try again later")
			return
		}
		c.Next()
	}
}

// apiRmtLimit guards remote calls shared by every caller of the endpoint(s) it is mounted on
func apiRmtLimit(limit rate.Limit, burst int) gin.HandlerFunc {
	limiter := rate.NewLimiter(limit, burst)
	return func(c *gin.Context) {
		if !limiter.Allow() {
			apiRateLimitedRemote.Inc()
			abortWithError(c, http.StatusTooManyRequests, "remote rate limit reached")
			return
		}
		c.Next()
	}
}

func apiNoLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
	}
}
