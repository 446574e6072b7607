package main

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

func TestVisitorsCleanup(t *testing.T) {
	now := time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)
	vs := newVisitors(1, 1)
	vs.now = func() time.Time { return now }

	first := vs.get("a")
	if vs.get("a") != first {
		t.Fatalf("limiter not reused for the same key")
	}
	vs.get("b")

	now = now.Add(2 * time.Minute)
	vs.get("b")
	now = now.Add(2 * time.Minute)
	vs.cleanup(visitorIdleTimeout)

	if vs.len() != 1 {
		t.Fatalf("expected only the recent visitor to survive, have %d", vs.len())
	}
	if vs.get("a") == first {
		t.Fatalf("idle visitor was not dropped")
	}
}

func TestIPResolver(t *testing.T) {
	ips, err := newIPResolver([]string{"192.0.2.1", "10.0.0.0/8"})
	if err != nil {
		t.Fatalf("newIPResolver: %v", err)
	}

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Request.Header.Set("X-Forwarded-For", "172.16.0.1, 172.16.0.2")

	if ip := ips.ip(c); ip != "172.16.0.2" {
		t.Fatalf("ip behind trusted proxy = %q", ip)
	}

	c.Request.Header.Del("X-Forwarded-For")
	if ip := ips.ip(c); ip != "192.0.2.1" {
		t.Fatalf("ip without header = %q", ip)
	}

	c.Request.RemoteAddr = "10.1.2.3:4567"
	c.Request.Header.Set("X-Forwarded-For", "172.16.0.9")
	if ip := ips.ip(c); ip != "172.16.0.9" {
		t.Fatalf("ip behind trusted cidr = %q", ip)
	}

	c.Request.RemoteAddr = "203.0.113.7:1234"
	if ip := ips.ip(c); ip != "203.0.113.7" {
		t.Fatalf("untrusted peer could pick its address: %q", ip)
	}

	if _, err := newIPResolver([]string{"not-an-ip"}); err == nil {
		t.Fatalf("bad proxy accepted")
	}
}

func limitedRouter(handlers ...gin.HandlerFunc) *gin.Engine {
	router := gin.New()
	handlers = append(handlers, func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	router.GET("/", handlers...)
	return router
}

func get(router http.Handler, ip string) int {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Forwarded-For", ip)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w.Code
}

func trustingResolver(t *testing.T) *ipResolver {
	t.Helper()
	ips, err := newIPResolver([]string{"192.0.2.1"})
	if err != nil {
		t.Fatalf("newIPResolver: %v", err)
	}
	return ips
}

func TestApiLimitIP(t *testing.T) {
	router := limitedRouter(apiLimitIP(newVisitors(rate.Every(time.Hour), 1), trustingResolver(t)))

	if code := get(router, "1.1.1.1"); code != http.StatusOK {
		t.Fatalf("first request: %d", code)
	}
	if code := get(router, "1.1.1.1"); code != http.StatusTooManyRequests {
		t.Fatalf("second request: %d", code)
	}
	if code := get(router, "2.2.2.2"); code != http.StatusOK {
		t.Fatalf("other ip: %d", code)
	}
}

func TestApiRmtLimitIsShared(t *testing.T) {
	router := limitedRouter(apiRmtLimit(rate.Every(time.Hour), 1))

	if code := get(router, "1.1.1.1"); code != http.StatusOK {
		t.Fatalf("first request: %d", code)
	}
	if code := get(router, "2.2.2.2"); code != http.StatusTooManyRequests {
		t.Fatalf("remote limit should apply across callers, got %d", code)
	}
}

func TestApiLimitIPIgnoresSpoofedHeader(t *testing.T) {
	ips, err := newIPResolver(nil)
	if err != nil {
		t.Fatalf("newIPResolver: %v", err)
	}
	router := limitedRouter(apiLimitIP(newVisitors(rate.Every(time.Hour), 1), ips))

	if code := get(router, "1.1.1.1"); code != http.StatusOK {
		t.Fatalf("first request: %d", code)
	}
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Forwarded-For", "9.9.9.9")
	router.ServeHTTP(w, req)
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("rotating X-Forwarded-For bypassed the limit: %d", w.Code)
	}
	if w.Header().Get("Cache-Control") != "no-store" {
		t.Fatalf("limited response cache-control = %q", w.Header().Get("Cache-Control"))
	}
}
