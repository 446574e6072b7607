package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	apiRequestsBadAuth = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "api_requests_bad_auth",
			Help: "Number of api requests that failed on auth.",
		},
	)
	apiRateLimitedIP = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "api_rate_limited_ip",
			Help: "Number of api requests that were rate limited by ip.",
		},
	)
	apiRateLimitedKey = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "api_rate_limited_key",
			Help: "Number of api requests that were rate limited by api key.",
		},
	)
	apiRateLimitedRemote = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "api_rate_limited_remote",
			Help: "Number of api requests that were rejected to stay under the osu! rate limits.",
		},
	)
	apiCallFailed = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "api_call_failed",
			Help: "Number of otherwise failed api requests.",
		},
	)
	apiCallSuccess = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "api_call_success",
			Help: "Number of successful api requests.",
		},
	)
	apiCallCached = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "api_call_cached",
			Help: "Number of cached api requests.",
		},
	)
	usersRegistered = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "users_registered",
			Help: "Number registered users.",
		},
	)
	keysReissued = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "keys_reissued",
			Help: "Number of times known users signed in again to retrieve their key.",
		},
	)
	rmtRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "osu_api_requests_total",
			Help: "Requests sent to the osu! api, by status code and method.",
		},
		[]string{"code", "method"},
	)
	rmtDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "osu_api_request_duration_seconds",
			Help:    "Latency of requests sent to the osu! api.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"code", "method"},
	)
)

func metricsInit() {
	prometheus.MustRegister(apiRequestsBadAuth)
	prometheus.MustRegister(apiRateLimitedIP)
	prometheus.MustRegister(apiRateLimitedKey)
	prometheus.MustRegister(apiRateLimitedRemote)
	prometheus.MustRegister(apiCallFailed)
	prometheus.MustRegister(apiCallSuccess)
	prometheus.MustRegister(apiCallCached)
	prometheus.MustRegister(usersRegistered)
	prometheus.MustRegister(keysReissued)
	prometheus.MustRegister(rmtRequests)
	prometheus.MustRegister(rmtDuration)
}

// instrumentedTransport counts and times every round trip to the osu! api
func instrumentedTransport(next http.RoundTripper) http.RoundTripper {
	if next == nil {
		next = http.DefaultTransport
	}
	return promhttp.InstrumentRoundTripperCounter(rmtRequests,
		promhttp.InstrumentRoundTripperDuration(rmtDuration, next))
}

func promRouter() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	return router
}
