package osuapi

import (
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// DefaultBaseURL is the osu! website all endpoints hang off
const DefaultBaseURL = "https://osu.ppy.sh"

// Client connects to the osu! api
type Client struct {
	config  Config
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
	log     *slog.Logger
}

// Config contains the config stuff of the api
type Config struct {
	APIKey       string     `mapstructure:"api_key"`
	BaseURL      string     `mapstructure:"base_url"`
	RateLimit    rate.Limit `mapstructure:"rate_limit"`
	Burst        int        `mapstructure:"burst"`
	ClientID     int        `mapstructure:"client_id"`
	ClientSecret string     `mapstructure:"client_secret"`
	RedirectURI  string     `mapstructure:"redirect_uri"`

	HTTPClient *http.Client `mapstructure:"-"`
	Logger     *slog.Logger `mapstructure:"-"`
}

// New creates a new api instance
func New(config Config) *Client {
	c := &Client{
		config:  config,
		baseURL: strings.TrimSuffix(config.BaseURL, "/"),
		http:    config.HTTPClient,
		log:     config.Logger,
	}
	if c.baseURL == "" {
		c.baseURL = DefaultBaseURL
	}
	if c.http == nil {
		c.http = &http.Client{Timeout: 10 * time.Second}
	}
	if c.log == nil {
		c.log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if config.RateLimit > 0 {
		burst := config.Burst
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(config.RateLimit, burst)
	}

	return c
}

// BaseURL returns the website root requests are sent to
func (c *Client) BaseURL() string {
	if c == nil {
		return DefaultBaseURL
	}
	return c.baseURL
}
