package main

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"osutools/osuapi"
)

type databaseConfig struct {
	Driver string `mapstructure:"driver"`
	Dsn    string `mapstructure:"dsn"`
}

type endpointConfig struct {
	Handler     string `mapstructure:"handler"`
	CachePolicy string `mapstructure:"cache"`
}

type authServerConfig struct {
	Address    string `mapstructure:"address"`
	EnableAuth bool   `mapstructure:"enable_auth"`
}

type promServerConfig struct {
	Address string `mapstructure:"address"`
}

type cacheConfig struct {
	Address string        `mapstructure:"address"`
	TTL     time.Duration `mapstructure:"ttl"`
}

type apiserverConfig struct {
	Address        string           `mapstructure:"address"`
	AllowedOrigins []string         `mapstructure:"allowed_origins"`
	Endpoints      []endpointConfig `mapstructure:"endpoint"`
}

type config struct {
	Database   databaseConfig   `mapstructure:"database"`
	APIConfig  osuapi.Config    `mapstructure:"api"`
	APIServer  apiserverConfig  `mapstructure:"apiserver"`
	Auth       authServerConfig `mapstructure:"auth"`
	PromServer promServerConfig `mapstructure:"prom"`
	Cache      cacheConfig      `mapstructure:"cache"`

	// peers allowed to set X-Forwarded-For, as IPs or CIDRs
	TrustedProxies []string `mapstructure:"trusted_proxies"`
}

func getConfig() (config, error) {
	// .env is optional, real environment variables win over it
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return config{}, err
	}

	return loadConfig(viper.New(), "/etc/osuproxy/", "$HOME/.osuproxy/", ".")
}

func loadConfig(v *viper.Viper, paths ...string) (config, error) {
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetConfigName("config")
	v.SetConfigType("toml")
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	v.SetDefault("database.driver", "sqlite3")
	v.SetDefault("database.dsn", "osuproxy.db")
	v.SetDefault("api.rate_limit", 0)
	v.SetDefault("api.api_key", "")
	v.SetDefault("apiserver.address", ":8080")
	v.SetDefault("auth.address", ":8081")
	v.SetDefault("auth.enable_auth", false)
	v.SetDefault("prom.address", ":9090")
	v.SetDefault("cache.address", "")
	v.SetDefault("cache.ttl", 7*24*time.Hour)
	v.SetDefault("trusted_proxies", []string{})

	var cfg config

	if err := v.ReadInConfig(); err != nil {
		return cfg, err
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, err
	}

	return cfg, nil
}
