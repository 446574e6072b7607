package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"osutools/osuapi"
)

const shutdownTimeout = 10 * time.Second

func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	if err := run(); err != nil {
		slog.Error("proxy stopped", "err", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := getConfig()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	metricsInit()

	db, err := openDatabase(cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	if n, err := userCount(db); err == nil {
		usersRegistered.Set(float64(n))
	} else {
		slog.Warn("couldn't count users", "err", err)
	}

	// a nil *redis.Client must not end up inside the interface
	var cache responseCache
	redisClient, err := setupCache(ctx, cfg.Cache)
	if err != nil {
		return err
	}
	if redisClient != nil {
		defer redisClient.Close()
		cache = redisClient
	}

	apiCfg := cfg.APIConfig
	apiCfg.HTTPClient = &http.Client{Timeout: 10 * time.Second, Transport: instrumentedTransport(nil)}
	apiCfg.Logger = slog.Default()
	client := osuapi.New(apiCfg)

	p, err := newProxy(db, cache, client, cfg)
	if err != nil {
		return err
	}

	apiRouter, err := p.apiRouter()
	if err != nil {
		return err
	}
	authRouter, err := p.authRouter()
	if err != nil {
		return err
	}

	servers := []*http.Server{{Addr: cfg.APIServer.Address, Handler: apiRouter}}
	if cfg.Auth.Address != "" {
		servers = append(servers, &http.Server{Addr: cfg.Auth.Address, Handler: authRouter})
	}
	if cfg.PromServer.Address != "" {
		servers = append(servers, &http.Server{Addr: cfg.PromServer.Address, Handler: promRouter()})
	}

	g, gCtx := errgroup.WithContext(ctx)
	for _, srv := range servers {
		srv := srv
		g.Go(func() error {
			slog.Info("listening", "address", srv.Addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
	}

	g.Go(func() error {
		return cleanupVisitorsRoutine(gCtx, p.ipVisitors, p.keyVisitors, p.signupVisitors)
	})

	g.Go(func() error {
		<-gCtx.Done()
		slog.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		var errs []error
		for _, srv := range servers {
			if err := srv.Shutdown(shutdownCtx); err != nil {
				errs = append(errs, err)
			}
		}
		return errors.Join(errs...)
	})

	return g.Wait()
}
