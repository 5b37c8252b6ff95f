package main

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/logixshuvo/parcelhub/internal/auth"
	"github.com/logixshuvo/parcelhub/internal/config"
	"github.com/logixshuvo/parcelhub/internal/db"
	httpx "github.com/logixshuvo/parcelhub/internal/http"
	"github.com/logixshuvo/parcelhub/internal/http/middlewares"
	"github.com/logixshuvo/parcelhub/internal/observability"
	"github.com/logixshuvo/parcelhub/internal/payments"
	"github.com/logixshuvo/parcelhub/internal/ratelimit"
	"github.com/logixshuvo/parcelhub/internal/repo/postgres"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	// Load the config set up
	cfg := config.Load()

	// start up the observability logger
	log := observability.NewLogger(cfg.Env)

	if cfg.JWTSecret == "" {
		log.Error("ACCESS_TOKEN_SECRET is not set")
		os.Exit(1)
	}

	// database
	pool, err := db.NewPool(cfg.DBURL)

	if err != nil {
		log.Error("db connect failed", "err", err)
		os.Exit(1)
	}

	defer pool.Close()

	{
		ctx, cancel := config.WithTimeout(10 * time.Second)
		defer cancel()

		if err := db.EnsureSchema(ctx, pool); err != nil {
			log.Error("schema setup failed", "err", err)
			os.Exit(1)
		}

		if err := db.EnsureAdminUser(ctx, pool, cfg); err != nil {
			log.Error("admin seed failed", "err", err)
			os.Exit(1)
		}
	}

	// tracing is optional; without an endpoint we just skip it
	tracing := false

	if cfg.OTLPEndpoint != "" {
		ctx, cancel := config.WithTimeout(5 * time.Second)

		shutdownTracer, err := observability.InitTracer(ctx, "parcelhub", cfg.OTLPEndpoint)
		cancel()

		if err != nil {
			log.Warn("tracing disabled", "err", err)
		} else {
			tracing = true

			defer func() {
				ctx, cancel := config.WithTimeout(5 * time.Second)
				defer cancel()

				_ = shutdownTracer(ctx)
			}()
		}
	}

	// metrics
	registry := prometheus.NewRegistry()
	prom := observability.NewProm(registry)

	// rate limiter: redis when configured, else per-process fallback
	var limiter middlewares.Limiter

	if cfg.RedisAddr != "" {
		redisLimiter := ratelimit.NewRedisLimiter(ratelimit.RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		}, cfg.RateLimit, cfg.RateLimitWindow)

		ctx, cancel := config.WithTimeout(2 * time.Second)
		err := redisLimiter.Ping(ctx)
		cancel()

		if err != nil {
			log.Warn("redis unreachable, using in-memory rate limiter", "err", err)
			limiter = ratelimit.NewMemoryLimiter(cfg.RateLimit, cfg.RateLimitWindow)
		} else {
			defer redisLimiter.Close()
			limiter = redisLimiter
		}
	} else {
		limiter = ratelimit.NewMemoryLimiter(cfg.RateLimit, cfg.RateLimitWindow)
	}

	ttl := time.Duration(cfg.JWTAccessTTLMinutes) * time.Minute
	jwt := auth.NewManager(cfg.JWTSecret, ttl)

	ping := func() error {
		ctx, cancel := config.WithTimeout(1 * time.Second)
		defer cancel()

		return pool.Ping(ctx)
	}

	// wire up routers with the real stores
	router := httpx.NewRouter(httpx.Deps{
		Cfg: cfg,
		Log: log,
		JWT: jwt,

		Directory: postgres.NewUsersRepo(pool, prom),
		Ledger:    postgres.NewParcelsRepo(pool, prom),
		Reviews:   postgres.NewReviewsRepo(pool),
		Payments:  postgres.NewPaymentsRepo(pool),
		Gateway:   payments.NewStripeGateway(cfg.StripeSecretKey),

		Limiter:  limiter,
		Prom:     prom,
		Gatherer: registry,
		Ping:     ping,
		Tracing:  tracing,
	})

	// server set up
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	// start server using a concurrent go-routine driven anonymous function.

	go func() {
		log.Info("Server starting", "port", cfg.Port, "env", cfg.Env)
		err := srv.ListenAndServe()

		if err != nil && err != http.ErrServerClosed {
			log.Error("server failed", "err", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	log.Info("server shutting down")

	shutdownCh := make(chan struct{})

	go func() {
		defer close(shutdownCh)

		ctx, cancel := config.WithTimeout(10 * time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Error("graceful shutdown failed", "err", err)
		}
	}()

	select {
	case <-shutdownCh:
		log.Info("shutdown complete")

	case <-time.After(12 * time.Second):
		log.Error("shutdown timed out")
	}
}
