package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/geocoder89/dashhub/internal/auth"
	"github.com/geocoder89/dashhub/internal/config"
	"github.com/geocoder89/dashhub/internal/db"
	httpx "github.com/geocoder89/dashhub/internal/http"
	"github.com/geocoder89/dashhub/internal/observability"
	"github.com/geocoder89/dashhub/internal/repo"
	memoryrepo "github.com/geocoder89/dashhub/internal/repo/memory"
	mongorepo "github.com/geocoder89/dashhub/internal/repo/mongo"
	postgresrepo "github.com/geocoder89/dashhub/internal/repo/postgres"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func main() {
	// Load the config set up
	cfg, err := config.Load()

	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	// start up the observability logger
	log := observability.NewLogger(cfg.Env)

	if cfg.UsingDevSecret() {
		log.Warn("JWT_SECRET not set, using insecure dev secret")
	}

	// optional tracing
	tracing := cfg.OTLPEndpoint != ""

	if tracing {
		shutdownTracer, err := observability.InitTracer(context.Background(), "dashhub", cfg.OTLPEndpoint)

		if err != nil {
			log.Error("tracer init failed", "err", err)
			os.Exit(1)
		}

		defer func() {
			ctx, cancel := config.WithTimeout(5 * time.Second)
			defer cancel()
			_ = shutdownTracer(ctx)
		}()
	}

	// metrics registry
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	prom := observability.NewProm(reg)

	// pick the store driver
	store, closeStore, err := buildStore(cfg, log)

	if err != nil {
		log.Error("store init failed", "db_type", cfg.DBType, "err", err)
		os.Exit(1)
	}
	defer closeStore()

	instrumented := repo.NewInstrumentedStore(store, prom)

	// seed the admin account if configured
	seedCtx, cancelSeed := config.WithTimeout(5 * time.Second)

	err = db.EnsureAdminUser(seedCtx, instrumented, cfg)

	cancelSeed()

	if err != nil {
		log.Error("admin seed failed", "err", err)
		os.Exit(1)
	}

	jwtManager := auth.NewManager(cfg.JWTSecret, cfg.TokenTTL)

	// set up router with everything injected
	router := httpx.NewRouter(httpx.RouterDeps{
		Env:     cfg.Env,
		Log:     log,
		Store:   instrumented,
		JWT:     jwtManager,
		Prom:    prom,
		Metrics: reg,
		Tracing: tracing,
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
		log.Info("Server starting", "port", cfg.Port, "env", cfg.Env, "db_type", cfg.DBType)
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

		err := srv.Shutdown(ctx)

		if err != nil {
			log.Error("graceful shutdown failed", "err", err)

			return
		}
	}()

	select {
	case <-shutdownCh:
		log.Info("shutdown complete")

	case <-time.After(12 * time.Second):
		log.Error("shutdown timed out")
	}
}

// buildStore wires the configured backend. An empty DB_TYPE falls back to
// the in-memory store in dev only; everything else must name a real driver.
func buildStore(cfg config.Config, log *slog.Logger) (repo.UserStore, func(), error) {
	switch cfg.DBType {
	case "mongo":
		client, err := db.NewMongoClient(cfg.MongoURL)
		if err != nil {
			return nil, nil, err
		}

		users := mongorepo.NewUsersRepo(client.Database(cfg.MongoDB))

		ctx, cancel := config.WithTimeout(5 * time.Second)
		defer cancel()

		if err := users.EnsureIndexes(ctx); err != nil {
			return nil, nil, err
		}

		closeFn := func() {
			ctx, cancel := config.WithTimeout(5 * time.Second)
			defer cancel()
			_ = client.Disconnect(ctx)
		}

		return users, closeFn, nil

	case "postgres":
		if err := db.RunMigrations(cfg.PostgresURL); err != nil {
			return nil, nil, err
		}

		pool, err := db.NewPool(cfg.PostgresURL)
		if err != nil {
			return nil, nil, err
		}

		return postgresrepo.NewUsersRepo(pool), pool.Close, nil

	case "":
		if cfg.Env != "dev" {
			return nil, nil, fmt.Errorf("DB_TYPE must be set outside dev")
		}

		log.Info("no DB_TYPE set, using in-memory store")

		return memoryrepo.NewUsersRepo(), func() {}, nil

	default:
		return nil, nil, fmt.Errorf("unsupported DB_TYPE %q", cfg.DBType)
	}
}
