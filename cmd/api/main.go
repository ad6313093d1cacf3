package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/cosmicwatch/cosmicwatch-go/internal/config"
	"github.com/cosmicwatch/cosmicwatch-go/internal/crypto"
	"github.com/cosmicwatch/cosmicwatch-go/internal/handler"
	"github.com/cosmicwatch/cosmicwatch-go/internal/metrics"
	"github.com/cosmicwatch/cosmicwatch-go/internal/middleware"
	"github.com/cosmicwatch/cosmicwatch-go/internal/neo"
	"github.com/cosmicwatch/cosmicwatch-go/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file found, using environment variables")
	}

	cfg := config.Load()
	logger := cfg.NewLogger()
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		slog.Error("server exited", "error", err)
		stop()
		os.Exit(1)
	}
}

// openStore is swapped in tests.
var openStore = openRepositories

// run serves the API until ctx is done or the listener fails. The store is
// closed on every return path.
func run(ctx context.Context, cfg config.Config, logger *slog.Logger) (err error) {
	repos, err := openStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("opening %s store: %w", cfg.StoreDriver, err)
	}
	defer func() {
		if cerr := repos.close(); cerr != nil {
			slog.Error("closing store failed", "error", cerr)
			err = errors.Join(err, cerr)
		}
	}()

	tokens := crypto.NewTokenIssuer(cfg.JWTSecret, cfg.JWTExpiry)
	authService := service.NewAuthService(repos.users, crypto.NewHasher(crypto.DefaultHashParams()), tokens)
	watchlistService := service.NewWatchlistService(repos.watchlist)
	alertService := service.NewAlertService(repos.alerts)

	feedMetrics := metrics.New()
	live := neo.NewLiveSource(cfg.Neo.BaseURL, cfg.Neo.APIKey, &http.Client{Timeout: cfg.Neo.Timeout})
	neoClient := neo.NewClient(
		neo.NewSource(cfg.Neo.Source, live),
		neo.WithCache(neo.NewCache(cfg.Neo.CacheTTL)),
		neo.WithLogger(logger.With("component", "neo")),
		neo.WithRecorder(feedMetrics),
	)

	router := handler.NewRouter(handler.RouterConfig{
		Auth:        handler.NewAuthHandler(authService),
		Watchlist:   handler.NewWatchlistHandler(watchlistService),
		Alerts:      handler.NewAlertHandler(alertService),
		Neo:         handler.NewNeoHandler(neoClient),
		Tokens:      tokens,
		Logger:      logger,
		AuthLimiter: middleware.RateLimit(ctx, 5, 10),
		Metrics:     feedMetrics.Handler(),
		CORSOrigins: cfg.CORSOrigins,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		slog.Info("server starting", "port", cfg.Port, "env", cfg.Env, "store", cfg.StoreDriver, "neo_source", cfg.Neo.Source)
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		return fmt.Errorf("serving: %w", err)
	case <-ctx.Done():
	}

	slog.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}

	slog.Info("server stopped")
	return nil
}
