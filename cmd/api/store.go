package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cosmicwatch/cosmicwatch-go/internal/config"
	"github.com/cosmicwatch/cosmicwatch-go/internal/repository"
	"github.com/cosmicwatch/cosmicwatch-go/internal/service"
)

type repositories struct {
	users     service.UserRepository
	watchlist service.WatchlistRepository
	alerts    service.AlertRepository
	close     func() error
}

// openRepositories wires the storage driver named by STORE_DRIVER.
func openRepositories(ctx context.Context, cfg config.Config) (repositories, error) {
	switch cfg.StoreDriver {
	case "json", "":
		store, err := repository.OpenFileStore(cfg.DataFile)
		if err != nil {
			return repositories{}, err
		}
		slog.Info("using JSON file store", "path", store.Path())
		return repositories{
			users:     repository.NewFileUserRepository(store),
			watchlist: repository.NewFileWatchlistRepository(store),
			alerts:    repository.NewFileAlertRepository(store),
			close:     func() error { return nil },
		}, nil

	case "mysql":
		db, err := repository.NewDB(cfg.DatabaseDSN)
		if err != nil {
			return repositories{}, err
		}
		if err := repository.Migrate(ctx, db); err != nil {
			db.Close()
			return repositories{}, err
		}
		slog.Info("using MySQL store")
		return repositories{
			users:     repository.NewUserRepository(db),
			watchlist: repository.NewWatchlistRepository(db),
			alerts:    repository.NewAlertRepository(db),
			close:     db.Close,
		}, nil

	default:
		return repositories{}, fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
	}
}
