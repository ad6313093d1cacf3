package service

import (
	"context"

	"github.com/cosmicwatch/cosmicwatch-go/internal/model"
	"github.com/cosmicwatch/cosmicwatch-go/internal/repository"
)

// UserRepository is implemented by the JSON file and MySQL user stores.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id string) (*model.User, error)
	UpdatePasswordHash(ctx context.Context, id, hash string) error
}

type WatchlistRepository interface {
	ListByUser(ctx context.Context, userID string) ([]model.WatchlistItem, error)
	Add(ctx context.Context, item *model.WatchlistItem) error
	Remove(ctx context.Context, userID, asteroidID string) error
}

type AlertRepository interface {
	ListByUser(ctx context.Context, userID string) ([]model.Alert, error)
	Create(ctx context.Context, alert *model.Alert) error
	GetByID(ctx context.Context, userID, id string) (*model.Alert, error)
	Update(ctx context.Context, alert *model.Alert) error
}

var (
	_ UserRepository      = (*repository.UserRepository)(nil)
	_ UserRepository      = (*repository.FileUserRepository)(nil)
	_ WatchlistRepository = (*repository.WatchlistRepository)(nil)
	_ WatchlistRepository = (*repository.FileWatchlistRepository)(nil)
	_ AlertRepository     = (*repository.AlertRepository)(nil)
	_ AlertRepository     = (*repository.FileAlertRepository)(nil)
)
