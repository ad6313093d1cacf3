package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/cosmicwatch/cosmicwatch-go/internal/model"
	"github.com/cosmicwatch/cosmicwatch-go/internal/repository"
)

// WatchlistService manages the asteroids a user follows on the server.
type WatchlistService struct {
	repo WatchlistRepository
	now  func() time.Time
}

// NewWatchlistService creates a new WatchlistService.
func NewWatchlistService(repo WatchlistRepository) *WatchlistService {
	return &WatchlistService{repo: repo, now: time.Now}
}

// List returns the user's watchlist rows in insertion order.
func (s *WatchlistService) List(ctx context.Context, userID string) ([]model.WatchlistItem, error) {
	return s.repo.ListByUser(ctx, userID)
}

// Add follows asteroidID for userID.
func (s *WatchlistService) Add(ctx context.Context, userID, asteroidID string) (model.WatchlistItem, error) {
	asteroidID = strings.TrimSpace(asteroidID)
	if asteroidID == "" {
		return model.WatchlistItem{}, ErrMissingFields
	}

	item := model.WatchlistItem{
		UserID:     userID,
		AsteroidID: asteroidID,
		CreatedAt:  s.now().UTC(),
	}
	if err := s.repo.Add(ctx, &item); err != nil {
		if errors.Is(err, repository.ErrWatchlistItemExists) {
			return model.WatchlistItem{}, ErrAlreadyWatched
		}
		return model.WatchlistItem{}, err
	}
	return item, nil
}

// Remove unfollows asteroidID for userID. The id is trimmed the same way Add
// trims it.
func (s *WatchlistService) Remove(ctx context.Context, userID, asteroidID string) error {
	err := s.repo.Remove(ctx, userID, strings.TrimSpace(asteroidID))
	if errors.Is(err, repository.ErrWatchlistItemNotFound) {
		return ErrNotWatched
	}
	return err
}
