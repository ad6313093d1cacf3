package repository

import (
	"context"
	"slices"

	"github.com/cosmicwatch/cosmicwatch-go/internal/model"
)

// FileWatchlistRepository stores watchlist rows in a FileStore.
type FileWatchlistRepository struct {
	store *FileStore
}

// NewFileWatchlistRepository creates a new FileWatchlistRepository.
func NewFileWatchlistRepository(store *FileStore) *FileWatchlistRepository {
	return &FileWatchlistRepository{store: store}
}

// ListByUser returns the user's rows in insertion order.
func (r *FileWatchlistRepository) ListByUser(_ context.Context, userID string) ([]model.WatchlistItem, error) {
	items := []model.WatchlistItem{}
	r.store.view(func(doc *Document) {
		for _, w := range doc.Watchlist {
			if w.UserID == userID {
				items = append(items, w)
			}
		}
	})
	return items, nil
}

// Add inserts item unless the (user, asteroid) pair is already present.
func (r *FileWatchlistRepository) Add(_ context.Context, item *model.WatchlistItem) error {
	return r.store.update(func(doc *Document) error {
		for _, w := range doc.Watchlist {
			if w.UserID == item.UserID && w.AsteroidID == item.AsteroidID {
				return ErrWatchlistItemExists
			}
		}
		doc.Watchlist = append(doc.Watchlist, *item)
		return nil
	})
}

// Remove deletes the (user, asteroid) pair.
func (r *FileWatchlistRepository) Remove(_ context.Context, userID, asteroidID string) error {
	return r.store.update(func(doc *Document) error {
		for i, w := range doc.Watchlist {
			if w.UserID == userID && w.AsteroidID == asteroidID {
				doc.Watchlist = slices.Delete(doc.Watchlist, i, i+1)
				return nil
			}
		}
		return ErrWatchlistItemNotFound
	})
}
