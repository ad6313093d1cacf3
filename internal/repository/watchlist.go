package repository

import (
	"context"
	"database/sql"

	"github.com/cosmicwatch/cosmicwatch-go/internal/model"
)

// WatchlistRepository handles watchlist persistence in MySQL.
type WatchlistRepository struct {
	db *sql.DB
}

// NewWatchlistRepository creates a new WatchlistRepository.
func NewWatchlistRepository(db *sql.DB) *WatchlistRepository {
	return &WatchlistRepository{db: db}
}

// ListByUser returns the user's rows, oldest first.
func (r *WatchlistRepository) ListByUser(ctx context.Context, userID string) ([]model.WatchlistItem, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT user_id, asteroid_id, created_at FROM watchlist WHERE user_id = ? ORDER BY created_at ASC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []model.WatchlistItem{}
	for rows.Next() {
		var w model.WatchlistItem
		if err := rows.Scan(&w.UserID, &w.AsteroidID, &w.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, w)
	}
	return items, rows.Err()
}

// Add inserts item; the composite primary key rejects duplicates.
func (r *WatchlistRepository) Add(ctx context.Context, item *model.WatchlistItem) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO watchlist (user_id, asteroid_id, created_at) VALUES (?, ?, ?)`,
		item.UserID, item.AsteroidID, item.CreatedAt)
	if isDuplicateEntryError(err) {
		return ErrWatchlistItemExists
	}
	return err
}

// Remove deletes the (user, asteroid) pair.
func (r *WatchlistRepository) Remove(ctx context.Context, userID, asteroidID string) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM watchlist WHERE user_id = ? AND asteroid_id = ?`, userID, asteroidID)
	if err != nil {
		return err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrWatchlistItemNotFound
	}
	return nil
}
