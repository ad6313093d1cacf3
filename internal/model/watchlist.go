package model

import "time"

// WatchlistItem records that a user follows an asteroid. (UserID, AsteroidID) is unique.
type WatchlistItem struct {
	UserID     string    `json:"userId"`
	AsteroidID string    `json:"asteroidId"`
	CreatedAt  time.Time `json:"createdAt"`
}

// WatchlistAddResponse is returned by POST /api/watchlist/{asteroidId}.
type WatchlistAddResponse struct {
	Success bool          `json:"success"`
	Item    WatchlistItem `json:"item"`
}

// SuccessResponse is a bare acknowledgement.
type SuccessResponse struct {
	Success bool `json:"success"`
}
