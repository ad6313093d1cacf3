package repository

import "errors"

var (
	ErrUserNotFound          = errors.New("user not found")
	ErrDuplicateEmail        = errors.New("email already exists")
	ErrWatchlistItemExists   = errors.New("asteroid already in watchlist")
	ErrWatchlistItemNotFound = errors.New("asteroid not in watchlist")
	ErrAlertNotFound         = errors.New("alert not found")
)
