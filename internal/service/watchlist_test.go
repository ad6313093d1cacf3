package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cosmicwatch/cosmicwatch-go/internal/repository"
)

func TestWatchlistService(t *testing.T) {
	svc := NewWatchlistService(repository.NewFileWatchlistRepository(openTestStore(t)))
	ctx := context.Background()

	item, err := svc.Add(ctx, "u1", "2142257")
	require.NoError(t, err)
	assert.Equal(t, "u1", item.UserID)
	assert.Equal(t, "2142257", item.AsteroidID)
	assert.False(t, item.CreatedAt.IsZero())

	_, err = svc.Add(ctx, "u1", "2142257")
	assert.ErrorIs(t, err, ErrAlreadyWatched)

	// Another user may follow the same asteroid.
	_, err = svc.Add(ctx, "u2", "2142257")
	require.NoError(t, err)

	_, err = svc.Add(ctx, "u1", "  ")
	assert.ErrorIs(t, err, ErrMissingFields)

	items, err := svc.List(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, items, 1)

	require.NoError(t, svc.Remove(ctx, "u1", "2142257"))
	assert.ErrorIs(t, svc.Remove(ctx, "u1", "2142257"), ErrNotWatched)

	items, err = svc.List(ctx, "u2")
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestWatchlistService_TrimsIDs(t *testing.T) {
	svc := NewWatchlistService(repository.NewFileWatchlistRepository(openTestStore(t)))
	ctx := context.Background()

	item, err := svc.Add(ctx, "u1", " 2142257 ")
	require.NoError(t, err)
	assert.Equal(t, "2142257", item.AsteroidID)

	require.NoError(t, svc.Remove(ctx, "u1", " 2142257"))

	items, err := svc.List(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, items)
}
