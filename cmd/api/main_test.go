package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cosmicwatch/cosmicwatch-go/internal/config"
	"github.com/cosmicwatch/cosmicwatch-go/internal/repository"
)

func testConfig(t *testing.T, port string) config.Config {
	t.Helper()
	return config.Config{
		Port:        port,
		Env:         "test",
		JWTSecret:   "test-secret",
		JWTExpiry:   time.Hour,
		StoreDriver: "json",
		DataFile:    filepath.Join(t.TempDir(), "data.json"),
		CORSOrigins: []string{"*"},
		Neo:         config.NeoConfig{Source: "fixture", CacheTTL: time.Minute, Timeout: time.Second},
	}
}

// stubStore counts closes on a JSON-backed set of repositories.
func stubStore(t *testing.T, closeErr error) *int {
	t.Helper()
	closes := 0
	orig := openStore
	openStore = func(ctx context.Context, cfg config.Config) (repositories, error) {
		repos, err := openRepositories(ctx, cfg)
		if err != nil {
			return repositories{}, err
		}
		repos.close = func() error {
			closes++
			return closeErr
		}
		return repos, nil
	}
	t.Cleanup(func() { openStore = orig })
	return &closes
}

func TestRun_ClosesStoreOnShutdown(t *testing.T) {
	errClose := errors.New("close failed")
	closes := stubStore(t, errClose)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	err := run(ctx, testConfig(t, "0"), slog.New(slog.NewTextHandler(io.Discard, nil)))
	assert.ErrorIs(t, err, errClose)
	assert.Equal(t, 1, *closes)
}

func TestRun_ClosesStoreWhenListenFails(t *testing.T) {
	closes := stubStore(t, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	err := run(ctx, testConfig(t, "-1"), slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "serving")
	assert.Equal(t, 1, *closes)
}

func TestOpenRepositories(t *testing.T) {
	cfg := testConfig(t, "0")

	repos, err := openRepositories(context.Background(), cfg)
	require.NoError(t, err)
	assert.IsType(t, &repository.FileUserRepository{}, repos.users)
	assert.NoError(t, repos.close())

	cfg.StoreDriver = "postgres"
	_, err = openRepositories(context.Background(), cfg)
	assert.ErrorContains(t, err, `unknown STORE_DRIVER "postgres"`)
}
