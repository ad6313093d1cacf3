package neo

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrNotFound is returned when a source has no object with the requested id.
var ErrNotFound = errors.New("near-earth object not found")

// Source supplies raw (unscored) objects.
type Source interface {
	// Feed returns every object with a close approach between start and end,
	// in ascending date order.
	Feed(ctx context.Context, start, end time.Time) ([]Object, error)
	// Lookup returns a single object by id.
	Lookup(ctx context.Context, id string) (Object, error)
}

// UpstreamError reports a non-success response from the remote feed.
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("feed upstream returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("feed upstream returned status %d: %s", e.StatusCode, e.Body)
}

// NewSource returns the source named by kind: "fixture" for the built-in
// dataset, anything else for the live feed.
func NewSource(kind string, live *LiveSource) Source {
	if kind == "fixture" {
		return NewFixtureSource()
	}
	return live
}
