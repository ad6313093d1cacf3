package neo

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"
)

const (
	feedCacheKey = "feed"
	feedDays     = 7
)

// Recorder receives feed client events. internal/metrics provides the
// Prometheus implementation.
type Recorder interface {
	CacheHit(kind string)
	CacheMiss(kind string)
	Fallback(op string)
	ObserveUpstream(op string, d time.Duration)
}

type nopRecorder struct{}

func (nopRecorder) CacheHit(string)                      {}
func (nopRecorder) CacheMiss(string)                     {}
func (nopRecorder) Fallback(string)                      {}
func (nopRecorder) ObserveUpstream(string, time.Duration) {}

// Client serves scored, cached objects from a primary Source and masks its
// failures with a fallback Source.
type Client struct {
	primary  Source
	fallback Source
	cache    *Cache
	logger   *slog.Logger
	recorder Recorder
	now      func() time.Time
}

// Option configures a Client.
type Option func(*Client)

// WithFallback replaces the default fixture fallback. nil disables fallback.
func WithFallback(s Source) Option {
	return func(c *Client) { c.fallback = s }
}

// WithCache supplies the cache, e.g. one shared between clients.
func WithCache(cache *Cache) Option {
	return func(c *Client) { c.cache = cache }
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

func WithRecorder(r Recorder) Option {
	return func(c *Client) { c.recorder = r }
}

// NewClient creates a Client reading from primary. By default it falls back
// to the built-in fixture dataset and caches for DefaultCacheTTL.
func NewClient(primary Source, opts ...Option) *Client {
	c := &Client{
		primary:  primary,
		fallback: NewFixtureSource(),
		cache:    NewCache(DefaultCacheTTL),
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		recorder: nopRecorder{},
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchFeed returns the objects approaching between today and today+7 days,
// sorted by descending risk score. Results are cached under "feed".
func (c *Client) FetchFeed(ctx context.Context) ([]Object, error) {
	if v, ok := c.cache.Get(feedCacheKey); ok {
		c.recorder.CacheHit("feed")
		return v.([]Object), nil
	}
	c.recorder.CacheMiss("feed")

	start := c.now()
	end := start.AddDate(0, 0, feedDays)

	began := time.Now()
	raw, err := c.primary.Feed(ctx, start, end)
	c.recorder.ObserveUpstream("feed", time.Since(began))
	if err != nil {
		if !c.canFallBack(ctx) {
			return nil, fmt.Errorf("fetching feed: %w", err)
		}
		c.logger.Warn("feed fetch failed, serving fallback data", "error", err)
		c.recorder.Fallback("feed")

		raw, err = c.fallback.Feed(ctx, start, end)
		if err != nil {
			return nil, fmt.Errorf("fetching fallback feed: %w", err)
		}
	}

	objs := rank(raw)
	c.cache.Set(feedCacheKey, objs)
	return objs, nil
}

// FetchOne returns a single scored object. Results are cached under
// "object:{id}". If the primary source fails, the fallback is used only
// when it knows id; otherwise the primary's error is returned.
func (c *Client) FetchOne(ctx context.Context, id string) (Object, error) {
	key := objectCacheKey(id)
	if v, ok := c.cache.Get(key); ok {
		c.recorder.CacheHit("object")
		return v.(Object), nil
	}
	c.recorder.CacheMiss("object")

	began := time.Now()
	raw, err := c.primary.Lookup(ctx, id)
	c.recorder.ObserveUpstream("object", time.Since(began))
	if err != nil {
		if !c.canFallBack(ctx) {
			return Object{}, fmt.Errorf("fetching object %s: %w", id, err)
		}
		fb, fbErr := c.fallback.Lookup(ctx, id)
		if fbErr != nil {
			c.logger.Warn("object fetch failed, no fallback available", "id", id, "error", err)
			return Object{}, fmt.Errorf("fetching object %s: %w", id, err)
		}
		c.logger.Warn("object fetch failed, serving fallback data", "id", id, "error", err)
		c.recorder.Fallback("object")
		raw = fb
	}

	obj := withRisk(raw)
	c.cache.Set(key, obj)
	return obj, nil
}

// canFallBack reports whether a primary failure should be masked. A
// cancelled caller gets its own error back rather than fixture data.
func (c *Client) canFallBack(ctx context.Context) bool {
	return c.fallback != nil && c.fallback != c.primary && ctx.Err() == nil
}

func objectCacheKey(id string) string {
	return "object:" + id
}

// IsNotFound reports whether err means the object does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
