// Package prefs persists the terminal client's session and display
// preferences in a local JSON file.
package prefs

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/cosmicwatch/cosmicwatch-go/internal/model"
)

// StorageKey is the single top-level key of the preferences file.
const StorageKey = "cosmic-watch-storage"

// Unit selects how distances and sizes are displayed.
type Unit string

const (
	UnitKM Unit = "km"
	UnitMI Unit = "mi"
)

var (
	ErrInvalidUnit = errors.New("unit must be km or mi")
	ErrEmptyID     = errors.New("asteroid id is empty")
)

// Preferences is the persisted state.
type Preferences struct {
	User      *model.UserResponse `json:"user"`
	Token     string              `json:"token,omitempty"`
	Watchlist []string            `json:"watchlist"`
	Unit      Unit                `json:"unit"`
}

// LoggedIn reports whether a user is signed in.
func (p Preferences) LoggedIn() bool {
	return p.User != nil
}

// Watching reports whether id is on the watchlist.
func (p Preferences) Watching(id string) bool {
	return slices.Contains(p.Watchlist, id)
}

func defaults() Preferences {
	return Preferences{Watchlist: []string{}, Unit: UnitKM}
}

type envelope struct {
	State   Preferences `json:"state"`
	Version int         `json:"version"`
}

// Store guards Preferences and writes them to disk after every mutation.
type Store struct {
	mu    sync.Mutex
	path  string
	prefs Preferences
}

// DefaultPath returns $XDG_CONFIG_HOME/cosmicwatch/storage.json, or the
// platform equivalent.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locating config dir: %w", err)
	}
	return filepath.Join(dir, "cosmicwatch", "storage.json"), nil
}

// Open loads the preferences at path. A missing file yields defaults; a
// corrupt one is logged and replaced on the next write.
func Open(path string) (*Store, error) {
	s := &Store{path: path, prefs: defaults()}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return s, nil
	case err != nil:
		return nil, fmt.Errorf("reading preferences: %w", err)
	}

	var file map[string]envelope
	if err := json.Unmarshal(data, &file); err != nil {
		slog.Warn("corrupt preferences file, using defaults", "path", path, "error", err)
		return s, nil
	}
	env, ok := file[StorageKey]
	if !ok {
		return s, nil
	}

	p := env.State
	if p.Watchlist == nil {
		p.Watchlist = []string{}
	}
	if p.Unit != UnitKM && p.Unit != UnitMI {
		p.Unit = UnitKM
	}
	s.prefs = p
	return s, nil
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Snapshot returns a copy of the current preferences.
func (s *Store) Snapshot() Preferences {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.prefs
	p.Watchlist = slices.Clone(s.prefs.Watchlist)
	if s.prefs.User != nil {
		u := *s.prefs.User
		p.User = &u
	}
	return p
}

// Login records user as signed in. The token is set separately.
func (s *Store) Login(user model.UserResponse) error {
	return s.mutate(func(p *Preferences) error {
		p.User = &user
		return nil
	})
}

// Logout clears the user, the token and the watchlist together.
func (s *Store) Logout() error {
	return s.mutate(func(p *Preferences) error {
		p.User = nil
		p.Token = ""
		p.Watchlist = []string{}
		return nil
	})
}

// SetToken stores the session token. An empty token clears it.
func (s *Store) SetToken(token string) error {
	return s.mutate(func(p *Preferences) error {
		p.Token = token
		return nil
	})
}

// ToggleWatchlist appends id if absent and removes it if present. It
// reports whether id is on the watchlist afterwards.
func (s *Store) ToggleWatchlist(id string) (bool, error) {
	if id == "" {
		return false, ErrEmptyID
	}

	var watching bool
	err := s.mutate(func(p *Preferences) error {
		if i := slices.Index(p.Watchlist, id); i >= 0 {
			p.Watchlist = slices.Delete(p.Watchlist, i, i+1)
			watching = false
		} else {
			p.Watchlist = append(p.Watchlist, id)
			watching = true
		}
		return nil
	})
	return watching, err
}

// SetUnit changes the display unit.
func (s *Store) SetUnit(unit Unit) error {
	if unit != UnitKM && unit != UnitMI {
		return ErrInvalidUnit
	}
	return s.mutate(func(p *Preferences) error {
		p.Unit = unit
		return nil
	})
}

// mutate applies fn to a copy and commits it only once it is on disk.
func (s *Store) mutate(fn func(p *Preferences) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.prefs
	next.Watchlist = slices.Clone(s.prefs.Watchlist)
	if err := fn(&next); err != nil {
		return err
	}
	if err := s.save(next); err != nil {
		return err
	}
	s.prefs = next
	return nil
}

func (s *Store) save(p Preferences) error {
	data, err := json.MarshalIndent(map[string]envelope{StorageKey: {State: p, Version: 0}}, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding preferences: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("creating preferences dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing preferences: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replacing preferences: %w", err)
	}
	return nil
}
