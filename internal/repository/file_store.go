package repository

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

// Document is the whole persisted state of the JSON driver.
type Document struct {
	Users     []model.User          `json:"users"`
	Watchlist []model.WatchlistItem `json:"watchlist"`
	Alerts    []model.Alert         `json:"alerts"`
}

func emptyDocument() Document {
	return Document{
		Users:     []model.User{},
		Watchlist: []model.WatchlistItem{},
		Alerts:    []model.Alert{},
	}
}

// FileStore keeps a Document in memory and rewrites the file after every mutation.
type FileStore struct {
	mu   sync.RWMutex
	path string
	doc  Document
}

// OpenFileStore loads the document at path. A missing file starts empty; an
// unreadable or corrupt one is logged and also starts empty, and will be
// overwritten by the next write.
func OpenFileStore(path string) (*FileStore, error) {
	s := &FileStore{path: path, doc: emptyDocument()}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return s, nil
	case err != nil:
		slog.Error("error loading data file, starting empty", "path", path, "error", err)
		return s, nil
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		slog.Error("corrupt data file, starting empty", "path", path, "error", err)
		return s, nil
	}
	if doc.Users == nil {
		doc.Users = []model.User{}
	}
	if doc.Watchlist == nil {
		doc.Watchlist = []model.WatchlistItem{}
	}
	if doc.Alerts == nil {
		doc.Alerts = []model.Alert{}
	}
	s.doc = doc

	return s, nil
}

// Path returns the backing file path.
func (s *FileStore) Path() string {
	return s.path
}

func (s *FileStore) view(fn func(doc *Document)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(&s.doc)
}

// update applies fn to a copy of the document and commits the copy only once
// it is on disk. A failed fn or save leaves the in-memory state untouched.
func (s *FileStore) update(fn func(doc *Document) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.doc.clone()
	if err := fn(&next); err != nil {
		return err
	}
	if err := s.save(next); err != nil {
		return err
	}
	s.doc = next
	return nil
}

func (d Document) clone() Document {
	return Document{
		Users:     slices.Clone(d.Users),
		Watchlist: slices.Clone(d.Watchlist),
		Alerts:    slices.Clone(d.Alerts),
	}
}

// save writes to a sibling temp file and renames it over the target, so a
// crash mid-write leaves the previous document intact.
func (s *FileStore) save(doc Document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding document: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replacing data file: %w", err)
	}
	return nil
}
