// Package jsonfile keeps users, lawyers and bookings in one flat JSON
// document on local disk.  Every mutation rewrites the whole document through
// a temp file and rename; readers get copies so callers never share state
// with the store.
package jsonfile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/turtacn/LexConnect/internal/domain/booking"
	"github.com/turtacn/LexConnect/internal/domain/lawyer"
	"github.com/turtacn/LexConnect/internal/domain/user"
	"github.com/turtacn/LexConnect/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/LexConnect/pkg/errors"
)

type document struct {
	Users    []*user.User       `json:"users"`
	Lawyers  []*lawyer.Lawyer   `json:"lawyers"`
	Bookings []*booking.Booking `json:"bookings"`
}

// Options tunes Open.
type Options struct {
	// Seed writes SeedLawyers when the file does not exist yet.
	Seed bool
	Log  logging.Logger
}

// Store is the file-backed persistence layer.
type Store struct {
	path string
	log  logging.Logger

	mu  sync.RWMutex
	doc document
}

// Open loads path, creating it (optionally seeded) when it is missing.
func Open(path string, opts Options) (*Store, error) {
	log := opts.Log
	if log == nil {
		log = logging.NewNopLogger()
	}
	s := &Store{path: path, log: log.Named("jsonfile")}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if opts.Seed {
			s.doc.Lawyers = SeedLawyers()
		}
		if err := s.flushLocked(); err != nil {
			return nil, err
		}
		s.log.Info("created data file", logging.String("path", path), logging.Int("lawyers", len(s.doc.Lawyers)))
		return s, nil
	}

	if err := s.reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Path returns the backing file.
func (s *Store) Path() string { return s.path }

// Ping reports whether the backing file is readable.
func (s *Store) Ping(_ context.Context) error {
	if _, err := os.Stat(s.path); err != nil {
		return errors.Wrap(err, errors.CodeStorageError, "data file unavailable")
	}
	return nil
}

func (s *Store) reload() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return errors.Wrap(err, errors.CodeStorageError, "failed to read data file")
	}
	var doc document
	if len(data) > 0 {
		if err := json.Unmarshal(data, &doc); err != nil {
			return errors.Wrap(err, errors.ErrCodeSerialization, "failed to decode data file")
		}
	}
	s.mu.Lock()
	s.doc = doc
	s.mu.Unlock()
	return nil
}

// flushLocked writes the document atomically.  Callers hold s.mu for writing
// or own s exclusively.
func (s *Store) flushLocked() error {
	data, err := json.MarshalIndent(s.doc, "", "  ")
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeSerialization, "failed to encode data file")
	}
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrap(err, errors.CodeStorageError, "failed to create data directory")
	}
	tmp, err := os.CreateTemp(dir, ".lexconnect-*.json")
	if err != nil {
		return errors.Wrap(err, errors.CodeStorageError, "failed to create temp file")
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return errors.Wrap(err, errors.CodeStorageError, "failed to write temp file")
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return errors.Wrap(err, errors.CodeStorageError, "failed to close temp file")
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return errors.Wrap(err, errors.CodeStorageError, "failed to replace data file")
	}
	return nil
}

// mutate applies fn under the write lock and persists the result.  A failed
// write restores the previous document.
func (s *Store) mutate(fn func(doc *document) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.doc
	prev.Users = append([]*user.User(nil), s.doc.Users...)
	prev.Lawyers = append([]*lawyer.Lawyer(nil), s.doc.Lawyers...)
	prev.Bookings = append([]*booking.Booking(nil), s.doc.Bookings...)

	if err := fn(&s.doc); err != nil {
		s.doc = prev
		return err
	}
	if err := s.flushLocked(); err != nil {
		s.doc = prev
		return err
	}
	return nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Reload on external edits
// ─────────────────────────────────────────────────────────────────────────────

// Watch reloads the document whenever the file is replaced or written by
// another process, until ctx is cancelled.  The parent directory is watched
// so rename-based writes are seen.
func (s *Store) Watch(ctx context.Context) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("jsonfile: failed to create watcher: %w", err)
	}
	if err := w.Add(filepath.Dir(s.path)); err != nil {
		w.Close()
		return fmt.Errorf("jsonfile: failed to watch %s: %w", filepath.Dir(s.path), err)
	}

	go func() {
		defer w.Close()
		target := filepath.Clean(s.path)
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != target {
					continue
				}
				if event.Op&(fsnotify.Create|fsnotify.Write) == 0 {
					continue
				}
				if err := s.reload(); err != nil {
					s.log.Warn("reload failed", logging.Err(err))
					continue
				}
				s.log.Debug("data file reloaded", logging.String("path", s.path))
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				s.log.Warn("watcher error", logging.Err(err))
			}
		}
	}()
	return nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Repository views
// ─────────────────────────────────────────────────────────────────────────────

// Lawyers returns the roster repository.
func (s *Store) Lawyers() lawyer.Repository { return &lawyerRepo{s: s} }

// Users returns the account repository.
func (s *Store) Users() user.Repository { return &userRepo{s: s} }

// Bookings returns the booking repository.
func (s *Store) Bookings() booking.Repository { return &bookingRepo{s: s} }

//Personal.AI order the ending
