package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/Tiliavir/spotsecure/internal/model"
)

// EntriesKey is the namespaced key under which the entry list is stored.
const EntriesKey = "entries"

// MutateFunc receives the current entry list and returns the list to persist.
// Returning an error aborts the mutation without writing.
type MutateFunc func(entries []model.Entry) ([]model.Entry, error)

// Store is a durable mapping from EntriesKey to a serialized entry list.
type Store interface {
	Load(ctx context.Context) ([]model.Entry, error)
	Mutate(ctx context.Context, fn MutateFunc) error
	Clear(ctx context.Context) error
}

// BaseDir returns the root data directory (~/.spotsecure).
func BaseDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".spotsecure"), nil
}

// FileStore keeps the entry list as a JSON array in <base>/entries.json.
//
// The mutex only serialises callers inside one process. Two processes
// mutating the same file can still lose an update.
type FileStore struct {
	base string
	mu   sync.Mutex
}

// NewFileStore returns a FileStore rooted at base.
func NewFileStore(base string) *FileStore {
	return &FileStore{base: base}
}

// Path returns the location of the entries file.
func (s *FileStore) Path() string {
	return filepath.Join(s.base, EntriesKey+".json")
}

// Load reads the entry list. A missing file is an empty list.
func (s *FileStore) Load(_ context.Context) ([]model.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *FileStore) load() ([]model.Entry, error) {
	path := s.Path()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return []model.Entry{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage error reading %s: %w", path, err)
	}

	entries, err := decode(data)
	if err != nil {
		// Back up corrupt file and abort.
		backupPath := path + ".corrupt"
		_ = os.Rename(path, backupPath)
		return nil, fmt.Errorf("corrupt JSON in %s (backed up to %s): %w", path, backupPath, err)
	}
	return entries, nil
}

// Mutate loads the list, applies fn and writes the result back.
func (s *FileStore) Mutate(_ context.Context, fn MutateFunc) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.load()
	if err != nil {
		return err
	}
	next, err := fn(entries)
	if err != nil {
		return err
	}
	return s.save(next)
}

// save atomically writes the entry list.
func (s *FileStore) save(entries []model.Entry) error {
	path := s.Path()
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("storage error creating directories: %w", err)
	}

	data, err := encode(entries)
	if err != nil {
		return err
	}

	// Atomic write: write to temp file then rename.
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o600); err != nil {
		return fmt.Errorf("storage error writing temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("storage error renaming temp file: %w", err)
	}
	return nil
}

// Clear removes the entries file.
func (s *FileStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.Path()); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("storage error removing %s: %w", s.Path(), err)
	}
	return nil
}

func decode(data []byte) ([]model.Entry, error) {
	var entries []model.Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []model.Entry{}
	}
	return entries, nil
}

func encode(entries []model.Entry) ([]byte, error) {
	if entries == nil {
		entries = []model.Entry{}
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("storage error marshalling JSON: %w", err)
	}
	return data, nil
}
