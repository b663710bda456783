// Package index persists the cache index as a single JSON document.
package index

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"sync"

	"go.trai.ch/derp/internal/core/domain"
	"go.trai.ch/zerr"
)

// Store implements ports.IndexStore using a flat JSON file under the cache
// directory.
type Store struct {
	cfg domain.Config
	mu  sync.RWMutex
}

// NewStore creates a Store rooted at the configured cache directory.
func NewStore(cfg domain.Config) *Store {
	return &Store{cfg: cfg}
}

// Init creates the cache directory and an empty index document if either is
// absent. Calling it on an initialized cache changes nothing.
func (s *Store) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(s.cfg.CacheDir(), domain.DirPerm); err != nil {
		return zerr.Wrap(err, domain.ErrInitFailed.Error())
	}

	if _, err := os.Stat(s.cfg.IndexPath()); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return zerr.Wrap(err, domain.ErrInitFailed.Error())
	}

	return s.write(domain.Index{})
}

// Read loads the whole index document.
func (s *Store) Read() (domain.Index, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	path := s.cfg.IndexPath()

	//nolint:gosec // Path derives from the configured cache root
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, zerr.With(domain.ErrNotInitialized, "path", path)
		}
		return nil, zerr.Wrap(err, domain.ErrIndexReadFailed.Error())
	}

	idx := domain.Index{}
	if err := json.Unmarshal(data, &idx); err != nil {
		return nil, errors.Join(domain.ErrCorruptIndex, err)
	}

	return idx, nil
}

// Write persists the whole index, atomically replacing the previous document.
func (s *Store) Write(idx domain.Index) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.write(idx)
}

// Add inserts the entry under fingerprint and persists the index.
func (s *Store) Add(idx domain.Index, fingerprint string, entry domain.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx[fingerprint] = entry

	return s.write(idx)
}

// Remove drops the fingerprints from the index and persists it.
func (s *Store) Remove(idx domain.Index, fingerprints []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, fingerprint := range fingerprints {
		delete(idx, fingerprint)
	}

	return s.write(idx)
}

// write marshals the index and swaps it in with a rename so readers never
// observe a partially written document. Callers must hold s.mu.
func (s *Store) write(idx domain.Index) error {
	data, err := json.MarshalIndent(idx, "", "  ")
	if err != nil {
		return zerr.Wrap(err, domain.ErrIndexEncodeFailed.Error())
	}

	path := s.cfg.IndexPath()
	tmp := path + ".tmp"

	//nolint:gosec // Path derives from the configured cache root
	if err := os.WriteFile(tmp, data, domain.FilePerm); err != nil {
		return zerr.Wrap(err, domain.ErrIndexWriteFailed.Error())
	}

	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return zerr.Wrap(err, domain.ErrIndexWriteFailed.Error())
	}

	return nil
}
