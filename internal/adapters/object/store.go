// Package object persists cached results on disk, one msgpack document per
// fingerprint.
package object

import (
	"errors"
	"io/fs"
	"os"

	"github.com/vmihailenco/msgpack/v5"

	"go.trai.ch/derp/internal/core/domain"
	"go.trai.ch/zerr"
)

// Store implements ports.ObjectStore under the configured cache directory.
type Store struct {
	cfg domain.Config
}

// NewStore creates a Store rooted at the configured cache directory.
func NewStore(cfg domain.Config) *Store {
	return &Store{cfg: cfg}
}

// Write stores the value under fingerprint, replacing any previous object.
// The document lands with a rename so readers never observe a partial write.
func (s *Store) Write(fingerprint string, value any) error {
	data, err := msgpack.Marshal(value)
	if err != nil {
		return zerr.Wrap(err, domain.ErrObjectEncodeFailed.Error())
	}

	path := s.cfg.ObjectPath(fingerprint)
	tmp := path + ".tmp"

	//nolint:gosec // Path derives from the configured cache root
	if err := os.WriteFile(tmp, data, domain.FilePerm); err != nil {
		return zerr.Wrap(err, domain.ErrObjectWriteFailed.Error())
	}

	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return zerr.Wrap(err, domain.ErrObjectWriteFailed.Error())
	}

	return nil
}

// Read decodes the object stored under fingerprint into dst, which must be a
// non-nil pointer of the stored type.
func (s *Store) Read(fingerprint string, dst any) error {
	//nolint:gosec // Path derives from the configured cache root
	data, err := os.ReadFile(s.cfg.ObjectPath(fingerprint))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return zerr.With(domain.ErrMissingObject, "fingerprint", fingerprint)
		}
		return zerr.Wrap(err, domain.ErrObjectReadFailed.Error())
	}

	if err := msgpack.Unmarshal(data, dst); err != nil {
		return zerr.Wrap(err, domain.ErrObjectDecodeFailed.Error())
	}

	return nil
}

// Remove deletes the objects for the given fingerprints. A missing object is
// an error: the index and the object units are expected to move together.
func (s *Store) Remove(fingerprints []string) error {
	for _, fingerprint := range fingerprints {
		if err := os.Remove(s.cfg.ObjectPath(fingerprint)); err != nil {
			return zerr.Wrap(err, domain.ErrObjectRemoveFailed.Error())
		}
	}

	return nil
}
