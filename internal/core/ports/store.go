package ports

import "go.trai.ch/derp/internal/core/domain"

// IndexStore persists the cache index as a single JSON document.
//
//go:generate mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type IndexStore interface {
	// Init creates the cache directory and an empty index if either is
	// absent. Calling it on an initialized cache is a no-op.
	Init() error

	// Read loads the whole index.
	// Returns domain.ErrNotInitialized if the index document does not exist
	// and domain.ErrCorruptIndex if it cannot be parsed.
	Read() (domain.Index, error)

	// Write persists the whole index, atomically replacing the previous
	// document.
	Write(idx domain.Index) error

	// Add inserts the entry under fingerprint and persists the index.
	Add(idx domain.Index, fingerprint string, entry domain.Entry) error

	// Remove drops the fingerprints from the index and persists it.
	Remove(idx domain.Index, fingerprints []string) error
}

// ObjectStore persists one encoded result per fingerprint.
type ObjectStore interface {
	// Write stores the value under fingerprint, replacing any previous
	// object.
	Write(fingerprint string, value any) error

	// Read decodes the object stored under fingerprint into dst, which must
	// be a non-nil pointer. Returns domain.ErrMissingObject if no object
	// exists.
	Read(fingerprint string, dst any) error

	// Remove deletes the objects for the given fingerprints.
	Remove(fingerprints []string) error
}
