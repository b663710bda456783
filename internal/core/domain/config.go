package domain

import "path/filepath"

// Config carries the resolved cache configuration. The zero value roots the
// cache in the current working directory.
type Config struct {
	// Root is the directory under which the cache directory lives.
	Root string
}

// CacheDir returns the path of the cache directory.
func (c Config) CacheDir() string {
	if c.Root == "" {
		return CacheDirName
	}

	return filepath.Join(c.Root, CacheDirName)
}

// IndexPath returns the path of the index document.
func (c Config) IndexPath() string {
	return filepath.Join(c.CacheDir(), IndexFileName)
}

// ObjectPath returns the path of the stored object for a fingerprint.
func (c Config) ObjectPath(fingerprint string) string {
	return filepath.Join(c.CacheDir(), fingerprint)
}
