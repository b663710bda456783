// Package config resolves the cache configuration from the environment.
package config

import (
	"os"

	"go.trai.ch/derp/internal/core/domain"
)

// Resolve builds the cache configuration. The root directory comes from
// DERPCACHE_ROOT_DIR when set and defaults to the current working directory.
func Resolve() domain.Config {
	root := os.Getenv(domain.RootEnvVar)
	if root == "" {
		root = "."
	}

	return domain.Config{Root: root}
}
