// Package app implements the application layer for derp.
package app

import (
	"context"

	"go.trai.ch/derp/internal/core/domain"
	"go.trai.ch/derp/internal/core/ports"
	"go.trai.ch/zerr"
)

// Engine is the slice of the cache engine the application layer drives.
type Engine interface {
	// Index returns the cached entries ordered by call time, oldest first.
	Index(ctx context.Context, clearExpired bool) ([]domain.Record, error)

	// Get decodes the object stored under fingerprint into dst.
	Get(ctx context.Context, fingerprint string, dst any) error

	// Clear removes the whole cache directory.
	Clear(ctx context.Context) error
}

// App represents the main application logic behind the CLI.
type App struct {
	engine Engine
	logger ports.Logger
}

// New creates a new App instance.
func New(engine Engine, log ports.Logger) *App {
	return &App{
		engine: engine,
		logger: log,
	}
}

// ListOptions configuration for the List method.
type ListOptions struct {
	// KeepExpired skips the expiration sweep, so entries past their policy
	// still show up.
	KeepExpired bool
}

// List returns the cached entries ordered by call time, oldest first.
// Expired entries and their objects are swept first unless KeepExpired is
// set.
func (a *App) List(ctx context.Context, opts ListOptions) ([]domain.Record, error) {
	records, err := a.engine.Index(ctx, !opts.KeepExpired)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to list cache entries")
	}

	return records, nil
}

// Show loads the value stored under fingerprint, bypassing the index.
func (a *App) Show(ctx context.Context, fingerprint string) (any, error) {
	var value any
	if err := a.engine.Get(ctx, fingerprint, &value); err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to load cached value"), "fingerprint", fingerprint)
	}

	return value, nil
}

// Clear removes the whole cache directory. An absent cache counts as
// cleared.
func (a *App) Clear(ctx context.Context) error {
	a.logger.Info("clearing cache...")

	if err := a.engine.Clear(ctx); err != nil {
		return err
	}

	a.logger.Info("cache cleared")

	return nil
}
