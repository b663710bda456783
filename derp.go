// Package derp memoizes function calls on local disk. A call is identified
// by a fingerprint of the callable and its argument set; repeating the call
// replays the stored result instead of invoking the callable again.
package derp

import (
	"context"
	"os"
	"sync"

	"go.trai.ch/derp/internal/adapters/fingerprint"
	"go.trai.ch/derp/internal/adapters/index"
	"go.trai.ch/derp/internal/adapters/invoke"
	"go.trai.ch/derp/internal/adapters/logger"
	"go.trai.ch/derp/internal/adapters/object"
	"go.trai.ch/derp/internal/adapters/telemetry"
	"go.trai.ch/derp/internal/core/domain"
	"go.trai.ch/derp/internal/engine/memo"
)

// Config configures a Cache. The zero value roots the cache in the current
// directory.
type Config struct {
	// Root is the directory that holds the cache. The cache itself lives in
	// a .derpcache directory underneath it.
	Root string
}

// Cache is a persistent memoization cache rooted at one directory. All
// methods are safe for concurrent use within a single process; the on-disk
// layout is not protected against other processes.
type Cache struct {
	engine *memo.Engine
}

// New creates a Cache for the given configuration. The cache directory is
// created lazily on the first call.
func New(cfg Config) *Cache {
	root := cfg.Root
	if root == "" {
		root = "."
	}

	dcfg := domain.Config{Root: root}

	engine := memo.NewEngine(
		dcfg,
		fingerprint.NewHasher(),
		index.NewStore(dcfg),
		object.NewStore(dcfg),
		invoke.NewInvoker(),
		logger.New(),
		telemetry.NewNoOpTracer(),
	)

	return &Cache{engine: engine}
}

var (
	defaultOnce  sync.Once
	defaultCache *Cache
)

// Default returns the process-wide cache rooted at DERPCACHE_ROOT_DIR, or
// the current directory when unset. The environment is read once, on the
// first call.
func Default() *Cache {
	defaultOnce.Do(func() {
		defaultCache = New(Config{Root: os.Getenv(domain.RootEnvVar)})
	})

	return defaultCache
}

// Call memoizes fn(args...). On the first call with an equivalent argument
// set the callable runs and its result is stored; later calls replay the
// stored result. An error from the callable itself comes back unchanged and
// nothing is cached. A trailing Named argument carries keyword-style
// arguments: it participates in the fingerprint and is passed to fn as its
// final parameter.
func Call[T any](c *Cache, fn any, args ...any) (T, error) {
	return CallWith[T](c, CallOptions{}, fn, args...)
}

// CallWith memoizes fn(args...) under the given options.
func CallWith[T any](c *Cache, opts CallOptions, fn any, args ...any) (T, error) {
	var result T

	positional, named := splitNamed(args)

	req := domain.CallRequest{
		Fn:      fn,
		Args:    positional,
		Named:   named,
		Options: domain.CallOptions(opts),
	}

	if err := c.engine.Call(context.Background(), req, &result); err != nil {
		var zero T
		return zero, err
	}

	return result, nil
}

// Get loads the value stored under fingerprint, bypassing the index. It
// fails with ErrMissingObject when nothing is stored there.
func Get[T any](c *Cache, fingerprint string) (T, error) {
	var result T

	if err := c.engine.Get(context.Background(), fingerprint, &result); err != nil {
		var zero T
		return zero, err
	}

	return result, nil
}

// Index returns the cached entries ordered by call time, oldest first.
// Expired entries and their stored objects are removed before listing.
func (c *Cache) Index() ([]Entry, error) {
	return c.IndexWith(IndexOptions{})
}

// IndexWith returns the cached entries ordered by call time, oldest first.
func (c *Cache) IndexWith(opts IndexOptions) ([]Entry, error) {
	records, err := c.engine.Index(context.Background(), !opts.KeepExpired)
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(records))
	for _, r := range records {
		entries = append(entries, newEntry(r))
	}

	return entries, nil
}

// Clear removes the whole cache directory. An absent cache counts as
// cleared; the next Call reinitializes it.
func (c *Cache) Clear() error {
	return c.engine.Clear(context.Background())
}

// splitNamed peels a trailing Named argument off the positional list.
func splitNamed(args []any) ([]any, map[string]any) {
	if len(args) == 0 {
		return nil, nil
	}

	named, ok := args[len(args)-1].(Named)
	if !ok {
		return args, nil
	}

	return args[:len(args)-1], map[string]any(named)
}
