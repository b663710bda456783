// Package memo implements the cache engine that decides between replaying a
// stored result and invoking the callable.
package memo

import (
	"context"
	"os"
	"reflect"
	"time"

	"go.trai.ch/derp/internal/core/domain"
	"go.trai.ch/derp/internal/core/ports"
	"go.trai.ch/zerr"
)

// Engine orchestrates one memoized call: fingerprint the invocation, sweep
// and consult the index, then replay the stored result or invoke the
// callable and persist its result. It is the only caller of the stores, the
// fingerprinter and the invoker.
type Engine struct {
	cfg     domain.Config
	hasher  ports.Fingerprinter
	index   ports.IndexStore
	objects ports.ObjectStore
	invoker ports.Invoker
	logger  ports.Logger
	tracer  ports.Tracer

	now func() time.Time
}

// NewEngine creates an Engine with the given dependencies.
func NewEngine(
	cfg domain.Config,
	hasher ports.Fingerprinter,
	index ports.IndexStore,
	objects ports.ObjectStore,
	invoker ports.Invoker,
	logger ports.Logger,
	tracer ports.Tracer,
) *Engine {
	return &Engine{
		cfg:     cfg,
		hasher:  hasher,
		index:   index,
		objects: objects,
		invoker: invoker,
		logger:  logger,
		tracer:  tracer,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// WithClock replaces the engine's time source. Used by tests to pin entry
// timestamps and expiry decisions.
func (e *Engine) WithClock(now func() time.Time) *Engine {
	e.now = now
	return e
}

// Call runs one memoized invocation and decodes the result into dst, which
// must be a non-nil pointer. On a hit the callable is not invoked. On a miss
// the callable runs synchronously with the original arguments, its result is
// stored before the index entry, and an error from the callable itself comes
// back unchanged with nothing written.
func (e *Engine) Call(ctx context.Context, req domain.CallRequest, dst any) error {
	callable := e.hasher.Describe(req.Fn)
	fingerprint := e.hasher.Fingerprint(req.Signature(callable))

	_, span := e.tracer.Start(ctx, callable,
		ports.WithAttribute("derp.fingerprint", fingerprint),
	)
	defer span.End()

	if err := e.index.Init(); err != nil {
		span.RecordError(err)
		return err
	}

	idx, err := e.load(true)
	if err != nil {
		span.RecordError(err)
		return err
	}

	if _, ok := idx[fingerprint]; ok {
		span.SetAttribute("derp.hit", true)
		e.logger.Debug("cache hit", "fingerprint", fingerprint, "callable", callable)

		if err := e.objects.Read(fingerprint, dst); err != nil {
			span.RecordError(err)
			return err
		}
		return nil
	}

	span.SetAttribute("derp.hit", false)
	e.logger.Debug("caching...", "fingerprint", fingerprint, "callable", callable)

	calledAt := e.now()

	value, err := e.invoker.Invoke(req.Fn, req.Args, req.Named)
	if err != nil {
		span.RecordError(err)
		return err
	}

	// Fail on a result the caller cannot hold before anything lands on disk.
	if err := assign(value, dst); err != nil {
		span.RecordError(err)
		return err
	}

	// Object first. A crash between the two writes leaves an orphan object,
	// never an index entry pointing at nothing.
	if err := e.objects.Write(fingerprint, value); err != nil {
		span.RecordError(err)
		return err
	}

	entry := domain.NewEntry(callable, calledAt, req.Options)
	if err := e.index.Add(idx, fingerprint, entry); err != nil {
		span.RecordError(err)
		return err
	}

	e.logger.Debug("caching successful.", "fingerprint", fingerprint)

	return nil
}

// Index returns the cached entries ordered by call time, oldest first.
// With clearExpired set, expired entries are swept before listing. Fails
// with domain.ErrNotInitialized before the first cache operation.
func (e *Engine) Index(ctx context.Context, clearExpired bool) ([]domain.Record, error) {
	_, span := e.tracer.Start(ctx, "cache.index")
	defer span.End()

	idx, err := e.load(clearExpired)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	span.SetAttribute("derp.entries", len(idx))

	return idx.SortedByTime(), nil
}

// Get decodes the object stored under fingerprint into dst, bypassing the
// index. Expired entries remain readable until a sweep removes them.
func (e *Engine) Get(ctx context.Context, fingerprint string, dst any) error {
	_, span := e.tracer.Start(ctx, "cache.get",
		ports.WithAttribute("derp.fingerprint", fingerprint),
	)
	defer span.End()

	if err := e.objects.Read(fingerprint, dst); err != nil {
		span.RecordError(err)
		return err
	}

	return nil
}

// Clear removes the whole cache directory. A cache that was never
// initialized counts as cleared.
func (e *Engine) Clear(ctx context.Context) error {
	_, span := e.tracer.Start(ctx, "cache.clear")
	defer span.End()

	dir := e.cfg.CacheDir()

	if err := os.RemoveAll(dir); err != nil {
		err = zerr.Wrap(err, domain.ErrClearFailed.Error())
		span.RecordError(err)
		return err
	}

	e.logger.Debug("cache cleared", "path", dir)

	return nil
}

// load reads the index and, when sweep is set, removes every expired entry
// and its stored object. Index entries go first so a failure mid-sweep
// leaves orphan objects rather than entries pointing at nothing.
func (e *Engine) load(sweep bool) (domain.Index, error) {
	idx, err := e.index.Read()
	if err != nil {
		return nil, err
	}

	if !sweep {
		return idx, nil
	}

	expired := domain.ExpiredFingerprints(idx, e.now())
	if len(expired) == 0 {
		return idx, nil
	}

	if err := e.index.Remove(idx, expired); err != nil {
		return nil, err
	}

	if err := e.objects.Remove(expired); err != nil {
		return nil, err
	}

	e.logger.Debug("swept expired entries", "count", len(expired))

	return idx, nil
}

// assign stores value into the pointer dst.
func assign(value any, dst any) error {
	d := reflect.ValueOf(dst)
	if !d.IsValid() || d.Kind() != reflect.Pointer || d.IsNil() {
		return zerr.With(domain.ErrResultMismatch, "destination", typeName(dst))
	}

	target := d.Elem()

	if value == nil {
		target.SetZero()
		return nil
	}

	v := reflect.ValueOf(value)
	if !v.Type().AssignableTo(target.Type()) {
		err := zerr.With(domain.ErrResultMismatch, "result_type", v.Type().String())
		return zerr.With(err, "destination_type", target.Type().String())
	}

	target.Set(v)

	return nil
}

func typeName(v any) string {
	if v == nil {
		return "<nil>"
	}

	return reflect.TypeOf(v).String()
}
