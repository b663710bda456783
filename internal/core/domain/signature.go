package domain

import "time"

// CallOptions adjust how one invocation is cached.
type CallOptions struct {
	// ExpiresAfter is the expiry window. Zero means the result never expires.
	ExpiresAfter time.Duration
	// Annotation is a free-form note stored with the entry.
	Annotation string
	// HashAnnotation folds the annotation into the fingerprint, so the same
	// invocation under a different annotation caches separately.
	HashAnnotation bool
}

// Signature is everything that identifies one memoized invocation.
type Signature struct {
	Callable       string
	ExpiresAfter   time.Duration
	Annotation     string
	HashAnnotation bool
	Args           []any
	Named          map[string]any
}

// CallRequest describes one invocation for the engine to memoize.
type CallRequest struct {
	Fn      any
	Args    []any
	Named   map[string]any
	Options CallOptions
}

// Signature derives the invocation identity for the given callable description.
func (r CallRequest) Signature(callable string) Signature {
	return Signature{
		Callable:       callable,
		ExpiresAfter:   r.Options.ExpiresAfter,
		Annotation:     r.Options.Annotation,
		HashAnnotation: r.Options.HashAnnotation,
		Args:           r.Args,
		Named:          r.Named,
	}
}
