package derp

import "time"

// Named carries keyword-style arguments. Passed as the final argument to
// Call, CallWith or a wrapped callable, it is fingerprinted as the keyword
// set — insensitive to insertion order — and handed to the callable as its
// last parameter.
type Named map[string]any

// CallOptions adjust how one invocation is cached.
type CallOptions struct {
	// ExpiresAfter is the expiry window for the entry. Zero means the entry
	// never expires.
	ExpiresAfter time.Duration

	// Annotation is a free-form note stored with the entry.
	Annotation string

	// HashAnnotation folds the annotation into the fingerprint, so the same
	// invocation under a different annotation caches separately.
	HashAnnotation bool
}

// IndexOptions adjust what Index returns.
type IndexOptions struct {
	// KeepExpired skips the expiration sweep, so entries past their policy
	// still show up.
	KeepExpired bool
}
