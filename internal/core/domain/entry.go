// Package domain contains the core types of the memoization cache.
package domain

import "time"

// Entry describes one cached result in the index.
type Entry struct {
	// Callable is the qualified description of the memoized callable.
	Callable string `json:"callable"`
	// CalledAt is the UTC instant the result was produced.
	CalledAt time.Time `json:"called_at"`
	// ExpiresAfter is the expiry window in seconds. Zero means the entry
	// never expires and the field is omitted from the document.
	ExpiresAfter float64 `json:"expires_after,omitempty"`
	// Annotation is a free-form note attached to the entry.
	Annotation string `json:"annotation,omitempty"`
	// HashAnnotation records whether the annotation was folded into the
	// fingerprint. Present exactly when an annotation is present.
	HashAnnotation *bool `json:"hash_annotation,omitempty"`
}

// NewEntry builds the index entry for an invocation recorded at calledAt.
func NewEntry(callable string, calledAt time.Time, opts CallOptions) Entry {
	e := Entry{
		Callable: callable,
		CalledAt: calledAt.UTC(),
	}
	if opts.ExpiresAfter != 0 {
		e.ExpiresAfter = opts.ExpiresAfter.Seconds()
	}
	if opts.Annotation != "" {
		hashed := opts.HashAnnotation
		e.Annotation = opts.Annotation
		e.HashAnnotation = &hashed
	}
	return e
}

// Expires reports whether the entry carries an expiry window.
func (e Entry) Expires() bool {
	return e.ExpiresAfter != 0
}

// Window returns the expiry window as a duration.
func (e Entry) Window() time.Duration {
	return time.Duration(e.ExpiresAfter * float64(time.Second))
}

// Deadline returns the instant the entry's window ends.
func (e Entry) Deadline() time.Time {
	return e.CalledAt.Add(e.Window())
}
