package derp

import (
	"time"

	"go.trai.ch/derp/internal/core/domain"
)

// Entry describes one cached invocation as listed by Index.
type Entry struct {
	// Fingerprint identifies the invocation; pass it to Get to load the
	// stored value.
	Fingerprint string

	// Callable is the qualified description of the memoized callable.
	Callable string

	// CalledAt is the UTC instant the result was produced.
	CalledAt time.Time

	// ExpiresAfter is the expiry window. Zero means the entry never expires.
	ExpiresAfter time.Duration

	// Annotation is the free-form note stored with the entry.
	Annotation string

	// HashAnnotation reports whether the annotation was folded into the
	// fingerprint.
	HashAnnotation bool
}

func newEntry(r domain.Record) Entry {
	e := Entry{
		Fingerprint: r.Fingerprint,
		Callable:    r.Entry.Callable,
		CalledAt:    r.Entry.CalledAt,
		Annotation:  r.Entry.Annotation,
	}

	if r.Entry.Expires() {
		e.ExpiresAfter = r.Entry.Window()
	}

	if r.Entry.HashAnnotation != nil {
		e.HashAnnotation = *r.Entry.HashAnnotation
	}

	return e
}
