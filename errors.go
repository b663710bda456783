package derp

import "go.trai.ch/derp/internal/core/domain"

// Sentinels re-exported for errors.Is checks, so callers never import
// internal packages.
var (
	// ErrNotInitialized is returned when the cache is inspected before any
	// cache operation created it.
	ErrNotInitialized = domain.ErrNotInitialized

	// ErrCorruptIndex is returned when the index document exists but cannot
	// be parsed.
	ErrCorruptIndex = domain.ErrCorruptIndex

	// ErrMissingObject is returned when no stored object exists for a
	// fingerprint.
	ErrMissingObject = domain.ErrMissingObject

	// ErrNotCallable is returned when the value passed for invocation is not
	// a function.
	ErrNotCallable = domain.ErrNotCallable

	// ErrBadSignature is returned when a callable does not return a value,
	// or a value and an error.
	ErrBadSignature = domain.ErrBadSignature

	// ErrArgumentMismatch is returned when the provided arguments cannot be
	// assigned to the callable's parameters.
	ErrArgumentMismatch = domain.ErrArgumentMismatch

	// ErrResultMismatch is returned when a result does not match the
	// requested type.
	ErrResultMismatch = domain.ErrResultMismatch
)
