package domain

import "go.trai.ch/zerr"

var (
	// ErrNotInitialized is returned when the cache is inspected before any cache operation created it.
	ErrNotInitialized = zerr.New("cache not initialized")

	// ErrCorruptIndex is returned when the index document exists but cannot be parsed.
	ErrCorruptIndex = zerr.New("corrupt cache index")

	// ErrMissingObject is returned when no stored object exists for a fingerprint.
	ErrMissingObject = zerr.New("missing cached object")

	// ErrNotCallable is returned when the value passed for invocation is not a function.
	ErrNotCallable = zerr.New("not a callable")

	// ErrBadSignature is returned when a callable does not return a value, or a value and an error.
	ErrBadSignature = zerr.New("callable must return a value or a value and an error")

	// ErrArgumentMismatch is returned when the provided arguments cannot be assigned to the callable's parameters.
	ErrArgumentMismatch = zerr.New("arguments do not match callable parameters")

	// ErrResultMismatch is returned when a result does not match the requested type.
	ErrResultMismatch = zerr.New("result type mismatch")

	// ErrInitFailed is returned when the cache directory or empty index cannot be created.
	ErrInitFailed = zerr.New("failed to initialize cache")

	// ErrIndexReadFailed is returned when the index document cannot be read.
	ErrIndexReadFailed = zerr.New("failed to read index")

	// ErrIndexEncodeFailed is returned when the index cannot be serialized.
	ErrIndexEncodeFailed = zerr.New("failed to encode index")

	// ErrIndexWriteFailed is returned when the index document cannot be written.
	ErrIndexWriteFailed = zerr.New("failed to write index")

	// ErrObjectEncodeFailed is returned when a value cannot be encoded for storage.
	ErrObjectEncodeFailed = zerr.New("failed to encode cached object")

	// ErrObjectDecodeFailed is returned when a stored object cannot be decoded.
	ErrObjectDecodeFailed = zerr.New("failed to decode cached object")

	// ErrObjectReadFailed is returned when a stored object cannot be read.
	ErrObjectReadFailed = zerr.New("failed to read cached object")

	// ErrObjectWriteFailed is returned when a stored object cannot be written.
	ErrObjectWriteFailed = zerr.New("failed to write cached object")

	// ErrObjectRemoveFailed is returned when a stored object cannot be removed.
	ErrObjectRemoveFailed = zerr.New("failed to remove cached object")

	// ErrClearFailed is returned when the cache directory cannot be removed.
	ErrClearFailed = zerr.New("failed to clear cache")
)
