// Package ports defines the core interfaces for the application.
package ports

import "go.trai.ch/derp/internal/core/domain"

// Fingerprinter derives the stable identity of memoized invocations.
//
//go:generate mockgen -source=fingerprinter.go -destination=mocks/mock_fingerprinter.go -package=mocks
type Fingerprinter interface {
	// Describe returns the qualified description of a callable,
	// e.g. "go.trai.ch/derp/internal/engine/memo.glob..func1".
	Describe(fn any) string

	// Fingerprint derives the fingerprint for an invocation signature.
	// Equivalent signatures always produce the same fingerprint.
	Fingerprint(sig domain.Signature) string
}
