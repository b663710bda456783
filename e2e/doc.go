// Package e2e holds the testscript-driven CLI scenarios. The tests live in
// e2e_test.go behind the e2e build tag; this file keeps the package
// resolvable so a plain `go test ./...` skips it instead of failing.
package e2e
