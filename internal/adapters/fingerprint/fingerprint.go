// Package fingerprint derives deterministic cache fingerprints from call
// signatures.
package fingerprint

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"reflect"
	"runtime"
	"sort"
	"strconv"
	"time"

	"go.trai.ch/derp/internal/core/domain"
)

// fingerprintHexLen is the number of hex characters kept from the digest.
// Short enough to double as a file name, long enough to make collisions
// between distinct calls unrealistic.
const fingerprintHexLen = 8

var sectionSep = []byte{0}

// Hasher fingerprints call signatures with SHA-256.
type Hasher struct{}

// NewHasher returns a ready to use Hasher.
func NewHasher() *Hasher {
	return &Hasher{}
}

// Describe returns a stable identifier for a callable. Named functions and
// methods resolve to their fully qualified symbol name; anything else falls
// back to its type.
func (h *Hasher) Describe(fn any) string {
	if fn == nil {
		return "<nil>"
	}

	v := reflect.ValueOf(fn)
	if v.Kind() == reflect.Func && !v.IsNil() {
		if f := runtime.FuncForPC(v.Pointer()); f != nil {
			return f.Name()
		}
	}

	return reflect.TypeOf(fn).String()
}

// Fingerprint derives the cache fingerprint for a call signature. The digest
// input is assembled from NUL separated sections so neighbouring sections
// cannot bleed into each other.
func (h *Hasher) Fingerprint(sig domain.Signature) string {
	d := sha256.New()

	section := func(s string) {
		_, _ = io.WriteString(d, s)
		_, _ = d.Write(sectionSep)
	}

	section(sig.Callable)
	section(expirySection(sig.ExpiresAfter))

	if sig.HashAnnotation {
		section(sig.Annotation)
	} else {
		section("")
	}

	for _, arg := range sortedPositionals(sig.Args) {
		section(arg)
	}
	_, _ = d.Write(sectionSep)

	section(Canonical(sig.Named))

	return hex.EncodeToString(d.Sum(nil))[:fingerprintHexLen]
}

// sortedPositionals canonicalizes the positional arguments and sorts the
// rendered strings. Fingerprints are insensitive to positional order, so
// add(2, 3) and add(3, 2) share an entry. Argument identity comes from the
// rendered values, not their position.
func sortedPositionals(args []any) []string {
	rendered := make([]string, 0, len(args))
	for _, arg := range args {
		rendered = append(rendered, Canonical(arg))
	}

	sort.Strings(rendered)

	return rendered
}

func expirySection(d time.Duration) string {
	if d == 0 {
		return ""
	}

	return strconv.FormatFloat(d.Seconds(), 'g', -1, 64)
}
