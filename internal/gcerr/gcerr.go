// Package gcerr defines the error kinds from spec.md §7.
package gcerr

import (
	"errors"
	"fmt"

	"github.com/l2lang/gcrt/internal/word"
)

// ErrOutOfMemory is returned by Alloc when no satisfying block exists
// after collection (semispace) or after collection and coalescing
// (mark-sweep). Collector state remains consistent after this error;
// subsequent smaller allocations may still succeed.
var ErrOutOfMemory = errors.New("l2gc: out of memory")

// MissingObject panics when a stack slot claims to hold a heap pointer
// that the collector's object table has no record of. spec.md §7 treats
// this as a fatal assertion failure (a programming/ABI bug), not a
// recoverable user error, so it is raised with panic rather than
// returned as an error.
func MissingObject(at word.Addr) {
	panic(fmt.Sprintf("l2gc: corrupted root: no object recorded at %v", at))
}

// Precondition panics on a construction-time or call-time ABI violation
// (odd heap size, non-positive heap size, negative num_words, ...).
// spec.md §7 treats these as fatal.
func Precondition(format string, args ...any) {
	panic(fmt.Sprintf("l2gc: precondition violation: "+format, args...))
}
