//go:build !unix

package heapmem

import (
	"fmt"

	"github.com/l2lang/gcrt/internal/word"
)

// Heap is a word.Memory backed by a plain Go slice, used on hosts where
// golang.org/x/sys/unix's mmap is unavailable.
type Heap struct {
	*word.Slice
}

// New allocates a heap of n words, addressed starting at base.
func New(base word.Addr, n int) (*Heap, error) {
	if n <= 0 {
		return nil, fmt.Errorf("heapmem: heap size must be positive, got %d", n)
	}
	return &Heap{word.NewSlice(base, n)}, nil
}

// Close is a no-op on this backend; present so callers are portable.
func (h *Heap) Close() error { return nil }
