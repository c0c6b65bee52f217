//go:build unix

// Package heapmem provides the concrete word.Memory that backs each
// collector's owned heap buffer. On unix-like hosts the heap is reserved
// with an anonymous mmap, the same low-level host-memory dependency
// (golang.org/x/sys/unix) the teacher repo carries, just aimed at the
// mutator's heap instead of an inferior process's address space.
package heapmem

import (
	"encoding/binary"
	"fmt"

	"golang.org/x/sys/unix"

	"github.com/l2lang/gcrt/internal/word"
)

var nativeEndian = binary.NativeEndian

const bytesPerWord = 8

// Heap is a word.Memory backed by a single anonymous mmap region.
type Heap struct {
	base  word.Addr
	bytes []byte
}

// New reserves an mmap'd heap of n words, addressed starting at base.
func New(base word.Addr, n int) (*Heap, error) {
	if n <= 0 {
		return nil, fmt.Errorf("heapmem: heap size must be positive, got %d", n)
	}
	b, err := unix.Mmap(-1, 0, n*bytesPerWord, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil, fmt.Errorf("heapmem: mmap %d words: %w", n, err)
	}
	return &Heap{base: base, bytes: b}, nil
}

func (h *Heap) index(a word.Addr) int {
	i := a.Sub(h.base)
	if i < 0 || i >= len(h.bytes)/bytesPerWord {
		panic(fmt.Sprintf("heapmem: address %v out of range [%v, %v)", a, h.base, h.base.Add(len(h.bytes)/bytesPerWord)))
	}
	return i
}

// Read returns the word at a.
func (h *Heap) Read(a word.Addr) word.Word {
	i := h.index(a) * bytesPerWord
	return word.Word(nativeEndian.Uint64(h.bytes[i : i+bytesPerWord]))
}

// Write stores v at a.
func (h *Heap) Write(a word.Addr, v word.Word) {
	i := h.index(a) * bytesPerWord
	nativeEndian.PutUint64(h.bytes[i:i+bytesPerWord], uint64(v))
}

// Len reports the number of addressable words.
func (h *Heap) Len() int { return len(h.bytes) / bytesPerWord }

// Close releases the mmap'd region. The Heap must not be used afterward.
func (h *Heap) Close() error {
	return unix.Munmap(h.bytes)
}
