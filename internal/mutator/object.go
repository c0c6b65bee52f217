package mutator

import (
	"github.com/l2lang/gcrt/internal/header"
	"github.com/l2lang/gcrt/internal/word"
)

// WriteHeader writes a live-object descriptor header for the object at
// payload, with the given field count and pointer bitmask. This is the
// mutator's job per spec.md §3 ("the mutator writes and later overwrites
// the header word"); the collector never constructs a descriptor header
// itself, only a forwarding one.
func WriteHeader(heap word.Memory, payload word.Addr, fieldCount uint8, pointerMask uint32) {
	heap.Write(payload.Add(-1), header.EncodeDescriptor(fieldCount, pointerMask))
}

// WriteField stores v in payload field i. It does not touch the header's
// pointer bitmask; set that correctly at allocation time via WriteHeader.
func WriteField(heap word.Memory, payload word.Addr, i int, v word.Addr) {
	heap.Write(payload.Add(i), word.Word(v))
}

// ReadField returns the value of payload field i.
func ReadField(heap word.Memory, payload word.Addr, i int) word.Addr {
	return word.Addr(heap.Read(payload.Add(i)))
}
