// Package frame implements root-set discovery, shared by both collectors
// (spec.md §4.1): walking the mutator's frame chain and decoding the
// compiler-emitted info words adjacent to each saved frame pointer to find
// every stack slot that currently holds a heap pointer.
//
// Grounded on the teacher's frame walking in internal/gocore/process.go
// (readFrame decodes runtime.stackmap bitmaps for locals and args at fixed
// offsets from a frame's bounds) and root modeling in
// internal/gocore/root.go (a Root is a typed, possibly-live memory
// location); L2's info words play the same role as a Go stack map, just
// with a flat bitmask instead of a dense bitmap-with-object-map.
package frame

import "github.com/l2lang/gcrt/internal/header"
import "github.com/l2lang/gcrt/internal/word"

// Roots walks the frame chain starting at currFramePtr up to (not
// including) baseFramePtr, and returns the address of every stack slot
// that the compiler's info words mark as holding a heap pointer.
//
// The root set is a list of slot addresses, not of the heap pointers
// found there, so that a collector can rewrite slots in place with
// post-collection addresses (spec.md §4.1).
func Roots(stack word.Memory, baseFramePtr, currFramePtr word.Addr) []word.Addr {
	var roots []word.Addr
	fp := currFramePtr
	for fp != baseFramePtr {
		argInfo := header.ArgInfo(stack.Read(fp.Add(-1)))
		for k := 0; k <= header.HighestSetBit(word.Word(argInfo)); k++ {
			if argInfo.HasPointer(k) {
				roots = append(roots, fp.Add(2+k))
			}
		}

		localInfo := header.LocalInfo(stack.Read(fp.Add(-2)))
		for k := 0; k <= header.HighestSetBit(word.Word(localInfo)); k++ {
			if localInfo.HasPointer(k) {
				roots = append(roots, fp.Add(-3-k))
			}
		}

		fp = word.Addr(stack.Read(fp))
	}
	return roots
}
