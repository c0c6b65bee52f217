// Package semispace implements collector A from spec.md §4.2: a
// Cheney-style copying collector over two equal halves of an owned heap,
// driven by the shared root-set discovery in internal/frame.
//
// The object table is kept as an external side table rather than
// recomputed from headers, per spec.md §9: once an object is forwarded its
// old header no longer carries a field count, so the side table is the
// only place that information survives across a collection.
package semispace

import (
	"github.com/l2lang/gcrt/internal/frame"
	"github.com/l2lang/gcrt/internal/gcerr"
	"github.com/l2lang/gcrt/internal/header"
	"github.com/l2lang/gcrt/internal/stats"
	"github.com/l2lang/gcrt/internal/word"
)

// Collector is a semispace copying collector (spec.md §3, "Semispace"
// per-collector state).
type Collector struct {
	stack        word.Memory // the mutator's stack; out of scope per spec.md §1
	baseFramePtr word.Addr

	heap      word.Memory // owned heap, H words
	heapWords int
	fromBase  word.Addr
	toBase    word.Addr
	fromSize  int
	toSize    int
	bumpPtr   word.Addr

	objTable     map[word.Addr]uint8
	scratchTable map[word.Addr]uint8

	reporter stats.Reporter

	numObjCopied  int64
	numWordCopied int64
	// last* retain the counts from the most recent collection, between
	// cycles, for Stats() — a supplement spec.md doesn't require but
	// doesn't forbid either (see SPEC_FULL.md §6).
	lastObjCopied  int64
	lastWordCopied int64
}

// New constructs a semispace collector. baseFramePtr is the frame pointer
// for the stack frame of "main" — the frame immediately before the frame
// of the L2 program's Entry shim — used as the stack-walk terminator
// (spec.md §2, §6). heapWords must be a positive even number. stack is the
// word.Memory through which the mutator's frames are read; heap is the
// word.Memory the collector will own exclusively for the lifetime of the
// collector.
func New(stack word.Memory, heap word.Memory, baseFramePtr word.Addr, heapWords int, reporter stats.Reporter) *Collector {
	if heapWords <= 0 || heapWords%2 != 0 {
		gcerr.Precondition("heap size must be a positive even number of words, got %d", heapWords)
	}
	if heap.Len() < heapWords {
		gcerr.Precondition("heap memory has only %d words, need %d", heap.Len(), heapWords)
	}
	if reporter == nil {
		reporter = stats.Discard
	}
	half := heapWords / 2
	c := &Collector{
		stack:        stack,
		baseFramePtr: baseFramePtr,
		heap:         heap,
		heapWords:    heapWords,
		fromBase:     0,
		toBase:       word.Addr(half),
		fromSize:     half,
		toSize:       half,
		objTable:     make(map[word.Addr]uint8),
		reporter:     reporter,
	}
	c.bumpPtr = c.fromBase
	return c
}

// Alloc satisfies spec.md §4.2's Alloc contract: allocates 1+numWords
// words (a header plus numWords payload words) and returns the payload
// address. currFramePtr must chain, via saved frame pointers, to the
// collector's base frame pointer.
func (c *Collector) Alloc(numWords int, currFramePtr word.Addr) (word.Addr, error) {
	if numWords < 0 {
		gcerr.Precondition("num_words must be >= 0, got %d", numWords)
	}
	if payload, ok := c.tryBumpAlloc(numWords); ok {
		return payload, nil
	}

	c.collect(currFramePtr)

	if payload, ok := c.tryBumpAlloc(numWords); ok {
		return payload, nil
	}
	return 0, gcerr.ErrOutOfMemory
}

func (c *Collector) tryBumpAlloc(numWords int) (word.Addr, bool) {
	need := numWords + 1
	if need > c.fromSize {
		return 0, false
	}
	headerAddr := c.bumpPtr
	payload := headerAddr.Add(1)
	c.bumpPtr = c.bumpPtr.Add(need)
	c.fromSize -= need
	c.objTable[payload] = uint8(numWords)
	return payload, true
}

// collect runs one evacuation cycle: discover roots, evacuate the
// transitive closure into the inactive half, report stats, and swap
// halves (spec.md §4.2).
func (c *Collector) collect(currFramePtr word.Addr) {
	c.bumpPtr = c.toBase
	c.toSize = c.heapWords / 2
	c.scratchTable = make(map[word.Addr]uint8)

	roots := frame.Roots(c.stack, c.baseFramePtr, currFramePtr)
	for _, r := range roots {
		c.evacuateSlot(c.stack, r)
	}

	c.reporter.ReportGCStats(c.numObjCopied, c.numWordCopied)
	c.lastObjCopied, c.lastWordCopied = c.numObjCopied, c.numWordCopied
	c.numObjCopied, c.numWordCopied = 0, 0

	c.objTable = c.scratchTable
	c.scratchTable = nil
	c.fromSize = c.toSize
	c.toSize = c.heapWords / 2
	c.fromBase, c.toBase = c.toBase, c.fromBase
}

// evacuateSlot applies the three-case evacuation logic to the pointer
// stored at slot in mem: skip if null, follow an existing forwarding
// pointer, or copy the object and install one (spec.md §4.2).
func (c *Collector) evacuateSlot(mem word.Memory, slot word.Addr) {
	p := word.Addr(mem.Read(slot))
	if p == 0 {
		return
	}
	mem.Write(slot, word.Word(c.evacuateObject(p)))
}

// evacuateObject ensures p has been evacuated (copying it if this is the
// first time it's seen this cycle) and returns its new address.
func (c *Collector) evacuateObject(p word.Addr) word.Addr {
	oldHeaderAddr := p.Add(-1)
	h := header.Decode(c.heap.Read(oldHeaderAddr))
	if h.Forwarded {
		return h.To
	}

	n, ok := c.objTable[p]
	if !ok {
		gcerr.MissingObject(p)
	}

	words := int(n) + 1
	dst := c.bumpPtr
	for i := 0; i < words; i++ {
		c.heap.Write(dst.Add(i), c.heap.Read(oldHeaderAddr.Add(i)))
	}
	newPayload := dst.Add(1)
	c.scratchTable[newPayload] = n
	c.bumpPtr = c.bumpPtr.Add(words)
	c.toSize -= words
	c.numObjCopied++
	c.numWordCopied += int64(words)

	// Install the forwarding pointer in the old header for the rest of
	// this cycle (spec.md §3, §4.2).
	c.heap.Write(oldHeaderAddr, header.EncodeForwarded(newPayload))

	c.scanObject(newPayload, n)
	return newPayload
}

// scanObject recursively evacuates the pointer fields of the freshly
// copied object at q, per its header's field count and pointer bitvector
// (spec.md §4.2, "copy_space_on_struct").
func (c *Collector) scanObject(q word.Addr, fieldCount uint8) {
	h := header.Decode(c.heap.Read(q.Add(-1)))
	for i := 0; i < int(fieldCount); i++ {
		if h.HasPointer(i) {
			c.evacuateSlot(c.heap, q.Add(i))
		}
	}
}

// HeapWords returns the total heap size in words.
func (c *Collector) HeapWords() int { return c.heapWords }

// Stats returns the object and word counts copied during the most recent
// collection cycle (0, 0 if no collection has happened yet).
func (c *Collector) Stats() (objectsCopied, wordsCopied int64) {
	return c.lastObjCopied, c.lastWordCopied
}

// FromFree returns the number of free words remaining in the active half,
// for spec.md §8's capacity-accounting invariant.
func (c *Collector) FromFree() int { return c.fromSize }
