// Package mutator supplements spec.md with a small, scriptable stand-in
// for the out-of-scope compiler and Entry shim (spec.md §1): a simulated
// stack of activation frames laid out exactly per the ABI in spec.md §6,
// plus a line-oriented script interpreter used by cmd/l2gc's run and repl
// subcommands. The collector test suites build the literal scenarios in
// spec.md §8 by driving Stack directly.
package mutator

import "github.com/l2lang/gcrt/internal/word"

// Collector is the Alloc surface both internal/semispace and
// internal/marksweep implement; the mutator harness is written against
// this interface so it can drive either collector.
type Collector interface {
	Alloc(numWords int, currFramePtr word.Addr) (word.Addr, error)
}

// Stack is a bump-allocated simulation of the mutator's call stack,
// exposing exactly the ABI spec.md §6 describes: a saved frame pointer at
// the frame pointer address itself, an argument info word at fp-1, a
// local info word at fp-2, argument slots at fp+2+k, and local slots at
// fp-3-k.
type Stack struct {
	mem  *word.Slice
	next word.Addr
}

// NewStack allocates a simulated stack with room for words words.
func NewStack(words int) *Stack {
	return &Stack{mem: word.NewSlice(0, words), next: 0}
}

// Memory exposes the stack's backing word.Memory, for passing to a
// collector constructor.
func (s *Stack) Memory() word.Memory { return s.mem }

// BaseFramePtr returns a frame pointer value usable as a collector's
// base_frame_ptr: the stack-walk sentinel that precedes any real frame.
// It is -1, an address below the stack's first word that PushFrame never
// hands out, so it cannot collide with a real frame pointer.
func (s *Stack) BaseFramePtr() word.Addr { return -1 }

// PushFrame reserves a new frame with numArgs argument slots and
// numLocals local slots, records callerFP as its saved frame pointer, and
// returns the new frame's frame pointer. All slots and both info words
// start zeroed (no pointers).
func (s *Stack) PushFrame(callerFP word.Addr, numArgs, numLocals int) word.Addr {
	fp := s.next.Add(numLocals + 2)
	s.mem.Write(fp, word.Word(callerFP))
	s.mem.Write(fp.Add(-1), 0) // argument info word
	s.mem.Write(fp.Add(-2), 0) // local info word
	for k := 0; k < numLocals; k++ {
		s.mem.Write(fp.Add(-3-k), 0)
	}
	for k := 0; k < numArgs; k++ {
		s.mem.Write(fp.Add(2+k), 0)
	}
	s.next = fp.Add(2 + numArgs)
	return fp
}

// CallerFP returns the saved caller frame pointer recorded for fp.
func (s *Stack) CallerFP(fp word.Addr) word.Addr {
	return word.Addr(s.mem.Read(fp))
}

// LocalSlot returns the address of local slot k in frame fp.
func (s *Stack) LocalSlot(fp word.Addr, k int) word.Addr { return fp.Add(-3 - k) }

// ArgSlot returns the address of argument slot k in frame fp.
func (s *Stack) ArgSlot(fp word.Addr, k int) word.Addr { return fp.Add(2 + k) }

// MarkLocalPointer sets bit k of fp's local info word, declaring that
// local slot k holds a heap pointer the collector must trace.
func (s *Stack) MarkLocalPointer(fp word.Addr, k int) {
	infoAddr := fp.Add(-2)
	s.mem.Write(infoAddr, s.mem.Read(infoAddr)|(1<<uint(k)))
}

// MarkArgPointer sets bit k of fp's argument info word.
func (s *Stack) MarkArgPointer(fp word.Addr, k int) {
	infoAddr := fp.Add(-1)
	s.mem.Write(infoAddr, s.mem.Read(infoAddr)|(1<<uint(k)))
}

// SetLocal writes v into local slot k of frame fp and marks the slot as a
// pointer root.
func (s *Stack) SetLocal(fp word.Addr, k int, v word.Addr) {
	s.mem.Write(s.LocalSlot(fp, k), word.Word(v))
	s.MarkLocalPointer(fp, k)
}

// SetArg writes v into argument slot k of frame fp and marks the slot as
// a pointer root.
func (s *Stack) SetArg(fp word.Addr, k int, v word.Addr) {
	s.mem.Write(s.ArgSlot(fp, k), word.Word(v))
	s.MarkArgPointer(fp, k)
}

// ReadLocal returns the current value of local slot k of frame fp.
func (s *Stack) ReadLocal(fp word.Addr, k int) word.Addr {
	return word.Addr(s.mem.Read(s.LocalSlot(fp, k)))
}

// ReadArg returns the current value of argument slot k of frame fp.
func (s *Stack) ReadArg(fp word.Addr, k int) word.Addr {
	return word.Addr(s.mem.Read(s.ArgSlot(fp, k)))
}
