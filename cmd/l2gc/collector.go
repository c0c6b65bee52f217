package main

import (
	"fmt"
	"io"

	"github.com/l2lang/gcrt/internal/heapmem"
	"github.com/l2lang/gcrt/internal/marksweep"
	"github.com/l2lang/gcrt/internal/mutator"
	"github.com/l2lang/gcrt/internal/semispace"
	"github.com/l2lang/gcrt/internal/stats"
	"github.com/l2lang/gcrt/internal/word"
)

// session bundles the simulated stack, owned heap, and chosen collector
// that a run or a repl operates on.
type session struct {
	stack     *mutator.Stack
	heap      *heapmem.Heap
	collector mutator.Collector
	statsFn   func(io.Writer)
}

func newSession(out io.Writer) (*session, error) {
	if flagHeapWords <= 0 || flagHeapWords%2 != 0 {
		return nil, fmt.Errorf("--heap-words must be a positive even number, got %d", flagHeapWords)
	}

	st := mutator.NewStack(flagStackWords)
	heap, err := heapmem.New(word.Addr(0), flagHeapWords)
	if err != nil {
		return nil, err
	}

	reporter := stats.ReporterFunc(func(live, words int64) {
		fmt.Fprintf(out, "gc: live=%d words=%d\n", live, words)
	})

	s := &session{stack: st, heap: heap}

	switch flagCollector {
	case "semispace":
		c := semispace.New(st.Memory(), heap, st.BaseFramePtr(), flagHeapWords, reporter)
		s.collector = c
		s.statsFn = func(w io.Writer) {
			copied, words := c.Stats()
			fmt.Fprintf(w, "objects copied last gc: %d, words copied: %d, free in active half: %d\n", copied, words, c.FromFree())
		}
	case "marksweep":
		c := marksweep.New(st.Memory(), heap, st.BaseFramePtr(), flagHeapWords, reporter)
		s.collector = c
		s.statsFn = func(w io.Writer) {
			retained, words := c.Stats()
			fmt.Fprintf(w, "retained last gc: %d objects, %d words; free: %d\n", retained, words, c.FreeWords())
		}
	default:
		return nil, fmt.Errorf("unknown --collector %q (want semispace or marksweep)", flagCollector)
	}

	return s, nil
}
