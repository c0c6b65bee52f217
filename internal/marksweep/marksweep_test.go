package marksweep_test

import (
	"errors"
	"testing"

	"github.com/l2lang/gcrt/internal/gcerr"
	"github.com/l2lang/gcrt/internal/marksweep"
	"github.com/l2lang/gcrt/internal/mutator"
	"github.com/l2lang/gcrt/internal/word"
)

type recorder struct {
	calls [][2]int64
}

func (r *recorder) ReportGCStats(live, words int64) {
	r.calls = append(r.calls, [2]int64{live, words})
}

func TestFirstFitAlloc(t *testing.T) {
	st := mutator.NewStack(64)
	heap := word.NewSlice(0, 16)
	c := marksweep.New(st.Memory(), heap, st.BaseFramePtr(), 16, nil)

	payload, err := c.Alloc(3, st.BaseFramePtr())
	if err != nil {
		t.Fatalf("Alloc: %v", err)
	}
	if payload != 1 {
		t.Errorf("payload = %v, want 1", payload)
	}
	if got := c.FreeWords(); got != 12 {
		t.Errorf("FreeWords() = %d, want 12", got)
	}
}

// S7-equivalent: sweeping frees the garbage block, which abuts the free
// remainder; neither block alone is big enough for the next request, and
// coalesce merges them so the request is satisfiable without growing the
// heap.
func TestCoalesceAfterSweep(t *testing.T) {
	st := mutator.NewStack(64)
	heap := word.NewSlice(0, 16)
	rec := &recorder{}
	c := marksweep.New(st.Memory(), heap, st.BaseFramePtr(), 16, rec)

	fp := st.PushFrame(st.BaseFramePtr(), 0, 1)

	obj, err := c.Alloc(0, fp)
	if err != nil {
		t.Fatalf("alloc root object: %v", err)
	}
	mutator.WriteHeader(heap, obj, 0, 0)
	st.SetLocal(fp, 0, obj)

	if _, err := c.Alloc(5, fp); err != nil {
		t.Fatalf("alloc garbage: %v", err)
	}

	payload, err := c.Alloc(10, fp)
	if err != nil {
		t.Fatalf("alloc that triggers collect+coalesce: %v", err)
	}
	if payload != 2 {
		t.Errorf("payload after coalesce = %v, want 2", payload)
	}
	if len(rec.calls) != 1 || rec.calls[0] != [2]int64{1, 1} {
		t.Fatalf("ReportGCStats calls = %v, want one (1,1) call", rec.calls)
	}
	if got := c.FreeWords(); got != 4 {
		t.Errorf("FreeWords() = %d, want 4", got)
	}
}

func TestOutOfMemoryLeavesStateConsistent(t *testing.T) {
	st := mutator.NewStack(64)
	heap := word.NewSlice(0, 8)
	c := marksweep.New(st.Memory(), heap, st.BaseFramePtr(), 8, nil)

	base := st.BaseFramePtr()
	_, err := c.Alloc(10, base)
	if !errors.Is(err, gcerr.ErrOutOfMemory) {
		t.Fatalf("err = %v, want ErrOutOfMemory", err)
	}
	if got := c.FreeWords(); got != 8 {
		t.Errorf("FreeWords() after failed alloc = %d, want unchanged 8", got)
	}

	if _, err := c.Alloc(2, base); err != nil {
		t.Errorf("smaller alloc after OOM should still succeed: %v", err)
	}
}
