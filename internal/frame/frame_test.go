package frame

import (
	"testing"

	"github.com/l2lang/gcrt/internal/word"
)

func TestRootsEmptyAtBase(t *testing.T) {
	mem := word.NewSlice(0, 16)
	roots := Roots(mem, 5, 5)
	if len(roots) != 0 {
		t.Fatalf("expected no roots when curr == base, got %v", roots)
	}
}

func TestRootsSingleFrame(t *testing.T) {
	// One frame at fp=10: 2 locals, 1 arg, base frame ptr is 0.
	mem := word.NewSlice(0, 32)
	const base, fp = word.Addr(0), word.Addr(10)
	mem.Write(fp, word.Word(base))  // saved caller fp
	mem.Write(fp.Add(-1), 0b01)     // arg info: arg 0 is a pointer
	mem.Write(fp.Add(-2), 0b10)     // local info: local 1 is a pointer

	roots := Roots(mem, base, fp)

	want := map[word.Addr]bool{
		fp.Add(2):    true, // arg 0 slot
		fp.Add(-3-1): true, // local 1 slot
	}
	if len(roots) != len(want) {
		t.Fatalf("got %d roots, want %d: %v", len(roots), len(want), roots)
	}
	for _, r := range roots {
		if !want[r] {
			t.Errorf("unexpected root slot %v", r)
		}
	}
}

func TestRootsWalksFrameChain(t *testing.T) {
	mem := word.NewSlice(0, 64)
	const base = word.Addr(0)
	fp1 := word.Addr(10)
	mem.Write(fp1, word.Word(base))
	mem.Write(fp1.Add(-1), 0)
	mem.Write(fp1.Add(-2), 0b1) // local 0 is a pointer

	fp2 := word.Addr(20)
	mem.Write(fp2, word.Word(fp1))
	mem.Write(fp2.Add(-1), 0b1) // arg 0 is a pointer
	mem.Write(fp2.Add(-2), 0)

	roots := Roots(mem, base, fp2)
	want := map[word.Addr]bool{
		fp2.Add(2):     true, // fp2's arg 0
		fp1.Add(-3 - 0): true, // fp1's local 0
	}
	if len(roots) != 2 {
		t.Fatalf("got %d roots, want 2: %v", len(roots), roots)
	}
	for _, r := range roots {
		if !want[r] {
			t.Errorf("unexpected root slot %v", r)
		}
	}
}
