package mutator

import (
	"testing"

	"github.com/l2lang/gcrt/internal/word"
)

func TestPushFrameLayout(t *testing.T) {
	s := NewStack(64)
	base := s.BaseFramePtr()

	fp1 := s.PushFrame(base, 2, 3)
	if got := s.CallerFP(fp1); got != base {
		t.Errorf("CallerFP(fp1) = %v, want base %v", got, base)
	}
	if got := s.ArgSlot(fp1, 0); got != fp1.Add(2) {
		t.Errorf("ArgSlot(0) = %v, want %v", got, fp1.Add(2))
	}
	if got := s.LocalSlot(fp1, 2); got != fp1.Add(-5) {
		t.Errorf("LocalSlot(2) = %v, want %v", got, fp1.Add(-5))
	}

	fp2 := s.PushFrame(fp1, 0, 1)
	if got := s.CallerFP(fp2); got != fp1 {
		t.Errorf("CallerFP(fp2) = %v, want fp1 %v", got, fp1)
	}
	if fp2 == fp1 {
		t.Fatalf("second frame reused the first frame's address")
	}
}

func TestSetReadLocalAndArgMarkPointerBits(t *testing.T) {
	s := NewStack(64)
	fp := s.PushFrame(s.BaseFramePtr(), 2, 2)

	s.SetLocal(fp, 1, word.Addr(42))
	if got := s.ReadLocal(fp, 1); got != 42 {
		t.Errorf("ReadLocal(1) = %v, want 42", got)
	}
	s.SetArg(fp, 0, word.Addr(7))
	if got := s.ReadArg(fp, 0); got != 7 {
		t.Errorf("ReadArg(0) = %v, want 7", got)
	}

	localInfo := s.mem.Read(fp.Add(-2))
	if localInfo != 0b10 {
		t.Errorf("local info word = %b, want 0b10", localInfo)
	}
	argInfo := s.mem.Read(fp.Add(-1))
	if argInfo != 0b1 {
		t.Errorf("arg info word = %b, want 0b1", argInfo)
	}
}

func TestMarkPointerWithoutWriteLeavesValueZero(t *testing.T) {
	s := NewStack(64)
	fp := s.PushFrame(s.BaseFramePtr(), 0, 1)
	s.MarkLocalPointer(fp, 0)
	if got := s.ReadLocal(fp, 0); got != 0 {
		t.Errorf("ReadLocal(0) = %v, want 0 (marked but never written)", got)
	}
}
