package gcerr

import (
	"errors"
	"strings"
	"testing"

	"github.com/l2lang/gcrt/internal/word"
)

func TestErrOutOfMemoryIsSentinel(t *testing.T) {
	wrapped := errors.New("alloc failed")
	if errors.Is(wrapped, ErrOutOfMemory) {
		t.Fatalf("unrelated error should not match ErrOutOfMemory")
	}
	if !errors.Is(ErrOutOfMemory, ErrOutOfMemory) {
		t.Fatalf("ErrOutOfMemory should match itself")
	}
}

func TestMissingObjectPanics(t *testing.T) {
	defer func() {
		r := recover()
		if r == nil {
			t.Fatalf("MissingObject should panic")
		}
		if !strings.Contains(r.(string), "0x2a") {
			t.Errorf("panic message %q should mention the address", r)
		}
	}()
	MissingObject(word.Addr(0x2a))
}

func TestPreconditionPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("Precondition should panic")
		}
	}()
	Precondition("heap size must be even, got %d", 3)
}
