package header

import (
	"testing"

	"github.com/l2lang/gcrt/internal/word"
)

func TestEncodeDecodeDescriptor(t *testing.T) {
	w := EncodeDescriptor(3, 0b101)
	h := Decode(w)
	if h.Forwarded {
		t.Fatalf("descriptor header decoded as forwarded")
	}
	if h.FieldCount != 3 {
		t.Errorf("FieldCount = %d, want 3", h.FieldCount)
	}
	if h.PointerMask != 0b101 {
		t.Errorf("PointerMask = %b, want %b", h.PointerMask, 0b101)
	}
	if !h.HasPointer(0) || h.HasPointer(1) || !h.HasPointer(2) {
		t.Errorf("HasPointer mismatch for mask %b", h.PointerMask)
	}
	if h.HasPointer(3) {
		t.Errorf("HasPointer(3) should be false: beyond field count")
	}
}

func TestEncodeDecodeForwarded(t *testing.T) {
	w := EncodeForwarded(word.Addr(1024))
	h := Decode(w)
	if !h.Forwarded {
		t.Fatalf("forwarding header decoded as descriptor")
	}
	if h.To != 1024 {
		t.Errorf("To = %v, want 1024", h.To)
	}
}

func TestHasPointerBeyondBitvectorWidth(t *testing.T) {
	h := Header{FieldCount: 200, PointerMask: 0xFFFFFFFF}
	if h.HasPointer(bitvectorBits) {
		t.Errorf("HasPointer at bitvectorBits should be false: outside the 23-bit vector")
	}
}

func TestHighestSetBit(t *testing.T) {
	cases := []struct {
		w    word.Word
		want int
	}{
		{0, -1},
		{1, 0},
		{0b10, 1},
		{0b1011, 3},
	}
	for _, c := range cases {
		if got := HighestSetBit(c.w); got != c.want {
			t.Errorf("HighestSetBit(%b) = %d, want %d", c.w, got, c.want)
		}
	}
}

func TestArgLocalInfo(t *testing.T) {
	a := ArgInfo(0b0101)
	if !a.HasPointer(0) || a.HasPointer(1) || !a.HasPointer(2) {
		t.Errorf("ArgInfo.HasPointer mismatch")
	}
	l := LocalInfo(0b1000)
	if !l.HasPointer(3) || l.HasPointer(0) {
		t.Errorf("LocalInfo.HasPointer mismatch")
	}
}
