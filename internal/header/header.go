// Package header decodes and encodes the object header word and the two
// compiler-emitted info words the L2 collectors consume.
//
// The header's bit layout is an ABI contract with the compiler (spec.md
// §3, §6) and must be preserved exactly. Everywhere else in this module
// the header is handled through the tagged Header variant below, per
// spec.md §9's recommendation: "model the header as a tagged variant
// {Descriptor(field_count, pointer_mask) | Forwarded(address)} and
// preserve the bit-level encoding at the ABI boundary only."
package header

import "github.com/l2lang/gcrt/internal/word"

const (
	tagBit        = 1 // bit 0: 1 = descriptor, 0 = forwarded
	bitvectorBits = 23 // bits 1..23
	bitvectorMask = (1 << bitvectorBits) - 1
	fieldCountBits = 8 // bits 24..31
)

// Header is the decoded form of an object's header word: either a live
// object's descriptor, or a forwarding pointer left behind by a semispace
// collection.
type Header struct {
	Forwarded   bool
	To          word.Addr // valid iff Forwarded
	FieldCount  uint8     // valid iff !Forwarded
	PointerMask uint32    // valid iff !Forwarded; bit k set => field k is a pointer
}

// Decode extracts a Header from a raw header word.
func Decode(w word.Word) Header {
	u := uint64(w)
	if u&tagBit == 0 {
		return Header{Forwarded: true, To: word.Addr(w >> 1)}
	}
	return Header{
		FieldCount:  uint8(u >> (bitvectorBits + 1)),
		PointerMask: uint32(u>>1) & bitvectorMask,
	}
}

// EncodeDescriptor builds a raw header word for a live object with the
// given field count and pointer bitvector. Bits of mask beyond bitvectorBits
// are dropped, matching spec.md §3 ("fields with indices beyond the
// bitvector's width are treated as non-pointer").
func EncodeDescriptor(fieldCount uint8, mask uint32) word.Word {
	u := uint64(1) // tag bit: not forwarded
	u |= uint64(mask&bitvectorMask) << 1
	u |= uint64(fieldCount) << (bitvectorBits + 1)
	return word.Word(u)
}

// EncodeForwarded builds a raw header word recording a forwarding address.
// Word addresses may be odd, so the address is stored shifted left by one
// bit; this keeps the tag bit 0, distinguishing it from a descriptor.
func EncodeForwarded(to word.Addr) word.Word {
	return word.Word(to) << 1
}

// HasPointer reports whether field index i (0-based payload word offset)
// is marked as a pointer by h. Indices at or beyond FieldCount are never
// pointers, regardless of the mask.
func (h Header) HasPointer(i int) bool {
	if h.Forwarded || i < 0 || i >= int(h.FieldCount) || i >= bitvectorBits {
		return false
	}
	return h.PointerMask>>uint(i)&1 != 0
}

// ArgInfo is the per-call-site bitmask marking which argument slots (at
// positive offsets from a frame pointer) hold heap pointers.
type ArgInfo word.Word

// LocalInfo is the per-call-site bitmask marking which local slots (at
// negative offsets from a frame pointer) hold heap pointers.
type LocalInfo word.Word

// HasPointer reports whether bit k of the info word is set.
func (a ArgInfo) HasPointer(k int) bool   { return word.Word(a)>>uint(k)&1 != 0 }
func (l LocalInfo) HasPointer(k int) bool { return word.Word(l)>>uint(k)&1 != 0 }

// HighestSetBit returns the 0-indexed position of the highest set bit, or
// -1 if w is zero. Callers use this to avoid scanning bits above the
// highest one actually set, per spec.md §4.1 ("Bits higher than the
// highest set bit need not be scanned").
func HighestSetBit(w word.Word) int {
	u := uint64(w)
	if u == 0 {
		return -1
	}
	n := -1
	for u != 0 {
		n++
		u >>= 1
	}
	return n
}
