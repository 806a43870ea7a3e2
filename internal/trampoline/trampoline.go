package trampoline

import (
	"context"

	"github.com/danmuck/lf/internal/lferr"
	"github.com/danmuck/lf/internal/wire"
)

// Sentinel is the raw value returned when a call cannot complete because
// of an illegal tag or an ABI the device cannot service (spec §4.6
// failure modes): all bits set.
const Sentinel uint64 = 0xFFFFFFFFFFFFFFFF

// Profile describes one device ABI: its native word size and which wire
// tags it can marshal at all. 64-bit tags (u64/i64) are, per spec §4.6,
// unsupported on narrow reference targets (the 8-bit AVR trampoline).
type Profile struct {
	Name       string
	WordSize   int // 2 or 4; resolves Uint/Ptr tag widths
	Supports64 bool
}

var (
	// AVR8 models the 8-bit reference trampoline: 16-bit native words,
	// no 64-bit argument/return support.
	AVR8 = Profile{Name: "avr8", WordSize: 2, Supports64: false}
	// ARM32 models the 32-bit reference trampoline: 32-bit native words,
	// full width support.
	ARM32 = Profile{Name: "arm32", WordSize: 4, Supports64: true}
)

// Call implements the C6 contract: unpack argv per typesWord, marshal
// into a packed-stack native call frame, invoke entry, and normalize the
// return into a 64-bit value per retTag's sign/width.
//
// Failure modes return (Sentinel, code) without invoking entry:
//   - an illegal tag encountered while unpacking -> lferr.Type
//   - a tag this profile's ABI cannot carry (e.g. u64 on AVR8) -> lferr.Type
func Call(ctx context.Context, entry Entry, profile Profile, retTag wire.Tag, argc int, typesWord uint64, argv []byte) (uint64, lferr.Code) {
	if retTag != wire.Void {
		if _, err := wire.Sizeof(retTag, profile.WordSize); err != nil {
			return Sentinel, lferr.Type
		}
		if !profile.Supports64 && is64(retTag) {
			return Sentinel, lferr.Type
		}
	}

	stackLen := argc
	if retTag != wire.Void && stackLen < 1 {
		stackLen = 1
	}
	stack := make([]uint64, stackLen)
	off := 0
	for i := 0; i < argc; i++ {
		tag := wire.Tag((typesWord >> (4 * uint(i))) & 0xF)
		if !tag.Valid() || tag == wire.Void {
			return Sentinel, lferr.Type
		}
		if !profile.Supports64 && is64(tag) {
			return Sentinel, lferr.Type
		}
		n, err := wire.Sizeof(tag, profile.WordSize)
		if err != nil {
			return Sentinel, lferr.Type
		}
		if off+n > len(argv) {
			return Sentinel, lferr.Overflow
		}
		stack[i] = rawLE(argv[off : off+n])
		off += n
	}

	if entry == nil {
		return Sentinel, lferr.Null
	}

	if err := entry.CallWithStack(ctx, stack); err != nil {
		return Sentinel, lferr.Fmr
	}

	if retTag == wire.Void {
		return 0, lferr.OK
	}
	return normalize(stack[0], retTag, profile.WordSize), lferr.OK
}

// is64 reports whether t is the 8-byte width class (u64/i64).
func is64(t wire.Tag) bool {
	return t == wire.U64 || t == wire.I64
}

// rawLE reads b as an unsigned little-endian integer, zero-extended to
// 64 bits, with no sign interpretation: the native call frame carries raw
// bit patterns, exactly as wazero's stack slots do for sub-64-bit wasm
// value types.
func rawLE(b []byte) uint64 {
	var v uint64
	for i, c := range b {
		v |= uint64(c) << (8 * uint(i))
	}
	return v
}

// normalize zero- or sign-extends a raw return register pattern to a
// full 64-bit value, based on retTag (spec §4.6 step 4, P5).
func normalize(raw uint64, retTag wire.Tag, wordSize int) uint64 {
	n, err := wire.Sizeof(retTag, wordSize)
	if err != nil {
		return raw
	}
	if n >= 8 {
		return raw
	}
	bits := uint(n * 8)
	mask := (uint64(1) << bits) - 1
	v := raw & mask
	if !retTag.Signed() {
		return v
	}
	signBit := uint64(1) << (bits - 1)
	if v&signBit == 0 {
		return v
	}
	return v | (^uint64(0) << bits)
}
