package wire

import "fmt"

// Pack writes v, narrowed to t's wire width, into dst as strict
// little-endian. dst must be at least Sizeof(t, wordSize) bytes.
func Pack(v uint64, t Tag, wordSize int, dst []byte) (int, error) {
	n, err := Sizeof(t, wordSize)
	if err != nil {
		return 0, err
	}
	if len(dst) < n {
		return 0, fmt.Errorf("wire: dst too small for %s: need %d have %d", t, n, len(dst))
	}
	for i := 0; i < n; i++ {
		dst[i] = byte(v >> (8 * uint(i)))
	}
	return n, nil
}

// Unpack reads a t-wide little-endian value from src and returns it
// zero-extended (unsigned tags) or sign-extended (signed tags) to 64 bits.
func Unpack(src []byte, t Tag, wordSize int) (uint64, error) {
	n, err := Sizeof(t, wordSize)
	if err != nil {
		return 0, err
	}
	if t == Void {
		return 0, nil
	}
	if len(src) < n {
		return 0, fmt.Errorf("wire: src too small for %s: need %d have %d", t, n, len(src))
	}
	var v uint64
	for i := 0; i < n; i++ {
		v |= uint64(src[i]) << (8 * uint(i))
	}
	if t.Signed() {
		v = signExtend(v, n)
	}
	return v, nil
}

// signExtend sign-extends the low nBytes*8 bits of v to a full 64-bit word.
func signExtend(v uint64, nBytes int) uint64 {
	bits := uint(nBytes * 8)
	if bits >= 64 {
		return v
	}
	signBit := uint64(1) << (bits - 1)
	if v&signBit == 0 {
		return v
	}
	mask := ^uint64(0) << bits
	return v | mask
}
