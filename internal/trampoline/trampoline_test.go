package trampoline

import (
	"context"
	"errors"
	"testing"

	"github.com/danmuck/lf/internal/lferr"
	"github.com/danmuck/lf/internal/wire"
	"github.com/stretchr/testify/require"
)

func packLE(v uint64, n int) []byte {
	b := make([]byte, n)
	for i := 0; i < n; i++ {
		b[i] = byte(v >> (8 * uint(i)))
	}
	return b
}

func TestCallVoidNoArgs(t *testing.T) {
	called := false
	entry := NativeFunc(func(ctx context.Context, stack []uint64) error {
		called = true
		require.Empty(t, stack)
		return nil
	})

	v, code := Call(context.Background(), entry, ARM32, wire.Void, 0, 0, nil)
	require.Equal(t, lferr.OK, code)
	require.EqualValues(t, 0, v)
	require.True(t, called)
}

func TestCallSignExtendsNegativeI16Return(t *testing.T) {
	entry := NativeFunc(func(ctx context.Context, stack []uint64) error {
		stack[0] = 0xFFFF // raw i16 bit pattern for -1
		return nil
	})

	v, code := Call(context.Background(), entry, ARM32, wire.I16, 0, 0, nil)
	require.Equal(t, lferr.OK, code)
	require.Equal(t, uint64(0xFFFFFFFFFFFFFFFF), v)
}

func TestCallZeroExtendsU8Return(t *testing.T) {
	entry := NativeFunc(func(ctx context.Context, stack []uint64) error {
		stack[0] = 0xFF
		return nil
	})

	v, code := Call(context.Background(), entry, ARM32, wire.U8, 0, 0, nil)
	require.Equal(t, lferr.OK, code)
	require.EqualValues(t, 0xFF, v)
}

func TestCallMarshalsArgsOntoStack(t *testing.T) {
	var seen []uint64
	entry := NativeFunc(func(ctx context.Context, stack []uint64) error {
		seen = append([]uint64(nil), stack...)
		return nil
	})

	argv := append(packLE(10, 1), packLE(0xBEEF, 4)...)
	typesWord := uint64(wire.U8) | uint64(wire.U32)<<4

	_, code := Call(context.Background(), entry, ARM32, wire.Void, 2, typesWord, argv)
	require.Equal(t, lferr.OK, code)
	require.Equal(t, []uint64{10, 0xBEEF}, seen)
}

func TestCallRejectsIllegalTagMidUnpack(t *testing.T) {
	entry := NativeFunc(func(ctx context.Context, stack []uint64) error {
		t.Fatal("entry must not be invoked on an illegal tag")
		return nil
	})

	typesWord := uint64(wire.U8) | uint64(5)<<4 // tag 5 is not a valid wire.Tag
	v, code := Call(context.Background(), entry, ARM32, wire.Void, 2, typesWord, packLE(0, 8))

	require.Equal(t, Sentinel, v)
	require.Equal(t, lferr.Type, code)
}

func TestCallRejectsUnsupported64BitOnNarrowProfile(t *testing.T) {
	entry := NativeFunc(func(ctx context.Context, stack []uint64) error {
		t.Fatal("entry must not be invoked when the ABI cannot carry the arg")
		return nil
	})

	typesWord := uint64(wire.U64)
	v, code := Call(context.Background(), entry, AVR8, wire.Void, 1, typesWord, packLE(0, 8))

	require.Equal(t, Sentinel, v)
	require.Equal(t, lferr.Type, code)
}

func TestCallRejectsUnsupported64BitReturnOnNarrowProfile(t *testing.T) {
	entry := NativeFunc(func(ctx context.Context, stack []uint64) error {
		t.Fatal("entry must not be invoked when the return type can't fit this ABI")
		return nil
	})

	v, code := Call(context.Background(), entry, AVR8, wire.I64, 0, 0, nil)
	require.Equal(t, Sentinel, v)
	require.Equal(t, lferr.Type, code)
}

func TestCallRejectsArgvOverflow(t *testing.T) {
	entry := NativeFunc(func(ctx context.Context, stack []uint64) error {
		t.Fatal("entry must not be invoked when argv is short")
		return nil
	})

	typesWord := uint64(wire.U32)
	v, code := Call(context.Background(), entry, ARM32, wire.Void, 1, typesWord, packLE(0, 2))

	require.Equal(t, Sentinel, v)
	require.Equal(t, lferr.Overflow, code)
}

func TestCallNilEntryReturnsNull(t *testing.T) {
	v, code := Call(context.Background(), nil, ARM32, wire.Void, 0, 0, nil)
	require.Equal(t, Sentinel, v)
	require.Equal(t, lferr.Null, code)
}

func TestCallEntryErrorReturnsFmr(t *testing.T) {
	entry := NativeFunc(func(ctx context.Context, stack []uint64) error {
		return errors.New("boom")
	})

	v, code := Call(context.Background(), entry, ARM32, wire.Void, 0, 0, nil)
	require.Equal(t, Sentinel, v)
	require.Equal(t, lferr.Fmr, code)
}

func TestCallResolvesNativeWidthByProfile(t *testing.T) {
	entry := NativeFunc(func(ctx context.Context, stack []uint64) error {
		stack[0] = 0xFFFF // raw native-width pattern on a 16-bit profile
		return nil
	})

	v, code := Call(context.Background(), entry, AVR8, wire.Uint, 0, 0, nil)
	require.Equal(t, lferr.OK, code)
	require.EqualValues(t, 0xFFFF, v) // Uint is unsigned: zero-extended, not sign-extended
}
