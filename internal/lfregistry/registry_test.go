package lfregistry

import (
	"context"
	"testing"

	"github.com/danmuck/lf/internal/trampoline"
	"github.com/danmuck/lf/internal/wire"
	"github.com/stretchr/testify/require"
)

func noop() trampoline.Entry {
	return trampoline.NativeFunc(func(ctx context.Context, stack []uint64) error { return nil })
}

func TestRegisterAssignsStableIndices(t *testing.T) {
	r := New(128)

	m0, err := r.Register("led", []FunctionSpec{{Entry: noop(), Return: wire.Void}})
	require.NoError(t, err)
	require.EqualValues(t, 0, m0.Index)

	m1, err := r.Register("gpio", []FunctionSpec{{Entry: noop(), Return: wire.U8}})
	require.NoError(t, err)
	require.EqualValues(t, 1, m1.Index)
}

func TestRegisterDuplicateIdentifierFails(t *testing.T) {
	r := New(128)
	_, err := r.Register("led", nil)
	require.NoError(t, err)

	_, err = r.Register("led", nil)
	require.ErrorIs(t, err, ErrModuleExists)
}

func TestRegisterNameTooLongFails(t *testing.T) {
	r := New(128)
	_, err := r.Register("name-is-sixteen!", nil)
	require.ErrorIs(t, err, ErrNameTooLong)
}

func TestResolveOutOfRangeIsNull(t *testing.T) {
	r := New(128)
	_, err := r.Register("led", []FunctionSpec{{Entry: noop(), Return: wire.Void}})
	require.NoError(t, err)

	_, err = r.Resolve(0, 5) // function index out of range
	require.ErrorIs(t, err, ErrNull)

	_, err = r.Resolve(9, 0) // module index out of range
	require.ErrorIs(t, err, ErrNull)
}

func TestLoadAssignsUserBit(t *testing.T) {
	r := New(1)
	_, err := r.Register("led", nil)
	require.NoError(t, err)

	um, err := r.Load("scripted", []FunctionSpec{{Entry: noop(), Return: wire.Void}})
	require.NoError(t, err)
	require.EqualValues(t, UserBit|1, um.Index)
	require.NotZero(t, um.Index&UserBit)
}

func TestFldIndexCorrelatesByIdentifier(t *testing.T) {
	r := New(128)
	m, err := r.Register("led", nil)
	require.NoError(t, err)

	idx, ok := r.FldIndex(m.Identifier)
	require.True(t, ok)
	require.Equal(t, m.Index, idx)

	_, ok = r.FldIndex(0xDEAD)
	require.False(t, ok)
}

func TestRegisterFullTableFails(t *testing.T) {
	r := New(1)
	_, err := r.Register("a", nil)
	require.NoError(t, err)

	_, err = r.Register("b", nil)
	require.ErrorIs(t, err, ErrFull)
}

func TestFunctionSpecArity(t *testing.T) {
	fn := FunctionSpec{ParamTypes: []wire.Tag{wire.U8, wire.U32, wire.I16}}
	require.Equal(t, 3, fn.Arity())
}
