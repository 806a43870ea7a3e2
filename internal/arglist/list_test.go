package arglist

import (
	"testing"

	"github.com/danmuck/lf/internal/wire"
	"github.com/stretchr/testify/require"
)

func TestAppendAndOrder(t *testing.T) {
	l := New()
	require.NoError(t, l.Append(10, wire.U8))
	require.NoError(t, l.Append(20, wire.U8))
	require.NoError(t, l.Append(30, wire.U8))

	items := l.Iter()
	require.Len(t, items, 3)
	require.Equal(t, uint64(10), items[0].Value)
	require.Equal(t, uint64(20), items[1].Value)
	require.Equal(t, uint64(30), items[2].Value)
}

func TestAppendOverflow(t *testing.T) {
	l := New()
	for i := 0; i < MaxArgc; i++ {
		require.NoError(t, l.Append(uint64(i), wire.U8))
	}
	err := l.Append(0, wire.U8)
	require.ErrorIs(t, err, ErrOverflow)
	require.Equal(t, MaxArgc, l.Len(), "overflowing append must not mutate the list")
}

func TestAppendIllegalType(t *testing.T) {
	l := New()
	err := l.Append(0, wire.Tag(5))
	require.ErrorIs(t, err, wire.ErrIllegalType)
	require.Equal(t, 0, l.Len())

	err = l.Append(0, wire.Void)
	require.ErrorIs(t, err, wire.ErrIllegalType)
}

func TestReleaseBlocksFurtherAppend(t *testing.T) {
	l := New()
	require.NoError(t, l.Append(1, wire.U8))
	l.Release()
	err := l.Append(2, wire.U8)
	require.ErrorIs(t, err, ErrReleased)
}
