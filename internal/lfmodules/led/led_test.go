package led

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/danmuck/lf/internal/lferr"
	"github.com/danmuck/lf/internal/trampoline"
)

func TestSetRGBThenOff(t *testing.T) {
	s := &State{}
	fns := Functions(s)
	require.Len(t, fns, 2)

	_, code := trampoline.Call(context.Background(), fns[0].Entry, trampoline.ARM32, fns[0].Return, 3, 0x000, []byte{10, 20, 30})
	require.Equal(t, lferr.OK, code)
	r, g, b := s.Color()
	require.Equal(t, uint8(10), r)
	require.Equal(t, uint8(20), g)
	require.Equal(t, uint8(30), b)

	_, code = trampoline.Call(context.Background(), fns[1].Entry, trampoline.ARM32, fns[1].Return, 0, 0, nil)
	require.Equal(t, lferr.OK, code)
	r, g, b = s.Color()
	require.Zero(t, r)
	require.Zero(t, g)
	require.Zero(t, b)
}
