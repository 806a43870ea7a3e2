package transport

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestPipePushPullRoundTrip(t *testing.T) {
	a, b := NewPipe()
	defer a.Destroy(context.Background())
	defer b.Destroy(context.Background())

	want := []byte{0xDE, 0xAD, 0xBE, 0xEF}
	errCh := make(chan error, 1)
	go func() { errCh <- a.Push(context.Background(), want) }()

	got := make([]byte, len(want))
	require.NoError(t, b.Pull(context.Background(), got))
	require.NoError(t, <-errCh)
	require.Equal(t, want, got)
}

func TestPipeDestroyRejectsFurtherOps(t *testing.T) {
	a, b := NewPipe()
	defer b.Destroy(context.Background())

	require.NoError(t, a.Destroy(context.Background()))
	require.ErrorIs(t, a.Push(context.Background(), []byte{1}), ErrClosed)
	require.ErrorIs(t, a.Pull(context.Background(), make([]byte, 1)), ErrClosed)
	require.ErrorIs(t, a.Configure(context.Background(), nil), ErrClosed)
}

func TestPipePullHonorsContextCancellation(t *testing.T) {
	a, b := NewPipe()
	defer a.Destroy(context.Background())
	defer b.Destroy(context.Background())

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := a.Pull(ctx, make([]byte, 4)) // nothing ever pushed
	require.Error(t, err)
}
