package lf

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/danmuck/lf/internal/device"
	"github.com/danmuck/lf/internal/frame"
	"github.com/danmuck/lf/internal/lfregistry"
	"github.com/danmuck/lf/internal/trampoline"
	"github.com/danmuck/lf/internal/transport"
	"github.com/danmuck/lf/internal/wire"
)

func doublingRegistry(t *testing.T) *lfregistry.Registry {
	t.Helper()
	reg := lfregistry.New(128)
	_, err := reg.Register("math", []lfregistry.FunctionSpec{
		{Entry: trampoline.NativeFunc(func(ctx context.Context, stack []uint64) error {
			stack[0] = stack[0] * 2
			return nil
		}), ParamTypes: []wire.Tag{wire.U32}, Return: wire.U32},
	})
	require.NoError(t, err)
	return reg
}

func TestAttachSelectInvokeReleaseEndToEnd(t *testing.T) {
	reg := doublingRegistry(t)
	hostSide, deviceSide := transport.NewPipe()
	t.Cleanup(func() {
		hostSide.Destroy(context.Background())
		deviceSide.Destroy(context.Background())
	})
	devEngine := device.New(frame.CRC16([]byte("board0")), reg, trampoline.ARM32, 4096, deviceSide)

	errCh := make(chan error, 1)
	go func() { errCh <- devEngine.Perform(context.Background()) }()

	devices, idents, err := AttachUSB(context.Background(), []Descriptor{
		{Name: "board0", Endpoint: hostSide, Registry: reg, PointerSize: 4},
	})
	require.NoError(t, err)
	require.Len(t, devices, 1)
	require.Equal(t, frame.CRC16([]byte("board0")), idents[0])
	require.NoError(t, <-errCh)

	selected, err := Select(devices, 0)
	require.NoError(t, err)
	require.Same(t, devices[0], selected)

	argv := CreateArgs()
	require.NoError(t, AppendArg(argv, 21, uint8(wire.U32)))

	errCh = make(chan error, 1)
	go func() { errCh <- devEngine.Perform(context.Background()) }()
	value, err := Invoke(context.Background(), devices[0], "math", 0, argv, uint8(wire.U32))
	require.NoError(t, err)
	require.EqualValues(t, 42, value)
	require.NoError(t, <-errCh)

	require.NoError(t, Release(context.Background(), devices[0]))
}

func TestAttachUSBNoDescriptorsFails(t *testing.T) {
	_, _, err := AttachUSB(context.Background(), nil)
	require.ErrorIs(t, err, NoDevicesFound)
}

func TestSelectOutOfBoundsFails(t *testing.T) {
	_, err := Select(nil, 0)
	require.ErrorIs(t, err, IndexOutOfBounds)
}

func TestInvokeUnknownFunctionSurfacesInvocationErrorAndSlot(t *testing.T) {
	reg := doublingRegistry(t)
	hostSide, deviceSide := transport.NewPipe()
	t.Cleanup(func() {
		hostSide.Destroy(context.Background())
		deviceSide.Destroy(context.Background())
	})
	devEngine := device.New(frame.CRC16([]byte("board0")), reg, trampoline.ARM32, 4096, deviceSide)

	errCh := make(chan error, 1)
	go func() { errCh <- devEngine.Perform(context.Background()) }()
	devices, _, err := AttachUSB(context.Background(), []Descriptor{
		{Name: "board0", Endpoint: hostSide, Registry: reg, PointerSize: 4},
	})
	require.NoError(t, err)
	require.NoError(t, <-errCh)

	errCh = make(chan error, 1)
	go func() { errCh <- devEngine.Perform(context.Background()) }()
	_, err = Invoke(context.Background(), devices[0], "math", 9, CreateArgs(), uint8(wire.Void))
	require.ErrorIs(t, err, InvocationError)
	require.NoError(t, <-errCh)

	require.NotEqual(t, 0, int(ErrorGet()))
}

func TestAppendArgRejectsVoidTag(t *testing.T) {
	argv := CreateArgs()
	require.ErrorIs(t, AppendArg(argv, 0, uint8(wire.Void)), IllegalType)
}
