package host

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/danmuck/lf/internal/arglist"
	"github.com/danmuck/lf/internal/device"
	"github.com/danmuck/lf/internal/frame"
	"github.com/danmuck/lf/internal/lferr"
	"github.com/danmuck/lf/internal/lfregistry"
	"github.com/danmuck/lf/internal/trampoline"
	"github.com/danmuck/lf/internal/transport"
	"github.com/danmuck/lf/internal/wire"
)

func doubleU32() trampoline.Entry {
	return trampoline.NativeFunc(func(ctx context.Context, stack []uint64) error {
		stack[0] = stack[0] * 2
		return nil
	})
}

// serve runs count Perform calls against e in a goroutine, forwarding
// the first error (or nil once count is exhausted) on the returned
// channel.
func serve(ctx context.Context, e *device.Engine, count int) chan error {
	errCh := make(chan error, 1)
	go func() {
		for i := 0; i < count; i++ {
			if err := e.Perform(ctx); err != nil {
				errCh <- err
				return
			}
		}
		errCh <- nil
	}()
	return errCh
}

// newPair wires a device.Engine to a host.Device over a transport.Pipe,
// sharing the registry directly per package doc's bind-resolution
// decision.
func newPair(t *testing.T, reg *lfregistry.Registry) (*device.Engine, *Device) {
	t.Helper()
	hostSide, deviceSide := transport.NewPipe()
	t.Cleanup(func() {
		hostSide.Destroy(context.Background())
		deviceSide.Destroy(context.Background())
	})
	// queryConfiguration refuses a reply whose identifier doesn't match
	// CRC16(Name), so the simulated device must report that value.
	devEngine := device.New(frame.CRC16([]byte("sim0")), reg, trampoline.ARM32, 4096, deviceSide)
	hostDev := &Device{
		Name:        "sim0",
		PointerSize: 4,
		Endpoint:    hostSide,
		Registry:    reg,
	}
	return devEngine, hostDev
}

func TestAttachSelectDeselect(t *testing.T) {
	reg := lfregistry.New(128)
	_, devA := newPair(t, reg)
	_, devB := newPair(t, reg)

	e := New()
	e.Attach(devA)
	e.Attach(devB)

	require.NoError(t, e.Select(devA))
	require.True(t, devA.Selected())
	require.ErrorIs(t, e.Select(devB), ErrAlreadySelected)

	e.Deselect()
	require.False(t, devA.Selected())
	require.NoError(t, e.Select(devB))
	require.True(t, devB.Selected())
}

func TestDetachDestroysEndpointAndClearsSelection(t *testing.T) {
	reg := lfregistry.New(128)
	_, devA := newPair(t, reg)

	e := New()
	e.Attach(devA)
	require.NoError(t, e.Select(devA))

	require.NoError(t, e.Detach(context.Background(), devA))
	require.Nil(t, e.Selected())

	require.Error(t, devA.Endpoint.Push(context.Background(), []byte{0}))
}

func TestBindResolvesIndexFromRegistry(t *testing.T) {
	reg := lfregistry.New(128)
	_, err := reg.Register("math", []lfregistry.FunctionSpec{
		{Entry: doubleU32(), ParamTypes: []wire.Tag{wire.U32}, Return: wire.U32},
	})
	require.NoError(t, err)
	_, dev := newPair(t, reg)

	m := &Module{Name: "math"}
	require.NoError(t, m.Bind(dev))
	require.EqualValues(t, 0, m.Index)
	require.False(t, m.User)

	// Idempotent per P7: binding again against the same device doesn't
	// re-query and yields the same index.
	require.NoError(t, m.Bind(dev))
	require.EqualValues(t, 0, m.Index)
}

func TestBindUnknownModuleFails(t *testing.T) {
	reg := lfregistry.New(128)
	_, dev := newPair(t, reg)

	m := &Module{Name: "missing"}
	require.ErrorIs(t, m.Bind(dev), ErrModule)
}

func TestInvokeRoundTripThroughDeviceEngine(t *testing.T) {
	reg := lfregistry.New(128)
	_, err := reg.Register("math", []lfregistry.FunctionSpec{
		{Entry: doubleU32(), ParamTypes: []wire.Tag{wire.U32}, Return: wire.U32},
	})
	require.NoError(t, err)
	devEngine, dev := newPair(t, reg)

	m := &Module{Name: "math"}
	require.NoError(t, m.Bind(dev))

	errCh := serve(context.Background(), devEngine, 1)
	e := New()
	value, err := e.Invoke(context.Background(), m, 0, []arglist.Item{{Tag: wire.U32, Value: 21}}, wire.U32)
	require.NoError(t, err)
	require.EqualValues(t, 42, value)
	require.NoError(t, <-errCh)
}

func TestInvokeUnboundModuleFails(t *testing.T) {
	m := &Module{Name: "math"}
	e := New()
	_, err := e.Invoke(context.Background(), m, 0, nil, wire.Void)
	require.ErrorIs(t, err, ErrNoDevice)
}

func TestInvokeUnknownFunctionSetsErrorSlot(t *testing.T) {
	reg := lfregistry.New(128)
	_, err := reg.Register("math", []lfregistry.FunctionSpec{
		{Entry: doubleU32(), ParamTypes: []wire.Tag{wire.U32}, Return: wire.U32},
	})
	require.NoError(t, err)
	devEngine, dev := newPair(t, reg)

	m := &Module{Name: "math"}
	require.NoError(t, m.Bind(dev))

	errCh := serve(context.Background(), devEngine, 1)
	e := New()
	_, err = e.Invoke(context.Background(), m, 9, nil, wire.Void)
	require.ErrorIs(t, err, ErrFailure)
	require.Equal(t, lferr.Null, e.Slot.Get())
	require.NoError(t, <-errCh)
}

func TestSendAndLoadRAMRoundTrip(t *testing.T) {
	reg := lfregistry.New(128)
	devEngine, dev := newPair(t, reg)

	errCh := serve(context.Background(), devEngine, 2)
	e := New()

	payload := []byte{1, 2, 3, 4}
	addr, err := e.Send(context.Background(), dev, payload)
	require.NoError(t, err)
	stored, err := devEngine.Memory.Read(uint32(addr), uint32(len(payload)))
	require.NoError(t, err)
	require.Equal(t, payload, stored)

	ramPayload := []byte{9, 9}
	addr2, err := e.LoadRAM(context.Background(), dev, ramPayload)
	require.NoError(t, err)
	require.NotEqual(t, addr, addr2)
	require.NoError(t, <-errCh)
}

func TestPushPrependsImplicitPtrAndLength(t *testing.T) {
	reg := lfregistry.New(128)
	captured := make(chan []uint64, 1)
	_, err := reg.Register("bulk", []lfregistry.FunctionSpec{
		{Entry: trampoline.NativeFunc(func(ctx context.Context, stack []uint64) error {
			captured <- append([]uint64(nil), stack...)
			return nil
		}), ParamTypes: []wire.Tag{wire.Ptr, wire.U32}, Return: wire.Ptr},
	})
	require.NoError(t, err)
	devEngine, dev := newPair(t, reg)

	m := &Module{Name: "bulk"}
	require.NoError(t, m.Bind(dev))

	errCh := serve(context.Background(), devEngine, 1)
	e := New()
	call, err := frame.BuildInvocationBody(m.Index, 0, wire.Ptr, nil, 4)
	require.NoError(t, err)

	payload := []byte{5, 6, 7, 8}
	value, err := e.Push(context.Background(), dev, call, payload)
	require.NoError(t, err)
	require.NoError(t, <-errCh)

	stack := <-captured
	require.Len(t, stack, 2)
	require.Equal(t, value, stack[0])
	require.EqualValues(t, len(payload), stack[1])
}

func TestPullInvokesThenReturnsPayload(t *testing.T) {
	reg := lfregistry.New(128)
	_, err := reg.Register("source", []lfregistry.FunctionSpec{
		{Entry: trampoline.NativeFunc(func(ctx context.Context, stack []uint64) error {
			return nil
		}), ParamTypes: []wire.Tag{wire.Ptr, wire.U32}, Return: wire.Void},
	})
	require.NoError(t, err)
	devEngine, dev := newPair(t, reg)

	fill := []byte{0xAA, 0xBB, 0xCC}
	// Memory is a bump allocator; pre-seed the offset Perform is about
	// to allocate since the stub function above doesn't fill it itself.
	require.NoError(t, devEngine.Memory.Write(0, fill))

	m := &Module{Name: "source"}
	require.NoError(t, m.Bind(dev))

	errCh := serve(context.Background(), devEngine, 1)
	e := New()
	call, err := frame.BuildInvocationBody(m.Index, 0, wire.Void, nil, 4)
	require.NoError(t, err)

	got, err := e.Pull(context.Background(), dev, call, uint32(len(fill)))
	require.NoError(t, err)
	require.Equal(t, fill, got)
	require.NoError(t, <-errCh)
}

func TestReceiveReadsFromGivenAddress(t *testing.T) {
	reg := lfregistry.New(128)
	devEngine, dev := newPair(t, reg)

	payload := []byte{9, 9, 9}
	addr, err := devEngine.Memory.Alloc(uint32(len(payload)))
	require.NoError(t, err)
	require.NoError(t, devEngine.Memory.Write(addr, payload))

	call, err := frame.BuildInvocationBody(0, 0, wire.Void, []arglist.Item{{Tag: wire.Ptr, Value: uint64(addr)}}, 4)
	require.NoError(t, err)

	errCh := serve(context.Background(), devEngine, 1)
	e := New()
	got, err := e.Receive(context.Background(), dev, call, uint32(len(payload)))
	require.NoError(t, err)
	require.Equal(t, payload, got)
	require.NoError(t, <-errCh)
}

func TestAttachAllQueriesConfigurationConcurrently(t *testing.T) {
	reg := lfregistry.New(128)
	devEngineA, devA := newPair(t, reg)
	devEngineB, devB := newPair(t, reg)

	errA := serve(context.Background(), devEngineA, 1)
	errB := serve(context.Background(), devEngineB, 1)

	e := New()
	require.NoError(t, e.AttachAll(context.Background(), []*Device{devA, devB}))
	require.NoError(t, <-errA)
	require.NoError(t, <-errB)

	want := frame.CRC16([]byte("sim0"))
	require.EqualValues(t, want, devA.Identifier)
	require.EqualValues(t, 4, devA.PointerSize)
	require.EqualValues(t, want, devB.Identifier)
}

func TestAttachAllRejectsIdentifierMismatch(t *testing.T) {
	reg := lfregistry.New(128)
	hostSide, deviceSide := transport.NewPipe()
	t.Cleanup(func() {
		hostSide.Destroy(context.Background())
		deviceSide.Destroy(context.Background())
	})
	// The device reports an identifier for some other name; "sim0"'s
	// record should refuse to adopt it.
	devEngine := device.New(frame.CRC16([]byte("not-sim0")), reg, trampoline.ARM32, 4096, deviceSide)
	dev := &Device{
		Name:        "sim0",
		PointerSize: 4,
		Endpoint:    hostSide,
		Registry:    reg,
	}

	errCh := serve(context.Background(), devEngine, 1)
	e := New()
	err := e.AttachAll(context.Background(), []*Device{dev})
	require.ErrorIs(t, err, ErrNoDevice)
	require.NoError(t, <-errCh)
	require.Zero(t, dev.Identifier)
}

func TestDetachAllDestroysEndpointsConcurrently(t *testing.T) {
	reg := lfregistry.New(128)
	_, devA := newPair(t, reg)
	_, devB := newPair(t, reg)

	e := New()
	e.Attach(devA)
	e.Attach(devB)

	require.NoError(t, e.DetachAll(context.Background(), []*Device{devA, devB}))
	require.Error(t, devA.Endpoint.Push(context.Background(), []byte{0}))
	require.Error(t, devB.Endpoint.Push(context.Background(), []byte{0}))
}
