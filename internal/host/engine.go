package host

import (
	"context"
	"errors"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/danmuck/lf/internal/arglist"
	"github.com/danmuck/lf/internal/frame"
	"github.com/danmuck/lf/internal/lferr"
	"github.com/danmuck/lf/internal/wire"
)

var (
	// ErrNoDevice mirrors spec.md's Invoke step 1 (module.device unattached).
	ErrNoDevice = errors.New("host: device not attached")
	// ErrFailure is returned when a device-side Result carries a
	// non-zero error; the actual code is available from Engine.Slot.
	ErrFailure = errors.New("host: invocation failed, see error slot")
)

// Engine is the host-side C8 invocation engine: attach/select/detach
// over a set of devices, Invoke/Push/Pull against a bound Module.
//
// Grounded on edgectl's internal/ghost dispatch shape (resolve -> build
// -> transfer -> surface result), mirrored from the device side's
// internal/device.Engine.
type Engine struct {
	Slot *lferr.Slot

	mu       sync.Mutex
	devices  []*Device
	selected *Device
}

// New builds an empty host engine.
func New() *Engine {
	return &Engine{Slot: &lferr.Slot{}}
}

// Attach registers dev as a newly attached device. Attaching does not
// select it; callers call Select explicitly (spec: "at most one
// selected device at a time").
func (e *Engine) Attach(dev *Device) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.devices = append(e.devices, dev)
}

// Select marks dev as the process's selected device. If another device
// is already selected, it returns ErrAlreadySelected; callers must
// Deselect first.
func (e *Engine) Select(dev *Device) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.selected != nil && e.selected != dev {
		return ErrAlreadySelected
	}
	dev.mu.Lock()
	dev.selected = true
	dev.mu.Unlock()
	e.selected = dev
	return nil
}

// Deselect clears the process's current selection, if any.
func (e *Engine) Deselect() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.selected != nil {
		e.selected.mu.Lock()
		e.selected.selected = false
		e.selected.mu.Unlock()
		e.selected = nil
	}
}

// Selected returns the process's currently selected device, if any.
func (e *Engine) Selected() *Device {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.selected
}

// Detach destroys dev's endpoint and removes it from the attached set.
func (e *Engine) Detach(ctx context.Context, dev *Device) error {
	e.mu.Lock()
	for i, d := range e.devices {
		if d == dev {
			e.devices = append(e.devices[:i], e.devices[i+1:]...)
			break
		}
	}
	if e.selected == dev {
		e.selected = nil
	}
	e.mu.Unlock()
	return dev.Endpoint.Destroy(ctx)
}

// AttachAll attaches every device in devs and queries each one's
// configuration concurrently, surfacing the first failure (spec §5:
// "multiple endpoints may progress independently"). A device whose
// query fails is still attached; callers inspect the returned error to
// decide whether to Detach it.
func (e *Engine) AttachAll(ctx context.Context, devs []*Device) error {
	for _, dev := range devs {
		e.Attach(dev)
	}
	group, gctx := errgroup.WithContext(ctx)
	for _, dev := range devs {
		dev := dev
		group.Go(func() error {
			return dev.queryConfiguration(gctx)
		})
	}
	return group.Wait()
}

// DetachAll destroys every device's endpoint concurrently and removes
// each from the attached set, collecting the first failure.
func (e *Engine) DetachAll(ctx context.Context, devs []*Device) error {
	group, gctx := errgroup.WithContext(ctx)
	for _, dev := range devs {
		dev := dev
		group.Go(func() error {
			return e.Detach(gctx, dev)
		})
	}
	return group.Wait()
}

// Invoke is the C8 contract: resolve module.Device and module.Index,
// build an InvocationBody, transfer it, pull the Result, and surface
// value or ErrFailure (spec §4.8).
func (e *Engine) Invoke(ctx context.Context, m *Module, function uint8, args []arglist.Item, retTag wire.Tag) (uint64, error) {
	if m.Device == nil {
		return 0, ErrNoDevice
	}
	if !m.bound {
		return 0, ErrModule
	}

	pkt, err := frame.BuildInvocation(m.Index, function, retTag, args, int(m.Device.PointerSize), m.User)
	if err != nil {
		return 0, err
	}

	result, err := e.transact(ctx, m.Device, pkt, nil)
	if err != nil {
		return 0, err
	}
	if result.Error != 0 {
		e.Slot.Set(lferr.Code(result.Error))
		return 0, ErrFailure
	}
	return result.Value, nil
}

// LoadRAM is the host side of the ram-load class: raw bytes are pushed
// and the device replies with the address they were written to.
func (e *Engine) LoadRAM(ctx context.Context, dev *Device, payload []byte) (uint64, error) {
	return e.transferIn(ctx, dev, frame.ClassRAMLoad, frame.InvocationBody{}, payload)
}

// Send is the host side of the send class: identical transfer shape to
// LoadRAM, distinguished only by class (spec §4.7).
func (e *Engine) Send(ctx context.Context, dev *Device, payload []byte) (uint64, error) {
	return e.transferIn(ctx, dev, frame.ClassSend, frame.InvocationBody{}, payload)
}

// Push is the host side of the push class: the packet plus a raw
// payload are both sent before the Result is pulled (spec §4.7/§4.8
// step 3). call describes the sub-invocation the device runs with
// (ptr, length) prepended to its explicit arguments.
func (e *Engine) Push(ctx context.Context, dev *Device, call frame.InvocationBody, payload []byte) (uint64, error) {
	return e.transferIn(ctx, dev, frame.ClassPush, call, payload)
}

// Pull is the host side of the pull class: the packet is sent, then
// the raw payload and the Result are both pulled back, in that order.
func (e *Engine) Pull(ctx context.Context, dev *Device, call frame.InvocationBody, length uint32) ([]byte, error) {
	return e.transferOut(ctx, dev, frame.ClassPull, call, length)
}

// Receive is the host side of the receive class: no function is
// invoked device-side; Length bytes are read from the address named by
// call's first explicit argument and transmitted back.
func (e *Engine) Receive(ctx context.Context, dev *Device, call frame.InvocationBody, length uint32) ([]byte, error) {
	return e.transferOut(ctx, dev, frame.ClassReceive, call, length)
}

// transferIn backs ram-load, send, and push: push the packet, push the
// raw payload, pull one Result (spec §4.7/§4.8 step 3).
func (e *Engine) transferIn(ctx context.Context, dev *Device, class frame.Class, call frame.InvocationBody, payload []byte) (uint64, error) {
	pkt, err := frame.BuildPushPull(class, uint32(len(payload)), call)
	if err != nil {
		return 0, err
	}
	result, err := e.transact(ctx, dev, pkt, payload)
	if err != nil {
		return 0, err
	}
	if result.Error != 0 {
		e.Slot.Set(lferr.Code(result.Error))
		return 0, ErrFailure
	}
	return result.Value, nil
}

// transferOut backs pull and receive: push the packet, then pull back
// the raw payload followed by the Result, in that order (P6).
func (e *Engine) transferOut(ctx context.Context, dev *Device, class frame.Class, call frame.InvocationBody, length uint32) ([]byte, error) {
	pkt, err := frame.BuildPushPull(class, length, call)
	if err != nil {
		return nil, err
	}

	raw := padAndEncode(pkt)
	if err := dev.Endpoint.Push(ctx, raw); err != nil {
		return nil, err
	}
	payload := make([]byte, length)
	if err := dev.Endpoint.Pull(ctx, payload); err != nil {
		return nil, err
	}
	resultBuf := make([]byte, frame.ResultSize)
	if err := dev.Endpoint.Pull(ctx, resultBuf); err != nil {
		return nil, err
	}
	result, err := frame.DecodeResult(resultBuf)
	if err != nil {
		return nil, err
	}
	if result.Error != 0 {
		e.Slot.Set(lferr.Code(result.Error))
		return nil, ErrFailure
	}
	return payload, nil
}

// transact pushes pkt (optionally followed by a raw payload, for the
// send/ram-load/push directions) and pulls back one Result, the
// non-pull-class shape of the §4.4 transfer contract.
func (e *Engine) transact(ctx context.Context, dev *Device, pkt frame.Packet, payload []byte) (frame.Result, error) {
	raw := padAndEncode(pkt)
	if err := dev.Endpoint.Push(ctx, raw); err != nil {
		return frame.Result{}, err
	}
	if payload != nil {
		if err := dev.Endpoint.Push(ctx, payload); err != nil {
			return frame.Result{}, err
		}
	}
	resultBuf := make([]byte, frame.ResultSize)
	if err := dev.Endpoint.Pull(ctx, resultBuf); err != nil {
		return frame.Result{}, err
	}
	return frame.DecodeResult(resultBuf)
}

// padAndEncode encodes pkt and zero-pads it to the fixed packet
// capacity, matching the fixed-size buffer internal/device.Engine
// always pulls.
func padAndEncode(pkt frame.Packet) []byte {
	raw := frame.Encode(pkt)
	if len(raw) >= frame.PacketCapacity {
		return raw
	}
	buf := make([]byte, frame.PacketCapacity)
	copy(buf, raw)
	return buf
}
