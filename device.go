package lf

import (
	"context"
	"sync"

	"github.com/danmuck/lf/internal/host"
	"github.com/danmuck/lf/internal/lfregistry"
	"github.com/danmuck/lf/internal/transport"
)

// engine is the process-wide host engine backing this package's ABI
// functions: the "currently selected device" and "thread-local" error
// slot the spec ties to a single process (§5, §7) are, in this Go
// rewrite, this one package-level instance rather than true
// OS-thread-local state; see DESIGN.md.
var engine = host.New()

var handlesMu sync.Mutex
var handles []*Device

// Device is an opaque handle over an attached host.Device, returned by
// AttachUSB and consumed by Select/Invoke/Push/Pull/Release.
type Device struct {
	inner *host.Device
}

// Descriptor is what an external device-discovery mechanism supplies to
// AttachUSB: the channel to reach one device, and — for the in-process
// simulator (cmd/lfctl's "pipe" transport) only — the registry it shares
// with the device side, per internal/host's documented bind-resolution
// simplification. A Descriptor for a real out-of-process device leaves
// Registry nil; bind() against such a device fails with
// PackageNotLoaded until that simplification is replaced with a wire
// query.
type Descriptor struct {
	Name        string
	Endpoint    transport.Endpoint
	Registry    *lfregistry.Registry
	PointerSize uint8
}

// AttachUSB attaches the supplied descriptors as devices (spec §6
// lf_attach_usb). Real USB enumeration is an external collaborator
// (spec §1); callers supply Descriptors discovered however their own
// transport layer does that.
func AttachUSB(ctx context.Context, descriptors []Descriptor) ([]*Device, []uint16, error) {
	if len(descriptors) == 0 {
		return nil, nil, NoDevicesFound
	}

	devs := make([]*host.Device, len(descriptors))
	for i, d := range descriptors {
		devs[i] = &host.Device{
			Name:        d.Name,
			PointerSize: d.PointerSize,
			Endpoint:    d.Endpoint,
			Registry:    d.Registry,
		}
	}
	if err := engine.AttachAll(ctx, devs); err != nil {
		return nil, nil, InvocationError
	}

	handlesMu.Lock()
	defer handlesMu.Unlock()
	out := make([]*Device, len(devs))
	idents := make([]uint16, len(devs))
	for i, d := range devs {
		h := &Device{inner: d}
		handles = append(handles, h)
		out[i] = h
		idents[i] = d.Identifier
	}
	return out, idents, nil
}

// Select marks devices[idx] as the process's selected device (spec §6
// lf_select).
func Select(devices []*Device, idx int) (*Device, error) {
	if idx < 0 || idx >= len(devices) {
		return nil, IndexOutOfBounds
	}
	d := devices[idx]
	if d == nil || d.inner == nil {
		return nil, NullPointer
	}
	if err := engine.Select(d.inner); err != nil {
		return nil, IllegalHandle
	}
	return d, nil
}

// Release detaches a device and invalidates its handle (spec §6
// lf_release).
func Release(ctx context.Context, d *Device) error {
	if d == nil || d.inner == nil {
		return NullPointer
	}
	if err := engine.Detach(ctx, d.inner); err != nil {
		return InvocationError
	}

	handlesMu.Lock()
	defer handlesMu.Unlock()
	for i, h := range handles {
		if h == d {
			handles = append(handles[:i], handles[i+1:]...)
			break
		}
	}
	d.inner = nil
	return nil
}
