package lf

import (
	"context"
	"time"

	"github.com/danmuck/lf/internal/arglist"
	"github.com/danmuck/lf/internal/frame"
	"github.com/danmuck/lf/internal/host"
	"github.com/danmuck/lf/internal/obsmetrics"
	"github.com/danmuck/lf/internal/wire"
)

// modules caches bound host.Module shims per (device, name) so
// repeated Invoke calls for the same module name don't re-bind (P7).
var modules = map[*host.Device]map[string]*host.Module{}

func resolveModule(d *Device, name string) (*host.Module, error) {
	if d == nil || d.inner == nil {
		return nil, NullPointer
	}
	byName, ok := modules[d.inner]
	if !ok {
		byName = map[string]*host.Module{}
		modules[d.inner] = byName
	}
	m, ok := byName[name]
	if !ok {
		m = &host.Module{Name: name}
		byName[name] = m
	}
	if err := m.Bind(d.inner); err != nil {
		return nil, PackageNotLoaded
	}
	return m, nil
}

// Invoke is the host C ABI's lf_invoke: resolve moduleName on d, run
// function with argv's arguments, and return the normalized scalar.
// A nil or released handle returns NullPointer and a module that cannot
// be bound returns PackageNotLoaded; any failure of the call itself
// returns InvocationError, with the on-device cause available from
// ErrorGet.
func Invoke(ctx context.Context, d *Device, moduleName string, function uint8, argv *Args, retTag uint8) (uint64, error) {
	m, err := resolveModule(d, moduleName)
	if err != nil {
		return 0, err
	}

	var args []arglist.Item
	if argv != nil && argv.list != nil {
		args = argv.list.Iter()
	}

	start := time.Now()
	value, invokeErr := engine.Invoke(ctx, m, function, args, wire.Tag(retTag))
	obsmetrics.RecordInvocation(d.inner.Name, moduleName, uint32(engine.Slot.Get()), time.Since(start))
	if invokeErr != nil {
		return 0, InvocationError
	}
	return value, nil
}

// Push is the host C ABI's lf_push: send src through moduleName/function
// and return the function's ptr-typed result. That result is the
// device's allocation address when the function leaves its first stack
// slot (the implicit ptr argument) unchanged.
func Push(ctx context.Context, d *Device, moduleName string, function uint8, src []byte) (uint64, error) {
	m, err := resolveModule(d, moduleName)
	if err != nil {
		return 0, err
	}
	call, err := frame.BuildInvocationBody(m.Index, function, wire.Ptr, nil, int(d.inner.PointerSize))
	if err != nil {
		return 0, InvocationError
	}
	value, pushErr := engine.Push(ctx, d.inner, call, src)
	obsmetrics.RecordBulkTransfer(d.inner.Name, "push", "out", len(src))
	if pushErr != nil {
		return 0, InvocationError
	}
	return value, nil
}

// Pull is the host C ABI's lf_pull: invoke moduleName/function and read
// len(dst) bytes of its output into dst.
func Pull(ctx context.Context, d *Device, moduleName string, function uint8, dst []byte) error {
	m, err := resolveModule(d, moduleName)
	if err != nil {
		return err
	}
	call, err := frame.BuildInvocationBody(m.Index, function, wire.Void, nil, int(d.inner.PointerSize))
	if err != nil {
		return InvocationError
	}
	payload, pullErr := engine.Pull(ctx, d.inner, call, uint32(len(dst)))
	obsmetrics.RecordBulkTransfer(d.inner.Name, "pull", "in", len(dst))
	if pullErr != nil {
		return InvocationError
	}
	copy(dst, payload)
	return nil
}
