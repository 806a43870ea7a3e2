package lfloader

import (
	"context"
	"errors"
	"fmt"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"

	"github.com/danmuck/lf/internal/trampoline"
)

// ErrExportNotFound is returned when a named export is missing from an
// instantiated image.
var ErrExportNotFound = errors.New("lfloader: export not found")

// Loader owns one wazero runtime and instantiates uploaded module
// images against it, grounded on wippyai-wasm-runtime's
// WazeroEngine/WazeroModule split (engine/wazero.go) but trimmed to the
// single-module, packed-stack-only shape this trampoline needs: no
// components, no asyncify, no WASI.
type Loader struct {
	runtime wazero.Runtime
}

// New builds a Loader with a fresh wazero runtime.
func New(ctx context.Context) *Loader {
	return &Loader{runtime: wazero.NewRuntime(ctx)}
}

// Close releases the underlying runtime and every module compiled
// against it.
func (l *Loader) Close(ctx context.Context) error {
	return l.runtime.Close(ctx)
}

// Image is one instantiated module image: the parsed header plus a
// live wazero module instance whose exports can be bound as
// trampoline.Entry values.
type Image struct {
	Header   ImageHeader
	instance api.Module
}

// Load parses buf's ImageHeader, compiles and instantiates the module
// payload that follows it, and returns the live Image. Application
// images (Entry != 0) are instantiated identically; Load does not bind
// exports into a registry or run Entry, which is left to the caller.
func (l *Loader) Load(ctx context.Context, buf []byte) (*Image, error) {
	header, payload, err := ParseImageHeader(buf)
	if err != nil {
		return nil, err
	}

	compiled, err := l.runtime.CompileModule(ctx, payload)
	if err != nil {
		return nil, fmt.Errorf("lfloader: compile module: %w", err)
	}

	instance, err := l.runtime.InstantiateModule(ctx, compiled, wazero.NewModuleConfig().WithName(""))
	if err != nil {
		return nil, fmt.Errorf("lfloader: instantiate module: %w", err)
	}

	return &Image{Header: header, instance: instance}, nil
}

// Entry binds one exported function as a trampoline.Entry, the shape
// C5's Module.Functions table expects for a dynamically loaded module.
func (img *Image) Entry(name string) (trampoline.Entry, error) {
	fn := img.instance.ExportedFunction(name)
	if fn == nil {
		return nil, fmt.Errorf("%w: %q", ErrExportNotFound, name)
	}
	return wazeroEntry{fn: fn}, nil
}

// ExportNames lists every function this image exports, for the
// dynamic loader to enumerate a module's function table at load time.
func (img *Image) ExportNames() []string {
	defs := img.instance.ExportedFunctionDefinitions()
	names := make([]string, 0, len(defs))
	for name := range defs {
		names = append(names, name)
	}
	return names
}

// Close releases this image's instance.
func (img *Image) Close(ctx context.Context) error {
	return img.instance.Close(ctx)
}

// wazeroEntry adapts an api.Function to trampoline.Entry via the exact
// packed-stack contract CallWithStack already implements in wazero.
type wazeroEntry struct {
	fn api.Function
}

func (e wazeroEntry) CallWithStack(ctx context.Context, stack []uint64) error {
	return e.fn.CallWithStack(ctx, stack)
}
