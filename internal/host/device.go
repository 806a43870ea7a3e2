package host

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"sync"

	"github.com/danmuck/lf/internal/frame"
	"github.com/danmuck/lf/internal/lfregistry"
	"github.com/danmuck/lf/internal/transport"
)

// ErrAlreadySelected guards the "at most one selected device" invariant.
var ErrAlreadySelected = errors.New("host: another device is already selected")

// Device is one attached device record: identity, ABI attributes, and
// the endpoint used to reach it. Created by Engine.Attach, destroyed by
// Engine.Detach.
//
// Registry is the attached device's own C5 table. A real deployment
// would resolve fld_index across the wire; this in-process harness (and
// cmd/lfctl's embedded "pipe" device) instead shares the registry
// directly — see package doc.
type Device struct {
	Name        string
	Identifier  uint16
	PointerSize uint8
	BigEndian   bool
	Endpoint    transport.Endpoint
	Registry    *lfregistry.Registry

	mu       sync.Mutex
	selected bool
}

// Selected reports whether this device is the process's selected device.
func (d *Device) Selected() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.selected
}

// configurationSize mirrors internal/device's encodeConfiguration:
// identifier(2) + pointerSize(1) + bigEndian(1).
const configurationSize = 4

// queryConfiguration sends a class-0 query and fills Identifier,
// PointerSize, and BigEndian from the device's reply (spec §4.7 "fill a
// Configuration record from this device").
//
// The device's reported identifier is checked against CRC16(Name) before
// anything is adopted; a mismatch means the endpoint landed on the wrong
// device and is refused with ErrNoDevice rather than silently accepted.
func (d *Device) queryConfiguration(ctx context.Context) error {
	pkt := frame.BuildConfiguration()
	raw := padAndEncode(pkt)
	if err := d.Endpoint.Push(ctx, raw); err != nil {
		return err
	}

	cfgBuf := make([]byte, configurationSize)
	if err := d.Endpoint.Pull(ctx, cfgBuf); err != nil {
		return err
	}
	resultBuf := make([]byte, frame.ResultSize)
	if err := d.Endpoint.Pull(ctx, resultBuf); err != nil {
		return err
	}
	if _, err := frame.DecodeResult(resultBuf); err != nil {
		return err
	}

	got := binary.LittleEndian.Uint16(cfgBuf[0:2])
	want := frame.CRC16([]byte(d.Name))
	if got != want {
		return fmt.Errorf("%w: identifier mismatch for %q (0x%04x instead of 0x%04x)", ErrNoDevice, d.Name, got, want)
	}

	d.mu.Lock()
	d.Identifier = got
	d.PointerSize = cfgBuf[2]
	d.BigEndian = cfgBuf[3] != 0
	d.mu.Unlock()
	return nil
}
