package host

import (
	"errors"
	"fmt"

	"golang.org/x/sync/singleflight"

	"github.com/danmuck/lf/internal/frame"
	"github.com/danmuck/lf/internal/lfregistry"
)

// bindGroup collapses concurrent Bind calls for the same (device,
// module name) pair into a single registry lookup (P7 idempotence
// under concurrency).
var bindGroup singleflight.Group

// ErrModule is returned when Invoke is attempted on a Module that
// hasn't been bound to a device index yet.
var ErrModule = errors.New("host: module not bound")

// Module is a host-side shim naming a device-resident module. Bind
// fills Device/Index/User; until then Invoke fails with ErrModule
// (spec §4.8 step 1).
type Module struct {
	Name   string
	Device *Device
	Index  uint8
	User   bool // true once bound to a dynamically loaded (user-bit) index
	bound  bool
}

// Bind computes the module's name-CRC identifier and resolves it
// against dev's registry (fld_index), recording the assigned index
// with the user-invocation bit already set by lfregistry.Load for
// dynamically loaded modules (spec invariant M1). Binding the same
// module twice is idempotent (P7): it returns the same (identifier,
// index) without re-querying.
func (m *Module) Bind(dev *Device) error {
	if m.bound && m.Device == dev {
		return nil
	}
	ident := identifierFor(m.Name)
	key := fmt.Sprintf("%p:%s", dev, m.Name)
	v, err, _ := bindGroup.Do(key, func() (any, error) {
		if dev.Registry == nil {
			return nil, fmt.Errorf("%w: %q (no registry attached to device)", ErrModule, m.Name)
		}
		idx, ok := dev.Registry.FldIndex(ident)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrModule, m.Name)
		}
		return idx, nil
	})
	if err != nil {
		return err
	}
	idx := v.(uint8)
	m.Device = dev
	m.Index = idx
	m.User = idx&lfregistry.UserBit != 0
	m.bound = true
	return nil
}

// identifierFor mirrors lfregistry's CRC-16-of-name-plus-NUL (M1),
// kept here rather than exported from lfregistry to keep that package's
// surface limited to the device-side table it owns.
func identifierFor(name string) uint16 {
	return frame.CRC16(append([]byte(name), 0))
}
