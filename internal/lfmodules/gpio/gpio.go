// Package gpio is a sample device-side module standing in for the
// out-of-scope GPIO driver (spec §1): a small in-memory pin bank
// exercised through the same C5/C6 path a real register-backed
// implementation would use.
package gpio

import (
	"context"
	"sync"

	"github.com/danmuck/lf/internal/lfregistry"
	"github.com/danmuck/lf/internal/trampoline"
	"github.com/danmuck/lf/internal/wire"
)

const pinCount = 32

// Bank is a fixed set of digital pins, each holding 0 or 1.
type Bank struct {
	mu   sync.Mutex
	pins [pinCount]uint8
}

// Functions returns the "gpio" module's function table: function 0 is
// write(pin, value) void, function 1 is read(pin) u8.
func Functions(b *Bank) []lfregistry.FunctionSpec {
	return []lfregistry.FunctionSpec{
		{
			Entry: trampoline.NativeFunc(func(ctx context.Context, stack []uint64) error {
				pin := stack[0] % pinCount
				b.mu.Lock()
				if stack[1] != 0 {
					b.pins[pin] = 1
				} else {
					b.pins[pin] = 0
				}
				b.mu.Unlock()
				return nil
			}),
			ParamTypes: []wire.Tag{wire.U8, wire.U8},
			Return:     wire.Void,
		},
		{
			Entry: trampoline.NativeFunc(func(ctx context.Context, stack []uint64) error {
				pin := stack[0] % pinCount
				b.mu.Lock()
				stack[0] = uint64(b.pins[pin])
				b.mu.Unlock()
				return nil
			}),
			ParamTypes: []wire.Tag{wire.U8},
			Return:     wire.U8,
		},
	}
}
