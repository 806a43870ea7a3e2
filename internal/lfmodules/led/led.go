// Package led is a sample device-side module: the out-of-scope LED
// driver (spec §1) given just enough shape to exercise C5/C6 end to
// end. A real build replaces State with GPIO/PWM register writes; this
// one keeps the last-written color in memory so tests and
// cmd/lfdeviced can observe it.
package led

import (
	"context"
	"sync"

	"github.com/danmuck/lf/internal/lfregistry"
	"github.com/danmuck/lf/internal/trampoline"
	"github.com/danmuck/lf/internal/wire"
)

// State holds the color an attached LED was last told to show.
type State struct {
	mu         sync.Mutex
	R, G, B    uint8
	lastWasOff bool
}

// Color returns the most recently written RGB triple.
func (s *State) Color() (r, g, b uint8) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.R, s.G, s.B
}

// Functions returns the "led" module's function table: function 0 is
// setRGB(r, g, b) void, function 1 is off() void — matching spec.md §8
// scenario 1/2's literal function indices.
func Functions(s *State) []lfregistry.FunctionSpec {
	return []lfregistry.FunctionSpec{
		{
			Entry: trampoline.NativeFunc(func(ctx context.Context, stack []uint64) error {
				s.mu.Lock()
				s.R, s.G, s.B = uint8(stack[0]), uint8(stack[1]), uint8(stack[2])
				s.lastWasOff = false
				s.mu.Unlock()
				return nil
			}),
			ParamTypes: []wire.Tag{wire.U8, wire.U8, wire.U8},
			Return:     wire.Void,
		},
		{
			Entry: trampoline.NativeFunc(func(ctx context.Context, stack []uint64) error {
				s.mu.Lock()
				s.R, s.G, s.B = 0, 0, 0
				s.lastWasOff = true
				s.mu.Unlock()
				return nil
			}),
			ParamTypes: nil,
			Return:     wire.Void,
		},
	}
}
