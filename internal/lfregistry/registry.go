package lfregistry

import (
	"errors"
	"fmt"

	"github.com/danmuck/lf/internal/frame"
	"github.com/danmuck/lf/internal/trampoline"
	"github.com/danmuck/lf/internal/wire"
)

const (
	// MaxNameLen bounds a module name to 15 bytes plus the trailing NUL,
	// per spec.md's module record (§4.5).
	MaxNameLen = 15
	// UserBit marks a module index as living in the dynamically loaded
	// user table rather than the statically built-in table (spec.md
	// "User invocation" distinguishes this with a high bit).
	UserBit uint8 = 0x80
)

var (
	ErrNameTooLong   = errors.New("lfregistry: module name exceeds 15 bytes")
	ErrModuleExists  = errors.New("lfregistry: identifier collision")
	ErrFull          = errors.New("lfregistry: module table full")
	// ErrNull mirrors spec.md's "out-of-range indices -> ErrNull (address
	// check after dereference)" failure mode (§4.5).
	ErrNull = errors.New("lfregistry: index out of range")
)

// FunctionSpec is one entry in a module's function table: the call
// target plus the signature C7 needs to validate and marshal a call
// before handing it to the trampoline.
type FunctionSpec struct {
	Entry      trampoline.Entry
	ParamTypes []wire.Tag
	Return     wire.Tag
}

// Arity is the fixed argument count this function accepts.
func (f FunctionSpec) Arity() int {
	return len(f.ParamTypes)
}

// Module is one C5 module record: a bounded name, the CRC-16 identifier
// derived from it, the index assigned at load time, and its ordered
// function table (invariant M2: indices are stable once assigned).
type Module struct {
	Name       string
	Index      uint8
	Identifier uint16
	Functions  []FunctionSpec
}

// Registry is the device-side C5 table: modules indexed by integer
// (module_index, function_index), with a parallel name -> index map
// keyed by CRC-16 identifier for fld_index lookups at bind time.
//
// Grounded on edgectl's internal/seeds.Registry (Register/Resolve over a
// map, validated metadata, deterministic listing), generalized from a
// string-ID map to C5's integer-indexed table plus CRC correlation.
type Registry struct {
	modules    []*Module
	byIdent    map[uint16]uint8
	userOffset int // first index handed out to a user (dynamically loaded) module
}

// New builds an empty registry. userOffset is the first index reserved
// for dynamically loaded user modules; standard modules registered
// before reaching it get indices below it.
func New(userOffset int) *Registry {
	return &Registry{
		byIdent:    make(map[uint16]uint8),
		userOffset: userOffset,
	}
}

// identifier computes the CRC-16 of name including its NUL terminator,
// matching spec.md's "identifier: u16 CRC of the name including NUL"
// (invariant M1).
func identifier(name string) uint16 {
	return frame.CRC16(append([]byte(name), 0))
}

// Register adds a standard (statically known) module, assigning it the
// next index below userOffset, and returns the assigned Module.
func (r *Registry) Register(name string, functions []FunctionSpec) (*Module, error) {
	if len(name) > MaxNameLen {
		return nil, fmt.Errorf("%w: %q", ErrNameTooLong, name)
	}
	if len(r.modules) >= r.userOffset {
		return nil, ErrFull
	}
	ident := identifier(name)
	if _, exists := r.byIdent[ident]; exists {
		return nil, fmt.Errorf("%w: %q", ErrModuleExists, name)
	}

	idx := uint8(len(r.modules))
	m := &Module{Name: name, Index: idx, Identifier: ident, Functions: functions}
	r.modules = append(r.modules, m)
	r.byIdent[ident] = idx
	return m, nil
}

// Load binds a dynamically uploaded user module at the next available
// user index (index | UserBit), correlating it to the host's shim via
// its CRC-16 identifier (M1).
func (r *Registry) Load(name string, functions []FunctionSpec) (*Module, error) {
	if len(name) > MaxNameLen {
		return nil, fmt.Errorf("%w: %q", ErrNameTooLong, name)
	}
	slot := len(r.modules) - r.userOffset
	if r.userOffset+slot >= 256 {
		return nil, ErrFull
	}
	ident := identifier(name)
	if _, exists := r.byIdent[ident]; exists {
		return nil, fmt.Errorf("%w: %q", ErrModuleExists, name)
	}

	idx := UserBit | uint8(r.userOffset+slot)
	m := &Module{Name: name, Index: idx, Identifier: ident, Functions: functions}
	r.modules = append(r.modules, m)
	r.byIdent[ident] = idx
	return m, nil
}

// Resolve looks up a function by (module_index, function_index), the
// C5 dispatch path taken directly off a wire InvocationBody.
func (r *Registry) Resolve(moduleIndex, functionIndex uint8) (*FunctionSpec, error) {
	m := r.moduleByIndex(moduleIndex)
	if m == nil {
		return nil, ErrNull
	}
	if int(functionIndex) >= len(m.Functions) {
		return nil, ErrNull
	}
	fn := m.Functions[functionIndex]
	return &fn, nil
}

// FldIndex correlates a CRC-16 name identifier to its module index, for
// the dynamic loader binding a host-side shim to a device-side table
// (spec.md's fld_index, §4.5).
func (r *Registry) FldIndex(ident uint16) (uint8, bool) {
	idx, ok := r.byIdent[ident]
	return idx, ok
}

func (r *Registry) moduleByIndex(index uint8) *Module {
	for _, m := range r.modules {
		if m.Index == index {
			return m
		}
	}
	return nil
}
