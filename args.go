package lf

import (
	"github.com/danmuck/lf/internal/arglist"
	"github.com/danmuck/lf/internal/wire"
)

// Args is an opaque handle over an arglist.List (spec §6 lf_create_args
// / lf_append_arg). The spec's source pattern built this with a
// variadic builder; §9's design notes call for a typed-slice or fluent
// append instead, which is exactly internal/arglist.List's shape.
type Args struct {
	list *arglist.List
}

// CreateArgs allocates a fresh, empty argument list (spec §6
// lf_create_args).
func CreateArgs() *Args {
	return &Args{list: arglist.New()}
}

// AppendArg appends one (value, tag) pair (spec §6 lf_append_arg).
// tag is a raw wire type-tag byte, as the ABI signature specifies.
func AppendArg(a *Args, value uint64, tag uint8) error {
	if a == nil || a.list == nil {
		return NullPointer
	}
	if err := a.list.Append(value, wire.Tag(tag)); err != nil {
		if err == wire.ErrIllegalType {
			return IllegalType
		}
		return IndexOutOfBounds
	}
	return nil
}
