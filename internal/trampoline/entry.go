package trampoline

import "context"

// Entry is the native-call contract a registered module function must
// satisfy. It mirrors wazero's api.Function.CallWithStack: stack holds
// the arguments on entry and the single scalar result in stack[0] on
// return (void functions leave it untouched). This shape lets a
// WebAssembly export (internal/lfloader, for uploaded device images) and
// a plain Go closure (statically-registered built-in modules) share the
// exact same call path through Call below.
type Entry interface {
	CallWithStack(ctx context.Context, stack []uint64) error
}

// NativeFunc adapts a Go function to the Entry contract, for
// statically-registered built-in modules (the "shape" of the
// out-of-scope peripheral drivers named in spec §1).
type NativeFunc func(ctx context.Context, stack []uint64) error

// CallWithStack implements Entry.
func (f NativeFunc) CallWithStack(ctx context.Context, stack []uint64) error {
	return f(ctx, stack)
}
