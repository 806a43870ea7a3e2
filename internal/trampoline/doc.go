// Package trampoline owns the ABI-specific call contract that marshals
// packed argument bytes into a native call frame and normalizes the
// return value (spec C6, the "hardest piece").
//
// Ownership boundary:
// - Entry: the packed-stack calling convention every callable module
//   function must satisfy, modeled directly on wazero's
//   api.Function.CallWithStack(ctx, []uint64) error (grounded in
//   wippyai-wasm-runtime's engine/wazero_callpaths.go) so both a
//   WebAssembly-backed entry point (internal/lfloader) and a
//   statically-registered Go closure can share one call path.
// - Call: unpack -> marshal -> invoke -> normalize, per spec §4.6's state
//   machine (Idle -> Unpacking -> Calling -> Normalizing -> Replying).
package trampoline
