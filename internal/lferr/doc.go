// Package lferr owns the wire-contract error taxonomy shared by the host
// and device sides of the runtime (spec §7), and the latching "last error"
// slot each side exposes at its API boundary.
//
// Ownership boundary:
// - the Code enum and its wire-stable numeric values
// - Slot: a mutex-guarded latch, read-and-cleared at API boundaries
package lferr
