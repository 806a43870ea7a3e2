// Package lfloader is the device-side dynamic loader: it parses an
// uploaded image header (spec §6 "device image handoff") and, for
// module images, instantiates the image as a WebAssembly module via
// wazero so its exports can be bound into internal/lfregistry as
// trampoline.Entry values.
//
// Ownership boundary:
// - ImageHeader: the fixed 36-byte header every uploaded image begins
//   with, and the entry==0 (module) vs entry!=0 (application) split.
// - Loader: wraps a wazero.Runtime, compiles/instantiates image bytes,
//   and exposes each export as a trampoline.Entry.
package lfloader
