// Package host is the host-side C8 invocation engine: the mirror of
// internal/device that resolves a module's device and index, builds
// the wire packet, drives the transport, and surfaces the Result.
//
// Ownership boundary:
// - Device: an attached device record and the single process-wide
//   "selected device" constraint (spec §4, §5).
// - Module: a host-side shim bound to one device's registry index.
// - Engine: attach/select/detach plus Invoke/Push/Pull.
//
// bind(module) queries "the device's dynamic loader table" for a
// matching identifier (spec §4.8); the spec leaves that query's wire
// shape unspecified; this implementation resolves it as a direct
// internal/lfregistry lookup against the attached device's registry
// rather than inventing an unspecified wire subprotocol for it (see
// DESIGN.md).
//
// "Multiple endpoints may progress independently" (spec §5) is carried
// by AttachAll/DetachAll, which fan configuration queries and endpoint
// teardown out across devices with errgroup.Group, and by Module.Bind,
// which collapses concurrent binds of the same module name against the
// same device through a singleflight.Group.
package host
