// Package transport is the C4 adapter: a thin, blocking-and-total
// push/pull/configure/destroy boundary over an opaque channel. It
// deliberately knows nothing about frame, wire, or class semantics —
// those live above it in internal/device and internal/host.
//
// Ownership boundary:
// - Endpoint: the four-operation contract spec.md §4.4 and §6 name.
// - Pipe: an in-memory net.Pipe-backed Endpoint (NewPipe) for tests and
//   for cmd/lfctl's embedded simulated device; NewFromConn wraps a TCP
//   connection in the same type for cmd/lfctl and cmd/lfdeviced.
package transport
