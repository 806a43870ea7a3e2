package transport

import (
	"context"
	"errors"
)

// ErrClosed is returned by Push/Pull/Configure once Destroy has run.
var ErrClosed = errors.New("transport: endpoint destroyed")

// Endpoint is the C4 contract: four operations over an opaque channel.
// Push and Pull are blocking and total — they return only once every
// requested byte has moved or an I/O error occurred; no partial
// transfer is ever surfaced to C7/C8.
type Endpoint interface {
	// Configure prepares the endpoint (e.g. opening a USB handle or, for
	// Pipe, no-op) using device- or endpoint-specific args.
	Configure(ctx context.Context, args any) error
	// Push writes buf in full or returns an error.
	Push(ctx context.Context, buf []byte) error
	// Pull reads exactly len(buf) bytes into buf or returns an error.
	Pull(ctx context.Context, buf []byte) error
	// Destroy releases the endpoint. Subsequent operations fail with
	// ErrClosed.
	Destroy(ctx context.Context) error
}
