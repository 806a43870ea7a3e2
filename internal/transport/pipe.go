package transport

import (
	"context"
	"io"
	"net"
	"sync"
	"time"
)

// Pipe is an in-memory Endpoint over a net.Pipe connection, used by
// tests and by cmd/lfctl's embedded simulated device to stand in for a
// real USB/UART channel without needing host hardware.
type Pipe struct {
	conn net.Conn

	mu     sync.Mutex
	closed bool
}

// NewPipe returns a connected pair of Endpoints: writes pushed into one
// side are pulled out the other, in order.
func NewPipe() (a, b *Pipe) {
	ca, cb := net.Pipe()
	return &Pipe{conn: ca}, &Pipe{conn: cb}
}

// NewFromConn wraps an arbitrary net.Conn — a TCP connection dialed by
// cmd/lfctl or accepted by cmd/lfdeviced, in place of the in-memory
// net.Pipe NewPipe uses for tests — as an Endpoint with the same
// push/pull/destroy semantics.
func NewFromConn(conn net.Conn) *Pipe {
	return &Pipe{conn: conn}
}

// Configure is a no-op for Pipe: there is nothing to negotiate over an
// in-memory channel.
func (p *Pipe) Configure(ctx context.Context, args any) error {
	if p.isClosed() {
		return ErrClosed
	}
	return nil
}

// Push writes buf in full, honoring ctx cancellation.
func (p *Pipe) Push(ctx context.Context, buf []byte) error {
	if p.isClosed() {
		return ErrClosed
	}
	return p.withDeadline(ctx, func() error {
		_, err := p.conn.Write(buf)
		return err
	})
}

// Pull reads exactly len(buf) bytes, honoring ctx cancellation.
func (p *Pipe) Pull(ctx context.Context, buf []byte) error {
	if p.isClosed() {
		return ErrClosed
	}
	return p.withDeadline(ctx, func() error {
		_, err := io.ReadFull(p.conn, buf)
		return err
	})
}

// Destroy closes the underlying connection.
func (p *Pipe) Destroy(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil
	}
	p.closed = true
	return p.conn.Close()
}

func (p *Pipe) isClosed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.closed
}

// withDeadline runs fn on the connection, honoring ctx deadline and
// cancellation. net.Pipe connections support SetDeadline directly, so
// cancellation interrupts the blocked Read/Write rather than leaking a
// goroutine past ctx's lifetime.
func (p *Pipe) withDeadline(ctx context.Context, fn func() error) error {
	if dl, ok := ctx.Deadline(); ok {
		_ = p.conn.SetDeadline(dl)
		defer p.conn.SetDeadline(time.Time{})
	}
	done := make(chan struct{})
	if ctxDone := ctx.Done(); ctxDone != nil {
		go func() {
			select {
			case <-ctxDone:
				_ = p.conn.SetDeadline(time.Unix(0, 1))
			case <-done:
			}
		}()
	}
	err := fn()
	close(done)
	if err != nil && ctx.Err() != nil {
		return ctx.Err()
	}
	return err
}
