package device

import (
	"context"

	"github.com/danmuck/lf/internal/arglist"
	"github.com/danmuck/lf/internal/frame"
	"github.com/danmuck/lf/internal/lferr"
	"github.com/danmuck/lf/internal/lfregistry"
	"github.com/danmuck/lf/internal/trampoline"
	"github.com/danmuck/lf/internal/transport"
	"github.com/danmuck/lf/internal/wire"
)

// Engine is one device's C7 perform engine: the registry, trampoline
// ABI profile, bulk-transfer memory, and latching error slot a single
// no-reentrancy channel processes one packet at a time against.
type Engine struct {
	Identifier uint16
	Registry   *lfregistry.Registry
	Profile    trampoline.Profile
	Memory     *Memory
	Slot       *lferr.Slot
	Endpoint   transport.Endpoint
}

// New builds an Engine with a fresh latching error slot.
func New(identifier uint16, registry *lfregistry.Registry, profile trampoline.Profile, memSize uint32, ep transport.Endpoint) *Engine {
	return &Engine{
		Identifier: identifier,
		Registry:   registry,
		Profile:    profile,
		Memory:     NewMemory(memSize),
		Slot:       &lferr.Slot{},
		Endpoint:   ep,
	}
}

// Perform runs one request/reply transaction: pull a fixed-capacity
// packet, validate and dispatch it by class, and reply. It returns an
// error only for transport (Endpoint) failures; protocol-level failures
// are surfaced as a Result.Error and the latching slot, per spec §7.
func (e *Engine) Perform(ctx context.Context) error {
	buf := make([]byte, frame.PacketCapacity)
	if err := e.Endpoint.Pull(ctx, buf); err != nil {
		return err
	}

	pkt, err := frame.Parse(buf)
	if err != nil {
		return e.replyFailure(ctx, protocolErrorCode(err))
	}

	switch pkt.Header.Class {
	case frame.ClassConfiguration:
		return e.performConfiguration(ctx)
	case frame.ClassStandard, frame.ClassUser:
		return e.performInvocation(ctx, pkt)
	case frame.ClassRAMLoad:
		return e.performAcceptAndAlloc(ctx, pkt)
	case frame.ClassSend:
		return e.performAcceptAndAlloc(ctx, pkt)
	case frame.ClassPush:
		return e.performPush(ctx, pkt)
	case frame.ClassPull:
		return e.performPull(ctx, pkt)
	case frame.ClassReceive:
		return e.performReceive(ctx, pkt)
	case frame.ClassEvent:
		return e.replySuccess(ctx, 0)
	default:
		return e.replyFailure(ctx, lferr.Subclass)
	}
}

func (e *Engine) performConfiguration(ctx context.Context) error {
	cfg := Configuration{
		Identifier:  e.Identifier,
		PointerSize: uint8(e.Profile.WordSize),
	}
	if err := e.Endpoint.Push(ctx, encodeConfiguration(cfg)); err != nil {
		return err
	}
	return e.replySuccess(ctx, 0)
}

// performInvocation is the standard/user-invocation path (spec §4.7
// step 2): look up (index, function) in the registry, run it through
// the trampoline, and reply with the normalized return.
func (e *Engine) performInvocation(ctx context.Context, pkt frame.Packet) error {
	body, _, err := frame.DecodeInvocationBody(pkt.Body)
	if err != nil {
		return e.replyFailure(ctx, lferr.Overflow)
	}
	return e.callAndReply(ctx, body)
}

// callAndReply resolves and invokes one InvocationBody through C5+C6,
// writing the outcome to the latching slot and the wire Result alike.
func (e *Engine) callAndReply(ctx context.Context, body frame.InvocationBody) error {
	fn, err := e.Registry.Resolve(body.Index, body.Function)
	if err != nil {
		return e.replyFailure(ctx, lferr.Null)
	}

	argv := body.Parameters
	value, code := trampoline.Call(ctx, fn.Entry, e.Profile, body.Ret, int(body.Argc), body.Types, argv)
	if code != lferr.OK {
		return e.replyFailure(ctx, code)
	}
	return e.replySuccess(ctx, value)
}

// performAcceptAndAlloc backs both ram-load and send (spec §4.7): pull
// Length raw bytes off the channel into a freshly allocated region and
// return its address as the result value.
func (e *Engine) performAcceptAndAlloc(ctx context.Context, pkt frame.Packet) error {
	ppb, err := frame.DecodePushPullBody(pkt.Body)
	if err != nil {
		return e.replyFailure(ctx, lferr.Overflow)
	}

	data := make([]byte, ppb.Length)
	if err := e.Endpoint.Pull(ctx, data); err != nil {
		return err
	}

	addr, err := e.Memory.Alloc(ppb.Length)
	if err != nil {
		return e.replyFailure(ctx, lferr.Malloc)
	}
	if err := e.Memory.Write(addr, data); err != nil {
		return e.replyFailure(ctx, lferr.Malloc)
	}
	return e.replySuccess(ctx, uint64(addr))
}

// performPush accepts Length bytes into a fresh buffer, then invokes
// the sub-invocation's function with (ptr, length) prepended to its
// explicit arguments (spec §4.7 "push").
func (e *Engine) performPush(ctx context.Context, pkt frame.Packet) error {
	ppb, err := frame.DecodePushPullBody(pkt.Body)
	if err != nil {
		return e.replyFailure(ctx, lferr.Overflow)
	}

	data := make([]byte, ppb.Length)
	if err := e.Endpoint.Pull(ctx, data); err != nil {
		return err
	}

	addr, err := e.Memory.Alloc(ppb.Length)
	if err != nil {
		return e.replyFailure(ctx, lferr.Malloc)
	}
	if err := e.Memory.Write(addr, data); err != nil {
		return e.replyFailure(ctx, lferr.Malloc)
	}

	body, err := e.withImplicitPtrLen(ppb.Call, addr, ppb.Length)
	if err != nil {
		return e.replyFailure(ctx, lferr.Type)
	}
	return e.callAndReply(ctx, body)
}

// performPull allocates a fresh buffer, invokes the sub-invocation's
// function to fill it, then transmits its contents (spec §4.7 "pull").
func (e *Engine) performPull(ctx context.Context, pkt frame.Packet) error {
	ppb, err := frame.DecodePushPullBody(pkt.Body)
	if err != nil {
		return e.replyFailure(ctx, lferr.Overflow)
	}

	addr, err := e.Memory.Alloc(ppb.Length)
	if err != nil {
		return e.replyFailure(ctx, lferr.Malloc)
	}

	fn, err := e.Registry.Resolve(ppb.Call.Index, ppb.Call.Function)
	if err != nil {
		return e.replyFailure(ctx, lferr.Null)
	}
	body, err := e.withImplicitPtrLen(ppb.Call, addr, ppb.Length)
	if err != nil {
		return e.replyFailure(ctx, lferr.Type)
	}
	if _, code := trampoline.Call(ctx, fn.Entry, e.Profile, body.Ret, int(body.Argc), body.Types, body.Parameters); code != lferr.OK {
		return e.replyFailure(ctx, code)
	}

	data, err := e.Memory.Read(addr, ppb.Length)
	if err != nil {
		return e.replyFailure(ctx, lferr.Overflow)
	}
	if err := e.Endpoint.Push(ctx, data); err != nil {
		return err
	}
	return e.replySuccess(ctx, uint64(addr))
}

// performReceive transmits Length bytes from the address in the
// sub-invocation's first explicit parameter, with no function call
// (spec §4.7 "receive").
func (e *Engine) performReceive(ctx context.Context, pkt frame.Packet) error {
	ppb, err := frame.DecodePushPullBody(pkt.Body)
	if err != nil {
		return e.replyFailure(ctx, lferr.Overflow)
	}
	args, err := ppb.Call.Args(e.Profile.WordSize)
	if err != nil || len(args) == 0 {
		return e.replyFailure(ctx, lferr.Overflow)
	}
	addr := uint32(args[0].Value)

	data, err := e.Memory.Read(addr, ppb.Length)
	if err != nil {
		return e.replyFailure(ctx, lferr.Overflow)
	}
	if err := e.Endpoint.Push(ctx, data); err != nil {
		return err
	}
	return e.replySuccess(ctx, uint64(addr))
}

func (e *Engine) replySuccess(ctx context.Context, value uint64) error {
	return e.Endpoint.Push(ctx, frame.EncodeResult(frame.Result{Value: value, Error: uint32(lferr.OK)}))
}

func (e *Engine) replyFailure(ctx context.Context, code lferr.Code) error {
	e.Slot.Set(code)
	return e.Endpoint.Push(ctx, frame.EncodeResult(frame.Result{Value: 0, Error: uint32(code)}))
}

// withImplicitPtrLen rebuilds call's body with (ptr, length) prepended
// to its explicit arguments (spec §3: the sub-invocation's first two
// arguments are implicit and not wire-encoded), so the trampoline sees
// the same argument vector the native function expects.
func (e *Engine) withImplicitPtrLen(call frame.InvocationBody, addr, length uint32) (frame.InvocationBody, error) {
	explicit, err := call.Args(e.Profile.WordSize)
	if err != nil {
		return frame.InvocationBody{}, err
	}
	args := make([]arglist.Item, 0, len(explicit)+2)
	args = append(args, arglist.Item{Tag: wire.Ptr, Value: uint64(addr)})
	args = append(args, arglist.Item{Tag: wire.U32, Value: uint64(length)})
	args = append(args, explicit...)
	return frame.BuildInvocationBody(call.Index, call.Function, call.Ret, args, e.Profile.WordSize)
}

// protocolErrorCode maps a frame.Parse failure to the §7 taxonomy.
func protocolErrorCode(err error) lferr.Code {
	switch err {
	case frame.ErrOverflow:
		return lferr.Overflow
	case frame.ErrSubclass:
		return lferr.Subclass
	default:
		return lferr.Checksum
	}
}
