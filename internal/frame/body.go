package frame

import (
	"encoding/binary"

	"github.com/danmuck/lf/internal/arglist"
	"github.com/danmuck/lf/internal/wire"
)

// invocationBodyFixedLen is index(1) + function(1) + ret(1) + argc(1) +
// types(8).
const invocationBodyFixedLen = 12

// InvocationBody is the class-1/2 payload: a fully-addressed call.
type InvocationBody struct {
	Index      uint8
	Function   uint8
	Ret        wire.Tag
	Argc       uint8
	Types      uint64 // 4-bit tag per argument, little nibble = arg0
	Parameters []byte // concatenation of each argument's narrowed LE bytes
}

// typesWord packs up to MaxArgc tags into one 64-bit word, 4 bits each,
// little nibble first (invariant A2 ordering preserved).
func typesWord(tags []wire.Tag) uint64 {
	var w uint64
	for i, t := range tags {
		w |= uint64(t&0xF) << (4 * uint(i))
	}
	return w
}

// tagsFromWord extracts the first argc 4-bit tags from w.
func tagsFromWord(w uint64, argc int) []wire.Tag {
	tags := make([]wire.Tag, argc)
	for i := 0; i < argc; i++ {
		tags[i] = wire.Tag((w >> (4 * uint(i))) & 0xF)
	}
	return tags
}

// BuildInvocationBody narrows each argument in args to its tag's wire
// width (wordSize resolves Uint/Ptr) and packs the fixed header plus
// parameter bytes, in argument order (invariant A2).
func BuildInvocationBody(index, function uint8, ret wire.Tag, args []arglist.Item, wordSize int) (InvocationBody, error) {
	if len(args) > arglist.MaxArgc {
		return InvocationBody{}, ErrTooManyArgs
	}
	tags := make([]wire.Tag, len(args))
	for i, a := range args {
		tags[i] = a.Tag
	}

	var params []byte
	for _, a := range args {
		n, err := wire.Sizeof(a.Tag, wordSize)
		if err != nil {
			return InvocationBody{}, err
		}
		buf := make([]byte, n)
		if _, err := wire.Pack(a.Value, a.Tag, wordSize, buf); err != nil {
			return InvocationBody{}, err
		}
		params = append(params, buf...)
	}

	return InvocationBody{
		Index:      index,
		Function:   function,
		Ret:        ret,
		Argc:       uint8(len(args)),
		Types:      typesWord(tags),
		Parameters: params,
	}, nil
}

// Args unpacks Parameters back into (tag, value) pairs using Types/Argc
// and wordSize, in wire order.
func (b InvocationBody) Args(wordSize int) ([]arglist.Item, error) {
	tags := tagsFromWord(b.Types, int(b.Argc))
	items := make([]arglist.Item, b.Argc)
	off := 0
	for i, t := range tags {
		n, err := wire.Sizeof(t, wordSize)
		if err != nil {
			return nil, err
		}
		if off+n > len(b.Parameters) {
			return nil, ErrOverflow
		}
		v, err := wire.Unpack(b.Parameters[off:off+n], t, wordSize)
		if err != nil {
			return nil, err
		}
		items[i] = arglist.Item{Tag: t, Value: v}
		off += n
	}
	return items, nil
}

func encodeInvocationBody(b InvocationBody) []byte {
	buf := make([]byte, invocationBodyFixedLen+len(b.Parameters))
	buf[0] = b.Index
	buf[1] = b.Function
	buf[2] = byte(b.Ret)
	buf[3] = b.Argc
	binary.LittleEndian.PutUint64(buf[4:12], b.Types)
	copy(buf[12:], b.Parameters)
	return buf
}

// DecodeInvocationBody decodes a class-1/2 packet body, for callers
// (internal/device, internal/host) operating on a Packet.Body directly
// rather than through BuildInvocation/Encode.
func DecodeInvocationBody(buf []byte) (InvocationBody, []byte, error) {
	return decodeInvocationBody(buf)
}

func decodeInvocationBody(buf []byte) (InvocationBody, []byte, error) {
	if len(buf) < invocationBodyFixedLen {
		return InvocationBody{}, nil, ErrOverflow
	}
	b := InvocationBody{
		Index:    buf[0],
		Function: buf[1],
		Ret:      wire.Tag(buf[2]),
		Argc:     buf[3],
		Types:    binary.LittleEndian.Uint64(buf[4:12]),
	}
	if b.Argc > arglist.MaxArgc {
		return InvocationBody{}, nil, ErrTooManyArgs
	}
	// The parameter region carries no length of its own and runs to the
	// end of buf, so every byte after the fixed fields is a parameter
	// byte and the returned remainder is always empty.
	b.Parameters = append([]byte(nil), buf[invocationBodyFixedLen:]...)
	return b, nil, nil
}

// pushPullBodyFixedLen is length(4) followed by a sub-InvocationBody.
const pushPullBodyFixedLen = 4

// PushPullBody is the class 3-7 payload: a byte-count plus the
// sub-invocation identifying the module/function on the device side of
// the transfer. The sub-invocation's first two arguments are implicit
// (device-pointer, length) per spec §3.
type PushPullBody struct {
	Length uint32
	Call   InvocationBody
}

func encodePushPullBody(b PushPullBody) []byte {
	buf := make([]byte, pushPullBodyFixedLen)
	binary.LittleEndian.PutUint32(buf[0:4], b.Length)
	return append(buf, encodeInvocationBody(b.Call)...)
}

// DecodePushPullBody decodes a class 3-7 packet body.
func DecodePushPullBody(buf []byte) (PushPullBody, error) {
	return decodePushPullBody(buf)
}

func decodePushPullBody(buf []byte) (PushPullBody, error) {
	if len(buf) < pushPullBodyFixedLen {
		return PushPullBody{}, ErrOverflow
	}
	length := binary.LittleEndian.Uint32(buf[0:4])
	call, _, err := decodeInvocationBody(buf[pushPullBodyFixedLen:])
	if err != nil {
		return PushPullBody{}, err
	}
	return PushPullBody{Length: length, Call: call}, nil
}

// ResultSize is the encoded size of Result: value(8) + error(4).
const ResultSize = 12

// Result is the fixed-size reply (spec §3, invariant R1).
type Result struct {
	Value uint64
	Error uint32
}

// EncodeResult writes r as its 12-byte wire form.
func EncodeResult(r Result) []byte {
	buf := make([]byte, ResultSize)
	binary.LittleEndian.PutUint64(buf[0:8], r.Value)
	binary.LittleEndian.PutUint32(buf[8:12], r.Error)
	return buf
}

// DecodeResult parses a 12-byte Result.
func DecodeResult(buf []byte) (Result, error) {
	if len(buf) < ResultSize {
		return Result{}, ErrOverflow
	}
	return Result{
		Value: binary.LittleEndian.Uint64(buf[0:8]),
		Error: binary.LittleEndian.Uint32(buf[8:12]),
	}, nil
}
