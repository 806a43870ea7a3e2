package frame

import (
	"github.com/danmuck/lf/internal/arglist"
	"github.com/danmuck/lf/internal/wire"
)

// Packet is one fully-built or fully-parsed wire message: a header plus
// its class-specific body bytes.
type Packet struct {
	Header Header
	Body   []byte
}

// BuildInvocation builds a class-1 (standard) or class-2 (user) packet.
// user selects the class; the module-index "user bit" is the caller's
// concern (spec §3: "module index has the user bit set"), not this
// function's.
func BuildInvocation(index, function uint8, ret wire.Tag, args []arglist.Item, wordSize int, user bool) (Packet, error) {
	body, err := BuildInvocationBody(index, function, ret, args, wordSize)
	if err != nil {
		return Packet{}, err
	}
	class := ClassStandard
	if user {
		class = ClassUser
	}
	return buildPacket(class, encodeInvocationBody(body)), nil
}

// BuildPushPull builds one of classes 3 (ram-load), 4 (send), 5 (push),
// 6 (receive), 7 (pull). The sub-invocation's argc/types/parameters
// describe only the function's explicit arguments; the implicit
// (device-pointer, length) pair is not wire-encoded (spec §3).
func BuildPushPull(class Class, length uint32, call InvocationBody) (Packet, error) {
	switch class {
	case ClassRAMLoad, ClassSend, ClassPush, ClassReceive, ClassPull:
	default:
		return Packet{}, ErrSubclass
	}
	body := PushPullBody{Length: length, Call: call}
	return buildPacket(class, encodePushPullBody(body)), nil
}

// BuildConfiguration builds a class-0 header-only query.
func BuildConfiguration() Packet {
	return buildPacket(ClassConfiguration, nil)
}

// BuildEvent builds a class-8 header-only reserved message.
func BuildEvent() Packet {
	return buildPacket(ClassEvent, nil)
}

func buildPacket(class Class, body []byte) Packet {
	h := Header{
		Magic:  Magic,
		Length: uint16(HeaderSize + len(body)),
		Class:  class,
	}
	return Packet{Header: h, Body: body}
}

// Encode serializes p into a single buffer with the CRC-16 computed last,
// over the whole packet with the checksum field zeroed (spec §4.3).
func Encode(p Packet) []byte {
	h := p.Header
	h.Checksum = 0
	buf := append(EncodeHeader(h), p.Body...)
	crc := CRC16(buf)
	buf[2] = byte(crc)
	buf[3] = byte(crc >> 8)
	return buf
}

// Parse validates and decodes a raw packet buffer (spec §4.3):
//   - magic must match (else ErrChecksum)
//   - length must be within [HeaderSize, len(buf)] (else ErrOverflow)
//   - CRC-16 over the packet with checksum zeroed must match (else ErrChecksum)
//   - class must be one of the nine enumerated classes (else ErrSubclass)
func Parse(buf []byte) (Packet, error) {
	if len(buf) < HeaderSize {
		return Packet{}, ErrOverflow
	}
	h := DecodeHeader(buf)
	if h.Magic != Magic {
		return Packet{}, ErrChecksum
	}
	if int(h.Length) < HeaderSize || int(h.Length) > len(buf) {
		return Packet{}, ErrOverflow
	}

	check := append([]byte(nil), buf[:h.Length]...)
	check[2] = 0
	check[3] = 0
	if CRC16(check) != h.Checksum {
		return Packet{}, ErrChecksum
	}

	if !ValidClass(h.Class) {
		return Packet{}, ErrSubclass
	}

	return Packet{Header: h, Body: buf[HeaderSize:h.Length]}, nil
}
