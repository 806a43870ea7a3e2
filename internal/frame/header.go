package frame

import "encoding/binary"

//go:generate go tool stringer -type=Class

// Magic is the fixed two-byte sentinel every packet must begin with.
const Magic uint16 = 0xFE1A

// HeaderSize is the encoded size of the fixed header prefix: magic(2) +
// checksum(2) + length(2) + class(1) + reserved(1), 4-byte aligned.
const HeaderSize = 8

// PacketCapacity is the default fixed packet buffer size (spec: "typical
// 64 bytes").
const PacketCapacity = 64

// Class selects the packet's body shape.
type Class uint8

const (
	ClassConfiguration Class = 0
	ClassStandard      Class = 1
	ClassUser          Class = 2
	ClassRAMLoad       Class = 3
	ClassSend          Class = 4
	ClassPush          Class = 5
	ClassReceive       Class = 6
	ClassPull          Class = 7
	ClassEvent         Class = 8
)

// ValidClass reports whether c is one of the nine enumerated classes.
func ValidClass(c Class) bool {
	return c <= ClassEvent
}

// Header is the fixed 8-byte packet prefix.
type Header struct {
	Magic    uint16
	Checksum uint16
	Length   uint16
	Class    Class
	reserved uint8
}

// EncodeHeader writes h as the 8-byte fixed prefix.
func EncodeHeader(h Header) []byte {
	buf := make([]byte, HeaderSize)
	binary.LittleEndian.PutUint16(buf[0:2], h.Magic)
	binary.LittleEndian.PutUint16(buf[2:4], h.Checksum)
	binary.LittleEndian.PutUint16(buf[4:6], h.Length)
	buf[6] = byte(h.Class)
	buf[7] = 0
	return buf
}

// DecodeHeader parses the 8-byte fixed prefix from buf.
func DecodeHeader(buf []byte) Header {
	return Header{
		Magic:    binary.LittleEndian.Uint16(buf[0:2]),
		Checksum: binary.LittleEndian.Uint16(buf[2:4]),
		Length:   binary.LittleEndian.Uint16(buf[4:6]),
		Class:    Class(buf[6]),
	}
}
