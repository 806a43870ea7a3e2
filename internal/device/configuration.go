package device

import "encoding/binary"

// Configuration is the record a class-0 request gets back: this
// device's own identity and ABI attributes, so a freshly attached host
// can size its pointer/uint unpacking correctly before issuing any
// invocation (spec §4.7 "fill a Configuration record from this device").
type Configuration struct {
	Identifier  uint16
	PointerSize uint8 // 2 or 4, mirrors trampoline.Profile.WordSize
	BigEndian   bool
}

// configurationSize is the encoded size: identifier(2) + pointerSize(1) + bigEndian(1).
const configurationSize = 4

func encodeConfiguration(c Configuration) []byte {
	buf := make([]byte, configurationSize)
	binary.LittleEndian.PutUint16(buf[0:2], c.Identifier)
	buf[2] = c.PointerSize
	if c.BigEndian {
		buf[3] = 1
	}
	return buf
}
