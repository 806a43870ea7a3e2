package lfloader

import (
	"encoding/binary"
	"errors"
)

// HeaderSize is the fixed byte length of ImageHeader: nine u32 fields,
// little-endian (spec §6 "device image handoff").
const HeaderSize = 36

// ErrShortImage is returned when a buffer is too small to hold a
// complete ImageHeader.
var ErrShortImage = errors.New("lfloader: image shorter than header")

// ImageHeader is the fixed header every uploaded module or application
// image begins with. An application has Entry != 0; a module has
// Entry == 0 and is bound into the registry instead of being jumped to.
type ImageHeader struct {
	Entry      uint32
	ModuleOff  uint32
	ModuleSize uint32
	DataOff    uint32
	DataSize   uint32
	BSSOff     uint32
	BSSSize    uint32
	GOTOff     uint32
	GOTSize    uint32
}

// IsApplication reports whether this image is a runnable application
// (Entry != 0) rather than a module to bind (Entry == 0).
func (h ImageHeader) IsApplication() bool {
	return h.Entry != 0
}

// ParseImageHeader decodes the fixed header from the front of buf and
// returns the module payload bytes that follow it.
func ParseImageHeader(buf []byte) (ImageHeader, []byte, error) {
	if len(buf) < HeaderSize {
		return ImageHeader{}, nil, ErrShortImage
	}
	h := ImageHeader{
		Entry:      binary.LittleEndian.Uint32(buf[0:4]),
		ModuleOff:  binary.LittleEndian.Uint32(buf[4:8]),
		ModuleSize: binary.LittleEndian.Uint32(buf[8:12]),
		DataOff:    binary.LittleEndian.Uint32(buf[12:16]),
		DataSize:   binary.LittleEndian.Uint32(buf[16:20]),
		BSSOff:     binary.LittleEndian.Uint32(buf[20:24]),
		BSSSize:    binary.LittleEndian.Uint32(buf[24:28]),
		GOTOff:     binary.LittleEndian.Uint32(buf[28:32]),
		GOTSize:    binary.LittleEndian.Uint32(buf[32:36]),
	}
	return h, buf[HeaderSize:], nil
}

// EncodeImageHeader is the inverse of ParseImageHeader; the header
// round-trip test uses it to build images.
func EncodeImageHeader(h ImageHeader) []byte {
	buf := make([]byte, HeaderSize)
	binary.LittleEndian.PutUint32(buf[0:4], h.Entry)
	binary.LittleEndian.PutUint32(buf[4:8], h.ModuleOff)
	binary.LittleEndian.PutUint32(buf[8:12], h.ModuleSize)
	binary.LittleEndian.PutUint32(buf[12:16], h.DataOff)
	binary.LittleEndian.PutUint32(buf[16:20], h.DataSize)
	binary.LittleEndian.PutUint32(buf[20:24], h.BSSOff)
	binary.LittleEndian.PutUint32(buf[24:28], h.BSSSize)
	binary.LittleEndian.PutUint32(buf[28:32], h.GOTOff)
	binary.LittleEndian.PutUint32(buf[32:36], h.GOTSize)
	return buf
}
