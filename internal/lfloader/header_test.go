package lfloader

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestImageHeaderRoundTrip(t *testing.T) {
	h := ImageHeader{
		Entry:      0,
		ModuleOff:  HeaderSize,
		ModuleSize: 128,
		DataOff:    HeaderSize + 128,
		DataSize:   16,
		BSSOff:     HeaderSize + 144,
		BSSSize:    32,
		GOTOff:     HeaderSize + 176,
		GOTSize:    8,
	}

	buf := append(EncodeImageHeader(h), make([]byte, h.ModuleSize)...)
	got, payload, err := ParseImageHeader(buf)
	require.NoError(t, err)
	require.Equal(t, h, got)
	require.Len(t, payload, int(h.ModuleSize))
}

func TestImageHeaderIsApplication(t *testing.T) {
	require.False(t, ImageHeader{Entry: 0}.IsApplication())
	require.True(t, ImageHeader{Entry: 0x8000}.IsApplication())
}

func TestParseImageHeaderShortBuffer(t *testing.T) {
	_, _, err := ParseImageHeader(make([]byte, HeaderSize-1))
	require.ErrorIs(t, err, ErrShortImage)
}
