package lferr

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSlotLatchesUntilExplicitRead(t *testing.T) {
	var s Slot
	require.Equal(t, OK, s.Get())

	s.Set(Checksum)
	require.Equal(t, Checksum, s.Get())
	require.Equal(t, Checksum, s.Get(), "Get must not clear")

	got := s.GetAndClear()
	require.Equal(t, Checksum, got)
	require.Equal(t, OK, s.Get(), "GetAndClear must reset to OK")
}

func TestCodeStringMatchesWorkedExample(t *testing.T) {
	require.EqualValues(t, 7, Checksum)
	require.Equal(t, "Checksum", Checksum.String())
}
