package frame

import "errors"

var (
	// ErrChecksum is returned when magic or CRC validation fails (spec
	// §4.3 failure modes (a)/(c)).
	ErrChecksum = errors.New("frame: magic or checksum mismatch")
	// ErrOverflow is returned when length is out of the buffer's bounds
	// (spec §4.3 failure mode (b)).
	ErrOverflow = errors.New("frame: length out of bounds")
	// ErrSubclass is returned when the class byte is not one of the nine
	// enumerated classes (spec §4.3 failure mode (d); §9 treats the
	// source's `default: assert(true, ...)` bug as this path).
	ErrSubclass = errors.New("frame: unrecognized packet class")
	// ErrTooManyArgs mirrors arglist.ErrOverflow for bodies decoded
	// directly off the wire without going through an arglist.List.
	ErrTooManyArgs = errors.New("frame: argc exceeds MAX_ARGC")
)
