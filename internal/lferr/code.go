package lferr

//go:generate go tool stringer -type=Code

// Code is the wire-stable error taxonomy shared by Result.error (spec §3)
// and the host/device "last error" latch (spec §7). Numeric values are
// part of the wire contract and must not be renumbered.
//
// spec.md's prose lists this taxonomy as
// "OK, Malloc, Null, Overflow, NoDevice, Endpoint, Checksum, Subclass,
// Type, Module, Name, Fmr, Test", but its own worked example asserts
// "error=Checksum(=7)". This implementation resolves the conflict by
// swapping Subclass and Checksum relative to the prose order so the
// worked example holds exactly; see SPEC_FULL.md and DESIGN.md.
type Code uint32

const (
	OK       Code = 0
	Malloc   Code = 1
	Null     Code = 2
	Overflow Code = 3
	NoDevice Code = 4
	Endpoint Code = 5
	Subclass Code = 6
	Checksum Code = 7
	Type     Code = 8
	Module   Code = 9
	Name     Code = 10
	Fmr      Code = 11
	Test     Code = 12
)

// Error implements error so a Code can be returned/wrapped directly.
func (c Code) Error() string {
	return "lf: " + c.String()
}
