// Package wire owns the scalar type tag, its wire width, and the packed
// little-endian representation of a value (spec C1).
//
// Ownership boundary:
// - the 4-bit tag space and its validity rules
// - pack/unpack with sign extension
//
// Grounded on edgectl's internal/protocol/tlv (tag/length/value packing)
// and internal/protocol/types.go (fixed-width field contracts),
// generalized from protocol's byte-oriented fields to C1's packed
// 4-bit tag space.
package wire
