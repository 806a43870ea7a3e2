// Package arglist owns the ordered, growable (tag, value) argument
// sequence used to build one invocation (spec C2).
//
// Ownership boundary:
// - arity bound (MaxArgc) and append/iterate/release lifecycle
// - the list is single-consumer: Release after packet construction
//
// Grounded on edgectl's internal/protocol/tlv ordered field sequence,
// generalized from a byte-buffer TLV list to a fixed-capacity
// (tag, value) slice sized for C2's 16-argument bound.
package arglist
