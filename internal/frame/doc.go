// Package frame owns the wire packet format: fixed header, class-specific
// bodies, and the CRC-16 integrity check (spec C3).
//
// Ownership boundary:
// - header/body encode+decode
// - CRC-16/XMODEM (poly 0x1021, init 0x0000); see SPEC_FULL.md for how
//   this was matched against the original's live "lf_crc".
// - packet class enumeration
//
// Grounded on edgectl's internal/protocol/frame (fixed magic/version/
// header-length header, validated against payload length), adapted from
// that package's variable-length auth/flags header to spec.md §4.3's
// fixed 8-byte header and whole-packet CRC.
package frame
