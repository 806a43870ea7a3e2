package frame

// CRC16 computes CRC-16/XMODEM over data: polynomial 0x1021, initial value
// 0x0000, no input/output reflection, no final XOR, byte-at-a-time. This
// resolves spec.md's unspecified "lf_crc" (§4.3, §9 open question) to match
// the original's live `lf_crc` (`library/rust/src/capi.rs`, duplicated as
// `calculate_crc` in `runtime/mod.rs`) bit-for-bit. See SPEC_FULL.md for
// the rejected `fmr.rs` variant this one was checked against.
func CRC16(data []byte) uint16 {
	crc := uint16(0)
	for _, b := range data {
		crc ^= uint16(b) << 8
		for i := 0; i < 8; i++ {
			if crc&0x8000 != 0 {
				crc = (crc << 1) ^ 0x1021
			} else {
				crc <<= 1
			}
		}
	}
	return crc
}
