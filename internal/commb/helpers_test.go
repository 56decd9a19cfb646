package commb

// setBits writes value (lo..hi, 1-based, MSB-first) into msg, used by tests
// to build MB payloads field-by-field instead of hand-computing byte masks.
func setBits(msg *[7]byte, lo, hi int, value uint32) {
	width := hi - lo + 1
	for i := 0; i < width; i++ {
		n := lo + i
		bit := (value >> uint(width-1-i)) & 1
		byteIdx := (n - 1) / 8
		shift := 7 - ((n - 1) % 8)
		if bit == 1 {
			msg[byteIdx] |= 1 << uint(shift)
		} else {
			msg[byteIdx] &^= 1 << uint(shift)
		}
	}
}
