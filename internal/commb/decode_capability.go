package commb

// decodeDatalinkCaps recognises BDS 1,0 (datalink capability report).
func decodeDatalinkCaps(r *Record, store bool) int {
	if r.MB[0] != 0x10 {
		return 0
	}
	if Bits(r.MB, 10, 14) != 0 {
		return 0
	}

	if store {
		r.Format = FormatDatalinkCaps
	}
	return 56
}

// decodeGICBCaps recognises BDS 1,7 (GICB capability report) purely from
// bit structure: unlike the other registers it carries no BDS identifier
// byte.
func decodeGICBCaps(r *Record, store bool) int {
	if Bits(r.MB, 25, 56) != 0 {
		return 0
	}

	score := 0

	if bitSet(r.MB, 7) {
		score++
	} else {
		score -= 2
	}
	for _, bit := range []int{10, 11, 12} {
		if bitSet(r.MB, bit) {
			score -= 2
		}
	}
	for _, bit := range []int{13, 14} {
		if bitSet(r.MB, bit) {
			score--
		}
	}
	for _, bit := range []int{20, 21, 22} {
		if bitSet(r.MB, bit) {
			score -= 2
		}
	}

	b1, b2, b3, b4, b5, b6 := bitSet(r.MB, 1), bitSet(r.MB, 2), bitSet(r.MB, 3), bitSet(r.MB, 4), bitSet(r.MB, 5), bitSet(r.MB, 6)
	switch {
	case b1 && b2 && b3 && b4 && b5 && b6:
		score += 6 // all 1..5 set (+5) and bit 6 set (+1)
	case b1 && b2 && b3 && b4 && b5:
		score += 5
	case !b1 && !b2 && !b3 && !b4 && !b5 && !b6:
		score++
	case !b1 && !b2 && b3 && b4 && b5:
		score += 3
	default:
		score -= 12
	}

	b9, b16, b24 := bitSet(r.MB, 9), bitSet(r.MB, 16), bitSet(r.MB, 24)
	switch {
	case b16 && b24 && b9:
		score += 3 // b16&&b24 (+2) and b9 (+1)
	case b16 && b24:
		score += 2
	case !b9 && !b16 && !b24:
		score++
	default:
		score -= 6
	}

	if score <= 0 {
		return 0
	}

	if store {
		r.Format = FormatGICBCaps
	}
	return score
}

// decodeACASRA recognises BDS 3,0 (ACAS resolution advisory). No structural
// check beyond the BDS identifier byte: the register's layout doesn't
// constrain the payload enough to add plausibility weight.
func decodeACASRA(r *Record, store bool) int {
	if r.MB[0] != 0x30 {
		return 0
	}

	if store {
		r.Format = FormatACASRA
	}
	return 56
}
