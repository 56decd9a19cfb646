package commb

// decodeAirbornePosition recognises (but does not decode) a BDS 0,5
// extended-squitter airborne position reply riding inside a DF20 frame.
// Its only job is to outrank the other decoders on the rare payload that
// would otherwise be misclassified as, e.g., an MRAR.
func decodeAirbornePosition(r *Record, store bool) int {
	if r.MsgType != 20 {
		return 0
	}

	typeCode := Bits(r.MB, 1, 5)
	if typeCode < 9 || typeCode > 18 {
		return 0
	}
	if bitSet(r.MB, 21) {
		return 0
	}

	ac12 := Bits(r.MB, 9, 20)
	if ac12 == 0 {
		return 0
	}

	ac13 := ((ac12 & 0x0FC0) << 1) | (ac12 & 0x003F)
	if int(ac13) != r.AC {
		return 0
	}

	if Bits(r.MB, 23, 39) == 0 || Bits(r.MB, 40, 56) == 0 {
		return 0
	}

	if store {
		r.Format = FormatAirbornePosition
	}
	return 100
}
