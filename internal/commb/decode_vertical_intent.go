package commb

// decodeVerticalIntent decodes BDS 4,0 (selected vertical intention): MCP
// and FMS selected altitude, barometric pressure setting, active
// autoflight modes, and the altitude source in use.
func decodeVerticalIntent(r *Record, store bool) int {
	mb := r.MB

	mcpStatus := bitSet(mb, 1)
	mcpRaw := Bits(mb, 2, 13)
	fmsStatus := bitSet(mb, 14)
	fmsRaw := Bits(mb, 15, 26)
	baroStatus := bitSet(mb, 27)
	baroRaw := Bits(mb, 28, 39)
	if Bits(mb, 40, 47) != 0 {
		return 0
	}
	modeStatus := bitSet(mb, 48)
	modeRaw := Bits(mb, 49, 51)
	if Bits(mb, 52, 53) != 0 {
		return 0
	}
	sourceStatus := bitSet(mb, 54)
	sourceRaw := Bits(mb, 55, 56)

	if !mcpStatus && !fmsStatus && !baroStatus && !modeStatus && !sourceStatus {
		return 0
	}
	if statusValueReject(mcpStatus, mcpRaw) ||
		statusValueReject(fmsStatus, fmsRaw) ||
		statusValueReject(baroStatus, baroRaw) {
		return 0
	}

	score := 0
	var mcpAlt, fmsAlt int
	var qnh float64
	mcpValid, fmsValid, qnhValid := false, false, false

	if mcpStatus {
		mcpAlt = int(mcpRaw) * 16
		if mcpAlt < 1000 || mcpAlt > 50000 {
			return 0
		}
		score += 13
		mcpValid = true
	} else {
		score++
	}

	if fmsStatus {
		fmsAlt = int(fmsRaw) * 16
		if fmsAlt < 1000 || fmsAlt > 50000 {
			return 0
		}
		score += 13
		fmsValid = true
	} else {
		score++
	}

	if baroStatus {
		qnh = 800 + float64(baroRaw)*0.1
		if qnh < 900 || qnh > 1100 {
			return 0
		}
		score += 13
		qnhValid = true
	} else {
		score++
	}

	if modeStatus {
		score += 4
	}
	if sourceStatus {
		score += 3
	}

	if mcpValid && fmsValid && mcpAlt != fmsAlt {
		score -= 4
	}
	if mcpValid && !withinTolerance(mcpAlt, 500, 16) {
		score -= 4
	}
	if fmsValid && !withinTolerance(fmsAlt, 500, 16) {
		score -= 4
	}

	if score <= 0 {
		return 0
	}

	if store {
		r.Format = FormatVerticalIntent
		r.Nav.MCPAltitude = mcpAlt
		r.Nav.MCPAltitudeValid = mcpValid
		r.Nav.FMSAltitude = fmsAlt
		r.Nav.FMSAltitudeValid = fmsValid
		r.Nav.QNH = qnh
		r.Nav.QNHValid = qnhValid
		r.Nav.Modes = decodeNavModes(modeStatus, modeRaw)
		r.Nav.AltitudeSource = decodeAltitudeSource(sourceStatus, sourceRaw)
	}

	return score
}

// statusValueReject implements the shared BDS 4,0 status/value gate:
// status=1 with raw=0, or status=0 with raw!=0, is an immediate reject.
func statusValueReject(status bool, raw uint32) bool {
	if status {
		return raw == 0
	}
	return raw != 0
}

// withinTolerance reports whether value lies within +/-tolerance of some
// multiple of step.
func withinTolerance(value, step, tolerance int) bool {
	rem := value % step
	if rem < 0 {
		rem += step
	}
	diff := rem
	if step-rem < diff {
		diff = step - rem
	}
	return diff <= tolerance
}

func decodeNavModes(status bool, raw uint32) NavMode {
	if !status {
		return 0
	}
	var modes NavMode
	if raw&0x4 != 0 {
		modes |= NavModeVNAV
	}
	if raw&0x2 != 0 {
		modes |= NavModeAltHold
	}
	if raw&0x1 != 0 {
		modes |= NavModeApproach
	}
	return modes
}

func decodeAltitudeSource(status bool, raw uint32) AltitudeSource {
	if !status {
		return AltitudeSourceInvalid
	}
	switch raw {
	case 0:
		return AltitudeSourceUnknown
	case 1:
		return AltitudeSourceAircraft
	case 2:
		return AltitudeSourceMCP
	case 3:
		return AltitudeSourceFMS
	default:
		return AltitudeSourceInvalid
	}
}
