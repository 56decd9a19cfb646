package commb

import "math"

// decodeTrackTurn decodes BDS 5,0 (track and turn report): roll angle,
// ground track, ground speed, track angle rate, and true airspeed.
func decodeTrackTurn(r *Record, store bool) int {
	mb := r.MB

	rollStatus := bitSet(mb, 1)
	rollSign := bitSet(mb, 2)
	rollRaw := Bits(mb, 3, 11)

	trackStatus := bitSet(mb, 12)
	trackSign := bitSet(mb, 13)
	trackRaw := Bits(mb, 14, 23)

	gsStatus := bitSet(mb, 24)
	gsRaw := Bits(mb, 25, 34)

	rateStatus := bitSet(mb, 35)
	rateSign := bitSet(mb, 36)
	rateRaw := Bits(mb, 37, 45)

	tasStatus := bitSet(mb, 46)
	tasRaw := Bits(mb, 47, 56)

	if !(rollStatus && trackStatus && gsStatus && tasStatus) {
		return 0
	}

	roll := float64(rollRaw) * 45.0 / 256.0
	if rollSign {
		roll -= 90
	}
	if roll < -40 || roll >= 40 {
		return 0
	}

	track := float64(trackRaw) * 90.0 / 512.0
	if trackSign {
		track += 180
	}
	if track < 0 || track > 360 {
		return 0
	}

	gs := float64(gsRaw) * 2.0
	if gs < 50 || gs > 700 {
		return 0
	}

	tas := float64(tasRaw) * 2.0
	if tas < 50 || tas > 700 {
		return 0
	}

	score := 11 + 12 + 11 + 11 // roll + track + gs + tas

	var trackRate float64
	rateValid := false
	if rateStatus {
		trackRate = float64(rateRaw) * 8.0 / 256.0
		if rateSign {
			trackRate -= 16
		}
		if trackRate < -10 || trackRate > 10 {
			return 0
		}
		score += 11
		rateValid = true
	}

	if rateValid && tas > 0 {
		expected := 68625 * math.Tan(roll*math.Pi/180) / (tas * 20 * math.Pi)
		if math.Abs(expected-trackRate) > 2.0 {
			score -= 6
		}
	}

	// Ground speed / true airspeed should roughly agree; large divergence
	// is the spec's documented fix for an open question about a dropped
	// consistency check (see DESIGN.md).
	if math.Abs(gs-tas) > 150 {
		score -= 6
	}

	if score <= 0 {
		return 0
	}

	if store {
		r.Format = FormatTrackTurn
		r.Roll = roll
		r.RollValid = true
		r.Heading = track
		r.HeadingValid = true
		r.HeadingType = HeadingTypeGroundTrack
		r.GS = gs
		r.GSValid = true
		r.TrackRate = trackRate
		r.TrackRateValid = rateValid
		r.TAS = tas
		r.TASValid = true
	}

	return score
}
