package commb

import "math"

// decodeHeadingSpeed decodes BDS 6,0 (heading and speed report): magnetic
// heading, indicated airspeed, Mach number, and barometric/inertial
// vertical rate.
func decodeHeadingSpeed(r *Record, store bool) int {
	mb := r.MB

	hdgStatus := bitSet(mb, 1)
	hdgSign := bitSet(mb, 2)
	hdgRaw := Bits(mb, 3, 12)

	iasStatus := bitSet(mb, 13)
	iasRaw := Bits(mb, 14, 23)

	machStatus := bitSet(mb, 24)
	machRaw := Bits(mb, 25, 34)

	baroStatus := bitSet(mb, 35)
	baroSign := bitSet(mb, 36)
	baroRaw := Bits(mb, 37, 45)

	geomStatus := bitSet(mb, 46)
	geomSign := bitSet(mb, 47)
	geomRaw := Bits(mb, 48, 56)

	if !(hdgStatus && iasStatus && machStatus) {
		return 0
	}
	if !baroStatus && !geomStatus {
		return 0
	}

	heading := float64(hdgRaw) * 90.0 / 512.0
	if hdgSign {
		heading += 180
	}
	if heading < 0 || heading > 360 {
		return 0
	}

	ias := float64(iasRaw)
	if ias < 50 || ias > 700 {
		return 0
	}

	mach := float64(machRaw) * 2.048 / 512.0
	if mach < 0.1 || mach > 0.9 {
		return 0
	}

	score := 12 + 11 + 11

	var baroRate float64
	baroValid := false
	if baroStatus {
		baroRate = float64(baroRaw) * 32
		if baroSign {
			baroRate -= 16384
		}
		if baroRate < -6000 || baroRate > 6000 {
			return 0
		}
		score += 11
		baroValid = true
	}

	var geomRate float64
	geomValid := false
	if geomStatus {
		geomRate = float64(geomRaw) * 32
		if geomSign {
			geomRate -= 16384
		}
		if geomRate < -6000 || geomRate > 6000 {
			return 0
		}
		score += 11
		geomValid = true
	}

	if baroValid && geomValid && math.Abs(baroRate-geomRate) > 2000 {
		score -= 12
	}

	if score <= 0 {
		return 0
	}

	if store {
		r.Format = FormatHeadingSpeed
		r.Heading = heading
		r.HeadingValid = true
		r.HeadingType = HeadingTypeMagnetic
		r.IAS = ias
		r.IASValid = true
		r.Mach = mach
		r.MachValid = true
		r.BaroRate = baroRate
		r.BaroRateValid = baroValid
		r.GeomRate = geomRate
		r.GeomRateValid = geomValid
	}

	return score
}
