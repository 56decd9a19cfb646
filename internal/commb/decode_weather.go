package commb

// decodeMRAR decodes BDS 4,4 (meteorological routine air report): wind,
// static air temperature, average static pressure, turbulence, and
// humidity.
func decodeMRAR(r *Record, store bool) int {
	mb := r.MB

	sourceRaw := Bits(mb, 1, 4)
	windStatus := bitSet(mb, 5)
	windSpeedRaw := Bits(mb, 6, 14)
	windDirRaw := Bits(mb, 15, 23)

	satStatus := bitSet(mb, 24)
	satSign := bitSet(mb, 25)
	satRaw := Bits(mb, 26, 34)

	aspStatus := bitSet(mb, 35)
	aspRaw := Bits(mb, 36, 46)

	turbStatus := bitSet(mb, 47)
	turbRaw := Bits(mb, 48, 49)

	humidityStatus := bitSet(mb, 50)
	humidityRaw := Bits(mb, 51, 56)

	source := MRARSource(sourceRaw)
	if source == MRARSourceInvalid || sourceRaw >= mrarSourceReservedMin {
		return 0
	}
	if !windStatus || !satStatus {
		return 0
	}
	if !aspStatus && aspRaw != 0 {
		return 0
	}
	if !turbStatus && turbRaw != 0 {
		return 0
	}
	if !humidityStatus && humidityRaw != 0 {
		return 0
	}

	score := 0

	windSpeed := float64(windSpeedRaw)
	windDir := float64(windDirRaw) * 180.0 / 256.0
	switch {
	case windSpeed == 0:
		score += 2
	case windSpeed <= 250:
		score += 19
	default:
		return 0
	}

	sat := float64(satRaw)*0.25 - boolToFloat(satSign, 128)
	switch {
	case sat == 0:
		score += 2
	case sat >= -80 && sat <= 60:
		score += 11
	default:
		return 0
	}

	var asp float64
	if aspStatus {
		asp = float64(aspRaw)
		if asp < 25 || asp > 1100 {
			return 0
		}
		score += 12
	} else {
		score++
	}

	if turbStatus {
		score += 3
	} else {
		score++
	}

	var humidity float64
	if humidityStatus {
		humidity = float64(humidityRaw) * 100.0 / 64.0
		score += 7
	} else {
		score++
	}

	// Collision tie-breaker: a BDS 1,7 capability bit pattern ({0,7 0,8 0,9
	// available} + {6,0 available}, all else zero) can score positively
	// here as an MRAR with source=DME/DME and wind+SAT marked valid.
	// Clamp so BDS 1,7's structural score wins that collision.
	if source == MRARSourceDMEDME && windStatus && satStatus {
		score = 1
	}

	if score <= 0 {
		return 0
	}

	if store {
		r.Format = FormatMRAR
		r.MRARSource = source
		r.MRARSourceValid = true
		r.WindSpeed = windSpeed
		r.WindSpeedValid = true
		r.WindDir = windDir
		r.WindDirValid = true
		r.Temperature = sat
		r.TemperatureValid = true
		r.Pressure = asp
		r.PressureValid = aspStatus
		r.Turbulence = Turbulence(turbRaw)
		r.TurbulenceValid = turbStatus
		r.Humidity = humidity
		r.HumidityValid = humidityStatus
	}

	return score
}

func boolToFloat(b bool, v float64) float64 {
	if b {
		return v
	}
	return 0
}
