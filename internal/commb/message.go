// Package commb classifies and decodes Mode S Comm-B (DF20/DF21) replies.
//
// A Comm-B reply carries no explicit register identifier: the 56-bit MB
// payload could be any one of a fixed set of BDS register layouts. Decode
// runs every candidate register decoder over the payload in score mode,
// picks the unique highest scorer, and re-runs it in store mode to extract
// fields. Ties are reported as ambiguous rather than guessed at.
package commb

// Format is the classification outcome of a Comm-B reply.
type Format int

const (
	FormatNotDecoded Format = iota
	FormatUnknown
	FormatAmbiguous
	FormatEmptyResponse
	FormatDatalinkCaps
	FormatGICBCaps
	FormatAircraftIdent
	FormatACASRA
	FormatVerticalIntent
	FormatTrackTurn
	FormatHeadingSpeed
	FormatMRAR
	FormatAirbornePosition
)

func (f Format) String() string {
	switch f {
	case FormatNotDecoded:
		return "NOT_DECODED"
	case FormatUnknown:
		return "UNKNOWN"
	case FormatAmbiguous:
		return "AMBIGUOUS"
	case FormatEmptyResponse:
		return "EMPTY_RESPONSE"
	case FormatDatalinkCaps:
		return "DATALINK_CAPS"
	case FormatGICBCaps:
		return "GICB_CAPS"
	case FormatAircraftIdent:
		return "AIRCRAFT_IDENT"
	case FormatACASRA:
		return "ACAS_RA"
	case FormatVerticalIntent:
		return "VERTICAL_INTENT"
	case FormatTrackTurn:
		return "TRACK_TURN"
	case FormatHeadingSpeed:
		return "HEADING_SPEED"
	case FormatMRAR:
		return "MRAR"
	case FormatAirbornePosition:
		return "AIRBORNE_POSITION"
	default:
		return "UNKNOWN"
	}
}

// HeadingType distinguishes how a decoded heading field is referenced.
type HeadingType int

const (
	HeadingTypeNone HeadingType = iota
	HeadingTypeGroundTrack
	HeadingTypeMagnetic
)

// AltitudeSource is the selected-altitude source reported by BDS 4,0.
type AltitudeSource int

const (
	AltitudeSourceUnknown AltitudeSource = iota
	AltitudeSourceAircraft
	AltitudeSourceMCP
	AltitudeSourceFMS
	AltitudeSourceInvalid
)

// NavMode is a bit in the BDS 4,0 mode status flag set.
type NavMode uint8

const (
	NavModeVNAV     NavMode = 1 << iota // bit 2 of the mode field
	NavModeAltHold                      // bit 1 of the mode field
	NavModeApproach                     // bit 0 of the mode field
)

// MRARSource is the 4-bit navigation source field reported by BDS 4,4.
// Raw value 0 is the INVALID sentinel; values >= mrarSourceReservedMin are
// reserved (see DESIGN.md's note on this register's Open Question).
type MRARSource int

const (
	MRARSourceInvalid MRARSource = iota
	MRARSourceINS
	MRARSourceGNSS
	MRARSourceDMEDME
	MRARSourceVORDME
)

const mrarSourceReservedMin = 5

// Turbulence is the hazard code reported by BDS 4,4.
type Turbulence int

const (
	TurbulenceNil Turbulence = iota
	TurbulenceLight
	TurbulenceModerate
	TurbulenceSevere
)

// NavIntent holds the fields decoded from BDS 4,0 (selected vertical intent).
type NavIntent struct {
	MCPAltitude      int // feet
	MCPAltitudeValid bool
	FMSAltitude      int // feet
	FMSAltitudeValid bool
	QNH              float64 // hPa
	QNHValid         bool
	Modes            NavMode
	AltitudeSource   AltitudeSource
}

// Record is the message record the host passes to Decode. The caller
// populates the framing fields before the call; Decode populates the
// decoded fields. A Record is owned by the caller for the duration of one
// Decode call and is never retained by this package.
type Record struct {
	// Framing fields, read-only to this package.
	MsgType       int // downlink format, 20 or 21
	MB            [7]byte
	DR            int
	UM            int
	CorrectedBits int
	AC            int // 13-bit altitude code from the surrounding DF20 frame

	// Outcome, set exactly once per Decode call.
	Format Format

	// BDS 2,0 — aircraft identification.
	Callsign      string
	CallsignValid bool

	// BDS 4,0 — selected vertical intent.
	Nav NavIntent

	// BDS 5,0 / BDS 6,0 shared motion fields.
	Roll            float64 // degrees
	RollValid       bool
	Heading         float64 // degrees
	HeadingValid    bool
	HeadingType     HeadingType
	GS              float64 // knots
	GSValid         bool
	TrackRate       float64 // degrees/second
	TrackRateValid  bool
	TAS             float64 // knots
	TASValid        bool
	IAS             float64 // knots
	IASValid        bool
	Mach            float64
	MachValid       bool
	BaroRate        float64 // feet/minute
	BaroRateValid   bool
	GeomRate        float64 // feet/minute
	GeomRateValid   bool

	// BDS 4,4 — meteorological routine air report.
	MRARSource       MRARSource
	MRARSourceValid  bool
	WindSpeed        float64 // knots
	WindSpeedValid   bool
	WindDir          float64 // degrees
	WindDirValid     bool
	Temperature      float64 // Celsius
	TemperatureValid bool
	Pressure         float64 // hPa
	PressureValid    bool
	Turbulence       Turbulence
	TurbulenceValid  bool
	Humidity         float64 // percent
	HumidityValid    bool
}

// reset clears every decoded (non-framing) field. Called by Decode before
// dispatching so a reused Record never leaks a prior call's fields.
func (r *Record) reset() {
	msgType, mb, dr, um, corrected, ac := r.MsgType, r.MB, r.DR, r.UM, r.CorrectedBits, r.AC
	*r = Record{
		MsgType:       msgType,
		MB:            mb,
		DR:            dr,
		UM:            um,
		CorrectedBits: corrected,
		AC:            ac,
		Format:        FormatNotDecoded,
	}
}
