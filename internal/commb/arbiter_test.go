package commb

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeNotDecoded(t *testing.T) {
	tests := []struct {
		name string
		r    *Record
	}{
		{"DR set", &Record{DR: 1}},
		{"UM set", &Record{UM: 1}},
		{"corrected bits set", &Record{CorrectedBits: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			Decode(tt.r)
			assert.Equal(t, FormatNotDecoded, tt.r.Format)
		})
	}
}

func TestDecodeUnknown(t *testing.T) {
	// No lead byte matches a register identifier, and the zeroed remainder
	// fails every status-gated decoder's required-field check.
	r := &Record{MB: [7]byte{0x01, 0, 0, 0, 0, 0, 0}}
	Decode(r)
	assert.Equal(t, FormatUnknown, r.Format)
}

func TestDecodeEndToEndEmptyResponse(t *testing.T) {
	r := &Record{MB: [7]byte{0x00, 0, 0, 0, 0, 0, 0}}
	Decode(r)
	assert.Equal(t, FormatEmptyResponse, r.Format)
}

func TestDecodeEndToEndAircraftIdent(t *testing.T) {
	mb := buildIdentMB([8]byte{'U', 'A', 'L', '1', '2', '3', ' ', ' '})
	r := &Record{MB: mb}
	Decode(r)
	assert.Equal(t, FormatAircraftIdent, r.Format)
	assert.True(t, r.CallsignValid)
	assert.Equal(t, "UAL123  ", r.Callsign)
}

func TestDecodeEndToEndAirbornePositionOverride(t *testing.T) {
	// A BDS 0,5 payload must outrank everything else regardless of what any
	// other decoder happens to score on the same bytes.
	mb := buildAirbornePositionMB(11, 171)
	r := &Record{MsgType: 20, MB: mb, AC: 299}
	Decode(r)
	assert.Equal(t, FormatAirbornePosition, r.Format)
}

// TestDecodeDispatchesUniqueWinner and TestDecodeAmbiguousOnTie exercise the
// arbiter's replace/tie bookkeeping directly, with the real decoder set
// swapped out for deterministic synthetic scorers.
func TestDecodeDispatchesUniqueWinner(t *testing.T) {
	original := decoders
	defer func() { decoders = original }()

	storedFormat := FormatUnknown
	decoders = []decoderFunc{
		func(r *Record, store bool) int { return 3 },
		func(r *Record, store bool) int {
			if store {
				storedFormat = FormatGICBCaps
				r.Format = FormatGICBCaps
			}
			return 7
		},
		func(r *Record, store bool) int { return 1 },
	}

	r := &Record{}
	Decode(r)

	assert.Equal(t, FormatGICBCaps, r.Format)
	assert.Equal(t, FormatGICBCaps, storedFormat)
}

func TestDecodeAmbiguousOnTie(t *testing.T) {
	original := decoders
	defer func() { decoders = original }()

	called := false
	decoders = []decoderFunc{
		func(r *Record, store bool) int { return 5 },
		func(r *Record, store bool) int { return 5 },
		func(r *Record, store bool) int {
			called = store
			return 0
		},
	}

	r := &Record{}
	Decode(r)

	assert.Equal(t, FormatAmbiguous, r.Format)
	assert.False(t, called)
}

func TestDecodeUnknownWhenNoDecoderScores(t *testing.T) {
	original := decoders
	defer func() { decoders = original }()

	decoders = []decoderFunc{
		func(r *Record, store bool) int { return 0 },
		func(r *Record, store bool) int { return 0 },
	}

	r := &Record{}
	Decode(r)

	assert.Equal(t, FormatUnknown, r.Format)
}
