package commb

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func buildTrackTurnMB(rollRaw uint32, trackRaw, gsRaw uint32, rateStatus bool, rateRaw uint32, tasRaw uint32) [7]byte {
	var mb [7]byte
	setBits(&mb, 1, 1, 1) // rollStatus
	setBits(&mb, 3, 11, rollRaw)
	setBits(&mb, 12, 12, 1) // trackStatus
	setBits(&mb, 14, 23, trackRaw)
	setBits(&mb, 24, 24, 1) // gsStatus
	setBits(&mb, 25, 34, gsRaw)
	if rateStatus {
		setBits(&mb, 35, 35, 1)
	}
	setBits(&mb, 37, 45, rateRaw)
	setBits(&mb, 46, 46, 1) // tasStatus
	setBits(&mb, 47, 56, tasRaw)
	return mb
}

func TestDecodeTrackTurn(t *testing.T) {
	t.Run("all fields present and consistent", func(t *testing.T) {
		mb := buildTrackTurnMB(0, 512, 150, true, 0, 150)
		r := &Record{MB: mb}
		score := decodeTrackTurn(r, true)
		assert.Equal(t, 56, score)
		assert.Equal(t, FormatTrackTurn, r.Format)
		assert.True(t, r.RollValid)
		assert.InDelta(t, 0, r.Roll, 0.01)
		assert.True(t, r.GSValid)
		assert.InDelta(t, 300, r.GS, 0.01)
		assert.True(t, r.TASValid)
		assert.InDelta(t, 300, r.TAS, 0.01)
		assert.Equal(t, HeadingTypeGroundTrack, r.HeadingType)
	})

	t.Run("optional track rate absent scores lower but still decodes", func(t *testing.T) {
		mb := buildTrackTurnMB(0, 512, 150, false, 0, 150)
		r := &Record{MB: mb}
		score := decodeTrackTurn(r, true)
		assert.Equal(t, 45, score)
		assert.False(t, r.TrackRateValid)
	})

	t.Run("missing required field rejects", func(t *testing.T) {
		var mb [7]byte
		setBits(&mb, 1, 1, 1)
		setBits(&mb, 3, 11, 0)
		setBits(&mb, 12, 12, 1)
		setBits(&mb, 14, 23, 512)
		setBits(&mb, 24, 24, 1)
		setBits(&mb, 25, 34, 150)
		// tasStatus left unset
		r := &Record{MB: mb}
		assert.Equal(t, 0, decodeTrackTurn(r, false))
	})

	t.Run("implausible turn rate is penalized", func(t *testing.T) {
		// roll ~30.06deg, tas=300kt -> physically expected rate ~2.1deg/s.
		consistent := buildTrackTurnMB(171, 512, 150, true, 68, 150)
		inconsistent := buildTrackTurnMB(171, 512, 150, true, 320, 150)

		rc := &Record{MB: consistent}
		ri := &Record{MB: inconsistent}
		assert.Greater(t, decodeTrackTurn(rc, false), decodeTrackTurn(ri, false))
	})

	t.Run("large GS/TAS divergence is penalized", func(t *testing.T) {
		agree := buildTrackTurnMB(0, 512, 150, true, 0, 150)
		diverge := buildTrackTurnMB(0, 512, 150, true, 0, 50)

		ra := &Record{MB: agree}
		rd := &Record{MB: diverge}
		assert.Greater(t, decodeTrackTurn(ra, false), decodeTrackTurn(rd, false))
	})
}
