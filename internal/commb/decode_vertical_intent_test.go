package commb

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func buildVerticalIntentMB(mcpStatus bool, mcpRaw uint32, fmsStatus bool, fmsRaw uint32, baroStatus bool, baroRaw uint32, modeStatus bool, modeRaw uint32, sourceStatus bool, sourceRaw uint32) [7]byte {
	var mb [7]byte
	if mcpStatus {
		setBits(&mb, 1, 1, 1)
	}
	setBits(&mb, 2, 13, mcpRaw)
	if fmsStatus {
		setBits(&mb, 14, 14, 1)
	}
	setBits(&mb, 15, 26, fmsRaw)
	if baroStatus {
		setBits(&mb, 27, 27, 1)
	}
	setBits(&mb, 28, 39, baroRaw)
	if modeStatus {
		setBits(&mb, 48, 48, 1)
	}
	setBits(&mb, 49, 51, modeRaw)
	if sourceStatus {
		setBits(&mb, 54, 54, 1)
	}
	setBits(&mb, 55, 56, sourceRaw)
	return mb
}

func TestDecodeVerticalIntent(t *testing.T) {
	t.Run("all fields present and consistent", func(t *testing.T) {
		mb := buildVerticalIntentMB(true, 2000, true, 2000, true, 2130, true, 5, true, 2)
		r := &Record{MB: mb}
		score := decodeVerticalIntent(r, true)
		assert.Equal(t, 46, score)
		assert.Equal(t, FormatVerticalIntent, r.Format)
		assert.True(t, r.Nav.MCPAltitudeValid)
		assert.Equal(t, 32000, r.Nav.MCPAltitude)
		assert.True(t, r.Nav.FMSAltitudeValid)
		assert.Equal(t, 32000, r.Nav.FMSAltitude)
		assert.True(t, r.Nav.QNHValid)
		assert.InDelta(t, 1013.0, r.Nav.QNH, 0.01)
		assert.Equal(t, AltitudeSourceMCP, r.Nav.AltitudeSource)
		assert.NotZero(t, r.Nav.Modes&NavModeVNAV)
		assert.NotZero(t, r.Nav.Modes&NavModeApproach)
	})

	t.Run("no field present rejects", func(t *testing.T) {
		mb := buildVerticalIntentMB(false, 0, false, 0, false, 0, false, 0, false, 0)
		r := &Record{MB: mb}
		assert.Equal(t, 0, decodeVerticalIntent(r, false))
	})

	t.Run("status set with zero value rejects", func(t *testing.T) {
		mb := buildVerticalIntentMB(true, 0, false, 0, false, 0, false, 0, false, 0)
		r := &Record{MB: mb}
		assert.Equal(t, 0, decodeVerticalIntent(r, false))
	})

	t.Run("out of range altitude rejects", func(t *testing.T) {
		mb := buildVerticalIntentMB(true, 1, false, 0, false, 0, false, 0, false, 0)
		r := &Record{MB: mb}
		assert.Equal(t, 0, decodeVerticalIntent(r, false))
	})

	t.Run("mismatched MCP/FMS altitude penalized but not rejected", func(t *testing.T) {
		mb := buildVerticalIntentMB(true, 2000, true, 2001, false, 0, false, 0, false, 0)
		r := &Record{MB: mb}
		score := decodeVerticalIntent(r, false)
		assert.Greater(t, score, 0)
		assert.Less(t, score, 26) // 13+13+1 (absent baro) = 27, minus the -4 mismatch penalty = 23
	})
}
