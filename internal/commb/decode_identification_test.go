package commb

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func callsignCode(ch byte) uint32 {
	switch {
	case ch == '@':
		return 0
	case ch >= 'A' && ch <= 'Z':
		return uint32(ch-'A') + 1
	case ch == ' ':
		return 32
	case ch >= '0' && ch <= '9':
		return uint32(ch-'0') + 48
	default:
		panic("unsupported test char")
	}
}

func buildIdentMB(chars [8]byte) [7]byte {
	var mb [7]byte
	mb[0] = 0x20
	for i, ch := range chars {
		lo := 9 + i*6
		setBits(&mb, lo, lo+5, callsignCode(ch))
	}
	return mb
}

func TestDecodeAircraftIdent(t *testing.T) {
	t.Run("full callsign decodes and stores", func(t *testing.T) {
		mb := buildIdentMB([8]byte{'U', 'A', 'L', '1', '2', '3', ' ', ' '})
		r := &Record{MB: mb}
		score := decodeAircraftIdent(r, true)
		assert.Equal(t, 8+8*6, score)
		assert.Equal(t, FormatAircraftIdent, r.Format)
		assert.True(t, r.CallsignValid)
		assert.Equal(t, "UAL123  ", r.Callsign)
	})

	t.Run("wrong BDS header rejects", func(t *testing.T) {
		mb := buildIdentMB([8]byte{'U', 'A', 'L', '1', '2', '3', ' ', ' '})
		mb[0] = 0x21
		r := &Record{MB: mb}
		assert.Equal(t, 0, decodeAircraftIdent(r, false))
	})

	t.Run("padded trailing chars score but do not store", func(t *testing.T) {
		mb := buildIdentMB([8]byte{'N', '1', '2', '3', 'A', 'B', '@', '@'})
		r := &Record{MB: mb}
		score := decodeAircraftIdent(r, true)
		assert.Greater(t, score, 0)
		assert.False(t, r.CallsignValid)
	})

	t.Run("undecodable character rejects outright", func(t *testing.T) {
		var mb [7]byte
		mb[0] = 0x20
		setBits(&mb, 9, 14, 27) // unmapped 6-bit code
		r := &Record{MB: mb}
		assert.Equal(t, 0, decodeAircraftIdent(r, false))
	})
}
