package commb

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func buildAirbornePositionMB(typeCode uint32, ac12 uint32) [7]byte {
	var mb [7]byte
	setBits(&mb, 1, 5, typeCode)
	setBits(&mb, 9, 20, ac12)
	setBits(&mb, 23, 39, 0x1234)
	setBits(&mb, 40, 56, 0x5678)
	return mb
}

func TestDecodeAirbornePosition(t *testing.T) {
	const ac12 = 171
	const expandedAC13 = 299 // ((171&0x0FC0)<<1)|(171&0x003F)

	t.Run("recognised BDS 0,5 payload scores 100", func(t *testing.T) {
		mb := buildAirbornePositionMB(11, ac12)
		r := &Record{MsgType: 20, MB: mb, AC: expandedAC13}
		score := decodeAirbornePosition(r, true)
		assert.Equal(t, 100, score)
		assert.Equal(t, FormatAirbornePosition, r.Format)
	})

	t.Run("only applies to DF20 frames", func(t *testing.T) {
		mb := buildAirbornePositionMB(11, ac12)
		r := &Record{MsgType: 21, MB: mb, AC: expandedAC13}
		assert.Equal(t, 0, decodeAirbornePosition(r, false))
	})

	t.Run("type code outside airborne position range rejects", func(t *testing.T) {
		mb := buildAirbornePositionMB(5, ac12)
		r := &Record{MsgType: 20, MB: mb, AC: expandedAC13}
		assert.Equal(t, 0, decodeAirbornePosition(r, false))
	})

	t.Run("mismatched surrounding AC13 rejects", func(t *testing.T) {
		mb := buildAirbornePositionMB(11, ac12)
		r := &Record{MsgType: 20, MB: mb, AC: expandedAC13 + 1}
		assert.Equal(t, 0, decodeAirbornePosition(r, false))
	})

	t.Run("zero altitude code rejects", func(t *testing.T) {
		mb := buildAirbornePositionMB(11, 0)
		r := &Record{MsgType: 20, MB: mb, AC: 0}
		assert.Equal(t, 0, decodeAirbornePosition(r, false))
	})
}
