package commb

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeDatalinkCaps(t *testing.T) {
	tests := []struct {
		name     string
		mb       [7]byte
		wantScor int
	}{
		{"valid BDS 1,0 header", [7]byte{0x10, 0, 0, 0, 0, 0, 0}, 56},
		{"wrong lead byte", [7]byte{0x20, 0, 0, 0, 0, 0, 0}, 0},
		{"reserved bits 10-14 set", [7]byte{0x10, 0x40, 0, 0, 0, 0, 0}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &Record{MB: tt.mb}
			assert.Equal(t, tt.wantScor, decodeDatalinkCaps(r, false))
		})
	}
}

func TestDecodeGICBCaps(t *testing.T) {
	tests := []struct {
		name      string
		mb        [7]byte
		wantScore int
	}{
		{
			name:      "all-zero structural caps",
			mb:        [7]byte{0x02, 0, 0, 0, 0, 0, 0}, // bits1-6=0, bit7=1
			wantScore: 3,
		},
		{
			name:      "bits 1-6 all set",
			mb:        [7]byte{0xFE, 0, 0, 0, 0, 0, 0}, // bits1-6 set, bit7=1
			wantScore: 8,
		},
		{
			name:      "tail bits non-zero rejects",
			mb:        [7]byte{0x02, 0, 0, 0x01, 0, 0, 0}, // bit 32 set
			wantScore: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &Record{MB: tt.mb}
			assert.Equal(t, tt.wantScore, decodeGICBCaps(r, false))
		})
	}
}

func TestDecodeACASRA(t *testing.T) {
	tests := []struct {
		name     string
		mb       [7]byte
		wantScor int
	}{
		{"valid BDS 3,0 header", [7]byte{0x30, 1, 2, 3, 4, 5, 6}, 56},
		{"wrong lead byte", [7]byte{0x31, 0, 0, 0, 0, 0, 0}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &Record{MB: tt.mb}
			assert.Equal(t, tt.wantScor, decodeACASRA(r, false))
		})
	}
}

func TestDecodeGICBCapsStores(t *testing.T) {
	r := &Record{MB: [7]byte{0x02, 0, 0, 0, 0, 0, 0}}
	score := decodeGICBCaps(r, true)
	assert.Greater(t, score, 0)
	assert.Equal(t, FormatGICBCaps, r.Format)
}
