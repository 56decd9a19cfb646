package commb

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeEmpty(t *testing.T) {
	tests := []struct {
		name     string
		mb       [7]byte
		wantScor int
	}{
		{"all zero", [7]byte{0x00, 0, 0, 0, 0, 0, 0}, 56},
		{"0x40 lead byte", [7]byte{0x40, 0, 0, 0, 0, 0, 0}, 56},
		{"0x50 lead byte", [7]byte{0x50, 0, 0, 0, 0, 0, 0}, 56},
		{"0x60 lead byte", [7]byte{0x60, 0, 0, 0, 0, 0, 0}, 56},
		{"unrecognised lead byte", [7]byte{0x20, 0, 0, 0, 0, 0, 0}, 0},
		{"trailing byte non-zero", [7]byte{0x00, 0, 0, 0, 0, 0, 1}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &Record{MB: tt.mb}
			score := decodeEmpty(r, false)
			assert.Equal(t, tt.wantScor, score)
		})
	}
}

func TestDecodeEmptyStores(t *testing.T) {
	r := &Record{MB: [7]byte{0x00, 0, 0, 0, 0, 0, 0}}
	score := decodeEmpty(r, true)
	assert.Equal(t, 56, score)
	assert.Equal(t, FormatEmptyResponse, r.Format)
}
