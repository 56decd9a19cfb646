package commb

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBit(t *testing.T) {
	var msg [7]byte
	msg[0] = 0x80 // bit 1 set
	msg[1] = 0x01 // bit 16 set

	assert.Equal(t, 1, Bit(msg, 1))
	assert.Equal(t, 0, Bit(msg, 2))
	assert.Equal(t, 1, Bit(msg, 16))
	assert.Equal(t, 0, Bit(msg, 15))
}

func TestBits(t *testing.T) {
	var msg [7]byte
	msg[0] = 0x20 // 0010 0000, BDS-style nibble at bits 1-8

	tests := []struct {
		name     string
		lo, hi   int
		expected uint32
	}{
		{"full first byte", 1, 8, 0x20},
		{"single bit high", 1, 1, 0},
		{"single bit set", 3, 3, 1},
		{"zero span", 9, 16, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Bits(msg, tt.lo, tt.hi))
		})
	}
}

func TestBitSet(t *testing.T) {
	var msg [7]byte
	msg[0] = 0x01 // bit 8 set

	assert.True(t, bitSet(msg, 8))
	assert.False(t, bitSet(msg, 7))
}
