package apu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegisterFor(t *testing.T) {
	tests := []struct {
		address uint16
		want    Register
		ok      bool
	}{
		{0x4000, Pulse1Envelope, true},
		{0x4003, Pulse1TimerHigh, true},
		{0x4008, TriangleCounter, true},
		{0x4009, 0, false},
		{0x400F, NoiseLength, true},
		{0x4013, DMCLength, true},
		{0x4014, 0, false},
		{0x4015, ChannelStatus, true},
		{0x4016, 0, false},
		{0x4017, FrameCounter, true},
		{0x4018, 0, false},
		{0x2000, 0, false},
	}

	for _, tt := range tests {
		got, ok := RegisterFor(tt.address)
		assert.Equal(t, tt.ok, ok, "address 0x%04X", tt.address)
		if tt.ok {
			assert.Equal(t, tt.want, got)
			assert.NotEqual(t, "unknown", got.String())
		}
	}
}
