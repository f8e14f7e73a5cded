package ppu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClockBoundaries(t *testing.T) {
	c := NewClock(4)

	var boundaries []Boundary
	for i := 0; i < 4*ScanlinesPerFrame; i++ {
		if b, ok := c.Tick(); ok {
			boundaries = append(boundaries, b)
		}
	}

	assert.Len(t, boundaries, ScanlinesPerFrame, "exactly one boundary per scanline")
	assert.Equal(t, Boundary{Scanline: 1, Event: VisibleLine}, boundaries[0])
	assert.Equal(t, Boundary{Scanline: 240, Event: PostRender}, boundaries[239])
	assert.Equal(t, Boundary{Scanline: 241, Event: VBlankStart}, boundaries[240])
	assert.Equal(t, Boundary{Scanline: 261, Event: VBlankEnd}, boundaries[260])
	assert.Equal(t, Boundary{Scanline: 0, Event: FrameStart}, boundaries[261])
	assert.Equal(t, 0, c.Scanline())
}

func TestClockDefaultThreshold(t *testing.T) {
	c := NewClock(0)
	for i := 0; i < DefaultDotsPerScanline-1; i++ {
		_, ok := c.Tick()
		assert.False(t, ok)
	}
	_, ok := c.Tick()
	assert.True(t, ok)
	assert.Equal(t, 1, c.Scanline())
	assert.Equal(t, 0, c.Dot())
}

func TestEventFor(t *testing.T) {
	tests := []struct {
		scanline int
		want     Event
	}{
		{0, FrameStart},
		{1, VisibleLine},
		{239, VisibleLine},
		{240, PostRender},
		{241, VBlankStart},
		{250, VBlankLine},
		{261, VBlankEnd},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, EventFor(tt.scanline), "scanline %d", tt.scanline)
	}
}

func TestClockInVBlank(t *testing.T) {
	c := NewClock(1)
	for c.Scanline() != VBlankStartScanline {
		c.Tick()
	}
	assert.True(t, c.InVBlank())
	for c.Scanline() != VBlankEndScanline {
		c.Tick()
	}
	assert.False(t, c.InVBlank())
}
