package ppu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var solid = [8]uint8{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}

func TestSpriteZeroDetector(t *testing.T) {
	t.Run("empty frame has no hit", func(t *testing.T) {
		d := NewSpriteZeroDetector()
		assert.False(t, d.Hit(), "the opaque border never counts")
	})

	t.Run("non overlapping pixels do not hit", func(t *testing.T) {
		d := NewSpriteZeroDetector()
		d.MarkBackground(0, 0, solid, false, false)
		d.MarkSprite(100, 100, solid, false, false)
		assert.False(t, d.Hit())
	})

	t.Run("overlap hits on its first row", func(t *testing.T) {
		d := NewSpriteZeroDetector()
		d.MarkBackground(40, 40, solid, false, false)
		d.MarkSprite(44, 43, solid, false, false)

		row, ok := d.FirstHit()
		assert.True(t, ok)
		assert.Equal(t, 43, row)
	})

	t.Run("flips apply before placement", func(t *testing.T) {
		corner := [8]uint8{0x80}
		opposite := [8]uint8{7: 0x01}

		d := NewSpriteZeroDetector()
		d.MarkBackground(16, 16, opposite, false, false)
		d.MarkSprite(16, 16, corner, false, false)
		assert.False(t, d.Hit())

		d.MarkSprite(16, 16, corner, true, true)
		row, ok := d.FirstHit()
		assert.True(t, ok)
		assert.Equal(t, 23, row)
	})

	t.Run("partially off screen sprites", func(t *testing.T) {
		d := NewSpriteZeroDetector()
		assert.NotPanics(t, func() {
			d.MarkSprite(252, 100, solid, false, false)
			d.MarkSprite(255, 255, solid, false, false)
			d.MarkSprite(-100, 500, solid, false, false)
			d.MarkBackground(-300, -300, solid, false, false)
		})

		// nothing spills over to the start of the next row
		d.MarkBackground(0, 101, [8]uint8{0x80, 0x80, 0x80}, false, false)
		assert.False(t, d.Hit())

		d.MarkSprite(-4, -4, solid, false, false)
		d.MarkBackground(0, 0, [8]uint8{0x80}, false, false)
		assert.True(t, d.Hit())
	})
}
