package scenario

import (
	"context"
	"errors"
	"fmt"

	"github.com/valerio/go-nessie/nessie/ppu"
)

var solid = [8]uint8{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}

func spriteZero(context.Context) error {
	d := ppu.NewSpriteZeroDetector()
	d.MarkBackground(100, 100, solid, false, false)
	d.MarkSprite(120, 100, solid, false, false)
	if d.Hit() {
		return errors.New("non-overlapping sprite and background reported a hit")
	}

	// a single opaque pixel, flipped into the corner that meets the background
	var corner [8]uint8
	corner[0] = 0x80
	d = ppu.NewSpriteZeroDetector()
	d.MarkBackground(107, 107, corner, false, false)
	d.MarkSprite(100, 100, corner, true, true)
	row, ok := d.FirstHit()
	if !ok {
		return errors.New("flipped overlapping pixel was not detected")
	}
	if row != 107 {
		return fmt.Errorf("hit on row %d, want 107", row)
	}

	// sprites hanging off every edge stay inside the border
	d = ppu.NewSpriteZeroDetector()
	for _, pos := range [][2]int{{-4, -4}, {252, 100}, {100, 236}, {-8, -8}, {300, 300}} {
		d.MarkSprite(pos[0], pos[1], solid, false, false)
	}
	if d.Hit() {
		return errors.New("sprites without background reported a hit")
	}
	d.MarkBackground(0, 0, solid, false, false)
	if !d.Hit() {
		return errors.New("partially visible sprite at the top left edge was not detected")
	}
	return nil
}
