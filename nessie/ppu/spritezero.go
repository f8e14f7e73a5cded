package ppu

import "github.com/valerio/go-nessie/nessie/video"

const (
	// gridBorder is one tile of padding on every edge.
	gridBorder = 8
	gridWidth  = video.FramebufferWidth + 2*gridBorder
	gridHeight = video.FramebufferHeight + 2*gridBorder
)

type opacityGrid [gridHeight][gridWidth]bool

func newOpacityGrid() *opacityGrid {
	g := &opacityGrid{}
	for y := 0; y < gridHeight; y++ {
		for x := 0; x < gridWidth; x++ {
			if y < gridBorder || y >= gridHeight-gridBorder || x < gridBorder || x >= gridWidth-gridBorder {
				g[y][x] = true
			}
		}
	}
	return g
}

// mark places an 8x8 opacity pattern with its top left corner at screen x, y.
// Cells outside the padded grid are dropped.
func (g *opacityGrid) mark(x, y int, rows [8]uint8) {
	for row := 0; row < 8; row++ {
		gy := y + row + gridBorder
		if gy < 0 || gy >= gridHeight {
			continue
		}
		for col := 0; col < 8; col++ {
			gx := x + col + gridBorder
			if gx < 0 || gx >= gridWidth {
				continue
			}
			if rows[row]&(0x80>>col) != 0 {
				g[gy][gx] = true
			}
		}
	}
}

// SpriteZeroDetector finds where sprite 0 overlaps the background. It is built
// fresh for every frame and dropped once the hit flag has been decided.
type SpriteZeroDetector struct {
	background *opacityGrid
	sprite     *opacityGrid
}

// NewSpriteZeroDetector returns a detector with empty interiors and an opaque border.
func NewSpriteZeroDetector() *SpriteZeroDetector {
	return &SpriteZeroDetector{
		background: newOpacityGrid(),
		sprite:     newOpacityGrid(),
	}
}

// MarkBackground adds an opaque background tile pattern at screen x, y.
func (d *SpriteZeroDetector) MarkBackground(x, y int, rows [8]uint8, flipH, flipV bool) {
	d.background.mark(x, y, Flip(rows, flipH, flipV))
}

// MarkSprite adds an 8x8 tile of sprite 0 at screen x, y.
func (d *SpriteZeroDetector) MarkSprite(x, y int, rows [8]uint8, flipH, flipV bool) {
	d.sprite.mark(x, y, Flip(rows, flipH, flipV))
}

// FirstHit returns the first screen row where both grids are opaque, ignoring the border.
func (d *SpriteZeroDetector) FirstHit() (int, bool) {
	for y := gridBorder; y < gridHeight-gridBorder; y++ {
		for x := gridBorder; x < gridWidth-gridBorder; x++ {
			if d.background[y][x] && d.sprite[y][x] {
				return y - gridBorder, true
			}
		}
	}
	return 0, false
}

// Hit reports whether sprite 0 overlaps the background anywhere on screen.
func (d *SpriteZeroDetector) Hit() bool {
	_, ok := d.FirstHit()
	return ok
}
