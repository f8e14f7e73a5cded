package ppu

import "github.com/valerio/go-nessie/nessie/video"

const (
	worldWidth  = 2 * video.FramebufferWidth
	worldHeight = 2 * video.FramebufferHeight
)

func (p *PPU) backgroundTable() uint16 {
	if p.ctrl.BackgroundTable {
		return 0x1000
	}
	return 0
}

func (p *PPU) spriteTable() uint16 {
	if p.ctrl.SpriteTable {
		return 0x1000
	}
	return 0
}

// backgroundTile returns the tile and attribute palette covering world pixel wx, wy.
// The world is the 2x2 arrangement of logical nametables.
func (p *PPU) backgroundTile(wx, wy int) (Tile, uint8) {
	table := (wy/video.FramebufferHeight)*2 + wx/video.FramebufferWidth
	base := nametableStart + uint16(table)*0x400
	col := (wx % video.FramebufferWidth) / 8
	row := (wy % video.FramebufferHeight) / 8

	index := p.readVRAM(base + uint16(row*32+col))
	attr := p.readVRAM(base + 0x3C0 + uint16((row/4)*8+col/4))
	shift := ((row%4)/2)*4 + ((col%4)/2)*2

	return p.fetchTile(p.backgroundTable() + uint16(index)*patternTileSize), attr >> shift & 0x03
}

// forEachBackgroundTile visits every tile overlapping the screen at the current
// scroll, with sx, sy the screen position of its top left corner. Tiles on the
// right and bottom edges are partially off screen.
func (p *PPU) forEachBackgroundTile(fn func(sx, sy int, t Tile, palette uint8)) {
	originX := int(p.scrollX)
	if p.ctrl.NametableX {
		originX += video.FramebufferWidth
	}
	originY := int(p.scrollY)
	if p.ctrl.NametableY {
		originY += video.FramebufferHeight
	}

	fineX, fineY := originX%8, originY%8
	for row := 0; row <= video.FramebufferHeight/8; row++ {
		for col := 0; col <= video.FramebufferWidth/8; col++ {
			wx := (originX - fineX + col*8) % worldWidth
			wy := (originY - fineY + row*8) % worldHeight
			t, pal := p.backgroundTile(wx, wy)
			fn(col*8-fineX, row*8-fineY, t, pal)
		}
	}
}

func onScreen(x, y int) bool {
	return x >= 0 && x < video.FramebufferWidth && y >= 0 && y < video.FramebufferHeight
}

// render composites the whole frame: backdrop, background, sprites behind the
// background, then sprites in front of it.
func (p *PPU) render() {
	p.screen.Fill(SystemColor(p.palette[0]))
	var opaque [video.FramebufferHeight][video.FramebufferWidth]bool

	if p.mask.ShowBackground {
		p.forEachBackgroundTile(func(sx, sy int, t Tile, pal uint8) {
			for y := 0; y < 8; y++ {
				for x := 0; x < 8; x++ {
					px := t.Pixel(x, y)
					sxx, syy := sx+x, sy+y
					if px == 0 || !onScreen(sxx, syy) || (sxx < 8 && !p.mask.ShowBackgroundLeft) {
						continue
					}
					opaque[syy][sxx] = true
					p.screen.SetPixel(uint(sxx), uint(syy), SystemColor(p.palette[pal*4+px]))
				}
			}
		})
	}

	if !p.mask.ShowSprites {
		return
	}

	for _, behind := range []bool{true, false} {
		sprites := FilterFor(behind, p.ctrl.TallSprites).Extract(p.oam[:], p.spriteTable())
		// lower OAM index wins, so draw from the back
		for i := len(sprites) - 1; i >= 0; i-- {
			p.drawSprite(sprites[i], &opaque)
		}
	}
}

func (p *PPU) drawSprite(s Sprite, opaque *[video.FramebufferHeight][video.FramebufferWidth]bool) {
	var t Tile
	for row := 0; row < s.Height; row++ {
		if row%8 == 0 {
			t = p.fetchTile(s.TileAddress(row))
		}
		ty := row % 8
		if s.FlipV {
			ty = 7 - ty
		}

		for col := 0; col < 8; col++ {
			tx := col
			if s.FlipH {
				tx = 7 - col
			}
			px := t.Pixel(tx, ty)
			x, y := s.X+col, s.Y+row
			if px == 0 || !onScreen(x, y) || (x < 8 && !p.mask.ShowSpritesLeft) {
				continue
			}
			if s.Behind && opaque[y][x] {
				continue
			}
			p.screen.SetPixel(uint(x), uint(y), SystemColor(p.palette[0x10+s.Palette*4+px]))
		}
	}
}

// buildSpriteZeroDetector marks every background tile and sprite 0 for the coming frame.
func (p *PPU) buildSpriteZeroDetector() *SpriteZeroDetector {
	d := NewSpriteZeroDetector()

	p.forEachBackgroundTile(func(sx, sy int, t Tile, _ uint8) {
		d.MarkBackground(sx, sy, t.Opacity(), false, false)
	})

	s := parseSprite(p.oam[:], 0, p.ctrl.TallSprites, p.spriteTable())
	for half := 0; half < s.Height/8; half++ {
		t := p.fetchTile(s.TileAddress(half * 8))
		d.MarkSprite(s.X, s.Y+half*8, t.Opacity(), s.FlipH, s.FlipV)
	}

	return d
}
