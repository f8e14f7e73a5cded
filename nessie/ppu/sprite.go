package ppu

import "github.com/valerio/go-nessie/nessie/bit"

const (
	SpriteCount     = 64
	bytesPerSprite  = 4
	OAMSize         = SpriteCount * bytesPerSprite
	patternTileSize = 16
)

// Sprite is derived on demand from a 4 byte OAM record, it is never stored.
//
// Byte 0 - Y position of the top, minus one
// Byte 1 - Tile index (8x16: bit 0 selects the pattern table)
// Byte 2 - Attributes
//   - Bit 7 - Flip vertically
//   - Bit 6 - Flip horizontally
//   - Bit 5 - Priority (0=in front of background, 1=behind background)
//   - Bit 1-0 - Palette
//
// Byte 3 - X position of the left side
type Sprite struct {
	Index   int
	X       int
	Y       int
	Tile    uint8
	Table   uint16
	Palette uint8
	FlipH   bool
	FlipV   bool
	Behind  bool
	Height  int
}

// Zero reports whether this is OAM record 0, the one used for hit detection.
func (s Sprite) Zero() bool {
	return s.Index == 0
}

// TileAddress returns the pattern address of the 8x8 tile covering row (0 to Height-1)
// of the sprite, already taking vertical flip into account for 8x16 sprites.
func (s Sprite) TileAddress(row int) uint16 {
	tile := s.Tile
	if s.Height == 16 {
		half := row / 8
		if s.FlipV {
			half = 1 - half
		}
		tile += uint8(half)
	}
	return s.Table + uint16(tile)*patternTileSize
}

// parseSprite decodes one record. table is the 8x8 sprite pattern table from the control register.
func parseSprite(oam []uint8, index int, tall bool, table uint16) Sprite {
	rec := oam[index*bytesPerSprite : index*bytesPerSprite+bytesPerSprite]
	attr := rec[2]

	s := Sprite{
		Index:   index,
		Y:       int(rec[0]) + 1,
		X:       int(rec[3]),
		Palette: attr & 0x03,
		Behind:  bit.IsSet(5, attr),
		FlipH:   bit.IsSet(6, attr),
		FlipV:   bit.IsSet(7, attr),
		Height:  8,
		Tile:    rec[1],
		Table:   table,
	}

	if tall {
		s.Height = 16
		s.Table = uint16(rec[1]&0x01) * 0x1000
		s.Tile = rec[1] & 0xFE
	}

	return s
}

// SpriteFilter selects which sprites to extract from OAM and how to read them.
type SpriteFilter uint8

const (
	BackgroundSprites8 SpriteFilter = iota
	BackgroundSprites16
	ForegroundSprites8
	ForegroundSprites16
)

func (f SpriteFilter) String() string {
	switch f {
	case BackgroundSprites8:
		return "background-8x8"
	case BackgroundSprites16:
		return "background-8x16"
	case ForegroundSprites8:
		return "foreground-8x8"
	case ForegroundSprites16:
		return "foreground-8x16"
	default:
		return "unknown"
	}
}

// FilterFor returns the filter for a priority group and sprite height.
func FilterFor(behind, tall bool) SpriteFilter {
	switch {
	case behind && tall:
		return BackgroundSprites16
	case behind:
		return BackgroundSprites8
	case tall:
		return ForegroundSprites16
	default:
		return ForegroundSprites8
	}
}

var spriteFilters = [...]func(oam []uint8, table uint16) []Sprite{
	BackgroundSprites8:  backgroundSprites8,
	BackgroundSprites16: backgroundSprites16,
	ForegroundSprites8:  foregroundSprites8,
	ForegroundSprites16: foregroundSprites16,
}

// Extract returns the matching sprites in OAM order.
func (f SpriteFilter) Extract(oam []uint8, table uint16) []Sprite {
	return spriteFilters[f](oam, table)
}

func backgroundSprites8(oam []uint8, table uint16) []Sprite {
	return collectSprites(oam, false, table, true)
}

func backgroundSprites16(oam []uint8, _ uint16) []Sprite {
	return collectSprites(oam, true, 0, true)
}

func foregroundSprites8(oam []uint8, table uint16) []Sprite {
	return collectSprites(oam, false, table, false)
}

func foregroundSprites16(oam []uint8, _ uint16) []Sprite {
	return collectSprites(oam, true, 0, false)
}

func collectSprites(oam []uint8, tall bool, table uint16, behind bool) []Sprite {
	var out []Sprite
	for i := 0; i < SpriteCount; i++ {
		s := parseSprite(oam, i, tall, table)
		if s.Behind == behind {
			out = append(out, s)
		}
	}
	return out
}
