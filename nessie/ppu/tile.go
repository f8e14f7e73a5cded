package ppu

import "github.com/valerio/go-nessie/nessie/bit"

// Tile is one 8x8 pattern, two bit planes per row. Bit 7 is the leftmost pixel.
type Tile struct {
	Low  [8]uint8
	High [8]uint8
}

// Pixel returns the 2 bit color number at x, y. 0 is transparent.
func (t Tile) Pixel(x, y int) uint8 {
	shift := uint8(7 - x)
	return (t.High[y]>>shift&1)<<1 | t.Low[y]>>shift&1
}

// Opacity returns one mask per row with a bit set for every non transparent pixel.
func (t Tile) Opacity() [8]uint8 {
	var rows [8]uint8
	for y := range rows {
		rows[y] = t.Low[y] | t.High[y]
	}
	return rows
}

// Flip returns rows transformed by horizontal and vertical flips.
func Flip(rows [8]uint8, flipH, flipV bool) [8]uint8 {
	var out [8]uint8
	for y := range rows {
		src := y
		if flipV {
			src = 7 - y
		}
		out[y] = rows[src]
		if flipH {
			out[y] = bit.Reverse(out[y])
		}
	}
	return out
}

// fetchTile reads the two planes of the tile at address from the PPU bus.
func (p *PPU) fetchTile(address uint16) Tile {
	var t Tile
	for y := 0; y < 8; y++ {
		t.Low[y] = p.readVRAM(address + uint16(y))
		t.High[y] = p.readVRAM(address + uint16(y) + 8)
	}
	return t
}
