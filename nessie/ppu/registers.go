package ppu

import (
	"github.com/valerio/go-nessie/nessie/addr"
	"github.com/valerio/go-nessie/nessie/bit"
)

// Register identifies a PPU-side target reachable from the CPU bus.
type Register uint8

const (
	Control Register = iota
	Mask
	Status
	OAMAddress
	OAMData
	Scroll
	Address
	Data
	// OAMDMA copies a full page into OAM, the page travels as the command payload.
	OAMDMA
	// JoystickStrobe is the controller port: writes latch strobe, reads shift out a button.
	JoystickStrobe
	// NametableMirroring carries a board driven mirroring change (rom.Mirroring as
	// the value). It has no CPU address.
	NametableMirroring
)

func (r Register) String() string {
	switch r {
	case Control:
		return "PPUCTRL"
	case Mask:
		return "PPUMASK"
	case Status:
		return "PPUSTATUS"
	case OAMAddress:
		return "OAMADDR"
	case OAMData:
		return "OAMDATA"
	case Scroll:
		return "PPUSCROLL"
	case Address:
		return "PPUADDR"
	case Data:
		return "PPUDATA"
	case OAMDMA:
		return "OAMDMA"
	case JoystickStrobe:
		return "JOY1"
	case NametableMirroring:
		return "MIRRORING"
	default:
		return "unknown"
	}
}

// RegisterFor maps a CPU address to the PPU target it reaches, if any.
func RegisterFor(address uint16) (Register, bool) {
	if addr.WindowOf(address) == addr.PPUWindow {
		return Register(addr.PPURegister(address) - addr.PPUStart), true
	}

	switch address {
	case addr.OAMDMA:
		return OAMDMA, true
	case addr.JOY1:
		return JoystickStrobe, true
	}
	return 0, false
}

// ControlFlags is the PPUCTRL flag set.
//
// Bit 7 - Generate NMI at vblank start
// Bit 6 - Master/slave select
// Bit 5 - Sprite size (0=8x8, 1=8x16)
// Bit 4 - Background pattern table (0=0x0000, 1=0x1000)
// Bit 3 - Sprite pattern table for 8x8 sprites (0=0x0000, 1=0x1000)
// Bit 2 - VRAM address increment (0=1, 1=32)
// Bit 1-0 - Base nametable (Y, X)
type ControlFlags struct {
	NametableX      bool
	NametableY      bool
	Increment32     bool
	SpriteTable     bool
	BackgroundTable bool
	TallSprites     bool
	Master          bool
	GenerateNMI     bool
}

func (c ControlFlags) Byte() uint8 {
	var v uint8
	v = bit.SetTo(0, v, c.NametableX)
	v = bit.SetTo(1, v, c.NametableY)
	v = bit.SetTo(2, v, c.Increment32)
	v = bit.SetTo(3, v, c.SpriteTable)
	v = bit.SetTo(4, v, c.BackgroundTable)
	v = bit.SetTo(5, v, c.TallSprites)
	v = bit.SetTo(6, v, c.Master)
	v = bit.SetTo(7, v, c.GenerateNMI)
	return v
}

func (c *ControlFlags) SetByte(v uint8) {
	c.NametableX = bit.IsSet(0, v)
	c.NametableY = bit.IsSet(1, v)
	c.Increment32 = bit.IsSet(2, v)
	c.SpriteTable = bit.IsSet(3, v)
	c.BackgroundTable = bit.IsSet(4, v)
	c.TallSprites = bit.IsSet(5, v)
	c.Master = bit.IsSet(6, v)
	c.GenerateNMI = bit.IsSet(7, v)
}

// Increment returns how far the bus address moves after a data access.
func (c ControlFlags) Increment() uint16 {
	if c.Increment32 {
		return 32
	}
	return 1
}

// SpriteHeight returns 16 for 8x16 sprites, 8 otherwise.
func (c ControlFlags) SpriteHeight() int {
	if c.TallSprites {
		return 16
	}
	return 8
}

// MaskFlags is the PPUMASK flag set.
//
// Bit 7-5 - Emphasize blue, green, red
// Bit 4 - Show sprites
// Bit 3 - Show background
// Bit 2 - Show sprites in leftmost 8 pixels
// Bit 1 - Show background in leftmost 8 pixels
// Bit 0 - Greyscale
type MaskFlags struct {
	Greyscale          bool
	ShowBackgroundLeft bool
	ShowSpritesLeft    bool
	ShowBackground     bool
	ShowSprites        bool
	EmphasizeRed       bool
	EmphasizeGreen     bool
	EmphasizeBlue      bool
}

func (m MaskFlags) Byte() uint8 {
	var v uint8
	v = bit.SetTo(0, v, m.Greyscale)
	v = bit.SetTo(1, v, m.ShowBackgroundLeft)
	v = bit.SetTo(2, v, m.ShowSpritesLeft)
	v = bit.SetTo(3, v, m.ShowBackground)
	v = bit.SetTo(4, v, m.ShowSprites)
	v = bit.SetTo(5, v, m.EmphasizeRed)
	v = bit.SetTo(6, v, m.EmphasizeGreen)
	v = bit.SetTo(7, v, m.EmphasizeBlue)
	return v
}

func (m *MaskFlags) SetByte(v uint8) {
	m.Greyscale = bit.IsSet(0, v)
	m.ShowBackgroundLeft = bit.IsSet(1, v)
	m.ShowSpritesLeft = bit.IsSet(2, v)
	m.ShowBackground = bit.IsSet(3, v)
	m.ShowSprites = bit.IsSet(4, v)
	m.EmphasizeRed = bit.IsSet(5, v)
	m.EmphasizeGreen = bit.IsSet(6, v)
	m.EmphasizeBlue = bit.IsSet(7, v)
}

// Rendering reports whether either layer is enabled.
func (m MaskFlags) Rendering() bool {
	return m.ShowBackground || m.ShowSprites
}

// StatusFlags is the PPUSTATUS flag set. The low 5 bits are not driven by the
// PPU and are kept verbatim so the byte round trips.
type StatusFlags struct {
	OpenBus        uint8
	SpriteOverflow bool
	SpriteZeroHit  bool
	VBlank         bool
}

func (s StatusFlags) Byte() uint8 {
	v := s.OpenBus & 0x1F
	v = bit.SetTo(5, v, s.SpriteOverflow)
	v = bit.SetTo(6, v, s.SpriteZeroHit)
	v = bit.SetTo(7, v, s.VBlank)
	return v
}

func (s *StatusFlags) SetByte(v uint8) {
	s.OpenBus = v & 0x1F
	s.SpriteOverflow = bit.IsSet(5, v)
	s.SpriteZeroHit = bit.IsSet(6, v)
	s.VBlank = bit.IsSet(7, v)
}
