package addr

// Window identifies one of the four mutually exclusive regions of the CPU address space.
type Window uint8

const (
	// RAMWindow is the internal 2KB RAM, mirrored up to 0x1FFF.
	RAMWindow Window = iota
	// PPUWindow holds the 8 PPU registers, mirrored up to 0x3FFF.
	PPUWindow
	// IOWindow holds the APU and I/O registers.
	IOWindow
	// CartridgeWindow is everything the cartridge decodes, PRG RAM and PRG ROM.
	CartridgeWindow
)

func (w Window) String() string {
	switch w {
	case RAMWindow:
		return "ram"
	case PPUWindow:
		return "ppu"
	case IOWindow:
		return "io"
	case CartridgeWindow:
		return "cartridge"
	default:
		return "unknown"
	}
}

// memory map
const (
	RAMStart uint16 = 0x0000
	RAMEnd   uint16 = 0x1FFF
	// RAMSize is the physical size of the internal RAM, reads and writes are taken modulo this.
	RAMSize = 0x0800

	PPUStart uint16 = 0x2000
	PPUEnd   uint16 = 0x3FFF

	IOStart uint16 = 0x4000
	IOEnd   uint16 = 0x401F

	CartridgeStart uint16 = 0x4020
	PRGRAMStart    uint16 = 0x6000
	PRGRAMEnd      uint16 = 0x7FFF
	PRGROMStart    uint16 = 0x8000

	// StackBase is the fixed page holding the stack, SP is an offset into it.
	StackBase uint16 = 0x0100
)

// interrupt vectors
const (
	NMIVector   uint16 = 0xFFFA
	ResetVector uint16 = 0xFFFC
	IRQVector   uint16 = 0xFFFE
)

// PPU registers, as seen by the CPU (before mirroring)
const (
	PPUCTRL   uint16 = 0x2000
	PPUMASK   uint16 = 0x2001
	PPUSTATUS uint16 = 0x2002
	OAMADDR   uint16 = 0x2003
	OAMDATA   uint16 = 0x2004
	PPUSCROLL uint16 = 0x2005
	PPUADDR   uint16 = 0x2006
	PPUDATA   uint16 = 0x2007
)

// APU and I/O registers
const (
	SQ1VOL    uint16 = 0x4000
	SQ1SWEEP  uint16 = 0x4001
	SQ1LO     uint16 = 0x4002
	SQ1HI     uint16 = 0x4003
	SQ2VOL    uint16 = 0x4004
	SQ2SWEEP  uint16 = 0x4005
	SQ2LO     uint16 = 0x4006
	SQ2HI     uint16 = 0x4007
	TRILINEAR uint16 = 0x4008
	TRILO     uint16 = 0x400A
	TRIHI     uint16 = 0x400B
	NOISEVOL  uint16 = 0x400C
	NOISELO   uint16 = 0x400E
	NOISEHI   uint16 = 0x400F
	OAMDMA    uint16 = 0x4014
	SNDCHN    uint16 = 0x4015
	JOY1      uint16 = 0x4016
	JOY2      uint16 = 0x4017 // frame counter on write
)

// WindowOf returns the window containing address. Every address maps to exactly one window.
func WindowOf(address uint16) Window {
	switch {
	case address <= RAMEnd:
		return RAMWindow
	case address <= PPUEnd:
		return PPUWindow
	case address <= IOEnd:
		return IOWindow
	default:
		return CartridgeWindow
	}
}

// PPURegister folds a mirrored PPU window address onto its base register address.
func PPURegister(address uint16) uint16 {
	return PPUStart + address&0x0007
}
