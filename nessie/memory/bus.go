package memory

import (
	"log/slog"

	"github.com/valerio/go-nessie/nessie/addr"
	"github.com/valerio/go-nessie/nessie/apu"
	"github.com/valerio/go-nessie/nessie/channel"
	"github.com/valerio/go-nessie/nessie/ppu"
	"github.com/valerio/go-nessie/nessie/rom"
)

// DMAStallCycles is how long the CPU is halted by a write to OAMDMA.
const DMAStallCycles = 513

// Bus is the CPU view of the address space. RAM and cartridge accesses are served
// locally, PPU and APU accesses become commands on their channels.
type Bus struct {
	ram  [addr.RAMSize]uint8
	cart *Cartridge

	ppu *channel.Requester[ppu.Register]
	apu *channel.Requester[apu.Register]

	stall int
}

// NewBus creates a bus. Either requester may be nil, reads then return 0 and writes are dropped.
func NewBus(cart *Cartridge, ppuCh *channel.Requester[ppu.Register], apuCh *channel.Requester[apu.Register]) *Bus {
	return &Bus{
		cart: cart,
		ppu:  ppuCh,
		apu:  apuCh,
	}
}

// Cartridge returns the cartridge attached to the bus.
func (b *Bus) Cartridge() *Cartridge {
	return b.cart
}

func (b *Bus) Read(address uint16) uint8 {
	switch addr.WindowOf(address) {
	case addr.RAMWindow:
		return b.ram[address%addr.RAMSize]
	case addr.PPUWindow:
		reg, _ := ppu.RegisterFor(address)
		return b.readPPU(reg)
	case addr.IOWindow:
		if reg, ok := ppu.RegisterFor(address); ok {
			return b.readPPU(reg)
		}
		if reg, ok := apu.RegisterFor(address); ok && b.apu != nil {
			return b.apu.Read(reg)
		}
		return 0
	default:
		if b.cart == nil {
			return 0
		}
		return b.cart.Read(address)
	}
}

func (b *Bus) readPPU(reg ppu.Register) uint8 {
	if b.ppu == nil {
		return 0
	}
	return b.ppu.Read(reg)
}

func (b *Bus) Write(address uint16, value uint8) {
	switch addr.WindowOf(address) {
	case addr.RAMWindow:
		b.ram[address%addr.RAMSize] = value
	case addr.PPUWindow:
		reg, _ := ppu.RegisterFor(address)
		if b.ppu != nil {
			b.ppu.Write(reg, value)
		}
	case addr.IOWindow:
		b.writeIO(address, value)
	default:
		if b.cart != nil {
			b.cart.Write(address, value)
			b.syncMirroring()
		}
	}
}

// mirroringSwitcher is implemented by boards that drive nametable mirroring.
type mirroringSwitcher interface {
	MirroringChange() (rom.Mirroring, bool)
}

// syncMirroring forwards a board mirroring change to the PPU, which owns the nametables.
func (b *Bus) syncMirroring() {
	m, ok := b.cart.Mapper().(mirroringSwitcher)
	if !ok {
		return
	}
	if mirroring, changed := m.MirroringChange(); changed && b.ppu != nil {
		b.ppu.Write(ppu.NametableMirroring, uint8(mirroring))
	}
}

func (b *Bus) writeIO(address uint16, value uint8) {
	if address == addr.OAMDMA {
		b.oamDMA(value)
		return
	}
	if reg, ok := ppu.RegisterFor(address); ok {
		if b.ppu != nil {
			b.ppu.Write(reg, value)
		}
		return
	}
	if reg, ok := apu.RegisterFor(address); ok {
		if b.apu != nil {
			b.apu.Write(reg, value)
		}
		return
	}
	slog.Debug("Write to unmapped I/O register", "address", address, "value", value)
}

// oamDMA copies page value<<8 to the PPU as a single command and stalls the CPU.
func (b *Bus) oamDMA(page uint8) {
	base := uint16(page) << 8
	buf := make([]uint8, 256)
	for i := range buf {
		buf[i] = b.Read(base + uint16(i))
	}
	if b.ppu != nil {
		b.ppu.WriteBlock(ppu.OAMDMA, page, buf)
	}
	b.stall += DMAStallCycles
}

// Stall returns the cycles the CPU owes for DMA transfers since the last call.
func (b *Bus) Stall() int {
	s := b.stall
	b.stall = 0
	return s
}

// Peek reads without side effects. PPU and I/O registers read as 0.
func (b *Bus) Peek(address uint16) uint8 {
	switch addr.WindowOf(address) {
	case addr.RAMWindow:
		return b.ram[address%addr.RAMSize]
	case addr.CartridgeWindow:
		if b.cart == nil {
			return 0
		}
		return b.cart.Read(address)
	default:
		return 0
	}
}
