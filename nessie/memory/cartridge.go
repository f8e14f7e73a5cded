package memory

import (
	"log/slog"

	"github.com/valerio/go-nessie/nessie/addr"
	"github.com/valerio/go-nessie/nessie/rom"
)

// PRGRAMSize is the size of the battery/work RAM mapped at 0x6000.
const PRGRAMSize = 0x2000

// Cartridge decodes the cartridge window: PRG RAM at 0x6000-0x7FFF and PRG ROM through the mapper.
type Cartridge struct {
	mapper Mapper
	ram    [PRGRAMSize]uint8
	image  *rom.Image
}

// NewCartridge creates a cartridge from a parsed image.
func NewCartridge(img *rom.Image) (*Cartridge, error) {
	m, err := NewMapper(img.Mapper, img.PRG)
	if err != nil {
		return nil, err
	}

	slog.Debug("Cartridge loaded", "mapper", m.Name(), "prg_banks", img.PRGBanks(), "chr_banks", img.CHRBanks(), "mirroring", img.Mirroring)

	return &Cartridge{mapper: m, image: img}, nil
}

// NewCartridgeWithPRG creates an NROM cartridge over raw PRG data, useful for tests and scenarios.
func NewCartridgeWithPRG(prg []uint8) *Cartridge {
	m, err := NewMapper(0, prg)
	if err != nil {
		panic(err)
	}
	return &Cartridge{mapper: m, image: &rom.Image{PRG: prg}}
}

// Mapper returns the cartridge's mapper.
func (c *Cartridge) Mapper() Mapper {
	return c.mapper
}

// Image returns the image the cartridge was built from.
func (c *Cartridge) Image() *rom.Image {
	return c.image
}

func (c *Cartridge) Read(address uint16) uint8 {
	switch {
	case address >= addr.PRGROMStart:
		return c.mapper.Read(address)
	case address >= addr.PRGRAMStart:
		return c.ram[address-addr.PRGRAMStart]
	default:
		// expansion area, nothing drives the bus
		return 0
	}
}

func (c *Cartridge) Write(address uint16, value uint8) {
	switch {
	case address >= addr.PRGROMStart:
		c.mapper.Write(address, value)
	case address >= addr.PRGRAMStart:
		c.ram[address-addr.PRGRAMStart] = value
	}
}
