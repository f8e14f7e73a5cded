package memory

import (
	"fmt"

	"github.com/valerio/go-nessie/nessie/addr"
	"github.com/valerio/go-nessie/nessie/rom"
)

// Mapper translates CPU addresses in the PRG ROM window to bytes of the cartridge PRG data.
// Writes to a board's control range select banks, other writes are ignored.
type Mapper interface {
	Read(address uint16) uint8
	Write(address uint16, value uint8)
	// ID is the iNES mapper number this board implements.
	ID() uint8
}

// UnsupportedMapperError is returned when a cartridge asks for a board with no implementation.
type UnsupportedMapperError struct {
	ID uint8
}

func (e UnsupportedMapperError) Error() string {
	return fmt.Sprintf("unsupported mapper %d", e.ID)
}

// Mapping redirects the inclusive source range [Start, End] to PRG data starting at Offset.
type Mapping struct {
	Start  uint16
	End    uint16
	Offset int
}

func (m Mapping) contains(address uint16) bool {
	return address >= m.Start && address <= m.End
}

// board describes how a mapper reacts to control writes.
type board struct {
	name string
	// control is the address range that selects banks on write.
	controlStart, controlEnd uint16
	// bankSize is the granularity of one switchable bank.
	bankSize int
	// window is the source range a bank select remaps.
	windowStart, windowEnd uint16
	// selectMask is applied to the written value before taking it modulo the bank count.
	selectMask uint8
	// fixedLast maps the last bank at the given address on power-on, 0 to disable.
	fixedLast uint16
	// screenSelect is the control bit choosing the single-screen nametable, 0 if the
	// board wires mirroring in hardware.
	screenSelect uint8
}

var boards = map[uint8]board{
	// NROM: no banking, PRG is mirrored across the window.
	0: {name: "NROM"},
	// UxROM: switchable 16KB at 0x8000, last bank fixed at 0xC000.
	2: {
		name:         "UxROM",
		controlStart: 0x8000, controlEnd: 0xFFFF,
		bankSize:    0x4000,
		windowStart: 0x8000, windowEnd: 0xBFFF,
		selectMask: 0xFF,
		fixedLast:  0xC000,
	},
	// AxROM: one switchable 32KB bank, bit 4 selects the single-screen nametable.
	7: {
		name:         "AxROM",
		controlStart: 0x8000, controlEnd: 0xFFFF,
		bankSize:    0x8000,
		windowStart: 0x8000, windowEnd: 0xFFFF,
		selectMask:   0x07,
		screenSelect: 0x10,
	},
}

// BankedMapper implements every supported board with a single list of mappings.
// When several mappings contain an address, the most recently added one wins.
// Addresses with no mapping read PRG data at (address - 0x8000) modulo its size.
type BankedMapper struct {
	id       uint8
	board    board
	prg      []uint8
	mappings []Mapping

	mirroring        rom.Mirroring
	mirroringChanged bool
}

// NewMapper creates the mapper for the given iNES id over prg.
func NewMapper(id uint8, prg []uint8) (*BankedMapper, error) {
	b, ok := boards[id]
	if !ok {
		return nil, UnsupportedMapperError{ID: id}
	}
	if len(prg) == 0 {
		return nil, fmt.Errorf("mapper %s: empty PRG data", b.name)
	}

	m := &BankedMapper{
		id:    id,
		board: b,
		prg:   prg,
	}

	if b.fixedLast != 0 {
		last := m.banks() - 1
		m.Map(Mapping{Start: b.fixedLast, End: 0xFFFF, Offset: last * b.bankSize})
	}

	return m, nil
}

func (m *BankedMapper) ID() uint8 {
	return m.id
}

// Name is the board name, e.g. NROM.
func (m *BankedMapper) Name() string {
	return m.board.name
}

func (m *BankedMapper) banks() int {
	if m.board.bankSize == 0 {
		return 1
	}
	n := len(m.prg) / m.board.bankSize
	if n == 0 {
		return 1
	}
	return n
}

// Map adds a mapping. A previous mapping over the same source range is replaced,
// so the list never grows past the number of distinct windows.
func (m *BankedMapper) Map(mapping Mapping) {
	for i, existing := range m.mappings {
		if existing.Start == mapping.Start && existing.End == mapping.End {
			m.mappings = append(m.mappings[:i], m.mappings[i+1:]...)
			break
		}
	}
	m.mappings = append(m.mappings, mapping)
}

// Mappings returns a copy of the active mappings, oldest first.
func (m *BankedMapper) Mappings() []Mapping {
	out := make([]Mapping, len(m.mappings))
	copy(out, m.mappings)
	return out
}

// Translate returns the PRG offset an address reads from.
func (m *BankedMapper) Translate(address uint16) int {
	for i := len(m.mappings) - 1; i >= 0; i-- {
		mapping := m.mappings[i]
		if mapping.contains(address) {
			return (mapping.Offset + int(address-mapping.Start)) % len(m.prg)
		}
	}
	return int(address-addr.PRGROMStart) % len(m.prg)
}

func (m *BankedMapper) Read(address uint16) uint8 {
	if address < addr.PRGROMStart {
		return 0
	}
	return m.prg[m.Translate(address)]
}

func (m *BankedMapper) Write(address uint16, value uint8) {
	b := m.board
	if b.bankSize == 0 || address < b.controlStart || address > b.controlEnd {
		return
	}

	bank := int(value&b.selectMask) % m.banks()
	m.Map(Mapping{Start: b.windowStart, End: b.windowEnd, Offset: bank * b.bankSize})

	if b.screenSelect != 0 {
		m.mirroring = rom.SingleScreenLow
		if value&b.screenSelect != 0 {
			m.mirroring = rom.SingleScreenHigh
		}
		m.mirroringChanged = true
	}
}

// MirroringChange returns the nametable mirroring selected by the last control
// write, if any write happened since the previous call.
func (m *BankedMapper) MirroringChange() (rom.Mirroring, bool) {
	changed := m.mirroringChanged
	m.mirroringChanged = false
	return m.mirroring, changed
}
