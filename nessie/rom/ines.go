package rom

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os"
)

const (
	HeaderSize  = 16
	PRGBankSize = 0x4000
	CHRBankSize = 0x2000
	trainerSize = 512
)

// header offsets
const (
	prgBanksOffset = 4
	chrBanksOffset = 5
	flags6Offset   = 6
	flags7Offset   = 7
)

var magic = []byte{'N', 'E', 'S', 0x1A}

var (
	// ErrBadMagic is returned when the image does not start with the iNES magic bytes.
	ErrBadMagic = errors.New("rom: bad magic bytes")
	// ErrTruncated is returned when the image is shorter than its header declares.
	ErrTruncated = errors.New("rom: image truncated")
)

// Mirroring is the nametable arrangement wired on the cartridge board.
type Mirroring uint8

const (
	Horizontal Mirroring = iota
	Vertical
	FourScreen
	// SingleScreenLow and SingleScreenHigh map all four nametables onto one
	// physical table. Only boards can select them, never the header.
	SingleScreenLow
	SingleScreenHigh
)

func (m Mirroring) String() string {
	switch m {
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	case FourScreen:
		return "four-screen"
	case SingleScreenLow:
		return "single-screen-low"
	case SingleScreenHigh:
		return "single-screen-high"
	default:
		return "unknown"
	}
}

// Image is a parsed cartridge image.
type Image struct {
	PRG       []byte
	CHR       []byte
	Mapper    uint8
	Mirroring Mirroring
	Battery   bool
	// CHRRAM is set when the header declares no CHR banks, CHR is then 8KB of RAM.
	CHRRAM bool
}

// PRGBanks returns the number of 16KB program banks.
func (img *Image) PRGBanks() int {
	return len(img.PRG) / PRGBankSize
}

// CHRBanks returns the number of 8KB character banks.
func (img *Image) CHRBanks() int {
	return len(img.CHR) / CHRBankSize
}

// Load reads and parses the image at path.
func Load(path string) (*Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read ROM %s: %w", path, err)
	}

	img, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse ROM %s: %w", path, err)
	}

	slog.Info("Loaded ROM",
		"path", path,
		"bytes", len(data),
		"prg_banks", img.PRGBanks(),
		"chr_banks", img.CHRBanks(),
		"mapper", img.Mapper,
		"mirroring", img.Mirroring.String())
	return img, nil
}

// Parse decodes an iNES image: a 16 byte header, an optional 512 byte trainer,
// then program data and character data sized by the header's bank counts.
func Parse(data []byte) (*Image, error) {
	if len(data) < HeaderSize || !bytes.Equal(data[:len(magic)], magic) {
		return nil, ErrBadMagic
	}

	prgBanks := int(data[prgBanksOffset])
	chrBanks := int(data[chrBanksOffset])
	flags6 := data[flags6Offset]
	flags7 := data[flags7Offset]

	img := &Image{
		Mapper:  flags7&0xF0 | flags6>>4,
		Battery: flags6&0x02 != 0,
	}

	switch {
	case flags6&0x08 != 0:
		img.Mirroring = FourScreen
	case flags6&0x01 != 0:
		img.Mirroring = Vertical
	default:
		img.Mirroring = Horizontal
	}

	offset := HeaderSize
	if flags6&0x04 != 0 {
		offset += trainerSize
	}

	prgSize := prgBanks * PRGBankSize
	chrSize := chrBanks * CHRBankSize
	if prgBanks == 0 || len(data) < offset+prgSize+chrSize {
		return nil, fmt.Errorf("%w: want %d bytes of PRG and %d of CHR, have %d", ErrTruncated, prgSize, chrSize, len(data)-offset)
	}

	img.PRG = make([]byte, prgSize)
	copy(img.PRG, data[offset:offset+prgSize])
	offset += prgSize

	if chrBanks == 0 {
		img.CHRRAM = true
		img.CHR = make([]byte, CHRBankSize)
	} else {
		img.CHR = make([]byte, chrSize)
		copy(img.CHR, data[offset:offset+chrSize])
	}

	return img, nil
}

// Build assembles an iNES image from raw banks. prg and chr must be multiples of
// their bank sizes.
func Build(prg, chr []byte, mapper uint8, mirroring Mirroring) []byte {
	header := make([]byte, HeaderSize)
	copy(header, magic)
	header[prgBanksOffset] = byte(len(prg) / PRGBankSize)
	header[chrBanksOffset] = byte(len(chr) / CHRBankSize)
	header[flags6Offset] = mapper << 4
	header[flags7Offset] = mapper & 0xF0
	switch mirroring {
	case Vertical:
		header[flags6Offset] |= 0x01
	case FourScreen:
		header[flags6Offset] |= 0x08
	}

	out := make([]byte, 0, len(header)+len(prg)+len(chr))
	out = append(out, header...)
	out = append(out, prg...)
	out = append(out, chr...)
	return out
}
