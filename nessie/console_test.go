package nessie

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valerio/go-nessie/nessie/backend/headless"
	"github.com/valerio/go-nessie/nessie/cpu"
	"github.com/valerio/go-nessie/nessie/input"
	"github.com/valerio/go-nessie/nessie/memory"
	"github.com/valerio/go-nessie/nessie/rom"
)

// testImage builds an NROM image with program at 0x8000 and an NMI handler at nmi.
func testImage(t *testing.T, program []byte, nmi uint16, handler []byte) *rom.Image {
	t.Helper()
	prg := make([]byte, rom.PRGBankSize)
	copy(prg, program)
	copy(prg[nmi-0xC000:], handler)
	prg[0x3FFA], prg[0x3FFB] = byte(nmi), byte(nmi>>8)
	prg[0x3FFC], prg[0x3FFD] = 0x00, 0x80

	img, err := rom.Parse(rom.Build(prg, make([]byte, rom.CHRBankSize), 0, rom.Horizontal))
	require.NoError(t, err)
	return img
}

func unpacedConfig() Config {
	cfg := DefaultConfig()
	cfg.CPULag = 0
	cfg.PPULag = 0
	cfg.ScanlineCycles = 4
	return cfg
}

func TestControllerReadThroughConsole(t *testing.T) {
	program := []byte{
		0xA9, 0x01, // LDA #$01
		0x8D, 0x16, 0x40, // STA $4016
		0xA9, 0x00, // LDA #$00
		0x8D, 0x16, 0x40, // STA $4016
		0xAD, 0x16, 0x40, // LDA $4016
		0x8D, 0x00, 0x02, // STA $0200
		0xAD, 0x16, 0x40, // LDA $4016
		0x8D, 0x01, 0x02, // STA $0201
		0x02, // halt
	}
	c, err := New(testImage(t, program, 0xE000, []byte{0x40}), unpacedConfig())
	require.NoError(t, err)

	c.SetButton(input.ButtonA, true)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err = c.Run(ctx)

	var opErr *cpu.UnknownOpcodeError
	require.ErrorAs(t, err, &opErr)
	assert.Equal(t, uint8(0x02), opErr.Opcode)
	assert.Equal(t, uint16(0x8016), opErr.PC)

	assert.Equal(t, uint8(1), c.bus.Read(0x0200), "A is pressed")
	assert.Equal(t, uint8(0), c.bus.Read(0x0201), "B is not")
}

func TestPlayHeadless(t *testing.T) {
	program := []byte{
		0xA9, 0x80, // LDA #$80
		0x8D, 0x00, 0x20, // STA $2000
		0x4C, 0x05, 0x80, // JMP $8005
	}
	handler := []byte{
		0xE6, 0x10, // INC $10
		0x40, // RTI
	}
	// paced at real speed so the CPU enables NMIs long before the first vblank
	c, err := New(testImage(t, program, 0xE000, handler), DefaultConfig())
	require.NoError(t, err)

	h := headless.New(5, headless.Snapshots{})
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	require.NoError(t, c.Play(ctx, h))
	assert.Equal(t, 5, h.Frames())
	assert.NotZero(t, c.bus.Read(0x0010), "vblank NMIs ran the handler")
	assert.NotZero(t, c.cpu.Frames())
}

func TestPlayStopsOnCancel(t *testing.T) {
	c, err := New(testImage(t, []byte{0x4C, 0x00, 0x80}, 0xE000, []byte{0x40}), unpacedConfig())
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	assert.NoError(t, c.Play(ctx, headless.New(0, headless.Snapshots{})))
}

func TestNewErrors(t *testing.T) {
	img := testImage(t, nil, 0xE000, nil)

	t.Run("invalid config", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.ScanlineCycles = 0
		_, err := New(img, cfg)
		assert.Error(t, err)
	})

	t.Run("unsupported mapper", func(t *testing.T) {
		bad := *img
		bad.Mapper = 4
		_, err := New(&bad, DefaultConfig())
		var mapperErr memory.UnsupportedMapperError
		require.ErrorAs(t, err, &mapperErr)
		assert.Equal(t, uint8(4), mapperErr.ID)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := NewWithFile(filepath.Join(t.TempDir(), "missing.nes"), DefaultConfig())
		assert.Error(t, err)
	})

	t.Run("bad magic", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.nes")
		require.NoError(t, os.WriteFile(path, []byte("not a rom at all"), 0o644))
		_, err := NewWithFile(path, DefaultConfig())
		assert.ErrorIs(t, err, rom.ErrBadMagic)
	})
}

func TestNewWithFile(t *testing.T) {
	prg := make([]byte, rom.PRGBankSize)
	prg[0x3FFC], prg[0x3FFD] = 0x34, 0x92
	path := filepath.Join(t.TempDir(), "game.nes")
	require.NoError(t, os.WriteFile(path, rom.Build(prg, nil, 0, rom.Vertical), 0o644))

	c, err := NewWithFile(path, DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, uint16(0x9234), c.cpu.PC())
	assert.Equal(t, "mapper 0", c.Status())
}
