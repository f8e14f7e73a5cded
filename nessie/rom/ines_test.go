package rom

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Run("mapper 0 with 16KB PRG and 8KB CHR", func(t *testing.T) {
		prg := make([]byte, PRGBankSize)
		prg[0] = 0xA9
		prg[PRGBankSize-1] = 0xEA
		chr := make([]byte, CHRBankSize)
		chr[0] = 0x3C

		img, err := Parse(Build(prg, chr, 0, Vertical))
		require.NoError(t, err)

		assert.Equal(t, uint8(0), img.Mapper)
		assert.Equal(t, 1, img.PRGBanks())
		assert.Equal(t, 1, img.CHRBanks())
		assert.Equal(t, Vertical, img.Mirroring)
		assert.False(t, img.CHRRAM)
		assert.Equal(t, byte(0xA9), img.PRG[0])
		assert.Equal(t, byte(0xEA), img.PRG[PRGBankSize-1])
		assert.Equal(t, byte(0x3C), img.CHR[0])
	})

	t.Run("mapper id split across two header bytes", func(t *testing.T) {
		img, err := Parse(Build(make([]byte, PRGBankSize), nil, 0x42, Horizontal))
		require.NoError(t, err)
		assert.Equal(t, uint8(0x42), img.Mapper)
		assert.Equal(t, Horizontal, img.Mirroring)
	})

	t.Run("no CHR banks means CHR RAM", func(t *testing.T) {
		img, err := Parse(Build(make([]byte, 2*PRGBankSize), nil, 2, Horizontal))
		require.NoError(t, err)
		assert.True(t, img.CHRRAM)
		assert.Len(t, img.CHR, CHRBankSize)
		assert.Equal(t, 2, img.PRGBanks())
	})

	t.Run("trainer is skipped", func(t *testing.T) {
		data := Build(make([]byte, PRGBankSize), make([]byte, CHRBankSize), 0, Horizontal)
		data[flags6Offset] |= 0x04
		trainer := make([]byte, trainerSize)
		data = append(data[:HeaderSize], append(trainer, data[HeaderSize:]...)...)
		data[HeaderSize+trainerSize] = 0x77

		img, err := Parse(data)
		require.NoError(t, err)
		assert.Equal(t, byte(0x77), img.PRG[0])
	})

	t.Run("bad magic", func(t *testing.T) {
		data := Build(make([]byte, PRGBankSize), nil, 0, Horizontal)
		data[0] = 'X'
		_, err := Parse(data)
		assert.ErrorIs(t, err, ErrBadMagic)

		_, err = Parse([]byte{'N', 'E'})
		assert.ErrorIs(t, err, ErrBadMagic)
	})

	t.Run("truncated", func(t *testing.T) {
		data := Build(make([]byte, PRGBankSize), make([]byte, CHRBankSize), 0, Horizontal)
		_, err := Parse(data[:len(data)-1])
		assert.ErrorIs(t, err, ErrTruncated)
	})
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "game.nes")
	require.NoError(t, os.WriteFile(path, Build(make([]byte, PRGBankSize), make([]byte, CHRBankSize), 0, Horizontal), 0o644))

	img, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 1, img.PRGBanks())

	_, err = Load(filepath.Join(t.TempDir(), "missing.nes"))
	assert.Error(t, err)
}
