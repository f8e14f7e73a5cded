package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valerio/go-nessie/nessie/rom"
)

// banked returns PRG data where every byte holds its bank number.
func banked(banks, size int) []uint8 {
	prg := make([]uint8, banks*size)
	for i := range prg {
		prg[i] = uint8(i / size)
	}
	return prg
}

func TestNROM(t *testing.T) {
	t.Run("32KB is an identity mapping", func(t *testing.T) {
		prg := make([]uint8, 0x8000)
		for i := range prg {
			prg[i] = uint8(i * 7)
		}
		m, err := NewMapper(0, prg)
		require.NoError(t, err)

		for a := 0x8000; a <= 0xFFFF; a++ {
			assert.Equal(t, prg[a-0x8000], m.Read(uint16(a)))
		}
	})

	t.Run("16KB is mirrored", func(t *testing.T) {
		prg := make([]uint8, 0x4000)
		prg[0x0123] = 0xAB
		m, err := NewMapper(0, prg)
		require.NoError(t, err)

		assert.Equal(t, uint8(0xAB), m.Read(0x8123))
		assert.Equal(t, uint8(0xAB), m.Read(0xC123))
	})

	t.Run("writes are ignored", func(t *testing.T) {
		m, err := NewMapper(0, banked(2, 0x4000))
		require.NoError(t, err)
		m.Write(0x8000, 1)
		assert.Empty(t, m.Mappings())
		assert.Equal(t, uint8(0), m.Read(0x8000))
	})
}

func TestUxROM(t *testing.T) {
	m, err := NewMapper(2, banked(8, 0x4000))
	require.NoError(t, err)

	t.Run("last bank is fixed at 0xC000", func(t *testing.T) {
		assert.Equal(t, uint8(7), m.Read(0xC000))
		assert.Equal(t, uint8(7), m.Read(0xFFFF))
		assert.Equal(t, uint8(0), m.Read(0x8000))
	})

	tests := []struct {
		name  string
		value uint8
		want  uint8
	}{
		{"bank 3", 3, 3},
		{"bank 5", 5, 5},
		{"wraps modulo bank count", 11, 3},
		{"bank 0", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m.Write(0x8000, tt.value)
			assert.Equal(t, tt.want, m.Read(0x8000))
			assert.Equal(t, tt.want, m.Read(0xBFFF))
			assert.Equal(t, uint8(7), m.Read(0xC000))
		})
	}

	t.Run("mappings do not accumulate", func(t *testing.T) {
		for i := 0; i < 100; i++ {
			m.Write(0x9000, uint8(i))
		}
		assert.Len(t, m.Mappings(), 2)
	})
}

func TestAxROM(t *testing.T) {
	m, err := NewMapper(7, banked(4, 0x8000))
	require.NoError(t, err)

	assert.Equal(t, uint8(0), m.Read(0xFFFF))

	m.Write(0x8000, 2)
	assert.Equal(t, uint8(2), m.Read(0x8000))
	assert.Equal(t, uint8(2), m.Read(0xFFFF))

	// bit 4 is nametable select, not part of the bank
	m.Write(0x8000, 0x11)
	assert.Equal(t, uint8(1), m.Read(0xC000))
}

func TestAxROMSelectsSingleScreen(t *testing.T) {
	m, err := NewMapper(7, banked(4, 0x8000))
	require.NoError(t, err)

	_, changed := m.MirroringChange()
	assert.False(t, changed, "no control write yet")

	m.Write(0x8000, 0x12)
	mirroring, changed := m.MirroringChange()
	assert.True(t, changed)
	assert.Equal(t, rom.SingleScreenHigh, mirroring)

	_, changed = m.MirroringChange()
	assert.False(t, changed, "a change is reported once")

	m.Write(0x8000, 0x02)
	mirroring, changed = m.MirroringChange()
	assert.True(t, changed)
	assert.Equal(t, rom.SingleScreenLow, mirroring)
}

func TestUxROMLeavesMirroringAlone(t *testing.T) {
	m, err := NewMapper(2, banked(4, 0x4000))
	require.NoError(t, err)

	m.Write(0x8000, 0x11)
	_, changed := m.MirroringChange()
	assert.False(t, changed)
}

func TestMostRecentMappingWins(t *testing.T) {
	m, err := NewMapper(0, banked(4, 0x1000))
	require.NoError(t, err)

	m.Map(Mapping{Start: 0x8000, End: 0xFFFF, Offset: 0x1000})
	m.Map(Mapping{Start: 0x8000, End: 0x8FFF, Offset: 0x3000})

	assert.Equal(t, uint8(3), m.Read(0x8000))
	assert.Equal(t, uint8(2), m.Read(0x9000))
	assert.Equal(t, 0x3000, m.Translate(0x8000))
}

func TestUnsupportedMapper(t *testing.T) {
	_, err := NewMapper(4, banked(2, 0x4000))
	require.Error(t, err)

	var unsupported UnsupportedMapperError
	assert.ErrorAs(t, err, &unsupported)
	assert.Equal(t, uint8(4), unsupported.ID)
	assert.Equal(t, "unsupported mapper 4", err.Error())
}

func TestEmptyPRG(t *testing.T) {
	_, err := NewMapper(0, nil)
	assert.Error(t, err)
}
