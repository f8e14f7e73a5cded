package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valerio/go-nessie/nessie/apu"
	"github.com/valerio/go-nessie/nessie/channel"
	"github.com/valerio/go-nessie/nessie/ppu"
	"github.com/valerio/go-nessie/nessie/rom"
)

func newTestBus(t *testing.T) (*Bus, *channel.Pair[ppu.Register], *channel.Pair[apu.Register]) {
	t.Helper()
	prg := make([]uint8, 0x8000)
	prg[0] = 0x42
	prg[0x7FFC] = 0x00
	prg[0x7FFD] = 0x80

	ppuCh := channel.NewPair[ppu.Register](channel.DefaultDepth)
	apuCh := channel.NewPair[apu.Register](channel.DefaultDepth)
	return NewBus(NewCartridgeWithPRG(prg), ppuCh.Requester(), apuCh.Requester()), ppuCh, apuCh
}

func TestBusRAMMirroring(t *testing.T) {
	b, _, _ := newTestBus(t)

	b.Write(0x0001, 0x11)
	assert.Equal(t, uint8(0x11), b.Read(0x0801))
	assert.Equal(t, uint8(0x11), b.Read(0x1001))
	assert.Equal(t, uint8(0x11), b.Read(0x1801))

	b.Write(0x1FFF, 0x22)
	assert.Equal(t, uint8(0x22), b.Read(0x07FF))
}

func TestBusCartridge(t *testing.T) {
	b, _, _ := newTestBus(t)

	assert.Equal(t, uint8(0x42), b.Read(0x8000))
	assert.Equal(t, uint8(0x80), b.Read(0xFFFD))

	b.Write(0x6000, 0x99)
	assert.Equal(t, uint8(0x99), b.Read(0x6000))
	assert.Equal(t, uint8(0x99), b.Peek(0x6000))

	assert.Equal(t, uint8(0), b.Read(0x5000))
}

func TestBusRoutesPPUWrites(t *testing.T) {
	b, ppuCh, apuCh := newTestBus(t)

	b.Write(0x2000, 0x80)
	b.Write(0x3FF9, 0x1E) // mirror of PPUMASK
	b.Write(0x4016, 0x01)

	resp := ppuCh.Responder()
	want := []channel.Command[ppu.Register]{
		{Target: ppu.Control, Value: 0x80},
		{Target: ppu.Mask, Value: 0x1E},
		{Target: ppu.JoystickStrobe, Value: 0x01},
	}
	for _, w := range want {
		got, ok := resp.NextWrite()
		require.True(t, ok)
		assert.Equal(t, w.Target, got.Target)
		assert.Equal(t, w.Value, got.Value)
	}

	_, ok := apuCh.Responder().NextWrite()
	assert.False(t, ok, "APU must not see PPU writes")
}

func TestBusForwardsBoardMirroring(t *testing.T) {
	ppuCh := channel.NewPair[ppu.Register](channel.DefaultDepth)
	prg := make([]uint8, 0x10000)
	prg[0x8000] = 0xB1
	cart, err := NewCartridge(&rom.Image{PRG: prg, Mapper: 7})
	require.NoError(t, err)
	b := NewBus(cart, ppuCh.Requester(), nil)

	b.Write(0x8000, 0x13)
	b.Write(0x6000, 0x01) // PRG RAM, no board control

	resp := ppuCh.Responder()
	got, ok := resp.NextWrite()
	require.True(t, ok)
	assert.Equal(t, ppu.NametableMirroring, got.Target)
	assert.Equal(t, uint8(rom.SingleScreenHigh), got.Value)

	_, ok = resp.NextWrite()
	assert.False(t, ok, "only control writes switch mirroring")
	assert.Equal(t, uint8(0xB1), b.Read(0x8000), "bank 3 wraps to bank 1")
}

func TestBusRoutesAPUWrites(t *testing.T) {
	b, ppuCh, apuCh := newTestBus(t)

	b.Write(0x4000, 0x3F)
	b.Write(0x4015, 0x0F)
	b.Write(0x4017, 0x40)

	resp := apuCh.Responder()
	for _, target := range []apu.Register{apu.Pulse1Envelope, apu.ChannelStatus, apu.FrameCounter} {
		got, ok := resp.NextWrite()
		require.True(t, ok)
		assert.Equal(t, target, got.Target)
	}

	_, ok := ppuCh.Responder().NextWrite()
	assert.False(t, ok)
}

func TestBusOAMDMA(t *testing.T) {
	b, ppuCh, _ := newTestBus(t)

	for i := 0; i < 256; i++ {
		b.Write(0x0200+uint16(i), uint8(i))
	}
	b.Write(0x4014, 0x02)

	cmd, ok := ppuCh.Responder().NextWrite()
	require.True(t, ok)
	assert.Equal(t, ppu.OAMDMA, cmd.Target)
	require.Len(t, cmd.Payload, 256)
	assert.Equal(t, uint8(0xFF), cmd.Payload[255])

	assert.Equal(t, DMAStallCycles, b.Stall())
	assert.Equal(t, 0, b.Stall())
}

func TestBusPPURead(t *testing.T) {
	b, ppuCh, _ := newTestBus(t)
	resp := ppuCh.Responder()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			target, ok := resp.NextRead()
			if ok {
				assert.Equal(t, ppu.Status, target)
				resp.Reply(0x80)
				return
			}
		}
	}()

	assert.Equal(t, uint8(0x80), b.Read(0x2002))
	<-done
}

func TestBusWithoutPeers(t *testing.T) {
	b := NewBus(NewCartridgeWithPRG(make([]uint8, 0x4000)), nil, nil)

	assert.Equal(t, uint8(0), b.Read(0x2002))
	assert.Equal(t, uint8(0), b.Read(0x4015))
	b.Write(0x2000, 0x80)
	b.Write(0x4014, 0x00)
	assert.Equal(t, DMAStallCycles, b.Stall())
}

func TestNewCartridge(t *testing.T) {
	img, err := rom.Parse(rom.Build(make([]uint8, 0x8000), nil, 2, rom.Vertical))
	require.NoError(t, err)

	cart, err := NewCartridge(img)
	require.NoError(t, err)
	assert.Equal(t, uint8(2), cart.Mapper().ID())

	img.Mapper = 1
	_, err = NewCartridge(img)
	assert.ErrorAs(t, err, &UnsupportedMapperError{})
}
