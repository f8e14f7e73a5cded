package ppu

import (
	"context"
	"log/slog"

	"github.com/valerio/go-nessie/nessie/channel"
	"github.com/valerio/go-nessie/nessie/input"
	"github.com/valerio/go-nessie/nessie/rom"
	"github.com/valerio/go-nessie/nessie/timing"
	"github.com/valerio/go-nessie/nessie/video"
)

const (
	vramSize    = 0x1000
	paletteSize = 32

	addressMask    = 0x3FFF
	paletteStart   = 0x3F00
	nametableStart = 0x2000

	frameQueueDepth = 2
	inputQueueDepth = 64
)

// PPU owns all picture state. It is only touched from its own context: the CPU
// reaches it through the channel responder, backends through the frame and input queues.
type PPU struct {
	ctrl   ControlFlags
	mask   MaskFlags
	status StatusFlags

	oamAddr uint8
	oam     [OAMSize]uint8

	// latch is the shared first/second write toggle of PPUSCROLL and PPUADDR
	latch      bool
	address    uint16
	scrollX    uint8
	scrollY    uint8
	readBuffer uint8

	chr       []uint8
	chrRAM    bool
	mirroring rom.Mirroring
	vram      [vramSize]uint8
	palette   [paletteSize]uint8

	clock    *Clock
	detector *SpriteZeroDetector
	hitRow   int

	screen *video.FrameBuffer
	frames chan *video.FrameBuffer
	count  uint64

	controller *input.Controller
	input      chan input.Event

	responder *channel.Responder[Register]
}

// New creates a PPU serving register accesses from responder. img supplies the
// pattern tables and nametable mirroring, a nil image gets 8KB of CHR RAM.
func New(responder *channel.Responder[Register], img *rom.Image, dotsPerScanline int) *PPU {
	p := &PPU{
		clock:      NewClock(dotsPerScanline),
		hitRow:     -1,
		screen:     video.NewScreenBuffer(),
		frames:     make(chan *video.FrameBuffer, frameQueueDepth),
		controller: input.NewController(),
		input:      make(chan input.Event, inputQueueDepth),
		responder:  responder,
	}

	if img == nil {
		p.chr = make([]uint8, rom.CHRBankSize)
		p.chrRAM = true
	} else {
		p.chr = img.CHR
		p.chrRAM = img.CHRRAM
		p.mirroring = img.Mirroring
	}

	return p
}

// Frames delivers completed frames. Frames are dropped when nobody is reading.
func (p *PPU) Frames() <-chan *video.FrameBuffer {
	return p.frames
}

// Input accepts button events for the controller port.
func (p *PPU) Input() chan<- input.Event {
	return p.input
}

// Run is the PPU execution context. Every tick is paced as one dot.
func (p *PPU) Run(ctx context.Context, pacer timing.Pacer) error {
	defer p.responder.Close()

	pacer.Reset()
	for ctx.Err() == nil {
		p.Tick()
		pacer.Wait(1)
	}

	slog.Debug("PPU stopped", "frames", p.count)
	return nil
}

// Tick applies pending input and register traffic, then advances the scanline clock one dot.
func (p *PPU) Tick() {
	p.drainInput()
	p.responder.Service(p.writeRegister, p.readRegister)

	if b, ok := p.clock.Tick(); ok {
		p.onBoundary(b)
	}
}

func (p *PPU) drainInput() {
	for {
		select {
		case e := <-p.input:
			p.controller.Apply(e)
		default:
			return
		}
	}
}

func (p *PPU) onBoundary(b Boundary) {
	if p.hitRow >= 0 && b.Scanline > p.hitRow && b.Scanline <= VisibleScanlines {
		p.status.SpriteZeroHit = true
		p.hitRow = -1
	}

	switch b.Event {
	case FrameStart:
		p.responder.Raise(channel.FrameEnd)
		p.startFrame()
	case PostRender:
		p.render()
		p.publish()
	case VBlankStart:
		p.status.VBlank = true
		if p.ctrl.GenerateNMI {
			p.responder.Raise(channel.VBlankStart)
		}
	case VBlankEnd:
		p.status.VBlank = false
		p.status.SpriteZeroHit = false
		p.responder.Raise(channel.VBlankEnd)
	}
}

// startFrame builds this frame's sprite zero detector and resolves the hit row.
// The detector is discarded as soon as the row is known.
func (p *PPU) startFrame() {
	p.hitRow = -1
	if !p.mask.ShowBackground || !p.mask.ShowSprites {
		return
	}

	p.detector = p.buildSpriteZeroDetector()
	if row, ok := p.detector.FirstHit(); ok {
		p.hitRow = row
	}
	p.detector = nil
}

func (p *PPU) publish() {
	p.count++
	select {
	case p.frames <- p.screen.Clone():
	default:
	}
}

// FrameCount is the number of frames rendered so far.
func (p *PPU) FrameCount() uint64 {
	return p.count
}

// Screen returns the frame being built. Only safe from the PPU context.
func (p *PPU) Screen() *video.FrameBuffer {
	return p.screen
}

func (p *PPU) writeRegister(cmd channel.Command[Register]) {
	v := cmd.Value
	if cmd.Target <= Data {
		p.status.OpenBus = v & 0x1F
	}

	switch cmd.Target {
	case Control:
		p.ctrl.SetByte(v)
	case Mask:
		p.mask.SetByte(v)
	case OAMAddress:
		p.oamAddr = v
	case OAMData:
		p.oam[p.oamAddr] = v
		p.oamAddr++
	case Scroll:
		if !p.latch {
			p.scrollX = v
		} else {
			p.scrollY = v
		}
		p.latch = !p.latch
	case Address:
		if !p.latch {
			p.address = uint16(v)<<8 | p.address&0x00FF
		} else {
			p.address = p.address&0xFF00 | uint16(v)
		}
		p.address &= addressMask
		p.latch = !p.latch
	case Data:
		p.writeVRAM(p.address, v)
		p.address = (p.address + p.ctrl.Increment()) & addressMask
	case OAMDMA:
		for i, b := range cmd.Payload {
			p.oam[p.oamAddr+uint8(i)] = b
		}
	case JoystickStrobe:
		p.controller.Write(v)
	case NametableMirroring:
		p.mirroring = rom.Mirroring(v)
		slog.Debug("Nametable mirroring switched", "mirroring", p.mirroring)
	default:
		slog.Debug("Write to read-only PPU register", "register", cmd.Target, "value", v)
	}
}

func (p *PPU) readRegister(r Register) uint8 {
	switch r {
	case Status:
		v := p.status.Byte()
		p.status.VBlank = false
		p.latch = false
		return v
	case OAMData:
		return p.oam[p.oamAddr]
	case Data:
		return p.readData()
	case JoystickStrobe:
		return p.controller.Read()
	default:
		return 0
	}
}

// readData returns the buffered value for pattern and nametable reads. Palette
// reads are immediate and refill the buffer from the nametable underneath.
func (p *PPU) readData() uint8 {
	address := p.address
	p.address = (p.address + p.ctrl.Increment()) & addressMask

	if address >= paletteStart {
		p.readBuffer = p.readVRAM(address - 0x1000)
		return p.readVRAM(address)
	}

	v := p.readBuffer
	p.readBuffer = p.readVRAM(address)
	return v
}

func (p *PPU) readVRAM(address uint16) uint8 {
	address &= addressMask
	switch {
	case address < nametableStart:
		return p.chr[int(address)%len(p.chr)]
	case address < paletteStart:
		return p.vram[p.nametableOffset(address)]
	default:
		return p.palette[paletteIndex(address)]
	}
}

func (p *PPU) writeVRAM(address uint16, v uint8) {
	address &= addressMask
	switch {
	case address < nametableStart:
		if p.chrRAM {
			p.chr[int(address)%len(p.chr)] = v
		}
	case address < paletteStart:
		p.vram[p.nametableOffset(address)] = v
	default:
		p.palette[paletteIndex(address)] = v
	}
}

// nametableOffset folds the four logical nametables onto physical VRAM.
func (p *PPU) nametableOffset(address uint16) uint16 {
	offset := (address - nametableStart) % 0x1000
	table := offset / 0x400
	inner := offset % 0x400

	switch p.mirroring {
	case rom.Horizontal:
		table /= 2
	case rom.Vertical:
		table %= 2
	case rom.SingleScreenLow:
		table = 0
	case rom.SingleScreenHigh:
		table = 1
	}
	return table*0x400 + inner
}

// paletteIndex folds 0x3F10/14/18/1C onto the background entries.
func paletteIndex(address uint16) uint16 {
	i := address & 0x1F
	if i >= 0x10 && i%4 == 0 {
		i -= 0x10
	}
	return i
}
