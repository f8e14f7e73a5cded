package cpu

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/valerio/go-nessie/nessie/addr"
	"github.com/valerio/go-nessie/nessie/bit"
	"github.com/valerio/go-nessie/nessie/channel"
	"github.com/valerio/go-nessie/nessie/timing"
)

// Bus is the CPU's view of the address space.
type Bus interface {
	Read(address uint16) byte
	Write(address uint16, value byte)
}

// Staller is implemented by buses that can halt the CPU, e.g. during OAM DMA.
// Stall returns the owed cycles and clears them.
type Staller interface {
	Stall() int
}

// SignalSource delivers one-shot timing signals from the PPU.
type SignalSource interface {
	Poll(sig channel.Signal) bool
}

// interruptCycles is the cost of entering an interrupt handler.
const interruptCycles = 7

// CPU is the 6502 core: registers, flags and the stack pointer, plus the bookkeeping
// for cycle adjustments within the current instruction.
type CPU struct {
	a  uint8
	x  uint8
	y  uint8
	sp uint8
	pc uint16
	p  Status

	// per instruction, cleared at the start of every step
	pageCrossed bool
	branchTaken bool

	cycles uint64
	frames uint64

	bus     Bus
	signals SignalSource
	tracer  func(State)
}

// New returns a CPU in its power-on state: A, X, Y cleared, SP at 0xFD and only the break flag set.
// PC stays at 0 until Reset loads the reset vector.
func New(bus Bus) *CPU {
	return &CPU{
		sp:  0xFD,
		p:   Status{Break: true},
		bus: bus,
	}
}

// SetSignals attaches the source of vblank and frame signals polled at instruction boundaries.
func (c *CPU) SetSignals(s SignalSource) {
	c.signals = s
}

// SetTracer installs a hook called with the register state before every instruction.
func (c *CPU) SetTracer(fn func(State)) {
	c.tracer = fn
}

// Reset loads PC from the reset vector. It always fires.
func (c *CPU) Reset() {
	c.pc = c.readWord(addr.ResetVector)
	slog.Debug("CPU reset", "pc", fmt.Sprintf("0x%04X", c.pc))
}

// NMI pushes PC and flags, masks interrupts and jumps through the NMI vector.
func (c *CPU) NMI() {
	c.pushWord(c.pc)
	c.push(c.p.Byte())
	c.p.InterruptDisable = true
	c.pc = c.readWord(addr.NMIVector)
	c.cycles += interruptCycles
}

// IRQ requests a maskable interrupt. It is ignored while the break flag is set,
// otherwise it sets the break flag and runs the shared interrupt routine.
// Reports whether the handler was entered.
func (c *CPU) IRQ() bool {
	if c.p.Break {
		return false
	}
	c.p.Break = true
	return c.interrupt(addr.IRQVector)
}

// interrupt is the shared routine: push PC and flags, set interrupt disable, and
// jump through vector only if interrupts were not already disabled.
func (c *CPU) interrupt(vector uint16) bool {
	masked := c.p.InterruptDisable

	c.pushWord(c.pc)
	c.push(c.p.Byte())
	c.p.InterruptDisable = true

	if masked {
		return false
	}

	c.pc = c.readWord(vector)
	c.cycles += interruptCycles
	return true
}

// Step executes a single instruction and returns the cycles it took, including
// page cross and branch adjustments and any DMA stall it triggered.
func (c *CPU) Step() (int, error) {
	c.pageCrossed = false
	c.branchTaken = false

	before := c.cycles
	c.pollSignals()
	cycles := int(c.cycles - before)

	if c.tracer != nil {
		c.tracer(c.State())
	}

	pc := c.pc
	opcode := c.readImmediate()
	instr := &opcodes[opcode]
	if instr.exec == nil {
		c.pc = pc
		return cycles, &UnknownOpcodeError{Opcode: opcode, PC: pc}
	}

	op := c.resolve(instr.Mode)
	instr.exec(c, op)

	n := instr.Cycles
	if instr.PagePenalty && c.pageCrossed {
		n++
	}
	if c.branchTaken {
		n++
		if c.pageCrossed {
			n++
		}
	}
	if s, ok := c.bus.(Staller); ok {
		n += s.Stall()
	}

	c.cycles += uint64(n)
	return cycles + n, nil
}

// pollSignals consumes pending PPU signals. Vblank start raises an NMI.
func (c *CPU) pollSignals() {
	if c.signals == nil {
		return
	}
	if c.signals.Poll(channel.VBlankStart) {
		c.NMI()
	}
	if c.signals.Poll(channel.FrameEnd) {
		c.frames++
	}
	c.signals.Poll(channel.VBlankEnd)
}

// Run is the CPU execution context. It steps until ctx is cancelled or an
// instruction fails, pacing every instruction by its cycle count.
func (c *CPU) Run(ctx context.Context, pacer timing.Pacer) error {
	pacer.Reset()
	for {
		if ctx.Err() != nil {
			slog.Debug("CPU stopped", "cycles", c.cycles, "frames", c.frames)
			return nil
		}

		cycles, err := c.Step()
		if err != nil {
			slog.Error("CPU halted", "error", err, "state", c.State().String())
			return err
		}
		pacer.Wait(cycles)
	}
}

func (c *CPU) readWord(address uint16) uint16 {
	low := c.bus.Read(address)
	high := c.bus.Read(address + 1)
	return bit.Combine(high, low)
}

// push writes to the stack page. SP stops at 0x00 instead of wrapping.
func (c *CPU) push(v uint8) {
	c.bus.Write(addr.StackBase|uint16(c.sp), v)
	if c.sp > 0x00 {
		c.sp--
	}
}

// pop reads from the stack page. SP stops at 0xFF instead of wrapping.
func (c *CPU) pop() uint8 {
	if c.sp < 0xFF {
		c.sp++
	}
	return c.bus.Read(addr.StackBase | uint16(c.sp))
}

func (c *CPU) pushWord(v uint16) {
	c.push(bit.High(v))
	c.push(bit.Low(v))
}

func (c *CPU) popWord() uint16 {
	low := c.pop()
	high := c.pop()
	return bit.Combine(high, low)
}

// Cycles is the total number of cycles executed so far.
func (c *CPU) Cycles() uint64 {
	return c.cycles
}

// Frames is the number of frame-end signals observed.
func (c *CPU) Frames() uint64 {
	return c.frames
}

// PC returns the program counter.
func (c *CPU) PC() uint16 {
	return c.pc
}

// SetPC moves the program counter, used to start fixture programs without a reset vector.
func (c *CPU) SetPC(pc uint16) {
	c.pc = pc
}
