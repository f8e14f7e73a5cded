package cpu

import "github.com/valerio/go-nessie/nessie/bit"

// Mode is an addressing mode, the rule locating an instruction's operand.
type Mode uint8

const (
	Implied Mode = iota
	Accumulator
	Immediate
	ZeroPage
	ZeroPageX
	ZeroPageY
	Absolute
	AbsoluteX
	AbsoluteY
	Indirect
	IndexedIndirect
	IndirectIndexed
	Relative
)

// OperandBytes is how many bytes after the opcode the mode consumes.
func (m Mode) OperandBytes() int {
	switch m {
	case Implied, Accumulator:
		return 0
	case Absolute, AbsoluteX, AbsoluteY, Indirect:
		return 2
	default:
		return 1
	}
}

func (m Mode) String() string {
	switch m {
	case Implied:
		return "implied"
	case Accumulator:
		return "accumulator"
	case Immediate:
		return "immediate"
	case ZeroPage:
		return "zeropage"
	case ZeroPageX:
		return "zeropage,x"
	case ZeroPageY:
		return "zeropage,y"
	case Absolute:
		return "absolute"
	case AbsoluteX:
		return "absolute,x"
	case AbsoluteY:
		return "absolute,y"
	case Indirect:
		return "indirect"
	case IndexedIndirect:
		return "(indirect,x)"
	case IndirectIndexed:
		return "(indirect),y"
	case Relative:
		return "relative"
	default:
		return "unknown"
	}
}

// operand is the resolved target of an instruction.
type operand struct {
	mode    Mode
	address uint16
}

// readImmediate returns the byte at PC and advances it.
func (c *CPU) readImmediate() uint8 {
	v := c.bus.Read(c.pc)
	c.pc++
	return v
}

// readImmediateWord returns the little endian word at PC and advances it twice.
func (c *CPU) readImmediateWord() uint16 {
	low := c.readImmediate()
	high := c.readImmediate()
	return bit.Combine(high, low)
}

// readZeroPageWord reads a pointer from the zero page, the high byte wraps within the page.
func (c *CPU) readZeroPageWord(ptr uint8) uint16 {
	low := c.bus.Read(uint16(ptr))
	high := c.bus.Read(uint16(ptr + 1))
	return bit.Combine(high, low)
}

// resolve consumes the operand bytes of mode and returns the effective address.
// Indexed modes that cross a page set the pageCrossed flag.
func (c *CPU) resolve(mode Mode) operand {
	op := operand{mode: mode}

	switch mode {
	case Implied, Accumulator:
	case Immediate:
		op.address = c.pc
		c.pc++
	case ZeroPage:
		op.address = uint16(c.readImmediate())
	case ZeroPageX:
		op.address = uint16(c.readImmediate() + c.x)
	case ZeroPageY:
		op.address = uint16(c.readImmediate() + c.y)
	case Absolute:
		op.address = c.readImmediateWord()
	case AbsoluteX:
		base := c.readImmediateWord()
		op.address = base + uint16(c.x)
		c.pageCrossed = bit.PageCrossed(base, op.address)
	case AbsoluteY:
		base := c.readImmediateWord()
		op.address = base + uint16(c.y)
		c.pageCrossed = bit.PageCrossed(base, op.address)
	case Indirect:
		// the pointer's high byte is fetched without carrying into the next page
		ptr := c.readImmediateWord()
		low := c.bus.Read(ptr)
		high := c.bus.Read(ptr&0xFF00 | uint16(bit.Low(ptr)+1))
		op.address = bit.Combine(high, low)
	case IndexedIndirect:
		op.address = c.readZeroPageWord(c.readImmediate() + c.x)
	case IndirectIndexed:
		base := c.readZeroPageWord(c.readImmediate())
		op.address = base + uint16(c.y)
		c.pageCrossed = bit.PageCrossed(base, op.address)
	case Relative:
		offset := int8(c.readImmediate())
		op.address = c.pc + uint16(offset)
	}

	return op
}

// load returns the value an operand refers to.
func (c *CPU) load(op operand) uint8 {
	if op.mode == Accumulator {
		return c.a
	}
	return c.bus.Read(op.address)
}

// store writes the value an operand refers to.
func (c *CPU) store(op operand, v uint8) {
	if op.mode == Accumulator {
		c.a = v
		return
	}
	c.bus.Write(op.address, v)
}
