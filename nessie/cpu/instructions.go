package cpu

import (
	"github.com/valerio/go-nessie/nessie/addr"
	"github.com/valerio/go-nessie/nessie/bit"
)

// setZN updates the zero and negative flags from a result.
func (c *CPU) setZN(v uint8) {
	c.p.Zero = v == 0
	c.p.Negative = bit.IsSet(7, v)
}

// addWithCarry is the shared core of ADC and SBC. Decimal mode is not wired on this CPU.
func (c *CPU) addWithCarry(v uint8) {
	var carry uint8
	if c.p.Carry {
		carry = 1
	}
	result, overflow := bit.CheckedAdd(c.a, v, carry)
	c.p.Carry = overflow
	c.p.Overflow = (c.a^result)&(v^result)&0x80 != 0
	c.a = result
	c.setZN(c.a)
}

func (c *CPU) compare(register, v uint8) {
	c.p.Carry = register >= v
	c.setZN(register - v)
}

func (c *CPU) branch(cond bool, op operand) {
	if !cond {
		return
	}
	c.branchTaken = true
	c.pageCrossed = bit.PageCrossed(c.pc, op.address)
	c.pc = op.address
}

// load/store

func lda(c *CPU, op operand) {
	c.a = c.load(op)
	c.setZN(c.a)
}

func ldx(c *CPU, op operand) {
	c.x = c.load(op)
	c.setZN(c.x)
}

func ldy(c *CPU, op operand) {
	c.y = c.load(op)
	c.setZN(c.y)
}

func sta(c *CPU, op operand) { c.store(op, c.a) }
func stx(c *CPU, op operand) { c.store(op, c.x) }
func sty(c *CPU, op operand) { c.store(op, c.y) }

// transfers

func tax(c *CPU, _ operand) {
	c.x = c.a
	c.setZN(c.x)
}

func tay(c *CPU, _ operand) {
	c.y = c.a
	c.setZN(c.y)
}

func tsx(c *CPU, _ operand) {
	c.x = c.sp
	c.setZN(c.x)
}

func txa(c *CPU, _ operand) {
	c.a = c.x
	c.setZN(c.a)
}

// TXS is the only transfer that leaves the flags alone.
func txs(c *CPU, _ operand) {
	c.sp = c.x
}

func tya(c *CPU, _ operand) {
	c.a = c.y
	c.setZN(c.a)
}

// stack

func pha(c *CPU, _ operand) { c.push(c.a) }

// PHP always pushes with the break and reserved bits set.
func php(c *CPU, _ operand) { c.push(c.p.Byte() | 0x30) }

func pla(c *CPU, _ operand) {
	c.a = c.pop()
	c.setZN(c.a)
}

func plp(c *CPU, _ operand) { c.p.SetByte(c.pop()) }

// arithmetic and logic

func adc(c *CPU, op operand) { c.addWithCarry(c.load(op)) }
func sbc(c *CPU, op operand) { c.addWithCarry(^c.load(op)) }

func and(c *CPU, op operand) {
	c.a &= c.load(op)
	c.setZN(c.a)
}

func ora(c *CPU, op operand) {
	c.a |= c.load(op)
	c.setZN(c.a)
}

func eor(c *CPU, op operand) {
	c.a ^= c.load(op)
	c.setZN(c.a)
}

func bitTest(c *CPU, op operand) {
	v := c.load(op)
	c.p.Zero = c.a&v == 0
	c.p.Overflow = bit.IsSet(6, v)
	c.p.Negative = bit.IsSet(7, v)
}

func cmp(c *CPU, op operand) { c.compare(c.a, c.load(op)) }
func cpx(c *CPU, op operand) { c.compare(c.x, c.load(op)) }
func cpy(c *CPU, op operand) { c.compare(c.y, c.load(op)) }

// increments and decrements

func inc(c *CPU, op operand) {
	v := c.load(op) + 1
	c.store(op, v)
	c.setZN(v)
}

func dec(c *CPU, op operand) {
	v := c.load(op) - 1
	c.store(op, v)
	c.setZN(v)
}

func inx(c *CPU, _ operand) {
	c.x++
	c.setZN(c.x)
}

func iny(c *CPU, _ operand) {
	c.y++
	c.setZN(c.y)
}

func dex(c *CPU, _ operand) {
	c.x--
	c.setZN(c.x)
}

func dey(c *CPU, _ operand) {
	c.y--
	c.setZN(c.y)
}

// shifts and rotates

func asl(c *CPU, op operand) {
	v := c.load(op)
	c.p.Carry = bit.IsSet(7, v)
	v <<= 1
	c.store(op, v)
	c.setZN(v)
}

func lsr(c *CPU, op operand) {
	v := c.load(op)
	c.p.Carry = bit.IsSet(0, v)
	v >>= 1
	c.store(op, v)
	c.setZN(v)
}

func rol(c *CPU, op operand) {
	v := c.load(op)
	carry := c.p.Carry
	c.p.Carry = bit.IsSet(7, v)
	v = bit.SetTo(0, v<<1, carry)
	c.store(op, v)
	c.setZN(v)
}

func ror(c *CPU, op operand) {
	v := c.load(op)
	carry := c.p.Carry
	c.p.Carry = bit.IsSet(0, v)
	v = bit.SetTo(7, v>>1, carry)
	c.store(op, v)
	c.setZN(v)
}

// jumps and calls

func jmp(c *CPU, op operand) { c.pc = op.address }

// JSR pushes the address of its own last byte, RTS adds one back.
func jsr(c *CPU, op operand) {
	c.pushWord(c.pc - 1)
	c.pc = op.address
}

func rts(c *CPU, _ operand) { c.pc = c.popWord() + 1 }

func rti(c *CPU, _ operand) {
	c.p.SetByte(c.pop())
	c.pc = c.popWord()
}

// BRK skips a padding byte and enters the IRQ handler regardless of the interrupt mask.
func brk(c *CPU, _ operand) {
	c.pc++
	c.pushWord(c.pc)
	c.push(c.p.Byte() | 0x30)
	c.p.InterruptDisable = true
	c.pc = c.readWord(addr.IRQVector)
}

// branches

func bcc(c *CPU, op operand) { c.branch(!c.p.Carry, op) }
func bcs(c *CPU, op operand) { c.branch(c.p.Carry, op) }
func beq(c *CPU, op operand) { c.branch(c.p.Zero, op) }
func bne(c *CPU, op operand) { c.branch(!c.p.Zero, op) }
func bmi(c *CPU, op operand) { c.branch(c.p.Negative, op) }
func bpl(c *CPU, op operand) { c.branch(!c.p.Negative, op) }
func bvc(c *CPU, op operand) { c.branch(!c.p.Overflow, op) }
func bvs(c *CPU, op operand) { c.branch(c.p.Overflow, op) }

// flags

func clc(c *CPU, _ operand) { c.p.Carry = false }
func cld(c *CPU, _ operand) { c.p.Decimal = false }
func cli(c *CPU, _ operand) { c.p.InterruptDisable = false }
func clv(c *CPU, _ operand) { c.p.Overflow = false }
func sec(c *CPU, _ operand) { c.p.Carry = true }
func sed(c *CPU, _ operand) { c.p.Decimal = true }
func sei(c *CPU, _ operand) { c.p.InterruptDisable = true }

func nop(_ *CPU, _ operand) {}
