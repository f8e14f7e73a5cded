package cpu

// Instruction describes one opcode.
type Instruction struct {
	Name   string
	Mode   Mode
	Cycles int
	// PagePenalty adds a cycle when the operand address crosses a page.
	PagePenalty bool

	exec func(*CPU, operand)
}

// Defined reports whether the opcode has an implementation.
func (i Instruction) Defined() bool {
	return i.exec != nil
}

// Size is the full encoded length of the instruction in bytes.
func (i Instruction) Size() int {
	return 1 + i.Mode.OperandBytes()
}

// Lookup returns the descriptor for an opcode byte.
func Lookup(opcode uint8) Instruction {
	return opcodes[opcode]
}

var opcodes = [256]Instruction{
	0x69: {"ADC", Immediate, 2, false, adc},
	0x65: {"ADC", ZeroPage, 3, false, adc},
	0x75: {"ADC", ZeroPageX, 4, false, adc},
	0x6D: {"ADC", Absolute, 4, false, adc},
	0x7D: {"ADC", AbsoluteX, 4, true, adc},
	0x79: {"ADC", AbsoluteY, 4, true, adc},
	0x61: {"ADC", IndexedIndirect, 6, false, adc},
	0x71: {"ADC", IndirectIndexed, 5, true, adc},

	0x29: {"AND", Immediate, 2, false, and},
	0x25: {"AND", ZeroPage, 3, false, and},
	0x35: {"AND", ZeroPageX, 4, false, and},
	0x2D: {"AND", Absolute, 4, false, and},
	0x3D: {"AND", AbsoluteX, 4, true, and},
	0x39: {"AND", AbsoluteY, 4, true, and},
	0x21: {"AND", IndexedIndirect, 6, false, and},
	0x31: {"AND", IndirectIndexed, 5, true, and},

	0x0A: {"ASL", Accumulator, 2, false, asl},
	0x06: {"ASL", ZeroPage, 5, false, asl},
	0x16: {"ASL", ZeroPageX, 6, false, asl},
	0x0E: {"ASL", Absolute, 6, false, asl},
	0x1E: {"ASL", AbsoluteX, 7, false, asl},

	0x90: {"BCC", Relative, 2, false, bcc},
	0xB0: {"BCS", Relative, 2, false, bcs},
	0xF0: {"BEQ", Relative, 2, false, beq},
	0x30: {"BMI", Relative, 2, false, bmi},
	0xD0: {"BNE", Relative, 2, false, bne},
	0x10: {"BPL", Relative, 2, false, bpl},
	0x50: {"BVC", Relative, 2, false, bvc},
	0x70: {"BVS", Relative, 2, false, bvs},

	0x24: {"BIT", ZeroPage, 3, false, bitTest},
	0x2C: {"BIT", Absolute, 4, false, bitTest},

	0x00: {"BRK", Implied, 7, false, brk},

	0x18: {"CLC", Implied, 2, false, clc},
	0xD8: {"CLD", Implied, 2, false, cld},
	0x58: {"CLI", Implied, 2, false, cli},
	0xB8: {"CLV", Implied, 2, false, clv},

	0xC9: {"CMP", Immediate, 2, false, cmp},
	0xC5: {"CMP", ZeroPage, 3, false, cmp},
	0xD5: {"CMP", ZeroPageX, 4, false, cmp},
	0xCD: {"CMP", Absolute, 4, false, cmp},
	0xDD: {"CMP", AbsoluteX, 4, true, cmp},
	0xD9: {"CMP", AbsoluteY, 4, true, cmp},
	0xC1: {"CMP", IndexedIndirect, 6, false, cmp},
	0xD1: {"CMP", IndirectIndexed, 5, true, cmp},

	0xE0: {"CPX", Immediate, 2, false, cpx},
	0xE4: {"CPX", ZeroPage, 3, false, cpx},
	0xEC: {"CPX", Absolute, 4, false, cpx},

	0xC0: {"CPY", Immediate, 2, false, cpy},
	0xC4: {"CPY", ZeroPage, 3, false, cpy},
	0xCC: {"CPY", Absolute, 4, false, cpy},

	0xC6: {"DEC", ZeroPage, 5, false, dec},
	0xD6: {"DEC", ZeroPageX, 6, false, dec},
	0xCE: {"DEC", Absolute, 6, false, dec},
	0xDE: {"DEC", AbsoluteX, 7, false, dec},

	0xCA: {"DEX", Implied, 2, false, dex},
	0x88: {"DEY", Implied, 2, false, dey},

	0x49: {"EOR", Immediate, 2, false, eor},
	0x45: {"EOR", ZeroPage, 3, false, eor},
	0x55: {"EOR", ZeroPageX, 4, false, eor},
	0x4D: {"EOR", Absolute, 4, false, eor},
	0x5D: {"EOR", AbsoluteX, 4, true, eor},
	0x59: {"EOR", AbsoluteY, 4, true, eor},
	0x41: {"EOR", IndexedIndirect, 6, false, eor},
	0x51: {"EOR", IndirectIndexed, 5, true, eor},

	0xE6: {"INC", ZeroPage, 5, false, inc},
	0xF6: {"INC", ZeroPageX, 6, false, inc},
	0xEE: {"INC", Absolute, 6, false, inc},
	0xFE: {"INC", AbsoluteX, 7, false, inc},

	0xE8: {"INX", Implied, 2, false, inx},
	0xC8: {"INY", Implied, 2, false, iny},

	0x4C: {"JMP", Absolute, 3, false, jmp},
	0x6C: {"JMP", Indirect, 5, false, jmp},
	0x20: {"JSR", Absolute, 6, false, jsr},

	0xA9: {"LDA", Immediate, 2, false, lda},
	0xA5: {"LDA", ZeroPage, 3, false, lda},
	0xB5: {"LDA", ZeroPageX, 4, false, lda},
	0xAD: {"LDA", Absolute, 4, false, lda},
	0xBD: {"LDA", AbsoluteX, 4, true, lda},
	0xB9: {"LDA", AbsoluteY, 4, true, lda},
	0xA1: {"LDA", IndexedIndirect, 6, false, lda},
	0xB1: {"LDA", IndirectIndexed, 5, true, lda},

	0xA2: {"LDX", Immediate, 2, false, ldx},
	0xA6: {"LDX", ZeroPage, 3, false, ldx},
	0xB6: {"LDX", ZeroPageY, 4, false, ldx},
	0xAE: {"LDX", Absolute, 4, false, ldx},
	0xBE: {"LDX", AbsoluteY, 4, true, ldx},

	0xA0: {"LDY", Immediate, 2, false, ldy},
	0xA4: {"LDY", ZeroPage, 3, false, ldy},
	0xB4: {"LDY", ZeroPageX, 4, false, ldy},
	0xAC: {"LDY", Absolute, 4, false, ldy},
	0xBC: {"LDY", AbsoluteX, 4, true, ldy},

	0x4A: {"LSR", Accumulator, 2, false, lsr},
	0x46: {"LSR", ZeroPage, 5, false, lsr},
	0x56: {"LSR", ZeroPageX, 6, false, lsr},
	0x4E: {"LSR", Absolute, 6, false, lsr},
	0x5E: {"LSR", AbsoluteX, 7, false, lsr},

	0xEA: {"NOP", Implied, 2, false, nop},

	0x09: {"ORA", Immediate, 2, false, ora},
	0x05: {"ORA", ZeroPage, 3, false, ora},
	0x15: {"ORA", ZeroPageX, 4, false, ora},
	0x0D: {"ORA", Absolute, 4, false, ora},
	0x1D: {"ORA", AbsoluteX, 4, true, ora},
	0x19: {"ORA", AbsoluteY, 4, true, ora},
	0x01: {"ORA", IndexedIndirect, 6, false, ora},
	0x11: {"ORA", IndirectIndexed, 5, true, ora},

	0x48: {"PHA", Implied, 3, false, pha},
	0x08: {"PHP", Implied, 3, false, php},
	0x68: {"PLA", Implied, 4, false, pla},
	0x28: {"PLP", Implied, 4, false, plp},

	0x2A: {"ROL", Accumulator, 2, false, rol},
	0x26: {"ROL", ZeroPage, 5, false, rol},
	0x36: {"ROL", ZeroPageX, 6, false, rol},
	0x2E: {"ROL", Absolute, 6, false, rol},
	0x3E: {"ROL", AbsoluteX, 7, false, rol},

	0x6A: {"ROR", Accumulator, 2, false, ror},
	0x66: {"ROR", ZeroPage, 5, false, ror},
	0x76: {"ROR", ZeroPageX, 6, false, ror},
	0x6E: {"ROR", Absolute, 6, false, ror},
	0x7E: {"ROR", AbsoluteX, 7, false, ror},

	0x40: {"RTI", Implied, 6, false, rti},
	0x60: {"RTS", Implied, 6, false, rts},

	0xE9: {"SBC", Immediate, 2, false, sbc},
	0xE5: {"SBC", ZeroPage, 3, false, sbc},
	0xF5: {"SBC", ZeroPageX, 4, false, sbc},
	0xED: {"SBC", Absolute, 4, false, sbc},
	0xFD: {"SBC", AbsoluteX, 4, true, sbc},
	0xF9: {"SBC", AbsoluteY, 4, true, sbc},
	0xE1: {"SBC", IndexedIndirect, 6, false, sbc},
	0xF1: {"SBC", IndirectIndexed, 5, true, sbc},

	0x38: {"SEC", Implied, 2, false, sec},
	0xF8: {"SED", Implied, 2, false, sed},
	0x78: {"SEI", Implied, 2, false, sei},

	0x85: {"STA", ZeroPage, 3, false, sta},
	0x95: {"STA", ZeroPageX, 4, false, sta},
	0x8D: {"STA", Absolute, 4, false, sta},
	0x9D: {"STA", AbsoluteX, 5, false, sta},
	0x99: {"STA", AbsoluteY, 5, false, sta},
	0x81: {"STA", IndexedIndirect, 6, false, sta},
	0x91: {"STA", IndirectIndexed, 6, false, sta},

	0x86: {"STX", ZeroPage, 3, false, stx},
	0x96: {"STX", ZeroPageY, 4, false, stx},
	0x8E: {"STX", Absolute, 4, false, stx},

	0x84: {"STY", ZeroPage, 3, false, sty},
	0x94: {"STY", ZeroPageX, 4, false, sty},
	0x8C: {"STY", Absolute, 4, false, sty},

	0xAA: {"TAX", Implied, 2, false, tax},
	0xA8: {"TAY", Implied, 2, false, tay},
	0xBA: {"TSX", Implied, 2, false, tsx},
	0x8A: {"TXA", Implied, 2, false, txa},
	0x9A: {"TXS", Implied, 2, false, txs},
	0x98: {"TYA", Implied, 2, false, tya},
}
