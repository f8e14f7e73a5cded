package disasm

import (
	"fmt"
	"strings"

	"github.com/valerio/go-nessie/nessie/bit"
	"github.com/valerio/go-nessie/nessie/cpu"
)

// Reader gives side-effect free access to memory. Register windows must not be touched.
type Reader interface {
	Peek(address uint16) uint8
}

// DisassemblyLine represents a single disassembled instruction
type DisassemblyLine struct {
	Address     uint16
	Bytes       []uint8
	Instruction string
	Length      int
}

// DisassembleAt disassembles the instruction at the given program counter
func DisassembleAt(pc uint16, mem Reader) DisassemblyLine {
	opcode := mem.Peek(pc)
	instr := cpu.Lookup(opcode)

	if !instr.Defined() {
		return DisassemblyLine{
			Address:     pc,
			Bytes:       []uint8{opcode},
			Instruction: fmt.Sprintf(".db $%02X", opcode),
			Length:      1,
		}
	}

	length := instr.Size()
	raw := make([]uint8, length)
	for i := range raw {
		raw[i] = mem.Peek(pc + uint16(i))
	}

	return DisassemblyLine{
		Address:     pc,
		Bytes:       raw,
		Instruction: format(pc, instr, raw),
		Length:      length,
	}
}

func format(pc uint16, instr cpu.Instruction, raw []uint8) string {
	var n uint8
	var nn uint16
	if len(raw) > 1 {
		n = raw[1]
	}
	if len(raw) > 2 {
		nn = bit.Combine(raw[2], raw[1])
	}

	switch instr.Mode {
	case cpu.Implied:
		return instr.Name
	case cpu.Accumulator:
		return instr.Name + " A"
	case cpu.Immediate:
		return fmt.Sprintf("%s #$%02X", instr.Name, n)
	case cpu.ZeroPage:
		return fmt.Sprintf("%s $%02X", instr.Name, n)
	case cpu.ZeroPageX:
		return fmt.Sprintf("%s $%02X,X", instr.Name, n)
	case cpu.ZeroPageY:
		return fmt.Sprintf("%s $%02X,Y", instr.Name, n)
	case cpu.Absolute:
		return fmt.Sprintf("%s $%04X", instr.Name, nn)
	case cpu.AbsoluteX:
		return fmt.Sprintf("%s $%04X,X", instr.Name, nn)
	case cpu.AbsoluteY:
		return fmt.Sprintf("%s $%04X,Y", instr.Name, nn)
	case cpu.Indirect:
		return fmt.Sprintf("%s ($%04X)", instr.Name, nn)
	case cpu.IndexedIndirect:
		return fmt.Sprintf("%s ($%02X,X)", instr.Name, n)
	case cpu.IndirectIndexed:
		return fmt.Sprintf("%s ($%02X),Y", instr.Name, n)
	case cpu.Relative:
		target := pc + 2 + uint16(int8(n))
		return fmt.Sprintf("%s $%04X", instr.Name, target)
	default:
		return instr.Name
	}
}

// DisassembleRange disassembles count instructions starting from the given PC
func DisassembleRange(startPC uint16, count int, mem Reader) []DisassemblyLine {
	lines := make([]DisassemblyLine, 0, count)
	pc := startPC

	for i := 0; i < count; i++ {
		line := DisassembleAt(pc, mem)
		lines = append(lines, line)
		pc += uint16(line.Length)
	}

	return lines
}

// FormatTrace renders one trace line: address, raw bytes, mnemonic and registers.
func FormatTrace(state cpu.State, mem Reader) string {
	line := DisassembleAt(state.PC, mem)

	hex := make([]string, len(line.Bytes))
	for i, b := range line.Bytes {
		hex[i] = fmt.Sprintf("%02X", b)
	}

	return fmt.Sprintf("%04X  %-8s  %-14s A:%02X X:%02X Y:%02X P:%02X SP:%02X CYC:%d",
		state.PC, strings.Join(hex, " "), line.Instruction,
		state.A, state.X, state.Y, state.P, state.SP, state.Cycles)
}
