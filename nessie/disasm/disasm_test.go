package disasm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/valerio/go-nessie/nessie/cpu"
)

type flatMemory map[uint16]uint8

func (m flatMemory) Peek(address uint16) uint8 { return m[address] }

func load(at uint16, program ...uint8) flatMemory {
	m := flatMemory{}
	for i, b := range program {
		m[at+uint16(i)] = b
	}
	return m
}

func TestDisassembleAt(t *testing.T) {
	tests := []struct {
		name    string
		program []uint8
		want    string
		length  int
	}{
		{"implied", []uint8{0xEA}, "NOP", 1},
		{"accumulator", []uint8{0x0A}, "ASL A", 1},
		{"immediate", []uint8{0xA9, 0x42}, "LDA #$42", 2},
		{"zero page", []uint8{0x85, 0x10}, "STA $10", 2},
		{"zero page x", []uint8{0xB5, 0x10}, "LDA $10,X", 2},
		{"zero page y", []uint8{0xB6, 0x10}, "LDX $10,Y", 2},
		{"absolute", []uint8{0x4C, 0x34, 0x12}, "JMP $1234", 3},
		{"absolute x", []uint8{0xBD, 0x00, 0x02}, "LDA $0200,X", 3},
		{"absolute y", []uint8{0x99, 0x00, 0x03}, "STA $0300,Y", 3},
		{"indirect", []uint8{0x6C, 0xFC, 0xFF}, "JMP ($FFFC)", 3},
		{"indexed indirect", []uint8{0xA1, 0x20}, "LDA ($20,X)", 2},
		{"indirect indexed", []uint8{0xB1, 0x20}, "LDA ($20),Y", 2},
		{"relative forward", []uint8{0xD0, 0x05}, "BNE $C007", 2},
		{"relative backward", []uint8{0xD0, 0xFE}, "BNE $C000", 2},
		{"undefined", []uint8{0x02}, ".db $02", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line := DisassembleAt(0xC000, load(0xC000, tt.program...))
			assert.Equal(t, tt.want, line.Instruction)
			assert.Equal(t, tt.length, line.Length)
			assert.Equal(t, uint16(0xC000), line.Address)
		})
	}
}

func TestDisassembleRange(t *testing.T) {
	mem := load(0x8000, 0xA2, 0x00, 0xE8, 0x4C, 0x02, 0x80)
	lines := DisassembleRange(0x8000, 3, mem)

	assert.Len(t, lines, 3)
	assert.Equal(t, "LDX #$00", lines[0].Instruction)
	assert.Equal(t, uint16(0x8002), lines[1].Address)
	assert.Equal(t, "JMP $8002", lines[2].Instruction)
}

func TestFormatTrace(t *testing.T) {
	mem := load(0xC000, 0xA9, 0x42)
	state := cpu.State{PC: 0xC000, P: 0x10, SP: 0xFD, Cycles: 7}

	assert.Equal(t, "C000  A9 42     LDA #$42       A:00 X:00 Y:00 P:10 SP:FD CYC:7", FormatTrace(state, mem))
}
