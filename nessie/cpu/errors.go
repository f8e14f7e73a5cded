package cpu

import "fmt"

// UnknownOpcodeError is returned when the byte at PC has no instruction. It halts emulation.
type UnknownOpcodeError struct {
	Opcode uint8
	PC     uint16
}

func (e *UnknownOpcodeError) Error() string {
	return fmt.Sprintf("unknown opcode 0x%02X at 0x%04X", e.Opcode, e.PC)
}
