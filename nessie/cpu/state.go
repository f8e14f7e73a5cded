package cpu

import "fmt"

// State is a snapshot of the programmer-visible registers.
type State struct {
	A      uint8
	X      uint8
	Y      uint8
	P      uint8
	SP     uint8
	PC     uint16
	Cycles uint64
}

// State returns the current register snapshot.
func (c *CPU) State() State {
	return State{
		A:      c.a,
		X:      c.x,
		Y:      c.y,
		P:      c.p.Byte(),
		SP:     c.sp,
		PC:     c.pc,
		Cycles: c.cycles,
	}
}

// String formats the state as one golden trace line. Cycles are left out so traces
// stay comparable across pacing changes.
func (s State) String() string {
	return fmt.Sprintf("%04X A:%02X X:%02X Y:%02X P:%02X SP:%02X", s.PC, s.A, s.X, s.Y, s.P, s.SP)
}

// Status returns the unpacked flags of the snapshot.
func (s State) Status() Status {
	var st Status
	st.SetByte(s.P)
	return st
}
