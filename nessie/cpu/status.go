package cpu

import "github.com/valerio/go-nessie/nessie/bit"

// Status is the processor status register, one field per flag.
//
// Bit 7 - N Negative
// Bit 6 - V Overflow
// Bit 5 - U Reserved
// Bit 4 - B Break
// Bit 3 - D Decimal
// Bit 2 - I Interrupt disable
// Bit 1 - Z Zero
// Bit 0 - C Carry
type Status struct {
	Carry            bool
	Zero             bool
	InterruptDisable bool
	Decimal          bool
	Break            bool
	Reserved         bool
	Overflow         bool
	Negative         bool
}

const (
	carryBit uint8 = iota
	zeroBit
	interruptBit
	decimalBit
	breakBit
	reservedBit
	overflowBit
	negativeBit
)

// Byte packs the flags into their register layout.
func (s Status) Byte() uint8 {
	var v uint8
	v = bit.SetTo(carryBit, v, s.Carry)
	v = bit.SetTo(zeroBit, v, s.Zero)
	v = bit.SetTo(interruptBit, v, s.InterruptDisable)
	v = bit.SetTo(decimalBit, v, s.Decimal)
	v = bit.SetTo(breakBit, v, s.Break)
	v = bit.SetTo(reservedBit, v, s.Reserved)
	v = bit.SetTo(overflowBit, v, s.Overflow)
	v = bit.SetTo(negativeBit, v, s.Negative)
	return v
}

// SetByte unpacks every flag from v.
func (s *Status) SetByte(v uint8) {
	s.Carry = bit.IsSet(carryBit, v)
	s.Zero = bit.IsSet(zeroBit, v)
	s.InterruptDisable = bit.IsSet(interruptBit, v)
	s.Decimal = bit.IsSet(decimalBit, v)
	s.Break = bit.IsSet(breakBit, v)
	s.Reserved = bit.IsSet(reservedBit, v)
	s.Overflow = bit.IsSet(overflowBit, v)
	s.Negative = bit.IsSet(negativeBit, v)
}

func (s Status) String() string {
	flags := []byte("nvubdizc")
	v := s.Byte()
	for i := range flags {
		if bit.IsSet(uint8(7-i), v) {
			flags[i] -= 'a' - 'A'
		}
	}
	return string(flags)
}
