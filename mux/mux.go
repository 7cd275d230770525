// Package mux implements the combinational 4-to-1 byte selector.
package mux

// Mux4to1 returns the input selected by the 2-bit code sel. Codes outside
// of 0..3 select in0.
func Mux4to1(sel uint8, in0, in1, in2, in3 uint8) (out uint8) {
	switch sel {
	case 0b00:
		out = in0
	case 0b01:
		out = in1
	case 0b10:
		out = in2
	case 0b11:
		out = in3
	default:
		out = in0
	}

	return
}

// SelectCode packs two control lines into a selector code, hi as bit 1.
func SelectCode(hi, lo bool) (sel uint8) {
	if hi {
		sel |= 0b10
	}
	if lo {
		sel |= 0b01
	}

	return
}
