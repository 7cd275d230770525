// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package alu implements an 8-bit ALU with a registered result and
// registered zero and carry flags.
//
// Operations are evaluated over a 9-bit intermediate so the carry out of
// add and sub can be latched. Registers only change on an edge where the
// save-result control is asserted; the flag save controls select which
// flags are latched from that same evaluation.
package alu

import (
	"fmt"
	"iter"
	"log"
	"maps"
)

const (
	WIDE_MASK   = 0x1ff // 9-bit intermediate.
	CARRY_BIT   = 0x100 // Carry out of the intermediate.
	IMM7_MASK   = 0x01  // Operand 2 bits kept in immediate mode.
	RESULT_MASK = 0xff  // Result register width.
)

// Input is the set of signals sampled by the ALU on a clock edge.
type Input struct {
	Reset      bool   // Clear the result and flags.
	Imm7       bool   // Narrow Operand2 to its low bit.
	Operand1   uint8  // First operand.
	Operand2   uint8  // Second operand.
	Opcode     Opcode // Operation.
	SaveResult bool   // Latch the result register.
	SaveZ      bool   // Latch the zero flag. Requires SaveResult.
	SaveC      bool   // Latch the carry flag. Requires SaveResult.
}

// Alu is the register state of the ALU.
type Alu struct {
	Verbose bool // Set to enable verbose logging.

	Result uint8 // Result register.
	Z      bool  // Zero flag.
	C      bool  // Carry flag.
}

// Defines for the alu
func (a *Alu) Defines() iter.Seq2[string, int] {
	return maps.All(_alu_defines)
}

// Evaluate performs the combinational operation, returning the 9-bit
// intermediate. Unknown opcodes evaluate to zero.
func Evaluate(op Opcode, op1, op2 uint8) (wide uint16) {
	a := uint16(op1)
	b := uint16(op2)

	switch op & OPCODE_MASK {
	case OP_ADD:
		wide = a + b
	case OP_SUB:
		wide = a - b
	case OP_AND:
		wide = a & b
	case OP_OR:
		wide = a | b
	case OP_XOR:
		wide = a ^ b
	default:
		wide = 0
	}

	wide &= WIDE_MASK
	return
}

// Next returns the state after one clock edge. The receiver is not modified.
func (a Alu) Next(in Input) (next Alu) {
	next = a

	if in.Reset {
		next.Result = 0
		next.Z = false
		next.C = false
		return
	}

	if !in.SaveResult {
		return
	}

	op2 := in.Operand2
	if in.Imm7 {
		op2 &= IMM7_MASK
	}

	wide := Evaluate(in.Opcode, in.Operand1, op2)
	next.Result = uint8(wide & RESULT_MASK)

	if in.SaveZ {
		next.Z = next.Result == 0
	}

	if in.SaveC {
		next.C = in.Opcode.Carries() && (wide&CARRY_BIT) != 0
	}

	return
}

// Tick advances the ALU by one clock edge, and returns the registers.
func (a *Alu) Tick(in Input) (result uint8, z bool, c bool) {
	next := a.Next(in)

	if a.Verbose {
		switch {
		case in.Reset:
			log.Printf("alu: reset")
		case in.SaveResult:
			log.Printf("alu: %v %02x, %02x -> %v", in.Opcode, in.Operand1, in.Operand2, &next)
		}
	}

	*a = next

	return a.Result, a.Z, a.C
}

// Reset the result and flags.
func (a *Alu) Reset() {
	a.Tick(Input{Reset: true})
}

// Flags returns the flag registers as a labelled bit pattern.
func (a *Alu) Flags() (flags string) {
	if a.Z {
		flags += "Z"
	} else {
		flags += "z"
	}
	if a.C {
		flags += "C"
	} else {
		flags += "c"
	}

	return
}

// String returns the ALU registers as a string.
func (a *Alu) String() string {
	return fmt.Sprintf("result: %02x flags: %v", a.Result, a.Flags())
}
