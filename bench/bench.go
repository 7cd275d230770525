// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package bench drives an SRAM, a stack, and an ALU from a single clock.
//
// The three components are independent: each edge applies whatever inputs
// have been staged for each of them, and components with nothing staged
// hold their state.
package bench

import (
	"fmt"
	"iter"
	"log"

	"github.com/ezrec/datapath/alu"
	"github.com/ezrec/datapath/internal"
	"github.com/ezrec/datapath/sram"
	"github.com/ezrec/datapath/stack"
)

// Edge is the trace record of one clock edge.
type Edge struct {
	Number int // Edge number since the bench was created.

	Sram  sram.Input  // Inputs applied to the SRAM.
	Stack stack.Input // Inputs applied to the stack.
	Alu   alu.Input   // Inputs applied to the ALU.

	SramOut  uint8 // SRAM output register after the edge.
	StackOut uint8 // Stack output register after the edge.
	Pointer  uint8 // Stack pointer after the edge.
	Result   uint8 // ALU result register after the edge.
	Z        bool  // ALU zero flag after the edge.
	C        bool  // ALU carry flag after the edge.
}

// ctl renders control lines as letters, upper case when asserted.
func ctl(names string, lines ...bool) (text string) {
	for n, line := range lines {
		c := names[n]
		if !line {
			c += 'a' - 'A'
		}
		text += string(c)
	}

	return
}

// String returns the edge as a single trace line.
func (e Edge) String() string {
	return fmt.Sprintf("%5d: sram %v %02x %02x -> %02x | stack %v %02x -> %02x sp %02x | alu %v %v %02x %02x -> %02x %v",
		e.Number,
		ctl("XRW", e.Sram.Reset, e.Sram.Read, e.Sram.Write), e.Sram.Address, e.Sram.Data, e.SramOut,
		ctl("XUO", e.Stack.Reset, e.Stack.Push, e.Stack.Pop), e.Stack.Data, e.StackOut, e.Pointer,
		ctl("XISZC", e.Alu.Reset, e.Alu.Imm7, e.Alu.SaveResult, e.Alu.SaveZ, e.Alu.SaveC),
		e.Alu.Opcode, e.Alu.Operand1, e.Alu.Operand2, e.Result,
		ctl("ZC", e.Z, e.C))
}

// Bench is the simulation context for the datapath components.
type Bench struct {
	Verbose bool // Set to enable verbose logging.

	Sram  sram.Sram   // Stand-alone SRAM.
	Stack stack.Stack // Stack, with its own private SRAM.
	Alu   alu.Alu     // ALU.

	Ticks int    // Clock edges since creation.
	Trace []Edge // Record of every edge.

	pending Edge
}

// NewBench creates a bench with all components in their reset state.
func NewBench() (b *Bench) {
	b = &Bench{}

	b.Sram.Reset()
	b.Stack.Reset()
	b.Alu.Reset()

	return
}

// Defines returns an iterator over all of the component defines.
func (b *Bench) Defines() iter.Seq2[string, int] {
	return internal.IterSeq2Concat(
		b.Sram.Defines(),
		b.Stack.Defines(),
		b.Alu.Defines(),
	)
}

// SetSramInput stages the SRAM inputs for the next edge.
func (b *Bench) SetSramInput(in sram.Input) {
	b.pending.Sram = in
}

// SetStackInput stages the stack inputs for the next edge.
func (b *Bench) SetStackInput(in stack.Input) {
	b.pending.Stack = in
}

// SetAluInput stages the ALU inputs for the next edge.
func (b *Bench) SetAluInput(in alu.Input) {
	b.pending.Alu = in
}

// Tick advances every component by one clock edge.
//
// All components move together: if any component rejects its inputs,
// no component changes state and the staged inputs are discarded.
func (b *Bench) Tick() (err error) {
	edge := b.pending
	edge.Number = b.Ticks
	b.pending = Edge{}

	defer func() {
		if err != nil {
			err = &ErrEdge{Edge: edge.Number, Err: err}
		}
	}()

	b.Sram.Verbose = b.Verbose
	b.Stack.Verbose = b.Verbose
	b.Alu.Verbose = b.Verbose

	if _, err = b.Stack.Next(edge.Stack); err != nil {
		if b.Verbose {
			log.Printf("bench: edge %d: %v", edge.Number, err)
		}
		return
	}

	edge.SramOut = b.Sram.Tick(edge.Sram)
	edge.StackOut, err = b.Stack.Tick(edge.Stack)
	if err != nil {
		return
	}
	edge.Pointer = b.Stack.Pointer
	edge.Result, edge.Z, edge.C = b.Alu.Tick(edge.Alu)

	b.Ticks++
	b.Trace = append(b.Trace, edge)

	if b.Verbose {
		log.Printf("bench: %v", edge)
	}

	return
}

// Reset asserts reset on every component for one clock edge.
func (b *Bench) Reset() (err error) {
	b.pending = Edge{
		Sram:  sram.Input{Reset: true},
		Stack: stack.Input{Reset: true},
		Alu:   alu.Input{Reset: true},
	}

	return b.Tick()
}
