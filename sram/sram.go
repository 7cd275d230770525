// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package sram models a clocked 256 x 8-bit static RAM with a registered
// output port.
package sram

import (
	"fmt"
	"iter"
	"log"
	"maps"
	"strings"
)

const (
	SRAM_SIZE = 256 // Number of byte cells.
)

var _sram_defines = map[string]int{
	"SRAM_SIZE": SRAM_SIZE,
}

// Input is the set of signals sampled by the SRAM on a clock edge.
type Input struct {
	Reset   bool  // Clear the output register.
	Read    bool  // Latch the addressed cell into the output register.
	Write   bool  // Store Data into the addressed cell.
	Address uint8 // Cell address.
	Data    uint8 // Write data.
}

// Sram is the register state of the memory: the cell array and the output
// register.
type Sram struct {
	Verbose bool // Set to enable verbose logging.

	Cell [SRAM_SIZE]uint8 // Cell contents.
	Out  uint8            // Output register.
}

// Defines for the sram
func (s *Sram) Defines() iter.Seq2[string, int] {
	return maps.All(_sram_defines)
}

// Next returns the state after one clock edge. The receiver is not modified.
//
// A read and a write to the same address on the same edge returns the cell
// as it was before the edge. Reset clears the output register only.
func (s Sram) Next(in Input) (next Sram) {
	next = s

	if in.Reset {
		next.Out = 0
		return
	}

	if in.Read {
		next.Out = s.Cell[in.Address]
	}

	if in.Write {
		next.Cell[in.Address] = in.Data
	}

	return
}

// Tick advances the SRAM by one clock edge, and returns the output register.
func (s *Sram) Tick(in Input) (out uint8) {
	if s.Verbose {
		switch {
		case in.Reset:
			log.Printf("sram: reset")
		case in.Write && in.Read:
			log.Printf("sram: [%02x] %02x -> out, %02x -> [%02x]", in.Address, s.Cell[in.Address], in.Data, in.Address)
		case in.Write:
			log.Printf("sram: %02x -> [%02x]", in.Data, in.Address)
		case in.Read:
			log.Printf("sram: [%02x] %02x -> out", in.Address, s.Cell[in.Address])
		}
	}

	*s = s.Next(in)

	return s.Out
}

// Reset the output register. Cell contents are preserved.
func (s *Sram) Reset() {
	s.Tick(Input{Reset: true})
}

// Peek reads a cell without a clock edge.
func (s *Sram) Peek(address uint8) uint8 {
	return s.Cell[address]
}

// String returns the cell contents as a hex dump.
func (s *Sram) String() string {
	var sb strings.Builder
	sb.WriteString("     -0 -1 -2 -3 -4 -5 -6 -7 -8 -9 -A -B -C -D -E -F\n")
	for row := range SRAM_SIZE / 16 {
		sb.WriteString(fmt.Sprintf("%X- |", row))
		for col := range 16 {
			sb.WriteString(fmt.Sprintf(" %02x", s.Cell[row*16+col]))
		}
		sb.WriteString("\n")
	}
	sb.WriteString(fmt.Sprintf("out: %02x", s.Out))

	return sb.String()
}
