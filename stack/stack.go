// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package stack implements a 255 entry LIFO built from one SRAM, a stack
// pointer register, and a 4-to-1 selector.
//
// The pointer addresses the next free slot. It counts down from STACK_EMPTY
// as values are pushed; STACK_FULL means no free slot remains. Pushing to a
// full stack, or popping from an empty one, is ignored.
package stack

import (
	"fmt"
	"iter"
	"log"
	"maps"

	"github.com/ezrec/datapath/mux"
	"github.com/ezrec/datapath/sram"
)

const (
	STACK_EMPTY    = 0xff // Pointer value of an empty stack.
	STACK_FULL     = 0x00 // Pointer value of a full stack.
	STACK_CAPACITY = STACK_EMPTY - STACK_FULL
)

var _stack_defines = map[string]int{
	"STACK_EMPTY":    STACK_EMPTY,
	"STACK_FULL":     STACK_FULL,
	"STACK_CAPACITY": STACK_CAPACITY,
}

// Input is the set of signals sampled by the stack on a clock edge.
type Input struct {
	Reset bool  // Empty the stack and clear the output register.
	Push  bool  // Push Data.
	Pop   bool  // Pop the top of stack into the output register.
	Data  uint8 // Value to push.
}

// Stack is the register state of the stack.
type Stack struct {
	Verbose bool // Set to enable verbose logging.

	// Compat resolves a simultaneous push and pop the way the legacy
	// netlist does: both branches apply, pop last. When clear, the
	// combination is rejected with ErrStackPushPop.
	Compat bool

	Pointer uint8 // Stack pointer register.
	Out     uint8 // Output register.

	mem sram.Sram // Backing store, owned exclusively by the stack.
}

// NewStack returns an empty stack.
func NewStack() (s *Stack) {
	s = &Stack{}
	s.Reset()

	return
}

// Defines for the stack
func (s *Stack) Defines() iter.Seq2[string, int] {
	return maps.All(_stack_defines)
}

// Next returns the state after one clock edge. The receiver is not modified.
// If both Push and Pop are asserted outside of Compat mode, the state is
// returned unchanged along with ErrStackPushPop.
func (s Stack) Next(in Input) (next Stack, err error) {
	next = s

	if in.Reset {
		next.Pointer = STACK_EMPTY
		next.Out = 0
		next.mem = s.mem.Next(sram.Input{Reset: true})
		return
	}

	if in.Push && in.Pop && !s.Compat {
		err = ErrStackPushPop
		return
	}

	push := in.Push && s.Pointer != STACK_FULL
	pop := in.Pop && s.Pointer != STACK_EMPTY

	// The single SRAM port addresses the free slot for a push, and the
	// occupied slot above it for a pop.
	address := s.Pointer
	if !in.Push {
		address = s.Pointer + 1
	}

	sel := mux.SelectCode(in.Push, in.Pop)
	data := mux.Mux4to1(sel, 0, s.mem.Out, in.Data, 0)

	next.mem = s.mem.Next(sram.Input{
		Address: address,
		Read:    pop,
		Write:   push,
		Data:    data,
	})

	if push {
		next.Pointer = s.Pointer - 1
		next.Out = in.Data
	}

	if pop {
		next.Pointer = s.Pointer + 1
		next.Out = next.mem.Out
	}

	return
}

// Tick advances the stack by one clock edge, and returns the output register.
func (s *Stack) Tick(in Input) (out uint8, err error) {
	next, err := s.Next(in)
	if err != nil {
		if s.Verbose {
			log.Printf("stack: %v", err)
		}
		out = s.Out
		return
	}

	if s.Verbose {
		switch {
		case in.Reset:
			log.Printf("stack: reset")
		case next.Pointer < s.Pointer:
			log.Printf("stack: push %02x, sp %02x -> %02x", in.Data, s.Pointer, next.Pointer)
		case next.Pointer > s.Pointer:
			log.Printf("stack: pop %02x, sp %02x -> %02x", next.Out, s.Pointer, next.Pointer)
		case in.Push:
			log.Printf("stack: full, push %02x ignored", in.Data)
		case in.Pop:
			log.Printf("stack: empty, pop ignored")
		}
	}

	*s = next
	out = s.Out

	return
}

// Reset the stack to empty. The backing store is not cleared.
func (s *Stack) Reset() {
	// Reset never fails.
	_, _ = s.Tick(Input{Reset: true})
}

// Empty returns true if there is nothing to pop.
func (s *Stack) Empty() bool {
	return s.Pointer == STACK_EMPTY
}

// Full returns true if there is no room to push.
func (s *Stack) Full() bool {
	return s.Pointer == STACK_FULL
}

// Depth returns the number of values on the stack.
func (s *Stack) Depth() int {
	return STACK_EMPTY - int(s.Pointer)
}

// Peek returns the top of stack without a clock edge.
func (s *Stack) Peek() (value uint8, ok bool) {
	if s.Empty() {
		return
	}

	return s.mem.Peek(s.Pointer + 1), true
}

// String returns the stack state as a string.
func (s *Stack) String() string {
	top := "--"
	if value, ok := s.Peek(); ok {
		top = fmt.Sprintf("%02x", value)
	}

	return fmt.Sprintf("sp: %02x depth: %d top: %v out: %02x", s.Pointer, s.Depth(), top, s.Out)
}
