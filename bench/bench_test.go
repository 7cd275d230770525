package bench

import (
	"bytes"
	"maps"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/datapath/alu"
	"github.com/ezrec/datapath/sram"
	"github.com/ezrec/datapath/stack"
)

func TestBench(t *testing.T) {
	assert := assert.New(t)

	b := NewBench()

	assert.False(b.Verbose)
	assert.Equal(0, b.Ticks)
	assert.True(b.Stack.Empty())
	assert.Empty(b.Trace)
}

func TestBench_Defines(t *testing.T) {
	assert := assert.New(t)

	b := NewBench()
	defs := maps.Collect(b.Defines())

	assert.Equal(256, defs["SRAM_SIZE"])
	assert.Equal(0xff, defs["STACK_EMPTY"])
	assert.Equal(0, defs["STACK_FULL"])
	assert.Equal(1, defs["OP_SUB"])
}

func TestBench_Tick(t *testing.T) {
	assert := assert.New(t)

	b := NewBench()

	b.SetSramInput(sram.Input{Write: true, Address: 0x10, Data: 0x77})
	b.SetStackInput(stack.Input{Push: true, Data: 0x66})
	b.SetAluInput(alu.Input{Opcode: alu.OP_ADD, Operand1: 0x80, Operand2: 0x80, SaveResult: true, SaveC: true})
	assert.NoError(b.Tick())

	assert.Equal(1, b.Ticks)
	assert.Equal(uint8(0x77), b.Sram.Cell[0x10])
	assert.Equal(uint8(0x66), b.Stack.Out)
	assert.Equal(uint8(0x00), b.Alu.Result)
	assert.True(b.Alu.C)

	// Staged inputs are consumed by the edge.
	b.SetSramInput(sram.Input{Read: true, Address: 0x10})
	assert.NoError(b.Tick())
	assert.Equal(uint8(0x77), b.Sram.Out)
	assert.Equal(uint8(0xfe), b.Stack.Pointer)
	assert.Equal(uint8(0x66), b.Stack.Out)
	assert.True(b.Alu.C)

	assert.Len(b.Trace, 2)
	edge := b.Trace[0]
	assert.Equal(0, edge.Number)
	assert.Equal(uint8(0xfe), edge.Pointer)
	assert.Equal(uint8(0x66), edge.StackOut)
	assert.True(edge.C)
	assert.Equal(uint8(0x77), b.Trace[1].SramOut)
}

func TestBench_TickRejected(t *testing.T) {
	assert := assert.New(t)

	b := NewBench()
	b.SetSramInput(sram.Input{Write: true, Address: 1, Data: 1})
	b.SetStackInput(stack.Input{Push: true, Pop: true, Data: 2})
	b.SetAluInput(alu.Input{Opcode: alu.OP_ADD, Operand1: 1, SaveResult: true})

	err := b.Tick()
	assert.ErrorIs(err, stack.ErrStackPushPop)

	var edge *ErrEdge
	assert.ErrorAs(err, &edge)
	assert.Equal(0, edge.Edge)

	// Nothing moved.
	assert.Equal(0, b.Ticks)
	assert.Equal(uint8(0), b.Sram.Cell[1])
	assert.True(b.Stack.Empty())
	assert.Equal(uint8(0), b.Alu.Result)
	assert.Empty(b.Trace)

	// Compat mode accepts the combination.
	b.Stack.Compat = true
	b.SetStackInput(stack.Input{Push: true, Pop: true, Data: 2})
	assert.NoError(b.Tick())
	assert.Equal(uint8(0xfe), b.Stack.Pointer)
}

func TestBench_Reset(t *testing.T) {
	assert := assert.New(t)

	b := NewBench()
	b.SetSramInput(sram.Input{Write: true, Read: true, Address: 5, Data: 5})
	b.SetStackInput(stack.Input{Push: true, Data: 9})
	b.SetAluInput(alu.Input{Opcode: alu.OP_SUB, Operand2: 1, SaveResult: true, SaveC: true})
	assert.NoError(b.Tick())
	assert.NoError(b.Reset())

	assert.Equal(2, b.Ticks)
	assert.Equal(uint8(0), b.Sram.Out)
	assert.Equal(uint8(5), b.Sram.Cell[5])
	assert.True(b.Stack.Empty())
	assert.Equal(uint8(0), b.Stack.Out)
	assert.Equal(uint8(0), b.Alu.Result)
	assert.False(b.Alu.C)
}

func TestEdge_String(t *testing.T) {
	assert := assert.New(t)

	e := Edge{
		Number:   3,
		Sram:     sram.Input{Write: true, Address: 0x10, Data: 0x20},
		Stack:    stack.Input{Push: true, Data: 0x30},
		Alu:      alu.Input{Opcode: alu.OP_XOR, Operand1: 1, Operand2: 2, SaveResult: true, SaveZ: true},
		StackOut: 0x30,
		Pointer:  0xfe,
		Result:   3,
	}

	assert.Equal("    3: sram xrW 10 20 -> 00 | stack xUo 30 -> 30 sp fe | alu xiSZc xor 01 02 -> 03 zc", e.String())
}

func TestRun_Properties(t *testing.T) {
	assert := assert.New(t)

	b := NewBench()
	err := b.Run("testdata/properties.star", nil, nil)
	assert.NoError(err)
	assert.Greater(b.Ticks, 2*256)
}

func TestRun_Print(t *testing.T) {
	assert := assert.New(t)

	b := NewBench()
	out := &bytes.Buffer{}
	err := b.Run("print.star", `
alu(op = "xor", a = 0x0f, b = 0xff, save = True)
s = tick()
print("%x" % s.result, s.edge)
print(state().pointer == STACK_EMPTY)
`, out)
	assert.NoError(err)
	assert.Equal("f0 1\nTrue\n", out.String())
}

func TestRun_Errors(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name   string
		script string
		text   string
	}){
		{"check", "check(1, 2)", "check failed: got 1, want 2"},
		{"check_msg", "check(tick().pointer, 0, 'ptr')", "check failed: ptr: got 255, want 0"},
		{"range", "sram(address = 256)", "address: value out of range"},
		{"negative", "stack(push = True, data = -1)", "data: value out of range"},
		{"opcode", "alu(op = 'shl')", "opcode 'shl' invalid"},
		{"opcode_range", "alu(op = 32)", "op: value out of range"},
		{"pushpop", "stack(push = True, pop = True)\ntick()", "push and pop asserted on the same edge"},
		{"count", "tick(0)", "tick count invalid"},
		{"syntax", "tick(", "syntax.star:1"},
		{"kwarg", "sram(bogus = 1)", "unexpected keyword argument"},
	}

	for _, entry := range table {
		b := NewBench()
		err := b.Run(entry.name+".star", entry.script, nil)
		assert.ErrorIs(err, ErrScript, entry.name)
		if err != nil {
			assert.True(strings.Contains(err.Error(), entry.text), "%v: %v", entry.name, err)
		}
	}
}

func TestRun_Opcodes(t *testing.T) {
	assert := assert.New(t)

	// Opcodes outside the table are accepted, and evaluate to zero.
	b := NewBench()
	err := b.Run("unknown.star", `
alu(op = 0x1f, a = 0xff, b = 0xff, save = True, save_z = True, save_c = True)
s = tick()
check((s.result, s.z, s.c), (0, True, False))
`, nil)
	assert.NoError(err)
	assert.Equal(alu.Opcode(0x1f), b.Trace[0].Alu.Opcode)
}
