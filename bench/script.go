package bench

import (
	"errors"
	"fmt"
	"io"
	"log"

	"go.starlark.net/starlark"
	"go.starlark.net/starlarkstruct"
	"go.starlark.net/syntax"

	"github.com/ezrec/datapath/alu"
	"github.com/ezrec/datapath/sram"
	"github.com/ezrec/datapath/stack"
)

// Run executes a bench script. See Predeclared for the script environment.
// Script output from print() goes to out, or the log if out is nil.
func (b *Bench) Run(filename string, src any, out io.Writer) (err error) {
	thread := &starlark.Thread{
		Name: filename,
		Print: func(_ *starlark.Thread, msg string) {
			if out == nil {
				log.Printf("%v: %v", filename, msg)
				return
			}
			fmt.Fprintln(out, msg)
		},
	}
	opts := syntax.FileOptions{
		While:           true,
		TopLevelControl: true,
		GlobalReassign:  true,
	}

	if b.Verbose {
		log.Printf("bench: run %v", filename)
	}

	_, err = starlark.ExecFileOptions(&opts, thread, filename, src, b.Predeclared())
	if err != nil {
		err = errors.Join(ErrScript, err)
	}

	return
}

// Predeclared returns the script environment:
//
//	sram(address=0, data=0, read=False, write=False, reset=False)
//	stack(push=False, pop=False, data=0, reset=False)
//	alu(op=0, a=0, b=0, imm7=False, save=False, save_z=False, save_c=False, reset=False)
//	tick(n=1) -> state
//	reset() -> state
//	state() -> state
//	check(got, want, msg="")
//
// The component functions stage inputs for the next edge. A state has the
// fields sram, stack, pointer, result, z, c and edge. Every component
// define is predeclared as an int.
func (b *Bench) Predeclared() (pred starlark.StringDict) {
	pred = starlark.StringDict{}

	for key, value := range b.Defines() {
		pred[key] = starlark.MakeInt(value)
	}

	builtins := map[string]func(*starlark.Thread, *starlark.Builtin, starlark.Tuple, []starlark.Tuple) (starlark.Value, error){
		"sram":  b.builtinSram,
		"stack": b.builtinStack,
		"alu":   b.builtinAlu,
		"tick":  b.builtinTick,
		"reset": b.builtinReset,
		"state": b.builtinState,
		"check": b.builtinCheck,
	}
	for name, fn := range builtins {
		pred[name] = starlark.NewBuiltin(name, fn)
	}

	return
}

// state returns the component outputs as a script value.
func (b *Bench) state() starlark.Value {
	return starlarkstruct.FromStringDict(starlarkstruct.Default, starlark.StringDict{
		"sram":    starlark.MakeInt(int(b.Sram.Out)),
		"stack":   starlark.MakeInt(int(b.Stack.Out)),
		"pointer": starlark.MakeInt(int(b.Stack.Pointer)),
		"result":  starlark.MakeInt(int(b.Alu.Result)),
		"z":       starlark.Bool(b.Alu.Z),
		"c":       starlark.Bool(b.Alu.C),
		"edge":    starlark.MakeInt(b.Ticks),
	})
}

// toByte range checks a script integer for an 8-bit bus.
func toByte(field string, value int) (out uint8, err error) {
	if value < 0 || value > 0xff {
		err = &ErrField{Field: field, Err: ErrRange}
		return
	}

	out = uint8(value)
	return
}

func (b *Bench) builtinSram(_ *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var in sram.Input
	var address, data int

	err := starlark.UnpackArgs(fn.Name(), args, kwargs,
		"address?", &address,
		"data?", &data,
		"read?", &in.Read,
		"write?", &in.Write,
		"reset?", &in.Reset)
	if err != nil {
		return nil, err
	}

	if in.Address, err = toByte("address", address); err != nil {
		return nil, err
	}
	if in.Data, err = toByte("data", data); err != nil {
		return nil, err
	}

	b.SetSramInput(in)
	return starlark.None, nil
}

func (b *Bench) builtinStack(_ *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var in stack.Input
	var data int

	err := starlark.UnpackArgs(fn.Name(), args, kwargs,
		"push?", &in.Push,
		"pop?", &in.Pop,
		"data?", &data,
		"reset?", &in.Reset)
	if err != nil {
		return nil, err
	}

	if in.Data, err = toByte("data", data); err != nil {
		return nil, err
	}

	b.SetStackInput(in)
	return starlark.None, nil
}

func (b *Bench) builtinAlu(_ *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var in alu.Input
	var op starlark.Value = starlark.MakeInt(0)
	var a, bb int

	err := starlark.UnpackArgs(fn.Name(), args, kwargs,
		"op?", &op,
		"a?", &a,
		"b?", &bb,
		"imm7?", &in.Imm7,
		"save?", &in.SaveResult,
		"save_z?", &in.SaveZ,
		"save_c?", &in.SaveC,
		"reset?", &in.Reset)
	if err != nil {
		return nil, err
	}

	switch op := op.(type) {
	case starlark.String:
		in.Opcode, err = alu.ParseOpcode(string(op))
		if err != nil {
			return nil, &ErrField{Field: "op", Err: err}
		}
	case starlark.Int:
		code, ok := op.Int64()
		if !ok || code < 0 || code > int64(alu.OPCODE_MASK) {
			return nil, &ErrField{Field: "op", Err: ErrRange}
		}
		in.Opcode = alu.Opcode(code)
	default:
		return nil, &ErrField{Field: "op", Err: ErrRange}
	}

	if in.Operand1, err = toByte("a", a); err != nil {
		return nil, err
	}
	if in.Operand2, err = toByte("b", bb); err != nil {
		return nil, err
	}

	b.SetAluInput(in)
	return starlark.None, nil
}

func (b *Bench) builtinTick(_ *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	count := 1
	err := starlark.UnpackArgs(fn.Name(), args, kwargs, "n?", &count)
	if err != nil {
		return nil, err
	}

	if count < 1 {
		return nil, ErrCount
	}

	for range count {
		if err = b.Tick(); err != nil {
			return nil, err
		}
	}

	return b.state(), nil
}

func (b *Bench) builtinReset(_ *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	err := starlark.UnpackArgs(fn.Name(), args, kwargs)
	if err != nil {
		return nil, err
	}

	if err = b.Reset(); err != nil {
		return nil, err
	}

	return b.state(), nil
}

func (b *Bench) builtinState(_ *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	err := starlark.UnpackArgs(fn.Name(), args, kwargs)
	if err != nil {
		return nil, err
	}

	return b.state(), nil
}

func (b *Bench) builtinCheck(_ *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var got, want starlark.Value
	var msg string

	err := starlark.UnpackArgs(fn.Name(), args, kwargs, "got", &got, "want", &want, "msg?", &msg)
	if err != nil {
		return nil, err
	}

	equal, err := starlark.Equal(got, want)
	if err != nil {
		return nil, err
	}

	if !equal {
		return nil, &ErrCheck{Got: got.String(), Want: want.String(), Msg: msg}
	}

	return starlark.None, nil
}
