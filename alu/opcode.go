package alu

// Opcode is a 5-bit ALU operation selector.
type Opcode uint8

//go:generate go tool stringer -linecomment -type=Opcode
const (
	OP_ADD = Opcode(0b00000) // add
	OP_SUB = Opcode(0b00001) // sub
	OP_AND = Opcode(0b00010) // and
	OP_OR  = Opcode(0b00011) // or
	OP_XOR = Opcode(0b00100) // xor
)

const (
	OPCODE_MASK = Opcode(0x1f) // Width of the opcode field.
)

var _alu_defines = map[string]int{
	"OP_ADD":      int(OP_ADD),
	"OP_SUB":      int(OP_SUB),
	"OP_AND":      int(OP_AND),
	"OP_OR":       int(OP_OR),
	"OP_XOR":      int(OP_XOR),
	"OPCODE_MASK": int(OPCODE_MASK),
}

// ParseOpcode converts a mnemonic into an Opcode.
func ParseOpcode(name string) (op Opcode, err error) {
	for op = OP_ADD; op <= OP_XOR; op++ {
		if op.String() == name {
			return
		}
	}

	op = 0
	err = ErrOpcodeInvalid(name)
	return
}

// Carries returns true if the opcode drives the carry flag from bit 8 of
// the wide result.
func (op Opcode) Carries() bool {
	switch op & OPCODE_MASK {
	case OP_ADD, OP_SUB:
		return true
	}

	return false
}
