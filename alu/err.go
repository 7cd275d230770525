package alu

import (
	"github.com/ezrec/datapath/translate"
)

var f = translate.From

type ErrOpcodeInvalid string

func (err ErrOpcodeInvalid) Error() string {
	return f("opcode '%v' invalid", string(err))
}
