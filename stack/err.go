package stack

import (
	"errors"

	"github.com/ezrec/datapath/translate"
)

var f = translate.From

var (
	// Stack errors
	ErrStackPushPop = errors.New(f("push and pop asserted on the same edge"))
)
