package bench

import (
	"errors"

	"github.com/ezrec/datapath/translate"
)

var f = translate.From

var (
	// Bench errors
	ErrScript = errors.New(f("script failed"))
	ErrRange  = errors.New(f("value out of range"))
	ErrCount  = errors.New(f("tick count invalid"))
)

// ErrEdge indicates the clock edge that failed.
type ErrEdge struct {
	Edge int
	Err  error
}

func (err *ErrEdge) Error() string {
	return f("edge %d %v", err.Edge, err.Err)
}

func (err *ErrEdge) Unwrap() error {
	return err.Err
}

// ErrCheck is a failed script check.
type ErrCheck struct {
	Got  string
	Want string
	Msg  string
}

func (err *ErrCheck) Error() string {
	if len(err.Msg) == 0 {
		return f("check failed: got %v, want %v", err.Got, err.Want)
	}
	return f("check failed: %v: got %v, want %v", err.Msg, err.Got, err.Want)
}

// ErrField indicates which argument of a bench builtin was rejected.
type ErrField struct {
	Field string
	Err   error
}

func (err *ErrField) Error() string {
	return f("%v: %v", err.Field, err.Err)
}

func (err *ErrField) Unwrap() error {
	return err.Err
}
