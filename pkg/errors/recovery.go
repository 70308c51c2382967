package errors

import (
	"fmt"
	"runtime/debug"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
)

// PanicError is a recovered panic turned into an error. gonum reports shape
// violations by panicking with a mat.Error, so Unwrap exposes the panic value
// when it is itself an error.
type PanicError struct {
	Operation  string
	PanicValue interface{}
	StackTrace string
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("mlkit: panic in %s: %v", e.Operation, e.PanicValue)
}

// Unwrap returns the panic value if it is an error, nil otherwise.
func (e *PanicError) Unwrap() error {
	if err, ok := e.PanicValue.(error); ok {
		return err
	}
	return nil
}

// String includes the goroutine stack captured at recovery.
func (e *PanicError) String() string {
	return fmt.Sprintf("%s\nStack trace:\n%s", e.Error(), e.StackTrace)
}

// MarshalZerologObject adds the panic fields to a zerolog event.
func (e *PanicError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Operation).
		Str("panic", fmt.Sprint(e.PanicValue)).
		Str("type", "PanicError")
}

// NewPanicError captures the current stack for a recovered value.
func NewPanicError(operation string, panicValue interface{}) *PanicError {
	return &PanicError{
		Operation:  operation,
		PanicValue: panicValue,
		StackTrace: string(debug.Stack()),
	}
}

// Recover converts a panic into an error. Defer it with a pointer to the
// function's named error result:
//
//	func (p *Predictor) Scores(input []float64) (scores []float64, err error) {
//	    defer errors.Recover(&err, "movepredict.Scores")
//	    ...
//	}
//
// If the function had already set an error, that error stays the cause and
// the PanicError is attached as secondary detail.
func Recover(err *error, operation string) {
	r := recover()
	if r == nil {
		return
	}

	panicErr := NewPanicError(operation, r)
	if *err == nil {
		*err = panicErr
		return
	}
	*err = errors.WithSecondaryError(
		errors.Wrapf(*err, "panic in %s: %v", operation, r),
		panicErr,
	)
}

// SafeExecute runs fn and converts any panic into a PanicError.
func SafeExecute(operation string, fn func() error) (err error) {
	defer Recover(&err, operation)
	return fn()
}
