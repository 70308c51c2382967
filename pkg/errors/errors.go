// Package errors provides the error taxonomy and warning system shared by every
// mlkit package.
//
// Precondition failures are returned as typed errors carrying a stack trace
// (github.com/cockroachdb/errors). Each type is additionally marked with a
// category sentinel so callers can test with Is:
//
//	if errors.Is(err, errors.ErrShapeMismatch) { ... }
//	var dimErr *errors.DimensionError
//	if errors.As(err, &dimErr) { ... }
package errors

import (
	"fmt"
	"log"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
)

// ===========================================================================
//
//	Global warning handling
//
// ===========================================================================
var (
	warningMutex   sync.Mutex
	warningHandler = func(w error) {
		log.Printf("mlkit-Warning: %v\n", w)
	}
	// set by pkg/log to avoid an import cycle
	zerologWarnFunc func(warning error)
)

// SetWarningHandler replaces the handler used for advisory warnings such as
// ConvergenceWarning. Passing a no-op function silences warnings.
//
//	errors.SetWarningHandler(func(w error) {})
func SetWarningHandler(handler func(w error)) {
	warningMutex.Lock()
	defer warningMutex.Unlock()
	warningHandler = handler
}

// SetZerologWarnFunc installs a zerolog-backed warning sink. It takes
// precedence over the handler set with SetWarningHandler.
func SetZerologWarnFunc(warnFunc func(warning error)) {
	warningMutex.Lock()
	defer warningMutex.Unlock()
	zerologWarnFunc = warnFunc
}

// Warn emits an advisory warning. Warnings never change model behaviour.
func Warn(w error) {
	warningMutex.Lock()
	defer warningMutex.Unlock()

	if zerologWarnFunc != nil {
		zerologWarnFunc(w)
		return
	}

	if warningHandler != nil {
		warningHandler(w)
	}
}

// ===========================================================================
//
//	Warnings
//
// ===========================================================================

// ConvergenceWarning reports that an iterative algorithm ran out of epochs
// before reaching its convergence criterion.
type ConvergenceWarning struct {
	Algorithm  string
	Iterations int
	Message    string
}

func (w *ConvergenceWarning) Error() string {
	if w.Message != "" {
		return fmt.Sprintf("%s failed to converge after %d epochs: %s", w.Algorithm, w.Iterations, w.Message)
	}
	return fmt.Sprintf("%s failed to converge after %d epochs. Data may not be linearly separable.", w.Algorithm, w.Iterations)
}

// MarshalZerologObject adds the warning fields to a zerolog event.
func (w *ConvergenceWarning) MarshalZerologObject(e *zerolog.Event) {
	e.Str("algorithm", w.Algorithm).
		Int("iterations", w.Iterations).
		Str("message", w.Message).
		Str("type", "ConvergenceWarning")
}

// NewConvergenceWarning creates a ConvergenceWarning.
func NewConvergenceWarning(algorithm string, iterations int, message string) *ConvergenceWarning {
	return &ConvergenceWarning{Algorithm: algorithm, Iterations: iterations, Message: message}
}

// ===========================================================================
//
//	Category sentinels
//
// ===========================================================================

var (
	// ErrShapeMismatch marks every vector or matrix length disagreement.
	ErrShapeMismatch = New("shape mismatch")

	// ErrEmptyData is returned when a training call receives zero samples.
	ErrEmptyData = New("empty data")

	// ErrInvalidTopology marks an MLP layer specification that cannot be built.
	ErrInvalidTopology = New("invalid topology")
)

// ===========================================================================
//
//	Structured error types
//
// ===========================================================================

// NotFittedError is returned by inference calls made before Fit.
type NotFittedError struct {
	ModelName string
	Method    string
}

func (e *NotFittedError) Error() string {
	return fmt.Sprintf("mlkit: %s: this model is not fitted yet. Call Fit() before using %s()", e.ModelName, e.Method)
}

// MarshalZerologObject adds the error fields to a zerolog event.
func (e *NotFittedError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("model_name", e.ModelName).
		Str("method", e.Method).
		Str("type", "NotFittedError")
}

// NewNotFittedError creates a NotFittedError with a stack trace.
func NewNotFittedError(modelName, method string) error {
	err := &NotFittedError{ModelName: modelName, Method: method}
	return errors.WithStack(err)
}

// DimensionError is the ShapeMismatch failure: a length along some axis
// differs from what the operation requires.
type DimensionError struct {
	Op       string
	Expected int
	Got      int
	Axis     int // 0 for rows/elements, 1 for columns/features
}

func (e *DimensionError) Error() string {
	axisName := "features"
	if e.Axis == 0 {
		axisName = "rows"
	}
	return fmt.Sprintf("mlkit: %s: dimension mismatch on axis %d (%s). Expected %d, got %d", e.Op, e.Axis, axisName, e.Expected, e.Got)
}

// MarshalZerologObject adds the error fields to a zerolog event.
func (e *DimensionError) MarshalZerologObject(event *zerolog.Event) {
	axisName := "features"
	if e.Axis == 0 {
		axisName = "rows"
	}
	event.Str("operation", e.Op).
		Int("expected", e.Expected).
		Int("got", e.Got).
		Int("axis", e.Axis).
		Str("axis_name", axisName).
		Str("type", "DimensionError")
}

// NewDimensionError creates a DimensionError marked with ErrShapeMismatch.
func NewDimensionError(op string, expected, got, axis int) error {
	err := &DimensionError{Op: op, Expected: expected, Got: got, Axis: axis}
	return errors.Mark(errors.WithStack(err), ErrShapeMismatch)
}

// IndexError reports an out-of-range position such as a weight address.
// It is a ShapeMismatch failure.
type IndexError struct {
	Op    string
	Axis  string
	Index int
	Low   int // first valid index
	High  int // one past the last valid index
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("mlkit: %s: %s index %d out of range [%d, %d)", e.Op, e.Axis, e.Index, e.Low, e.High)
}

// MarshalZerologObject adds the error fields to a zerolog event.
func (e *IndexError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Str("axis", e.Axis).
		Int("index", e.Index).
		Int("low", e.Low).
		Int("high", e.High).
		Str("type", "IndexError")
}

// NewIndexError creates an IndexError marked with ErrShapeMismatch.
func NewIndexError(op, axis string, index, low, high int) error {
	err := &IndexError{Op: op, Axis: axis, Index: index, Low: low, High: high}
	return errors.Mark(errors.WithStack(err), ErrShapeMismatch)
}

// TopologyError is returned when an MLP cannot be built from the given
// layer widths.
type TopologyError struct {
	Widths []int
	Reason string
}

func (e *TopologyError) Error() string {
	return fmt.Sprintf("mlkit: invalid topology %v: %s", e.Widths, e.Reason)
}

// MarshalZerologObject adds the error fields to a zerolog event.
func (e *TopologyError) MarshalZerologObject(event *zerolog.Event) {
	event.Ints("widths", e.Widths).
		Str("reason", e.Reason).
		Str("type", "TopologyError")
}

// NewTopologyError creates a TopologyError marked with ErrInvalidTopology.
func NewTopologyError(widths []int, reason string) error {
	err := &TopologyError{Widths: append([]int(nil), widths...), Reason: reason}
	return errors.Mark(errors.WithStack(err), ErrInvalidTopology)
}

// ValidationError reports a hyperparameter outside its valid range.
type ValidationError struct {
	ParamName string
	Reason    string
	Value     interface{}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("mlkit: validation failed for parameter '%s': %s (got: %v)", e.ParamName, e.Reason, e.Value)
}

// MarshalZerologObject adds the error fields to a zerolog event.
func (e *ValidationError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("param_name", e.ParamName).
		Str("reason", e.Reason).
		Interface("value", e.Value).
		Str("type", "ValidationError")
}

// NewValidationError creates a ValidationError with a stack trace.
func NewValidationError(param, reason string, value interface{}) error {
	err := &ValidationError{ParamName: param, Reason: reason, Value: value}
	return errors.WithStack(err)
}

// ValueError reports an argument whose value is unusable for the operation.
type ValueError struct {
	Op      string
	Message string
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("mlkit: %s: %s", e.Op, e.Message)
}

// NewValueError creates a ValueError with a stack trace.
func NewValueError(op, message string) error {
	err := &ValueError{Op: op, Message: message}
	return errors.WithStack(err)
}

// ModelError is a general model failure, usually wrapping a sentinel such as
// ErrEmptyData.
type ModelError struct {
	Op   string
	Kind string
	Err  error
}

func (e *ModelError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("mlkit: %s: %s: %v", e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("mlkit: %s: %s", e.Op, e.Kind)
}

func (e *ModelError) Unwrap() error {
	return e.Err
}

// NewModelError creates a ModelError with a stack trace.
func NewModelError(op, kind string, err error) error {
	modelErr := &ModelError{Op: op, Kind: kind, Err: err}
	return errors.WithStack(modelErr)
}

// NewEmptyDataError is the EmptyInput failure for training entry points.
func NewEmptyDataError(op string) error {
	return NewModelError(op, "empty data", ErrEmptyData)
}

// ===========================================================================
//
//	cockroachdb/errors wrappers
//
// ===========================================================================

// Is reports whether err or any of its causes matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Wrap annotates err with a message.
func Wrap(err error, message string) error {
	return errors.Wrap(err, message)
}

// Wrapf annotates err with a formatted message.
func Wrapf(err error, format string, args ...interface{}) error {
	return errors.Wrapf(err, format, args...)
}

// New creates an error with a stack trace.
func New(message string) error {
	return errors.New(message)
}

// Newf creates a formatted error with a stack trace.
func Newf(format string, args ...interface{}) error {
	return errors.Newf(format, args...)
}

// WithStack annotates err with the current stack trace.
func WithStack(err error) error {
	return errors.WithStack(err)
}

// ===========================================================================
//
//	Numerical diagnostics
//
// ===========================================================================

// NumericalInstabilityError reports NaN or Inf values found by the checks in
// numerical.go. The training engines never produce it themselves.
type NumericalInstabilityError struct {
	Operation string
	Values    []float64
	Iteration int
}

func (e *NumericalInstabilityError) Error() string {
	valStr := ""
	for i, v := range e.Values {
		if i > 0 {
			valStr += ", "
		}
		if i >= 5 {
			valStr += "..."
			break
		}
		valStr += fmt.Sprintf("%.6g", v)
	}
	return fmt.Sprintf("mlkit: numerical instability detected in %s at iteration %d. Values: [%s]",
		e.Operation, e.Iteration, valStr)
}

// NewNumericalInstabilityError creates a NumericalInstabilityError.
func NewNumericalInstabilityError(operation string, values []float64, iteration int) error {
	err := &NumericalInstabilityError{
		Operation: operation,
		Values:    values,
		Iteration: iteration,
	}
	return errors.WithStack(err)
}
