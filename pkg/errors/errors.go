// Package errors provides structured error reporting for the sheet packages.
package errors

import (
	stderrors "errors"
	"fmt"
	"time"
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindAnchors indicates an invalid anchor configuration.
	KindAnchors
	// KindConfig indicates an invalid or unsupported configuration file.
	KindConfig
	// KindPersistence indicates a failure saving or restoring sheet state.
	KindPersistence
	// KindPanic indicates a recovered panic.
	KindPanic
)

func (k ErrorKind) String() string {
	switch k {
	case KindAnchors:
		return "anchors"
	case KindConfig:
		return "config"
	case KindPersistence:
		return "persistence"
	case KindPanic:
		return "panic"
	default:
		return "unknown"
	}
}

// Sentinel errors wrapped by SheetError. Match them with errors.Is.
var (
	// ErrNoAnchors is returned when a sheet is initialized with an empty anchor set.
	ErrNoAnchors = stderrors.New("anchor set is empty")
	// ErrInvalidAnchors is returned when anchors are duplicated or out of order.
	ErrInvalidAnchors = stderrors.New("anchor set is invalid")
	// ErrInvalidMeasurement is returned when a container or sheet size cannot produce anchors.
	ErrInvalidMeasurement = stderrors.New("invalid measurement")
)

// SheetError represents a structured error raised by the sheet packages.
type SheetError struct {
	// Op is the operation that failed (e.g., "sheet.Initialize").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Err is the underlying error.
	Err error
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *SheetError) Error() string {
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *SheetError) Unwrap() error {
	return e.Err
}

// New returns a SheetError for op wrapping err.
func New(op string, kind ErrorKind, err error) *SheetError {
	return &SheetError{Op: op, Kind: kind, Err: err, Timestamp: time.Now()}
}

// Newf returns a SheetError whose message is built from format. Use %w to wrap
// one of the sentinels.
func Newf(op string, kind ErrorKind, format string, args ...any) *SheetError {
	return New(op, kind, fmt.Errorf(format, args...))
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "sheet.AfterStateChange").
	Op string
	// Value is the value passed to panic().
	Value any
	// StackTrace contains the call stack at the time of the panic.
	StackTrace string
	// Timestamp is when the panic occurred.
	Timestamp time.Time
}

func (e *PanicError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("panic in %s: %v", e.Op, e.Value)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// KindOf returns the ErrorKind of the first SheetError in err's chain, or
// KindUnknown.
func KindOf(err error) ErrorKind {
	var se *SheetError
	if stderrors.As(err, &se) {
		return se.Kind
	}
	return KindUnknown
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// ErrorHandler receives errors reported by the sheet packages.
type ErrorHandler interface {
	// HandleError is called when an error occurs.
	HandleError(err *SheetError)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
}
