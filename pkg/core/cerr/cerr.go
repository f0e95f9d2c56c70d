// Package cerr defines the typed error contract of the service layer.
// Every business-rule violation is reported as a *Error carrying a
// Code from the fixed taxonomy, so the presentation layer can react
// to the code while the wrapped cause keeps the full context for
// logging. Business failures are always recoverable return values,
// never panics.
package cerr

import (
	"errors"
	"fmt"
)

// Code enumerates the service-level result codes.
type Code int

const (
	CodeInvalidParam  Code = iota + 1 // malformed or missing input
	CodeSlotExists                    // slot id already present
	CodeSlotNotFound                  // no slot with the given id
	CodeSlotOccupied                  // operation requires a free slot
	CodeSlotFree                      // operation requires an occupied slot
	CodeLicenseExists                 // plate already on an occupied slot
	CodeTimeInvalid                   // visitor entry outside the window
	CodeFileError                     // persistence open/parse failure
	CodeSystemError                   // unexpected internal failure
)

// String returns the stable identifier of the code.
func (c Code) String() string {
	switch c {
	case CodeInvalidParam:
		return "invalid-param"
	case CodeSlotExists:
		return "slot-exists"
	case CodeSlotNotFound:
		return "slot-not-found"
	case CodeSlotOccupied:
		return "slot-occupied"
	case CodeSlotFree:
		return "slot-free"
	case CodeLicenseExists:
		return "license-exists"
	case CodeTimeInvalid:
		return "time-invalid"
	case CodeFileError:
		return "file-error"
	case CodeSystemError:
		return "system-error"
	default:
		return fmt.Sprintf("code-%d", int(c))
	}
}

// Error is a tagged service error. The Code tags the business meaning
// and Err keeps the wrapped cause chain.
type Error struct {
	Code Code
	Err  error
}

// Unwrap returns the wrapped cause error.
func (e *Error) Unwrap() error {
	return e.Err
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Err.Error())
}

// InvalidParam tags err as a malformed/missing input failure.
func InvalidParam(err error) *Error {
	return &Error{Code: CodeInvalidParam, Err: err}
}

// SlotExists tags err as a duplicate slot id failure.
func SlotExists(err error) *Error {
	return &Error{Code: CodeSlotExists, Err: err}
}

// SlotNotFound tags err as a missing slot failure.
func SlotNotFound(err error) *Error {
	return &Error{Code: CodeSlotNotFound, Err: err}
}

// SlotOccupied tags err as a failure caused by an occupied slot.
func SlotOccupied(err error) *Error {
	return &Error{Code: CodeSlotOccupied, Err: err}
}

// SlotFree tags err as a failure caused by a free slot.
func SlotFree(err error) *Error {
	return &Error{Code: CodeSlotFree, Err: err}
}

// LicenseExists tags err as a duplicate license plate failure.
func LicenseExists(err error) *Error {
	return &Error{Code: CodeLicenseExists, Err: err}
}

// TimeInvalid tags err as a visitor entry window violation.
func TimeInvalid(err error) *Error {
	return &Error{Code: CodeTimeInvalid, Err: err}
}

// FileError tags err as a persistence failure.
func FileError(err error) *Error {
	return &Error{Code: CodeFileError, Err: err}
}

// SystemError tags err as an unexpected internal failure.
func SystemError(err error) *Error {
	return &Error{Code: CodeSystemError, Err: err}
}

// CodeOf extracts the service code from an error chain. If err does
// not carry a *Error, CodeSystemError is reported since an untagged
// failure escaping the service layer is unexpected by definition.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeSystemError
}
