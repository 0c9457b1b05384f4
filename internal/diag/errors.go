// internal/diag/errors.go
package diag

import (
	"errors"
	"fmt"
)

// Registry and source errors. Handlers return these (optionally wrapped)
// so that callers can match with errors.Is.
var (
	ErrInvalidArgument = errors.New("diag: invalid argument")
	ErrDuplicateID     = errors.New("diag: duplicate source id")
	ErrNotFound        = errors.New("diag: source not found")
	ErrBufferTooSmall  = errors.New("diag: buffer too small")
	ErrUnsupported     = errors.New("diag: command not supported")
	ErrFull            = errors.New("diag: registry full")
	ErrNotAllowed      = errors.New("diag: operation not allowed")
)

// Integer result codes of the stable call surface.
const (
	CodeOK              = 0
	CodeUnsupported     = -120
	CodeNotAllowed      = -130
	CodeNotFound        = -170
	CodeDuplicateID     = -180
	CodeBufferTooSmall  = -190
	CodeFull            = -200
	CodeInternal        = -250
	CodeInvalidArgument = -270
)

var codes = []struct {
	err  error
	code int
}{
	{ErrInvalidArgument, CodeInvalidArgument},
	{ErrDuplicateID, CodeDuplicateID},
	{ErrNotFound, CodeNotFound},
	{ErrBufferTooSmall, CodeBufferTooSmall},
	{ErrUnsupported, CodeUnsupported},
	{ErrFull, CodeFull},
	{ErrNotAllowed, CodeNotAllowed},
}

// Code maps err to its integer result code.
// Errors that expose their own code through a Code() int method keep it;
// anything unrecognized maps to CodeInternal.
func Code(err error) int {
	if err == nil {
		return CodeOK
	}
	// joined errors report the code of the first failure
	if j, ok := err.(interface{ Unwrap() []error }); ok {
		if errs := j.Unwrap(); len(errs) > 0 {
			return Code(errs[0])
		}
	}
	for _, c := range codes {
		if errors.Is(err, c.err) {
			return c.code
		}
	}

	type coder interface{ Code() int }
	var c coder
	if errors.As(err, &c) && c.Code() < 0 {
		return c.Code()
	}

	return CodeInternal
}

// Error maps a result code back to its sentinel error. CodeOK yields nil.
func Error(code int) error {
	if code == CodeOK {
		return nil
	}
	for _, c := range codes {
		if c.code == code {
			return c.err
		}
	}
	return fmt.Errorf("diag: result code %d", code)
}

func invalidArgument(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}

func unsupported(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrUnsupported, fmt.Sprintf(format, args...))
}
