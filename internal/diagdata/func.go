// internal/diagdata/func.go
package diagdata

import (
	"fmt"

	"github.com/tamzrod/diag-registry/internal/diag"
)

// IntegerFunc is a source whose value is computed on every Get.
// It has no stored state, so Reset, Enable and Disable are accepted as
// no-ops.
type IntegerFunc struct {
	src *diag.Source
	get func() (int32, error)
}

// NewIntegerFunc creates a computed source backed by get.
func NewIntegerFunc(id diag.ID, name string, get func() (int32, error)) *IntegerFunc {
	f := &IntegerFunc{get: get}
	f.src = diag.NewSource(id, name, diag.TypeInt, f)
	return f
}

func (f *IntegerFunc) Source() *diag.Source { return f.src }

// Get samples the current value.
func (f *IntegerFunc) Get() (int32, error) {
	if f.get == nil {
		return 0, fmt.Errorf("%w: source %d has no getter", diag.ErrUnsupported, f.src.ID)
	}
	return f.get()
}

// Command implements diag.Handler.
func (f *IntegerFunc) Command(_ *diag.Source, cmd diag.Command) error {
	switch c := cmd.(type) {
	case diag.Reset, diag.Enable, diag.Disable:
		return nil
	case *diag.Get:
		if c == nil {
			return fmt.Errorf("%w: nil get command", diag.ErrInvalidArgument)
		}
		// check capacity first so that a short buffer never triggers a sample
		if len(c.Buf) < diag.IntSize {
			return fmt.Errorf("%w: need %d bytes, have %d", diag.ErrBufferTooSmall, diag.IntSize, len(c.Buf))
		}
		n, err := f.Get()
		if err != nil {
			return err
		}
		return putInt(c, n)
	default:
		return fmt.Errorf("%w: %T", diag.ErrUnsupported, cmd)
	}
}
