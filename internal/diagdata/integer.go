// internal/diagdata/integer.go
package diagdata

import (
	"encoding/binary"
	"fmt"
	"sync/atomic"

	"github.com/tamzrod/diag-registry/internal/diag"
)

var (
	_ diag.Handler = (*Integer)(nil)
	_ diag.Handler = (*Enum[int32])(nil)
	_ diag.Handler = (*IntegerFunc)(nil)
)

// Integer is a 32-bit signed diagnostic value that can be updated from
// several goroutines while the registry reads it.
// Every operation is a single atomic access.
type Integer struct {
	src     *diag.Source
	val     atomic.Int32
	init    int32
	enabled atomic.Bool
}

// NewInteger creates an enabled value holding init.
func NewInteger(id diag.ID, name string, init int32) *Integer {
	v := &Integer{init: init}
	v.val.Store(init)
	v.enabled.Store(true)
	v.src = diag.NewSource(id, name, diag.TypeInt, v)
	return v
}

// NewCounter creates a counter starting at zero.
func NewCounter(id diag.ID, name string) *Integer {
	return NewInteger(id, name, 0)
}

// Source returns the descriptor to register.
func (v *Integer) Source() *diag.Source { return v.src }

// Get returns the current value.
func (v *Integer) Get() int32 { return v.val.Load() }

// Set stores n unless the value is disabled.
func (v *Integer) Set(n int32) {
	if v.enabled.Load() {
		v.val.Store(n)
	}
}

// Add adds n unless the value is disabled and returns the new value.
func (v *Integer) Add(n int32) int32 {
	if !v.enabled.Load() {
		return v.val.Load()
	}
	return v.val.Add(n)
}

// Inc increments the value by one.
func (v *Integer) Inc() int32 { return v.Add(1) }

// Reset restores the initial value. It applies even while disabled.
func (v *Integer) Reset() { v.val.Store(v.init) }

// Enabled reports whether updates are applied.
func (v *Integer) Enabled() bool { return v.enabled.Load() }

// Command implements diag.Handler.
func (v *Integer) Command(_ *diag.Source, cmd diag.Command) error {
	switch c := cmd.(type) {
	case diag.Reset:
		v.Reset()
	case diag.Enable:
		v.enabled.Store(true)
	case diag.Disable:
		v.enabled.Store(false)
	case *diag.Get:
		return putInt(c, v.Get())
	default:
		return fmt.Errorf("%w: %T", diag.ErrUnsupported, cmd)
	}
	return nil
}

// putInt serializes n into the Get buffer as 4 bytes little-endian.
func putInt(c *diag.Get, n int32) error {
	if c == nil {
		return fmt.Errorf("%w: nil get command", diag.ErrInvalidArgument)
	}
	if len(c.Buf) < diag.IntSize {
		return fmt.Errorf("%w: need %d bytes, have %d", diag.ErrBufferTooSmall, diag.IntSize, len(c.Buf))
	}
	binary.LittleEndian.PutUint32(c.Buf, uint32(n))
	c.N = diag.IntSize
	return nil
}

// DecodeInt reads a TypeInt value produced by a Get command.
func DecodeInt(b []byte) (int32, error) {
	if len(b) < diag.IntSize {
		return 0, fmt.Errorf("%w: need %d bytes, have %d", diag.ErrBufferTooSmall, diag.IntSize, len(b))
	}
	return int32(binary.LittleEndian.Uint32(b)), nil
}
