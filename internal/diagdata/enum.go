// internal/diagdata/enum.go
package diagdata

import (
	"fmt"
	"sync/atomic"

	"github.com/tamzrod/diag-registry/internal/diag"
)

// EnumValue is any enumeration whose values fit the INT wire type.
type EnumValue interface {
	~int8 | ~int16 | ~int32 | ~uint8 | ~uint16
}

// Enum is an atomic enumeration-valued diagnostic source.
type Enum[T EnumValue] struct {
	src     *diag.Source
	val     atomic.Int32
	init    T
	enabled atomic.Bool
}

// NewEnum creates an enabled value holding init.
func NewEnum[T EnumValue](id diag.ID, name string, init T) *Enum[T] {
	e := &Enum[T]{init: init}
	e.val.Store(int32(init))
	e.enabled.Store(true)
	e.src = diag.NewSource(id, name, diag.TypeInt, e)
	return e
}

func (e *Enum[T]) Source() *diag.Source { return e.src }

func (e *Enum[T]) Get() T { return T(e.val.Load()) }

// Set stores v unless the value is disabled.
func (e *Enum[T]) Set(v T) {
	if e.enabled.Load() {
		e.val.Store(int32(v))
	}
}

func (e *Enum[T]) Reset() { e.val.Store(int32(e.init)) }

func (e *Enum[T]) Enabled() bool { return e.enabled.Load() }

// Command implements diag.Handler.
func (e *Enum[T]) Command(_ *diag.Source, cmd diag.Command) error {
	switch c := cmd.(type) {
	case diag.Reset:
		e.Reset()
	case diag.Enable:
		e.enabled.Store(true)
	case diag.Disable:
		e.enabled.Store(false)
	case *diag.Get:
		return putInt(c, e.val.Load())
	default:
		return fmt.Errorf("%w: %T", diag.ErrUnsupported, cmd)
	}
	return nil
}
