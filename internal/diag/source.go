// internal/diag/source.go
package diag

import "unsafe"

// ID identifies a diagnostic source.
type ID uint16

// Identifier space.
const (
	// InvalidID is never assigned to a source.
	InvalidID ID = 0

	// UserIDBase is the first application-assignable id.
	// Ids below it are reserved for built-in system sources.
	UserIDBase ID = 1024
)

// IsSystem reports whether id lies in the reserved system range.
func (id ID) IsSystem() bool { return id != InvalidID && id < UserIDBase }

// IsUser reports whether id lies in the application range.
func (id ID) IsUser() bool { return id >= UserIDBase }

// Type tags the value representation of a source.
type Type uint16

const (
	// TypeInt is a 32-bit signed integer, 4 bytes little-endian on GET.
	TypeInt Type = 1
)

// IntSize is the encoded size of a TypeInt value.
const IntSize = 4

// Source is the descriptor of one diagnostic data source.
//
// The registry keeps a pointer to the descriptor and never copies it.
// Name, Data and the handler are owned by the registering consumer and
// must stay valid for the lifetime of the registry.
type Source struct {
	// Size is the struct-version marker. Set it to SourceSize.
	Size uint32

	ID   ID
	Type Type
	Name string

	// Flags is reserved and must be zero.
	Flags uint32

	// Data is opaque consumer context. The registry never inspects it.
	Data any

	// Handler implements every command for this source.
	Handler Handler
}

// SourceSize is the Size value of the current descriptor layout.
const SourceSize = uint32(unsafe.Sizeof(Source{}))

// NewSource returns a descriptor for the current layout version.
func NewSource(id ID, name string, typ Type, h Handler) *Source {
	return &Source{
		Size:    SourceSize,
		ID:      id,
		Type:    typ,
		Name:    name,
		Handler: h,
	}
}

// Handler is the single command entry point of a source.
type Handler interface {
	Command(src *Source, cmd Command) error
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(src *Source, cmd Command) error

// Command calls f(src, cmd).
func (f HandlerFunc) Command(src *Source, cmd Command) error { return f(src, cmd) }

// validate checks the structural fields the registry relies on.
func (s *Source) validate() error {
	switch {
	case s == nil:
		return invalidArgument("nil source")
	case s.Size == 0:
		return invalidArgument("source %d: zero size", s.ID)
	case s.Size > SourceSize:
		return invalidArgument("source %d: unknown layout size %d", s.ID, s.Size)
	case s.ID == InvalidID:
		return invalidArgument("source %q: invalid id", s.Name)
	case s.Name == "":
		return invalidArgument("source %d: name required", s.ID)
	case s.Flags != 0:
		return invalidArgument("source %d: reserved flags must be zero", s.ID)
	case s.Handler == nil:
		return invalidArgument("source %d: handler required", s.ID)
	}
	return nil
}
