// internal/diag/doc.go

/*
Package diag implements a registry of named, typed diagnostic data sources.

A source is described by a Source descriptor: an id, a value type, a display
name, opaque consumer data and a single Handler that implements every
command of the protocol:

	Reset{}    restore the initial value
	Enable{}   resume active updates
	Disable{}  suspend active updates
	*Get       serialize the current value into a caller buffer

Sources that do not support Enable/Disable must treat them as a successful
no-op. Get must never write past the buffer; an insufficient buffer yields
ErrBufferTooSmall and leaves the buffer unchanged.

A Registry is an explicitly constructed object. Consumers register their
sources once during initialization; any number of goroutines may then
enumerate, look up and dispatch commands concurrently.

	r := diag.NewRegistry(64)
	if err := r.Register(src); err != nil {
	    // duplicate id or full table: a configuration defect
	}
	get := &diag.Get{Buf: make([]byte, diag.IntSize)}
	err := r.Dispatch(src.ID, get)

Errors are sentinel values matched with errors.Is. Code maps them to the
negative integer result codes of the stable call surface in package abi.
*/
package diag
