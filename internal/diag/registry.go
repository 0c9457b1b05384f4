// internal/diag/registry.go
package diag

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
)

// table is an immutable registry snapshot.
type table struct {
	order []*Source // registration order
	byID  []*Source // sorted by ID
}

// Registry is a catalog of diagnostic sources.
//
// Readers (Enumerate, Lookup, Dispatch, Broadcast) work on an immutable
// snapshot loaded atomically; they never lock and never allocate on
// success.
// Register serializes writers and publishes a new snapshot, so
// registering while readers run is safe. A reader that started before a
// registration completes does not see the new source.
type Registry struct {
	mu       sync.Mutex // serializes Register
	tab      atomic.Pointer[table]
	capacity int
}

// NewRegistry creates an empty registry holding at most capacity sources.
// A capacity <= 0 means unbounded.
func NewRegistry(capacity int) *Registry {
	r := &Registry{capacity: capacity}
	r.tab.Store(&table{})
	return r
}

// Capacity returns the configured bound (<= 0 when unbounded).
func (r *Registry) Capacity() int { return r.capacity }

// Len returns the number of registered sources.
func (r *Registry) Len() int { return len(r.tab.Load().order) }

// Register adds src to the registry. The descriptor is stored by reference.
func (r *Registry) Register(src *Source) error {
	if err := src.validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	cur := r.tab.Load()

	i := sort.Search(len(cur.byID), func(i int) bool { return cur.byID[i].ID >= src.ID })
	if i < len(cur.byID) && cur.byID[i].ID == src.ID {
		return fmt.Errorf("%w: id=%d name=%q already used by %q",
			ErrDuplicateID, src.ID, src.Name, cur.byID[i].Name)
	}
	if r.capacity > 0 && len(cur.order) >= r.capacity {
		return fmt.Errorf("%w: capacity=%d id=%d", ErrFull, r.capacity, src.ID)
	}

	next := &table{
		order: make([]*Source, len(cur.order), len(cur.order)+1),
		byID:  make([]*Source, 0, len(cur.byID)+1),
	}
	copy(next.order, cur.order)
	next.order = append(next.order, src)

	next.byID = append(next.byID, cur.byID[:i]...)
	next.byID = append(next.byID, src)
	next.byID = append(next.byID, cur.byID[i:]...)

	r.tab.Store(next)
	return nil
}

// Enumerate calls visit once per source in registration order and returns
// the number of sources. A nil visit only counts.
func (r *Registry) Enumerate(visit func(*Source)) int {
	t := r.tab.Load()
	if visit != nil {
		for _, s := range t.order {
			visit(s)
		}
	}
	return len(t.order)
}

// Lookup returns the source registered under id.
func (r *Registry) Lookup(id ID) (*Source, error) {
	t := r.tab.Load()
	i := sort.Search(len(t.byID), func(i int) bool { return t.byID[i].ID >= id })
	if i < len(t.byID) && t.byID[i].ID == id {
		return t.byID[i], nil
	}
	return nil, fmt.Errorf("%w: id=%d", ErrNotFound, id)
}

// Dispatch delivers cmd to the source registered under id and returns the
// handler's result unchanged.
func (r *Registry) Dispatch(id ID, cmd Command) error {
	if cmd == nil {
		return invalidArgument("nil command")
	}
	src, err := r.Lookup(id)
	if err != nil {
		return err
	}
	return src.Handler.Command(src, cmd)
}

// Broadcast delivers a Reset, Enable or Disable command to every source in
// registration order. Every source is visited even after a failure; the
// returned error joins all handler failures, first one first.
func (r *Registry) Broadcast(cmd Command) error {
	if cmd == nil {
		return invalidArgument("nil command")
	}
	if cmd.Kind() == CmdGet {
		return invalidArgument("get cannot be broadcast")
	}

	var errs []error
	for _, s := range r.tab.Load().order {
		if err := s.Handler.Command(s, cmd); err != nil {
			errs = append(errs, fmt.Errorf("source %d (%s): %w", s.ID, s.Name, err))
		}
	}
	return errors.Join(errs...)
}
