package resource

import (
	"fmt"
	"sync"
)

// State is the lifecycle state of a registry entry.
type State uint8

// Lifecycle states.
const (
	// StateUnloaded means no payload is held for the entry.
	StateUnloaded State = iota
	// StateLoading means the entry is queued or being loaded by the
	// loader goroutine.
	StateLoading
	// StateLoaded means the payload is valid and Online has run.
	StateLoaded
	// StateUnloading means a codec Offline/Unload call is in flight.
	StateUnloading
)

// String returns the state name for logs.
func (s State) String() string {
	switch s {
	case StateUnloaded:
		return "unloaded"
	case StateLoading:
		return "loading"
	case StateLoaded:
		return "loaded"
	case StateUnloading:
		return "unloading"
	}
	return fmt.Sprintf("state(%d)", uint8(s))
}

// entry is one row of the registry.
type entry struct {
	id         ID
	state      State
	references uint32
	data       interface{} // payload, non-nil only when loaded
}

// registry is the dense, append-only table of every resource the
// manager has ever seen. Rows are never removed; a future request for
// the same (name, type) yields the same index.
type registry struct {
	mu      sync.Mutex
	entries []entry
}

// lookup returns the row for id. The caller must hold mu. Asking for
// an id the registry has never seen is a programming error.
func (r *registry) lookup(id ID) *entry {
	if int(id.Index) >= len(r.entries) || !r.entries[id.Index].id.Equal(id) {
		panic(fmt.Sprintf("unknown resource %v", id))
	}
	return &r.entries[id.Index]
}

// findOrInsert returns the id of the row for (name, typ), appending a
// new row when none exists. enqueue reports whether the caller must
// queue a load request: true for new rows and for rows that had been
// unloaded.
func (r *registry) findOrInsert(name, typ uint32) (id ID, enqueue bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.entries {
		e := &r.entries[i]
		if e.id.Name == name && e.id.Type == typ {
			e.references++
			if e.state == StateUnloaded {
				e.state = StateLoading
				return e.id, true
			}
			return e.id, false
		}
	}
	id = ID{Name: name, Type: typ, Index: uint32(len(r.entries))}
	r.entries = append(r.entries, entry{
		id:         id,
		state:      StateLoading,
		references: 1,
	})
	return id, true
}

// has reports whether id names a known row.
func (r *registry) has(id ID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int(id.Index) < len(r.entries) && r.entries[id.Index].id.Equal(id)
}

// isLoaded reports whether the row for id is in StateLoaded.
func (r *registry) isLoaded(id ID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lookup(id).state == StateLoaded
}

// references returns the refcount of the row for id.
func (r *registry) references(id ID) uint32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lookup(id).references
}

// data returns the payload of the row for id, nil unless loaded.
func (r *registry) data(id ID) interface{} {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lookup(id).data
}

// state returns the lifecycle state of the row for id.
func (r *registry) state(id ID) State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lookup(id).state
}

// setLoaded stores the payload brought online for id and moves the row
// to StateLoaded.
func (r *registry) setLoaded(id ID, data interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e := r.lookup(id)
	e.data = data
	e.state = StateLoaded
}

// release decrements the refcount of id. When it reaches zero on a
// loaded row the row moves to StateUnloading and the payload is handed
// back for the caller to run the codec hooks without holding the lock;
// the caller must follow up with clearUnloaded.
func (r *registry) release(id ID) (data interface{}, unload bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e := r.lookup(id)
	if e.references == 0 {
		panic(fmt.Sprintf("unbalanced unload of %v", id))
	}
	e.references--
	if e.references == 0 && e.state == StateLoaded {
		e.state = StateUnloading
		return e.data, true
	}
	return nil, false
}

// beginReload moves a loaded row to StateUnloading and hands back its
// payload, preserving the refcount. ok is false when the row is not
// loaded and the reload is a no-op.
func (r *registry) beginReload(id ID) (data interface{}, ok bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e := r.lookup(id)
	if e.state != StateLoaded {
		return nil, false
	}
	e.state = StateUnloading
	return e.data, true
}

// clearUnloaded clears the payload of id and moves the row to
// StateUnloaded. The row itself is retained.
func (r *registry) clearUnloaded(id ID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e := r.lookup(id)
	e.data = nil
	e.state = StateUnloaded
}

// requeueLoading clears the payload of id and moves the row back to
// StateLoading, used by reload between the unload and the new request.
func (r *registry) requeueLoading(id ID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e := r.lookup(id)
	e.data = nil
	e.state = StateLoading
}

// snapshot copies the table, used by the manager during shutdown.
func (r *registry) snapshot() []entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// len returns the number of rows.
func (r *registry) len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}
