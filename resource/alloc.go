package resource

import (
	"fmt"
	"sync"
)

// Allocator is the accounting allocator resource payload memory is
// taken from. Codecs allocate bulk payload data through it on the
// loader goroutine and free it in Unload on the main goroutine, which
// lets the manager verify on shutdown that no payload leaked.
type Allocator struct {
	name string

	mu    sync.Mutex
	live  int64 // buffers handed out and not yet freed
	bytes int64 // total size of live buffers
}

// NewAllocator creates a named accounting allocator.
func NewAllocator(name string) *Allocator {
	return &Allocator{name: name}
}

// String converts the allocator into a human readable form for logs.
func (a *Allocator) String() string {
	return fmt.Sprintf("allocator %q", a.name)
}

// Allocate returns a zeroed buffer of size bytes and records it as live.
func (a *Allocator) Allocate(size int) []byte {
	a.mu.Lock()
	a.live++
	a.bytes += int64(size)
	a.mu.Unlock()
	return make([]byte, size)
}

// Free releases a buffer previously returned by Allocate. The buffer
// must be the identical slice, not a sub-slice.
func (a *Allocator) Free(buf []byte) {
	a.mu.Lock()
	a.live--
	a.bytes -= int64(len(buf))
	if a.live < 0 || a.bytes < 0 {
		a.mu.Unlock()
		panic(fmt.Sprintf("%v: double free", a))
	}
	a.mu.Unlock()
}

// Allocations returns the number of live buffers.
func (a *Allocator) Allocations() int64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.live
}

// Bytes returns the total size in bytes of live buffers.
func (a *Allocator) Bytes() int64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.bytes
}
