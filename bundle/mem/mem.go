// Package mem implements an in-memory bundle. It backs the test
// suites and tools that assemble bundles programmatically; nothing in
// the runtime requires a disk-backed bundle.
package mem

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/ember-engine/ember/bundle"
)

// Bundle serves resource payloads out of memory.
type Bundle struct {
	mu       sync.Mutex
	payloads map[bundle.ID][]byte
	errs     map[bundle.ID]error
}

// New creates an empty in-memory bundle.
func New() *Bundle {
	return &Bundle{
		payloads: make(map[bundle.ID][]byte),
		errs:     make(map[bundle.ID]error),
	}
}

// String converts the bundle into a human readable form for logs.
func (b *Bundle) String() string {
	return "memory bundle"
}

// Put stores payload under id, replacing any previous payload.
func (b *Bundle) Put(id bundle.ID, payload []byte) {
	b.mu.Lock()
	b.payloads[id] = payload
	b.mu.Unlock()
}

// PutErr makes Open fail with err for id, used to exercise I/O error
// handling.
func (b *Bundle) PutErr(id bundle.ID, err error) {
	b.mu.Lock()
	b.errs[id] = err
	b.mu.Unlock()
}

// Len returns the number of stored payloads.
func (b *Bundle) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.payloads)
}

// stream is one payload positioned at its first byte.
type stream struct {
	*bytes.Reader
	size int64
}

// Size returns the payload length in bytes.
func (s stream) Size() int64 {
	return s.size
}

// Open returns a stream over the payload stored under id.
func (b *Bundle) Open(id bundle.ID) (bundle.Stream, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.errs[id]; err != nil {
		return nil, fmt.Errorf("%v: %w", id, err)
	}
	payload, ok := b.payloads[id]
	if !ok {
		return nil, fmt.Errorf("%v: %w", id, bundle.ErrNotFound)
	}
	return stream{Reader: bytes.NewReader(payload), size: int64(len(payload))}, nil
}

// Close releases the stream.
func (b *Bundle) Close(s bundle.Stream) error {
	return nil
}

// check interface
var _ bundle.Bundle = (*Bundle)(nil)
