package resource

import (
	"fmt"
	"io"

	"github.com/ember-engine/ember/bundle"
)

// ReadPayload reads the complete payload for id out of b into a buffer
// drawn from a. On any failure the buffer is returned to the allocator
// and the error is reported to the caller (the loader goroutine, which
// logs it).
func ReadPayload(a *Allocator, b bundle.Bundle, id ID) ([]byte, error) {
	s, err := b.Open(id.BundleID())
	if err != nil {
		return nil, err
	}
	buf := a.Allocate(int(s.Size()))
	_, err = io.ReadFull(s, buf)
	cerr := b.Close(s)
	if err != nil {
		a.Free(buf)
		return nil, fmt.Errorf("failed to read payload %v: %w", id, err)
	}
	if cerr != nil {
		a.Free(buf)
		return nil, fmt.Errorf("failed to close stream %v: %w", id, cerr)
	}
	return buf, nil
}
