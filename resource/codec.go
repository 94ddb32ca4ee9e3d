package resource

import (
	"github.com/ember-engine/ember/bundle"
)

// Codec is the function group a resource type provides so the manager
// can drive its payload through the load/online/offline/unload
// lifecycle. The codec owns the layout of its payload; the manager
// treats it as opaque.
type Codec struct {
	// Name is the human readable type name, e.g. "texture".
	Name string
	// Ext is the file extension the codec handles; its unseeded hash
	// is the codec's type key.
	Ext string
	// Load reads and parses the payload for id out of b. It runs on
	// the loader goroutine and may block on I/O. All payload memory
	// must come from a.
	Load func(a *Allocator, b bundle.Bundle, id ID) (interface{}, error)
	// Online hands the parsed payload to non-thread-safe
	// collaborators (chiefly the renderer). Runs on the main
	// goroutine.
	Online func(data interface{})
	// Offline releases non-memory OS/renderer handles. Runs on the
	// main goroutine immediately before Unload.
	Offline func(data interface{})
	// Unload frees payload memory owned by the codec. Runs on the
	// main goroutine.
	Unload func(a *Allocator, data interface{})
}

// TypeHash returns the codec's type key.
func (c *Codec) TypeHash() uint32 {
	return TypeHash(c.Ext)
}

// CodecSet maps resource type hashes to their codecs. It is populated
// once at initialization and read-only afterwards, so lookups need no
// locking.
type CodecSet struct {
	byType map[uint32]*Codec
}

// NewCodecSet creates a CodecSet holding the given codecs.
func NewCodecSet(codecs ...Codec) *CodecSet {
	cs := &CodecSet{byType: make(map[uint32]*Codec, len(codecs))}
	cs.Register(codecs...)
	return cs
}

// Register adds the codecs provided to the set. A codec registered for
// an already-known extension replaces the previous one.
func (cs *CodecSet) Register(codecs ...Codec) {
	for i := range codecs {
		c := codecs[i]
		cs.byType[c.TypeHash()] = &c
	}
}

// Lookup returns the codec for the type hash, or nil if the type is
// unknown. Unknown types are handled gracefully by the manager: load
// produces a nil payload and the other hooks are skipped.
func (cs *CodecSet) Lookup(typ uint32) *Codec {
	return cs.byType[typ]
}

// Len returns the number of registered codecs.
func (cs *CodecSet) Len() int {
	return len(cs.byType)
}
