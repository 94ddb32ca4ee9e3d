// Package text implements the text resource codec.
//
// Compiled layout, little-endian:
//
//	u32 length
//	u8  data[length]
package text

import (
	"encoding/binary"
	"fmt"

	"github.com/ember-engine/ember/bundle"
	"github.com/ember-engine/ember/resource"
)

// Text is the parsed text payload.
type Text struct {
	Data []byte // view into the allocator buffer

	raw []byte
}

// String returns the text contents.
func (t *Text) String() string {
	return string(t.Data)
}

// Codec returns the text codec. Text needs no renderer, so Online and
// Offline do nothing.
func Codec() resource.Codec {
	return resource.Codec{
		Name: "text",
		Ext:  "txt",
		Load: func(a *resource.Allocator, b bundle.Bundle, id resource.ID) (interface{}, error) {
			raw, err := resource.ReadPayload(a, b, id)
			if err != nil {
				return nil, err
			}
			if len(raw) < 4 {
				a.Free(raw)
				return nil, fmt.Errorf("text payload too short: %d bytes", len(raw))
			}
			length := binary.LittleEndian.Uint32(raw[0:])
			if int(length) > len(raw)-4 {
				a.Free(raw)
				return nil, fmt.Errorf("text payload truncated: want %d bytes, have %d", length, len(raw)-4)
			}
			return &Text{Data: raw[4 : 4+length], raw: raw}, nil
		},
		Online:  func(data interface{}) {},
		Offline: func(data interface{}) {},
		Unload: func(a *resource.Allocator, data interface{}) {
			t := data.(*Text)
			a.Free(t.raw)
			t.raw = nil
			t.Data = nil
		},
	}
}

// Payload compiles s into the on-disk text layout, used by the offline
// tools and the tests.
func Payload(s string) []byte {
	out := make([]byte, 4+len(s))
	binary.LittleEndian.PutUint32(out, uint32(len(s)))
	copy(out[4:], s)
	return out
}
