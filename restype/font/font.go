// Package font implements the font resource codec.
//
// Compiled layout, little-endian:
//
//	u32 glyph_count
//	Glyph[glyph_count]:
//		u32 codepoint
//		u16 x, y          // top-left corner in the font atlas
//		u16 width, height
//		i16 x_offset, y_offset
//		u16 x_advance
package font

import (
	"encoding/binary"
	"fmt"

	"github.com/ember-engine/ember/bundle"
	"github.com/ember-engine/ember/resource"
)

const glyphSize = 4 + 2*7

// Glyph holds the metrics of one glyph in the font atlas.
type Glyph struct {
	Codepoint uint32
	X, Y      uint16
	Width     uint16
	Height    uint16
	XOffset   int16
	YOffset   int16
	XAdvance  uint16
}

// Font is the parsed font payload.
type Font struct {
	Glyphs []Glyph

	raw []byte
}

// Glyph returns the glyph for codepoint, or nil when the font does not
// cover it.
func (f *Font) Glyph(codepoint uint32) *Glyph {
	for i := range f.Glyphs {
		if f.Glyphs[i].Codepoint == codepoint {
			return &f.Glyphs[i]
		}
	}
	return nil
}

// Codec returns the font codec.
func Codec() resource.Codec {
	return resource.Codec{
		Name: "font",
		Ext:  "font",
		Load: func(a *resource.Allocator, b bundle.Bundle, id resource.ID) (interface{}, error) {
			raw, err := resource.ReadPayload(a, b, id)
			if err != nil {
				return nil, err
			}
			if len(raw) < 4 {
				a.Free(raw)
				return nil, fmt.Errorf("font payload too short: %d bytes", len(raw))
			}
			count := binary.LittleEndian.Uint32(raw[0:])
			if len(raw)-4 < int(count)*glyphSize {
				a.Free(raw)
				return nil, fmt.Errorf("font payload truncated: %d glyphs do not fit in %d bytes", count, len(raw)-4)
			}
			f := &Font{
				Glyphs: make([]Glyph, count),
				raw:    raw,
			}
			for i := range f.Glyphs {
				rec := raw[4+i*glyphSize:]
				g := &f.Glyphs[i]
				g.Codepoint = binary.LittleEndian.Uint32(rec[0:])
				g.X = binary.LittleEndian.Uint16(rec[4:])
				g.Y = binary.LittleEndian.Uint16(rec[6:])
				g.Width = binary.LittleEndian.Uint16(rec[8:])
				g.Height = binary.LittleEndian.Uint16(rec[10:])
				g.XOffset = int16(binary.LittleEndian.Uint16(rec[12:]))
				g.YOffset = int16(binary.LittleEndian.Uint16(rec[14:]))
				g.XAdvance = binary.LittleEndian.Uint16(rec[16:])
			}
			return f, nil
		},
		Online:  func(data interface{}) {},
		Offline: func(data interface{}) {},
		Unload: func(a *resource.Allocator, data interface{}) {
			f := data.(*Font)
			a.Free(f.raw)
			f.raw = nil
			f.Glyphs = nil
		},
	}
}

// Payload compiles glyphs into the on-disk font layout, used by the
// offline tools and the tests.
func Payload(glyphs []Glyph) []byte {
	out := make([]byte, 4+len(glyphs)*glyphSize)
	binary.LittleEndian.PutUint32(out[0:], uint32(len(glyphs)))
	for i, g := range glyphs {
		rec := out[4+i*glyphSize:]
		binary.LittleEndian.PutUint32(rec[0:], g.Codepoint)
		binary.LittleEndian.PutUint16(rec[4:], g.X)
		binary.LittleEndian.PutUint16(rec[6:], g.Y)
		binary.LittleEndian.PutUint16(rec[8:], g.Width)
		binary.LittleEndian.PutUint16(rec[10:], g.Height)
		binary.LittleEndian.PutUint16(rec[12:], uint16(g.XOffset))
		binary.LittleEndian.PutUint16(rec[14:], uint16(g.YOffset))
		binary.LittleEndian.PutUint16(rec[16:], g.XAdvance)
	}
	return out
}
