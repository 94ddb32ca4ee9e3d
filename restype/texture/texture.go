// Package texture implements the texture resource codec.
//
// Compiled layout, little-endian:
//
//	u32 format     // render.PixelR8 / PixelRGB8 / PixelRGBA8
//	u16 width
//	u16 height
//	u8  pixels[width*height*bpp]
package texture

import (
	"encoding/binary"
	"fmt"

	"github.com/ember-engine/ember/bundle"
	"github.com/ember-engine/ember/render"
	"github.com/ember-engine/ember/resource"
)

const headerSize = 8

// Texture is the parsed texture payload.
type Texture struct {
	Format uint32
	Width  uint16
	Height uint16
	Pixels []byte // view into the allocator buffer

	raw    []byte
	handle render.Handle
}

// Handle returns the renderer texture handle, valid between Online and
// Offline.
func (t *Texture) Handle() render.Handle {
	return t.handle
}

// Payload compiles a texture into the on-disk layout, used by the
// offline tools and the tests.
func Payload(format uint32, width, height uint16, pixels []byte) []byte {
	out := make([]byte, headerSize+len(pixels))
	binary.LittleEndian.PutUint32(out[0:], format)
	binary.LittleEndian.PutUint16(out[4:], width)
	binary.LittleEndian.PutUint16(out[6:], height)
	copy(out[headerSize:], pixels)
	return out
}

// Codec returns the texture codec bound to the renderer r.
func Codec(r render.Ops) resource.Codec {
	return resource.Codec{
		Name: "texture",
		Ext:  "tga",
		Load: func(a *resource.Allocator, b bundle.Bundle, id resource.ID) (interface{}, error) {
			raw, err := resource.ReadPayload(a, b, id)
			if err != nil {
				return nil, err
			}
			if len(raw) < headerSize {
				a.Free(raw)
				return nil, fmt.Errorf("texture payload too short: %d bytes", len(raw))
			}
			t := &Texture{
				Format: binary.LittleEndian.Uint32(raw[0:]),
				Width:  binary.LittleEndian.Uint16(raw[4:]),
				Height: binary.LittleEndian.Uint16(raw[6:]),
				raw:    raw,
			}
			bpp := render.BytesPerPixel(t.Format)
			if bpp == 0 {
				a.Free(raw)
				return nil, fmt.Errorf("unknown pixel format %d", t.Format)
			}
			size := int(t.Width) * int(t.Height) * bpp
			if len(raw) < headerSize+size {
				a.Free(raw)
				return nil, fmt.Errorf("texture payload truncated: want %d pixel bytes, have %d", size, len(raw)-headerSize)
			}
			t.Pixels = raw[headerSize : headerSize+size]
			return t, nil
		},
		Online: func(data interface{}) {
			t := data.(*Texture)
			t.handle = r.CreateTexture(t.Format, t.Width, t.Height, t.Pixels)
		},
		Offline: func(data interface{}) {
			t := data.(*Texture)
			if t.handle != render.HandleNone {
				r.DestroyTexture(t.handle)
				t.handle = render.HandleNone
			}
		},
		Unload: func(a *resource.Allocator, data interface{}) {
			t := data.(*Texture)
			a.Free(t.raw)
			t.raw = nil
			t.Pixels = nil
		},
	}
}
