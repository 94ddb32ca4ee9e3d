// Package material implements the material resource codec. The
// compiled payload is INI-style text: properties in the default
// section, e.g.
//
//	texture = textures/brick.tga
//	diffuse = ff8040ff
//	shading = gouraud
package material

import (
	"bytes"
	"fmt"

	"github.com/Unknwon/goconfig"

	"github.com/ember-engine/ember/bundle"
	"github.com/ember-engine/ember/resource"
)

// Material is the parsed material payload.
type Material struct {
	Properties map[string]string

	raw []byte
}

// Get returns the property value for key, or def when absent.
func (m *Material) Get(key, def string) string {
	if v, ok := m.Properties[key]; ok {
		return v
	}
	return def
}

// Texture returns the path of the material's texture resource, empty
// when the material has none.
func (m *Material) Texture() string {
	return m.Get("texture", "")
}

// Codec returns the material codec.
func Codec() resource.Codec {
	return resource.Codec{
		Name: "material",
		Ext:  "material",
		Load: func(a *resource.Allocator, b bundle.Bundle, id resource.ID) (interface{}, error) {
			raw, err := resource.ReadPayload(a, b, id)
			if err != nil {
				return nil, err
			}
			cfg, err := goconfig.LoadFromReader(bytes.NewReader(raw))
			if err != nil {
				a.Free(raw)
				return nil, fmt.Errorf("failed to parse material: %w", err)
			}
			props, err := cfg.GetSection(goconfig.DEFAULT_SECTION)
			if err != nil {
				// A material with no properties is still valid.
				props = map[string]string{}
			}
			return &Material{Properties: props, raw: raw}, nil
		},
		Online:  func(data interface{}) {},
		Offline: func(data interface{}) {},
		Unload: func(a *resource.Allocator, data interface{}) {
			m := data.(*Material)
			a.Free(m.raw)
			m.raw = nil
			m.Properties = nil
		},
	}
}
