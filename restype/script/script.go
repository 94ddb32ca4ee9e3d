// Package script implements the script resource codec. The compiled
// payload is the raw script source; there is no header.
package script

import (
	"github.com/ember-engine/ember/bundle"
	"github.com/ember-engine/ember/resource"
)

// Script is the script payload.
type Script struct {
	Source []byte
}

// Codec returns the script codec.
func Codec() resource.Codec {
	return resource.Codec{
		Name: "script",
		Ext:  "lua",
		Load: func(a *resource.Allocator, b bundle.Bundle, id resource.ID) (interface{}, error) {
			raw, err := resource.ReadPayload(a, b, id)
			if err != nil {
				return nil, err
			}
			return &Script{Source: raw}, nil
		},
		Online:  func(data interface{}) {},
		Offline: func(data interface{}) {},
		Unload: func(a *resource.Allocator, data interface{}) {
			s := data.(*Script)
			a.Free(s.Source)
			s.Source = nil
		},
	}
}
